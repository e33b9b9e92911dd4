// Package lurk is the behaviour core of a desktop pet that hides in the edges
// of other windows, built on [Ebitengine].
//
// The creature rests at the screen center and talks now and then. Click it
// and it jumps off the top of the screen, then settles into a hiding spot: a
// point on a thin line in some other window's content, found by running edge
// detection over a capture of that window. From there it peeks out for a
// moment every few seconds. Click it while it peeks and it is caught: it
// recoils, jumps home, and the cycle starts over.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a borderless,
// transparent, always-on-top window sized to the creature:
//
//	speech, _ := lurk.NewSpeechFrames(messages)
//	host := lurk.NewHost(lurk.HostOptions{
//		Provider:     provider,
//		Body:         lurk.NewImageSprite("body", lurk.NewPlaceholderFrames()),
//		Speech:       lurk.NewImageSprite("speech", speech),
//		ScreenCenter: lurk.Vec2I{X: 960, Y: 540},
//	})
//	lurk.Run(host, lurk.RunConfig{})
//
// # Windows
//
// The creature only sees other windows through a [WindowProvider]: a list of
// [WindowCandidate] values with a captured image and a screen rectangle,
// plus liveness and refresh queries. [StaticProvider] serves an in-memory
// list and [FileProvider] serves screenshots from disk. Both apply a
// [CandidateFilter] that drops the pet's own window, denylisted titles and
// all-black captures.
//
// # Hiding spots
//
// [FindHidingSpot] downscales a capture, runs a Canny edge detector over it
// ([EdgeMask]) and searches the mask for a line at most two pixels thick
// with room on either side. The returned [HidingSpot] is in window-local
// coordinates and names the side the creature peeks out from.
//
// # Behaviour
//
// [Creature] is a state machine over [Idle], [Talking], [Hiding], [Jumping]
// and [Shocked]. It never reads a clock: [Creature.Click], [Creature.Hide]
// and [Creature.Tick] take the current time, which makes every transition
// reproducible with a [ManualClock] and a seeded [Rand].
// [Creature.ComputePose] turns the state into a position, a body frame and a
// speech frame and pushes them to the [Sprite] bindings.
//
// # Testing
//
// [Host.InjectClick], [Host.InjectHide] and [Host.InjectPointerClick] queue
// synthetic input. [LoadTestScript] drives a host from a JSON script of
// click, hide, advance, wait, expect and screenshot steps.
//
// [Ebitengine]: https://ebitengine.org
package lurk
