package lurk

import (
	"context"
	"fmt"
	"time"
)

const (
	hideJumpDuration = 800 * time.Millisecond
	shockDuration    = 500 * time.Millisecond
	homeJumpDuration = 500 * time.Millisecond
	talkDuration     = 3000 * time.Millisecond

	// Delay between landing back home and the next talk attempt.
	talkAfterHome = 300 * time.Millisecond
	// Delay before the very first talk after startup.
	initialTalkDelay = time.Second

	// offscreenY is where the hide jump lands: straight up, off the top of
	// the screen.
	offscreenY = -100

	// Probability that a talk is delivered with arms raised.
	armsRaisedChance = 0.65

	// Guard against a malformed chain spinning forever in one Tick.
	maxTransitionsPerTick = 16
)

// Randomized interval bounds, in milliseconds.
const (
	firstPeekMinMs, firstPeekMaxMs = 5000, 10000
	peekMinMs, peekMaxMs           = 250, 750
	hiddenMinMs, hiddenMaxMs       = 2000, 10000
	talkGapMinMs, talkGapMaxMs     = 6000, 12000
)

// Message ids shown in the speech bubble.
const (
	MessageClickMe = SpeechClickMe // repeated lines
	MessageFirst   = SpeechTauntA  // first line before any catch
	MessageCaught  = SpeechTauntB  // first line after a catch
)

// CreatureOptions configures NewCreature.
type CreatureOptions struct {
	Provider WindowProvider
	Body     Sprite
	// Speech is optional; nil disables the speech bubble.
	Speech Sprite
	// ScreenCenter is where the creature starts and returns after a catch.
	ScreenCenter Vec2I
	Rand         Rand
	// Now is the creation time, used to schedule the first talk.
	Now time.Time
}

// Creature is the desktop pet: one behaviour state plus the cached positions
// that link consecutive states. All methods must be called from the frame
// loop; a Creature is not safe for concurrent use.
type Creature struct {
	provider WindowProvider
	body     Sprite
	speech   Sprite
	rng      Rand

	state State

	lastPos      Vec2I // most recently rendered position
	lastEndPos   Vec2I // lastPos at the moment the previous state completed
	screenCenter Vec2I

	catchCount uint32
	talked     bool // first line of the current catch cycle already shown

	// OnTransition, if set, fires whenever the state variant changes.
	OnTransition func(from, to StateKind)
	// OnCaught, if set, fires after each catch with the new catch count.
	OnCaught func(count uint32)
}

// NewCreature returns an Idle creature at the screen center with its arms
// raised.
func NewCreature(opts CreatureOptions) *Creature {
	rng := opts.Rand
	if rng == nil {
		rng = NewRand(uint64(opts.Now.UnixNano()))
	}
	center := opts.ScreenCenter
	return &Creature{
		provider:     opts.Provider,
		body:         opts.Body,
		speech:       opts.Speech,
		rng:          rng,
		lastPos:      center,
		lastEndPos:   center,
		screenCenter: center,
		state: &Idle{
			Pos:        &center,
			ArmsRaised: true,
			NextTalkAt: opts.Now.Add(initialTalkDelay),
		},
	}
}

// State returns the active state. Callers must not mutate it.
func (c *Creature) State() State { return c.state }

// Kind returns the active state's variant.
func (c *Creature) Kind() StateKind { return c.state.Kind() }

// CatchCount returns how many times the creature has been caught.
func (c *Creature) CatchCount() uint32 { return c.catchCount }

// LastPos returns the most recently rendered position.
func (c *Creature) LastPos() Vec2I { return c.lastPos }

// ScreenCenter returns the home position.
func (c *Creature) ScreenCenter() Vec2I { return c.screenCenter }

// SetScreenCenter moves the home position, e.g. after a monitor change.
// Chains already in flight keep their old target.
func (c *Creature) SetScreenCenter(p Vec2I) { c.screenCenter = p }

// WantsToTalk returns the catch count while the creature is Idle, and false
// otherwise.
func (c *Creature) WantsToTalk() (uint32, bool) {
	if _, ok := c.state.(*Idle); ok {
		return c.catchCount, true
	}
	return 0, false
}

// BusyUntil returns when the current timed animation chain completes. It is
// the zero time when the creature is in a passive state.
func (c *Creature) BusyUntil() time.Time { return chainEnd(c.state) }

// Click reacts to the user clicking the creature: a peeking creature is
// caught, a resting one runs off to hide, and anything mid-animation ignores
// the click.
func (c *Creature) Click(ctx context.Context, now time.Time) error {
	switch s := c.state.(type) {
	case *Hiding:
		if s.Peek {
			c.found(now, s)
		}
		return nil
	case *Idle, *Talking:
		return c.Hide(ctx, now)
	default:
		return nil
	}
}

// HideNow handles the hide hotkey. Like Click, it only sends a resting
// creature into hiding; a press while Hiding or mid-animation is ignored.
func (c *Creature) HideNow(ctx context.Context, now time.Time) error {
	switch c.state.(type) {
	case *Idle, *Talking:
		return c.Hide(ctx, now)
	default:
		return nil
	}
}

// Hide picks a window, finds a hiding spot in it, and starts the jump off
// screen that ends in Hiding. Windows are tried largest first; one without a
// spot is skipped. When no window yields a spot the state is left unchanged
// and the error wraps ErrNoHidingSpot.
func (c *Creature) Hide(ctx context.Context, now time.Time) error {
	cands, err := c.provider.Candidates(ctx)
	if err != nil {
		return fmt.Errorf("hide: %w", err)
	}
	if len(cands) == 0 {
		return fmt.Errorf("hide: %w", ErrNoCandidates)
	}

	for _, w := range rankCandidates(cands) {
		spot, err := FindHidingSpot(w.Image, w.Rect, c.rng)
		if err != nil {
			logger().Debug("window has no hiding spot", "window", w.Name, "err", err)
			continue
		}
		logger().Info("hiding", "window", w.Name, "local", spot.Local, "facing", spot.Facing)

		from := c.lastPos
		c.setState(&Jumping{
			From:     &from,
			To:       Vec2I{X: from.X, Y: offscreenY},
			Start:    now,
			Duration: hideJumpDuration,
			Next: &Hiding{
				Window:       w,
				Local:        spot.Local,
				Facing:       spot.Facing,
				PeekToggleAt: now.Add(randMillis(c.rng, firstPeekMinMs, firstPeekMaxMs)),
			},
		})
		return nil
	}
	return fmt.Errorf("hide: searched %d windows: %w", len(cands), ErrNoHidingSpot)
}

// found starts the caught sequence: recoil, jump home, rest.
func (c *Creature) found(now time.Time, s *Hiding) {
	c.catchCount++
	c.talked = false

	homeStart := now.Add(shockDuration)
	c.setState(&Shocked{
		From:   s.Window.Rect.Pos.Add(s.Local),
		Recoil: s.Facing,
		Start:  now,
		Next: &Jumping{
			To:       c.screenCenter,
			Start:    homeStart,
			Duration: homeJumpDuration,
			Next: &Idle{
				NextTalkAt: homeStart.Add(homeJumpDuration + talkAfterHome),
			},
		},
	})
	logger().Info("caught", "count", c.catchCount)
	if c.OnCaught != nil {
		c.OnCaught(c.catchCount)
	}
}

// Tick advances time-based transitions to now. Expired states are replaced
// by their successors until the active state is current, so a single Tick
// after a long pause lands at the end of the chain. Calling Tick again with
// the same now changes nothing.
func (c *Creature) Tick(ctx context.Context, now time.Time) {
	for range maxTransitionsPerTick {
		if !c.advance(ctx, now) {
			return
		}
	}
	logger().Warn("transition limit reached in one tick", "state", c.state.Kind())
}

// advance applies at most one transition and reports whether the state
// variant was replaced.
func (c *Creature) advance(ctx context.Context, now time.Time) bool {
	switch s := c.state.(type) {
	case *Hiding:
		if !c.provider.StillExists(s.Window.ID) {
			c.windowLost(ctx, now, s)
			return true
		}
		if now.After(s.PeekToggleAt) {
			s.Peek = !s.Peek
			if s.Peek {
				s.PeekToggleAt = now.Add(randMillis(c.rng, peekMinMs, peekMaxMs))
			} else {
				s.PeekToggleAt = now.Add(randMillis(c.rng, hiddenMinMs, hiddenMaxMs))
			}
			if r, err := c.provider.RefreshRect(s.Window.ID); err == nil {
				s.Window.Rect = r
			} else {
				logger().Debug("keeping stale window rect", "window", s.Window.Name, "err", err)
			}
		}
		return false

	case *Idle:
		if !now.Before(s.NextTalkAt) {
			c.startTalking(now)
			return true
		}
		return false

	case *Talking:
		if elapsed(now, s.Start) >= s.Duration {
			c.complete(&Idle{NextTalkAt: now.Add(randMillis(c.rng, talkGapMinMs, talkGapMaxMs))})
			return true
		}
		return false

	case *Jumping:
		if elapsed(now, s.Start) >= s.Duration {
			// The arc ends exactly at To, whether or not its last frame was
			// rendered.
			c.lastPos = s.To
			c.complete(s.Next)
			return true
		}
		return false

	case *Shocked:
		if elapsed(now, s.Start) >= shockDuration {
			// The home jump starts where the recoil ends, rendered or not.
			c.lastPos = recoil(s.From, s.Recoil, 1, c.shockedSize())
			c.complete(s.Next)
			return true
		}
		return false
	}
	return false
}

// complete ends the active state, recording where it ended.
func (c *Creature) complete(next State) {
	c.lastEndPos = c.lastPos
	if next == nil {
		next = &Idle{}
	}
	c.setState(next)
}

// windowLost handles the hiding window closing under the creature: it tries
// to hide again elsewhere and otherwise jumps home.
func (c *Creature) windowLost(ctx context.Context, now time.Time, s *Hiding) {
	logger().Warn("hiding window disappeared", "window", s.Window.Name, "err", ErrWindowGone)
	c.lastPos = s.Window.Rect.Pos.Add(s.Local)

	err := c.Hide(ctx, now)
	if err == nil {
		return
	}
	logger().Warn("re-hide failed, going home", "err", err)

	from := c.lastPos
	c.setState(&Jumping{
		From:     &from,
		To:       c.screenCenter,
		Start:    now,
		Duration: homeJumpDuration,
		Next: &Idle{
			NextTalkAt: now.Add(homeJumpDuration + talkAfterHome),
		},
	})
}

// startTalking begins a speech line at the current position.
func (c *Creature) startTalking(now time.Time) {
	c.setState(&Talking{
		Pos:        c.lastPos,
		ArmsRaised: c.rng.Float64() < armsRaisedChance,
		Start:      now,
		Duration:   talkDuration,
		Message:    c.nextMessage(),
	})
}

// nextMessage picks the line to say. The first talk of a catch cycle is a
// taunt (which one depends on whether the creature has ever been caught);
// every later talk is "click me".
func (c *Creature) nextMessage() int {
	if c.talked {
		return MessageClickMe
	}
	c.talked = true
	if c.catchCount == 0 {
		return MessageFirst
	}
	return MessageCaught
}

func (c *Creature) setState(s State) {
	from := c.state.Kind()
	c.state = s
	if c.OnTransition != nil && from != s.Kind() {
		c.OnTransition(from, s.Kind())
	}
}
