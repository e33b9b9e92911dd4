package lurk

import (
	"math"
	"time"

	"github.com/tanema/gween/ease"
)

const (
	// jumpPower lifts both inner Bezier control points; the arc's apex sits
	// well above either endpoint.
	jumpPower = 200.0

	// Mouth flaps open for the second half of every mouthPeriod.
	mouthPeriod    = 600 * time.Millisecond
	mouthOpenAfter = 300 * time.Millisecond

	// speechMargin pads the bubble inside the bounding box.
	speechMargin = 8
	// A speech frame narrower than this is treated as hidden.
	speechVisibleWidth = 10
)

// Pose is the render-time snapshot of the creature.
type Pose struct {
	Pos   Vec2I
	Frame int

	SpeechFrame int
	SpeechPos   Vec2I

	// Bounds encloses the body and any visible speech bubble. The host
	// window is fitted to it.
	Bounds RectI
}

// shockedSize selects the shocked frame and returns its size, which scales
// the recoil.
func (c *Creature) shockedSize() Vec2I {
	c.body.SetFrame(FrameShocked)
	return c.body.FrameSize()
}

// ComputePose derives the creature's position and frames at now, pushes them
// to the sprites, and records the position as the last rendered one.
func (c *Creature) ComputePose(now time.Time) Pose {
	pos := c.lastPos
	frame := FrameIdle
	speech := SpeechHidden

	switch s := c.state.(type) {
	case *Hiding:
		pos = s.Window.Rect.Pos.Add(s.Local)
		frame = hidingFrame(s.Facing, s.Peek)

	case *Idle:
		if s.Pos != nil {
			pos = *s.Pos
		}
		frame = FrameIdle
		if s.ArmsRaised {
			frame = FrameIdleArmsRaised
		}

	case *Talking:
		pos = s.Pos
		open := elapsed(now, s.Start)%mouthPeriod > mouthOpenAfter
		frame = talkFrame(s.ArmsRaised, open)
		speech = s.Message

	case *Jumping:
		from := c.lastEndPos
		if s.From != nil {
			from = *s.From
		}
		pos = jumpArc(from, s.To, progress(now, s.Start, s.Duration))
		frame = FrameJump

	case *Shocked:
		frame = FrameShocked
		pos = recoil(s.From, s.Recoil, progress(now, s.Start, shockDuration), c.shockedSize())
	}

	c.body.SetFrame(frame)
	c.body.SetPosition(pos)
	c.lastPos = pos

	dim := c.body.FrameSize()
	p := Pose{
		Pos:         pos,
		Frame:       frame,
		SpeechFrame: speech,
		Bounds:      CenteredRect(pos, dim),
	}

	if c.speech != nil {
		c.speech.SetFrame(speech)
		text := c.speech.FrameSize()
		p.SpeechPos = speechPosition(pos, dim, text)
		c.speech.SetPosition(p.SpeechPos)
		p.Bounds = boundsWithSpeech(p.Bounds, text)
	}
	return p
}

func hidingFrame(f Facing, peek bool) int {
	if !peek {
		return FrameHidden
	}
	switch f {
	case FacingLeft:
		return FramePeekLeft
	case FacingRight:
		return FramePeekRight
	default:
		// No dedicated down frame; peeking down reuses the up pose.
		return FramePeekUp
	}
}

func talkFrame(armsRaised, mouthOpen bool) int {
	switch {
	case armsRaised && mouthOpen:
		return FrameTalkArmsRaised
	case mouthOpen:
		return FrameTalk
	case armsRaised:
		return FrameIdleArmsRaised
	default:
		return FrameIdle
	}
}

// jumpArc evaluates a cubic Bezier from a to b at u in [0, 1]. The inner
// control points sit 3*jumpPower above each endpoint.
func jumpArc(a, b Vec2I, u float64) Vec2I {
	v := 1 - u
	p0x, p0y := float64(a.X), float64(a.Y)
	p3x, p3y := float64(b.X), float64(b.Y)
	p1x, p1y := p0x, p0y-3*jumpPower
	p2x, p2y := p3x, p3y-3*jumpPower

	x := p0x*v*v*v + 3*p1x*u*v*v + 3*p2x*u*u*v + p3x*u*u*u
	y := p0y*v*v*v + 3*p1y*u*v*v + 3*p2y*u*u*v + p3y*u*u*u
	return Vec2I{int(math.Round(x)), int(math.Round(y))}
}

// recoil offsets the caught creature from its hiding point. It slides one
// body length toward the recoil side with an ease-out (2t-t^2) while hopping
// up and back down (4t-4t^2), starting half a body clear of the edge.
func recoil(from Vec2I, f Facing, t float64, dim Vec2I) Vec2I {
	l := float64(dim.Y)
	if f.IsHorizontal() {
		l = float64(dim.X)
	}
	tx := float64(ease.OutQuad(float32(t), 0, 1, 1))
	ty := 4*t - 4*t*t

	var dx, dy float64
	switch f {
	case FacingLeft:
		dx = -1
	case FacingRight:
		dx = 1
	default:
		dy = 1
	}
	off := Vec2I{
		X: int(tx*l*dx + 0.5*l*dx),
		Y: -int(ty*l + 0.5*tx*l*dy + 0.5*l),
	}
	return from.Add(off)
}

// speechPosition centers the bubble above the body.
func speechPosition(body, bodyDim, textDim Vec2I) Vec2I {
	return Vec2I{
		X: body.X,
		Y: body.Y - bodyDim.Y/2 - speechMargin - textDim.Y/2,
	}
}

// boundsWithSpeech grows the body bounds to also hold a visible bubble of
// size text: widened symmetrically when the bubble is wider than the body,
// and extended upward by its height plus margins.
func boundsWithSpeech(body RectI, text Vec2I) RectI {
	if text.X <= speechVisibleWidth {
		return body
	}
	if need := text.X + 2*speechMargin; need > body.Dim.X {
		body = body.ExtendHorizontal((need - body.Dim.X + 1) / 2)
	}
	return body.ExtendUp(text.Y + 2*speechMargin)
}
