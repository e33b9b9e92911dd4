package lurk

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPoseCreature(rng Rand) (*Creature, *fakeSprite, *fakeSprite) {
	body := newFakeSprite(48, 48)
	speech := newFakeSprite(120, 21)
	speech.sizes = map[int]Vec2I{SpeechHidden: {1, 1}}
	c := NewCreature(CreatureOptions{
		Provider:     NewStaticProvider(),
		Body:         body,
		Speech:       speech,
		ScreenCenter: center,
		Rand:         rng,
		Now:          t0,
	})
	return c, body, speech
}

func TestPoseIdle(t *testing.T) {
	c, body, speech := newPoseCreature(NewRand(1))
	p := c.ComputePose(t0)

	assert.Equal(t, center, p.Pos)
	assert.Equal(t, FrameIdleArmsRaised, p.Frame)
	assert.Equal(t, SpeechHidden, p.SpeechFrame)
	assert.Equal(t, CenteredRect(center, Vec2I{48, 48}), p.Bounds, "hidden bubble adds nothing")
	assert.Equal(t, center, body.pos)
	assert.Equal(t, FrameIdleArmsRaised, body.frame)
	assert.Equal(t, SpeechHidden, speech.frame)
}

func TestPoseTalkingMouth(t *testing.T) {
	c, _, _ := newPoseCreature(&seqRand{f: 0.1})
	start := t0.Add(initialTalkDelay)
	c.Tick(context.Background(), start)
	talk, ok := c.State().(*Talking)
	require.True(t, ok)
	require.True(t, talk.ArmsRaised)

	tests := []struct {
		at   time.Duration
		want int
	}{
		{0, FrameIdleArmsRaised},
		{300 * time.Millisecond, FrameIdleArmsRaised},
		{301 * time.Millisecond, FrameTalkArmsRaised},
		{599 * time.Millisecond, FrameTalkArmsRaised},
		{600 * time.Millisecond, FrameIdleArmsRaised},
		{1000 * time.Millisecond, FrameTalkArmsRaised},
	}
	for _, tt := range tests {
		p := c.ComputePose(start.Add(tt.at))
		assert.Equal(t, tt.want, p.Frame, "at %v", tt.at)
		assert.Equal(t, MessageFirst, p.SpeechFrame)
	}
}

func TestTalkFrame(t *testing.T) {
	assert.Equal(t, FrameIdle, talkFrame(false, false))
	assert.Equal(t, FrameTalk, talkFrame(false, true))
	assert.Equal(t, FrameIdleArmsRaised, talkFrame(true, false))
	assert.Equal(t, FrameTalkArmsRaised, talkFrame(true, true))
}

func TestPoseHiding(t *testing.T) {
	c, _, _ := newPoseCreature(NewRand(1))
	h := &Hiding{
		Window: WindowCandidate{ID: 1, Rect: RectI{Pos: Vec2I{300, 200}, Dim: Vec2I{400, 400}}},
		Local:  Vec2I{40, 60},
		Facing: FacingLeft,
	}
	c.state = h

	p := c.ComputePose(t0)
	assert.Equal(t, Vec2I{340, 260}, p.Pos)
	assert.Equal(t, FrameHidden, p.Frame)

	frames := map[Facing]int{
		FacingLeft:  FramePeekLeft,
		FacingRight: FramePeekRight,
		FacingUp:    FramePeekUp,
		FacingDown:  FramePeekUp,
	}
	h.Peek = true
	for f, want := range frames {
		h.Facing = f
		assert.Equal(t, want, c.ComputePose(t0).Frame, "facing %v", f)
	}
	assert.Equal(t, Vec2I{340, 260}, c.LastPos())
}

func TestJumpArc(t *testing.T) {
	a := Vec2I{100, 300}
	b := Vec2I{500, 100}

	assert.Equal(t, a, jumpArc(a, b, 0))
	assert.Equal(t, b, jumpArc(a, b, 1))

	mid := jumpArc(a, b, 0.5)
	assert.Equal(t, 300, mid.X)
	assert.Equal(t, (300+100)/2-450, mid.Y)
	assert.Less(t, mid.Y, b.Y, "apex rises above both endpoints")
}

func TestPoseJumping(t *testing.T) {
	c, body, _ := newPoseCreature(NewRand(1))
	from := Vec2I{100, 100}
	c.state = &Jumping{From: &from, To: Vec2I{100, offscreenY}, Start: t0, Duration: hideJumpDuration}

	assert.Equal(t, from, c.ComputePose(t0).Pos)
	assert.Equal(t, FrameJump, body.frame)
	assert.Equal(t, Vec2I{100, offscreenY}, c.ComputePose(t0.Add(hideJumpDuration)).Pos)
	assert.Equal(t, Vec2I{100, offscreenY}, c.ComputePose(t0.Add(time.Hour)).Pos, "progress is clamped")
}

func TestPoseJumpingFromLastEnd(t *testing.T) {
	c, _, _ := newPoseCreature(NewRand(1))
	c.lastEndPos = Vec2I{400, 250}
	c.state = &Jumping{To: center, Start: t0, Duration: homeJumpDuration}

	assert.Equal(t, Vec2I{400, 250}, c.ComputePose(t0).Pos)
}

func TestRecoil(t *testing.T) {
	dim := Vec2I{48, 48}
	from := Vec2I{}

	tests := []struct {
		f    Facing
		t    float64
		want Vec2I
	}{
		{FacingRight, 0, Vec2I{24, -24}},
		{FacingRight, 1, Vec2I{72, -24}},
		{FacingLeft, 0, Vec2I{-24, -24}},
		{FacingLeft, 1, Vec2I{-72, -24}},
		{FacingUp, 0, Vec2I{0, -24}},
		{FacingUp, 0.5, Vec2I{0, -90}},
		{FacingUp, 1, Vec2I{0, -48}},
		{FacingDown, 1, Vec2I{0, -48}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, recoil(from, tt.f, tt.t, dim), "%v at %v", tt.f, tt.t)
	}
}

func TestRecoilUsesFacingAxis(t *testing.T) {
	dim := Vec2I{60, 20}
	assert.Equal(t, Vec2I{90, -30}, recoil(Vec2I{}, FacingRight, 1, dim))
	assert.Equal(t, Vec2I{0, -20}, recoil(Vec2I{}, FacingUp, 1, dim))
}

func TestPoseShocked(t *testing.T) {
	c, body, _ := newPoseCreature(NewRand(1))
	body.sizes = map[int]Vec2I{FrameShocked: {60, 40}}
	c.state = &Shocked{From: Vec2I{500, 500}, Recoil: FacingRight, Start: t0}

	p := c.ComputePose(t0)
	assert.Equal(t, FrameShocked, p.Frame)
	assert.Equal(t, Vec2I{530, 470}, p.Pos)
	assert.Equal(t, Vec2I{60, 40}, p.Bounds.Dim)
}

func TestBoundsWithSpeechHidden(t *testing.T) {
	body := CenteredRect(center, Vec2I{48, 48})
	assert.Equal(t, body, boundsWithSpeech(body, Vec2I{1, 1}))
	assert.Equal(t, body, boundsWithSpeech(body, Vec2I{speechVisibleWidth, 30}))
}

func TestBoundsHoldBodyAndSpeech(t *testing.T) {
	for _, bodyDim := range []Vec2I{{48, 48}, {30, 60}, {200, 20}} {
		for _, text := range []Vec2I{{11, 10}, {47, 21}, {120, 21}, {121, 33}, {300, 40}} {
			t.Run(fmt.Sprintf("%v/%v", bodyDim, text), func(t *testing.T) {
				pos := Vec2I{400, 300}
				body := CenteredRect(pos, bodyDim)
				bounds := boundsWithSpeech(body, text)
				bubble := CenteredRect(speechPosition(pos, bodyDim, text), text)

				assert.True(t, bounds.ContainsRect(body), "body %v not in %v", body, bounds)
				assert.True(t, bounds.ContainsRect(bubble), "bubble %v not in %v", bubble, bounds)
				assert.Equal(t, body.Max().Y, bounds.Max().Y, "bottom edge is fixed")
			})
		}
	}
}

func TestPoseTalkingBounds(t *testing.T) {
	c, _, speech := newPoseCreature(NewRand(1))
	c.Tick(context.Background(), t0.Add(initialTalkDelay))

	p := c.ComputePose(t0.Add(initialTalkDelay))
	bubble := CenteredRect(p.SpeechPos, Vec2I{120, 21})
	assert.True(t, p.Bounds.ContainsRect(bubble))
	assert.Equal(t, p.SpeechPos, speech.pos)
	assert.Less(t, p.SpeechPos.Y, p.Pos.Y)
}
