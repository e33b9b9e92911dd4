package lurk

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blankFrames(n, w, h int) []*ebiten.Image {
	frames := make([]*ebiten.Image, n)
	for i := range frames {
		frames[i] = ebiten.NewImage(w, h)
	}
	return frames
}

// newTestHost returns a host driven by a manual clock at t0 with a 48x48
// body and no speech bubble.
func newTestHost(windows ...WindowCandidate) (*Host, *ManualClock) {
	clock := NewManualClock(t0)
	h := NewHost(HostOptions{
		Provider:     NewStaticProvider(windows...),
		Body:         NewImageSprite("body", blankFrames(CreatureFrameCount, 48, 48)),
		ScreenCenter: center,
		Clock:        clock,
		Rand:         NewRand(1),
	})
	return h, clock
}

// runFrame is Host.Update without the real keyboard and mouse.
func runFrame(h *Host) {
	if h.testRunner != nil {
		h.testRunner.step(h)
	}
	h.processInjectedInput()
	h.step()
}

func TestNewHostFitsBody(t *testing.T) {
	h, _ := newTestHost()
	assert.Equal(t, CenteredRect(center, Vec2I{48, 48}), h.Bounds())
	assert.Equal(t, StateIdle, h.Creature().Kind())
	assert.Equal(t, "screenshots", h.ScreenshotDir)

	w, hgt := h.Layout(1920, 1080)
	assert.Equal(t, 48, w)
	assert.Equal(t, 48, hgt)
}

func TestHostClickHidesAndLands(t *testing.T) {
	h, clock := newTestHost(hideableWindow(1, "Editor", Vec2I{300, 100}))

	h.InjectClick()
	h.step()
	require.Equal(t, StateJumping, h.Creature().Kind())
	assert.Empty(t, h.events)

	clock.Advance(hideJumpDuration)
	h.step()
	require.Equal(t, StateHiding, h.Creature().Kind())

	hd := h.Creature().State().(*Hiding)
	want := hd.Window.Rect.Pos.Add(hd.Local)
	assert.Equal(t, want, h.Pose().Pos)
	assert.Equal(t, CenteredRect(want, Vec2I{48, 48}), h.Bounds(), "window follows the creature")
}

func TestHostEventsRunInOrder(t *testing.T) {
	h, _ := newTestHost(hideableWindow(1, "Editor", Vec2I{300, 100}))

	// The hide starts a jump, so the click that follows it is ignored.
	h.InjectHide()
	h.InjectClick()
	h.step()
	assert.Equal(t, StateJumping, h.Creature().Kind())
	assert.NoError(t, h.LastError())
}

func TestHostHideHotkeyMidJumpIgnored(t *testing.T) {
	h, clock := newTestHost(hideableWindow(1, "Editor", Vec2I{300, 100}))
	h.InjectHide()
	h.step()
	jumping := h.Creature().State()

	clock.Advance(400 * time.Millisecond)
	h.InjectHide()
	h.step()
	assert.Same(t, jumping, h.Creature().State())
	assert.NoError(t, h.LastError())
}

func TestHostHideFailureKeepsState(t *testing.T) {
	h, _ := newTestHost()

	h.InjectClick()
	h.step()
	assert.Equal(t, StateIdle, h.Creature().Kind())
	assert.ErrorIs(t, h.LastError(), ErrNoCandidates)
}

func TestHostTicksWithoutInput(t *testing.T) {
	h, clock := newTestHost()
	clock.Advance(initialTalkDelay)
	h.step()
	assert.Equal(t, StateTalking, h.Creature().Kind())

	clock.Advance(talkDuration)
	h.step()
	assert.Equal(t, StateIdle, h.Creature().Kind())
}

func TestHostSpeechFades(t *testing.T) {
	clock := NewManualClock(t0)
	speech := NewImageSprite("speech", []*ebiten.Image{
		ebiten.NewImage(1, 1),
		ebiten.NewImage(100, 20),
		ebiten.NewImage(100, 20),
		ebiten.NewImage(100, 20),
	})
	h := NewHost(HostOptions{
		Provider:     NewStaticProvider(),
		Body:         NewImageSprite("body", blankFrames(CreatureFrameCount, 48, 48)),
		Speech:       speech,
		ScreenCenter: center,
		Clock:        clock,
		Rand:         NewRand(1),
	})

	clock.Advance(initialTalkDelay)
	h.step()
	require.Equal(t, StateTalking, h.Creature().Kind())
	assert.Equal(t, MessageFirst, speech.Frame())
	assert.InDelta(t, 1, speech.Alpha, 1e-3, "a long frame completes the fade")
	assert.Greater(t, h.Bounds().Dim.Y, 48, "bounds grow to hold the bubble")

	clock.Advance(talkDuration)
	h.step()
	assert.Equal(t, SpeechHidden, speech.Frame())
	assert.Zero(t, speech.Alpha)
	assert.Equal(t, CenteredRect(center, Vec2I{48, 48}), h.Bounds())
}

func TestHostClockSkew(t *testing.T) {
	h, clock := newTestHost(hideableWindow(1, "Editor", Vec2I{300, 100}))
	h.InjectClick()
	h.step()

	clock.Advance(-time.Minute)
	h.step()
	assert.Equal(t, StateJumping, h.Creature().Kind())
	assert.Equal(t, center, h.Pose().Pos)
}
