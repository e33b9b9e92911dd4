package lurk

import (
	"strings"
	"testing"
)

func TestDebugText_Idle(t *testing.T) {
	h, _ := newTestHost()
	text := h.debugText()
	for _, want := range []string{"idle", "caught: 0", "FPS:", "TPS:"} {
		if !strings.Contains(text, want) {
			t.Errorf("debug text %q missing %q", text, want)
		}
	}
	if strings.Contains(text, "busy") {
		t.Error("idle creature should not report busy")
	}
}

func TestDebugText_Busy(t *testing.T) {
	h, _ := newTestHost(hideableWindow(1, "Editor", Vec2I{300, 100}))
	h.InjectClick()
	h.step()

	text := h.debugText()
	if !strings.Contains(text, "jumping") {
		t.Errorf("debug text %q missing state", text)
	}
	if !strings.Contains(text, "busy: 800ms") {
		t.Errorf("debug text %q missing remaining time", text)
	}
}

func TestDebugStats_CountFrames(t *testing.T) {
	h, _ := newTestHost()
	h.SetDebugMode(true)
	for range 3 {
		h.step()
	}
	if h.stats.frames != 3 {
		t.Errorf("frames = %d, want 3", h.stats.frames)
	}
	if h.stats.stepTime < 0 {
		t.Errorf("stepTime = %v, want >= 0", h.stats.stepTime)
	}
}
