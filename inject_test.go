package lurk

import "testing"

func TestInjectPointerClick(t *testing.T) {
	h, _ := newTestHost()

	// The window is fitted to the 48x48 body, so (24, 24) is its center.
	h.InjectPointerClick(24, 24)
	if len(h.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(h.injectQueue))
	}

	// Frame 1: press
	if !h.processInjectedInput() {
		t.Fatal("expected an event to be consumed")
	}
	if len(h.injectQueue) != 1 {
		t.Fatalf("expected 1 remaining event after frame 1, got %d", len(h.injectQueue))
	}
	if len(h.events) != 0 {
		t.Error("click should not fire on press frame")
	}

	// Frame 2: release, click fires
	h.processInjectedInput()
	if len(h.injectQueue) != 0 {
		t.Fatalf("expected 0 remaining events after frame 2, got %d", len(h.injectQueue))
	}
	if len(h.events) != 1 || h.events[0] != eventClick {
		t.Errorf("events = %v, want [click]", h.events)
	}
}

func TestInjectPointerClick_Miss(t *testing.T) {
	h, _ := newTestHost()
	h.InjectPointerClick(-10, -10)
	h.processInjectedInput()
	h.processInjectedInput()
	if len(h.events) != 0 {
		t.Errorf("events = %v, want none", h.events)
	}
}

func TestInjectQueueOrder(t *testing.T) {
	h, _ := newTestHost()
	h.InjectPress(1, 2)
	h.InjectRelease(3, 4)
	h.InjectPress(5, 6)

	want := []syntheticPointerEvent{
		{x: 1, y: 2, pressed: true},
		{x: 3, y: 4, pressed: false},
		{x: 5, y: 6, pressed: true},
	}
	if len(h.injectQueue) != len(want) {
		t.Fatalf("queue len = %d, want %d", len(h.injectQueue), len(want))
	}
	for i, w := range want {
		if h.injectQueue[i] != w {
			t.Errorf("event %d = %+v, want %+v", i, h.injectQueue[i], w)
		}
	}

	for _, w := range want {
		h.processInjectedInput()
		if h.pointer.lastX != w.x || h.pointer.lastY != w.y {
			t.Errorf("pointer at (%d,%d), want (%d,%d)", h.pointer.lastX, h.pointer.lastY, w.x, w.y)
		}
	}
}

func TestProcessInjectedInput_EmptyQueue(t *testing.T) {
	h, _ := newTestHost()
	if h.processInjectedInput() {
		t.Error("expected false for empty queue")
	}
}

func TestInjectEvents(t *testing.T) {
	h, _ := newTestHost()
	h.InjectHide()
	h.InjectClick()
	if len(h.events) != 2 || h.events[0] != eventHide || h.events[1] != eventClick {
		t.Errorf("events = %v, want [hide click]", h.events)
	}
	if h.events[0].String() != "hide" || h.events[1].String() != "click" {
		t.Error("event names mismatch")
	}
}
