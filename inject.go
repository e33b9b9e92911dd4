package lurk

// syntheticPointerEvent represents a single injected pointer event. Window
// coordinates are used, matching what real cursor input reports.
type syntheticPointerEvent struct {
	x, y    int
	pressed bool
}

// InjectClick queues a click on the creature, as if the user had clicked it.
// It is processed on the next Update, after any earlier queued events.
func (h *Host) InjectClick() {
	h.enqueue(eventClick)
}

// InjectHide queues a press of the hide hotkey.
func (h *Host) InjectHide() {
	h.enqueue(eventHide)
}

// InjectPress queues a left-button press at the given window coordinates.
// The event is consumed on the next frame's processInput call.
func (h *Host) InjectPress(x, y int) {
	h.injectQueue = append(h.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a left-button release at the given window coordinates.
func (h *Host) InjectRelease(x, y int) {
	h.injectQueue = append(h.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: false})
}

// InjectPointerClick is a convenience that queues a press followed by a
// release at the same window coordinates. Consumes two frames. Unlike
// InjectClick it is hit-tested against the creature.
func (h *Host) InjectPointerClick(x, y int) {
	h.InjectPress(x, y)
	h.InjectRelease(x, y)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer. Returns true if an event was consumed (real mouse
// input should be skipped).
func (h *Host) processInjectedInput() bool {
	if len(h.injectQueue) == 0 {
		return false
	}
	evt := h.injectQueue[0]
	copy(h.injectQueue, h.injectQueue[1:])
	h.injectQueue = h.injectQueue[:len(h.injectQueue)-1]

	h.processPointer(evt.x, evt.y, evt.pressed)
	return true
}

// enqueue appends an event for the creature. Events are drained in arrival
// order at the start of the next step.
func (h *Host) enqueue(k eventKind) {
	h.events = append(h.events, k)
}
