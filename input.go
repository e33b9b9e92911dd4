package lurk

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// eventKind is an input event the host forwards to the creature.
type eventKind uint8

const (
	eventClick eventKind = iota // the creature was clicked
	eventHide                   // the hide hotkey was pressed
)

func (k eventKind) String() string {
	if k == eventHide {
		return "hide"
	}
	return "click"
}

// --- Pointer state ---

// pointerState tracks the left mouse button across frames. A click is a
// press and a release that both land on the creature.
type pointerState struct {
	down   bool
	onBody bool // press landed on the creature
	lastX  int
	lastY  int
}

// --- Modifiers ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// --- Input processing ---

// processInput is called from Host.Update to turn this frame's raw input
// into queued events. Injected pointer events take the place of the real
// mouse for the frame they are consumed in.
func (h *Host) processInput() {
	mods := readModifiers()

	if mods&ModCtrl != 0 {
		if inpututil.IsKeyJustPressed(ebiten.KeyH) {
			h.enqueue(eventHide)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyD) {
			ebiten.SetWindowDecorated(!ebiten.IsWindowDecorated())
		}
	}

	if h.processInjectedInput() {
		return
	}
	x, y := ebiten.CursorPosition()
	h.processPointer(x, y, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// processPointer runs the pointer state machine for the mouse. x and y are
// in host window coordinates.
func (h *Host) processPointer(x, y int, pressed bool) {
	ps := &h.pointer
	hit := h.hitBody(x, y)

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.onBody = hit
	case !pressed && ps.down:
		if ps.onBody && hit {
			h.enqueue(eventClick)
		}
		ps.down = false
		ps.onBody = false
	}
	ps.lastX, ps.lastY = x, y
}

// hitBody reports whether window point (x, y) lies on the creature's body.
func (h *Host) hitBody(x, y int) bool {
	p := Vec2I{x, y}.Add(h.bounds.Pos)
	return h.bodyRect.Contains(p)
}
