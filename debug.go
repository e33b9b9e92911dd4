package lurk

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// debugStats holds per-frame metrics. Only reported when Host.debug is true.
type debugStats struct {
	frames   uint64
	stepTime time.Duration
}

// debugLogEvery limits the timing log to one line per this many frames.
const debugLogEvery = 60

// debugLog logs step timing and the creature's state.
func (h *Host) debugLog() {
	if !h.debug || h.stats.frames%debugLogEvery != 0 {
		return
	}
	logger().Debug("frame",
		"frames", h.stats.frames,
		"step", h.stats.stepTime,
		"state", h.creature.Kind(),
		"catches", h.creature.CatchCount(),
		"bounds", h.bounds,
	)
}

// debugText formats the overlay shown in debug mode.
func (h *Host) debugText() string {
	text := fmt.Sprintf("%s\ncaught: %d", h.creature.Kind(), h.creature.CatchCount())
	if until := h.creature.BusyUntil(); !until.IsZero() {
		left := until.Sub(h.clock.Now()).Truncate(10 * time.Millisecond)
		text += fmt.Sprintf("\nbusy: %v", max(left, 0))
	}
	return text + fmt.Sprintf("\nFPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
}

// drawDebug draws the overlay over a translucent backdrop in the window's
// top-left corner.
func (h *Host) drawDebug(screen *ebiten.Image) {
	backdrop := ebiten.NewImage(100, 80)
	defer backdrop.Deallocate()
	backdrop.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(backdrop, h.debugText())
	screen.DrawImage(backdrop, nil)
}
