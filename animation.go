package lurk

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// bubbleFadeSeconds is how long the speech bubble takes to fade in.
const bubbleFadeSeconds = 0.15

// Fade animates a single float64 between two values. Call Update(dt) each
// frame and read Value. The zero Fade is finished at 0.
//
// There is no global animation manager; the host calls Update itself.
type Fade struct {
	tween *gween.Tween
	Value float64
	Done  bool
}

// NewFade returns a Fade from -> to over duration seconds using fn.
func NewFade(from, to float64, duration float32, fn ease.TweenFunc) *Fade {
	return &Fade{
		tween: gween.New(float32(from), float32(to), duration, fn),
		Value: from,
	}
}

// Update advances the fade by dt seconds.
func (f *Fade) Update(dt float32) {
	if f.Done || f.tween == nil {
		f.Done = true
		return
	}
	val, finished := f.tween.Update(dt)
	f.Value = float64(val)
	f.Done = finished
}

// bubbleFade tracks the speech bubble's opacity across frames: it restarts a
// fade-in whenever a new line appears and snaps to zero when the bubble
// hides.
type bubbleFade struct {
	fade  *Fade
	shown int
}

// update returns the bubble opacity for this frame.
func (b *bubbleFade) update(frame int, dt float32) float64 {
	if frame == SpeechHidden {
		b.shown = SpeechHidden
		b.fade = nil
		return 0
	}
	if frame != b.shown || b.fade == nil {
		b.shown = frame
		b.fade = NewFade(0, 1, bubbleFadeSeconds, ease.OutCubic)
	}
	b.fade.Update(dt)
	return b.fade.Value
}
