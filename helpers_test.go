package lurk

import (
	"image"
	"image/color"
	"time"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// fakeSprite records what the creature pushes to it.
type fakeSprite struct {
	pos    Vec2I
	frame  int
	size   Vec2I
	sizes  map[int]Vec2I // per-frame overrides
	frames []int         // every SetFrame call
}

func newFakeSprite(w, h int) *fakeSprite {
	return &fakeSprite{size: Vec2I{w, h}}
}

func (s *fakeSprite) SetPosition(p Vec2I) { s.pos = p }

func (s *fakeSprite) SetFrame(i int) {
	s.frame = i
	s.frames = append(s.frames, i)
}

func (s *fakeSprite) FrameSize() Vec2I {
	if d, ok := s.sizes[s.frame]; ok {
		return d
	}
	return s.size
}

// solidImage returns a w x h image filled with c.
func solidImage(w, h int, c color.Gray) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = c.Y
	}
	return img
}

// lineImage is a white capture crossed by a dark vertical line of the given
// width starting at column x.
func lineImage(w, h, x, width int) *image.Gray {
	img := solidImage(w, h, color.Gray{Y: 255})
	for y := range h {
		for dx := range width {
			img.SetGray(x+dx, y, color.Gray{Y: 0})
		}
	}
	return img
}

// verticalLineMask is a w x h mask with columns [x, x+width) set.
func verticalLineMask(w, h, x, width int) *image.Gray {
	m := image.NewGray(image.Rect(0, 0, w, h))
	for y := range h {
		for dx := range width {
			m.SetGray(x+dx, y, color.Gray{Y: 255})
		}
	}
	return m
}

// horizontalLineMask is a w x h mask with rows [y, y+width) set.
func horizontalLineMask(w, h, y, width int) *image.Gray {
	m := image.NewGray(image.Rect(0, 0, w, h))
	for x := range w {
		for dy := range width {
			m.SetGray(x, y+dy, color.Gray{Y: 255})
		}
	}
	return m
}

// seqRand replays fixed IntN results, then falls back to zero. Float64
// always returns f.
type seqRand struct {
	ints []int
	f    float64
}

func (r *seqRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return min(v, n-1)
}

func (r *seqRand) Float64() float64 { return r.f }

// hideableWindow is a window whose capture contains one thin vertical line,
// shown at twice its capture size.
func hideableWindow(id WindowID, name string, pos Vec2I) WindowCandidate {
	return WindowCandidate{
		ID:    id,
		Name:  name,
		Image: lineImage(400, 400, 200, 4),
		Rect:  RectI{Pos: pos, Dim: Vec2I{800, 800}},
	}
}
