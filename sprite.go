package lurk

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Creature body frames.
const (
	FrameIdle = iota
	FrameIdleArmsRaised
	FrameTalk
	FrameTalkArmsRaised
	FrameJump
	FramePeekLeft
	FramePeekRight
	FramePeekUp
	FrameHidden
	FrameShocked

	CreatureFrameCount
)

// Speech bubble frames. Message ids map directly onto these.
const (
	SpeechHidden = iota
	SpeechClickMe
	SpeechTauntA
	SpeechTauntB

	SpeechFrameCount
)

// Sprite is the renderer binding the creature drives each frame. Positions
// are absolute screen coordinates of the sprite's center.
type Sprite interface {
	SetPosition(p Vec2I)
	SetFrame(i int)
	// FrameSize returns the pixel dimensions of the active frame.
	FrameSize() Vec2I
}

// ImageSprite is a Sprite backed by a fixed set of ebiten images.
type ImageSprite struct {
	Name   string
	frames []*ebiten.Image
	frame  int
	pos    Vec2I

	// Alpha multiplies the drawn frame's opacity, in [0, 1].
	Alpha float64
}

// NewImageSprite returns a sprite over frames, showing frame 0.
func NewImageSprite(name string, frames []*ebiten.Image) *ImageSprite {
	return &ImageSprite{Name: name, frames: frames, Alpha: 1}
}

// SetPosition sets the screen-space center.
func (s *ImageSprite) SetPosition(p Vec2I) { s.pos = p }

// Position returns the screen-space center.
func (s *ImageSprite) Position() Vec2I { return s.pos }

// SetFrame selects the active frame. Out-of-range indices are ignored.
func (s *ImageSprite) SetFrame(i int) {
	if i < 0 || i >= len(s.frames) {
		logger().Debug("frame index out of range", "sprite", s.Name, "index", i, "frames", len(s.frames))
		return
	}
	s.frame = i
}

// Frame returns the active frame index.
func (s *ImageSprite) Frame() int { return s.frame }

// FrameCount returns the number of frames the sprite owns.
func (s *ImageSprite) FrameCount() int { return len(s.frames) }

// FrameSize returns the active frame's dimensions.
func (s *ImageSprite) FrameSize() Vec2I {
	if len(s.frames) == 0 || s.frames[s.frame] == nil {
		return Vec2I{}
	}
	b := s.frames[s.frame].Bounds()
	return Vec2I{b.Dx(), b.Dy()}
}

// Draw renders the active frame centered on its position, offset by -origin
// so that screen coordinates land in the host window's space.
func (s *ImageSprite) Draw(dst *ebiten.Image, origin Vec2I) {
	if len(s.frames) == 0 || s.Alpha <= 0 {
		return
	}
	img := s.frames[s.frame]
	if img == nil {
		return
	}
	tl := CenteredRect(s.pos, s.FrameSize()).Pos.Sub(origin)

	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(tl.X), float64(tl.Y))
	op.ColorScale.ScaleAlpha(float32(s.Alpha))
	dst.DrawImage(img, &op)
}
