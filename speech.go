package lurk

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	speechFontSize = 14
	speechPadding  = 6
	speechCorner   = 6

	// PlaceholderSize is the edge length of the generated creature frames.
	PlaceholderSize = 48
)

var (
	bubbleFill   = color.RGBA{255, 255, 255, 235}
	bubbleStroke = color.RGBA{40, 40, 40, 255}
	bubbleText   = color.RGBA{20, 20, 20, 255}

	bodyColor  = color.RGBA{120, 200, 110, 255}
	bodyShade  = color.RGBA{80, 150, 75, 255}
	eyeColor   = color.RGBA{20, 20, 20, 255}
	mouthColor = color.RGBA{150, 40, 50, 255}
	alarmColor = color.RGBA{230, 60, 40, 255}
)

var speechFace *text.GoTextFace

// loadSpeechFace lazily parses the embedded Go Regular font.
func loadSpeechFace() (*text.GoTextFace, error) {
	if speechFace != nil {
		return speechFace, nil
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("lurk: load speech font: %w", err)
	}
	speechFace = &text.GoTextFace{Source: src, Size: speechFontSize}
	return speechFace, nil
}

// NewSpeechFrames renders one bubble per message, preceded by the 1x1
// transparent SpeechHidden frame. Frame i+1 holds messages[i].
func NewSpeechFrames(messages []string) ([]*ebiten.Image, error) {
	face, err := loadSpeechFace()
	if err != nil {
		return nil, err
	}
	frames := make([]*ebiten.Image, 0, len(messages)+1)
	frames = append(frames, ebiten.NewImage(1, 1))
	for _, msg := range messages {
		frames = append(frames, renderBubble(msg, face))
	}
	return frames, nil
}

func renderBubble(msg string, face *text.GoTextFace) *ebiten.Image {
	lineSpacing := face.Size * 1.2
	tw, th := text.Measure(msg, face, lineSpacing)
	w := int(math.Ceil(tw)) + 2*speechPadding
	h := int(math.Ceil(th)) + 2*speechPadding
	// Never narrower than the hidden threshold, or the bubble would not fit.
	w = max(w, speechVisibleWidth+1)

	img := ebiten.NewImage(w, h)
	fw, fh := float32(w), float32(h)
	r := float32(speechCorner)

	// Rounded rectangle: two crossing rects plus four corner discs.
	vector.DrawFilledRect(img, r, 0, fw-2*r, fh, bubbleFill, true)
	vector.DrawFilledRect(img, 0, r, fw, fh-2*r, bubbleFill, true)
	for _, c := range [][2]float32{{r, r}, {fw - r, r}, {r, fh - r}, {fw - r, fh - r}} {
		vector.DrawFilledCircle(img, c[0], c[1], r, bubbleFill, true)
	}
	vector.StrokeRect(img, 1, 1, fw-2, fh-2, 1, bubbleStroke, true)

	op := &text.DrawOptions{}
	op.GeoM.Translate(speechPadding, speechPadding)
	op.ColorScale.ScaleWithColor(bubbleText)
	op.LineSpacing = lineSpacing
	text.Draw(img, msg, face, op)
	return img
}

// NewPlaceholderFrames draws a simple creature with one frame per creature
// pose, all PlaceholderSize square. The hidden frame is fully transparent.
func NewPlaceholderFrames() []*ebiten.Image {
	frames := make([]*ebiten.Image, CreatureFrameCount)
	for i := range frames {
		img := ebiten.NewImage(PlaceholderSize, PlaceholderSize)
		drawPlaceholder(img, i)
		frames[i] = img
	}
	return frames
}

func drawPlaceholder(img *ebiten.Image, frame int) {
	const s = float32(PlaceholderSize)
	cx, cy := s/2, s/2+4
	radius := s/2 - 8

	body := func(x, y float32) {
		vector.DrawFilledCircle(img, x, y, radius, bodyColor, true)
		vector.StrokeCircle(img, x, y, radius, 2, bodyShade, true)
	}
	eyes := func(x, y, dx float32) {
		vector.DrawFilledCircle(img, x-6+dx, y-4, 2.5, eyeColor, true)
		vector.DrawFilledCircle(img, x+6+dx, y-4, 2.5, eyeColor, true)
	}
	arms := func(raised bool) {
		y := cy + 4
		if raised {
			y = cy - radius
		}
		vector.DrawFilledCircle(img, cx-radius-2, y, 4, bodyShade, true)
		vector.DrawFilledCircle(img, cx+radius+2, y, 4, bodyShade, true)
	}

	switch frame {
	case FrameHidden:
		return

	case FrameIdle, FrameIdleArmsRaised, FrameTalk, FrameTalkArmsRaised:
		arms(frame == FrameIdleArmsRaised || frame == FrameTalkArmsRaised)
		body(cx, cy)
		eyes(cx, cy, 0)
		if frame == FrameTalk || frame == FrameTalkArmsRaised {
			vector.DrawFilledCircle(img, cx, cy+6, 4, mouthColor, true)
		} else {
			vector.DrawFilledRect(img, cx-4, cy+6, 8, 2, mouthColor, true)
		}

	case FrameJump:
		arms(true)
		body(cx, cy-2)
		eyes(cx, cy-2, 0)

	case FramePeekLeft:
		// Only the right half shows, looking out to the left.
		body(s-4, cy)
		eyes(s-4, cy, -8)
		vector.DrawFilledRect(img, s-radius-6, 0, 2, s, bodyShade, true)

	case FramePeekRight:
		body(4, cy)
		eyes(4, cy, 8)
		vector.DrawFilledRect(img, radius+4, 0, 2, s, bodyShade, true)

	case FramePeekUp:
		body(cx, s-4)
		eyes(cx, s-4+radius/2, 0)

	case FrameShocked:
		arms(true)
		body(cx, cy)
		vector.DrawFilledCircle(img, cx-6, cy-4, 4, color.White, true)
		vector.DrawFilledCircle(img, cx+6, cy-4, 4, color.White, true)
		eyes(cx, cy, 0)
		vector.DrawFilledCircle(img, cx, cy+8, 3, mouthColor, true)
		vector.DrawFilledRect(img, s-6, 2, 3, 9, alarmColor, true)
		vector.DrawFilledRect(img, s-6, 13, 3, 3, alarmColor, true)
	}
}
