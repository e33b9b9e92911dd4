package lurk

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

const (
	// hideScaleDown is the downscale factor applied to a window capture
	// before edge detection.
	hideScaleDown = 4
	// hideTrials bounds the number of random scan attempts per search.
	hideTrials = 100
	// hideSafetyMargin keeps scan start points clear of the mask border.
	hideSafetyMargin = 2
	// maxLineWidth is the widest edge run, in mask pixels, still treated as
	// a thin line rather than a solid object.
	maxLineWidth = 2
)

// HideSafeZone is the clear area, in full-scale pixels, the creature needs
// beside an edge to be fully concealed: X across a horizontal edge's
// normal, Y along a vertical edge.
var HideSafeZone = Vec2I{X: 20, Y: 40}

// HidingSpot is where the creature conceals itself inside a window.
type HidingSpot struct {
	// Local is relative to the window rectangle's top-left, in screen pixels.
	Local  Vec2I
	Facing Facing
}

// FindHidingSpot looks for a thin edge in the window capture with enough
// clearance along it to conceal the creature. It returns ErrNoHidingSpot when
// every trial fails; the search never loops beyond hideTrials attempts.
func FindHidingSpot(img image.Image, rect RectI, rng Rand) (HidingSpot, error) {
	mask := EdgeMask(img)
	p, facing, trials, ok := searchMask(mask, hideTrials, rng)
	if !ok {
		return HidingSpot{}, fmt.Errorf("%w: %d trials on %dx%d mask",
			ErrNoHidingSpot, trials, mask.Rect.Dx(), mask.Rect.Dy())
	}
	logger().Debug("hiding spot found", "trials", trials, "mask", p, "facing", facing)
	return HidingSpot{Local: maskToWindow(p, img.Bounds(), rect), Facing: facing}, nil
}

// EdgeMask downscales img by hideScaleDown with nearest-neighbour sampling,
// converts it to luma, and returns its Canny edge mask.
func EdgeMask(img image.Image) *image.Gray {
	b := img.Bounds()
	w, h := b.Dx()/hideScaleDown, b.Dy()/hideScaleDown
	small := image.NewGray(image.Rect(0, 0, w, h))
	if w > 0 && h > 0 {
		draw.NearestNeighbor.Scale(small, small.Bounds(), img, b, draw.Src, nil)
	}
	return detectEdges(small, cannyLow, cannyHigh)
}

// maskToWindow maps a mask pixel back to capture pixels and then to the
// window rectangle's coordinate space, which differs from the capture's
// under display scaling.
func maskToWindow(p Vec2I, capture image.Rectangle, rect RectI) Vec2I {
	c := p.Mul(hideScaleDown)
	if w := capture.Dx(); w > 0 {
		c.X = c.X * rect.Dim.X / w
	}
	if h := capture.Dy(); h > 0 {
		c.Y = c.Y * rect.Dim.Y / h
	}
	return c
}

// WindowToMask is the inverse of the mapping FindHidingSpot applies: it takes
// a window-local point back to the EdgeMask pixel it came from.
func WindowToMask(local Vec2I, capture image.Rectangle, rect RectI) Vec2I {
	c := local
	if rect.Dim.X > 0 {
		c.X = c.X * capture.Dx() / rect.Dim.X
	}
	if rect.Dim.Y > 0 {
		c.Y = c.Y * capture.Dy() / rect.Dim.Y
	}
	return c.Div(hideScaleDown)
}

// searchMask runs up to tries random scans over mask. Scan axes alternate
// between trials, starting from a randomly chosen one. It reports the number
// of trials used.
func searchMask(mask *image.Gray, tries int, rng Rand) (Vec2I, Facing, int, bool) {
	w, h := mask.Rect.Dx(), mask.Rect.Dy()
	zone := HideSafeZone.Div(hideScaleDown)
	loX, hiX := zone.X+hideSafetyMargin, w-zone.X-hideSafetyMargin
	loY, hiY := zone.Y+hideSafetyMargin, h-zone.Y-hideSafetyMargin
	if hiX <= loX || hiY <= loY {
		return Vec2I{}, 0, 0, false
	}

	horizFirst := rng.IntN(2) == 0
	for i := range tries {
		p0 := Vec2I{randBetween(rng, loX, hiX-1), randBetween(rng, loY, hiY-1)}
		horiz := (i%2 == 0) == horizFirst
		rev := rng.IntN(2) == 1
		if p, ok := scanForEdge(mask, p0, horiz, rev); ok {
			return p, facingFor(horiz, rev), i + 1, true
		}
	}
	return Vec2I{}, 0, tries, false
}

// scanForEdge walks the mask from p0 along one axis, cyclically over the
// scan range, looking for a thin edge run whose line continues for the safe
// zone length perpendicular to the walk. A horizontal walk finds vertical
// lines and vice versa.
func scanForEdge(mask *image.Gray, p0 Vec2I, horiz, rev bool) (Vec2I, bool) {
	zone := HideSafeZone.Div(hideScaleDown)
	var lo, hi, start, safe int
	if horiz {
		lo, hi, start, safe = zone.X, mask.Rect.Dx()-zone.X, p0.X, zone.Y
	} else {
		lo, hi, start, safe = zone.Y, mask.Rect.Dy()-zone.Y, p0.Y, zone.X
	}

	// at reports the mask at along-axis position i, perpendicular offset j.
	at := func(i, j int) bool {
		if horiz {
			return maskOn(mask, i, p0.Y+j)
		}
		return maskOn(mask, p0.X+j, i)
	}

	step := 1
	if rev {
		step = -1
	}

	// anchor is the last off cell before the current run.
	run, anchor := 0, start
	if at(start, 0) {
		run, anchor = 1, start-step
	}

	i := start
	for k := 1; k < hi-lo; k++ {
		i += step
		switch {
		case i >= hi:
			i, run, anchor = lo, 0, lo-1
		case i < lo:
			i, run, anchor = hi-1, 0, hi
		}

		if at(i, 0) {
			run++
			continue
		}
		if run >= 1 && run <= maxLineWidth {
			if along, off, ok := lineClearance(at, anchor, i, safe); ok {
				if horiz {
					return Vec2I{along, p0.Y + off}, true
				}
				return Vec2I{p0.X + off, along}, true
			}
		}
		anchor, run = i, 0
	}
	return Vec2I{}, false
}

// lineClearance checks the run strictly between anchors a and b. Moving
// perpendicular to the walk, the run must stay on and both anchors must stay
// off; the distance this holds on each side is measured independently. It
// returns the midpoint along the walk and the perpendicular offset centering
// the creature in the clear span.
func lineClearance(at func(i, j int) bool, a, b, safe int) (along, off int, ok bool) {
	lo, hi := min(a, b), max(a, b)
	clear := func(sign int) int {
		for j := 1; j < safe; j++ {
			d := sign * j
			if at(a, d) || at(b, d) {
				return j - 1
			}
			for m := lo + 1; m < hi; m++ {
				if !at(m, d) {
					return j - 1
				}
			}
		}
		return safe - 1
	}
	fwd, back := clear(1), clear(-1)
	if fwd+back < safe {
		return 0, 0, false
	}
	return (a + b) / 2, (fwd - back) / 2, true
}

func maskOn(mask *image.Gray, x, y int) bool {
	p := image.Point{mask.Rect.Min.X + x, mask.Rect.Min.Y + y}
	if !p.In(mask.Rect) {
		return false
	}
	return mask.Pix[mask.PixOffset(p.X, p.Y)] > 0
}
