package lurk

import (
	"cmp"
	"context"
	"errors"
	"image"
	"slices"
)

var (
	// ErrNoHidingSpot reports that the hiding-spot search exhausted all of its
	// trials. It is not retried by the finder; callers decide what to do.
	ErrNoHidingSpot = errors.New("lurk: no hiding spot found")

	// ErrNoCandidates reports that window enumeration produced nothing usable.
	ErrNoCandidates = errors.New("lurk: no window candidates")

	// ErrCaptureFailed reports a transient screenshot or rect query failure.
	ErrCaptureFailed = errors.New("lurk: window capture failed")

	// ErrWindowGone reports that a held window no longer exists.
	ErrWindowGone = errors.New("lurk: window no longer exists")
)

// WindowID is an opaque handle for an on-screen window, stable for the
// window's lifetime.
type WindowID uint64

// WindowCandidate is a snapshot of one visible window: its captured image and
// its on-screen rectangle at the time of enumeration. Image pixel dimensions
// may differ from Rect.Dim (e.g. under display scaling).
type WindowCandidate struct {
	ID    WindowID
	Name  string
	Image image.Image
	Rect  RectI
}

// WindowProvider enumerates windows the creature can hide in. Implementations
// are OS-specific; the package ships in-memory and file-backed ones.
type WindowProvider interface {
	// Candidates returns a fresh snapshot of visible, non-self, non-denylisted
	// windows whose capture is not entirely black. Windows whose capture fails
	// are skipped, not reported as errors.
	Candidates(ctx context.Context) ([]WindowCandidate, error)

	// StillExists reports whether the window behind id is still alive.
	StillExists(id WindowID) bool

	// RefreshImage recaptures the window. On error the caller keeps its
	// previous image. The creature never calls it; Candidates already
	// captures fresh images on every hide, so it exists for callers that
	// hold a candidate across frames, such as capture tools.
	RefreshImage(id WindowID) (image.Image, error)

	// RefreshRect re-queries the window rectangle. On error the caller keeps
	// its previous rectangle.
	RefreshRect(id WindowID) (RectI, error)
}

// CandidateFilter holds the rules that decide which enumerated windows are
// worth hiding in.
type CandidateFilter struct {
	// SelfTitle is the overlay's own window title; it never matches.
	SelfTitle string
	// Denylist names windows that are never candidates.
	Denylist []string
}

// DefaultDenylist lists window names known to capture badly.
var DefaultDenylist = []string{"Settings"}

// Accept reports whether a window with the given name and capture passes
// the filter.
func (f CandidateFilter) Accept(name string, img image.Image) bool {
	if name == f.SelfTitle && f.SelfTitle != "" {
		return false
	}
	if slices.Contains(f.Denylist, name) {
		return false
	}
	return img != nil && !isAllBlack(img)
}

// Apply returns the candidates that pass the filter, preserving order.
func (f CandidateFilter) Apply(cands []WindowCandidate) []WindowCandidate {
	out := cands[:0:0]
	for _, c := range cands {
		if f.Accept(c.Name, c.Image) {
			out = append(out, c)
		}
	}
	return out
}

// blackSampleStride is the pixel stride used when checking for an all-black
// capture. A prime stride avoids aliasing with row widths.
const blackSampleStride = 97

// isAllBlack reports whether every sampled pixel has zero RGB. Minimized or
// occluded windows often capture this way.
func isAllBlack(img image.Image) bool {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	n := w * h
	for i := 0; i < n; i += blackSampleStride {
		r, g, bl, _ := img.At(b.Min.X+i%w, b.Min.Y+i/w).RGBA()
		if r != 0 || g != 0 || bl != 0 {
			return false
		}
	}
	return true
}

// rankCandidates orders candidates by hiding preference: largest window area
// first, then name, then ID, so the choice is deterministic for a given
// snapshot. The input slice is not modified.
func rankCandidates(cands []WindowCandidate) []WindowCandidate {
	ranked := slices.Clone(cands)
	slices.SortStableFunc(ranked, func(a, b WindowCandidate) int {
		if c := cmp.Compare(b.Rect.Area(), a.Rect.Area()); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return ranked
}
