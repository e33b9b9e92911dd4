package lurk

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"slices"

	"golang.org/x/sync/errgroup"
)

// StaticProvider is an in-memory WindowProvider. Windows are scripted by the
// caller and can be moved, recaptured, or removed between calls, which makes
// it the provider of choice for tests and demos.
type StaticProvider struct {
	windows []WindowCandidate
	filter  CandidateFilter
}

// NewStaticProvider returns a provider serving the given windows in order.
func NewStaticProvider(windows ...WindowCandidate) *StaticProvider {
	return &StaticProvider{windows: slices.Clone(windows)}
}

// SetFilter sets the filter applied by Candidates.
func (p *StaticProvider) SetFilter(f CandidateFilter) { p.filter = f }

// Add registers another window.
func (p *StaticProvider) Add(w WindowCandidate) { p.windows = append(p.windows, w) }

// Remove drops the window with the given id, as if it had been closed.
func (p *StaticProvider) Remove(id WindowID) {
	p.windows = slices.DeleteFunc(p.windows, func(w WindowCandidate) bool { return w.ID == id })
}

// Move changes the window's on-screen rectangle.
func (p *StaticProvider) Move(id WindowID, rect RectI) {
	if i := p.index(id); i >= 0 {
		p.windows[i].Rect = rect
	}
}

// Candidates returns the filtered window list.
func (p *StaticProvider) Candidates(ctx context.Context) ([]WindowCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.filter.Apply(p.windows), nil
}

// StillExists reports whether id has not been removed.
func (p *StaticProvider) StillExists(id WindowID) bool { return p.index(id) >= 0 }

// RefreshImage returns the window's current image.
func (p *StaticProvider) RefreshImage(id WindowID) (image.Image, error) {
	i := p.index(id)
	if i < 0 {
		return nil, fmt.Errorf("refresh image %d: %w", id, ErrWindowGone)
	}
	return p.windows[i].Image, nil
}

// RefreshRect returns the window's current rectangle.
func (p *StaticProvider) RefreshRect(id WindowID) (RectI, error) {
	i := p.index(id)
	if i < 0 {
		return RectI{}, fmt.Errorf("refresh rect %d: %w", id, ErrWindowGone)
	}
	return p.windows[i].Rect, nil
}

func (p *StaticProvider) index(id WindowID) int {
	return slices.IndexFunc(p.windows, func(w WindowCandidate) bool { return w.ID == id })
}

// FileProvider serves "windows" whose captures are image files on disk, each
// pinned to a configured screen rectangle. A window exists as long as its
// file does. It stands in for OS capture on platforms without one.
type FileProvider struct {
	entries []WindowFile
	filter  CandidateFilter
	// Workers caps concurrent decodes; zero means 4.
	Workers int
}

// NewFileProvider returns a provider over the given entries.
func NewFileProvider(entries []WindowFile, filter CandidateFilter) *FileProvider {
	return &FileProvider{entries: slices.Clone(entries), filter: filter}
}

// Candidates decodes every entry concurrently. Entries that fail to decode
// are logged and skipped.
func (p *FileProvider) Candidates(ctx context.Context) ([]WindowCandidate, error) {
	decoded := make([]*WindowCandidate, len(p.entries))

	g, gctx := errgroup.WithContext(ctx)
	workers := p.Workers
	if workers <= 0 {
		workers = 4
	}
	g.SetLimit(workers)

	for i, e := range p.entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, err := decodeImageFile(e.Path)
			if err != nil {
				logger().Warn("skipping window", "name", e.Name, "err", err)
				return nil
			}
			decoded[i] = &WindowCandidate{ID: e.ID, Name: e.Name, Image: img, Rect: e.Rect.RectI()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("enumerate windows: %w", err)
	}

	out := make([]WindowCandidate, 0, len(decoded))
	for _, c := range decoded {
		if c != nil {
			out = append(out, *c)
		}
	}
	return p.filter.Apply(out), nil
}

// StillExists reports whether the entry's file is still present.
func (p *FileProvider) StillExists(id WindowID) bool {
	e, ok := p.entry(id)
	if !ok {
		return false
	}
	_, err := os.Stat(e.Path)
	return err == nil
}

// RefreshImage re-decodes the entry's file.
func (p *FileProvider) RefreshImage(id WindowID) (image.Image, error) {
	e, ok := p.entry(id)
	if !ok {
		return nil, fmt.Errorf("refresh image %d: %w", id, ErrWindowGone)
	}
	return decodeImageFile(e.Path)
}

// RefreshRect returns the entry's configured rectangle.
func (p *FileProvider) RefreshRect(id WindowID) (RectI, error) {
	e, ok := p.entry(id)
	if !ok {
		return RectI{}, fmt.Errorf("refresh rect %d: %w", id, ErrWindowGone)
	}
	return e.Rect.RectI(), nil
}

func (p *FileProvider) entry(id WindowID) (WindowFile, bool) {
	i := slices.IndexFunc(p.entries, func(e WindowFile) bool { return e.ID == id })
	if i < 0 {
		return WindowFile{}, false
	}
	return p.entries[i], true
}

func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrCaptureFailed, path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrCaptureFailed, path, err)
	}
	return img, nil
}
