package lurk

import (
	"encoding/json"
	"fmt"
	"image"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// CreatureFrameNames maps the creature frame indices to atlas region names.
var CreatureFrameNames = []string{
	FrameIdle:           "idle",
	FrameIdleArmsRaised: "idle_arms",
	FrameTalk:           "talk",
	FrameTalkArmsRaised: "talk_arms",
	FrameJump:           "jump",
	FramePeekLeft:       "peek_left",
	FramePeekRight:      "peek_right",
	FramePeekUp:         "peek_up",
	FrameHidden:         "hidden",
	FrameShocked:        "shocked",
}

// TextureRegion describes a sub-rectangle within an atlas page.
type TextureRegion struct {
	Page      int  // atlas page index
	X, Y      int  // top-left corner of the sub-image rect within the page
	Width     int  // width of the sub-image rect (may differ from OriginalW if trimmed)
	Height    int  // height of the sub-image rect (may differ from OriginalH if trimmed)
	OriginalW int  // untrimmed sprite width as authored
	OriginalH int  // untrimmed sprite height as authored
	OffsetX   int  // horizontal trim offset from TexturePacker
	OffsetY   int  // vertical trim offset from TexturePacker
	Rotated   bool // true if the region is stored 90 degrees clockwise in the page
}

// Atlas holds one or more atlas page images and a map of named regions.
type Atlas struct {
	// Pages contains the atlas page images indexed by page number.
	Pages   []*ebiten.Image
	regions map[string]TextureRegion
}

// Region returns the TextureRegion for the given name.
func (a *Atlas) Region(name string) (TextureRegion, bool) {
	r, ok := a.regions[name]
	return r, ok
}

// LoadAtlas parses TexturePacker JSON data and associates the given page images.
// Supports both the hash format (single "frames" object) and the array format
// ("textures" array with per-page frame lists).
func LoadAtlas(jsonData []byte, pages []*ebiten.Image) (*Atlas, error) {
	// Probe top-level keys to detect format.
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("lurk: parse atlas JSON: %w", err)
	}

	atlas := &Atlas{
		Pages:   pages,
		regions: make(map[string]TextureRegion),
	}

	switch {
	case probe.Textures != nil:
		if err := parseArrayFormat(probe.Textures, atlas); err != nil {
			return nil, err
		}
	case probe.Frames != nil:
		if err := parseHashFrames(probe.Frames, 0, atlas); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("lurk: atlas JSON has neither \"frames\" nor \"textures\" key")
	}
	return atlas, nil
}

// LoadFrames loads an atlas and bakes the named regions, in order, into
// standalone images of their untrimmed size. Every name must exist.
func LoadFrames(jsonData []byte, pages []*ebiten.Image, names []string) ([]*ebiten.Image, error) {
	atlas, err := LoadAtlas(jsonData, pages)
	if err != nil {
		return nil, err
	}
	frames := make([]*ebiten.Image, len(names))
	for i, name := range names {
		r, ok := atlas.Region(name)
		if !ok {
			return nil, fmt.Errorf("lurk: atlas region %q not found", name)
		}
		if r.Page < 0 || r.Page >= len(pages) || pages[r.Page] == nil {
			return nil, fmt.Errorf("lurk: atlas region %q: missing page %d", name, r.Page)
		}
		frames[i] = bakeRegion(pages[r.Page], r)
	}
	return frames, nil
}

// LoadFrameFiles reads a TexturePacker JSON file and its page images from
// disk and bakes the named regions like LoadFrames. Pages are listed in page
// order and may be any registered image format.
func LoadFrameFiles(jsonPath string, pagePaths []string, names []string) ([]*ebiten.Image, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("lurk: read atlas: %w", err)
	}
	pages := make([]*ebiten.Image, len(pagePaths))
	for i, path := range pagePaths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("lurk: open atlas page: %w", err)
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("lurk: decode atlas page %s: %w", path, err)
		}
		pages[i] = ebiten.NewImageFromImage(img)
	}
	frames, err := LoadFrames(data, pages, names)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", jsonPath, err)
	}
	return frames, nil
}

// bakeRegion copies a region out of its page, undoing rotation and trimming.
func bakeRegion(page *ebiten.Image, r TextureRegion) *ebiten.Image {
	var sub image.Rectangle
	if r.Rotated {
		sub = image.Rect(r.X, r.Y, r.X+r.Height, r.Y+r.Width)
	} else {
		sub = image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
	}
	src := page.SubImage(sub).(*ebiten.Image)

	w, h := r.OriginalW, r.OriginalH
	if w <= 0 || h <= 0 {
		w, h = r.Width, r.Height
	}
	dst := ebiten.NewImage(max(w, 1), max(h, 1))

	var op ebiten.DrawImageOptions
	if r.Rotated {
		// Stored 90° clockwise: rotate back, then shift down by the stored
		// width so the result lands at the origin.
		op.GeoM.Rotate(-math.Pi / 2)
		op.GeoM.Translate(0, float64(sub.Dx()))
	}
	op.GeoM.Translate(float64(r.OffsetX), float64(r.OffsetY))
	dst.DrawImage(src, &op)
	return dst
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame            jsonRect `json:"frame"`
	Rotated          bool     `json:"rotated"`
	Trimmed          bool     `json:"trimmed"`
	SpriteSourceSize jsonRect `json:"spriteSourceSize"`
	SourceSize       jsonSize `json:"sourceSize"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

// parseHashFrames parses the hash format: {"name": {frame...}, ...}
func parseHashFrames(raw json.RawMessage, page int, atlas *Atlas) error {
	var frames map[string]jsonFrame
	if err := json.Unmarshal(raw, &frames); err != nil {
		return fmt.Errorf("lurk: parse atlas frames: %w", err)
	}
	for name, f := range frames {
		atlas.regions[name] = frameToRegion(f, page)
	}
	return nil
}

// parseArrayFormat parses the array format: [{"image":"...", "frames":{...}}, ...]
func parseArrayFormat(raw json.RawMessage, atlas *Atlas) error {
	var textures []jsonTexturePage
	if err := json.Unmarshal(raw, &textures); err != nil {
		return fmt.Errorf("lurk: parse atlas textures array: %w", err)
	}
	for i, tex := range textures {
		for name, f := range tex.Frames {
			atlas.regions[name] = frameToRegion(f, i)
		}
	}
	return nil
}

func frameToRegion(f jsonFrame, page int) TextureRegion {
	return TextureRegion{
		Page:      page,
		X:         f.Frame.X,
		Y:         f.Frame.Y,
		Width:     f.Frame.W,
		Height:    f.Frame.H,
		OriginalW: f.SourceSize.W,
		OriginalH: f.SourceSize.H,
		OffsetX:   f.SpriteSourceSize.X,
		OffsetY:   f.SpriteSourceSize.Y,
		Rotated:   f.Rotated,
	}
}
