package lurk

// Vec2I is an integer 2D point or offset in screen pixels. The coordinate
// system has its origin at the top-left, with Y increasing downward.
type Vec2I struct {
	X, Y int
}

// Add returns v + o.
func (v Vec2I) Add(o Vec2I) Vec2I { return Vec2I{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2I) Sub(o Vec2I) Vec2I { return Vec2I{v.X - o.X, v.Y - o.Y} }

// Mul scales both components by k.
func (v Vec2I) Mul(k int) Vec2I { return Vec2I{v.X * k, v.Y * k} }

// Div divides both components by k, truncating toward zero.
func (v Vec2I) Div(k int) Vec2I { return Vec2I{v.X / k, v.Y / k} }

// RectI is an axis-aligned integer rectangle: Pos is the top-left corner and
// Dim the width and height.
type RectI struct {
	Pos Vec2I
	Dim Vec2I
}

// CenteredRect returns the rectangle of size dim centered on p.
func CenteredRect(p, dim Vec2I) RectI {
	return RectI{Pos: p.Sub(dim.Div(2)), Dim: dim}
}

// Min returns the top-left corner.
func (r RectI) Min() Vec2I { return r.Pos }

// Max returns the exclusive bottom-right corner.
func (r RectI) Max() Vec2I { return r.Pos.Add(r.Dim) }

// Center returns the rectangle's midpoint.
func (r RectI) Center() Vec2I { return r.Pos.Add(r.Dim.Div(2)) }

// Area returns Dim.X * Dim.Y, or 0 for degenerate rectangles.
func (r RectI) Area() int {
	if r.Dim.X <= 0 || r.Dim.Y <= 0 {
		return 0
	}
	return r.Dim.X * r.Dim.Y
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r RectI) Contains(p Vec2I) bool {
	return p.X >= r.Pos.X && p.X < r.Pos.X+r.Dim.X &&
		p.Y >= r.Pos.Y && p.Y < r.Pos.Y+r.Dim.Y
}

// ContainsRect reports whether o lies entirely inside r.
func (r RectI) ContainsRect(o RectI) bool {
	return o.Pos.X >= r.Pos.X && o.Pos.Y >= r.Pos.Y &&
		o.Pos.X+o.Dim.X <= r.Pos.X+r.Dim.X &&
		o.Pos.Y+o.Dim.Y <= r.Pos.Y+r.Dim.Y
}

// ExtendHorizontal grows r by d on both the left and the right.
func (r RectI) ExtendHorizontal(d int) RectI {
	r.Pos.X -= d
	r.Dim.X += 2 * d
	return r
}

// ExtendUp grows r upward by d, keeping the bottom edge fixed.
func (r RectI) ExtendUp(d int) RectI {
	r.Pos.Y -= d
	r.Dim.Y += d
	return r
}

// Facing is the edge-relative direction the creature peeks toward when hiding
// and recoils toward when caught.
type Facing uint8

const (
	FacingLeft  Facing = iota // peeks out to the left of a vertical edge
	FacingRight               // peeks out to the right of a vertical edge
	FacingUp                  // peeks up over a horizontal edge
	FacingDown                // peeks down under a horizontal edge (drawn as up)
)

// IsHorizontal reports whether f is Left or Right.
func (f Facing) IsHorizontal() bool { return f == FacingLeft || f == FacingRight }

// IsVertical reports whether f is Up or Down.
func (f Facing) IsVertical() bool { return f == FacingUp || f == FacingDown }

func (f Facing) String() string {
	switch f {
	case FacingLeft:
		return "left"
	case FacingRight:
		return "right"
	case FacingUp:
		return "up"
	case FacingDown:
		return "down"
	default:
		return "unknown"
	}
}

// facingFor maps a scan axis and direction to the facing the creature adopts
// at the edge the scan found.
func facingFor(horizontal, reverse bool) Facing {
	switch {
	case horizontal && reverse:
		return FacingLeft
	case horizontal:
		return FacingRight
	case reverse:
		return FacingUp
	default:
		return FacingDown
	}
}

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)
