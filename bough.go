package bough

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when batch vertices are built.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for positions, anchors and quad corners.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
//
// The zero value is a legitimate degenerate rectangle at the origin. The
// absence of content is represented by [EmptyRect] instead.
type Rect struct {
	X, Y, Width, Height float64

	empty bool
}

// EmptyRect means "no visible content". Union and Enlarge treat it as the
// identity element. Compare with [Rect.IsEmpty], not against Rect{}.
var EmptyRect = Rect{empty: true}

// NewRect returns the rectangle (x, y, w, h).
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// IsEmpty reports whether r is the [EmptyRect] sentinel.
func (r Rect) IsEmpty() bool {
	return r.empty
}

// Right returns X + Width.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns Y + Height.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside. EmptyRect contains nothing.
func (r Rect) Contains(x, y float64) bool {
	if r.empty {
		return false
	}
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	if r.empty || other.empty {
		return false
	}
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	if r.empty {
		return other
	}
	if other.empty {
		return r
	}
	minX := math.Min(r.X, other.X)
	minY := math.Min(r.Y, other.Y)
	maxX := math.Max(r.X+r.Width, other.X+other.Width)
	maxY := math.Max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Enlarge grows r in place to include other.
func (r *Rect) Enlarge(other Rect) {
	*r = r.Union(other)
}

// Pad returns r grown by p on every side. EmptyRect stays empty.
func (r Rect) Pad(p float64) Rect {
	if r.empty {
		return r
	}
	return Rect{X: r.X - p, Y: r.Y - p, Width: r.Width + 2*p, Height: r.Height + 2*p}
}

// BlendMode selects a compositing operation. Backends map each mode to their
// native blend state.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                       // additive / lighter
	BlendMultiply                  // multiply (source * destination; only darkens)
	BlendScreen                    // screen (1 - (1-src)*(1-dst); only brightens)
	BlendErase                     // destination-out (punch transparent holes)
	BlendMask                      // clip destination to source alpha
)

// String returns the blend mode name.
func (b BlendMode) String() string {
	switch b {
	case BlendNormal:
		return "normal"
	case BlendAdd:
		return "add"
	case BlendMultiply:
		return "multiply"
	case BlendScreen:
		return "screen"
	case BlendErase:
		return "erase"
	case BlendMask:
		return "mask"
	default:
		return "unknown"
	}
}
