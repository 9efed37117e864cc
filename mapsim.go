package mapsim

import "image/color"

// Color represents an RGBA tint with components in [0, 1]. Not premultiplied.
// Premultiplication happens when a Surface submits the draw.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// alphaColor returns white with the given 0-255 opacity.
func alphaColor(a uint8) Color {
	return Color{1, 1, 1, float64(a) / 255}
}

// Premultiplied returns the color as premultiplied RGBA8.
func (c Color) Premultiplied() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Rect is an integer axis-aligned rectangle in screen or world pixels. The
// origin is the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height int
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Overlaps reports whether r and other share any pixel. Rectangles that only
// touch along an edge do not overlap.
func (r Rect) Overlaps(other Rect) bool {
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// LayerKind selects how a Layer computes its position and color.
type LayerKind uint8

const (
	KindSprite     LayerKind = iota // world-anchored object, culled when off screen
	KindBackground                  // parallax background with tiling and drift
)

// String returns the kind name used in scene files.
func (k LayerKind) String() string {
	switch k {
	case KindBackground:
		return "background"
	default:
		return "sprite"
	}
}
