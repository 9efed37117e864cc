package mapsim

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Default reference viewport. The parallax formula centers on half of it.
const (
	DefaultReferenceWidth  = 800
	DefaultReferenceHeight = 600
)

// scrollAnim holds active scroll-to tweens for the camera shift.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera is the view into the map. The host mutates it between frames; the
// render core only reads it.
type Camera struct {
	// ShiftX and ShiftY are the world coordinates of the viewport's top-left
	// corner.
	ShiftX, ShiftY int
	// CenterX and CenterY are the map center that parallax layers pivot on.
	CenterX, CenterY int
	// Width and Height are the viewport size in pixels.
	Width, Height int
	// ReferenceWidth and ReferenceHeight define the fixed viewport the
	// parallax formula was authored against.
	ReferenceWidth, ReferenceHeight int

	// BoundsEnabled clamps the shift so the viewport stays within Bounds.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the viewport is clamped to.
	Bounds Rect

	scrollTween *scrollAnim
}

// NewCamera creates a camera with the given viewport size and the default
// 800x600 reference viewport.
func NewCamera(width, height int) *Camera {
	return &Camera{
		Width:           width,
		Height:          height,
		ReferenceWidth:  DefaultReferenceWidth,
		ReferenceHeight: DefaultReferenceHeight,
	}
}

// Viewport returns the screen rectangle the camera renders into.
func (c *Camera) Viewport() Rect {
	return Rect{Width: c.Width, Height: c.Height}
}

// halfReference returns the offsets that center the parallax formula.
func (c *Camera) halfReference() (int, int) {
	return c.ReferenceWidth / 2, c.ReferenceHeight / 2
}

// WorldToScreen converts world coordinates to screen coordinates for
// non-parallax content.
func (c *Camera) WorldToScreen(wx, wy int) (sx, sy int) {
	return wx - c.ShiftX, wy - c.ShiftY
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy int) (wx, wy int) {
	return sx + c.ShiftX, sy + c.ShiftY
}

// Pan moves the camera by (dx, dy) and applies bounds clamping.
func (c *Camera) Pan(dx, dy int) {
	c.ShiftX += dx
	c.ShiftY += dy
	c.ClampToBounds()
}

// CenterOn moves the camera so the world point (x, y) is in the middle of
// the viewport.
func (c *Camera) CenterOn(x, y int) {
	c.ShiftX = x - c.Width/2
	c.ShiftY = y - c.Height/2
	c.ClampToBounds()
}

// ScrollTo animates the shift to (x, y) over duration seconds.
func (c *Camera) ScrollTo(x, y int, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.ShiftX), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.ShiftY), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// SetBounds enables bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
	c.clampToBounds()
}

// ClearBounds disables bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// ClampToBounds immediately clamps the shift. No-op if BoundsEnabled is false.
func (c *Camera) ClampToBounds() {
	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// Update advances the scroll animation by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(dt)
			c.ShiftX = int(math.Round(float64(val)))
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(dt)
			c.ShiftY = int(math.Round(float64(val)))
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// clampToBounds keeps the viewport inside Bounds. If Bounds is smaller than
// the viewport on an axis, the viewport is centered on it.
func (c *Camera) clampToBounds() {
	minX, maxX := c.Bounds.X, c.Bounds.Right()-c.Width
	minY, maxY := c.Bounds.Y, c.Bounds.Bottom()-c.Height

	if minX > maxX {
		c.ShiftX = c.Bounds.X + (c.Bounds.Width-c.Width)/2
	} else {
		c.ShiftX = max(minX, min(c.ShiftX, maxX))
	}
	if minY > maxY {
		c.ShiftY = c.Bounds.Y + (c.Bounds.Height-c.Height)/2
	} else {
		c.ShiftY = max(minY, min(c.ShiftY, maxY))
	}
}
