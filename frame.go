package mapsim

import "github.com/hajimehoshi/ebiten/v2"

// Frame is one decoded, immutably sized image usable as a draw source.
// Frames are shared read-only between sequences; the core never reads Image.
type Frame struct {
	Width, Height int
	// Delay is how long the frame stays on screen, in milliseconds.
	Delay int
	// OriginX and OriginY offset the frame from its layer's anchor.
	OriginX, OriginY int
	// Image is the pixel source handed to the Surface. May be nil in tests.
	Image *ebiten.Image
}

// NewFrame wraps an ebiten image as a Frame sized to the image bounds.
func NewFrame(img *ebiten.Image, delay int) *Frame {
	f := &Frame{Delay: delay, Image: img}
	if img != nil {
		b := img.Bounds()
		f.Width, f.Height = b.Dx(), b.Dy()
	}
	return f
}
