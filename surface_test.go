package mapsim

import (
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

type countingSurface struct {
	frames []*Frame
}

func (c *countingSurface) Draw(frame *Frame, _ Rect, _ Color, _ bool) {
	c.frames = append(c.frames, frame)
}

func TestCommandBufferRecordsAndReplays(t *testing.T) {
	var buf CommandBuffer
	a, b := &Frame{Width: 1}, &Frame{Width: 2}
	buf.Draw(a, Rect{X: 1}, ColorWhite, false)
	buf.Draw(b, Rect{X: 2}, ColorWhite, true)

	if buf.Len() != 2 {
		t.Fatalf("Len = %d, want 2", buf.Len())
	}
	if !buf.Commands[1].FlipH || buf.Commands[1].Dst.X != 2 {
		t.Errorf("second command = %+v", buf.Commands[1])
	}

	var dst countingSurface
	buf.Replay(&dst)
	if len(dst.frames) != 2 || dst.frames[0] != a || dst.frames[1] != b {
		t.Error("Replay did not preserve order")
	}

	buf.Reset()
	if buf.Len() != 0 {
		t.Errorf("Len after Reset = %d", buf.Len())
	}
}

func TestEbitenSurfaceSkipsMissingInput(t *testing.T) {
	// None of these may panic.
	var s EbitenSurface
	s.Draw(&Frame{Width: 4, Height: 4}, Rect{Width: 4, Height: 4}, ColorWhite, false)

	s.Target = ebiten.NewImage(8, 8)
	s.Draw(nil, Rect{Width: 4, Height: 4}, ColorWhite, false)
	s.Draw(&Frame{Width: 4, Height: 4}, Rect{Width: 4, Height: 4}, ColorWhite, false)
	s.Draw(NewFrame(ebiten.NewImage(4, 4), 0), Rect{}, ColorWhite, false)
}

func TestNewFrameSizesFromImage(t *testing.T) {
	f := NewFrame(ebiten.NewImage(12, 7), 90)
	if f.Width != 12 || f.Height != 7 || f.Delay != 90 {
		t.Errorf("frame = %+v, want 12x7 delay 90", f)
	}
	if g := NewFrame(nil, 5); g.Width != 0 || g.Height != 0 {
		t.Errorf("nil image frame = %+v", g)
	}
}

func TestColorPremultiplied(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0, A: 0.5}
	got := c.Premultiplied()
	want := color.RGBA{R: 127, G: 63, B: 0, A: 127}
	if got != want {
		t.Errorf("Premultiplied = %v, want %v", got, want)
	}
	if w := ColorWhite.Premultiplied(); w != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("white = %v", w)
	}
	if o := (Color{R: 2, A: -1}).Premultiplied(); o != (color.RGBA{}) {
		t.Errorf("out of range = %v, want zero", o)
	}
}

func TestRectOverlaps(t *testing.T) {
	view := Rect{Width: 800, Height: 600}
	cases := []struct {
		r    Rect
		want bool
	}{
		{Rect{X: 10, Y: 10, Width: 5, Height: 5}, true},
		{Rect{X: -5, Y: 0, Width: 5, Height: 5}, false},
		{Rect{X: -5, Y: 0, Width: 6, Height: 5}, true},
		{Rect{X: 800, Y: 0, Width: 5, Height: 5}, false},
		{Rect{X: 0, Y: 600, Width: 5, Height: 5}, false},
		{Rect{X: -100, Y: -100, Width: 1000, Height: 1000}, true},
	}
	for _, tc := range cases {
		if got := tc.r.Overlaps(view); got != tc.want {
			t.Errorf("%+v.Overlaps = %v, want %v", tc.r, got, tc.want)
		}
	}
}

func TestLayerKindString(t *testing.T) {
	if KindSprite.String() != "sprite" || KindBackground.String() != "background" {
		t.Errorf("names = %q, %q", KindSprite, KindBackground)
	}
}
