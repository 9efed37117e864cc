package mapsim

import "github.com/hajimehoshi/ebiten/v2"

// Surface receives draw calls from the render core. The core never touches
// pixels; it only says which frame goes where.
type Surface interface {
	Draw(frame *Frame, dst Rect, tint Color, flipH bool)
}

// DrawCommand is a single recorded draw.
type DrawCommand struct {
	Frame *Frame
	Dst   Rect
	Tint  Color
	FlipH bool
}

// CommandBuffer is a Surface that records draws instead of executing them.
// The zero value is ready to use.
type CommandBuffer struct {
	Commands []DrawCommand
}

// Draw appends a command.
func (b *CommandBuffer) Draw(frame *Frame, dst Rect, tint Color, flipH bool) {
	b.Commands = append(b.Commands, DrawCommand{Frame: frame, Dst: dst, Tint: tint, FlipH: flipH})
}

// Reset drops recorded commands, keeping the backing array.
func (b *CommandBuffer) Reset() {
	b.Commands = b.Commands[:0]
}

// Len returns the number of recorded commands.
func (b *CommandBuffer) Len() int {
	return len(b.Commands)
}

// Replay submits every recorded command to dst in order.
func (b *CommandBuffer) Replay(dst Surface) {
	for i := range b.Commands {
		cmd := &b.Commands[i]
		dst.Draw(cmd.Frame, cmd.Dst, cmd.Tint, cmd.FlipH)
	}
}

// EbitenSurface draws frames onto an ebiten image.
type EbitenSurface struct {
	Target *ebiten.Image
	op     ebiten.DrawImageOptions
}

// NewEbitenSurface wraps target.
func NewEbitenSurface(target *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{Target: target}
}

// Draw scales frame.Image into dst, mirrors it when flipH is set, and applies
// tint as a premultiplied color scale. Frames without an image are skipped.
func (s *EbitenSurface) Draw(frame *Frame, dst Rect, tint Color, flipH bool) {
	if s.Target == nil || frame == nil || frame.Image == nil {
		return
	}
	b := frame.Image.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 || dst.Width == 0 || dst.Height == 0 {
		return
	}

	op := &s.op
	op.GeoM.Reset()
	if dst.Width != b.Dx() || dst.Height != b.Dy() {
		op.GeoM.Scale(float64(dst.Width)/float64(b.Dx()), float64(dst.Height)/float64(b.Dy()))
	}
	if flipH {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(float64(dst.Width), 0)
	}
	op.GeoM.Translate(float64(dst.X), float64(dst.Y))

	op.ColorScale.Reset()
	a := float32(tint.A)
	op.ColorScale.Scale(float32(tint.R)*a, float32(tint.G)*a, float32(tint.B)*a, a)
	op.Blend = ebiten.BlendSourceOver

	s.Target.DrawImage(frame.Image, op)
}
