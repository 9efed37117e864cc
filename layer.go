package mapsim

// Layer is a positioned, policy-tagged renderable built from a Sequence. A
// single struct serves both kinds; Kind picks the position and color rules.
type Layer struct {
	Name string
	Kind LayerKind

	// AnchorX and AnchorY are the layer's authored world position.
	AnchorX, AnchorY int
	// PeriodX and PeriodY are the tiling periods. Zero means "use the
	// current frame's width/height".
	PeriodX, PeriodY int
	// Policy selects tiling and drift. Ignored for sprites.
	Policy MotionPolicy
	// RatioX and RatioY scale camera motion (parallax) and drift speed.
	RatioX, RatioY int

	// Alpha is the layer opacity, 0-255.
	Alpha uint8
	// Front draws the layer over sprite layers instead of behind them.
	Front bool
	// Flip mirrors every draw horizontally.
	Flip bool
	// Visible layers are rendered; hidden ones keep their animation state
	// frozen.
	Visible bool

	seq    *Sequence
	driftX Drift
	driftY Drift

	reported bool // degenerate configuration already logged
}

// renderResult summarizes one Layer render call.
type renderResult struct {
	draws      int
	culled     bool
	degenerate bool // a tiled axis had no usable period
}

// NewSpriteLayer creates a world-anchored sprite at (x, y).
func NewSpriteLayer(name string, x, y int, seq *Sequence) *Layer {
	return &Layer{
		Name:    name,
		Kind:    KindSprite,
		AnchorX: x,
		AnchorY: y,
		Alpha:   255,
		Visible: true,
		seq:     seq,
	}
}

// BackgroundConfig holds the authored settings of a background layer.
type BackgroundConfig struct {
	X, Y             int
	PeriodX, PeriodY int
	RatioX, RatioY   int
	Policy           MotionPolicy
	Alpha            uint8
	Front            bool
	Flip             bool
}

// NewBackgroundLayer creates a parallax background layer.
func NewBackgroundLayer(name string, cfg BackgroundConfig, seq *Sequence) *Layer {
	return &Layer{
		Name:    name,
		Kind:    KindBackground,
		AnchorX: cfg.X,
		AnchorY: cfg.Y,
		PeriodX: cfg.PeriodX,
		PeriodY: cfg.PeriodY,
		Policy:  cfg.Policy,
		RatioX:  cfg.RatioX,
		RatioY:  cfg.RatioY,
		Alpha:   cfg.Alpha,
		Front:   cfg.Front,
		Flip:    cfg.Flip,
		Visible: true,
		seq:     seq,
	}
}

// Start seeds the animation and drift timestamps with now. Scene.Add calls
// it; standalone users call it once before the first Render.
func (l *Layer) Start(now int64) {
	if l.seq != nil {
		l.seq.Start(now)
	}
	l.driftX.LastTick = now
	l.driftY.LastTick = now
}

// Sequence returns the layer's animation.
func (l *Layer) Sequence() *Sequence {
	return l.seq
}

// Drift returns the current drift state of both axes.
func (l *Layer) Drift() (x, y Drift) {
	return l.driftX, l.driftY
}

// SetDrift restores previously captured drift state.
func (l *Layer) SetDrift(x, y Drift) {
	l.driftX, l.driftY = x, y
}

// Render draws the layer for time now onto dst as seen through cam.
// It returns the number of draw calls issued.
func (l *Layer) Render(dst Surface, cam *Camera, now int64) int {
	return l.render(dst, cam, now, false).draws
}

func (l *Layer) render(dst Surface, cam *Camera, now int64, legacyVerticalHVDrift bool) renderResult {
	if !l.Visible || l.seq == nil {
		return renderResult{}
	}
	frame := l.seq.Current(now)
	if frame == nil {
		return renderResult{}
	}

	switch l.Kind {
	case KindBackground:
		return l.drawBackground(dst, cam, frame, now, legacyVerticalHVDrift)
	default:
		return l.drawSprite(dst, cam, frame)
	}
}

// position returns the untiled, undrifted screen position of frame.
func (l *Layer) position(cam *Camera, frame *Frame) (x, y int) {
	switch l.Kind {
	case KindBackground:
		hx, hy := cam.halfReference()
		x = l.RatioX*(cam.ShiftX-cam.CenterX+hx)/100 + l.AnchorX + frame.OriginX + hx
		y = l.RatioY*(cam.ShiftY-cam.CenterY+hy)/100 + l.AnchorY + frame.OriginY + hy
		return x, y
	default:
		return cam.WorldToScreen(l.AnchorX+frame.OriginX, l.AnchorY+frame.OriginY)
	}
}

// color returns the tint applied to every draw of the layer.
func (l *Layer) color() Color {
	return alphaColor(l.Alpha)
}

// drawSprite draws a sprite once. Static sprites entirely outside the
// viewport are skipped; animated ones always draw.
func (l *Layer) drawSprite(dst Surface, cam *Camera, frame *Frame) renderResult {
	x, y := l.position(cam, frame)
	box := Rect{X: x, Y: y, Width: frame.Width, Height: frame.Height}
	if l.seq.Static() && !box.Overlaps(cam.Viewport()) {
		return renderResult{culled: true}
	}
	dst.Draw(frame, box, l.color(), l.Flip)
	return renderResult{draws: 1}
}

// drawBackground applies parallax, drift and tiling, then advances the
// drifting axis.
func (l *Layer) drawBackground(dst Surface, cam *Camera, frame *Frame, now int64, legacyVerticalHVDrift bool) renderResult {
	x, y := l.position(cam, frame)

	px, py := l.PeriodX, l.PeriodY
	if px == 0 {
		px = frame.Width
	}
	if py == 0 {
		py = frame.Height
	}

	axis := l.Policy.DriftAxis()
	switch axis {
	case AxisX:
		x += l.driftX.Offset()
	case AxisY:
		y += l.driftY.Offset()
	}

	shape := l.Policy.Shape()
	res := renderResult{
		degenerate: !l.Policy.Known() ||
			(shape == ShapeHorizontal && px <= 0) ||
			(shape == ShapeVertical && py <= 0) ||
			(shape == ShapeBoth && (px <= 0 || py <= 0)),
	}

	tint := l.color()
	w, h := frame.Width, frame.Height
	res.draws = emitTiles(shape, tileJob{
		x: x, y: y,
		periodX: px, periodY: py,
		width: w, height: h,
		viewW: cam.Width, viewH: cam.Height,
	}, func(tx, ty int) {
		dst.Draw(frame, Rect{X: tx, Y: ty, Width: w, Height: h}, tint, l.Flip)
	})

	switch axis {
	case AxisX:
		l.driftX.Advance(now, l.RatioX, px)
	case AxisY:
		if legacyVerticalHVDrift && l.Policy == PolicyVerticalMovingHVTiling {
			// Older map tools stepped the X accumulator with the Y period
			// here, leaving the layer frozen vertically.
			l.driftX.Advance(now, l.RatioX, py)
		} else {
			l.driftY.Advance(now, l.RatioY, py)
		}
	}
	return res
}
