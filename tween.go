package mapsim

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// LayerFade animates a layer's Alpha. Create one with FadeLayer (tracked by
// the scene) or NewLayerFade (driven by the caller) and call Update(dt) each
// frame.
type LayerFade struct {
	tween  *gween.Tween
	target *Layer
	Done   bool
}

// NewLayerFade creates a fade of l's Alpha to the target opacity over
// duration seconds using the easing function.
func NewLayerFade(l *Layer, to uint8, duration float32, fn ease.TweenFunc) *LayerFade {
	return &LayerFade{
		tween:  gween.New(float32(l.Alpha), float32(to), duration, fn),
		target: l,
	}
}

// Update advances the fade by dt seconds and writes the rounded opacity to
// the layer.
func (f *LayerFade) Update(dt float32) {
	if f.Done {
		return
	}
	val, finished := f.tween.Update(dt)
	f.target.Alpha = uint8(math.Round(math.Max(0, math.Min(255, float64(val)))))
	f.Done = finished
}

// FadeLayer starts a fade on the named layer that Scene.Update advances.
// Returns nil if no such layer exists.
func (s *Scene) FadeLayer(name string, to uint8, duration float32, fn ease.TweenFunc) *LayerFade {
	l := s.Layer(name)
	if l == nil {
		return nil
	}
	f := NewLayerFade(l, to, duration, fn)
	s.fades = append(s.fades, f)
	return f
}
