package mapsim

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// ErrDuplicateLayer is returned by Scene.Add when a named layer already exists.
var ErrDuplicateLayer = errors.New("mapsim: duplicate layer name")

const defaultCommandCap = 256

// Scene owns the layers, the camera and the clock, and renders the layers
// back to front each frame.
type Scene struct {
	// LegacyVerticalHVDrift reproduces older map tools, where
	// VerticalMovingHVTiling layers stepped their X accumulator with the Y
	// period and never drifted vertically. It is false by default, so such
	// layers drift along Y unless set.
	LegacyVerticalHVDrift bool
	// ClearColor fills the screen before drawing when its alpha is non-zero.
	ClearColor Color
	// ShowFPS draws an FPS and frame stats overlay on top of the scene.
	ShowFPS bool
	// ScreenshotDir is the directory Screenshot writes PNGs to.
	ScreenshotDir string

	layers []*Layer
	byName map[string]*Layer
	camera *Camera
	clock  Clock
	log    zerolog.Logger
	debug  bool

	fades      []*LayerFade
	updateFunc func() error
	script     *ScriptRunner

	screenshotQueue []string

	commands CommandBuffer
	surface  EbitenSurface
	stats    FrameStats
}

// NewScene creates an empty scene. A nil camera defaults to an 800x600
// viewport and a nil clock to the system clock.
func NewScene(cam *Camera, clock Clock) *Scene {
	if cam == nil {
		cam = NewCamera(DefaultReferenceWidth, DefaultReferenceHeight)
	}
	if clock == nil {
		clock = NewSystemClock()
	}
	return &Scene{
		ScreenshotDir: DefaultScreenshotDir,

		byName:   make(map[string]*Layer),
		camera:   cam,
		clock:    clock,
		log:      zerolog.Nop(),
		commands: CommandBuffer{Commands: make([]DrawCommand, 0, defaultCommandCap)},
	}
}

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// Clock returns the scene's time source.
func (s *Scene) Clock() Clock {
	return s.clock
}

// SetLogger sets the logger used for debug output and warnings.
func (s *Scene) SetLogger(l zerolog.Logger) {
	s.log = l
}

// SetDebugMode enables per-frame stats logging at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// SetUpdateFunc registers a callback run at the end of every Update. A
// non-nil error from it stops Run.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Add appends a layer and starts its timers. Named layers must be unique;
// unnamed layers are never checked.
func (s *Scene) Add(l *Layer) error {
	if l.Name != "" {
		if _, ok := s.byName[l.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateLayer, l.Name)
		}
		s.byName[l.Name] = l
	}
	l.Start(s.clock.Now())
	s.layers = append(s.layers, l)
	return nil
}

// Layer returns the layer with the given name, or nil.
func (s *Scene) Layer(name string) *Layer {
	return s.byName[name]
}

// Layers returns every layer in insertion order. The returned slice MUST NOT
// be mutated.
func (s *Scene) Layers() []*Layer {
	return s.layers
}

// Remove deletes the named layer. Reports whether it existed.
func (s *Scene) Remove(name string) bool {
	l, ok := s.byName[name]
	if !ok {
		return false
	}
	delete(s.byName, name)
	for i, c := range s.layers {
		if c == l {
			s.layers = append(s.layers[:i], s.layers[i+1:]...)
			break
		}
	}
	return true
}

// replace swaps the named layer for l in place, keeping its draw position.
func (s *Scene) replace(old, l *Layer) {
	for i, c := range s.layers {
		if c == old {
			s.layers[i] = l
			break
		}
	}
	delete(s.byName, old.Name)
	s.byName[l.Name] = l
	l.Start(s.clock.Now())
}

// Update steps the attached script, advances the camera scroll and layer
// fades by dt seconds, then runs the update callback.
func (s *Scene) Update(dt float32) error {
	if s.script != nil {
		s.script.step(s)
	}
	s.camera.Update(dt)

	live := s.fades[:0]
	for _, f := range s.fades {
		f.Update(dt)
		if !f.Done {
			live = append(live, f)
		}
	}
	clear(s.fades[len(live):])
	s.fades = live

	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// Render draws every visible layer onto dst: back backgrounds, then
// sprites, then front backgrounds. It returns this frame's stats.
func (s *Scene) Render(dst Surface) FrameStats {
	var stats FrameStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	now := s.clock.Now()
	s.renderPass(dst, now, &stats, func(l *Layer) bool { return l.Kind == KindBackground && !l.Front })
	s.renderPass(dst, now, &stats, func(l *Layer) bool { return l.Kind == KindSprite })
	s.renderPass(dst, now, &stats, func(l *Layer) bool { return l.Kind == KindBackground && l.Front })

	if s.debug {
		stats.RenderTime = time.Since(t0)
		s.debugLog(stats)
	}
	s.stats = stats
	return stats
}

func (s *Scene) renderPass(dst Surface, now int64, stats *FrameStats, match func(*Layer) bool) {
	for _, l := range s.layers {
		if !l.Visible || !match(l) {
			continue
		}
		res := l.render(dst, s.camera, now, s.LegacyVerticalHVDrift)
		stats.Layers++
		stats.Draws += res.draws
		if res.culled {
			stats.Culled++
		}
		if res.degenerate && !l.reported {
			l.reported = true
			s.log.Debug().
				Str("layer", l.Name).
				Str("policy", l.Policy.String()).
				Int("periodX", l.PeriodX).
				Int("periodY", l.PeriodY).
				Msg("degenerate tiling, drawing once")
		}
	}
}

// Draw renders the scene onto screen. Draws are recorded first and then
// submitted, so stats are available even when the screen is nil.
func (s *Scene) Draw(screen *ebiten.Image) {
	s.commands.Reset()
	s.Render(&s.commands)
	if screen == nil {
		return
	}
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.Premultiplied())
	}
	s.surface.Target = screen
	s.commands.Replay(&s.surface)
	s.flushScreenshots(screen)
	if s.ShowFPS {
		s.drawOverlay(screen)
	}
}

// Stats returns the stats of the most recent Render.
func (s *Scene) Stats() FrameStats {
	return s.stats
}
