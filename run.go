package mapsim

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title string
	// Width and Height size the window. Zero uses the camera viewport.
	Width, Height int
	// TPS sets ebiten's ticks per second. Zero keeps the default (60).
	TPS int
	// ShowFPS turns on the scene's FPS overlay.
	ShowFPS bool
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
}

func (g *game) Update() error {
	return g.scene.Update(float32(1.0 / float64(ebiten.TPS())))
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

// Layout renders at the camera's viewport size; ebiten scales it to the
// window.
func (g *game) Layout(_, _ int) (int, int) {
	cam := g.scene.Camera()
	return cam.Width, cam.Height
}

// Run opens a window and drives scene until the window closes or the scene's
// update callback returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = scene.Camera().Width, scene.Camera().Height
	}
	ebiten.SetWindowSize(w, h)
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	if cfg.ShowFPS {
		scene.ShowFPS = true
	}
	return ebiten.RunGame(&game{scene: scene})
}
