// Command mapsim opens a window on a scene description and lets the user
// pan around it with the arrow keys. C scrolls back to the start position and
// F12 saves a screenshot. With --script the camera follows a script instead
// and the program exits when it ends.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/mapsim"
	"github.com/phanxgames/mapsim/internal/assets"
	"github.com/phanxgames/mapsim/internal/config"
	"github.com/phanxgames/mapsim/internal/logging"
)

func main() {
	fs := config.Flags()
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	configFile, _ := fs.GetString("config")

	cfg, err := config.Load(configFile, fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logging.New(os.Stderr, cfg.LogLevel)

	scene, err := buildScene(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build scene")
	}

	log.Info().
		Str("scene", cfg.Scene.File).
		Int("layers", len(scene.Layers())).
		Msg("scene loaded")

	err = mapsim.Run(scene, mapsim.RunConfig{
		Title:   cfg.Window.Title,
		Width:   cfg.Window.Width,
		Height:  cfg.Window.Height,
		TPS:     cfg.Window.TPS,
		ShowFPS: cfg.Window.ShowFPS,
	})
	if err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal().Err(err).Msg("run failed")
	}
}

// buildScene loads the scene description, its frames and wires the camera
// controls.
func buildScene(cfg *config.Config, log zerolog.Logger) (*mapsim.Scene, error) {
	data, err := os.ReadFile(cfg.Scene.File)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	desc, err := mapsim.ParseSceneDesc(data)
	if err != nil {
		return nil, err
	}

	provider, err := loadFrames(cfg, desc)
	if err != nil {
		return nil, err
	}
	layers, err := desc.BuildLayers(provider)
	if err != nil {
		return nil, err
	}

	cam := desc.BuildCamera()
	cam.ReferenceWidth = cfg.Render.ReferenceWidth
	cam.ReferenceHeight = cfg.Render.ReferenceHeight

	scene := mapsim.NewScene(cam, mapsim.NewSystemClock())
	scene.SetLogger(log)
	scene.SetDebugMode(cfg.Render.Debug)
	scene.LegacyVerticalHVDrift = cfg.Render.LegacyVerticalHVDrift
	scene.ClearColor = mapsim.Color{R: 0.1, G: 0.1, B: 0.12, A: 1}
	scene.ScreenshotDir = cfg.Scene.ScreenshotDir
	for _, l := range layers {
		if err := scene.Add(l); err != nil {
			return nil, err
		}
	}

	if cfg.Scene.Script != "" {
		if err := attachScript(scene, cfg.Scene.Script, log); err != nil {
			return nil, err
		}
		return scene, nil
	}

	startX, startY := cam.ShiftX, cam.ShiftY
	speed := cfg.Camera.ScrollSpeed
	recenter := float32(cfg.Camera.RecenterSeconds)
	scene.SetUpdateFunc(func() error {
		if cam.Scrolling() {
			return nil
		}
		var dx, dy int
		if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
			dx -= speed
		}
		if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
			dx += speed
		}
		if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
			dy -= speed
		}
		if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
			dy += speed
		}
		if dx != 0 || dy != 0 {
			cam.Pan(dx, dy)
		}
		if ebiten.IsKeyPressed(ebiten.KeyC) {
			cam.ScrollTo(startX, startY, recenter, ease.OutQuad)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
			scene.Screenshot("manual")
		}
		return nil
	})
	return scene, nil
}

// attachScript plays the script at path and ends the run one tick after it
// finishes, so the last queued screenshot is written first.
func attachScript(scene *mapsim.Scene, path string, log zerolog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	runner, err := mapsim.LoadScript(data)
	if err != nil {
		return err
	}
	scene.SetScript(runner)

	finished := false
	scene.SetUpdateFunc(func() error {
		if !runner.Done() {
			return nil
		}
		if finished {
			log.Info().Str("script", path).Msg("script finished")
			return ebiten.Termination
		}
		finished = true
		return nil
	})
	return nil
}

// loadFrames returns the atlas when one is configured, otherwise decodes the
// frames named by the scene from the assets directory.
func loadFrames(cfg *config.Config, desc *mapsim.SceneDesc) (mapsim.FrameProvider, error) {
	if cfg.Scene.Atlas != "" {
		return loadAtlas(cfg.Scene.Atlas)
	}
	names := make([]string, 0, len(desc.Layers))
	for _, l := range desc.Layers {
		names = append(names, l.Frames)
	}
	lib := assets.NewLibrary(cfg.Scene.AssetsDir)
	if err := lib.Load(context.Background(), names); err != nil {
		return nil, err
	}
	return lib, nil
}

// loadAtlas reads "<path>.json" and its single page "<path>.png".
func loadAtlas(path string) (*mapsim.Atlas, error) {
	data, err := os.ReadFile(path + ".json")
	if err != nil {
		return nil, fmt.Errorf("read atlas: %w", err)
	}
	lib := assets.NewLibrary("")
	if err := lib.Load(context.Background(), []string{path}); err != nil {
		return nil, err
	}
	pages, err := lib.Frames(path)
	if err != nil {
		return nil, err
	}
	return mapsim.LoadAtlas(data, []*ebiten.Image{pages[0].Image})
}
