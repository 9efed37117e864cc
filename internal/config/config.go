// Package config loads the viewer's settings from a JSON/YAML file,
// MAPSIM_* environment variables and command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// WindowConfig holds window settings.
type WindowConfig struct {
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	TPS    int    `mapstructure:"tps"`
	// ShowFPS draws the FPS and frame stats overlay.
	ShowFPS bool `mapstructure:"showFPS"`
}

// RenderConfig holds render core settings.
type RenderConfig struct {
	ReferenceWidth        int  `mapstructure:"referenceWidth"`
	ReferenceHeight       int  `mapstructure:"referenceHeight"`
	LegacyVerticalHVDrift bool `mapstructure:"legacyVerticalHVDrift"`
	Debug                 bool `mapstructure:"debug"`
}

// SceneConfig locates the scene description and its frames.
type SceneConfig struct {
	File      string `mapstructure:"file"`
	AssetsDir string `mapstructure:"assetsDir"`
	Atlas     string `mapstructure:"atlas"`
	// Script is an optional camera script; the viewer exits when it ends.
	Script string `mapstructure:"script"`
	// ScreenshotDir receives screenshots taken with F12 or by the script.
	ScreenshotDir string `mapstructure:"screenshotDir"`
}

// CameraConfig holds interactive camera settings.
type CameraConfig struct {
	// ScrollSpeed is how many pixels an arrow key pans per tick.
	ScrollSpeed int `mapstructure:"scrollSpeed"`
	// RecenterSeconds is the duration of the recenter animation.
	RecenterSeconds float64 `mapstructure:"recenterSeconds"`
}

// Config is the full viewer configuration.
type Config struct {
	LogLevel string       `mapstructure:"logLevel"`
	Window   WindowConfig `mapstructure:"window"`
	Render   RenderConfig `mapstructure:"render"`
	Scene    SceneConfig  `mapstructure:"scene"`
	Camera   CameraConfig `mapstructure:"camera"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")

	v.SetDefault("window.title", "mapsim")
	v.SetDefault("window.width", 800)
	v.SetDefault("window.height", 600)
	v.SetDefault("window.tps", 60)
	v.SetDefault("window.showFPS", false)

	v.SetDefault("render.referenceWidth", 800)
	v.SetDefault("render.referenceHeight", 600)
	v.SetDefault("render.legacyVerticalHVDrift", false)
	v.SetDefault("render.debug", false)

	v.SetDefault("scene.file", "scene.yaml")
	v.SetDefault("scene.assetsDir", "assets")
	v.SetDefault("scene.atlas", "")
	v.SetDefault("scene.script", "")
	v.SetDefault("scene.screenshotDir", "screenshots")

	v.SetDefault("camera.scrollSpeed", 8)
	v.SetDefault("camera.recenterSeconds", 0.6)
}

// Flags returns the command-line flags Load understands.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("mapsim", pflag.ContinueOnError)
	fs.String("config", "", "path to a JSON or YAML config file")
	fs.String("scene", "", "scene description file (overrides scene.file)")
	fs.String("assets", "", "frame directory (overrides scene.assetsDir)")
	fs.String("log-level", "", "debug, info, warn or error")
	fs.Bool("debug", false, "log per-frame render stats")
	fs.Bool("fps", false, "show the FPS overlay")
	fs.String("script", "", "camera script to play; exits when it finishes")
	return fs
}

// Load builds the configuration from defaults, the optional config file,
// MAPSIM_* environment variables and any flags that were set, in increasing
// priority. fs may be nil.
func Load(configFile string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("MAPSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if fs != nil {
		for key, flag := range map[string]string{
			"scene.file":      "scene",
			"scene.assetsDir": "assets",
			"logLevel":        "log-level",
			"render.debug":    "debug",
			"window.showFPS":  "fps",
			"scene.script":    "script",
		} {
			if f := fs.Lookup(flag); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("error binding flag %s: %w", flag, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return &cfg, nil
}
