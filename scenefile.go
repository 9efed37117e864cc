package mapsim

import (
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// SceneDesc is the YAML authoring data a Scene is built from.
type SceneDesc struct {
	Camera CameraDesc  `yaml:"camera"`
	Layers []LayerDesc `yaml:"layers"`
}

// CameraDesc describes the initial camera.
type CameraDesc struct {
	Width   int   `yaml:"width"`
	Height  int   `yaml:"height"`
	ShiftX  int   `yaml:"shiftX"`
	ShiftY  int   `yaml:"shiftY"`
	CenterX int   `yaml:"centerX"`
	CenterY int   `yaml:"centerY"`
	Bounds  *Rect `yaml:"bounds"`
}

// LayerDesc describes one layer. Field names follow the map format: cx/cy
// are tiling periods, rx/ry parallax ratios and a the opacity.
type LayerDesc struct {
	Name   string       `yaml:"name"`
	Kind   string       `yaml:"kind"` // "sprite" (default) or "background"
	Frames string       `yaml:"frames"`
	X      int          `yaml:"x"`
	Y      int          `yaml:"y"`
	CX     int          `yaml:"cx"`
	CY     int          `yaml:"cy"`
	RX     int          `yaml:"rx"`
	RY     int          `yaml:"ry"`
	Type   MotionPolicy `yaml:"type"`
	A      *int         `yaml:"a"`
	Front  bool         `yaml:"front"`
	Flip   bool         `yaml:"flip"`
	Hidden bool         `yaml:"hidden"`
}

// UnmarshalYAML accepts either a policy name or its numeric value. Unknown
// numbers are kept and render as Regular.
func (p *MotionPolicy) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("mapsim: line %d: motion policy must be a scalar", value.Line)
	}
	if n, err := strconv.Atoi(value.Value); err == nil {
		if n < 0 || n > 255 {
			return fmt.Errorf("mapsim: line %d: motion policy %d out of range", value.Line, n)
		}
		*p = MotionPolicy(n)
		return nil
	}
	pol, ok := ParsePolicy(value.Value)
	if !ok {
		return fmt.Errorf("mapsim: line %d: unknown motion policy %q", value.Line, value.Value)
	}
	*p = pol
	return nil
}

// MarshalYAML writes the policy by name.
func (p MotionPolicy) MarshalYAML() (any, error) {
	if !p.Known() {
		return int(p), nil
	}
	return p.String(), nil
}

// ParseSceneDesc decodes YAML scene data.
func ParseSceneDesc(data []byte) (*SceneDesc, error) {
	var d SceneDesc
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("mapsim: failed to parse scene: %w", err)
	}
	return &d, nil
}

// BuildCamera creates the described camera. Missing sizes default to the
// reference viewport.
func (d *SceneDesc) BuildCamera() *Camera {
	w, h := d.Camera.Width, d.Camera.Height
	if w <= 0 {
		w = DefaultReferenceWidth
	}
	if h <= 0 {
		h = DefaultReferenceHeight
	}
	cam := NewCamera(w, h)
	cam.ShiftX, cam.ShiftY = d.Camera.ShiftX, d.Camera.ShiftY
	cam.CenterX, cam.CenterY = d.Camera.CenterX, d.Camera.CenterY
	if d.Camera.Bounds != nil {
		cam.SetBounds(*d.Camera.Bounds)
	}
	return cam
}

// BuildLayers resolves every layer's frames through p and constructs the
// layers in file order.
func (d *SceneDesc) BuildLayers(p FrameProvider) ([]*Layer, error) {
	layers := make([]*Layer, 0, len(d.Layers))
	for i := range d.Layers {
		l, err := d.Layers[i].build(p)
		if err != nil {
			return nil, fmt.Errorf("mapsim: layer %d (%q): %w", i, d.Layers[i].Name, err)
		}
		layers = append(layers, l)
	}
	return layers, nil
}

func (ld *LayerDesc) build(p FrameProvider) (*Layer, error) {
	if ld.Frames == "" {
		return nil, errors.New("no frames named")
	}
	frames, err := p.Frames(ld.Frames)
	if err != nil {
		return nil, err
	}

	var seq *Sequence
	if len(frames) == 1 {
		seq = NewStaticSequence(frames[0])
	} else if seq, err = NewSequence(frames...); err != nil {
		return nil, err
	}

	alpha := 255
	if ld.A != nil {
		alpha = max(0, min(255, *ld.A))
	}

	var l *Layer
	switch ld.Kind {
	case "", "sprite":
		l = NewSpriteLayer(ld.Name, ld.X, ld.Y, seq)
		l.Alpha = uint8(alpha)
		l.Flip = ld.Flip
	case "background":
		l = NewBackgroundLayer(ld.Name, BackgroundConfig{
			X: ld.X, Y: ld.Y,
			PeriodX: max(0, ld.CX), PeriodY: max(0, ld.CY),
			RatioX: ld.RX, RatioY: ld.RY,
			Policy: ld.Type,
			Alpha:  uint8(alpha),
			Front:  ld.Front,
			Flip:   ld.Flip,
		}, seq)
	default:
		return nil, fmt.Errorf("unknown layer kind %q", ld.Kind)
	}
	l.Visible = !ld.Hidden
	return l, nil
}

// LoadScene parses YAML scene data and builds a ready-to-render Scene.
func LoadScene(data []byte, p FrameProvider, clock Clock) (*Scene, error) {
	d, err := ParseSceneDesc(data)
	if err != nil {
		return nil, err
	}
	layers, err := d.BuildLayers(p)
	if err != nil {
		return nil, err
	}
	s := NewScene(d.BuildCamera(), clock)
	for _, l := range layers {
		if err := s.Add(l); err != nil {
			return nil, err
		}
	}
	return s, nil
}
