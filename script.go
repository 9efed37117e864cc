package mapsim

import (
	"errors"
	"fmt"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// scriptStep is a single action in a camera script.
type scriptStep struct {
	Action  string  `yaml:"action"`
	Label   string  `yaml:"label,omitempty"`
	Layer   string  `yaml:"layer,omitempty"`
	X       int     `yaml:"x,omitempty"`
	Y       int     `yaml:"y,omitempty"`
	Seconds float32 `yaml:"seconds,omitempty"`
	Alpha   int     `yaml:"alpha,omitempty"`
	Frames  int     `yaml:"frames,omitempty"`
	MS      int64   `yaml:"ms,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `yaml:"steps"`
}

var scriptActions = map[string]bool{
	"screenshot": true,
	"pan":        true,
	"centerOn":   true,
	"scrollTo":   true,
	"wait":       true,
	"advance":    true,
	"fade":       true,
	"show":       true,
	"hide":       true,
}

// ScriptRunner plays a scripted camera walk across frames: pans, scrolls,
// fades, clock advances and screenshots. It is used for unattended captures
// of a map. Attach to a Scene via SetScript.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a YAML (or JSON) script:
//
//	steps:
//	  - {action: scrollTo, x: 400, y: 0, seconds: 2}
//	  - {action: wait, frames: 30}
//	  - {action: screenshot, label: east}
func LoadScript(data []byte) (*ScriptRunner, error) {
	var f scriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, errors.New("parse script: no steps")
	}
	for i, st := range f.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
		if (st.Action == "fade" || st.Action == "show" || st.Action == "hide") && st.Layer == "" {
			return nil, fmt.Errorf("parse script: step %d: %s needs a layer", i, st.Action)
		}
	}
	return &ScriptRunner{steps: f.Steps}, nil
}

// SetScript attaches a runner to the scene. Scene.Update steps it once per
// tick before the update callback. A nil runner detaches.
func (s *Scene) SetScript(r *ScriptRunner) {
	s.script = r
}

// Done reports whether every step has run.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one tick.
func (r *ScriptRunner) step(s *Scene) {
	if r.done {
		return
	}
	// A running scroll holds the script, so screenshots see where it ends.
	if s.camera.Scrolling() {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	cam := s.camera

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "pan":
		cam.Pan(st.X, st.Y)
	case "centerOn":
		cam.CenterOn(st.X, st.Y)
	case "scrollTo":
		cam.ScrollTo(st.X, st.Y, st.Seconds, ease.InOutQuad)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	case "advance":
		if mc, ok := s.clock.(*ManualClock); ok {
			mc.Advance(st.MS)
		} else {
			s.log.Warn().Int64("ms", st.MS).Msg("script: advance needs a manual clock, skipped")
		}
	case "fade":
		if s.FadeLayer(st.Layer, uint8(max(0, min(255, st.Alpha))), st.Seconds, ease.Linear) == nil {
			s.log.Warn().Str("layer", st.Layer).Msg("script: fade on unknown layer")
		}
	case "show", "hide":
		if l := s.Layer(st.Layer); l != nil {
			l.Visible = st.Action == "show"
		} else {
			s.log.Warn().Str("layer", st.Layer).Msgf("script: %s on unknown layer", st.Action)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !cam.Scrolling() {
		r.done = true
	}
}
