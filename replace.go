package mapsim

// ReplaceResult is the answer to "a layer with this name already exists,
// replace it?".
type ReplaceResult uint8

const (
	ReplaceNo       ReplaceResult = iota // keep the existing layer
	ReplaceYes                           // replace this one
	ReplaceYesToAll                      // replace this and every later conflict
	ReplaceNoToAll                       // keep this and every later conflict
)

// ReplacePrompt asks whether an existing layer should be replaced. Calls may
// block on user input.
type ReplacePrompt interface {
	ConfirmReplace(name string) ReplaceResult
}

// ReplacePromptFunc adapts a function to ReplacePrompt.
type ReplacePromptFunc func(name string) ReplaceResult

// ConfirmReplace calls f.
func (f ReplacePromptFunc) ConfirmReplace(name string) ReplaceResult {
	return f(name)
}

// StickyPrompt wraps a prompt and remembers a YesToAll or NoToAll answer,
// after which the wrapped prompt is no longer consulted.
type StickyPrompt struct {
	Prompt ReplacePrompt
	sticky ReplaceResult
	set    bool
}

// ConfirmReplace returns the remembered answer or asks the wrapped prompt.
// A nil wrapped prompt answers No.
func (p *StickyPrompt) ConfirmReplace(name string) ReplaceResult {
	if p.set {
		return p.sticky
	}
	if p.Prompt == nil {
		return ReplaceNo
	}
	r := p.Prompt.ConfirmReplace(name)
	if r == ReplaceYesToAll || r == ReplaceNoToAll {
		p.sticky, p.set = r, true
	}
	return r
}

// replaces reports whether r means "replace".
func (r ReplaceResult) replaces() bool {
	return r == ReplaceYes || r == ReplaceYesToAll
}

// ImportReport counts what Scene.Import did.
type ImportReport struct {
	Added    int
	Replaced int
	Skipped  int
}

// Import adds layers to the scene. When a named layer already exists,
// prompt decides whether the incoming one replaces it in place. A nil prompt
// keeps existing layers.
func (s *Scene) Import(layers []*Layer, prompt ReplacePrompt) ImportReport {
	var rep ImportReport
	sticky := &StickyPrompt{Prompt: prompt}
	for _, l := range layers {
		old := s.Layer(l.Name)
		if old == nil {
			_ = s.Add(l)
			rep.Added++
			continue
		}
		if sticky.ConfirmReplace(l.Name).replaces() {
			s.replace(old, l)
			rep.Replaced++
		} else {
			rep.Skipped++
		}
	}
	return rep
}
