package mapsim

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrUnknownFrames is returned by a FrameProvider that has nothing under the
// requested name.
var ErrUnknownFrames = errors.New("mapsim: unknown frames")

// FrameProvider supplies decoded frames by name. A single name may resolve
// to one frame or to an ordered animation.
type FrameProvider interface {
	Frames(name string) ([]*Frame, error)
}

// Atlas holds one or more atlas page images and the frames cut from them.
type Atlas struct {
	// Pages contains the atlas page images indexed by page number.
	Pages  []*ebiten.Image
	frames map[string]*Frame
}

// LoadAtlas parses TexturePacker or Aseprite JSON and cuts frames out of the
// given pages. Supports the hash format (a "frames" object), the Aseprite
// array format (a "frames" array with "filename" keys) and the multi-page
// format ("textures" with per-page frame lists). A frame's "duration", when
// present, becomes its delay in milliseconds.
func LoadAtlas(jsonData []byte, pages []*ebiten.Image) (*Atlas, error) {
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("mapsim: failed to parse atlas JSON: %w", err)
	}

	atlas := &Atlas{
		Pages:  pages,
		frames: make(map[string]*Frame),
	}

	var err error
	switch {
	case probe.Textures != nil:
		err = parseArrayFormat(probe.Textures, atlas)
	case probe.Frames != nil:
		err = parseFrames(probe.Frames, 0, atlas)
	default:
		err = errors.New("mapsim: atlas JSON has neither \"frames\" nor \"textures\" key")
	}
	if err != nil {
		return nil, err
	}
	return atlas, nil
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Filename         string   `json:"filename"`
	Frame            jsonRect `json:"frame"`
	Rotated          bool     `json:"rotated"`
	SpriteSourceSize jsonRect `json:"spriteSourceSize"`
	Duration         int      `json:"duration"`
}

type jsonTexturePage struct {
	Image  string          `json:"image"`
	Frames json.RawMessage `json:"frames"`
}

// parseFrames accepts either {"name": {frame}, ...} or [{"filename": ...}, ...].
func parseFrames(raw json.RawMessage, page int, atlas *Atlas) error {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var list []jsonFrame
		if err := json.Unmarshal(raw, &list); err != nil {
			return fmt.Errorf("mapsim: failed to parse atlas frames: %w", err)
		}
		for _, f := range list {
			if err := atlas.addFrame(f.Filename, f, page); err != nil {
				return err
			}
		}
		return nil
	}

	var frames map[string]jsonFrame
	if err := json.Unmarshal(raw, &frames); err != nil {
		return fmt.Errorf("mapsim: failed to parse atlas frames: %w", err)
	}
	for name, f := range frames {
		if err := atlas.addFrame(name, f, page); err != nil {
			return err
		}
	}
	return nil
}

// parseArrayFormat parses [{"image":"...", "frames":{...}}, ...].
func parseArrayFormat(raw json.RawMessage, atlas *Atlas) error {
	var textures []jsonTexturePage
	if err := json.Unmarshal(raw, &textures); err != nil {
		return fmt.Errorf("mapsim: failed to parse atlas textures array: %w", err)
	}
	for i, tex := range textures {
		if err := parseFrames(tex.Frames, i, atlas); err != nil {
			return err
		}
	}
	return nil
}

func (a *Atlas) addFrame(name string, f jsonFrame, page int) error {
	if name == "" {
		return errors.New("mapsim: atlas frame has no name")
	}
	if f.Rotated {
		return fmt.Errorf("mapsim: atlas frame %q is rotated; export without rotation", name)
	}
	// Trimmed frames keep their packed size; the trim offset becomes the
	// origin so they still land where the untrimmed image would have.
	fr := &Frame{
		Width:   f.Frame.W,
		Height:  f.Frame.H,
		Delay:   f.Duration,
		OriginX: f.SpriteSourceSize.X,
		OriginY: f.SpriteSourceSize.Y,
	}
	if page < len(a.Pages) && a.Pages[page] != nil {
		rect := image.Rect(f.Frame.X, f.Frame.Y, f.Frame.X+f.Frame.W, f.Frame.Y+f.Frame.H)
		fr.Image = a.Pages[page].SubImage(rect).(*ebiten.Image)
	}
	a.frames[stripExt(name)] = fr
	return nil
}

// stripExt drops a trailing image extension so "sky/0.png" is stored as
// "sky/0".
func stripExt(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".png", ".bmp", ".jpg", ".jpeg", ".gif":
		return strings.TrimSuffix(name, path.Ext(name))
	}
	return name
}

// Frame returns the single frame stored under name, or nil.
func (a *Atlas) Frame(name string) *Frame {
	return a.frames[stripExt(name)]
}

// Frames resolves name to a frame list. An exact match yields one frame;
// otherwise frames named "name/0", "name/1", ... are returned in index
// order.
func (a *Atlas) Frames(name string) ([]*Frame, error) {
	if f := a.Frame(name); f != nil {
		return []*Frame{f}, nil
	}
	frames := numberedFrames(a.frames, name)
	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFrames, name)
	}
	return frames, nil
}

// numberedFrames collects entries keyed "prefix/<n>" sorted by n.
func numberedFrames(all map[string]*Frame, prefix string) []*Frame {
	type indexed struct {
		n int
		f *Frame
	}
	var found []indexed
	p := prefix + "/"
	for key, f := range all {
		rest, ok := strings.CutPrefix(key, p)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		found = append(found, indexed{n, f})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })
	out := make([]*Frame, len(found))
	for i, e := range found {
		out[i] = e.f
	}
	return out
}
