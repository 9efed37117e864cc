// Package assets decodes frame images from a directory tree and serves them
// to the render core as a mapsim.FrameProvider.
//
// A name resolves either to "<dir>/<name>.png" (one static frame) or to a
// directory "<dir>/<name>/" holding "0.png", "1.png", ... and an optional
// "frames.yaml" with per-frame delays and origins.
package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/mapsim"
)

// FrameMeta is one entry of frames.yaml.
type FrameMeta struct {
	Delay   int `yaml:"delay"`
	OriginX int `yaml:"originX"`
	OriginY int `yaml:"originY"`
}

// sequenceMeta is the frames.yaml document.
type sequenceMeta struct {
	// Delay applies to frames without their own entry.
	Delay  int         `yaml:"delay"`
	Frames []FrameMeta `yaml:"frames"`
}

// decoded is one image read from disk, not yet uploaded.
type decoded struct {
	img  image.Image
	meta FrameMeta
}

// Library caches frames loaded from Dir.
type Library struct {
	Dir string
	// Workers bounds concurrent decodes. Zero uses GOMAXPROCS.
	Workers int

	frames map[string][]*mapsim.Frame
}

// NewLibrary creates an empty library rooted at dir.
func NewLibrary(dir string) *Library {
	return &Library{Dir: dir, frames: make(map[string][]*mapsim.Frame)}
}

// Load decodes every named entry in parallel and uploads the results as
// ebiten images. Already loaded names are skipped. The first failure cancels
// the remaining decodes.
func (l *Library) Load(ctx context.Context, names []string) error {
	var pending []string
	seen := make(map[string]bool)
	for _, n := range names {
		if _, ok := l.frames[n]; ok || seen[n] {
			continue
		}
		seen[n] = true
		pending = append(pending, n)
	}

	results := make([][]decoded, len(pending))
	g, ctx := errgroup.WithContext(ctx)
	workers := l.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(workers)
	for i, name := range pending {
		g.Go(func() error {
			d, err := l.decode(ctx, name)
			if err != nil {
				return fmt.Errorf("assets: %s: %w", name, err)
			}
			results[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, name := range pending {
		frames := make([]*mapsim.Frame, len(results[i]))
		for j, d := range results[i] {
			f := mapsim.NewFrame(ebiten.NewImageFromImage(d.img), d.meta.Delay)
			f.OriginX, f.OriginY = d.meta.OriginX, d.meta.OriginY
			frames[j] = f
		}
		l.frames[name] = frames
	}
	return nil
}

// Frames implements mapsim.FrameProvider for names loaded by Load.
func (l *Library) Frames(name string) ([]*mapsim.Frame, error) {
	if f, ok := l.frames[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q", mapsim.ErrUnknownFrames, name)
}

// decode reads one named entry from disk.
func (l *Library) decode(ctx context.Context, name string) ([]decoded, error) {
	base := filepath.Join(l.Dir, filepath.FromSlash(name))

	if img, err := decodePNG(base + ".png"); err == nil {
		return []decoded{{img: img}}, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	files, err := frameFiles(base)
	if err != nil {
		return nil, err
	}
	meta, err := readMeta(filepath.Join(base, "frames.yaml"))
	if err != nil {
		return nil, err
	}

	out := make([]decoded, len(files))
	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := decodePNG(file)
		if err != nil {
			return nil, err
		}
		m := FrameMeta{Delay: meta.Delay}
		if i < len(meta.Frames) {
			m = meta.Frames[i]
			if m.Delay == 0 {
				m.Delay = meta.Delay
			}
		}
		out[i] = decoded{img: img, meta: m}
	}
	return out, nil
}

// frameFiles lists "<n>.png" files in dir ordered by n.
func frameFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	type numbered struct {
		n    int
		path string
	}
	var found []numbered
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		if err != nil {
			continue
		}
		found = append(found, numbered{n, filepath.Join(dir, e.Name())})
	}
	if len(found) == 0 {
		return nil, mapsim.ErrNoFrames
	}
	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })
	paths := make([]string, len(found))
	for i, f := range found {
		paths[i] = f.path
	}
	return paths, nil
}

// readMeta loads frames.yaml. A missing file yields zero delays.
func readMeta(path string) (sequenceMeta, error) {
	var m sequenceMeta
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return m, err
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parse %s: %w", path, err)
	}
	return m, nil
}

func decodePNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
