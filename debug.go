package mapsim

import "time"

// FrameStats holds per-frame render metrics.
type FrameStats struct {
	Layers     int // visible layers rendered
	Culled     int // static sprites skipped as off screen
	Draws      int // draw calls issued
	RenderTime time.Duration
}

// debugLog writes frame stats to the scene logger. Only called in debug mode.
func (s *Scene) debugLog(stats FrameStats) {
	if !s.debug {
		return
	}
	s.log.Debug().
		Int("layers", stats.Layers).
		Int("culled", stats.Culled).
		Int("draws", stats.Draws).
		Dur("render", stats.RenderTime).
		Msg("frame")
}
