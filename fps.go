package mapsim

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// drawOverlay prints FPS, TPS and the last frame's stats in the top-left
// corner of screen.
func (s *Scene) drawOverlay(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, overlayText(s.stats, s.camera, ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func overlayText(st FrameStats, cam *Camera, fps, tps float64) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nlayers %d  draws %d  culled %d\nshift %d,%d",
		fps, tps, st.Layers, st.Draws, st.Culled, cam.ShiftX, cam.ShiftY)
}
