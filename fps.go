package openlime

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const fpsRefreshMs = 500

// fpsOverlay shows FPS, TPS and the camera pose in the top-left corner. The
// text is re-rendered every fpsRefreshMs.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed float64
}

func (f *fpsOverlay) update(dtMs float64, view View) {
	f.elapsed += dtMs
	if f.img != nil && f.elapsed < fpsRefreshMs {
		return
	}
	f.elapsed = 0
	if f.img == nil {
		// "FPS: 60.0\nTPS: 60.0\nZ: 1.000 A: 0.0"
		f.img = ebiten.NewImage(140, 48)
	}
	f.img.Clear()
	f.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(f.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nZ: %.3f A: %.1f",
		ebiten.ActualFPS(), ebiten.ActualTPS(), view.Z, view.A))
}

func (f *fpsOverlay) draw(screen *ebiten.Image) {
	if f.img == nil {
		return
	}
	screen.DrawImage(f.img, nil)
}
