package bellshake

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const fpsRefreshInterval = 0.5 // seconds

// NewFPSWidget creates a sprite that shows the current FPS and TPS, redrawn
// about twice a second. Add it last so it draws on top.
func NewFPSWidget() *Node {
	img := ebiten.NewImage(100, 32)

	node := NewSprite("fps_widget", img)
	node.SetPosition(4, 4)

	elapsed := fpsRefreshInterval
	node.OnUpdate = func(dt float64) {
		elapsed += dt
		if elapsed < fpsRefreshInterval {
			return
		}
		elapsed = 0

		img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	return node
}
