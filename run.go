package bellshake

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrQuit may be returned from an update function to end Run without error.
var ErrQuit = errors.New("bellshake: quit")

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool

	// Update runs every tick before the scene updates.
	Update func() error
	// Overlay draws on top of the scene every frame.
	Overlay func(screen *ebiten.Image)
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
	cfg   RunConfig
}

func (g *game) Update() error {
	if g.cfg.Update != nil {
		if err := g.cfg.Update(); err != nil {
			return err
		}
	}
	g.scene.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.cfg.Overlay != nil {
		g.cfg.Overlay(screen)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and drives the scene until the window closes or an
// update function fails. ErrQuit is reported as a clean exit.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.ShowFPS {
		scene.Root().AddChild(NewFPSWidget())
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(&game{scene: scene, cfg: cfg})
	if errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}
