// Package app wires the bell, its control panel, the ECS bridge and the
// configuration into a runnable demo.
package app

import (
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/bellshake"
	"github.com/phanxgames/bellshake/ecs"
	"github.com/phanxgames/bellshake/internal/config"
	"github.com/phanxgames/bellshake/internal/panel"
)

// Options are the command-line switches of a run.
type Options struct {
	ConfigPath    string
	Debug         bool
	Watch         bool
	ScriptPath    string
	ScreenshotDir string
}

// App is the bell demo.
type App struct {
	cfg     config.Config
	opts    Options
	scene   *bellshake.Scene
	bell    *bellshake.Bell
	panel   *panel.Panel
	world   donburi.World
	watcher *config.Watcher
	runner  *bellshake.TestRunner
	taps    int
}

// New builds the scene for cfg.
func New(cfg config.Config, opts Options) (*App, error) {
	easing, err := config.Easing(cfg.Bell.Easing)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, opts: opts, scene: bellshake.NewScene(), world: donburi.NewWorld()}
	a.scene.ClearColor = bellshake.ColorWhite
	a.scene.SetDebugMode(opts.Debug)
	if opts.ScreenshotDir != "" {
		a.scene.ScreenshotDir = opts.ScreenshotDir
	}

	initial := paramsFromSpec(cfg.Bell)
	a.bell = bellshake.NewBell(a.scene.Animator(), bellshake.BellOptions{
		Glyph:     bellshake.NewBellGlyph(128),
		Ease:      easing,
		ShowPivot: cfg.Bell.ShowPivot,
		Initial:   &initial,
	})
	view := a.bell.Node()
	view.SetPosition((float64(cfg.Window.Width)-view.Width)/2, 40)
	a.scene.Root().AddChild(view)

	a.panel = panel.New(a.bell, rangesFromSpec(cfg.Sliders))
	a.panel.Controller().OnError = func(ctl panel.Control, err error) {
		log.Printf("%s slider: %v", ctl, err)
	}

	a.scene.SetEntityStore(ecs.NewDonburiStore(a.world))
	ecs.ForwardShakes(a.world, a.bell)
	ecs.ShakeEventType.Subscribe(a.world, a.onShake)
	ecs.InteractionEventType.Subscribe(a.world, a.onInteraction)

	if opts.ScriptPath != "" {
		data, err := os.ReadFile(opts.ScriptPath)
		if err != nil {
			return nil, fmt.Errorf("read script: %w", err)
		}
		runner, err := bellshake.LoadTestScript(data)
		if err != nil {
			return nil, err
		}
		runner.Handler = a.scriptAction
		a.scene.SetTestRunner(runner)
		a.runner = runner
	}

	if opts.Watch && opts.ConfigPath != "" {
		w, err := config.NewWatcher(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("watch %s: %w", opts.ConfigPath, err)
		}
		a.watcher = w
	}
	return a, nil
}

// Run opens the window and blocks until it closes.
func (a *App) Run() error {
	defer a.Close()
	return bellshake.Run(a.scene, bellshake.RunConfig{
		Title:   a.cfg.Window.Title,
		Width:   a.cfg.Window.Width,
		Height:  a.cfg.Window.Height,
		ShowFPS: a.cfg.Window.ShowFPS,
		Update:  a.update,
		Overlay: a.panel.Draw,
	})
}

// Close stops the config watcher.
func (a *App) Close() error {
	if a.watcher == nil {
		return nil
	}
	return a.watcher.Close()
}

// Bell returns the bell widget.
func (a *App) Bell() *bellshake.Bell { return a.bell }

func (a *App) update() error {
	if a.runner != nil && a.runner.Done() {
		return bellshake.ErrQuit
	}
	a.drainReloads()
	if a.panel != nil {
		a.panel.Update()
	}
	events.ProcessAllEvents(a.world)
	return nil
}

// drainReloads applies every pending config reload without blocking.
func (a *App) drainReloads() {
	if a.watcher == nil {
		return
	}
	for {
		select {
		case r, ok := <-a.watcher.Reloads:
			if !ok {
				a.watcher = nil
				return
			}
			if r.Err != nil {
				log.Printf("config reload: %v", r.Err)
				continue
			}
			a.applyConfig(r.Config)
		default:
			return
		}
	}
}

// applyConfig takes over the live-tunable parts of cfg: easing, pivot
// marker, slider ranges and window title. Shake parameters stay as the
// sliders left them.
func (a *App) applyConfig(cfg config.Config) {
	easing, err := config.Easing(cfg.Bell.Easing)
	if err != nil {
		log.Printf("config reload: %v", err)
		return
	}
	a.cfg = cfg
	a.bell.SetEase(easing)
	a.bell.SetShowPivot(cfg.Bell.ShowPivot)
	if a.panel != nil {
		a.panel.SetRanges(rangesFromSpec(cfg.Sliders))
		ebiten.SetWindowTitle(cfg.Window.Title)
	}
	log.Printf("config reloaded: easing=%s ranges=%+v", cfg.Bell.Easing, rangesFromSpec(cfg.Sliders))
}

// scriptAction handles the bell actions of a test script. Angles are given in
// degrees.
func (a *App) scriptAction(action string, value float64) bool {
	var err error
	switch action {
	case "duration":
		err = a.bell.SetDuration(value)
	case "angle":
		err = a.bell.SetAngle(config.Radians(value))
	case "pivot":
		err = a.bell.SetPivotFraction(value)
	case "shake":
		a.bell.TriggerShake()
	case "reset":
		if a.panel != nil {
			a.panel.Reset()
		} else {
			a.bell.Reset()
		}
	default:
		return false
	}
	if err != nil {
		log.Printf("script %s: %v", action, err)
	}
	return true
}

func (a *App) onShake(_ donburi.World, ev bellshake.ShakeEvent) {
	if a.panel != nil {
		a.panel.Refresh()
	}
	if a.opts.Debug {
		log.Printf("shake #%d: %s", ev.Count, ev.Schedule)
	}
}

func (a *App) onInteraction(_ donburi.World, ev bellshake.InteractionEvent) {
	if ev.Type != bellshake.EventClick {
		return
	}
	a.taps++
	if a.opts.Debug {
		log.Printf("tap #%d on entity %d at (%.0f, %.0f)", a.taps, ev.EntityID, ev.GlobalX, ev.GlobalY)
	}
}

func paramsFromSpec(s config.BellSpec) bellshake.ShakeParameters {
	return bellshake.ShakeParameters{
		Duration:      s.Duration,
		Angle:         s.Angle(),
		PivotFraction: bellshake.Vec2{X: 0.5, Y: s.Pivot},
	}
}

func rangesFromSpec(s config.SlidersSpec) panel.Ranges {
	return panel.Ranges{DurationMax: s.DurationMax, AngleMax: s.AngleMax()}
}
