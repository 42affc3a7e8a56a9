// Package config loads the bellshake YAML configuration.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid value")

// Config is the whole settings file: window, starting bell parameters and
// slider ranges.
type Config struct {
	Window  WindowSpec  `yaml:"window"`
	Bell    BellSpec    `yaml:"bell"`
	Sliders SlidersSpec `yaml:"sliders"`
}

// WindowSpec sizes and titles the game window.
type WindowSpec struct {
	Title   string `yaml:"title"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	ShowFPS bool   `yaml:"show_fps"`
}

// BellSpec holds the bell's starting parameters. Angles are in degrees.
type BellSpec struct {
	Duration     float64 `yaml:"duration"`
	AngleDegrees float64 `yaml:"angle_degrees"`
	Pivot        float64 `yaml:"pivot"`
	Easing       string  `yaml:"easing"`
	ShowPivot    bool    `yaml:"show_pivot"`
}

// SlidersSpec sets what a slider at its far end maps to.
type SlidersSpec struct {
	DurationMax     float64 `yaml:"duration_max"`
	AngleMaxDegrees float64 `yaml:"angle_max_degrees"`
}

// Default returns the built-in configuration: a 1s shake tilting 22.5
// degrees about the center, sliders spanning 0..2s and 0..90 degrees.
func Default() Config {
	return Config{
		Window: WindowSpec{
			Title:  "Bell Shake",
			Width:  375,
			Height: 667,
		},
		Bell: BellSpec{
			Duration:     1,
			AngleDegrees: 22.5,
			Pivot:        0.5,
			Easing:       "linear",
		},
		Sliders: SlidersSpec{
			DurationMax:     2,
			AngleMaxDegrees: 90,
		},
	}
}

// Load reads path over the defaults. An empty path or a missing file yields
// Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: load %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks ranges and the easing name.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d: %w", c.Window.Width, c.Window.Height, ErrInvalid)
	case !finite(c.Bell.Duration) || c.Bell.Duration < 0:
		return fmt.Errorf("bell.duration %v: %w", c.Bell.Duration, ErrInvalid)
	case !finite(c.Bell.AngleDegrees):
		return fmt.Errorf("bell.angle_degrees %v: %w", c.Bell.AngleDegrees, ErrInvalid)
	case !finite(c.Bell.Pivot) || c.Bell.Pivot < 0 || c.Bell.Pivot > 1:
		return fmt.Errorf("bell.pivot %v: %w", c.Bell.Pivot, ErrInvalid)
	case !finite(c.Sliders.DurationMax) || c.Sliders.DurationMax <= 0:
		return fmt.Errorf("sliders.duration_max %v: %w", c.Sliders.DurationMax, ErrInvalid)
	case !finite(c.Sliders.AngleMaxDegrees) || c.Sliders.AngleMaxDegrees <= 0:
		return fmt.Errorf("sliders.angle_max_degrees %v: %w", c.Sliders.AngleMaxDegrees, ErrInvalid)
	}
	if _, err := Easing(c.Bell.Easing); err != nil {
		return err
	}
	return nil
}

// Angle returns the bell angle in radians.
func (b BellSpec) Angle() float64 {
	return Radians(b.AngleDegrees)
}

// AngleMax returns the angle slider range in radians.
func (s SlidersSpec) AngleMax() float64 {
	return Radians(s.AngleMaxDegrees)
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,
	"in-sine":      ease.InSine,
	"out-sine":     ease.OutSine,
	"in-out-sine":  ease.InOutSine,
	"out-back":     ease.OutBack,
	"out-bounce":   ease.OutBounce,
	"out-elastic":  ease.OutElastic,
}

// Easing looks an easing function up by name (case-insensitive, "_" and "-"
// interchangeable). The empty name is linear.
func Easing(name string) (ease.TweenFunc, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	if key == "" {
		return ease.Linear, nil
	}
	fn, ok := easings[key]
	if !ok {
		return nil, fmt.Errorf("easing %q (known: %s): %w", name, strings.Join(EasingNames(), ", "), ErrInvalid)
	}
	return fn, nil
}

// EasingNames lists the accepted easing names in sorted order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for k := range easings {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
