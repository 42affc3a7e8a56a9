package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/bellshake"
	"github.com/phanxgames/bellshake/internal/config"
)

type frameOut struct {
	Index    int     `yaml:"index"`
	Start    float64 `yaml:"start"`
	Length   float64 `yaml:"length"`
	Rotation float64 `yaml:"rotation"`
}

type scheduleOut struct {
	Duration float64    `yaml:"duration"`
	Angle    float64    `yaml:"angle"`
	Pivot    float64    `yaml:"pivot"`
	Frames   []frameOut `yaml:"frames"`
}

func scheduleCmd() *cobra.Command {
	var duration, angleDeg, pivot float64
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the keyframes of one shake as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("duration") {
				duration = cfg.Bell.Duration
			}
			if !cmd.Flags().Changed("angle") {
				angleDeg = cfg.Bell.AngleDegrees
			}
			if !cmd.Flags().Changed("pivot") {
				pivot = cfg.Bell.Pivot
			}
			return writeSchedule(cmd.OutOrStdout(), duration, config.Radians(angleDeg), pivot)
		},
	}
	cmd.Flags().Float64Var(&duration, "duration", 1, "total shake duration in seconds")
	cmd.Flags().Float64Var(&angleDeg, "angle", 22.5, "maximum tilt in degrees")
	cmd.Flags().Float64Var(&pivot, "pivot", 0.5, "vertical pivot as a fraction of the glyph height")
	return cmd
}

// writeSchedule validates the inputs the way Bell does (non-finite values are
// rejected, the pivot is clamped) and prints the resulting schedule.
func writeSchedule(w io.Writer, duration, angle, pivot float64) error {
	p, err := bellshake.ShakeParameters{
		Duration:      duration,
		Angle:         angle,
		PivotFraction: bellshake.Vec2{X: 0.5, Y: pivot},
	}.Normalize()
	if err != nil {
		return err
	}
	s := bellshake.BuildSchedule(p.Duration, p.Angle)
	out := scheduleOut{Duration: p.Duration, Angle: p.Angle, Pivot: p.PivotFraction.Y}
	for i, f := range s.Frames {
		out.Frames = append(out.Frames, frameOut{
			Index:    i,
			Start:    s.StartTime(i),
			Length:   s.FrameTime(),
			Rotation: f.Value,
		})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}
	return enc.Close()
}
