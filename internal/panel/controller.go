// Package panel is the control surface of the bell demo: three sliders for
// duration, angle and pivot, and a reset button.
package panel

import (
	"fmt"
	"math"

	"github.com/phanxgames/bellshake"
)

// Steps is the integer range of every slider: 0..Steps maps to 0..1.
const Steps = 1000

// ResetPosition is where Reset puts every slider.
const ResetPosition = 0.5

// Target is the widget the panel drives.
type Target interface {
	SetDuration(seconds float64) error
	SetAngle(radians float64) error
	SetPivotFraction(y float64) error
	Reset()
	Params() bellshake.ShakeParameters
}

// Control identifies one slider.
type Control int

const (
	ControlDuration Control = iota
	ControlAngle
	ControlPivot
	controlCount
)

func (c Control) String() string {
	switch c {
	case ControlDuration:
		return "duration"
	case ControlAngle:
		return "angle"
	case ControlPivot:
		return "pivot"
	}
	return fmt.Sprintf("Control(%d)", int(c))
}

// Ranges are the values a slider at its far end maps to.
type Ranges struct {
	DurationMax float64 // seconds
	AngleMax    float64 // radians
}

// DefaultRanges maps the duration slider onto 0..2s and the angle slider onto
// 0..pi/2.
func DefaultRanges() Ranges {
	return Ranges{DurationMax: 2, AngleMax: math.Pi / 2}
}

// Map converts a normalized slider position into the parameter value.
func (r Ranges) Map(c Control, v float64) float64 {
	switch c {
	case ControlDuration:
		return v * r.DurationMax
	case ControlAngle:
		return v * r.AngleMax
	}
	return v
}

// Fraction converts a slider step into [0,1].
func Fraction(current int) float64 {
	return float64(current) / Steps
}

// StepOf converts a position in [0,1] into the nearest slider step.
func StepOf(v float64) int {
	return int(math.Round(clamp01(v) * Steps))
}

// Controller holds the slider logic independently of the widgets: it maps
// slider steps onto the target and remembers positions it set itself, so
// that the change notification those produce is not applied back.
type Controller struct {
	target  Target
	ranges  Ranges
	current [controlCount]int
	echo    [controlCount]int // step set programmatically; -1 when none pending

	// OnError receives setter failures.
	OnError func(Control, error)
}

// NewController starts every slider at ResetPosition.
func NewController(target Target, ranges Ranges) *Controller {
	c := &Controller{target: target, ranges: ranges}
	for i := range c.current {
		c.current[i] = StepOf(ResetPosition)
		c.echo[i] = -1
	}
	return c
}

// Ranges returns the active slider ranges.
func (c *Controller) Ranges() Ranges { return c.ranges }

// SetRanges changes what slider positions map to from the next change on.
func (c *Controller) SetRanges(r Ranges) { c.ranges = r }

// Position returns the step of slider ctl.
func (c *Controller) Position(ctl Control) int { return c.current[ctl] }

// Changed applies a slider change to the target. It returns false when the
// change was the echo of a programmatic move or did not move the slider.
func (c *Controller) Changed(ctl Control, current int) bool {
	if c.echo[ctl] == current {
		c.echo[ctl] = -1
		c.current[ctl] = current
		return false
	}
	c.echo[ctl] = -1
	if c.current[ctl] == current {
		return false
	}
	c.current[ctl] = current

	v := c.ranges.Map(ctl, Fraction(current))
	var err error
	switch ctl {
	case ControlDuration:
		err = c.target.SetDuration(v)
	case ControlAngle:
		err = c.target.SetAngle(v)
	case ControlPivot:
		err = c.target.SetPivotFraction(v)
	}
	if err != nil && c.OnError != nil {
		c.OnError(ctl, err)
	}
	return err == nil
}

// Reset restores the target's defaults and returns the step every slider
// should move to.
func (c *Controller) Reset() [controlCount]int {
	c.target.Reset()
	var pos [controlCount]int
	for i := range c.current {
		step := StepOf(ResetPosition)
		if c.current[i] != step {
			c.echo[i] = step
		}
		c.current[i] = step
		pos[i] = step
	}
	return pos
}

// Labels formats the target's current parameters for display.
func (c *Controller) Labels() [3]string {
	p := c.target.Params()
	return [3]string{
		fmt.Sprintf("Duration: %.2fs", p.Duration),
		fmt.Sprintf("Angle: %.1f°", p.Angle*180/math.Pi),
		fmt.Sprintf("Pivot: %.2f", p.PivotFraction.Y),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
