package bellshake

import (
	"fmt"
	"strings"
)

// ShakeFrameCount is the number of keyframes in a shake.
const ShakeFrameCount = 6

// Schedule is the keyframe plan of one shake: ShakeFrameCount contiguous
// frames of equal length whose values are rotations in radians. Start and
// Duration of each frame are fractions of Duration.
type Schedule struct {
	Duration float64
	Frames   [ShakeFrameCount]Keyframe
}

// BuildSchedule returns the shake plan for the given total duration (seconds)
// and tilt angle (radians): -angle, +angle, -angle, +angle, -angle, then back
// to no rotation, each frame taking a sixth of the duration. A negative angle
// tilts the other way first. Inputs are not validated.
func BuildSchedule(duration, angle float64) Schedule {
	s := Schedule{Duration: duration}
	frac := 1.0 / ShakeFrameCount
	for i := range s.Frames {
		rot := -angle
		if i%2 == 1 {
			rot = angle
		}
		if i == ShakeFrameCount-1 {
			rot = 0
		}
		s.Frames[i] = Keyframe{Start: float64(i) * frac, Duration: frac, Value: rot}
	}
	return s
}

// FrameTime returns the length of one frame in seconds.
func (s Schedule) FrameTime() float64 {
	return s.Duration / ShakeFrameCount
}

// StartTime returns when frame i starts, in seconds from the beginning.
func (s Schedule) StartTime(i int) float64 {
	return s.Frames[i].Start * s.Duration
}

// Rotations returns the target rotation of every frame in order.
func (s Schedule) Rotations() [ShakeFrameCount]float64 {
	var r [ShakeFrameCount]float64
	for i, f := range s.Frames {
		r[i] = f.Value
	}
	return r
}

// String renders the schedule one frame per line.
func (s Schedule) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "shake %.3fs", s.Duration)
	for i, f := range s.Frames {
		fmt.Fprintf(&b, "\n  %d: start=%.3fs len=%.3fs rot=%+.4f", i, s.StartTime(i), s.FrameTime(), f.Value)
	}
	return b.String()
}
