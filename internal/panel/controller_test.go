package panel

import (
	"errors"
	"math"
	"testing"

	"github.com/phanxgames/bellshake"
)

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// fakeTarget records setter calls.
type fakeTarget struct {
	params bellshake.ShakeParameters
	calls  []string
	fail   error
}

func newFakeTarget() *fakeTarget {
	return &fakeTarget{params: bellshake.DefaultShakeParameters()}
}

func (f *fakeTarget) SetDuration(v float64) error {
	f.calls = append(f.calls, "duration")
	if f.fail != nil {
		return f.fail
	}
	f.params.Duration = v
	return nil
}

func (f *fakeTarget) SetAngle(v float64) error {
	f.calls = append(f.calls, "angle")
	f.params.Angle = v
	return nil
}

func (f *fakeTarget) SetPivotFraction(v float64) error {
	f.calls = append(f.calls, "pivot")
	f.params.PivotFraction.Y = v
	return nil
}

func (f *fakeTarget) Reset() {
	f.calls = append(f.calls, "reset")
	f.params = bellshake.DefaultShakeParameters()
}

func (f *fakeTarget) Params() bellshake.ShakeParameters { return f.params }

func TestRanges_Map(t *testing.T) {
	r := DefaultRanges()
	tests := []struct {
		ctl  Control
		v    float64
		want float64
	}{
		{ControlDuration, 0.5, 1},
		{ControlDuration, 1, 2},
		{ControlAngle, 0.5, math.Pi / 4},
		{ControlAngle, 0.25, math.Pi / 8},
		{ControlPivot, 0.2, 0.2},
		{ControlPivot, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.ctl.String(), func(t *testing.T) {
			assertNear(t, "mapped", r.Map(tt.ctl, tt.v), tt.want)
		})
	}
}

func TestStepOf(t *testing.T) {
	if got := StepOf(0.5); got != 500 {
		t.Errorf("StepOf(0.5) = %d", got)
	}
	if got := StepOf(-1); got != 0 {
		t.Errorf("StepOf(-1) = %d", got)
	}
	if got := StepOf(2); got != Steps {
		t.Errorf("StepOf(2) = %d", got)
	}
	assertNear(t, "Fraction(250)", Fraction(250), 0.25)
}

func TestController_Changed(t *testing.T) {
	f := newFakeTarget()
	c := NewController(f, DefaultRanges())

	if !c.Changed(ControlDuration, 1000) {
		t.Fatal("duration change not applied")
	}
	// 500 is the starting position, so nothing moved.
	if c.Changed(ControlAngle, 500) {
		t.Error("unchanged angle slider should not apply")
	}
	if !c.Changed(ControlAngle, 500+1) {
		t.Fatal("angle change not applied")
	}
	if !c.Changed(ControlPivot, 200) {
		t.Fatal("pivot change not applied")
	}

	assertNear(t, "duration", f.params.Duration, 2)
	assertNear(t, "angle", f.params.Angle, Fraction(501)*math.Pi/2)
	assertNear(t, "pivot", f.params.PivotFraction.Y, 0.2)
	if len(f.calls) != 3 {
		t.Errorf("calls = %v", f.calls)
	}
	if c.Position(ControlPivot) != 200 {
		t.Errorf("pivot position = %d", c.Position(ControlPivot))
	}
}

func TestController_ResetIgnoresEcho(t *testing.T) {
	f := newFakeTarget()
	c := NewController(f, DefaultRanges())
	c.Changed(ControlDuration, 900)
	c.Changed(ControlPivot, 100)
	f.calls = nil

	pos := c.Reset()
	if len(pos) != int(controlCount) {
		t.Fatalf("Reset returned %d positions, want one per control", len(pos))
	}
	for i, p := range pos {
		if p != 500 {
			t.Errorf("slider %d reset to %d, want 500", i, p)
		}
	}
	if len(f.calls) != 1 || f.calls[0] != "reset" {
		t.Fatalf("calls after reset = %v", f.calls)
	}

	// The widgets now report the programmatic move back.
	if c.Changed(ControlDuration, 500) {
		t.Error("echo of reset applied to target")
	}
	if c.Changed(ControlPivot, 500) {
		t.Error("echo of reset applied to target")
	}
	if len(f.calls) != 1 {
		t.Errorf("calls = %v", f.calls)
	}

	// A real drag afterwards goes through.
	if !c.Changed(ControlDuration, 250) {
		t.Error("drag after reset not applied")
	}
	assertNear(t, "duration", f.params.Duration, 0.5)
}

func TestController_SetRanges(t *testing.T) {
	f := newFakeTarget()
	c := NewController(f, DefaultRanges())
	c.SetRanges(Ranges{DurationMax: 4, AngleMax: math.Pi})
	c.Changed(ControlDuration, 250)
	c.Changed(ControlAngle, 250)
	assertNear(t, "duration", f.params.Duration, 1)
	assertNear(t, "angle", f.params.Angle, math.Pi/4)
}

func TestController_Error(t *testing.T) {
	f := newFakeTarget()
	f.fail = bellshake.ErrInvalidParameter
	c := NewController(f, DefaultRanges())

	var got error
	c.OnError = func(ctl Control, err error) {
		if ctl != ControlDuration {
			t.Errorf("ctl = %v", ctl)
		}
		got = err
	}
	if c.Changed(ControlDuration, 100) {
		t.Error("failed change reported as applied")
	}
	if !errors.Is(got, bellshake.ErrInvalidParameter) {
		t.Errorf("OnError got %v", got)
	}
}

func TestController_Labels(t *testing.T) {
	f := newFakeTarget()
	c := NewController(f, DefaultRanges())
	labels := c.Labels()
	want := [3]string{"Duration: 1.00s", "Angle: 22.5°", "Pivot: 0.50"}
	if labels != want {
		t.Errorf("labels = %q, want %q", labels, want)
	}
}

func TestController_WithBell(t *testing.T) {
	var anim bellshake.Animator
	bell := bellshake.NewBell(&anim, bellshake.BellOptions{})
	c := NewController(bell, DefaultRanges())

	c.Changed(ControlDuration, 1000)
	c.Changed(ControlAngle, 1000)
	c.Changed(ControlPivot, 200)

	p := bell.Params()
	assertNear(t, "duration", p.Duration, 2)
	assertNear(t, "angle", p.Angle, math.Pi/2)
	assertNear(t, "pivot", p.PivotFraction.Y, 0.2)
	if bell.Shakes() != 3 {
		t.Errorf("shakes = %d, want 3", bell.Shakes())
	}

	c.Reset()
	p = bell.Params()
	assertNear(t, "reset duration", p.Duration, 1)
	assertNear(t, "reset angle", p.Angle, math.Pi/8)
	assertNear(t, "reset pivot", p.PivotFraction.Y, 0.5)
}
