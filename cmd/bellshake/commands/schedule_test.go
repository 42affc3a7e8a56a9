package commands

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/bellshake"
)

func TestWriteSchedule(t *testing.T) {
	var buf bytes.Buffer
	if err := writeSchedule(&buf, 2, math.Pi/4, 0.2); err != nil {
		t.Fatal(err)
	}

	var out scheduleOut
	if err := yaml.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, buf.String())
	}
	if len(out.Frames) != bellshake.ShakeFrameCount {
		t.Fatalf("frames = %d", len(out.Frames))
	}
	want := []float64{-math.Pi / 4, math.Pi / 4, -math.Pi / 4, math.Pi / 4, -math.Pi / 4, 0}
	for i, f := range out.Frames {
		if math.Abs(f.Length-2.0/6) > 1e-9 {
			t.Errorf("frame %d length = %v", i, f.Length)
		}
		if math.Abs(f.Start-float64(i)*2/6) > 1e-9 {
			t.Errorf("frame %d start = %v", i, f.Start)
		}
		if math.Abs(f.Rotation-want[i]) > 1e-9 {
			t.Errorf("frame %d rotation = %v, want %v", i, f.Rotation, want[i])
		}
	}
}

func TestWriteSchedule_RejectsNonFinite(t *testing.T) {
	tests := []struct {
		name                   string
		duration, angle, pivot float64
	}{
		{"duration NaN", math.NaN(), 0.3, 0.5},
		{"duration +Inf", math.Inf(1), 0.3, 0.5},
		{"angle -Inf", 1, math.Inf(-1), 0.5},
		{"pivot NaN", 1, 0.3, math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := writeSchedule(&buf, tt.duration, tt.angle, tt.pivot)
			if !errors.Is(err, bellshake.ErrInvalidParameter) {
				t.Errorf("err = %v, want ErrInvalidParameter", err)
			}
			if buf.Len() != 0 {
				t.Errorf("wrote output for a rejected value: %q", buf.String())
			}
		})
	}
}

func TestWriteSchedule_ClampsPivot(t *testing.T) {
	for _, tt := range []struct{ in, want float64 }{{1.5, 1}, {-0.5, 0}} {
		var buf bytes.Buffer
		if err := writeSchedule(&buf, 1, 0.3, tt.in); err != nil {
			t.Fatalf("pivot %v: %v", tt.in, err)
		}
		var out scheduleOut
		if err := yaml.Unmarshal(buf.Bytes(), &out); err != nil {
			t.Fatal(err)
		}
		if out.Pivot != tt.want {
			t.Errorf("pivot %v printed as %v, want %v", tt.in, out.Pivot, tt.want)
		}
	}
}

func TestScheduleCommand_NaNFlag(t *testing.T) {
	root := rootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs([]string{"schedule", "--duration", "NaN"})
	if err := root.Execute(); !errors.Is(err, bellshake.ErrInvalidParameter) {
		t.Errorf("err = %v, want ErrInvalidParameter", err)
	}
}

func TestScheduleCommand(t *testing.T) {
	root := rootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"schedule", "--duration", "0.6", "--angle", "90"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}

	var out scheduleOut
	if err := yaml.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Duration != 0.6 || math.Abs(out.Angle-math.Pi/2) > 1e-9 || out.Pivot != 0.5 {
		t.Errorf("out = %+v", out)
	}
	if math.Abs(out.Frames[1].Start-0.1) > 1e-9 {
		t.Errorf("frame 1 start = %v", out.Frames[1].Start)
	}
}
