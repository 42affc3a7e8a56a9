package bellshake

import "testing"

func TestLoadTestScript(t *testing.T) {
	data := []byte(`
steps:
  - action: screenshot
    label: initial
  - action: click
    x: 100
    y: 200
  - action: wait
    frames: 3
  - action: angle
    value: 45
`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
	if runner.steps[3].Value != 45 {
		t.Error("step 3 mismatch")
	}
}

func TestLoadTestScript_JSON(t *testing.T) {
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "click", "x": 5, "y": 6}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if runner.steps[0].X != 5 || runner.steps[0].Y != 6 {
		t.Errorf("step = %+v", runner.steps[0])
	}
}

func TestLoadTestScript_Errors(t *testing.T) {
	tests := map[string]string{
		"malformed":      "steps: [",
		"empty":          `{"steps": []}`,
		"missing action": "steps:\n  - x: 1\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadTestScript([]byte(data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRunnerStep_Click(t *testing.T) {
	s := NewScene()
	sprite := box("s", 0, 0, 200, 200)
	s.Root().AddChild(sprite)
	refresh(s)

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "click", "x": 50, "y": 50}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	runner.step(s)
	if s.PendingInjections() != 2 {
		t.Fatalf("expected 2 queued events, got %d", s.PendingInjections())
	}
	if runner.Done() {
		t.Error("runner should not be done while inject queue has events")
	}

	s.processInjectedInput()
	s.processInjectedInput()
	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	s := NewScene()
	runner, err := LoadTestScript([]byte("steps:\n  - {action: wait, frames: 3}\n  - {action: screenshot, label: x}\n"))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(s) // wait, counts as frame 1
	runner.step(s) // frame 2
	runner.step(s) // frame 3
	if len(s.screenshotQueue) != 0 {
		t.Fatal("screenshot taken before the wait elapsed")
	}
	runner.step(s)
	if len(s.screenshotQueue) != 1 {
		t.Fatalf("screenshot queue = %v", s.screenshotQueue)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerStep_Drag(t *testing.T) {
	s := NewScene()
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "drag", "fromX": 0, "fromY": 0, "toX": 10, "toY": 0, "frames": 4}]}`))
	if err != nil {
		t.Fatal(err)
	}
	runner.step(s)
	if s.PendingInjections() != 4 {
		t.Errorf("queued %d events, want 4", s.PendingInjections())
	}
}

func TestRunnerStep_Handler(t *testing.T) {
	s := NewScene()
	runner, err := LoadTestScript([]byte("steps:\n  - {action: duration, value: 2}\n  - {action: bogus}\n"))
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	runner.Handler = func(action string, value float64) bool {
		got = append(got, action)
		return action == "duration" && value == 2
	}
	runner.step(s)
	runner.step(s)
	if len(got) != 2 || got[0] != "duration" || got[1] != "bogus" {
		t.Errorf("handler saw %v", got)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerDrivenByScene(t *testing.T) {
	s := NewScene()
	bell := NewBell(s.Animator(), BellOptions{})
	s.Root().AddChild(bell.Node())

	runner, err := LoadTestScript([]byte("steps:\n  - {action: click, x: 162, y: 162}\n  - {action: wait, frames: 2}\n"))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)
	for i := 0; i < 10 && !runner.Done(); i++ {
		s.Step(1.0 / 60)
	}
	if !runner.Done() {
		t.Fatal("runner did not finish")
	}
	if bell.Shakes() != 1 {
		t.Errorf("shakes = %d, want 1", bell.Shakes())
	}
}
