package poncho

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadTestScriptYAML(t *testing.T) {
	data := []byte(`
steps:
  - action: click
    x: 100
    y: 200
  - action: press
    x: 10
    y: 10
    button: right
  - action: wait
    frames: 5
  - action: screenshot
    label: after-click
`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "click" || runner.steps[0].X != 100 || runner.steps[0].Y != 200 {
		t.Errorf("step 0 = %+v", runner.steps[0])
	}
	if runner.steps[1].Button != "right" {
		t.Errorf("step 1 button = %q, want right", runner.steps[1].Button)
	}
	if runner.steps[2].Frames != 5 {
		t.Errorf("step 2 frames = %d, want 5", runner.steps[2].Frames)
	}
	if runner.steps[3].Label != "after-click" {
		t.Errorf("step 3 label = %q", runner.steps[3].Label)
	}
}

func TestLoadTestScriptJSON(t *testing.T) {
	data := []byte(`{"steps": [
		{"action": "drag", "fromX": 1, "fromY": 2, "toX": 3, "toY": 4, "frames": 6},
		{"action": "scroll", "delta": -2}
	]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}
	d := runner.steps[0]
	if d.FromX != 1 || d.FromY != 2 || d.ToX != 3 || d.ToY != 4 || d.Frames != 6 {
		t.Errorf("drag step = %+v", d)
	}
	if runner.steps[1].Delta != -2 {
		t.Errorf("scroll delta = %v, want -2", runner.steps[1].Delta)
	}
}

func TestLoadTestScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"malformed", `{invalid`, "parse test script"},
		{"empty", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "jump"}]}`, `unknown action "jump"`},
		{"unknown button", `{"steps": [{"action": "press", "button": "fourth"}]}`, `unknown button "fourth"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTestScript([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestLoadTestScriptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte("steps:\n  - action: wait\n    frames: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	runner, err := LoadTestScriptFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(runner.steps) != 1 {
		t.Errorf("expected 1 step, got %d", len(runner.steps))
	}

	if _, err := LoadTestScriptFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRunnerStepClick(t *testing.T) {
	s, _, _ := twoBoxes()
	s.SetInputSource(&stubInput{snap: at(50, 50)})

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "click", "x": 50, "y": 50}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	runner.step(s)
	if len(s.injectQueue) != 3 {
		t.Fatalf("expected 3 queued events, got %d", len(s.injectQueue))
	}
	if runner.Done() {
		t.Error("runner should not be done while inject queue has events")
	}

	var log []string
	for i := 0; i < 3; i++ {
		s.DrawTo(&recordingRenderer{})
		log = append(log, eventLog(s.FrameEvents()))
	}
	assertFrames(t, log, "pointer-enter:a", "pointer-down:a:left", "pointer-up:a:left click:a:left")

	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
}

func TestRunnerStepButtons(t *testing.T) {
	s := NewScene()
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "press", "x": 1, "y": 2, "button": "middle"},
		{"action": "release", "x": 1, "y": 2, "button": "middle"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(s)
	if len(s.injectQueue) != 1 {
		t.Fatalf("expected 1 queued event, got %d", len(s.injectQueue))
	}
	e := s.injectQueue[0]
	if !e.press || e.button != MouseButtonMiddle {
		t.Errorf("queued event = %+v, want middle press", e)
	}
}

func TestRunnerStepClickButton(t *testing.T) {
	s := NewScene()
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "click", "x": 5, "y": 6, "button": "right"}]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(s)
	if len(s.injectQueue) != 3 {
		t.Fatalf("expected 3 queued events, got %d", len(s.injectQueue))
	}
	press, release := s.injectQueue[1], s.injectQueue[2]
	if !press.press || press.button != MouseButtonRight {
		t.Errorf("press = %+v, want right press", press)
	}
	if !release.release || release.button != MouseButtonRight {
		t.Errorf("release = %+v, want right release", release)
	}
}

func TestRunnerStepWait(t *testing.T) {
	s := NewScene()

	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "done"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	// The wait step itself counts as the first of its three frames.
	for i := 0; i < 3; i++ {
		runner.step(s)
		if runner.Done() {
			t.Fatalf("done during wait at frame %d", i)
		}
	}
	if len(s.screenshotQueue) != 0 {
		t.Fatal("screenshot queued before wait ended")
	}

	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after screenshot step")
	}
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "done" {
		t.Errorf("expected screenshot 'done', got %v", s.screenshotQueue)
	}
}

func TestRunnerStepDragAndScroll(t *testing.T) {
	s := NewScene()
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "drag", "fromX": 10, "fromY": 10, "toX": 200, "toY": 200, "frames": 4},
		{"action": "scroll", "delta": 3}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(s)
	if len(s.injectQueue) != 4 {
		t.Fatalf("expected 4 queued events for drag, got %d", len(s.injectQueue))
	}
	s.injectQueue = s.injectQueue[:0]

	runner.step(s)
	if len(s.injectQueue) != 1 || s.injectQueue[0].scroll != 3 {
		t.Errorf("expected one scroll of 3, got %+v", s.injectQueue)
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	s := NewScene()

	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "move", "x": 50, "y": 50},
		{"action": "screenshot", "label": "after"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(s)
	runner.step(s)
	if runner.cursor != 1 {
		t.Errorf("cursor should still be 1, got %d", runner.cursor)
	}

	s.injectQueue = s.injectQueue[:0]
	runner.step(s)
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "after" {
		t.Errorf("expected screenshot 'after', got %v", s.screenshotQueue)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestSceneUpdateDrivesRunner(t *testing.T) {
	s := NewScene()
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "screenshot", "label": "x"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)
	s.Update()
	if !runner.Done() {
		t.Error("Scene.Update should step the runner")
	}
}
