package openlime

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadInputScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"bad json", `{"steps": [`, "parse input script:"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "jump"}]}`, `step 0: unknown action "jump"`},
		{"unknown pointer", `{"steps": [{"action": "tap"}, {"action": "tap", "pointerType": "stylus"}]}`, `step 1: unknown pointer type "stylus"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadInputScript([]byte(tt.json))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestLoadInputScriptExample(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("examples", "viewer", "script.json"))
	if err != nil {
		t.Fatal(err)
	}
	s, err := LoadInputScript(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.steps) != 11 {
		t.Errorf("steps = %d, want 11", len(s.steps))
	}
}

func mustScript(t *testing.T, json string) *InputScript {
	t.Helper()
	s, err := LoadInputScript([]byte(json))
	if err != nil {
		t.Fatalf("LoadInputScript: %v", err)
	}
	return s
}

func TestInputScriptPlayTap(t *testing.T) {
	pm, clock, log := newTestManager()
	s := mustScript(t, `{"steps": [
		{"action": "tap", "x": 100, "y": 100},
		{"action": "wait", "frames": 20}
	]}`)

	frames := s.Play(pm, clock, 16)
	if !s.Done() {
		t.Error("script not done after Play")
	}
	if frames != 23 {
		t.Errorf("frames = %d, want 23", frames)
	}
	assertTypes(t, log, FingerSingleTap)
	if e := log.events[0]; e.Timestamp != 1316 {
		t.Errorf("tap fired at %v, want 1316", e.Timestamp)
	}
}

func TestInputScriptPlayDrag(t *testing.T) {
	pm, clock, log := newTestManager()
	s := mustScript(t, `{"steps": [
		{"action": "drag", "fromX": 100, "fromY": 100, "toX": 200, "toY": 100, "frames": 10}
	]}`)
	s.Play(pm, clock, 16)

	got := log.types()
	if len(got) != 9 {
		t.Fatalf("gestures = %v, want 9", got)
	}
	if got[0] != FingerMovingStart || got[8] != FingerMovingEnd {
		t.Errorf("gestures = %v", got)
	}
	for _, g := range got[1:8] {
		if g != FingerMoving {
			t.Errorf("gestures = %v", got)
			break
		}
	}
	if end := log.events[8]; end.X != 200 {
		t.Errorf("end X = %v, want 200", end.X)
	}
}

func TestInputScriptPlayTouchPointer(t *testing.T) {
	pm, clock, log := newTestManager()
	s := mustScript(t, `{"steps": [
		{"action": "down", "pointer": 3, "pointerType": "touch", "x": 10, "y": 10},
		{"action": "up", "pointer": 3, "pointerType": "touch", "x": 10, "y": 10},
		{"action": "down", "pointer": 3, "pointerType": "touch", "x": 10, "y": 10},
		{"action": "up", "pointer": 3, "pointerType": "touch", "x": 10, "y": 10}
	]}`)
	s.Play(pm, clock, 16)

	assertTypes(t, log, FingerDoubleTap)
	e := log.events[0]
	if e.PointerType != PointerTouch || e.PointerID != 3 {
		t.Errorf("event = %+v", e)
	}
}

func TestInputScriptPlayWheel(t *testing.T) {
	pm, clock, log := newTestManager()
	s := mustScript(t, `{"steps": [{"action": "wheel", "x": 5, "y": 6, "deltaY": -120}]}`)
	s.Play(pm, clock, 16)

	assertTypes(t, log, MouseWheel)
	if e := log.events[0]; e.DeltaY != -120 || e.X != 5 {
		t.Errorf("wheel = %+v", e)
	}
}

func TestInputScriptStepScreenshot(t *testing.T) {
	s := mustScript(t, `{"steps": [
		{"action": "screenshot", "label": "first"},
		{"action": "screenshot"}
	]}`)
	var q injector
	var labels []string
	shot := func(label string) { labels = append(labels, label) }

	s.step(&q, shot)
	if s.Done() {
		t.Fatal("done after the first of two steps")
	}
	s.step(&q, shot)
	if !s.Done() {
		t.Error("not done after the last step")
	}
	if len(labels) != 2 || labels[0] != "first" || labels[1] != "" {
		t.Errorf("labels = %q", labels)
	}
	s.step(&q, shot)
	if len(labels) != 2 {
		t.Error("a finished script ran again")
	}
}

func TestInputScriptWaitsForQueue(t *testing.T) {
	s := mustScript(t, `{"steps": [
		{"action": "tap", "x": 1, "y": 1},
		{"action": "move", "x": 2, "y": 2}
	]}`)
	var q injector
	s.step(&q, nil)
	if q.len() != 2 {
		t.Fatalf("queue = %d, want 2", q.len())
	}
	s.step(&q, nil)
	if q.len() != 2 {
		t.Error("next step queued before the tap was consumed")
	}
	q.pop()
	q.pop()
	s.step(&q, nil)
	if e, _ := q.pop(); e.Kind != EventMove || e.X != 2 {
		t.Errorf("queued %+v, want the move", e)
	}
}
