package openlime

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	// Pointer and PointerType select the device; the default is the mouse.
	Pointer     int     `json:"pointer,omitempty"`
	PointerType string  `json:"pointerType,omitempty"`
	X           float64 `json:"x,omitempty"`
	Y           float64 `json:"y,omitempty"`
	FromX       float64 `json:"fromX,omitempty"`
	FromY       float64 `json:"fromY,omitempty"`
	ToX         float64 `json:"toX,omitempty"`
	ToY         float64 `json:"toY,omitempty"`
	DeltaY      float64 `json:"deltaY,omitempty"`
	Frames      int     `json:"frames,omitempty"`
}

type inputScript struct {
	Steps []scriptStep `json:"steps"`
}

// InputScript replays a JSON sequence of pointer actions one frame at a
// time, either inside a Viewer (SetInputScript) or headless (Play).
//
//	{"steps": [
//	  {"action": "drag", "fromX": 100, "fromY": 100, "toX": 300, "toY": 120, "frames": 10},
//	  {"action": "wait", "frames": 20},
//	  {"action": "wheel", "x": 400, "y": 300, "deltaY": -100},
//	  {"action": "tap", "pointer": 1, "pointerType": "touch", "x": 50, "y": 60},
//	  {"action": "screenshot", "label": "zoomed"}
//	]}
//
// Actions are down, move, up, cancel, tap, drag, wheel, wait and screenshot.
type InputScript struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

var scriptActions = map[string]bool{
	"down": true, "move": true, "up": true, "cancel": true,
	"tap": true, "drag": true, "wheel": true, "wait": true, "screenshot": true,
}

// LoadInputScript parses a JSON input script.
func LoadInputScript(jsonData []byte) (*InputScript, error) {
	var script inputScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i, st := range script.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
		if _, err := parsePointerType(st.PointerType); err != nil {
			return nil, fmt.Errorf("parse input script: step %d: %w", i, err)
		}
	}
	return &InputScript{steps: script.Steps}, nil
}

func parsePointerType(name string) (PointerType, error) {
	switch name {
	case "", "mouse":
		return PointerMouse, nil
	case "touch":
		return PointerTouch, nil
	case "pen":
		return PointerPen, nil
	}
	return 0, fmt.Errorf("unknown pointer type %q", name)
}

// SetInputScript attaches a script to the viewer. It advances from Update,
// before input is processed.
func (v *Viewer) SetInputScript(s *InputScript) {
	v.script = s
}

// Done reports whether every step has run and its events were consumed.
func (s *InputScript) Done() bool {
	return s.done
}

// step advances the script by one frame, queueing events on q. shot handles
// screenshot steps and may be nil.
func (s *InputScript) step(q *injector, shot func(label string)) {
	if s.done {
		return
	}
	if q.len() > 0 {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	typ, _ := parsePointerType(st.PointerType)
	id := st.Pointer
	switch st.Action {
	case "down":
		q.down(id, typ, st.X, st.Y)
	case "move":
		q.move(id, typ, st.X, st.Y)
	case "up":
		q.up(id, typ, st.X, st.Y)
	case "cancel":
		q.pointer(id, typ, EventCancel, st.X, st.Y, 0)
	case "tap":
		q.tap(id, typ, st.X, st.Y)
	case "drag":
		q.drag(id, typ, st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wheel":
		q.wheel(st.X, st.Y, st.DeltaY)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		if shot != nil {
			shot(st.Label)
		}
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && q.len() == 0 {
		s.done = true
	}
}

// Play runs the whole script against pm without a window. Each frame
// dispatches at most one event, calls pm.Update and advances clock by
// frameMs. It returns the number of frames played.
func (s *InputScript) Play(pm *PointerManager, clock *ManualClock, frameMs float64) int {
	var q injector
	frames := 0
	for {
		s.step(&q, nil)
		if e, ok := q.pop(); ok {
			pm.Dispatch(e)
		}
		pm.Update()
		frames++
		if s.Done() && q.len() == 0 {
			return frames
		}
		clock.Advance(frameMs)
	}
}
