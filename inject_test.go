package openlime

import "testing"

func TestInjectorFIFO(t *testing.T) {
	var q injector
	q.down(0, PointerMouse, 1, 1)
	q.move(0, PointerMouse, 2, 2)
	q.up(0, PointerMouse, 3, 3)

	want := []EventKind{EventDown, EventMove, EventUp}
	for i, k := range want {
		e, ok := q.pop()
		if !ok {
			t.Fatalf("pop %d: queue empty", i)
		}
		if e.Kind != k || e.X != float64(i+1) {
			t.Errorf("pop %d = %+v, want %s at %d", i, e, k, i+1)
		}
	}
	if _, ok := q.pop(); ok {
		t.Error("pop on empty queue succeeded")
	}
}

func TestInjectorButtons(t *testing.T) {
	var q injector
	q.tap(2, PointerPen, 5, 5)
	down, _ := q.pop()
	up, _ := q.pop()
	if down.Buttons != ButtonPrimary || up.Buttons != 0 {
		t.Errorf("buttons = %d/%d, want primary/none", down.Buttons, up.Buttons)
	}
	if down.PointerID != 2 || down.PointerType != PointerPen {
		t.Errorf("down = %+v", down)
	}
	if down.Timestamp != 0 {
		t.Error("injected events must leave the timestamp to Dispatch")
	}
}

func TestInjectorDragFrames(t *testing.T) {
	tests := []struct {
		frames int
		want   int
	}{
		{0, 2},
		{1, 2},
		{2, 2},
		{5, 5},
		{12, 12},
	}
	for _, tt := range tests {
		var q injector
		q.drag(0, PointerMouse, 0, 0, 90, 30, tt.frames)
		if q.len() != tt.want {
			t.Errorf("drag(%d frames) queued %d events, want %d", tt.frames, q.len(), tt.want)
		}
	}
}

func TestInjectorDragPath(t *testing.T) {
	var q injector
	q.drag(0, PointerMouse, 0, 0, 120, 40, 5)
	kinds := []EventKind{EventDown, EventMove, EventMove, EventMove, EventUp}
	for i, k := range kinds {
		e, _ := q.pop()
		if e.Kind != k {
			t.Fatalf("event %d kind = %s, want %s", i, e.Kind, k)
		}
		assertNear(t, "x", e.X, 30*float64(i))
		assertNear(t, "y", e.Y, 10*float64(i))
	}
	if q.len() != 0 {
		t.Errorf("remaining = %d, want 0", q.len())
	}
}

func TestInjectorWheel(t *testing.T) {
	var q injector
	q.wheel(10, 20, -3)
	e, _ := q.pop()
	if e.Kind != EventWheel || e.PointerType != PointerMouse || e.DeltaY != -3 {
		t.Errorf("wheel = %+v", e)
	}
}

func TestViewerInjectOnePerFrame(t *testing.T) {
	v, _ := newTestViewer(t)
	v.InjectTap(100, 100)
	if v.inject.len() != 2 {
		t.Fatalf("queued %d, want 2", v.inject.len())
	}
	if err := v.Update(); err != nil {
		t.Fatal(err)
	}
	if v.inject.len() != 1 {
		t.Errorf("after one frame %d left, want 1", v.inject.len())
	}
	if v.Pointers.Len() != 1 {
		t.Errorf("Len = %d, want 1 live recognizer", v.Pointers.Len())
	}
	if err := v.Update(); err != nil {
		t.Fatal(err)
	}
	if v.inject.len() != 0 {
		t.Errorf("queue not drained: %d", v.inject.len())
	}
}
