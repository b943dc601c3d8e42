package openlime

// injector is a FIFO of synthetic pointer events. One event is consumed per
// frame so gestures that depend on frame timing (holds, tap windows) play out
// as they would with real input. Timestamps are left zero and stamped by
// PointerManager.Dispatch.
type injector struct {
	queue []InputEvent
}

func (q *injector) push(e InputEvent) {
	q.queue = append(q.queue, e)
}

func (q *injector) pop() (InputEvent, bool) {
	if len(q.queue) == 0 {
		return InputEvent{}, false
	}
	e := q.queue[0]
	copy(q.queue, q.queue[1:])
	q.queue = q.queue[:len(q.queue)-1]
	return e, true
}

func (q *injector) len() int { return len(q.queue) }

func (q *injector) pointer(id int, typ PointerType, kind EventKind, x, y float64, buttons uint8) {
	q.push(InputEvent{PointerID: id, PointerType: typ, Kind: kind, X: x, Y: y, Buttons: buttons})
}

func (q *injector) down(id int, typ PointerType, x, y float64) {
	q.pointer(id, typ, EventDown, x, y, ButtonPrimary)
}

func (q *injector) move(id int, typ PointerType, x, y float64) {
	q.pointer(id, typ, EventMove, x, y, ButtonPrimary)
}

func (q *injector) up(id int, typ PointerType, x, y float64) {
	q.pointer(id, typ, EventUp, x, y, 0)
}

func (q *injector) tap(id int, typ PointerType, x, y float64) {
	q.down(id, typ, x, y)
	q.up(id, typ, x, y)
}

// drag queues a press at (fromX, fromY), frames-2 evenly spaced moves and a
// release at (toX, toY). frames is at least 2.
func (q *injector) drag(id int, typ PointerType, fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	q.down(id, typ, fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		q.move(id, typ, fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	q.up(id, typ, toX, toY)
}

func (q *injector) wheel(x, y, deltaY float64) {
	q.push(InputEvent{PointerID: mousePointerID, PointerType: PointerMouse, Kind: EventWheel, X: x, Y: y, DeltaY: deltaY})
}

// InjectDown queues a primary-button mouse press at viewport (x, y). Queued
// events are consumed one per Update, ahead of real input.
func (v *Viewer) InjectDown(x, y float64) {
	v.inject.down(mousePointerID, PointerMouse, x, y)
}

// InjectMove queues a mouse move with the primary button held.
func (v *Viewer) InjectMove(x, y float64) {
	v.inject.move(mousePointerID, PointerMouse, x, y)
}

// InjectUp queues a mouse release.
func (v *Viewer) InjectUp(x, y float64) {
	v.inject.up(mousePointerID, PointerMouse, x, y)
}

// InjectTap queues a press and release at the same point. Consumes two
// frames; the single tap itself fires once the tap window has passed.
func (v *Viewer) InjectTap(x, y float64) {
	v.inject.tap(mousePointerID, PointerMouse, x, y)
}

// InjectDrag queues a full mouse drag over the given number of frames.
func (v *Viewer) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	v.inject.drag(mousePointerID, PointerMouse, fromX, fromY, toX, toY, frames)
}

// InjectWheel queues a wheel turn at (x, y). Positive deltaY scrolls down.
func (v *Viewer) InjectWheel(x, y, deltaY float64) {
	v.inject.wheel(x, y, deltaY)
}

// processInjectedInput dispatches one queued event. It reports whether one
// was consumed, in which case real input is skipped for the frame.
func (v *Viewer) processInjectedInput() bool {
	e, ok := v.inject.pop()
	if !ok {
		return false
	}
	v.Pointers.Dispatch(e)
	return true
}
