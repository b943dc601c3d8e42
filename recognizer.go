package openlime

import "math"

// Recognizer timing and distance thresholds. Times are milliseconds,
// distances millimetres.
const (
	defaultHoldTimeout     = 600
	defaultTapTimeout      = 300
	defaultMovingThreshold = 5
	defaultSameThreshold   = 15
)

type recognizerState uint8

const (
	stateIdle recognizerState = iota
	stateHover
	stateDetect
	stateMoving
	stateTapsDetect
	stateDoubleTapDetect
)

func (s recognizerState) String() string {
	switch s {
	case stateIdle:
		return "IDLE"
	case stateHover:
		return "HOVER"
	case stateDetect:
		return "DETECT"
	case stateMoving:
		return "MOVING"
	case stateTapsDetect:
		return "TAPS_DETECT"
	case stateDoubleTapDetect:
		return "DOUBLE_TAP_DETECT"
	default:
		return "UNKNOWN"
	}
}

// recognizer turns the event stream of one physical pointer into gestures.
// It is owned by a PointerManager and lives in one arena slot.
type recognizer struct {
	pm    *PointerManager
	index int

	pointerID   int
	pointerType PointerType
	state       recognizerState

	history      *ring[InputEvent]
	downX, downY float64
	down         bool

	// timer fires the gesture for the current state with pending as payload.
	timer   timer
	pending InputEvent
}

func newRecognizer(pm *PointerManager, index int, e InputEvent) *recognizer {
	return &recognizer{
		pm:          pm,
		index:       index,
		pointerID:   e.PointerID,
		pointerType: e.PointerType,
		history:     newRing[InputEvent](historySize),
	}
}

// distanceMM converts the pixel distance between two points to millimetres.
func (r *recognizer) distanceMM(x0, y0, x1, y1 float64) float64 {
	return math.Hypot(x1-x0, y1-y0) / r.pm.ppmm
}

// reconciles reports whether a down from an untracked pointer ID belongs to
// this released recognizer: same device type and near its last event. This
// absorbs pointer-ID churn between the taps of a double tap.
func (r *recognizer) reconciles(e InputEvent) bool {
	if r.down || e.Kind != EventDown || e.PointerType != r.pointerType {
		return false
	}
	prev, ok := r.history.Last()
	if !ok {
		return false
	}
	return r.distanceMM(e.X, e.Y, prev.X, prev.Y) < r.pm.cfg.SameThreshold
}

// done reports whether the recognizer can be reaped.
func (r *recognizer) done() bool {
	return r.state == stateIdle && !r.timer.armed
}

// gesture builds the outgoing event. Speed is only computed for moves.
func (r *recognizer) gesture(e InputEvent, t GestureType) *GestureEvent {
	ge := &GestureEvent{InputEvent: e, Type: t, Index: r.index}
	if e.Kind != EventMove {
		return ge
	}
	if prev, ok := r.history.Last(); ok {
		if dt := e.Timestamp - prev.Timestamp; dt > 0 {
			ge.SpeedX = (e.X - prev.X) / dt * 1000
			ge.SpeedY = (e.Y - prev.Y) / dt * 1000
		}
	}
	return ge
}

func (r *recognizer) emit(e InputEvent, t GestureType) {
	r.pm.emit(r.gesture(e, t))
}

// transition moves to a new state, dropping any pending timer.
func (r *recognizer) transition(s recognizerState) {
	r.timer.cancel()
	r.state = s
}

// arm schedules the timeout of the current state, carrying e as payload.
func (r *recognizer) arm(e InputEvent, delay float64) {
	r.pending = e
	r.timer.arm(e.Timestamp, delay)
}

// process runs one real event through the state machine.
func (r *recognizer) process(e InputEvent) {
	r.pointerID = e.PointerID

	if e.Kind == EventWheel {
		r.emit(e, MouseWheel)
		return
	}

	switch e.Kind {
	case EventDown:
		r.downX, r.downY = e.X, e.Y
		r.down = true
	case EventUp, EventCancel:
		r.down = false
	}
	var dist float64
	if e.Kind == EventMove {
		dist = r.distanceMM(r.downX, r.downY, e.X, e.Y)
	}
	moved := dist > r.pm.cfg.MovingThreshold

	handled := true
	switch r.state {
	case stateIdle, stateHover:
		switch e.Kind {
		case EventMove:
			r.state = stateHover
			r.emit(e, FingerHover)
		case EventDown:
			r.transition(stateDetect)
			r.arm(e, r.pm.cfg.HoldTimeout)
		default:
			handled = false
		}

	case stateDetect:
		switch {
		case e.Kind == EventCancel:
			r.transition(stateIdle)
			r.emit(e, FingerHold)
		case e.Kind == EventMove && moved:
			r.transition(stateMoving)
			r.emit(e, FingerMovingStart)
		case e.Kind == EventUp:
			r.transition(stateTapsDetect)
			r.arm(e, r.pm.cfg.TapTimeout)
		case e.Kind == EventMove:
			// below the moving threshold
		default:
			handled = false
		}

	case stateTapsDetect:
		switch {
		case e.Kind == EventDown:
			r.transition(stateDoubleTapDetect)
			r.arm(e, r.pm.cfg.TapTimeout)
		case e.Kind == EventMove && moved:
			r.transition(stateIdle)
			r.emit(e, FingerSingleTap)
			r.emit(e, FingerHover)
		case e.Kind == EventMove:
		default:
			handled = false
		}

	case stateDoubleTapDetect:
		switch {
		case e.Kind == EventUp || e.Kind == EventCancel:
			r.transition(stateIdle)
			r.emit(e, FingerDoubleTap)
		case e.Kind == EventMove && moved:
			r.transition(stateMoving)
			r.emit(e, FingerMovingStart)
		case e.Kind == EventMove:
		default:
			handled = false
		}

	case stateMoving:
		switch e.Kind {
		case EventMove:
			r.emit(e, FingerMoving)
		case EventUp, EventCancel:
			r.transition(stateIdle)
			r.emit(e, FingerMovingEnd)
		default:
			handled = false
		}
	}

	if !handled {
		r.pm.debugf("pointer %d slot %d: ignored %s in %s", e.PointerID, r.index, e.Kind, r.state)
		if e.Kind == EventCancel {
			r.transition(stateIdle)
		}
	}
	r.history.Push(e)
}

// timeout fires the armed timer. The emitted event is the one that armed it,
// stamped with the deadline.
func (r *recognizer) timeout() {
	if !r.timer.armed {
		return
	}
	e := r.pending
	e.Timestamp = r.timer.deadline
	r.pm.debugf("pointer %d slot %d: timeout in %s", r.pointerID, r.index, r.state)

	switch r.state {
	case stateDetect:
		r.transition(stateIdle)
		r.emit(e, FingerHold)
	case stateTapsDetect:
		r.transition(stateIdle)
		r.emit(e, FingerSingleTap)
	case stateDoubleTapDetect:
		r.transition(stateIdle)
		r.emit(e, FingerHold)
	default:
		r.timer.cancel()
	}
}
