package openlime

import (
	"fmt"
	"math"
)

// PointerConfig tunes gesture recognition. Zero fields take the defaults
// listed on each field.
type PointerConfig struct {
	// Diagonal is the screen diagonal in inches (default 27).
	Diagonal float64 `yaml:"diagonal"`
	// ScreenWidth and ScreenHeight are the screen size in pixels
	// (default 1920x1080).
	ScreenWidth  int `yaml:"screen_width"`
	ScreenHeight int `yaml:"screen_height"`
	// PPMM overrides the pixels-per-millimetre derived from the screen.
	PPMM float64 `yaml:"ppmm"`

	// HoldTimeout is how long a still press takes to become a hold (600ms).
	HoldTimeout float64 `yaml:"hold_timeout"`
	// TapTimeout is the window for a second tap (300ms).
	TapTimeout float64 `yaml:"tap_timeout"`
	// MovingThreshold is the travel in mm that turns a press into a pan (5mm).
	MovingThreshold float64 `yaml:"moving_threshold"`
	// SameThreshold is the distance in mm within which a new pointer ID is
	// treated as the previous pointer (15mm).
	SameThreshold float64 `yaml:"same_threshold"`
}

// DefaultPointerConfig returns the configuration of a 27" 1920x1080 screen.
func DefaultPointerConfig() PointerConfig {
	return PointerConfig{
		Diagonal:        27,
		ScreenWidth:     1920,
		ScreenHeight:    1080,
		HoldTimeout:     defaultHoldTimeout,
		TapTimeout:      defaultTapTimeout,
		MovingThreshold: defaultMovingThreshold,
		SameThreshold:   defaultSameThreshold,
	}
}

func (c PointerConfig) withDefaults() PointerConfig {
	d := DefaultPointerConfig()
	if c.Diagonal <= 0 {
		c.Diagonal = d.Diagonal
	}
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		c.ScreenWidth, c.ScreenHeight = d.ScreenWidth, d.ScreenHeight
	}
	if c.HoldTimeout <= 0 {
		c.HoldTimeout = d.HoldTimeout
	}
	if c.TapTimeout <= 0 {
		c.TapTimeout = d.TapTimeout
	}
	if c.MovingThreshold <= 0 {
		c.MovingThreshold = d.MovingThreshold
	}
	if c.SameThreshold <= 0 {
		c.SameThreshold = d.SameThreshold
	}
	return c
}

// computePPMM derives pixels per millimetre from the screen diagonal,
// rounded and never below 1.
func computePPMM(width, height int, diagonal float64) float64 {
	w, h := float64(width), float64(height)
	ppmm := math.Round(math.Sqrt(w*w+h*h) / diagonal / 25.4)
	return math.Max(ppmm, 1)
}

// scopeKey addresses the listeners attached to one pointer slot.
type scopeKey struct {
	index int
	typ   GestureType
}

// GestureSink receives every emitted gesture after the listeners ran.
type GestureSink interface {
	EmitGesture(e GestureEvent)
}

// PointerManager demultiplexes raw pointer events into per-pointer gesture
// recognizers and dispatches the resulting gestures to listeners.
//
// Dispatch, Update and the Subscribe family must be called from a single
// goroutine; handlers run synchronously on it and may subscribe or
// unsubscribe while being called.
type PointerManager struct {
	cfg   PointerConfig
	ppmm  float64
	clock Clock

	slots []*recognizer
	free  []int // free slot indices, ascending

	broadcast map[GestureType][]*Listener
	scoped    map[scopeKey][]*Listener

	sched scheduler
	sink  GestureSink
	debug bool
}

// NewPointerManager creates a PointerManager. A nil clock uses a SystemClock.
func NewPointerManager(cfg PointerConfig, clock Clock) *PointerManager {
	cfg = cfg.withDefaults()
	if clock == nil {
		clock = &SystemClock{}
	}
	ppmm := cfg.PPMM
	if ppmm <= 0 {
		ppmm = computePPMM(cfg.ScreenWidth, cfg.ScreenHeight, cfg.Diagonal)
	}
	return &PointerManager{
		cfg:       cfg,
		ppmm:      ppmm,
		clock:     clock,
		broadcast: make(map[GestureType][]*Listener),
		scoped:    make(map[scopeKey][]*Listener),
	}
}

// PPMM returns the pixels-per-millimetre used for distance thresholds.
func (pm *PointerManager) PPMM() float64 { return pm.ppmm }

// Clock returns the manager's clock.
func (pm *PointerManager) Clock() Clock { return pm.clock }

// Len returns the number of live recognizers.
func (pm *PointerManager) Len() int {
	n := 0
	for _, r := range pm.slots {
		if r != nil {
			n++
		}
	}
	return n
}

// SetGestureSink forwards every emitted gesture to s. Nil disables it.
func (pm *PointerManager) SetGestureSink(s GestureSink) {
	pm.sink = s
}

// Dispatch feeds one raw event to the recognizer owning its pointer, or to
// a new recognizer in the lowest free slot. Timers due at or before the
// event's timestamp fire first. A zero Timestamp is stamped from the clock.
// It reports whether a recognizer consumed the event.
func (pm *PointerManager) Dispatch(e InputEvent) bool {
	if e.Timestamp == 0 {
		e.Timestamp = pm.clock.Now()
	}
	pm.fireTimers(e.Timestamp)

	if i := pm.owner(e); i >= 0 {
		pm.slots[i].process(e)
		pm.reap(i)
		return true
	}

	idx := pm.alloc()
	r := newRecognizer(pm, idx, e)
	pm.slots[idx] = r
	pm.debugf("pointer %d (%s): new recognizer in slot %d", e.PointerID, e.PointerType, idx)
	r.process(e)
	pm.reap(idx)
	return true
}

// owner returns the slot of the recognizer tracking e.PointerID. Failing
// that, a released recognizer may adopt a new ID through reconciliation.
// It returns -1 when e needs a new recognizer.
func (pm *PointerManager) owner(e InputEvent) int {
	for i, r := range pm.slots {
		if r != nil && r.pointerID == e.PointerID {
			return i
		}
	}
	for i, r := range pm.slots {
		if r != nil && r.reconciles(e) {
			return i
		}
	}
	return -1
}

// Update fires expired timers and due intervals. Call it once per frame.
func (pm *PointerManager) Update() {
	now := pm.clock.Now()
	pm.fireTimers(now)
	pm.sched.run(now)
}

// Every calls fn every periodMs milliseconds from Update until the returned
// Interval is stopped.
func (pm *PointerManager) Every(periodMs float64, fn func(now float64)) *Interval {
	return pm.sched.add(pm.clock.Now(), periodMs, fn)
}

// fireTimers fires every timer whose deadline is at or before now, earliest
// first.
func (pm *PointerManager) fireTimers(now float64) {
	for {
		next := -1
		for i, r := range pm.slots {
			if r == nil || !r.timer.due(now) {
				continue
			}
			if next < 0 || r.timer.deadline < pm.slots[next].timer.deadline {
				next = i
			}
		}
		if next < 0 {
			return
		}
		pm.slots[next].timeout()
		pm.reap(next)
	}
}

// alloc returns the lowest free slot, growing the arena when none is free.
func (pm *PointerManager) alloc() int {
	if len(pm.free) > 0 {
		idx := pm.free[0]
		pm.free = pm.free[1:]
		return idx
	}
	pm.slots = append(pm.slots, nil)
	return len(pm.slots) - 1
}

// release empties a slot and drops its scoped listeners.
func (pm *PointerManager) release(idx int) {
	pm.slots[idx] = nil
	for k := range pm.scoped {
		if k.index == idx {
			delete(pm.scoped, k)
		}
	}
	// Keep the free list sorted so alloc hands out the lowest slot.
	pos := len(pm.free)
	for i, f := range pm.free {
		if f > idx {
			pos = i
			break
		}
	}
	pm.free = append(pm.free, 0)
	copy(pm.free[pos+1:], pm.free[pos:])
	pm.free[pos] = idx
}

func (pm *PointerManager) reap(idx int) {
	r := pm.slots[idx]
	if r == nil || !r.done() {
		return
	}
	pm.debugf("pointer %d: slot %d released", r.pointerID, idx)
	pm.release(idx)
}

func (pm *PointerManager) validIndex(idx int) bool {
	return idx >= 0 && idx < len(pm.slots) && pm.slots[idx] != nil
}

// Subscribe registers l for the given gesture types. index is AnyPointer for
// every pointer, or a live slot to scope l to that pointer's current
// interaction; scoped listeners are dropped when the slot is released.
// Nothing is registered when an error is returned.
func (pm *PointerManager) Subscribe(types []GestureType, l *Listener, index int) error {
	if l == nil || !l.Priority.IsSet() {
		return ErrMissingPriority
	}
	for _, t := range types {
		if l.handler(t) == nil {
			return fmt.Errorf("%w: no handler for %s", ErrMissingHandlerSet, t)
		}
	}
	if index != AnyPointer && !pm.validIndex(index) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	for _, t := range types {
		if index == AnyPointer {
			pm.broadcast[t] = insertListener(pm.broadcast[t], l)
		} else {
			k := scopeKey{index, t}
			pm.scoped[k] = insertListener(pm.scoped[k], l)
		}
	}
	return nil
}

// SubscribeFunc registers fn for the given types at priority -1000 and
// returns the Listener wrapping it.
func (pm *PointerManager) SubscribeFunc(types []GestureType, fn GestureFunc, index int) (*Listener, error) {
	l := NewListener(Prio(funcPriority), nil)
	for _, t := range types {
		l.Handlers[t] = fn
	}
	if fn == nil {
		return nil, ErrMissingHandlerSet
	}
	if err := pm.Subscribe(types, l, index); err != nil {
		return nil, err
	}
	return l, nil
}

// Unsubscribe removes l from the given types. A nil l removes every
// listener of those types.
func (pm *PointerManager) Unsubscribe(types []GestureType, l *Listener, index int) error {
	if index != AnyPointer && !pm.validIndex(index) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	for _, t := range types {
		if index == AnyPointer {
			if ls := removeListener(pm.broadcast[t], l); len(ls) > 0 {
				pm.broadcast[t] = ls
			} else {
				delete(pm.broadcast, t)
			}
			continue
		}
		k := scopeKey{index, t}
		if ls := removeListener(pm.scoped[k], l); len(ls) > 0 {
			pm.scoped[k] = ls
		} else {
			delete(pm.scoped, k)
		}
	}
	return nil
}

// OnEvent registers the non-nil callbacks of h for every pointer.
func (pm *PointerManager) OnEvent(h EventHandler) (*Listener, error) {
	if !h.Priority.IsSet() {
		return nil, ErrMissingPriority
	}
	l := h.listener()
	if len(l.Handlers) == 0 {
		return nil, ErrMissingHandlerSet
	}
	types := make([]GestureType, 0, len(l.Handlers))
	for t := 0; t < gestureTypeCount; t++ {
		if _, ok := l.Handlers[GestureType(t)]; ok {
			types = append(types, GestureType(t))
		}
	}
	if err := pm.Subscribe(types, l, AnyPointer); err != nil {
		return nil, err
	}
	return l, nil
}

// SubscribePan registers h for drags on every pointer. When PanStart claims
// a gesture, PanMove and PanEnd are subscribed to that pointer's slot only
// and the start event is consumed. The returned Listener can be passed to
// Unsubscribe with FingerMovingStart.
func (pm *PointerManager) SubscribePan(h PanHandler) (*Listener, error) {
	if !h.Priority.IsSet() {
		return nil, ErrMissingPriority
	}
	if h.PanStart == nil || h.PanMove == nil || h.PanEnd == nil {
		return nil, ErrMissingHandlerSet
	}
	start := NewListener(h.Priority, map[GestureType]GestureFunc{
		FingerMovingStart: func(e *GestureEvent) bool {
			if !h.PanStart(e) {
				return false
			}
			claim := NewListener(h.Priority, map[GestureType]GestureFunc{
				FingerMoving: func(e *GestureEvent) bool {
					h.PanMove(e)
					return true
				},
				FingerMovingEnd: func(e *GestureEvent) bool {
					h.PanEnd(e)
					return true
				},
			})
			if err := pm.Subscribe([]GestureType{FingerMoving, FingerMovingEnd}, claim, e.Index); err != nil {
				pm.debugf("pan claim on slot %d: %v", e.Index, err)
			}
			return true
		},
	})
	if err := pm.Subscribe([]GestureType{FingerMovingStart}, start, AnyPointer); err != nil {
		return nil, err
	}
	return start, nil
}

// emit runs the scoped listeners of the event's slot, then the broadcast
// listeners if none consumed it, then the sink.
func (pm *PointerManager) emit(e *GestureEvent) {
	if !callListeners(pm.scoped[scopeKey{e.Index, e.Type}], e) {
		callListeners(pm.broadcast[e.Type], e)
	}
	if pm.sink != nil {
		pm.sink.EmitGesture(*e)
	}
}

// callListeners invokes ls in order until one consumes e. It iterates over a
// copy so handlers may subscribe or unsubscribe.
func callListeners(ls []*Listener, e *GestureEvent) bool {
	if len(ls) == 0 {
		return false
	}
	snapshot := append([]*Listener(nil), ls...)
	for _, l := range snapshot {
		if fn := l.handler(e.Type); fn != nil && fn(e) {
			return true
		}
	}
	return false
}

// insertListener adds l after every listener of equal or lower rank, keeping
// registration order among equals. A listener already present is not added
// twice.
func insertListener(ls []*Listener, l *Listener) []*Listener {
	for _, x := range ls {
		if x == l {
			return ls
		}
	}
	pos := len(ls)
	for i, x := range ls {
		if x.Priority.Rank() > l.Priority.Rank() {
			pos = i
			break
		}
	}
	ls = append(ls, nil)
	copy(ls[pos+1:], ls[pos:])
	ls[pos] = l
	return ls
}

// removeListener drops l from ls; a nil l drops all.
func removeListener(ls []*Listener, l *Listener) []*Listener {
	if l == nil {
		return nil
	}
	out := ls[:0:0]
	for _, x := range ls {
		if x != l {
			out = append(out, x)
		}
	}
	return out
}
