package openlime

// GestureFunc handles one gesture. Returning true consumes the event and
// stops propagation to lower-priority listeners.
type GestureFunc func(e *GestureEvent) bool

// Priority orders listeners; lower ranks run first. The zero Priority is
// unset and rejected at registration, so build one with Prio.
type Priority struct {
	rank int
	set  bool
}

// Prio returns a set Priority of the given rank.
func Prio(rank int) Priority {
	return Priority{rank: rank, set: true}
}

// Rank returns the ordering value.
func (p Priority) Rank() int { return p.rank }

// IsSet reports whether the priority was built with Prio.
func (p Priority) IsSet() bool { return p.set }

// funcPriority is the rank given to listeners built by SubscribeFunc.
const funcPriority = -1000

// Listener is a set of gesture handlers sharing one priority. The same
// Listener may be subscribed to several gesture types and pointer slots;
// Unsubscribe identifies it by pointer.
type Listener struct {
	Priority Priority
	Handlers map[GestureType]GestureFunc
}

// NewListener returns a Listener with the given handlers.
func NewListener(p Priority, handlers map[GestureType]GestureFunc) *Listener {
	if handlers == nil {
		handlers = make(map[GestureType]GestureFunc)
	}
	return &Listener{Priority: p, Handlers: handlers}
}

func (l *Listener) handler(t GestureType) GestureFunc {
	if l == nil {
		return nil
	}
	return l.Handlers[t]
}

// EventHandler groups the non-pan gesture callbacks registered by
// PointerManager.OnEvent. Nil fields are skipped, but at least one must be set.
type EventHandler struct {
	Priority        Priority
	FingerHover     GestureFunc
	FingerSingleTap GestureFunc
	FingerDoubleTap GestureFunc
	FingerHold      GestureFunc
	MouseWheel      GestureFunc
}

func (h EventHandler) listener() *Listener {
	l := NewListener(h.Priority, nil)
	for t, fn := range map[GestureType]GestureFunc{
		FingerHover:     h.FingerHover,
		FingerSingleTap: h.FingerSingleTap,
		FingerDoubleTap: h.FingerDoubleTap,
		FingerHold:      h.FingerHold,
		MouseWheel:      h.MouseWheel,
	} {
		if fn != nil {
			l.Handlers[t] = fn
		}
	}
	return l
}

// PanHandler claims drag gestures. PanStart decides whether to claim the
// gesture; after a claim PanMove and PanEnd receive the rest of that
// pointer's interaction. All three are required.
type PanHandler struct {
	Priority Priority
	PanStart GestureFunc
	PanMove  func(e *GestureEvent)
	PanEnd   func(e *GestureEvent)
}
