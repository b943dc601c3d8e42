package openlime

// historySize is the number of past events a recognizer remembers.
const historySize = 10

// ring is a fixed-capacity circular buffer. Pushing onto a full ring
// overwrites the oldest element.
type ring[T any] struct {
	buf   []T
	start int
	n     int
}

// newRing allocates a ring holding at most capacity elements.
func newRing[T any](capacity int) *ring[T] {
	if capacity < 1 {
		panic("openlime: ring capacity must be positive")
	}
	return &ring[T]{buf: make([]T, capacity)}
}

func (r *ring[T]) Len() int { return r.n }

// Push appends v at the newest end.
func (r *ring[T]) Push(v T) {
	if r.n == len(r.buf) {
		r.buf[r.start] = v
		r.start = (r.start + 1) % len(r.buf)
		return
	}
	r.buf[(r.start+r.n)%len(r.buf)] = v
	r.n++
}

// Last returns the newest element.
func (r *ring[T]) Last() (T, bool) {
	if r.n == 0 {
		var zero T
		return zero, false
	}
	return r.buf[(r.start+r.n-1)%len(r.buf)], true
}
