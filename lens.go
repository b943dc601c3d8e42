package openlime

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// lensAnim holds the active tween of one lens property.
type lensAnim struct {
	tween *gween.Tween
	done  bool
}

func (a *lensAnim) step(dt float64, v *float64) bool {
	if a == nil || a.done {
		return true
	}
	val, done := a.tween.Update(float32(dt))
	*v = float64(val)
	a.done = done
	return done
}

// Lens is a circular focus region in scene coordinates. Its centre and
// radius animate toward their targets as Update is called.
type Lens struct {
	// X, Y and Radius are the current, possibly animating, values.
	X, Y, Radius float64
	// Easing shapes the animations (default ease.OutQuad).
	Easing ease.TweenFunc

	tx, ty, tr   float64
	animX, animY *lensAnim
	animR        *lensAnim
	onUpdate     func(*Lens)
}

// NewLens returns a lens at rest.
func NewLens(x, y, radius float64) *Lens {
	return &Lens{
		X: x, Y: y, Radius: radius,
		tx: x, ty: y, tr: radius,
		Easing: ease.OutQuad,
	}
}

// OnUpdate registers fn to be called after every Update that moved the lens.
func (l *Lens) OnUpdate(fn func(*Lens)) { l.onUpdate = fn }

func (l *Lens) tween(from, to, durationMs float64) *lensAnim {
	return &lensAnim{tween: gween.New(float32(from), float32(to), float32(durationMs), l.Easing)}
}

// SetCenter moves the centre to (x, y) over durationMs. A non-positive
// duration jumps.
func (l *Lens) SetCenter(x, y, durationMs float64) {
	l.tx, l.ty = x, y
	if durationMs <= 0 {
		l.X, l.Y = x, y
		l.animX, l.animY = nil, nil
		return
	}
	l.animX = l.tween(l.X, x, durationMs)
	l.animY = l.tween(l.Y, y, durationMs)
}

// SetRadius changes the radius to r over durationMs.
func (l *Lens) SetRadius(r, durationMs float64) {
	r = math.Max(r, 0)
	l.tr = r
	if durationMs <= 0 {
		l.Radius = r
		l.animR = nil
		return
	}
	l.animR = l.tween(l.Radius, r, durationMs)
}

// Update advances the animations by dtMs.
func (l *Lens) Update(dtMs float64) {
	if !l.Animating() {
		return
	}
	// Tweens run in float32; finished properties snap to the exact target.
	if l.animX.step(dtMs, &l.X) {
		l.X, l.animX = l.tx, nil
	}
	if l.animY.step(dtMs, &l.Y) {
		l.Y, l.animY = l.ty, nil
	}
	if l.animR.step(dtMs, &l.Radius) {
		l.Radius, l.animR = l.tr, nil
	}
	if l.onUpdate != nil {
		l.onUpdate(l)
	}
}

// Animating reports whether any property is still moving.
func (l *Lens) Animating() bool {
	return l.animX != nil || l.animY != nil || l.animR != nil
}

// Target returns the centre and radius the lens is heading to.
func (l *Lens) Target() (x, y, radius float64) {
	return l.tx, l.ty, l.tr
}

// Contains reports whether the scene point (x, y) lies strictly inside the
// target circle.
func (l *Lens) Contains(x, y float64) bool {
	return math.Hypot(x-l.tx, y-l.ty) < l.tr
}
