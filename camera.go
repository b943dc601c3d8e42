package openlime

import (
	"math"
	"sync/atomic"

	"github.com/tanema/gween/ease"
)

// viewPair is published whole so readers never see a half-updated pair or
// a pose paired with the wrong viewport.
type viewPair struct {
	source, target View
	viewport       Viewport
}

// Camera animates a View from a source pose to a target pose and maps
// between viewport pixels and scene coordinates.
//
// CurrentView, Viewport, ViewportToScene, SceneToViewport and VisibleBox
// may be called from any goroutine. Mutators (SetView, Pan, Zoom,
// SetViewport, SetBoundingBox, ...) and the exported fields belong to one
// goroutine.
type Camera struct {
	// MinZoom and MaxZoom limit Z when bounds are active. SetBoundingBox
	// recomputes them.
	MinZoom, MaxZoom float64
	// MinScreenFraction scales MinZoom: 1 keeps the whole scene at least as
	// large as the viewport.
	MinScreenFraction float64
	// MaxFixedZoom is the largest screen-pixel to scene-unit ratio.
	MaxFixedZoom float64
	// Bounded enables zoom and translation clamping once a scene box is set.
	Bounded bool
	// Easing shapes animations. Nil (the default) is linear.
	Easing ease.TweenFunc

	clock    Clock
	box      BoundingBox
	minScale float64

	pair      atomic.Pointer[viewPair]
	animating atomic.Bool

	listeners []func(*Camera)
	debug     bool
}

// NewCamera creates a camera over vp at the identity pose. A nil clock uses a
// SystemClock.
func NewCamera(vp Viewport, clock Clock) *Camera {
	if clock == nil {
		clock = &SystemClock{}
	}
	c := &Camera{
		MinZoom:           1,
		MaxZoom:           2,
		MinScreenFraction: 1,
		MaxFixedZoom:      2,
		Bounded:           true,
		clock:             clock,
		box:               EmptyBox(),
	}
	v := NewView(clock.Now())
	c.pair.Store(&viewPair{source: v, target: v, viewport: vp})
	return c
}

// SetDebugMode enables warnings about inconsistent zoom limits.
func (c *Camera) SetDebugMode(on bool) { c.debug = on }

// Clock returns the camera's clock.
func (c *Camera) Clock() Clock { return c.clock }

// Viewport returns the current viewport.
func (c *Camera) Viewport() Viewport { return c.pair.Load().viewport }

// BoundingBox returns the scene box set with SetBoundingBox.
func (c *Camera) BoundingBox() BoundingBox { return c.box }

// OnUpdate registers fn to be called whenever the target or viewport changes.
func (c *Camera) OnUpdate(fn func(*Camera)) {
	c.listeners = append(c.listeners, fn)
}

func (c *Camera) emitUpdate() {
	for _, fn := range c.listeners {
		fn(c)
	}
}

// Source returns the pose the current animation started from.
func (c *Camera) Source() View { return c.pair.Load().source }

// Target returns the pose the current animation ends at.
func (c *Camera) Target() View { return c.pair.Load().target }

// Animating reports whether the last animation has not yet been sampled at
// or past its end.
func (c *Camera) Animating() bool { return c.animating.Load() }

// CurrentView samples the animation at time. Before the source time it
// returns the source pose, from the target time on the target pose, and
// otherwise the eased interpolation. It has no side effect other than
// clearing the animating flag once the animation is over.
func (c *Camera) CurrentView(time float64) View {
	return c.sample(c.pair.Load(), time)
}

func (c *Camera) sample(p *viewPair, time float64) View {
	if time < p.source.T {
		return p.source
	}
	if time >= p.target.T {
		c.animating.Store(false)
		return p.target
	}
	return InterpolateEased(p.source, p.target, time, c.Easing)
}

// Current samples the animation at the clock's time.
func (c *Camera) Current() View {
	return c.CurrentView(c.clock.Now())
}

// SetView animates from wherever the camera is now to v over durationMs.
// v is bounded first when Bounded is set. A view without a positive zoom is
// ignored.
func (c *Camera) SetView(v View, durationMs float64) {
	if !validZoom(v.Z) {
		return
	}
	if c.Bounded {
		v = c.bound(v)
	}
	now := c.clock.Now()
	p := c.pair.Load()
	src := c.sample(p, now)
	src.T = now
	v.T = now + math.Max(durationMs, 0)
	c.pair.Store(&viewPair{source: src, target: v, viewport: p.viewport})
	c.animating.Store(true)
	c.emitUpdate()
}

// hasBounds reports whether clamping applies.
func (c *Camera) hasBounds() bool {
	return c.Bounded && !c.box.IsEmpty()
}

// bound clamps Z to the zoom limits and keeps the scene box on screen: the
// box centre may drift from the viewport centre by at most half the
// difference between the transformed box size and the viewport size.
func (c *Camera) bound(v View) View {
	if !c.hasBounds() {
		return v
	}
	// Zoom about the canvas origin, scaling the translation with it.
	if z := clamp(v.Z, c.MinZoom, c.MaxZoom); z != v.Z {
		r := z / v.Z
		v.X, v.Y, v.Z = v.X*r, v.Y*r, z
	}
	vp := c.Viewport()
	tb := v.TransformBox(c.box)
	cx, cy := tb.Center()
	dx := math.Abs(tb.Width()-vp.W) / 2
	dy := math.Abs(tb.Height()-vp.H) / 2
	v.X += clamp(cx, -dx, dx) - cx
	v.Y += clamp(cy, -dy, dy) - cy
	return v
}

// SetBoundingBox sets the scene box and derives the zoom limits. minScale is
// the finest scene feature size; zero or less means unknown.
func (c *Camera) SetBoundingBox(box BoundingBox, minScale float64) {
	c.box = box
	c.minScale = minScale
	c.updateBounds()
}

func (c *Camera) updateBounds() {
	vp := c.Viewport()
	if c.box.IsEmpty() || vp.W <= 0 || vp.H <= 0 {
		return
	}
	c.MinZoom = math.Min(vp.W/c.box.Width(), vp.H/c.box.Height()) * c.MinScreenFraction
	if c.minScale > 0 {
		c.MaxZoom = c.MaxFixedZoom / c.minScale
	} else {
		c.MaxZoom = c.MaxFixedZoom
	}
	if c.debug {
		debugCheckCameraLimits(c.MinZoom, c.MaxZoom)
	}
	c.MaxZoom = math.Max(c.MinZoom, c.MaxZoom)
}

// SetViewport resizes the viewport. The zoom of both poses is rescaled by
// the square root of the area ratio so the framing survives the resize.
func (c *Camera) SetViewport(vp Viewport) {
	p := *c.pair.Load()
	old := p.viewport
	if old.W > 0 && old.H > 0 && vp.W > 0 && vp.H > 0 {
		rz := math.Sqrt((vp.W / old.W) * (vp.H / old.H))
		p.source.Zoom(rz)
		p.target.Zoom(rz)
	}
	p.viewport = vp
	c.pair.Store(&p)
	c.updateBounds()
	c.emitUpdate()
}

// Fit animates to the largest zoom showing all of box, centred on its
// centroid. An empty box is ignored.
func (c *Camera) Fit(box BoundingBox, durationMs float64) {
	vp := c.Viewport()
	if box.IsEmpty() || vp.W <= 0 || vp.H <= 0 {
		return
	}
	z := math.Min(vp.W/box.Width(), vp.H/box.Height())
	cx, cy := box.Center()
	c.SetView(View{X: -z * cx, Y: -z * cy, Z: z}, durationMs)
}

// FitCameraBox fits the scene box.
func (c *Camera) FitCameraBox(durationMs float64) {
	c.Fit(c.box, durationMs)
}

// Pan moves the view by (dx, dy) viewport pixels.
func (c *Camera) Pan(dx, dy, durationMs float64) {
	v := c.Current()
	v.Pan(dx, dy)
	c.SetView(v, durationMs)
}

// Zoom scales by dz keeping the viewport point (x, y) fixed.
func (c *Camera) Zoom(dz, x, y, durationMs float64) {
	if !validZoom(dz) {
		return
	}
	v := c.Current()
	cx, cy := c.viewportToCanvas(x, y)
	v.ZoomAt(dz, cx, cy)
	c.SetView(v, durationMs)
}

// DeltaZoom is Zoom for rapid repeated input such as a wheel: dz compounds
// with the zoom still pending in the target and the result is clamped to
// the zoom limits.
func (c *Camera) DeltaZoom(dz, x, y, durationMs float64) {
	if !validZoom(dz) {
		return
	}
	v := c.Current()
	dz *= c.Target().Z / v.Z
	if c.hasBounds() {
		dz = clamp(v.Z*dz, c.MinZoom, c.MaxZoom) / v.Z
	}
	cx, cy := c.viewportToCanvas(x, y)
	v.ZoomAt(dz, cx, cy)
	c.SetView(v, durationMs)
}

func (c *Camera) viewportToCanvas(x, y float64) (float64, float64) {
	vp := c.Viewport()
	return x - vp.W/2, y - vp.H/2
}

// ViewportToScene maps a viewport pixel to scene coordinates at time.
func (c *Camera) ViewportToScene(x, y, time float64) (float64, float64) {
	p := c.pair.Load()
	m := invertAffine(sceneToViewportMatrix(c.sample(p, time), p.viewport))
	return transformPoint(m, x, y)
}

// SceneToViewport maps a scene point to viewport pixels at time.
func (c *Camera) SceneToViewport(x, y, time float64) (float64, float64) {
	p := c.pair.Load()
	return transformPoint(sceneToViewportMatrix(c.sample(p, time), p.viewport), x, y)
}

// VisibleBox returns the scene area covered by the viewport at time.
func (c *Camera) VisibleBox(time float64) BoundingBox {
	p := c.pair.Load()
	return c.sample(p, time).InverseBox(p.viewport)
}

// LookAtView returns the perspective pose equivalent to the view at time for
// a camera with vertical field of view fovDeg: view-space x and y times Z
// equal canvas coordinates.
func (c *Camera) LookAtView(time, fovDeg float64) LookAtView {
	p := c.pair.Load()
	v := c.sample(p, time)
	cx, cy := v.Inverse().Apply(0, 0)
	d := p.viewport.H / (2 * v.Z * math.Tan(fovDeg*math.Pi/360))
	sin, cos := math.Sincos(v.A * math.Pi / 180)
	return LookAtView{
		Eye:    Vec3{cx, cy, d},
		Target: Vec3{cx, cy, 0},
		Up:     Vec3{-sin, cos, 0},
		T:      time,
	}
}

// PerspectiveMatrix returns the projection for the viewport aspect ratio.
func (c *Camera) PerspectiveMatrix(fovDeg, near, far float64) Mat4 {
	vp := c.Viewport()
	return Perspective(fovDeg*math.Pi/180, vp.W/vp.H, near, far)
}
