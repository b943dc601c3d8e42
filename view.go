package openlime

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// View is a camera pose: a scene point p is drawn at canvas position
// Z*rotate(p, A) + (X, Y). The canvas origin is the viewport centre, y
// pointing down.
//
// View is a value; copies are independent and methods with a pointer
// receiver only touch the receiver.
type View struct {
	// X and Y translate in canvas pixels.
	X, Y float64
	// Z is the scale factor; it must stay positive.
	Z float64
	// A is the rotation in degrees.
	A float64
	// T is the time in milliseconds the pose applies to.
	T float64
}

// NewView returns the identity pose at time t.
func NewView(t float64) View {
	return View{Z: 1, T: t}
}

// Apply maps a scene point to canvas coordinates.
func (v View) Apply(x, y float64) (float64, float64) {
	rx, ry := rotate(x, y, v.A)
	return rx*v.Z + v.X, ry*v.Z + v.Y
}

// Inverse returns the pose mapping canvas coordinates back to the scene.
func (v View) Inverse() View {
	rx, ry := rotate(v.X/v.Z, v.Y/v.Z, -v.A)
	return View{X: -rx, Y: -ry, Z: 1 / v.Z, A: -v.A, T: v.T}
}

// Compose returns the pose that applies v first, then o.
func (v View) Compose(o View) View {
	rx, ry := rotate(v.X, v.Y, o.A)
	return View{
		X: rx*o.Z + o.X,
		Y: ry*o.Z + o.Y,
		Z: v.Z * o.Z,
		A: v.A + o.A,
		T: v.T,
	}
}

// Zoom scales about the canvas origin by dz (dz > 1 zooms in).
func (v *View) Zoom(dz float64) {
	v.ZoomAt(dz, 0, 0)
}

// ZoomAt scales by dz keeping the canvas point (cx, cy) fixed. A factor
// that is not positive is ignored.
func (v *View) ZoomAt(dz, cx, cy float64) {
	if !validZoom(dz) {
		return
	}
	v.X = dz*v.X + (1-dz)*cx
	v.Y = dz*v.Y + (1-dz)*cy
	v.Z *= dz
}

// validZoom reports whether z is a usable scale: positive and finite. NaN
// fails the comparison.
func validZoom(z float64) bool {
	return z > 0 && !math.IsInf(z, 1)
}

// Pan translates by (dx, dy) canvas pixels without changing scale.
func (v *View) Pan(dx, dy float64) {
	v.X += dx
	v.Y += dy
}

// Matrix returns the scene-to-canvas affine matrix as [a, b, c, d, tx, ty].
func (v View) Matrix() [6]float64 {
	return viewAffine(v)
}

// TransformBox returns the canvas-space bounds of a scene box.
func (v View) TransformBox(b BoundingBox) BoundingBox {
	out := EmptyBox()
	for i := 0; i < 4; i++ {
		out.MergePoint(v.Apply(b.Corner(i)))
	}
	return out
}

// InverseBox returns the scene-space bounds of the viewport: the area a
// tile layout must cover to fill the screen.
func (v View) InverseBox(vp Viewport) BoundingBox {
	inv := v.Inverse()
	out := EmptyBox()
	for i := 0; i < 4; i++ {
		cx, cy := BoundingBox{XHigh: vp.W, YHigh: vp.H}.Corner(i)
		out.MergePoint(inv.Apply(cx-vp.W/2, cy-vp.H/2))
	}
	return out
}

// ProjectionMatrix returns the column-major matrix mapping scene coordinates
// to normalized device coordinates (y up) for vp.
func (v View) ProjectionMatrix(vp Viewport) Mat4 {
	sin, cos := math.Sincos(v.A * math.Pi / 180)
	zx, zy := 2*v.Z/vp.W, 2*v.Z/vp.H
	return Mat4{
		cos * zx, sin * zy, 0, 0,
		sin * zx, -cos * zy, 0, 0,
		0, 0, 1, 0,
		2 * v.X / vp.W, -2 * v.Y / vp.H, 0, 1,
	}
}

// GeoM returns an ebiten geometry matrix drawing scene coordinates into the
// screen rectangle of vp.
func (v View) GeoM(vp Viewport) ebiten.GeoM {
	var m ebiten.GeoM
	m.Rotate(-v.A * math.Pi / 180)
	m.Scale(v.Z, v.Z)
	m.Translate(v.X+vp.X+vp.W/2, v.Y+vp.Y+vp.H/2)
	return m
}

// Interpolate returns the pose at time between source and target. Before
// source.T it returns source unchanged, from target.T on target unchanged;
// in between every field moves linearly and T is time. A window shorter
// than 1e-4ms snaps to target.
func Interpolate(source, target View, time float64) View {
	return InterpolateEased(source, target, time, nil)
}

// InterpolateEased is Interpolate with the time fraction mapped through a
// gween easing curve. The eased fraction is clamped to [0, 1] so overshooting
// curves never leave the source-target segment. A nil fn is linear.
func InterpolateEased(source, target View, time float64, fn ease.TweenFunc) View {
	if time < source.T {
		return source
	}
	span := target.T - source.T
	if time >= target.T || span < 1e-4 {
		return target
	}
	f := (time - source.T) / span
	if fn != nil {
		f = clamp(float64(fn(float32(f), 0, 1, 1)), 0, 1)
	}
	return View{
		X: source.X + (target.X-source.X)*f,
		Y: source.Y + (target.Y-source.Y)*f,
		Z: source.Z + (target.Z-source.Z)*f,
		A: source.A + (target.A-source.A)*f,
		T: time,
	}
}
