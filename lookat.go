package openlime

import (
	"fmt"
	"math"
)

// LookAtView is the perspective form of a camera pose: an eye looking at a
// target with an up direction. The affine View drives the controllers; a
// LookAtView is derived from it (Camera.LookAtView) or built directly for
// 3D consumers.
type LookAtView struct {
	Eye, Target, Up Vec3
	T               float64
}

// NewLookAtView returns an eye one unit above the origin looking down -z.
func NewLookAtView(t float64) LookAtView {
	return LookAtView{
		Eye:    Vec3{0, 0, 1},
		Target: Vec3{0, 0, 0},
		Up:     Vec3{0, 1, 0},
		T:      t,
	}
}

// Zoom moves the eye toward the target by factor dz (dz > 1 gets closer).
func (v *LookAtView) Zoom(dz float64) {
	v.Eye = v.Target.Add(v.Eye.Sub(v.Target).Mul(1 / dz))
}

// Pan translates eye and target together.
func (v *LookAtView) Pan(dx, dy float64) {
	d := Vec3{dx, dy, 0}
	v.Eye = v.Eye.Add(d)
	v.Target = v.Target.Add(d)
}

// InterpolateLookAt is Interpolate for look-at poses.
func InterpolateLookAt(source, target LookAtView, time float64) LookAtView {
	if time < source.T {
		return source
	}
	span := target.T - source.T
	if time >= target.T || span < 1e-4 {
		return target
	}
	f := (time - source.T) / span
	return LookAtView{
		Eye:    source.Eye.Lerp(target.Eye, f),
		Target: source.Target.Lerp(target.Target, f),
		Up:     source.Up.Lerp(target.Up, f),
		T:      time,
	}
}

const basisEpsilon = 1e-12

// LookAt builds the view matrix of v and its inverse. It fails with
// ErrDegenerateBasis when eye and target coincide or up is parallel to the
// view direction.
func (v LookAtView) LookAt() (m, inv Mat4, err error) {
	f := v.Eye.Sub(v.Target)
	n := f.Norm()
	if n < basisEpsilon {
		return Identity(), Identity(), fmt.Errorf("%w: eye and target coincide", ErrDegenerateBasis)
	}
	f = f.Mul(1 / n)
	x := v.Up.Cross(f)
	n = x.Norm()
	if n < basisEpsilon {
		return Identity(), Identity(), fmt.Errorf("%w: up is parallel to the view direction", ErrDegenerateBasis)
	}
	x = x.Mul(1 / n)
	y := f.Cross(x)

	e := v.Eye
	m = Mat4{
		x[0], y[0], f[0], 0,
		x[1], y[1], f[1], 0,
		x[2], y[2], f[2], 0,
		-x.Dot(e), -y.Dot(e), -f.Dot(e), 1,
	}
	inv = Mat4{
		x[0], x[1], x[2], 0,
		y[0], y[1], y[2], 0,
		f[0], f[1], f[2], 0,
		e[0], e[1], e[2], 1,
	}
	return m, inv, nil
}

// Project maps a scene point into view space.
func (v LookAtView) Project(p Vec3) (Vec3, error) {
	m, _, err := v.LookAt()
	if err != nil {
		return Vec3{}, err
	}
	return m.Transform(p), nil
}

// Unproject maps a view-space point back to the scene.
func (v LookAtView) Unproject(p Vec3) (Vec3, error) {
	_, inv, err := v.LookAt()
	if err != nil {
		return Vec3{}, err
	}
	return inv.Transform(p), nil
}

// FitLookAt frames box in vp with a perspective camera of vertical field of
// view fovDeg. It returns the pose and the scale in viewport pixels per
// scene unit at the target plane.
func FitLookAt(box BoundingBox, vp Viewport, fovDeg float64) (LookAtView, float64, error) {
	if box.IsEmpty() {
		return LookAtView{}, 0, ErrEmptyBoundingBox
	}
	z := math.Min(vp.W/box.Width(), vp.H/box.Height())
	d := vp.H / (2 * z * math.Tan(fovDeg*math.Pi/360))
	cx, cy := box.Center()
	return LookAtView{
		Eye:    Vec3{cx, cy, d},
		Target: Vec3{cx, cy, 0},
		Up:     Vec3{0, 1, 0},
	}, z, nil
}
