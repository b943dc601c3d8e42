package openlime

import (
	"errors"
	"math"
	"testing"
)

func TestLookAtIdentityPose(t *testing.T) {
	v := NewLookAtView(0)
	p, err := v.Project(Vec3{2, 3, 0})
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	assertVec(t, "projected", p, Vec3{2, 3, -1})
}

func TestLookAtDegenerate(t *testing.T) {
	tests := []struct {
		name string
		v    LookAtView
	}{
		{"eye on target", LookAtView{Eye: Vec3{1, 1, 1}, Target: Vec3{1, 1, 1}, Up: Vec3{0, 1, 0}}},
		{"up along view", LookAtView{Eye: Vec3{0, 0, 5}, Target: Vec3{0, 0, 0}, Up: Vec3{0, 0, 1}}},
		{"zero up", LookAtView{Eye: Vec3{0, 0, 5}, Target: Vec3{0, 0, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, inv, err := tt.v.LookAt()
			if !errors.Is(err, ErrDegenerateBasis) {
				t.Fatalf("err = %v, want ErrDegenerateBasis", err)
			}
			if m != Identity() || inv != Identity() {
				t.Error("degenerate basis should return identity matrices")
			}
			if _, err := tt.v.Project(Vec3{}); !errors.Is(err, ErrDegenerateBasis) {
				t.Errorf("Project err = %v", err)
			}
			if _, err := tt.v.Unproject(Vec3{}); !errors.Is(err, ErrDegenerateBasis) {
				t.Errorf("Unproject err = %v", err)
			}
		})
	}
}

func TestLookAtInverse(t *testing.T) {
	v := LookAtView{Eye: Vec3{3, -2, 7}, Target: Vec3{1, 1, 0}, Up: Vec3{0.2, 1, 0.1}}
	m, inv, err := v.LookAt()
	if err != nil {
		t.Fatal(err)
	}
	assertMat4(t, "m*inv", m.Mul(inv), Identity())
}

func TestLookAtProjectRoundTrip(t *testing.T) {
	v := LookAtView{Eye: Vec3{-4, 10, 25}, Target: Vec3{2, 3, 0}, Up: Vec3{0, 1, 0}}
	for _, p := range []Vec3{{0, 0, 0}, {1, 2, 3}, {-50, 12, -8}} {
		q, err := v.Project(p)
		if err != nil {
			t.Fatal(err)
		}
		back, err := v.Unproject(q)
		if err != nil {
			t.Fatal(err)
		}
		assertVec(t, "round trip", back, p)
	}
}

func TestLookAtZoomPan(t *testing.T) {
	v := NewLookAtView(0)
	v.Zoom(2)
	assertVec(t, "eye", v.Eye, Vec3{0, 0, 0.5})
	v.Pan(3, -1)
	assertVec(t, "eye", v.Eye, Vec3{3, -1, 0.5})
	assertVec(t, "target", v.Target, Vec3{3, -1, 0})
}

func TestInterpolateLookAt(t *testing.T) {
	src := NewLookAtView(0)
	dst := LookAtView{Eye: Vec3{10, 0, 3}, Target: Vec3{10, 0, 0}, Up: Vec3{0, 1, 0}, T: 100}

	if got := InterpolateLookAt(src, dst, -5); got != src {
		t.Errorf("before source: %+v", got)
	}
	if got := InterpolateLookAt(src, dst, 150); got != dst {
		t.Errorf("after target: %+v", got)
	}
	mid := InterpolateLookAt(src, dst, 50)
	assertVec(t, "eye", mid.Eye, Vec3{5, 0, 2})
	assertVec(t, "target", mid.Target, Vec3{5, 0, 0})
	if mid.T != 50 {
		t.Errorf("T = %v, want 50", mid.T)
	}
}

func TestFitLookAt(t *testing.T) {
	box := BoundingBox{XLow: -50, YLow: -50, XHigh: 50, YHigh: 50}
	v, z, err := FitLookAt(box, Viewport{W: 800, H: 600}, 90)
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "z", z, 6)
	assertVec(t, "eye", v.Eye, Vec3{0, 0, 50})
	assertVec(t, "target", v.Target, Vec3{0, 0, 0})
}

func TestFitLookAtEmptyBox(t *testing.T) {
	_, _, err := FitLookAt(EmptyBox(), Viewport{W: 800, H: 600}, 60)
	if !errors.Is(err, ErrEmptyBoundingBox) {
		t.Errorf("err = %v, want ErrEmptyBoundingBox", err)
	}
}

func TestCameraLookAtViewMatchesCanvas(t *testing.T) {
	cam, _ := newTestCamera()
	view := View{X: 30, Y: -10, Z: 2, A: 30}
	cam.SetView(view, 0)

	const fov = 60.0
	lv := cam.LookAtView(1000, fov)
	d := 600 / (2 * 2 * math.Tan(fov*math.Pi/360))
	for _, p := range [][2]float64{{0, 0}, {25, -40}, {-100, 7}} {
		q, err := lv.Project(Vec3{p[0], p[1], 0})
		if err != nil {
			t.Fatal(err)
		}
		cx, cy := view.Apply(p[0], p[1])
		assertNear(t, "x", q[0]*view.Z, cx)
		assertNear(t, "y", q[1]*view.Z, cy)
		assertNear(t, "depth", q[2], -d)
	}
}
