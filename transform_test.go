package openlime

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- rotate ---

func TestRotate(t *testing.T) {
	tests := []struct {
		name         string
		x, y, angle  float64
		wantX, wantY float64
	}{
		{"zero", 3, 4, 0, 3, 4},
		{"90", 1, 0, 90, 0, -1},
		{"180", 1, 2, 180, -1, -2},
		{"-90", 1, 0, -90, 0, 1},
		{"360", 5, -2, 360, 5, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := rotate(tt.x, tt.y, tt.angle)
			assertNear(t, "x", x, tt.wantX)
			assertNear(t, "y", y, tt.wantY)
		})
	}
}

// --- viewAffine ---

func TestViewAffineIdentity(t *testing.T) {
	assertMatrix(t, "identity", viewAffine(NewView(0)), identityTransform)
}

func TestViewAffineTranslation(t *testing.T) {
	got := viewAffine(View{X: 10, Y: 20, Z: 1})
	assertMatrix(t, "translation", got, [6]float64{1, 0, 0, 1, 10, 20})
}

func TestViewAffineScale(t *testing.T) {
	got := viewAffine(View{Z: 3})
	assertMatrix(t, "scale", got, [6]float64{3, 0, 0, 3, 0, 0})
}

func TestViewAffineRotation90(t *testing.T) {
	got := viewAffine(View{Z: 1, A: 90})
	// cos(90)=0, sin(90)=1 → a=0, b=-1, c=1, d=0
	assertMatrix(t, "rot90", got, [6]float64{0, -1, 1, 0, 0, 0})
}

func TestViewAffineMatchesApply(t *testing.T) {
	views := []View{
		{X: 5, Y: -3, Z: 2, A: 30},
		{X: -100, Y: 40, Z: 0.25, A: -135},
		{Z: 1, A: 720},
	}
	for _, v := range views {
		m := v.Matrix()
		for _, p := range [][2]float64{{0, 0}, {1, 0}, {0, 1}, {12.5, -7}} {
			ax, ay := v.Apply(p[0], p[1])
			mx, my := transformPoint(m, p[0], p[1])
			assertNear(t, "x", mx, ax)
			assertNear(t, "y", my, ay)
		}
	}
}

// --- multiplyAffine / invertAffine ---

func TestMultiplyAffineIdentity(t *testing.T) {
	m := [6]float64{2, 0.5, -1, 3, 10, 20}
	assertMatrix(t, "I*m", multiplyAffine(identityTransform, m), m)
	assertMatrix(t, "m*I", multiplyAffine(m, identityTransform), m)
}

func TestMultiplyAffineTranslations(t *testing.T) {
	a := [6]float64{1, 0, 0, 1, 10, 20}
	b := [6]float64{1, 0, 0, 1, 5, -3}
	assertMatrix(t, "sum", multiplyAffine(a, b), [6]float64{1, 0, 0, 1, 15, 17})
}

func TestInvertAffine(t *testing.T) {
	m := [6]float64{2, 0, 0, 2, 10, 20}
	inv := invertAffine(m)
	assertMatrix(t, "m*inv", multiplyAffine(m, inv), identityTransform)
}

func TestInvertAffineComplex(t *testing.T) {
	m := viewAffine(View{X: 30, Y: -12, Z: 1.7, A: 33})
	inv := invertAffine(m)
	assertMatrix(t, "m*inv", multiplyAffine(m, inv), identityTransform)
	assertMatrix(t, "inv*m", multiplyAffine(inv, m), identityTransform)
}

func TestInvertAffineSingularReturnsIdentity(t *testing.T) {
	assertMatrix(t, "singular", invertAffine([6]float64{0, 0, 0, 0, 5, 5}), identityTransform)
}

// --- sceneToViewportMatrix ---

func TestSceneToViewportMatrix(t *testing.T) {
	vp := Viewport{W: 800, H: 600}
	v := View{X: 10, Y: 20, Z: 2}
	m := sceneToViewportMatrix(v, vp)
	x, y := transformPoint(m, 0, 0)
	assertNear(t, "origin x", x, 410)
	assertNear(t, "origin y", y, 320)
	x, y = transformPoint(m, 5, -5)
	assertNear(t, "x", x, 420)
	assertNear(t, "y", y, 310)
}

func TestSceneToViewportMatchesGeoM(t *testing.T) {
	vp := Viewport{W: 640, H: 480}
	v := View{X: -25, Y: 40, Z: 1.5, A: 60}
	m := sceneToViewportMatrix(v, vp)
	g := v.GeoM(vp)
	for _, p := range [][2]float64{{0, 0}, {100, 0}, {0, 100}, {-33, 71}} {
		mx, my := transformPoint(m, p[0], p[1])
		gx, gy := g.Apply(p[0], p[1])
		assertNear(t, "x", gx, mx)
		assertNear(t, "y", gy, my)
	}
}

func BenchmarkMultiplyAffine(b *testing.B) {
	p := viewAffine(View{X: 1, Y: 2, Z: 1.5, A: 30})
	c := canvasToViewport(Viewport{W: 800, H: 600})
	for i := 0; i < b.N; i++ {
		p = multiplyAffine(c, p)
		p[4], p[5] = 0, 0
	}
}
