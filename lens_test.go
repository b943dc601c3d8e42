package openlime

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestLensAtRest(t *testing.T) {
	l := NewLens(10, 20, 30)
	if l.Animating() {
		t.Error("new lens is animating")
	}
	x, y, r := l.Target()
	if x != 10 || y != 20 || r != 30 {
		t.Errorf("Target = (%v, %v, %v)", x, y, r)
	}
}

func TestLensSetCenterJump(t *testing.T) {
	l := NewLens(0, 0, 10)
	l.SetCenter(5, -5, 0)
	if l.X != 5 || l.Y != -5 || l.Animating() {
		t.Errorf("lens = (%v, %v), animating %v", l.X, l.Y, l.Animating())
	}
}

func TestLensSetCenterAnimates(t *testing.T) {
	l := NewLens(0, 0, 10)
	l.SetCenter(100, -40, 100)
	if !l.Animating() {
		t.Fatal("Animating = false after SetCenter")
	}
	if l.X != 0 {
		t.Errorf("X moved before Update: %v", l.X)
	}

	l.Update(50)
	// OutQuad at half time covers three quarters.
	if !approxEqual(l.X, 75, 1e-4) || !approxEqual(l.Y, -30, 1e-4) {
		t.Errorf("mid = (%v, %v), want (75, -30)", l.X, l.Y)
	}

	l.Update(60)
	if l.X != 100 || l.Y != -40 {
		t.Errorf("end = (%v, %v), want (100, -40)", l.X, l.Y)
	}
	if l.Animating() {
		t.Error("still animating after the duration")
	}
}

func TestLensSetRadius(t *testing.T) {
	l := NewLens(0, 0, 10)
	l.Easing = ease.Linear
	l.SetRadius(30, 200)
	l.Update(100)
	if !approxEqual(l.Radius, 20, 1e-4) {
		t.Errorf("Radius = %v, want 20", l.Radius)
	}
	l.Update(100)
	if l.Radius != 30 || l.Animating() {
		t.Errorf("Radius = %v, animating %v", l.Radius, l.Animating())
	}

	l.SetRadius(-5, 0)
	if l.Radius != 0 {
		t.Errorf("negative radius = %v, want 0", l.Radius)
	}
}

func TestLensContainsUsesTarget(t *testing.T) {
	l := NewLens(0, 0, 10)
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"centre", 0, 0, true},
		{"inside", 9.99, 0, true},
		{"on edge", 10, 0, false},
		{"outside", 8, 8, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	l.SetCenter(100, 0, 500)
	if !l.Contains(100, 0) {
		t.Error("Contains should test the target centre while animating")
	}
	if l.Contains(0, 0) {
		t.Error("Contains matched the old centre")
	}
}

func TestLensOnUpdate(t *testing.T) {
	l := NewLens(0, 0, 10)
	calls := 0
	l.OnUpdate(func(*Lens) { calls++ })

	l.Update(16)
	if calls != 0 {
		t.Errorf("idle Update notified %d times", calls)
	}
	l.SetCenter(10, 10, 32)
	l.Update(16)
	l.Update(16)
	l.Update(16)
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}
