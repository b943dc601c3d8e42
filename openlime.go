package openlime

import "math"

// EventKind identifies a raw input event delivered to the PointerManager.
type EventKind uint8

const (
	EventDown   EventKind = iota // pointer pressed
	EventMove                    // pointer moved (pressed or hovering)
	EventUp                      // pointer released
	EventCancel                  // platform cancelled the pointer
	EventWheel                   // mouse wheel rotated
)

// String returns the lower-case name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventDown:
		return "down"
	case EventMove:
		return "move"
	case EventUp:
		return "up"
	case EventCancel:
		return "cancel"
	case EventWheel:
		return "wheel"
	default:
		return "unknown"
	}
}

// PointerType identifies the device that produced a pointer.
type PointerType uint8

const (
	PointerMouse PointerType = iota // mouse or trackpad cursor
	PointerTouch                    // finger on a touch screen
	PointerPen                      // stylus
)

// String returns the lower-case name of the pointer type.
func (p PointerType) String() string {
	switch p {
	case PointerMouse:
		return "mouse"
	case PointerTouch:
		return "touch"
	case PointerPen:
		return "pen"
	default:
		return "unknown"
	}
}

// Button masks carried in InputEvent.Buttons.
const (
	ButtonPrimary   uint8 = 1 << iota // left mouse button, finger or pen tip
	ButtonSecondary                   // right mouse button
	ButtonAuxiliary                   // middle mouse button
)

// InputEvent is a normalized device event. Coordinates are viewport pixels
// with the origin at the viewport's top-left corner; Timestamp is in
// milliseconds on the PointerManager's clock.
type InputEvent struct {
	PointerID   int
	PointerType PointerType
	Kind        EventKind
	X, Y        float64
	Timestamp   float64
	Buttons     uint8
	// DeltaY is the wheel delta for EventWheel (positive scrolls down).
	DeltaY float64
}

// GestureType identifies a semantic gesture emitted by a recognizer.
type GestureType uint8

const (
	FingerHover       GestureType = iota // pointer moving while not pressed
	FingerSingleTap                      // press and release, no second press within the tap window
	FingerDoubleTap                      // two taps within the tap window
	FingerHold                           // press held without moving
	FingerMovingStart                    // pressed pointer moved past the moving threshold
	FingerMoving                         // every move after FingerMovingStart
	FingerMovingEnd                      // release or cancel after moving
	MouseWheel                           // wheel rotation, emitted in any state

	gestureTypeCount = int(MouseWheel) + 1
)

var gestureTypeNames = [gestureTypeCount]string{
	"fingerHover",
	"fingerSingleTap",
	"fingerDoubleTap",
	"fingerHold",
	"fingerMovingStart",
	"fingerMoving",
	"fingerMovingEnd",
	"mouseWheel",
}

// String returns the gesture name, e.g. "fingerSingleTap".
func (g GestureType) String() string {
	if int(g) < gestureTypeCount {
		return gestureTypeNames[g]
	}
	return "unknown"
}

// ParseGestureType looks up a gesture type by its String name.
func ParseGestureType(name string) (GestureType, bool) {
	for i, n := range gestureTypeNames {
		if n == name {
			return GestureType(i), true
		}
	}
	return 0, false
}

// GestureEvent is an InputEvent enriched by a recognizer. Listeners receive
// a pointer to it but must treat it as read-only.
type GestureEvent struct {
	InputEvent
	Type GestureType
	// SpeedX and SpeedY are in pixels per second, computed for move events
	// against the previous event of the same pointer.
	SpeedX, SpeedY float64
	// Index is the pointer slot of the emitting recognizer. It is stable for
	// the lifetime of the interaction and can be passed to Subscribe.
	Index int
}

// AnyPointer subscribes a listener to every pointer.
const AnyPointer = -1

// Viewport is the screen rectangle the camera renders into, in pixels.
type Viewport struct {
	X, Y, W, H float64
}

// Center returns the viewport centre in viewport coordinates.
func (v Viewport) Center() (float64, float64) {
	return v.W / 2, v.H / 2
}

// Contains reports whether the viewport-relative point (x, y) lies inside.
func (v Viewport) Contains(x, y float64) bool {
	return x >= 0 && x <= v.W && y >= 0 && y <= v.H
}

// BoundingBox is an axis-aligned box in scene units. A box whose width or
// height is not positive is empty.
type BoundingBox struct {
	XLow, YLow, XHigh, YHigh float64
}

// EmptyBox returns an inverted box ready to accumulate points with MergePoint.
func EmptyBox() BoundingBox {
	return BoundingBox{
		XLow: math.Inf(1), YLow: math.Inf(1),
		XHigh: math.Inf(-1), YHigh: math.Inf(-1),
	}
}

// IsEmpty reports whether the box has no area.
func (b BoundingBox) IsEmpty() bool {
	return !(b.XHigh > b.XLow) || !(b.YHigh > b.YLow)
}

// Width returns XHigh - XLow.
func (b BoundingBox) Width() float64 { return b.XHigh - b.XLow }

// Height returns YHigh - YLow.
func (b BoundingBox) Height() float64 { return b.YHigh - b.YLow }

// Center returns the centroid of the box.
func (b BoundingBox) Center() (float64, float64) {
	return (b.XLow + b.XHigh) / 2, (b.YLow + b.YHigh) / 2
}

// Corner returns corner i in the order low-low, high-low, low-high, high-high.
func (b BoundingBox) Corner(i int) (float64, float64) {
	x, y := b.XLow, b.YLow
	if i&1 != 0 {
		x = b.XHigh
	}
	if i&2 != 0 {
		y = b.YHigh
	}
	return x, y
}

// MergePoint grows the box to include (x, y).
func (b *BoundingBox) MergePoint(x, y float64) {
	b.XLow = math.Min(b.XLow, x)
	b.YLow = math.Min(b.YLow, y)
	b.XHigh = math.Max(b.XHigh, x)
	b.YHigh = math.Max(b.YHigh, y)
}

// Contains reports whether (x, y) lies inside the box, edges included.
func (b BoundingBox) Contains(x, y float64) bool {
	return x >= b.XLow && x <= b.XHigh && y >= b.YLow && y <= b.YHigh
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
