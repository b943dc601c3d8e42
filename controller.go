package openlime

import (
	"fmt"
	"math"
)

// Pan/zoom controller defaults. Delays and intervals are milliseconds.
const (
	defaultZoomAmount   = 1.2
	defaultZoomDelay    = 200
	defaultUpdateDelay  = 200
	defaultTickInterval = 20
)

// PanZoomController drives a Camera from gestures: drags pan, the wheel
// zooms around the cursor and a double tap zooms in. With a Lens set, drags
// and wheel turns that start inside the lens move and resize the lens
// instead.
type PanZoomController struct {
	Camera *Camera
	// Lens is optional.
	Lens *Lens
	// Priority of the registered listeners (default 0).
	Priority Priority
	// Active gates every handler; an inactive controller claims nothing.
	Active bool

	// ZoomAmount is the zoom factor of one wheel notch or a double tap.
	ZoomAmount float64
	// ZoomDelay is the animation time of a zoom step.
	ZoomDelay float64
	// UpdateDelay is the animation time of each pan update.
	UpdateDelay float64
	// TickInterval is the period of pan updates while the pointer is held.
	TickInterval float64

	pm        *PointerManager
	panL      *Listener
	eventL    *Listener
	wheel     wheelNormalizer
	tick      *Interval
	panning   bool
	lensDrag  bool
	startView View
	// start and current pointer positions in viewport pixels
	startX, startY float64
	curX, curY     float64
	// lens centre minus the scene point grabbed at pan start
	grabDX, grabDY float64
}

// NewPanZoomController returns an active controller for cam with the
// default timings.
func NewPanZoomController(cam *Camera) *PanZoomController {
	return &PanZoomController{
		Camera:       cam,
		Priority:     Prio(0),
		Active:       true,
		ZoomAmount:   defaultZoomAmount,
		ZoomDelay:    defaultZoomDelay,
		UpdateDelay:  defaultUpdateDelay,
		TickInterval: defaultTickInterval,
	}
}

// Attach registers the controller's listeners on pm.
func (c *PanZoomController) Attach(pm *PointerManager) error {
	panL, err := pm.SubscribePan(PanHandler{
		Priority: c.Priority,
		PanStart: c.panStart,
		PanMove:  c.panMove,
		PanEnd:   c.panEnd,
	})
	if err != nil {
		return fmt.Errorf("attach pan/zoom controller: %w", err)
	}
	eventL, err := pm.OnEvent(EventHandler{
		Priority:        c.Priority,
		FingerDoubleTap: c.doubleTap,
		MouseWheel:      c.mouseWheel,
	})
	if err != nil {
		_ = pm.Unsubscribe([]GestureType{FingerMovingStart}, panL, AnyPointer)
		return fmt.Errorf("attach pan/zoom controller: %w", err)
	}
	c.pm, c.panL, c.eventL = pm, panL, eventL
	return nil
}

// Detach removes the listeners registered by Attach and stops any pan tick.
func (c *PanZoomController) Detach() {
	if c.pm == nil {
		return
	}
	_ = c.pm.Unsubscribe([]GestureType{FingerMovingStart}, c.panL, AnyPointer)
	_ = c.pm.Unsubscribe([]GestureType{FingerDoubleTap, MouseWheel}, c.eventL, AnyPointer)
	c.tick.Stop()
	c.tick = nil
	c.panning = false
	c.pm = nil
}

// Panning reports whether a drag is in progress.
func (c *PanZoomController) Panning() bool { return c.panning }

func (c *PanZoomController) panStart(e *GestureEvent) bool {
	if !c.Active {
		return false
	}
	if e.PointerType == PointerMouse && e.Buttons&ButtonPrimary == 0 {
		return false
	}
	// Freeze any running animation where it is.
	c.startView = c.Camera.CurrentView(e.Timestamp)
	c.Camera.SetView(c.startView, 0)
	c.startView = c.Camera.Target()

	c.startX, c.startY = e.X, e.Y
	c.curX, c.curY = e.X, e.Y
	c.lensDrag = false
	if c.Lens != nil {
		px, py := c.Camera.ViewportToScene(e.X, e.Y, e.Timestamp)
		if c.Lens.Contains(px, py) {
			lx, ly, _ := c.Lens.Target()
			c.grabDX, c.grabDY = lx-px, ly-py
			c.lensDrag = true
		}
	}
	c.panning = true
	c.tick.Stop()
	c.tick = c.pm.Every(c.TickInterval, func(float64) { c.update() })
	return true
}

func (c *PanZoomController) panMove(e *GestureEvent) {
	if !c.panning {
		return
	}
	c.curX, c.curY = e.X, e.Y
}

func (c *PanZoomController) panEnd(e *GestureEvent) {
	if !c.panning {
		return
	}
	c.curX, c.curY = e.X, e.Y
	c.update()
	c.panning = false
	c.tick.Stop()
	c.tick = nil
}

// update applies the drag so far. It runs on every tick so a held pointer
// keeps converging even when no move arrives.
func (c *PanZoomController) update() {
	if !c.panning {
		return
	}
	if c.lensDrag {
		px, py := c.Camera.ViewportToScene(c.curX, c.curY, c.Camera.Clock().Now())
		c.Lens.SetCenter(px+c.grabDX, py+c.grabDY, c.UpdateDelay)
		return
	}
	v := c.startView
	v.Pan(c.curX-c.startX, c.curY-c.startY)
	c.Camera.SetView(v, c.UpdateDelay)
}

// wheelSteps turns a raw wheel delta into signed notches in [-2, 2].
func (c *PanZoomController) wheelSteps(e *GestureEvent) float64 {
	n, ready := c.wheel.Normalize(e.DeltaY, e.Timestamp)
	if !ready && n != 0 {
		return math.Copysign(1, n)
	}
	return clamp(n, -2, 2)
}

func (c *PanZoomController) mouseWheel(e *GestureEvent) bool {
	if !c.Active {
		return false
	}
	steps := c.wheelSteps(e)
	if steps == 0 {
		return false
	}
	// Scrolling down (positive delta) zooms out.
	dz := math.Pow(c.ZoomAmount, -steps)

	if c.Lens != nil {
		px, py := c.Camera.ViewportToScene(e.X, e.Y, e.Timestamp)
		if c.Lens.Contains(px, py) {
			_, _, r := c.Lens.Target()
			c.Lens.SetRadius(r*dz, c.ZoomDelay)
			return true
		}
	}
	c.Camera.DeltaZoom(dz, e.X, e.Y, c.ZoomDelay)
	return true
}

func (c *PanZoomController) doubleTap(e *GestureEvent) bool {
	if !c.Active {
		return false
	}
	c.Camera.DeltaZoom(c.ZoomAmount, e.X, e.Y, c.ZoomDelay)
	return true
}
