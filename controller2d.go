package openlime

import "fmt"

// Controller2D maps pointer positions inside a viewport rectangle to a point
// in a 2D parameter box, e.g. to steer a light direction. Drags that start
// inside Rect and taps inside Rect report through Callback.
type Controller2D struct {
	// Rect is the active area in viewport pixels.
	Rect Viewport
	// Box is the output range as [xLow, yLow, xHigh, yHigh]
	// (default -0.99..0.99 on both axes).
	Box [4]float64
	// Priority of the registered listeners (default 0).
	Priority Priority
	// Active gates every handler.
	Active bool
	// Callback receives the mapped point. Y grows upward.
	Callback func(x, y float64)

	pm      *PointerManager
	panL    *Listener
	tapL    *Listener
	panning bool
	x, y    float64
}

// NewController2D returns an active controller over rect.
func NewController2D(rect Viewport, callback func(x, y float64)) *Controller2D {
	return &Controller2D{
		Rect:     rect,
		Box:      [4]float64{-0.99, -0.99, 0.99, 0.99},
		Priority: Prio(0),
		Active:   true,
		Callback: callback,
	}
}

// Attach registers the controller's listeners on pm.
func (c *Controller2D) Attach(pm *PointerManager) error {
	panL, err := pm.SubscribePan(PanHandler{
		Priority: c.Priority,
		PanStart: c.panStart,
		PanMove:  c.panMove,
		PanEnd:   c.panEnd,
	})
	if err != nil {
		return fmt.Errorf("attach 2d controller: %w", err)
	}
	tapL, err := pm.OnEvent(EventHandler{
		Priority:        c.Priority,
		FingerSingleTap: c.singleTap,
	})
	if err != nil {
		_ = pm.Unsubscribe([]GestureType{FingerMovingStart}, panL, AnyPointer)
		return fmt.Errorf("attach 2d controller: %w", err)
	}
	c.pm, c.panL, c.tapL = pm, panL, tapL
	return nil
}

// Detach removes the listeners registered by Attach.
func (c *Controller2D) Detach() {
	if c.pm == nil {
		return
	}
	_ = c.pm.Unsubscribe([]GestureType{FingerMovingStart}, c.panL, AnyPointer)
	_ = c.pm.Unsubscribe([]GestureType{FingerSingleTap}, c.tapL, AnyPointer)
	c.pm = nil
	c.panning = false
}

// Value returns the last reported point.
func (c *Controller2D) Value() (x, y float64) { return c.x, c.y }

func (c *Controller2D) inside(e *GestureEvent) bool {
	r := c.Rect
	return e.X >= r.X && e.X < r.X+r.W && e.Y >= r.Y && e.Y < r.Y+r.H
}

func (c *Controller2D) update(e *GestureEvent) {
	r := c.Rect
	if r.W <= 0 || r.H <= 0 {
		return
	}
	rx := clamp((e.X-r.X)/r.W, 0, 1)
	ry := clamp(1-(e.Y-r.Y)/r.H, 0, 1)
	c.x = c.Box[0] + rx*(c.Box[2]-c.Box[0])
	c.y = c.Box[1] + ry*(c.Box[3]-c.Box[1])
	if c.Callback != nil {
		c.Callback(c.x, c.y)
	}
}

func (c *Controller2D) panStart(e *GestureEvent) bool {
	if !c.Active || !c.inside(e) {
		return false
	}
	c.panning = true
	c.update(e)
	return true
}

func (c *Controller2D) panMove(e *GestureEvent) {
	if c.panning {
		c.update(e)
	}
}

func (c *Controller2D) panEnd(e *GestureEvent) {
	if c.panning {
		c.update(e)
	}
	c.panning = false
}

func (c *Controller2D) singleTap(e *GestureEvent) bool {
	if !c.Active || !c.inside(e) {
		return false
	}
	c.update(e)
	return true
}
