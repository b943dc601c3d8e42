// Package ecs provides ECS adapters for openlime.
package ecs

import (
	"github.com/unsettledgames/openlime"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType is the Donburi event type for recognized gestures.
// Subscribe to this in your ECS systems to receive taps, holds, pans and
// wheel turns.
var GestureEventType = events.NewEventType[openlime.GestureEvent]()

// CameraEvent reports a change of the camera target pose.
type CameraEvent struct {
	Target   openlime.View
	Viewport openlime.Viewport
}

// CameraEventType is the Donburi event type for camera updates.
var CameraEventType = events.NewEventType[CameraEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates a GestureSink backed by a Donburi world. Gestures
// are published to GestureEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) openlime.GestureSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitGesture(event openlime.GestureEvent) {
	GestureEventType.Publish(s.world, event)
}

// PublishCameraUpdates publishes a CameraEvent to world every time cam's
// target or viewport changes.
func PublishCameraUpdates(world donburi.World, cam *openlime.Camera) {
	cam.OnUpdate(func(c *openlime.Camera) {
		CameraEventType.Publish(world, CameraEvent{Target: c.Target(), Viewport: c.Viewport()})
	})
}
