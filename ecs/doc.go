// Package ecs provides ECS adapters for openlime's gesture and camera
// events.
//
// The primary adapter is [NewDonburiSink], which bridges recognized gestures
// (taps, holds, pans, wheel turns) into a [Donburi] world as typed events.
// Subscribe to [GestureEventType] in your ECS systems to receive them.
//
// Usage:
//
//	pm.SetGestureSink(ecs.NewDonburiSink(world))
//	ecs.PublishCameraUpdates(world, camera)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
