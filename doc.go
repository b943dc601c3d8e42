// Package openlime is the interaction core of a deep-zoom image viewer for
// [Ebitengine]: gesture recognition, pointer dispatch and an animated 2D
// camera.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window around a
// ready-made [Viewer]:
//
//	v, err := openlime.NewViewer(openlime.DefaultConfig(), nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	v.SetImage(img)
//	openlime.Run(v, openlime.RunConfig{Title: "Viewer", Width: 1024, Height: 768})
//
// For full control, own the [PointerManager] and [Camera] yourself, feed
// [InputEvent] values to [PointerManager.Dispatch] and call
// [PointerManager.Update] once per frame so hold and tap timers fire.
//
// # Gestures
//
// Each pointer gets a recognizer in a slot of the manager. Recognizers turn
// down/move/up sequences into [GestureType] values: hover, single and double
// tap, hold and the moving start/move/end triple of a drag. Thresholds are
// physical (millimetres), converted with the screen's pixel density.
//
// Listeners carry a [Priority]; lower ranks run first and a handler that
// returns true consumes the gesture. [PointerManager.SubscribePan] claims
// a drag for one pointer so later moves skip everyone else.
//
// # Camera
//
// A [View] is a pose: translation, zoom and rotation. The [Camera] animates
// between a source and a target pose with a [gween] easing curve, clamps
// zoom and translation to a scene [BoundingBox] and maps between viewport
// pixels and scene coordinates. [PanZoomController] drives it from gestures.
//
// The ECS adapter in openlime/ecs forwards gestures and camera changes to a
// [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package openlime
