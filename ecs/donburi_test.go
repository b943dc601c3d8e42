package ecs

import (
	"testing"

	"github.com/unsettledgames/openlime"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitGesture(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []openlime.GestureEvent
	GestureEventType.Subscribe(world, func(w donburi.World, e openlime.GestureEvent) {
		received = append(received, e)
	})

	sink.EmitGesture(openlime.GestureEvent{
		InputEvent: openlime.InputEvent{PointerID: 3, X: 100, Y: 200},
		Type:       openlime.FingerSingleTap,
		Index:      1,
	})
	sink.EmitGesture(openlime.GestureEvent{
		Type:   openlime.FingerMoving,
		SpeedX: 50,
	})

	// Events are queued until processed.
	GestureEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.Type != openlime.FingerSingleTap || e0.PointerID != 3 || e0.Index != 1 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.X != 100 || e0.Y != 200 {
		t.Errorf("event 0 position: (%v,%v)", e0.X, e0.Y)
	}

	e1 := received[1]
	if e1.Type != openlime.FingerMoving || e1.SpeedX != 50 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiSink_FromPointerManager(t *testing.T) {
	world := donburi.NewWorld()
	clock := openlime.NewManualClock(1000)
	cfg := openlime.DefaultPointerConfig()
	cfg.PPMM = 1
	pm := openlime.NewPointerManager(cfg, clock)
	pm.SetGestureSink(NewDonburiSink(world))

	var types []openlime.GestureType
	GestureEventType.Subscribe(world, func(w donburi.World, e openlime.GestureEvent) {
		types = append(types, e.Type)
	})

	pm.Dispatch(openlime.InputEvent{Kind: openlime.EventDown, X: 10, Y: 10, Timestamp: 1000})
	pm.Dispatch(openlime.InputEvent{Kind: openlime.EventUp, X: 10, Y: 10, Timestamp: 1050})
	clock.Set(1400)
	pm.Update()
	events.ProcessAllEvents(world)

	if len(types) != 1 || types[0] != openlime.FingerSingleTap {
		t.Errorf("got %v, want [fingerSingleTap]", types)
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	GestureEventType.Subscribe(world, func(w donburi.World, e openlime.GestureEvent) {
		count1++
	})
	GestureEventType.Subscribe(world, func(w donburi.World, e openlime.GestureEvent) {
		count2++
	})

	sink.EmitGesture(openlime.GestureEvent{Type: openlime.FingerDoubleTap})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestPublishCameraUpdates(t *testing.T) {
	world := donburi.NewWorld()
	clock := openlime.NewManualClock(0)
	cam := openlime.NewCamera(openlime.Viewport{W: 800, H: 600}, clock)
	cam.Bounded = false
	PublishCameraUpdates(world, cam)

	var got []CameraEvent
	CameraEventType.Subscribe(world, func(w donburi.World, e CameraEvent) {
		got = append(got, e)
	})

	cam.SetView(openlime.View{X: 10, Y: 20, Z: 2}, 100)
	events.ProcessAllEvents(world)

	if len(got) != 1 {
		t.Fatalf("expected 1 camera event, got %d", len(got))
	}
	if got[0].Target.X != 10 || got[0].Target.Z != 2 || got[0].Target.T != 100 {
		t.Errorf("target = %+v", got[0].Target)
	}
	if got[0].Viewport.W != 800 {
		t.Errorf("viewport = %+v", got[0].Viewport)
	}
}
