package openlime

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// mousePointerID is the PointerID of the mouse. Touches use their ebiten
// TouchID plus one.
const mousePointerID = 0

type touchPos struct{ x, y float64 }

// EbitenSource polls ebiten's mouse, wheel and touch state once per tick and
// turns the changes into InputEvents.
type EbitenSource struct {
	// OriginX and OriginY are subtracted from screen positions, e.g. the
	// viewport offset.
	OriginX, OriginY float64

	mouseSeen      bool
	mouseX, mouseY float64
	touches        map[ebiten.TouchID]touchPos
	touchIDs       []ebiten.TouchID
}

// NewEbitenSource returns a source with no pointer seen yet.
func NewEbitenSource() *EbitenSource {
	return &EbitenSource{touches: make(map[ebiten.TouchID]touchPos)}
}

func mouseButtons() uint8 {
	var b uint8
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		b |= ButtonPrimary
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		b |= ButtonSecondary
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		b |= ButtonAuxiliary
	}
	return b
}

// Poll emits the events of the current tick stamped with now. Call it from
// ebiten's Update.
func (s *EbitenSource) Poll(now float64, emit func(InputEvent)) {
	s.pollMouse(now, emit)
	s.pollTouches(now, emit)
}

func (s *EbitenSource) pollMouse(now float64, emit func(InputEvent)) {
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx)-s.OriginX, float64(cy)-s.OriginY
	ev := InputEvent{
		PointerID:   mousePointerID,
		PointerType: PointerMouse,
		X:           x,
		Y:           y,
		Timestamp:   now,
		Buttons:     mouseButtons(),
	}

	if !s.mouseSeen || x != s.mouseX || y != s.mouseY {
		ev.Kind = EventMove
		emit(ev)
	}
	s.mouseSeen = true
	s.mouseX, s.mouseY = x, y

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		ev.Kind = EventDown
		emit(ev)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		ev.Kind = EventUp
		emit(ev)
	}

	// ebiten reports wheel-up as positive; InputEvent follows the DOM sign.
	if _, wy := ebiten.Wheel(); wy != 0 {
		ev.Kind = EventWheel
		ev.DeltaY = -wy
		emit(ev)
	}
}

func (s *EbitenSource) pollTouches(now float64, emit func(InputEvent)) {
	touch := func(id ebiten.TouchID, kind EventKind, x, y float64) InputEvent {
		return InputEvent{
			PointerID:   int(id) + 1,
			PointerType: PointerTouch,
			Kind:        kind,
			X:           x - s.OriginX,
			Y:           y - s.OriginY,
			Timestamp:   now,
			Buttons:     ButtonPrimary,
		}
	}

	s.touchIDs = inpututil.AppendJustPressedTouchIDs(s.touchIDs[:0])
	for _, id := range s.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		p := touchPos{float64(tx), float64(ty)}
		s.touches[id] = p
		emit(touch(id, EventDown, p.x, p.y))
	}

	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])
	for _, id := range s.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		p := touchPos{float64(tx), float64(ty)}
		if prev, ok := s.touches[id]; ok && prev == p {
			continue
		}
		s.touches[id] = p
		emit(touch(id, EventMove, p.x, p.y))
	}

	s.touchIDs = inpututil.AppendJustReleasedTouchIDs(s.touchIDs[:0])
	for _, id := range s.touchIDs {
		tx, ty := inpututil.TouchPositionInPreviousTick(id)
		delete(s.touches, id)
		emit(touch(id, EventUp, float64(tx), float64(ty)))
	}
}

// MonitorPointerConfig returns cfg with the screen size taken from the
// current monitor, so the physical thresholds use its pixel density.
func MonitorPointerConfig(cfg PointerConfig) PointerConfig {
	m := ebiten.Monitor()
	if m == nil {
		return cfg
	}
	w, h := m.Size()
	scale := m.DeviceScaleFactor()
	if w > 0 && h > 0 {
		cfg.ScreenWidth = int(float64(w) * scale)
		cfg.ScreenHeight = int(float64(h) * scale)
	}
	return cfg
}
