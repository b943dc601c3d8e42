package openlime

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowFPS draws the FPS/TPS overlay.
	ShowFPS bool
}

// Viewer is a ready-made ebiten.Game that shows one image through a Camera
// driven by a PanZoomController. Drag to pan, wheel or double tap to zoom.
type Viewer struct {
	Camera     *Camera
	Pointers   *PointerManager
	Controller *PanZoomController
	// Lens is drawn and steered by the controller when set with SetLens.
	Lens *Lens

	// Background fills the frame before the image is drawn.
	Background color.Color
	// ShowFPS draws the FPS/TPS overlay.
	ShowFPS bool
	// ShowBox outlines the scene bounding box.
	ShowBox bool
	// ScreenshotDir is where Screenshot writes (default "screenshots").
	ScreenshotDir string

	clock  Clock
	image  *ebiten.Image
	source *EbitenSource
	inject injector
	script *InputScript

	lastTick        float64
	fitted          bool
	fps             fpsOverlay
	screenshotQueue []string
}

// NewViewer wires a PointerManager, Camera and PanZoomController from cfg.
// A nil clock uses a SystemClock.
func NewViewer(cfg Config, clock Clock) (*Viewer, error) {
	if clock == nil {
		clock = &SystemClock{}
	}
	pm := NewPointerManager(cfg.Pointer, clock)
	cam := NewCamera(Viewport{}, clock)
	if err := cfg.Camera.Apply(cam); err != nil {
		return nil, fmt.Errorf("new viewer: %w", err)
	}
	ctrl := NewPanZoomController(cam)
	cfg.Controller.Apply(ctrl)
	if err := ctrl.Attach(pm); err != nil {
		return nil, fmt.Errorf("new viewer: %w", err)
	}
	return &Viewer{
		Camera:        cam,
		Pointers:      pm,
		Controller:    ctrl,
		Background:    color.RGBA{0x20, 0x20, 0x20, 0xff},
		ScreenshotDir: defaultScreenshotDir,
		clock:         clock,
		source:        NewEbitenSource(),
	}, nil
}

// SetImage shows img centred on the scene origin and makes its extent the
// camera's bounding box. The camera fits it on the next Layout.
func (v *Viewer) SetImage(img *ebiten.Image) {
	v.image = img
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	v.Camera.SetBoundingBox(BoundingBox{XLow: -w / 2, YLow: -h / 2, XHigh: w / 2, YHigh: h / 2}, 0)
	v.fitted = false
}

// SetLens attaches l to the viewer and its controller.
func (v *Viewer) SetLens(l *Lens) {
	v.Lens = l
	v.Controller.Lens = l
}

// SetDebugMode toggles debug logging on the pointer manager and camera.
func (v *Viewer) SetDebugMode(on bool) {
	v.Pointers.SetDebugMode(on)
	v.Camera.SetDebugMode(on)
}

// Update implements ebiten.Game.
func (v *Viewer) Update() error {
	now := v.clock.Now()
	if v.script != nil {
		v.script.step(&v.inject, v.Screenshot)
	}
	v.processInput(now)
	v.Pointers.Update()

	dt := 0.0
	if v.lastTick > 0 {
		dt = now - v.lastTick
	}
	v.lastTick = now
	if v.Lens != nil {
		v.Lens.Update(dt)
	}
	if v.ShowFPS {
		v.fps.update(dt, v.Camera.Current())
	}
	return nil
}

// processInput feeds one injected event, or the real input of this tick
// when nothing is queued.
func (v *Viewer) processInput(now float64) {
	if v.processInjectedInput() {
		return
	}
	if v.source != nil {
		v.source.Poll(now, v.dispatch)
	}
}

func (v *Viewer) dispatch(e InputEvent) {
	v.Pointers.Dispatch(e)
}

// Draw implements ebiten.Game.
func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.Background != nil {
		screen.Fill(v.Background)
	}
	view := v.Camera.Current()
	vp := v.Camera.Viewport()

	if v.image != nil {
		b := v.image.Bounds()
		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
		op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
		op.GeoM.Concat(view.GeoM(vp))
		screen.DrawImage(v.image, op)
	}

	m := sceneToViewportMatrix(view, vp)
	if box := v.Camera.BoundingBox(); v.ShowBox && !box.IsEmpty() {
		// Corner order 0,1,3,2 walks the outline.
		order := [5]int{0, 1, 3, 2, 0}
		for i := 0; i < 4; i++ {
			ax, ay := box.Corner(order[i])
			bx, by := box.Corner(order[i+1])
			x0, y0 := transformPoint(m, ax, ay)
			x1, y1 := transformPoint(m, bx, by)
			vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, color.RGBA{0xff, 0xcc, 0x00, 0xff}, true)
		}
	}
	if v.Lens != nil {
		cx, cy := transformPoint(m, v.Lens.X, v.Lens.Y)
		vector.StrokeCircle(screen, float32(cx), float32(cy), float32(v.Lens.Radius*view.Z), 2, color.White, true)
	}

	if v.ShowFPS {
		v.fps.draw(screen)
	}
	v.flushScreenshots(screen)
}

// Layout implements ebiten.Game. A size change resizes the camera viewport;
// the first layout after SetImage fits the image.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	vp := Viewport{W: float64(outsideWidth), H: float64(outsideHeight)}
	if vp != v.Camera.Viewport() {
		v.Camera.SetViewport(vp)
	}
	if !v.fitted && v.image != nil {
		v.Camera.FitCameraBox(0)
		v.fitted = true
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and runs v until the window is closed.
func Run(v *Viewer, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = 800, 600
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	v.ShowFPS = v.ShowFPS || cfg.ShowFPS
	return ebiten.RunGame(v)
}
