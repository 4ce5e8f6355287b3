package worldview

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/tanema/gween/ease"
)

// Viewport is the top-level orchestrator. It owns a camera, a scene tree, the
// key and mouse controller composites, and the dirty flags that decide, per
// frame, whether painting and rendering must run.
//
// Flag transitions:
//
//	scene signal        needsRepaint, needsRender = true
//	key signal          needsRender = true
//	mouse signal        mouseVersion++
//	Paint (settled)     needsRepaint = false, needsRender = true
//	Render (settled)    needsRender = needsRepaint
//
// needsRender is true whenever needsRepaint is.
type Viewport struct {
	surface Surface
	camera  *Camera
	scenes  *SceneList
	keys    *KeyControllers
	mouse   *MouseControllers
	input   InputSource
	config  Config
	logger  *log.Logger
	update  Signal

	needsRepaint         bool
	needsRender          bool
	mouseVersion         uint64
	renderedMouseVersion uint64

	world      *WorldTransform
	lastTick   time.Time
	cameraKeys *CameraKeyController
	background *Background
}

// ViewportOption configures a Viewport.
type ViewportOption func(*Viewport)

// WithConfig applies cfg.
func WithConfig(cfg Config) ViewportOption {
	return func(v *Viewport) { v.config = cfg }
}

// WithLogger sets the logger used for scheduling diagnostics.
func WithLogger(l *log.Logger) ViewportOption {
	return func(v *Viewport) { v.logger = l }
}

// WithViewportCamera replaces the viewport's camera.
func WithViewportCamera(cam *Camera) ViewportOption {
	return func(v *Viewport) { v.camera = cam }
}

// NewViewport creates a viewport drawing to surface. It panics if surface is nil.
func NewViewport(surface Surface, opts ...ViewportOption) *Viewport {
	if surface == nil {
		panic("worldview: viewport requires a surface")
	}
	v := &Viewport{
		surface:      surface,
		camera:       NewCamera(),
		scenes:       NewSceneList(),
		keys:         NewKeyControllers(),
		mouse:        NewMouseControllers(),
		config:       DefaultConfig(),
		needsRepaint: true,
		needsRender:  true,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.logger == nil {
		v.logger = defaultLogger()
	}
	v.scenes.SetOnScheduleUpdate(func(any) { v.ScheduleRepaint() }, v)
	v.keys.SetOnScheduleUpdate(func(any) { v.ScheduleRender() }, v)
	v.mouse.SetOnScheduleUpdate(func(any) { v.mouseChanged() }, v)
	return v
}

// Surface returns the surface the viewport draws to.
func (v *Viewport) Surface() Surface { return v.surface }

// Camera returns the viewport's camera.
func (v *Viewport) Camera() *Camera { return v.camera }

// Scenes returns the root scene composite.
func (v *Viewport) Scenes() *SceneList { return v.scenes }

// Keys returns the key controller composite.
func (v *Viewport) Keys() *KeyControllers { return v.keys }

// Mouse returns the mouse controller composite.
func (v *Viewport) Mouse() *MouseControllers { return v.mouse }

// Config returns the active configuration.
func (v *Viewport) Config() Config { return v.config }

// Logger returns the viewport's logger.
func (v *Viewport) Logger() *log.Logger { return v.logger }

// SetConfig replaces the configuration, pushes the key settings to the stock
// camera controller and input source, recolors the installed background and
// schedules a repaint.
func (v *Viewport) SetConfig(cfg Config) {
	v.config = cfg
	if v.background != nil {
		v.background.SetColor(cfg.Viewport.Background)
	}
	if v.cameraKeys != nil {
		v.cameraKeys.SetConfig(cfg.Keys)
	}
	if a, ok := v.input.(interface{ SetAliases(map[string]string) }); ok {
		a.SetAliases(cfg.Keys.Aliases)
	}
	v.ScheduleRepaint()
}

// WorldTransform returns the transform of the last render pass, or nil before
// the first render. Auxiliary overlays may read it between frames.
func (v *Viewport) WorldTransform() *WorldTransform { return v.world }

// Width returns the camera width.
func (v *Viewport) Width() float64 { return v.camera.Width() }

// Height returns the camera height.
func (v *Viewport) Height() float64 { return v.camera.Height() }

// LastMouseX returns the pointer X of the last responding mouse controller.
func (v *Viewport) LastMouseX() float64 { return v.mouse.LastMouseX() }

// LastMouseY returns the pointer Y of the last responding mouse controller.
func (v *Viewport) LastMouseY() float64 { return v.mouse.LastMouseY() }

// SetOnScheduleUpdate implements Scheduler.
func (v *Viewport) SetOnScheduleUpdate(fn UpdateFunc, owner any) {
	v.update.Set(fn, owner)
}

// ScheduleUpdate notifies the viewport's parent without touching the flags.
func (v *Viewport) ScheduleUpdate() {
	v.update.Fire()
}

// ScheduleRepaint marks scene content changed: both paint and render must run.
func (v *Viewport) ScheduleRepaint() {
	v.needsRepaint = true
	v.needsRender = true
	v.ScheduleUpdate()
}

// ScheduleRender marks that a render pass must run although content is
// unchanged, e.g. because the camera moved.
func (v *Viewport) ScheduleRender() {
	v.needsRender = true
	v.ScheduleUpdate()
}

func (v *Viewport) mouseChanged() {
	v.mouseVersion++
	v.ScheduleUpdate()
}

// NeedsRepaint reports whether Paint has work to do.
func (v *Viewport) NeedsRepaint() bool {
	return v.needsRepaint
}

// NeedsRender reports whether a render pass is due.
func (v *Viewport) NeedsRender() bool {
	return v.needsRepaint || v.needsRender || v.mouseVersion != v.renderedMouseVersion
}

// MouseVersion returns the pointer change counter.
func (v *Viewport) MouseVersion() uint64 { return v.mouseVersion }

// RenderedMouseVersion returns the pointer version the last render reflected.
func (v *Viewport) RenderedMouseVersion() uint64 { return v.renderedMouseVersion }

// AttachInput makes the viewport's key and mouse composites the active
// controllers of src. Any previously attached source is detached.
func (v *Viewport) AttachInput(src InputSource) {
	if v.input != nil {
		v.input.SetKeyControl(nil)
		v.input.SetMouseControl(nil)
	}
	v.input = src
	if src != nil {
		src.SetKeyControl(v.keys)
		src.SetMouseControl(v.mouse)
	}
}

// ResetCamera returns the camera home, animated when the configuration sets a
// reset duration.
func (v *Viewport) ResetCamera(complete bool) {
	cam := v.camera
	scale := v.config.Viewport.DefaultScale
	if d := v.config.Viewport.ResetDuration; d > 0 {
		fromX, fromY, fromScale := cam.X(), cam.Y(), cam.Scale()
		if !cam.Reset(complete, scale) {
			return
		}
		toX, toY, toScale := cam.X(), cam.Y(), cam.Scale()
		cam.SetOrigin(fromX, fromY)
		cam.SetScale(fromScale)
		cam.AnimateTo(toX, toY, toScale, float32(d.Seconds()), ease.OutCubic)
	} else if !cam.Reset(complete, scale) {
		return
	}
	v.ScheduleRender()
}

// Tick advances input controllers, scenes and camera animation. Every part is
// visited regardless of the others' results.
func (v *Viewport) Tick(cycleStart time.Time) bool {
	needsUpdate := false
	if v.mouse.Tick(cycleStart) {
		v.logger.Debug("input tick needs update", "source", "mouse")
		needsUpdate = true
	}
	if v.keys.Tick(cycleStart) {
		v.logger.Debug("input tick needs update", "source", "key")
		needsUpdate = true
	}
	if v.scenes.Tick(cycleStart) {
		needsUpdate = true
	}
	if v.camera.Animating() {
		var dt float32
		if !v.lastTick.IsZero() {
			dt = float32(cycleStart.Sub(v.lastTick).Seconds())
		}
		if v.camera.Update(dt) {
			v.needsRender = true
			needsUpdate = true
		}
	}
	v.lastTick = cycleStart
	return needsUpdate
}

// Paint repaints the scene tree within timeout if a repaint is due. It returns
// true if painting is incomplete and another cycle is required.
func (v *Viewport) Paint(timeout time.Duration) bool {
	if surfaceLost(v.surface) {
		return false
	}
	if !v.needsRepaint {
		return false
	}
	needsUpdate := v.scenes.Paint(timeout)
	v.needsRender = true
	v.needsRepaint = needsUpdate
	if needsUpdate {
		v.ScheduleUpdate()
	}
	v.logger.Debug("viewport painted", "needsRender", v.needsRender, "needsUpdate", needsUpdate)
	return needsUpdate
}

// Render recomputes the world transform from the camera, hands it to the
// scene tree and renders. It returns true if another render is needed.
//
// The pointer version is captured before the scene renders and recorded after
// it, so pointer changes raised during the render keep NeedsRender true.
func (v *Viewport) Render() bool {
	if surfaceLost(v.surface) {
		return false
	}
	v.camera.SetSize(v.surface.Width(), v.surface.Height())
	v.world = FromCamera(v.camera)
	v.scenes.SetWorldTransform(v.world)

	mouseVersion := v.mouseVersion
	needsUpdate := v.scenes.Render()
	v.renderedMouseVersion = mouseVersion

	if !needsUpdate {
		v.needsRender = v.needsRepaint
	}
	if needsUpdate {
		v.logger.Debug("viewport render needs more time")
	} else {
		v.logger.Debug("viewport render complete")
	}
	return needsUpdate
}

// Unmount detaches input and unmounts the scene tree.
func (v *Viewport) Unmount() {
	v.AttachInput(nil)
	v.scenes.Unmount()
}

// SetBackground installs a Background of the given color behind every scene,
// replacing any background installed before.
func (v *Viewport) SetBackground(c Color) *Background {
	bg := NewBackground(v.surface, c)
	if v.background != nil {
		v.scenes.Remove(v.background)
	}
	v.background = bg
	v.scenes.AddToBack(bg)
	return bg
}

// AddCameraControls installs the stock camera key and mouse controllers.
func (v *Viewport) AddCameraControls() (*CameraKeyController, *CameraMouseController) {
	mouse := NewCameraMouseController(v.camera)
	keys := NewCameraKeyController(v.camera, mouse, v.config.Keys)
	keys.OnReset = v.ResetCamera
	v.cameraKeys = keys
	v.mouse.AddToFront(mouse)
	v.keys.AddToFront(keys)
	return keys, mouse
}
