package worldview

import (
	"math"
	"time"
)

// zoomBase is the per-step zoom factor for wheel and key zoom.
const zoomBase = 1.1

// --- CameraKeyController ---

// CameraKeyController pans and zooms a camera from held keys. Key names come
// from KeyConfig.
type CameraKeyController struct {
	camera *Camera
	mouse  MouseController
	keys   *KeyTimer
	config KeyConfig
	update Signal

	// OnReset, if set, replaces the built-in instant camera reset.
	OnReset func(complete bool)
}

// NewCameraKeyController creates a controller for camera. mouse may be nil; it
// is only consulted for LastMouseX/Y.
func NewCameraKeyController(camera *Camera, mouse MouseController, cfg KeyConfig) *CameraKeyController {
	return &CameraKeyController{
		camera: camera,
		mouse:  mouse,
		keys:   NewKeyTimer(),
		config: cfg,
	}
}

// SetConfig replaces the key settings. Held keys stay held.
func (c *CameraKeyController) SetConfig(cfg KeyConfig) { c.config = cfg }

// Keys returns the underlying key timer.
func (c *CameraKeyController) Keys() *KeyTimer { return c.keys }

// Camera returns the controlled camera.
func (c *CameraKeyController) Camera() *Camera { return c.camera }

// LastMouseX returns the paired mouse controller's X, or 0.
func (c *CameraKeyController) LastMouseX() float64 {
	if c.mouse == nil {
		return 0
	}
	return c.mouse.LastMouseX()
}

// LastMouseY returns the paired mouse controller's Y, or 0.
func (c *CameraKeyController) LastMouseY() float64 {
	if c.mouse == nil {
		return 0
	}
	return c.mouse.LastMouseY()
}

// SetOnScheduleUpdate implements Scheduler.
func (c *CameraKeyController) SetOnScheduleUpdate(fn UpdateFunc, owner any) {
	c.update.Set(fn, owner)
}

func (c *CameraKeyController) bound(name string) bool {
	b := c.config.Bindings
	switch name {
	case b.Reset, b.MoveUp, b.MoveDown, b.MoveLeft, b.MoveRight, b.ZoomIn, b.ZoomOut:
		return name != ""
	}
	return false
}

// ResetCamera resets the camera and notifies the parent.
func (c *CameraKeyController) ResetCamera(complete bool) {
	if c.OnReset != nil {
		c.OnReset(complete)
		return
	}
	if c.camera.Reset(complete, DefaultCameraScale) {
		c.update.Fire()
	}
}

// KeyDown records a bound key and consumes it. Unbound and malformed keys are
// not handled.
func (c *CameraKeyController) KeyDown(event Keystroke) bool {
	if event.Name == "" || !c.bound(event.Name) {
		return false
	}
	if c.keys.Held(event.Name) {
		return true
	}
	c.keys.KeyDown(event)
	return true
}

// KeyUp releases a bound key.
func (c *CameraKeyController) KeyUp(event Keystroke) bool {
	if !c.keys.Held(event.Name) {
		return false
	}
	c.keys.KeyUp(event)
	return true
}

// Tick moves the camera for every held key and fires the signal when it did.
// It returns true while any bound key is held.
func (c *CameraKeyController) Tick(t time.Time) bool {
	cam := c.camera
	b := c.config.Bindings
	keys := c.keys
	needsUpdate := false
	moved := false

	if keys.Held(b.Reset) {
		c.ResetCamera(false)
		keys.KeyUp(Keystroke{Name: b.Reset})
		needsUpdate = true
	}

	if keys.Held(b.MoveLeft) || keys.Held(b.MoveRight) || keys.Held(b.MoveUp) || keys.Held(b.MoveDown) {
		speed := c.config.PanSpeed / cam.Scale()
		x := cam.X() + keys.KeyElapsed(b.MoveLeft, t)*speed - keys.KeyElapsed(b.MoveRight, t)*speed
		y := cam.Y() + keys.KeyElapsed(b.MoveUp, t)*speed - keys.KeyElapsed(b.MoveDown, t)*speed
		cam.SetOrigin(x, y)
		moved = true
	}

	if keys.Held(b.ZoomOut) {
		moved = true
		cam.ZoomToPoint(math.Pow(zoomBase, -c.config.ZoomSpeed*keys.KeyElapsed(b.ZoomOut, t)),
			cam.Width()/2, cam.Height()/2)
	}
	if keys.Held(b.ZoomIn) {
		moved = true
		cam.ZoomToPoint(math.Pow(zoomBase, c.config.ZoomSpeed*keys.KeyElapsed(b.ZoomIn, t)),
			cam.Width()/2, cam.Height()/2)
	}
	if moved {
		c.update.Fire()
	}
	return needsUpdate || moved
}

// --- CameraMouseController ---

// CameraMouseController drags the camera origin with the pointer and zooms
// toward the pointer on wheel events. Presses and wheel events outside the
// camera's screen area are not handled.
//
// It raises no signal of its own: the enclosing MouseControllers schedules
// every consumed event.
type CameraMouseController struct {
	camera   *Camera
	dragging bool
	focused  bool
	hasLast  bool
	lastX    float64
	lastY    float64
}

// NewCameraMouseController creates a controller for camera.
func NewCameraMouseController(camera *Camera) *CameraMouseController {
	return &CameraMouseController{camera: camera}
}

// SetOnScheduleUpdate implements Scheduler.
func (c *CameraMouseController) SetOnScheduleUpdate(UpdateFunc, any) {}

func (c *CameraMouseController) inside(x, y float64) bool {
	return Rect{Width: c.camera.Width(), Height: c.camera.Height()}.Contains(x, y)
}

// Dragging reports whether a drag is in progress.
func (c *CameraMouseController) Dragging() bool { return c.dragging }

// LastMouseX implements MouseController.
func (c *CameraMouseController) LastMouseX() float64 { return c.lastX }

// LastMouseY implements MouseController.
func (c *CameraMouseController) LastMouseY() float64 { return c.lastY }

// Tick implements Ticker.
func (c *CameraMouseController) Tick(time.Time) bool { return false }

// Focus implements MouseController.
func (c *CameraMouseController) Focus() { c.focused = true }

// Blur ends any drag.
func (c *CameraMouseController) Blur() {
	c.focused = false
	c.dragging = false
}

func (c *CameraMouseController) savePos(x, y float64) {
	c.lastX, c.lastY = x, y
	c.hasLast = true
}

func (c *CameraMouseController) drag(dx, dy float64) bool {
	cam := c.camera
	cam.AdjustOrigin(dx/cam.Scale(), dy/cam.Scale())
	return true
}

// MouseDown starts a drag.
func (c *CameraMouseController) MouseDown(_ MouseButton, _ time.Time, x, y float64) bool {
	c.savePos(x, y)
	if !c.inside(x, y) {
		return false
	}
	c.dragging = true
	return c.drag(0, 0)
}

// MouseMove pans the camera while dragging.
func (c *CameraMouseController) MouseMove(x, y float64) bool {
	dx, dy := x-c.lastX, y-c.lastY
	hadLast := c.hasLast
	c.savePos(x, y)
	if c.dragging && hadLast {
		return c.drag(dx, dy)
	}
	return false
}

// MouseUp ends a drag.
func (c *CameraMouseController) MouseUp(_ MouseButton, _ time.Time, x, y float64) bool {
	c.savePos(x, y)
	c.dragging = false
	return false
}

// Wheel zooms one step toward (x, y): in for negative magnitudes, out for
// positive ones. Zooming out stops at MinCameraScale.
func (c *CameraMouseController) Wheel(mag, x, y float64) bool {
	c.savePos(x, y)
	if !c.inside(x, y) {
		return false
	}
	steps := 1.0
	if mag > 0 {
		steps = -1
	}
	cam := c.camera
	if steps > 0 || cam.Scale() >= MinCameraScale {
		cam.ZoomToPoint(math.Pow(zoomBase, steps), x, y)
		return true
	}
	return false
}
