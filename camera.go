package worldview

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// MinCameraScale is the smallest scale user zoom controls will zoom out to.
const MinCameraScale = 1.0 / 800

// DefaultCameraScale is the scale a camera reset returns to.
const DefaultCameraScale = 0.25

// Projector is the narrow camera contract consumed by WorldTransform.
type Projector interface {
	Width() float64
	Height() float64
	Scale() float64
	// X and Y are the origin offset in world units.
	X() float64
	Y() float64
	// CanProject reports whether Project currently yields a valid matrix.
	CanProject() bool
	// Project returns the world to clip-space matrix.
	Project() Matrix3
}

// cameraAnim holds active tweens toward a target origin and scale.
type cameraAnim struct {
	tweenX, tweenY, tweenScale *gween.Tween
	doneX, doneY, doneScale    bool
}

// Camera maps world coordinates to the screen:
//
//	screen = (world + origin) * scale
//
// The camera is owned by a Viewport. Scenes read it; only input controllers
// mutate it.
type Camera struct {
	width, height float64
	scale         float64
	x, y          float64

	anim *cameraAnim
}

// NewCamera creates a camera at origin (0, 0) with scale 1 and no size.
func NewCamera() *Camera {
	return &Camera{scale: 1}
}

// Width returns the viewport width in pixels.
func (c *Camera) Width() float64 { return c.width }

// Height returns the viewport height in pixels.
func (c *Camera) Height() float64 { return c.height }

// Scale returns the zoom factor.
func (c *Camera) Scale() float64 { return c.scale }

// X returns the origin X offset in world units.
func (c *Camera) X() float64 { return c.x }

// Y returns the origin Y offset in world units.
func (c *Camera) Y() float64 { return c.y }

// SetSize sets the viewport size in pixels. Reports whether it changed.
func (c *Camera) SetSize(w, h float64) bool {
	if c.width == w && c.height == h {
		return false
	}
	c.width, c.height = w, h
	return true
}

// SetOrigin sets the origin offset in world units.
func (c *Camera) SetOrigin(x, y float64) {
	c.x, c.y = x, y
}

// AdjustOrigin moves the origin by (dx, dy) world units.
func (c *Camera) AdjustOrigin(dx, dy float64) {
	c.x += dx
	c.y += dy
}

// SetScale sets the zoom factor.
func (c *Camera) SetScale(s float64) {
	c.scale = s
}

// ZoomToPoint multiplies the scale by factor while keeping the world point
// under screen position (sx, sy) fixed on screen.
func (c *Camera) ZoomToPoint(factor, sx, sy float64) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.scale *= factor
	c.x = sx/c.scale - wx
	c.y = sy/c.scale - wy
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// CanProject reports whether the camera has a positive size and scale.
func (c *Camera) CanProject() bool {
	return c.width > 0 && c.height > 0 && c.scale > 0 &&
		finite(c.width) && finite(c.height) && finite(c.scale) &&
		finite(c.x) && finite(c.y)
}

// WorldMatrix returns the world to screen matrix.
func (c *Camera) WorldMatrix() Matrix3 {
	s := c.scale
	return Matrix3{s, 0, s * c.x, 0, s, s * c.y, 0, 0, 1}
}

// Project returns the world to clip-space matrix: screen coordinates mapped to
// [-1, 1] with Y pointing up. Only meaningful when CanProject is true.
func (c *Camera) Project() Matrix3 {
	ortho := Matrix3{2 / c.width, 0, -1, 0, -2 / c.height, 1, 0, 0, 1}
	var m Matrix3
	Mul3(&m, ortho, c.WorldMatrix())
	return m
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return (wx + c.x) * c.scale, (wy + c.y) * c.scale
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	if c.scale == 0 {
		return sx - c.x, sy - c.y
	}
	return sx/c.scale - c.x, sy/c.scale - c.y
}

// VisibleBounds returns the world-space rectangle covered by the viewport.
func (c *Camera) VisibleBounds() Rect {
	if c.scale == 0 {
		return Rect{}
	}
	return Rect{X: -c.x, Y: -c.y, Width: c.width / c.scale, Height: c.height / c.scale}
}

// Reset moves the camera back to its home position. The first reset centers
// the world origin at defaultScale; a second reset, or a complete one, also
// restores the scale. No-op if the camera cannot project.
func (c *Camera) Reset(complete bool, defaultScale float64) bool {
	if !c.CanProject() {
		return false
	}
	x := c.width / (2 * defaultScale)
	y := c.height / (2 * defaultScale)
	if !complete && c.x == x && c.y == y {
		c.scale = defaultScale
		return true
	}
	if complete {
		c.scale = defaultScale
	}
	c.x, c.y = x, y
	return true
}

// --- Animation ---

// AnimateTo tweens the origin and scale to the given values over duration
// seconds. A previous animation is replaced.
func (c *Camera) AnimateTo(x, y, scale float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.OutQuad
	}
	c.anim = &cameraAnim{
		tweenX:     gween.New(float32(c.x), float32(x), duration, easeFn),
		tweenY:     gween.New(float32(c.y), float32(y), duration, easeFn),
		tweenScale: gween.New(float32(c.scale), float32(scale), duration, easeFn),
	}
}

// Animating reports whether an animation is in progress.
func (c *Camera) Animating() bool {
	return c.anim != nil
}

// StopAnimation cancels any animation, leaving the camera where it is.
func (c *Camera) StopAnimation() {
	c.anim = nil
}

// Update advances the animation by dt seconds. It returns true if the camera
// moved this step.
func (c *Camera) Update(dt float32) bool {
	a := c.anim
	if a == nil {
		return false
	}
	if !a.doneX {
		val, done := a.tweenX.Update(dt)
		c.x = float64(val)
		a.doneX = done
	}
	if !a.doneY {
		val, done := a.tweenY.Update(dt)
		c.y = float64(val)
		a.doneY = done
	}
	if !a.doneScale {
		val, done := a.tweenScale.Update(dt)
		c.scale = float64(val)
		a.doneScale = done
	}
	if a.doneX && a.doneY && a.doneScale {
		c.anim = nil
	}
	return true
}
