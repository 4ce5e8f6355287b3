package worldview

import "time"

// Scheduler is implemented by every unit that can report itself dirty to a
// single parent.
type Scheduler interface {
	SetOnScheduleUpdate(fn UpdateFunc, owner any)
}

// Ticker advances time-based state. It returns true if another cycle is needed.
type Ticker interface {
	Tick(cycleStart time.Time) bool
}

// Painter rebuilds derived per-frame data within a soft time budget. A zero
// timeout means no budget. It returns true if painting is incomplete.
type Painter interface {
	Paint(timeout time.Duration) bool
}

// Renderer draws the current state. It returns true if another render is needed.
type Renderer interface {
	Render() bool
}

// Unmounter releases any resources bound to a surface.
type Unmounter interface {
	Unmount()
}

// Transformed receives the world transform for the current render pass.
type Transformed interface {
	SetWorldTransform(world *WorldTransform)
}

// Renderable is a unit participating in the tick/paint/render cycle.
type Renderable interface {
	Scheduler
	Ticker
	Painter
	Renderer
	Unmounter
}

// WorldRenderable is a Renderable that is handed a world transform before
// each render pass.
type WorldRenderable interface {
	Renderable
	Transformed
}

// --- Scene ---

// Scene assembles a WorldRenderable from only the capabilities it needs.
// Every hook is optional; a missing hook reports "settled".
//
//	s := worldview.NewScene(surface)
//	s.OnRender = func(w *worldview.WorldTransform) bool {
//		ov, _ := surface.Overlay()
//		ov.FillRect(0, 0, 10, 10, worldview.ColorBlack)
//		return false
//	}
type Scene struct {
	OnTick    func(cycleStart time.Time) bool
	OnPaint   func(timeout time.Duration) bool
	OnRender  func(world *WorldTransform) bool
	OnUnmount func()

	// Labels, when set, is decluttered and drawn after OnRender.
	Labels *LabelSet

	surface Surface
	camera  *Camera
	world   *WorldTransform
	scratch TransformScratch
	update  Signal
}

// SceneOption configures a Scene.
type SceneOption func(*Scene)

// WithCamera gives the scene its own camera. Each Render then sizes the camera
// to the surface and derives the world transform from it, ignoring the one
// handed down by the parent.
func WithCamera(cam *Camera) SceneOption {
	return func(s *Scene) { s.camera = cam }
}

// WithLabels attaches a label set that is drawn through the occlusion engine.
func WithLabels(labels *LabelSet) SceneOption {
	return func(s *Scene) { s.Labels = labels }
}

// NewScene creates a scene drawing to surface. surface may be nil for scenes
// that only tick or paint.
func NewScene(surface Surface, opts ...SceneOption) *Scene {
	s := &Scene{surface: surface}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Surface returns the scene's surface, or nil.
func (s *Scene) Surface() Surface {
	return s.surface
}

// Camera returns the scene's own camera, or nil.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// SetOnScheduleUpdate implements Scheduler.
func (s *Scene) SetOnScheduleUpdate(fn UpdateFunc, owner any) {
	s.update.Set(fn, owner)
}

// MarkDirty notifies the parent that the scene's content changed.
func (s *Scene) MarkDirty() {
	s.update.Fire()
}

// SetWorldTransform implements Transformed.
func (s *Scene) SetWorldTransform(world *WorldTransform) {
	s.world = world
}

// WorldTransform returns the transform of the current render pass.
func (s *Scene) WorldTransform() *WorldTransform {
	return s.world
}

// Tick implements Ticker.
func (s *Scene) Tick(cycleStart time.Time) bool {
	if s.OnTick == nil {
		return false
	}
	return s.OnTick(cycleStart)
}

// Paint implements Painter.
func (s *Scene) Paint(timeout time.Duration) bool {
	if s.OnPaint == nil {
		return false
	}
	return s.OnPaint(timeout)
}

// Render applies the world transform to the surface, calls OnRender, then
// draws the label set.
func (s *Scene) Render() bool {
	if s.camera != nil && s.surface != nil {
		s.camera.SetSize(s.surface.Width(), s.surface.Height())
		s.world = FromCameraNode(s.camera, nil, &s.scratch)
	}
	if s.world != nil && s.surface != nil {
		s.world.ApplyTransform(s.surface)
	}
	needsUpdate := false
	if s.OnRender != nil {
		needsUpdate = s.OnRender(s.world)
	}
	if s.Labels != nil && s.world != nil && s.surface != nil {
		s.Labels.Render(s.surface, s.world.VisibleRegion(), s.world.Scale())
	}
	return needsUpdate
}

// Unmount implements Unmounter.
func (s *Scene) Unmount() {
	if s.OnUnmount != nil {
		s.OnUnmount()
	}
}
