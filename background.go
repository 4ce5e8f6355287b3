package worldview

import "time"

// Background clears the surface to a solid color at the start of each render
// pass. Install it at the back of a SceneList so it renders first.
type Background struct {
	surface Surface
	color   Color
	update  Signal
	lastCSS string
}

// NewBackground creates a background of color c for surface.
func NewBackground(surface Surface, c Color) *Background {
	return &Background{surface: surface, color: c}
}

// Color returns the background color.
func (b *Background) Color() Color { return b.color }

// SetColor changes the background color and schedules an update.
func (b *Background) SetColor(c Color) {
	b.color = c
	b.update.Fire()
}

// SetOnScheduleUpdate implements Scheduler.
func (b *Background) SetOnScheduleUpdate(fn UpdateFunc, owner any) { b.update.Set(fn, owner) }

// Tick implements Ticker.
func (b *Background) Tick(time.Time) bool { return false }

// Paint implements Painter.
func (b *Background) Paint(time.Duration) bool { return false }

// SetWorldTransform implements Transformed. The background ignores the camera.
func (b *Background) SetWorldTransform(*WorldTransform) {}

// Render clears the GPU layer to the color, clears the overlay and, for
// DOM-backed surfaces, sets the container's background color.
func (b *Background) Render() bool {
	if st, ok := b.surface.Container(); ok {
		if css := b.color.CSS(); css != b.lastCSS {
			st.SetBackgroundColor(css)
			b.lastCSS = css
		}
	}
	if gpu, ok := b.surface.GPU(); ok && !gpu.IsContextLost() {
		gpu.Clear(b.color)
	}
	if ov, ok := b.surface.Overlay(); ok {
		ov.ResetTransform()
		ov.ClearRect(0, 0, b.surface.Width(), b.surface.Height())
	}
	return false
}

// Unmount implements Unmounter.
func (b *Background) Unmount() {
	b.lastCSS = ""
}

// --- Cleared ---

// Cleared clears the surface to transparent on every render pass.
type Cleared struct {
	surface Surface
	update  Signal
}

// NewCleared creates a Cleared for surface.
func NewCleared(surface Surface) *Cleared {
	return &Cleared{surface: surface}
}

// SetOnScheduleUpdate implements Scheduler.
func (c *Cleared) SetOnScheduleUpdate(fn UpdateFunc, owner any) { c.update.Set(fn, owner) }

// ScheduleUpdate notifies the parent.
func (c *Cleared) ScheduleUpdate() { c.update.Fire() }

// Tick implements Ticker.
func (c *Cleared) Tick(time.Time) bool { return false }

// Paint implements Painter.
func (c *Cleared) Paint(time.Duration) bool { return false }

// SetWorldTransform implements Transformed.
func (c *Cleared) SetWorldTransform(*WorldTransform) {}

// Render clears both layers to transparent.
func (c *Cleared) Render() bool {
	if gpu, ok := c.surface.GPU(); ok && !gpu.IsContextLost() {
		gpu.Clear(ColorTransparent)
	}
	if ov, ok := c.surface.Overlay(); ok {
		ov.ResetTransform()
		ov.ClearRect(0, 0, c.surface.Width(), c.surface.Height())
	}
	return false
}

// Unmount implements Unmounter.
func (c *Cleared) Unmount() {}
