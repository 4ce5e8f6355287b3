package worldview

// Surface is the graphics surface a viewport draws to. Its optional layers are
// reported with an explicit ok flag rather than nil checks.
type Surface interface {
	Width() float64
	Height() float64
	// Overlay returns the 2D drawing context, if the surface has one.
	Overlay() (Overlay, bool)
	// GPU returns the GPU context, if the surface has one.
	GPU() (GPUContext, bool)
	// Container returns the DOM-style mount point, if the surface has one.
	Container() (StyleTarget, bool)
}

// TextMetrics describes the measured extent of a string.
type TextMetrics struct {
	Width   float64
	Ascent  float64
	Descent float64
}

// Height returns Ascent + Descent.
func (m TextMetrics) Height() float64 {
	return m.Ascent + m.Descent
}

// Overlay is a canvas-style 2D drawing context.
//
// Transform calls compose in application order, like ebiten.GeoM: after
// Translate(x, y) then Scale(s, s), a point p is drawn at (p + (x, y)) * s.
// Text is drawn centered horizontally and vertically on (x, y).
type Overlay interface {
	ResetTransform()
	Translate(x, y float64)
	Scale(sx, sy float64)
	// ClearRect clears a screen-space rectangle to transparent.
	ClearRect(x, y, w, h float64)
	FillRect(x, y, w, h float64, c Color)
	SetFont(size float64, family string)
	MeasureText(s string) TextMetrics
	SetLineWidth(w float64)
	StrokeText(s string, x, y float64, c Color)
	FillText(s string, x, y float64, c Color)
}

// GPUContext is the minimal GPU contract: context-loss polling and clearing.
type GPUContext interface {
	IsContextLost() bool
	Clear(c Color)
}

// StyleTarget is a DOM-backed presentation layer that is positioned with CSS
// transforms instead of draw calls.
type StyleTarget interface {
	SetTransform(css string)
	SetBackgroundColor(css string)
}

// surfaceLost reports whether surface has a GPU context that is lost.
func surfaceLost(surface Surface) bool {
	gpu, ok := surface.GPU()
	return ok && gpu.IsContextLost()
}
