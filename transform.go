package worldview

import (
	"fmt"
	"math"
)

// Placement is a scene-graph node's local scale and absolute position, composed
// on top of a camera by FromCameraNode.
type Placement struct {
	Scale float64
	X, Y  float64
}

// WorldTransform is the per-frame snapshot of camera-derived projection state.
// It is built once per render pass and handed down the scene tree; it is never
// a live view of the camera. Only Set copies over an existing transform.
type WorldTransform struct {
	matrix        Matrix3
	scale         float64
	width, height float64
	x, y          float64
	labels        *LabelSet
}

// NewWorldTransform creates a transform from explicit values.
func NewWorldTransform(m Matrix3, scale, width, height, x, y float64) *WorldTransform {
	return &WorldTransform{
		matrix: m,
		scale:  scale,
		width:  width,
		height: height,
		x:      x,
		y:      y,
	}
}

// FromCamera snapshots cam. If cam cannot project, the matrix falls back to
// the identity.
func FromCamera(cam Projector) *WorldTransform {
	return FromCameraNode(cam, nil, nil)
}

// FromCameraNode snapshots cam composed with an optional node placement:
// the node's scale applies first, then its translation, then the camera
// projection. The resulting scale is cam.Scale * node.Scale and the origin is
// the camera origin plus the node position.
//
// scratch may be nil. When cam cannot project, the identity matrix and the raw
// camera scale and origin are used and node is ignored.
func FromCameraNode(cam Projector, node *Placement, scratch *TransformScratch) *WorldTransform {
	w := &WorldTransform{
		scale:  cam.Scale(),
		width:  cam.Width(),
		height: cam.Height(),
		x:      cam.X(),
		y:      cam.Y(),
	}
	if !cam.CanProject() {
		w.matrix = Identity3()
		return w
	}
	if node == nil {
		w.matrix = cam.Project()
		return w
	}
	if scratch == nil {
		scratch = &TransformScratch{}
	}
	Mul3(&scratch.node, Translate3(node.X, node.Y), Scale3(node.Scale))
	Mul3(&scratch.local, cam.Project(), scratch.node)
	w.matrix = scratch.local
	w.scale *= node.Scale
	w.x += node.X
	w.y += node.Y
	return w
}

// FromPos builds a transform for a camera positioned at (x, y) with the given
// scale and viewport size.
func FromPos(x, y, scale, width, height float64) *WorldTransform {
	cam := NewCamera()
	cam.SetSize(width, height)
	cam.SetOrigin(x, y)
	cam.SetScale(scale)
	return FromCamera(cam)
}

// Set copies other into w, including its label set.
func (w *WorldTransform) Set(other *WorldTransform) {
	*w = *other
}

// Matrix returns the world to clip-space matrix.
func (w *WorldTransform) Matrix() Matrix3 { return w.matrix }

// Scale returns the combined scale.
func (w *WorldTransform) Scale() float64 { return w.scale }

// X returns the origin X offset in world units.
func (w *WorldTransform) X() float64 { return w.x }

// Y returns the origin Y offset in world units.
func (w *WorldTransform) Y() float64 { return w.y }

// Width returns the viewport width in pixels.
func (w *WorldTransform) Width() float64 { return w.width }

// Height returns the viewport height in pixels.
func (w *WorldTransform) Height() float64 { return w.height }

// Labels returns the associated label set, or nil.
func (w *WorldTransform) Labels() *LabelSet { return w.labels }

// SetLabels associates a label set with the transform.
func (w *WorldTransform) SetLabels(labels *LabelSet) { w.labels = labels }

// VisibleRegion returns the world-space rectangle covered by the viewport.
func (w *WorldTransform) VisibleRegion() Rect {
	if w.scale == 0 || math.IsNaN(w.scale) {
		return Rect{}
	}
	return Rect{X: -w.x, Y: -w.y, Width: w.width / w.scale, Height: w.height / w.scale}
}

// ApplyTransform prepares surface for drawing in world coordinates. The
// overlay is reset, cleared, translated by the origin and scaled. A style
// target receives the equivalent CSS transform.
func (w *WorldTransform) ApplyTransform(surface Surface) {
	if ov, ok := surface.Overlay(); ok {
		ov.ResetTransform()
		ov.ClearRect(0, 0, surface.Width(), surface.Height())
		ov.Translate(w.x, w.y)
		ov.Scale(w.scale, w.scale)
	}
	if st, ok := surface.Container(); ok {
		st.SetTransform(w.CSSTransform())
	}
}

// CSSTransform returns the transform as a CSS transform string.
func (w *WorldTransform) CSSTransform() string {
	return fmt.Sprintf("translate(%gpx, %gpx) scale(%g, %g)", w.x, w.y, w.scale, w.scale)
}

// RenderLabels draws the associated label set over the visible region. It
// returns the labels that survived occlusion.
func (w *WorldTransform) RenderLabels(surface Surface) []Label {
	if w.labels == nil {
		return nil
	}
	return w.labels.Render(surface, w.VisibleRegion(), w.scale)
}

func (w *WorldTransform) String() string {
	return fmt.Sprintf("WorldTransform{scale: %g, origin: (%g, %g), size: %gx%g}",
		w.scale, w.x, w.y, w.width, w.height)
}
