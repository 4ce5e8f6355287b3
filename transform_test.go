package worldview

import (
	"reflect"
	"testing"
)

func TestFromCamera(t *testing.T) {
	cam := newSizedCamera(800, 600)
	cam.SetOrigin(10, 20)
	cam.SetScale(2)
	w := FromCamera(cam)
	if w.Matrix() != cam.Project() {
		t.Errorf("Matrix = %v, want camera projection", w.Matrix())
	}
	if w.Scale() != 2 || w.X() != 10 || w.Y() != 20 || w.Width() != 800 || w.Height() != 600 {
		t.Errorf("snapshot = %v", w)
	}

	// Snapshot, not a live view.
	cam.SetScale(4)
	if w.Scale() != 2 {
		t.Errorf("Scale followed camera to %v", w.Scale())
	}
}

func TestFromCameraUnprojectableFallsBackToIdentity(t *testing.T) {
	cam := NewCamera()
	cam.SetScale(3)
	cam.SetOrigin(1, 2)
	w := FromCameraNode(cam, &Placement{Scale: 2, X: 5, Y: 5}, nil)
	if w.Matrix() != Identity3() {
		t.Errorf("Matrix = %v, want identity", w.Matrix())
	}
	if w.Scale() != 3 || w.X() != 1 || w.Y() != 2 {
		t.Errorf("got scale %v origin (%v, %v), want raw camera values", w.Scale(), w.X(), w.Y())
	}
}

func TestFromCameraNodeComposition(t *testing.T) {
	cam := newSizedCamera(800, 600)
	cam.SetOrigin(10, 20)
	cam.SetScale(2)
	node := &Placement{Scale: 3, X: 4, Y: 5}
	var scratch TransformScratch
	w := FromCameraNode(cam, node, &scratch)

	if w.Scale() != 6 {
		t.Errorf("Scale = %v, want 6", w.Scale())
	}
	if w.X() != 14 || w.Y() != 25 {
		t.Errorf("origin = (%v, %v), want (14, 25)", w.X(), w.Y())
	}

	// A node-local point is scaled, then translated, then projected.
	lx, ly := 1.0, 2.0
	want := Matrix3{}
	Mul3(&want, cam.Project(), Translate3(4, 5))
	wx, wy := want.Transform2D(lx*3, ly*3)
	gx, gy := w.Matrix().Transform2D(lx, ly)
	if !approxEqual(gx, wx, epsilon) || !approxEqual(gy, wy, epsilon) {
		t.Errorf("projected (%v, %v), want (%v, %v)", gx, gy, wx, wy)
	}
}

func TestWorldTransformSetCopies(t *testing.T) {
	a := FromPos(1, 2, 3, 100, 200)
	labels := NewLabelSet()
	a.SetLabels(labels)
	b := NewWorldTransform(Identity3(), 1, 0, 0, 0, 0)
	b.Set(a)
	if b.Scale() != 3 || b.X() != 1 || b.Y() != 2 || b.Width() != 100 || b.Height() != 200 {
		t.Errorf("Set copied %v", b)
	}
	if b.Labels() != labels {
		t.Error("Set did not copy the label set")
	}
	if b.Matrix() != a.Matrix() {
		t.Error("Set did not copy the matrix")
	}
}

func TestWorldTransformVisibleRegion(t *testing.T) {
	w := FromPos(100, 50, 2, 800, 600)
	want := Rect{X: -100, Y: -50, Width: 400, Height: 300}
	if got := w.VisibleRegion(); got != want {
		t.Errorf("VisibleRegion = %v, want %v", got, want)
	}
	if got := NewWorldTransform(Identity3(), 0, 800, 600, 0, 0).VisibleRegion(); got != (Rect{}) {
		t.Errorf("zero-scale VisibleRegion = %v, want empty", got)
	}
}

func TestApplyTransformOverlay(t *testing.T) {
	s := newRecSurface(800, 600)
	FromPos(10, 20, 0.5, 800, 600).ApplyTransform(s)
	want := []string{"reset", "clear 0 0 800 600", "translate 10 20", "scale 0.5 0.5"}
	if !reflect.DeepEqual(s.ov.ops, want) {
		t.Errorf("ops = %v, want %v", s.ov.ops, want)
	}
}

func TestApplyTransformStyleTarget(t *testing.T) {
	s := newRecSurface(800, 600)
	s.ov = nil
	s.style = &recStyle{}
	FromPos(10, 20, 0.5, 800, 600).ApplyTransform(s)
	want := []string{"translate(10px, 20px) scale(0.5, 0.5)"}
	if !reflect.DeepEqual(s.style.transforms, want) {
		t.Errorf("transforms = %v, want %v", s.style.transforms, want)
	}
}

func TestRenderLabelsWithoutSet(t *testing.T) {
	if got := FromPos(0, 0, 1, 100, 100).RenderLabels(newRecSurface(100, 100)); got != nil {
		t.Errorf("RenderLabels = %v, want nil", got)
	}
}
