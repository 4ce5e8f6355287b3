package worldview

import "testing"

func TestEbitenSurfaceResize(t *testing.T) {
	s := NewEbitenSurface(0, -5)
	if s.Width() != 1 || s.Height() != 1 {
		t.Errorf("size = %vx%v, want clamped to 1x1", s.Width(), s.Height())
	}
	if !s.Resize(320, 240) {
		t.Error("Resize to a new size = false")
	}
	if s.Resize(320, 240) {
		t.Error("Resize to the same size = true")
	}
	if b := s.EbitenOverlay().Image().Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Errorf("overlay bounds = %v, want 320x240", b)
	}
	if _, ok := s.Container(); ok {
		t.Error("Container reported present")
	}
}

func TestEbitenOverlayTransformOrder(t *testing.T) {
	o := NewEbitenSurface(100, 100).EbitenOverlay()
	// Translate then scale: the translation is scaled too.
	o.Translate(10, 0)
	o.Scale(2, 2)
	if x, y := o.geo.Apply(1, 1); x != 22 || y != 2 {
		t.Errorf("Apply(1, 1) = (%v, %v), want (22, 2)", x, y)
	}
	o.ResetTransform()
	if x, y := o.geo.Apply(1, 1); x != 1 || y != 1 {
		t.Errorf("after reset Apply(1, 1) = (%v, %v), want (1, 1)", x, y)
	}
}

func TestEbitenOverlayFontFallback(t *testing.T) {
	o := NewEbitenSurface(100, 100).EbitenOverlay()
	o.SetFont(16, "no-such-family")
	m := o.MeasureText("hello")
	if m.Width <= 0 || m.Ascent <= 0 {
		t.Errorf("metrics = %+v, want positive width and ascent", m)
	}
	if wide := o.MeasureText("hello hello"); wide.Width <= m.Width {
		t.Errorf("longer text measured %v, not wider than %v", wide.Width, m.Width)
	}
}

func TestEbitenGPULoss(t *testing.T) {
	s := NewEbitenSurface(10, 10)
	gpu, _ := s.GPU()
	if gpu.IsContextLost() {
		t.Fatal("new context reported lost")
	}
	s.gpu.MarkLost(true)
	if !gpu.IsContextLost() {
		t.Error("MarkLost not reported")
	}
}
