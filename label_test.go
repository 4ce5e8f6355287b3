package worldview

import (
	"reflect"
	"testing"
)

func TestOccluder(t *testing.T) {
	o := NewOccluder(Rect{X: 0, Y: 0, Width: 100, Height: 100})
	steps := []struct {
		name string
		r    Rect
		want bool
	}{
		{"first inside", Rect{X: 10, Y: 10, Width: 10, Height: 10}, true},
		{"duplicate", Rect{X: 10, Y: 10, Width: 10, Height: 10}, false},
		{"partial overlap", Rect{X: 15, Y: 15, Width: 10, Height: 10}, false},
		{"touching edge", Rect{X: 20, Y: 10, Width: 10, Height: 10}, true},
		{"outside bounds", Rect{X: 200, Y: 200, Width: 5, Height: 5}, false},
		{"straddles bounds", Rect{X: 95, Y: 95, Width: 10, Height: 10}, true},
		{"empty inside", Rect{X: 50, Y: 50, Width: 0, Height: 4}, true},
		{"empty duplicate", Rect{X: 50, Y: 50, Width: 0, Height: 4}, false},
		{"covers empty", Rect{X: 48, Y: 48, Width: 5, Height: 8}, false},
		{"empty within accepted", Rect{X: 12, Y: 12, Width: 0, Height: 2}, false},
	}
	for _, s := range steps {
		if got := o.Occlude(s.r); got != s.want {
			t.Errorf("%s: Occlude(%v) = %v, want %v", s.name, s.r, got, s.want)
		}
	}
	if got := len(o.Accepted()); got != 4 {
		t.Errorf("accepted %d rects, want 4", got)
	}

	// Accepted rectangles never overlap one another.
	acc := o.Accepted()
	for i := range acc {
		for j := i + 1; j < len(acc); j++ {
			if acc[i].Overlaps(acc[j]) {
				t.Errorf("accepted %v and %v overlap", acc[i], acc[j])
			}
		}
	}

	o.Clear()
	if !o.Occlude(Rect{X: 10, Y: 10, Width: 10, Height: 10}) {
		t.Error("Occlude after Clear = false")
	}
}

func TestLabelSetRenderLargestFirstWins(t *testing.T) {
	s := newRecSurface(100, 100)
	set := NewLabelSet()
	set.Draw("aa", 10, 10, 10, 5, ColorBlack)   // 10x10 at (5,5), under "bbbb"
	set.Draw("bbbb", 12, 10, 30, 5, ColorBlack) // 60x30 at (-18,-5)
	set.Draw("cc", 80, 80, 20, 5, ColorBlack)   // 20x20 at (70,70)

	drawn := set.Render(s, Rect{Width: 100, Height: 100}, 1)

	var got []string
	for _, l := range drawn {
		got = append(got, l.Text)
	}
	if want := []string{"bbbb", "cc"}; !reflect.DeepEqual(got, want) {
		t.Errorf("drawn = %v, want %v", got, want)
	}
	if want := []string{"bbbb", "cc", "aa"}; !reflect.DeepEqual(s.ov.measured, want) {
		t.Errorf("measured = %v, want %v", s.ov.measured, want)
	}
	if want := []string{"bbbb", "cc"}; !reflect.DeepEqual(s.ov.stroked, want) {
		t.Errorf("stroked = %v, want %v", s.ov.stroked, want)
	}
	if want := []string{"bbbb", "cc"}; !reflect.DeepEqual(s.ov.filled, want) {
		t.Errorf("filled = %v, want %v", s.ov.filled, want)
	}
}

func TestLabelSetStableForEqualSizes(t *testing.T) {
	s := newRecSurface(1000, 1000)
	set := NewLabelSet()
	set.Draw("first", 100, 100, 10, 5, ColorBlack)
	set.Draw("second", 100, 100, 10, 5, ColorBlack)
	drawn := set.Render(s, Rect{Width: 1000, Height: 1000}, 1)
	if len(drawn) != 1 || drawn[0].Text != "first" {
		t.Errorf("drawn = %v, want only the first inserted label", drawn)
	}
}

func TestLabelSetScaleThreshold(t *testing.T) {
	tests := []struct {
		name       string
		labelScale float64
		multiplier float64
		renderAt   float64
		wantDrawn  bool
	}{
		{"above threshold", 2, 1, 1, true},
		{"at threshold", 1, 1, 1, false},
		{"below threshold", 0.5, 1, 1, false},
		{"multiplier lowers threshold", 0.75, 2, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newRecSurface(100, 100)
			set := NewLabelSet()
			set.SetScaleMultiplier(tt.multiplier)
			set.Draw("x", 50, 50, 10, tt.labelScale, ColorBlack)
			drawn := set.Render(s, Rect{Width: 100, Height: 100}, tt.renderAt)
			if (len(drawn) == 1) != tt.wantDrawn {
				t.Errorf("drawn = %v, want drawn %v", drawn, tt.wantDrawn)
			}
			// Hidden labels are never measured.
			if !tt.wantDrawn && len(s.ov.measured) != 0 {
				t.Errorf("measured %v for hidden label", s.ov.measured)
			}
		})
	}
}

func TestLabelSetFontAndLineWidthFollowScale(t *testing.T) {
	s := newRecSurface(1000, 1000)
	set := NewLabelSet()
	set.Draw("x", 100, 100, 12, 100, ColorBlack)
	set.Render(s, Rect{Width: 1000, Height: 1000}, 0.5)
	want := []string{
		"font 24 sans-serif",
		"font 24 sans-serif",
		"linewidth 4",
		"stroke x",
		"fill x",
	}
	if !reflect.DeepEqual(s.ov.ops, want) {
		t.Errorf("ops = %v, want %v", s.ov.ops, want)
	}
}

func TestLabelStrokeColor(t *testing.T) {
	red := Color{1, 0, 0, 1}
	tests := []struct {
		name  string
		label Label
		want  Color
	}{
		{"dark fill", Label{Color: ColorBlack}, ColorWhite},
		{"light fill", Label{Color: ColorWhite}, ColorBlack},
		{"explicit", Label{Color: ColorBlack, StrokeColor: &red}, red},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.label.stroke(); got != tt.want {
				t.Errorf("stroke = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLabelSetRenderWithoutOverlay(t *testing.T) {
	s := newRecSurface(100, 100)
	s.ov = nil
	set := NewLabelSet()
	set.Draw("x", 50, 50, 10, 5, ColorBlack)
	if drawn := set.Render(s, Rect{Width: 100, Height: 100}, 1); drawn != nil {
		t.Errorf("drawn = %v without overlay", drawn)
	}
}

func TestLabelSetScaleMultiplierDefault(t *testing.T) {
	set := NewLabelSet()
	set.SetScaleMultiplier(-3)
	if set.ScaleMultiplier() != 1 {
		t.Errorf("ScaleMultiplier = %v, want 1", set.ScaleMultiplier())
	}
}

func TestSceneRendersLabels(t *testing.T) {
	s := newRecSurface(800, 600)
	labels := NewLabelSet()
	scene := NewScene(s, WithLabels(labels))
	labels.Draw("home", 0, 0, 16, 10, ColorBlack)

	var rendered bool
	scene.OnRender = func(w *WorldTransform) bool {
		rendered = true
		return false
	}
	// Origin at screen center: world (0,0) is visible.
	scene.SetWorldTransform(FromPos(400, 300, 1, 800, 600))
	if scene.Render() {
		t.Error("Render = true, want false")
	}
	if !rendered {
		t.Error("OnRender not called")
	}
	if want := []string{"home"}; !reflect.DeepEqual(s.ov.filled, want) {
		t.Errorf("filled = %v, want %v", s.ov.filled, want)
	}
}
