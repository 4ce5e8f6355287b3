package worldview

import (
	"reflect"
	"testing"
	"time"
)

type fixedSource struct{ w *WorldTransform }

func (f fixedSource) WorldTransform() *WorldTransform { return f.w }

func TestStatusSceneSamplesFPS(t *testing.T) {
	fps := 60.0
	s := NewStatusScene(newRecSurface(100, 100), fixedSource{})
	s.FPS = func() float64 { return fps }
	var fired int
	s.SetOnScheduleUpdate(counter(&fired), nil)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	steps := []struct {
		at        time.Duration
		fps       float64
		wantFired int
	}{
		{0, 60, 1},                         // first sample
		{100 * time.Millisecond, 30, 1},    // inside the interval
		{500 * time.Millisecond, 60.04, 1}, // same displayed value
		{time.Second, 59, 2},
	}
	for _, st := range steps {
		fps = st.fps
		if s.Tick(base.Add(st.at)) {
			t.Errorf("at %v: Tick = true", st.at)
		}
		if fired != st.wantFired {
			t.Errorf("at %v: fired = %d, want %d", st.at, fired, st.wantFired)
		}
	}
}

func TestStatusScenePaint(t *testing.T) {
	tests := []struct {
		name string
		w    *WorldTransform
		want []string
	}{
		{"no transform", nil, []string{"scale: -", "FPS: 0.0"}},
		{"transform", FromPos(12.5, -3, 2, 800, 600), []string{"scale: 2  origin: (12.5, -3.0)", "FPS: 0.0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStatusScene(newRecSurface(100, 100), fixedSource{tt.w})
			s.Paint(0)
			if !reflect.DeepEqual(s.Lines(), tt.want) {
				t.Errorf("Lines = %q, want %q", s.Lines(), tt.want)
			}
		})
	}
}

func TestStatusSceneRenderScreenSpace(t *testing.T) {
	surface := newRecSurface(100, 100)
	s := NewStatusScene(surface, fixedSource{})
	if s.Render() {
		t.Error("Render = true")
	}
	ops := surface.ov.ops
	if len(ops) < 2 || ops[0] != "reset" || ops[1] != "font 13 sans-serif" {
		t.Errorf("ops start %v, want reset then font", ops)
	}
	if want := []string{"scale: -", "FPS: 0.0"}; !reflect.DeepEqual(surface.ov.filled, want) {
		t.Errorf("filled = %v, want %v", surface.ov.filled, want)
	}
}
