package worldview

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// statusInterval is how often the FPS sample is refreshed.
const statusInterval = 500 * time.Millisecond

// WorldSource exposes the transform of the most recent render pass.
// Viewport implements it.
type WorldSource interface {
	WorldTransform() *WorldTransform
}

// StatusScene draws a screen-space readout of the camera scale, origin and
// frame rate in the top-left corner. It reads the cached world transform of
// its source, so it never recomputes camera state.
type StatusScene struct {
	surface Surface
	source  WorldSource
	update  Signal

	// FPS returns the current frame rate. Defaults to ebiten.ActualFPS.
	FPS        func() float64
	Color      Color
	Background Color
	FontSize   float64

	fps        float64
	lastSample time.Time
	lines      [2]string
}

// NewStatusScene creates a status readout for source drawn on surface.
func NewStatusScene(surface Surface, source WorldSource) *StatusScene {
	return &StatusScene{
		surface:    surface,
		source:     source,
		FPS:        ebiten.ActualFPS,
		Color:      ColorWhite,
		Background: Color{0, 0, 0, 0.5},
		FontSize:   13,
	}
}

// SetOnScheduleUpdate implements Scheduler.
func (s *StatusScene) SetOnScheduleUpdate(fn UpdateFunc, owner any) { s.update.Set(fn, owner) }

// SetWorldTransform implements Transformed. The readout uses its source.
func (s *StatusScene) SetWorldTransform(*WorldTransform) {}

// Tick samples the frame rate every half second and schedules an update when
// the displayed value changes.
func (s *StatusScene) Tick(cycleStart time.Time) bool {
	if !s.lastSample.IsZero() && cycleStart.Sub(s.lastSample) < statusInterval {
		return false
	}
	s.lastSample = cycleStart
	fps := s.FPS()
	if fmt.Sprintf("%.1f", fps) != fmt.Sprintf("%.1f", s.fps) {
		s.fps = fps
		s.update.Fire()
	}
	return false
}

// Paint formats the readout lines.
func (s *StatusScene) Paint(time.Duration) bool {
	w := s.source.WorldTransform()
	if w == nil {
		s.lines[0] = "scale: -"
	} else {
		s.lines[0] = fmt.Sprintf("scale: %.4g  origin: (%.1f, %.1f)", w.Scale(), w.X(), w.Y())
	}
	s.lines[1] = fmt.Sprintf("FPS: %.1f", s.fps)
	return false
}

// Lines returns the most recently painted readout.
func (s *StatusScene) Lines() []string {
	return s.lines[:]
}

// Render draws the readout in screen space.
func (s *StatusScene) Render() bool {
	ov, ok := s.surface.Overlay()
	if !ok {
		return false
	}
	// The world transform may have changed since Paint.
	s.Paint(0)

	ov.ResetTransform()
	ov.SetFont(s.FontSize, defaultLabelFont)
	const pad = 4
	var width, lineHeight float64
	for _, l := range s.lines {
		m := ov.MeasureText(l)
		width = max(width, m.Width)
		lineHeight = max(lineHeight, m.Height())
	}
	ov.FillRect(0, 0, width+2*pad, float64(len(s.lines))*lineHeight+2*pad, s.Background)
	for i, l := range s.lines {
		m := ov.MeasureText(l)
		ov.FillText(l, pad+m.Width/2, pad+lineHeight*(float64(i)+0.5), s.Color)
	}
	return false
}

// Unmount implements Unmounter.
func (s *StatusScene) Unmount() {}
