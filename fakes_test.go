package worldview

import (
	"fmt"
	"time"
)

// --- Recording surface ---

type recSurface struct {
	w, h  float64
	ov    *recOverlay
	gpu   *recGPU
	style *recStyle
}

func newRecSurface(w, h float64) *recSurface {
	return &recSurface{w: w, h: h, ov: &recOverlay{}, gpu: &recGPU{}}
}

func (s *recSurface) Width() float64  { return s.w }
func (s *recSurface) Height() float64 { return s.h }

func (s *recSurface) Overlay() (Overlay, bool) {
	if s.ov == nil {
		return nil, false
	}
	return s.ov, true
}

func (s *recSurface) GPU() (GPUContext, bool) {
	if s.gpu == nil {
		return nil, false
	}
	return s.gpu, true
}

func (s *recSurface) Container() (StyleTarget, bool) {
	if s.style == nil {
		return nil, false
	}
	return s.style, true
}

type recGPU struct {
	lost   bool
	clears []Color
}

func (g *recGPU) IsContextLost() bool { return g.lost }
func (g *recGPU) Clear(c Color)       { g.clears = append(g.clears, c) }

type recStyle struct {
	transforms  []string
	backgrounds []string
}

func (s *recStyle) SetTransform(css string)       { s.transforms = append(s.transforms, css) }
func (s *recStyle) SetBackgroundColor(css string) { s.backgrounds = append(s.backgrounds, css) }

// recOverlay records draw calls. Text measures half the font size per byte in
// width and exactly the font size in height.
type recOverlay struct {
	ops      []string
	fontSize float64
	measured []string
	stroked  []string
	filled   []string
	strokes  []Color
}

func (o *recOverlay) record(format string, args ...any) {
	o.ops = append(o.ops, fmt.Sprintf(format, args...))
}

func (o *recOverlay) ResetTransform()        { o.record("reset") }
func (o *recOverlay) Translate(x, y float64) { o.record("translate %g %g", x, y) }
func (o *recOverlay) Scale(sx, sy float64)   { o.record("scale %g %g", sx, sy) }
func (o *recOverlay) ClearRect(x, y, w, h float64) {
	o.record("clear %g %g %g %g", x, y, w, h)
}
func (o *recOverlay) FillRect(x, y, w, h float64, c Color) {
	o.record("fillrect %g %g %g %g", x, y, w, h)
}
func (o *recOverlay) SetFont(size float64, family string) {
	o.fontSize = size
	o.record("font %g %s", size, family)
}
func (o *recOverlay) MeasureText(s string) TextMetrics {
	o.measured = append(o.measured, s)
	return TextMetrics{
		Width:   float64(len(s)) * o.fontSize / 2,
		Ascent:  o.fontSize * 0.8,
		Descent: o.fontSize * 0.2,
	}
}
func (o *recOverlay) SetLineWidth(w float64) { o.record("linewidth %g", w) }
func (o *recOverlay) StrokeText(s string, x, y float64, c Color) {
	o.stroked = append(o.stroked, s)
	o.strokes = append(o.strokes, c)
	o.record("stroke %s", s)
}
func (o *recOverlay) FillText(s string, x, y float64, c Color) {
	o.filled = append(o.filled, s)
	o.record("fill %s", s)
}

// --- Probe renderable ---

// probe is a WorldRenderable with canned results that counts its calls and
// appends "name.phase" entries to a shared log.
type probe struct {
	name   string
	log    *[]string
	update Signal

	tickResult, paintResult, renderResult bool

	ticks, paints, renders, unmounts int
	lastTimeout                      time.Duration
	world                            *WorldTransform
	onRender                         func()
}

func newProbe(name string, log *[]string) *probe {
	return &probe{name: name, log: log}
}

func (p *probe) note(phase string) {
	if p.log != nil {
		*p.log = append(*p.log, p.name+"."+phase)
	}
}

func (p *probe) SetOnScheduleUpdate(fn UpdateFunc, owner any) { p.update.Set(fn, owner) }

func (p *probe) Tick(time.Time) bool {
	p.ticks++
	p.note("tick")
	return p.tickResult
}

func (p *probe) Paint(timeout time.Duration) bool {
	p.paints++
	p.lastTimeout = timeout
	p.note("paint")
	return p.paintResult
}

func (p *probe) Render() bool {
	p.renders++
	p.note("render")
	if p.onRender != nil {
		p.onRender()
	}
	return p.renderResult
}

func (p *probe) Unmount() {
	p.unmounts++
	p.note("unmount")
}

func (p *probe) SetWorldTransform(w *WorldTransform) { p.world = w }

// --- Probe controllers ---

type keyProbe struct {
	name    string
	log     *[]string
	consume bool
	ticked  bool
	update  Signal
	downs   []string
	ups     []string
}

func (k *keyProbe) SetOnScheduleUpdate(fn UpdateFunc, owner any) { k.update.Set(fn, owner) }
func (k *keyProbe) Tick(time.Time) bool                          { return k.ticked }

func (k *keyProbe) KeyDown(e Keystroke) bool {
	k.downs = append(k.downs, e.Name)
	if k.log != nil {
		*k.log = append(*k.log, k.name)
	}
	return k.consume
}

func (k *keyProbe) KeyUp(e Keystroke) bool {
	k.ups = append(k.ups, e.Name)
	return k.consume
}

type mouseProbe struct {
	name    string
	log     *[]string
	consume bool
	update  Signal
	x, y    float64
	focus   int
	blur    int
	wheels  []float64
}

func (m *mouseProbe) SetOnScheduleUpdate(fn UpdateFunc, owner any) { m.update.Set(fn, owner) }
func (m *mouseProbe) Tick(time.Time) bool                          { return false }

func (m *mouseProbe) handle(x, y float64) bool {
	m.x, m.y = x, y
	if m.log != nil {
		*m.log = append(*m.log, m.name)
	}
	return m.consume
}

func (m *mouseProbe) MouseDown(_ MouseButton, _ time.Time, x, y float64) bool {
	return m.handle(x, y)
}
func (m *mouseProbe) MouseMove(x, y float64) bool { return m.handle(x, y) }
func (m *mouseProbe) MouseUp(_ MouseButton, _ time.Time, x, y float64) bool {
	return m.handle(x, y)
}
func (m *mouseProbe) Wheel(mag, x, y float64) bool {
	m.wheels = append(m.wheels, mag)
	return m.handle(x, y)
}
func (m *mouseProbe) Focus()              { m.focus++ }
func (m *mouseProbe) Blur()               { m.blur++ }
func (m *mouseProbe) LastMouseX() float64 { return m.x }
func (m *mouseProbe) LastMouseY() float64 { return m.y }

// counter returns an UpdateFunc that counts its calls.
func counter(n *int) UpdateFunc {
	return func(any) { *n++ }
}
