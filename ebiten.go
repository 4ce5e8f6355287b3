package worldview

import (
	"bytes"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// EbitenSurface is a Surface backed by two persistent offscreen images: a base
// layer standing in for the GPU canvas and a transparent overlay for 2D
// drawing. Present composites both onto the screen, so frames that skip
// rendering keep their previous pixels.
type EbitenSurface struct {
	width, height int
	base          *ebiten.Image
	overlay       *EbitenOverlay
	gpu           *EbitenGPU
}

// NewEbitenSurface creates a surface of the given pixel size.
func NewEbitenSurface(width, height int) *EbitenSurface {
	s := &EbitenSurface{
		overlay: newEbitenOverlay(),
		gpu:     &EbitenGPU{},
	}
	s.Resize(width, height)
	return s
}

// Resize reallocates the layers when the size changes. It reports whether it
// did; the contents of resized layers are lost.
func (s *EbitenSurface) Resize(width, height int) bool {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if s.base != nil && width == s.width && height == s.height {
		return false
	}
	if s.base != nil {
		s.base.Deallocate()
		s.overlay.dst.Deallocate()
	}
	s.width, s.height = width, height
	s.base = ebiten.NewImage(width, height)
	s.overlay.dst = ebiten.NewImage(width, height)
	s.gpu.dst = s.base
	return true
}

// Width implements Surface.
func (s *EbitenSurface) Width() float64 { return float64(s.width) }

// Height implements Surface.
func (s *EbitenSurface) Height() float64 { return float64(s.height) }

// Overlay implements Surface.
func (s *EbitenSurface) Overlay() (Overlay, bool) { return s.overlay, true }

// GPU implements Surface.
func (s *EbitenSurface) GPU() (GPUContext, bool) { return s.gpu, true }

// Container implements Surface. Ebitengine has no DOM layer.
func (s *EbitenSurface) Container() (StyleTarget, bool) { return nil, false }

// EbitenOverlay returns the concrete overlay, e.g. to register fonts.
func (s *EbitenSurface) EbitenOverlay() *EbitenOverlay { return s.overlay }

// Present draws the base layer and then the overlay onto screen.
func (s *EbitenSurface) Present(screen *ebiten.Image) {
	screen.DrawImage(s.base, nil)
	screen.DrawImage(s.overlay.dst, nil)
}

// --- EbitenGPU ---

// EbitenGPU is the base layer's GPUContext. Ebitengine restores lost graphics
// contexts itself, so loss is only reported after MarkLost.
type EbitenGPU struct {
	dst  *ebiten.Image
	lost bool
}

// IsContextLost implements GPUContext.
func (g *EbitenGPU) IsContextLost() bool { return g.lost }

// MarkLost sets the reported context-loss state.
func (g *EbitenGPU) MarkLost(lost bool) { g.lost = lost }

// Clear fills the base layer with c.
func (g *EbitenGPU) Clear(c Color) {
	if g.dst == nil {
		return
	}
	g.dst.Fill(c.RGBA())
}

// --- EbitenOverlay ---

var defaultFontSource *text.GoTextFaceSource

func loadDefaultFont() *text.GoTextFaceSource {
	if defaultFontSource == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			panic(fmt.Sprintf("worldview: failed to parse built-in font: %v", err))
		}
		defaultFontSource = src
	}
	return defaultFontSource
}

// outlineOffsets are the unit directions of the 8-way outline pass.
var outlineOffsets = [8][2]float64{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

// EbitenOverlay implements Overlay on an ebiten.Image with text/v2. Unknown
// font families fall back to Go Regular.
type EbitenOverlay struct {
	dst       *ebiten.Image
	geo       ebiten.GeoM
	fonts     map[string]*text.GoTextFaceSource
	face      *text.GoTextFace
	lineWidth float64
}

func newEbitenOverlay() *EbitenOverlay {
	return &EbitenOverlay{
		fonts:     make(map[string]*text.GoTextFaceSource),
		face:      &text.GoTextFace{Source: loadDefaultFont(), Size: 16},
		lineWidth: 1,
	}
}

// RegisterFont parses TTF/OTF data and makes it available under family.
func (o *EbitenOverlay) RegisterFont(family string, ttfData []byte) error {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return fmt.Errorf("worldview: failed to parse font %q: %w", family, err)
	}
	o.fonts[family] = src
	return nil
}

// Image returns the overlay's backing image.
func (o *EbitenOverlay) Image() *ebiten.Image { return o.dst }

// ResetTransform implements Overlay.
func (o *EbitenOverlay) ResetTransform() { o.geo.Reset() }

// Translate implements Overlay.
func (o *EbitenOverlay) Translate(x, y float64) { o.geo.Translate(x, y) }

// Scale implements Overlay.
func (o *EbitenOverlay) Scale(sx, sy float64) { o.geo.Scale(sx, sy) }

// ClearRect implements Overlay.
func (o *EbitenOverlay) ClearRect(x, y, w, h float64) {
	r := image.Rect(int(x), int(y), int(x+w+0.5), int(y+h+0.5)).Intersect(o.dst.Bounds())
	if r.Empty() {
		return
	}
	if r == o.dst.Bounds() {
		o.dst.Clear()
		return
	}
	o.dst.SubImage(r).(*ebiten.Image).Clear()
}

// FillRect implements Overlay. The rectangle is in transformed coordinates.
func (o *EbitenOverlay) FillRect(x, y, w, h float64, c Color) {
	x0, y0 := o.geo.Apply(x, y)
	x1, y1 := o.geo.Apply(x+w, y+h)
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	vector.DrawFilledRect(o.dst, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), c.RGBA(), false)
}

// SetFont implements Overlay.
func (o *EbitenOverlay) SetFont(size float64, family string) {
	src, ok := o.fonts[family]
	if !ok {
		src = loadDefaultFont()
	}
	if size <= 0 {
		size = 1
	}
	o.face = &text.GoTextFace{Source: src, Size: size}
}

// MeasureText implements Overlay.
func (o *EbitenOverlay) MeasureText(s string) TextMetrics {
	m := o.face.Metrics()
	w, _ := text.Measure(s, o.face, m.HAscent+m.HDescent+m.HLineGap)
	return TextMetrics{Width: w, Ascent: m.HAscent, Descent: m.HDescent}
}

// SetLineWidth implements Overlay.
func (o *EbitenOverlay) SetLineWidth(w float64) { o.lineWidth = w }

func (o *EbitenOverlay) drawText(s string, x, y float64, c Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(o.geo)
	op.ColorScale.ScaleWithColor(c.RGBA())
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	text.Draw(o.dst, s, o.face, op)
}

// StrokeText draws an outline of half the line width by offsetting the text
// in 8 directions.
func (o *EbitenOverlay) StrokeText(s string, x, y float64, c Color) {
	t := o.lineWidth / 2
	if t <= 0 {
		return
	}
	for _, off := range outlineOffsets {
		o.drawText(s, x+off[0]*t, y+off[1]*t, c)
	}
}

// FillText implements Overlay.
func (o *EbitenOverlay) FillText(s string, x, y float64, c Color) {
	o.drawText(s, x, y, c)
}
