package worldview

import (
	"math"
	"sort"
)

// --- Occluder ---

// Occluder accepts rectangles greedily: a rectangle is accepted only if it
// falls within the bounding region and neither overlaps nor nests with any of
// the rectangles accepted before it. Nesting catches empty rectangles, which
// share no area with anything.
type Occluder struct {
	bounds   Rect
	accepted []Rect
}

// NewOccluder creates an occluder scoped to bounds.
func NewOccluder(bounds Rect) *Occluder {
	return &Occluder{bounds: bounds}
}

// Bounds returns the bounding region.
func (o *Occluder) Bounds() Rect {
	return o.bounds
}

// Clear forgets all accepted rectangles.
func (o *Occluder) Clear() {
	o.accepted = o.accepted[:0]
}

// Accepted returns the accepted rectangles in acceptance order. The returned
// slice MUST NOT be mutated.
func (o *Occluder) Accepted() []Rect {
	return o.accepted
}

// Occlude tests r and records it if accepted.
func (o *Occluder) Occlude(r Rect) bool {
	if !o.bounds.Overlaps(r) {
		return false
	}
	for _, a := range o.accepted {
		if a.Overlaps(r) || a.ContainsRect(r) || r.ContainsRect(a) {
			return false
		}
	}
	o.accepted = append(o.accepted, r)
	return true
}

// --- Label ---

// Label is a screen-space text annotation anchored at a world position.
type Label struct {
	Text string
	X, Y float64
	// Size is the on-screen pixel size.
	Size float64
	// Scale is the visibility threshold: the label is hidden once the render
	// scale reaches Scale * the set's scale multiplier.
	Scale       float64
	Color       Color
	StrokeColor *Color
}

// stroke returns the outline color: the explicit stroke color, else white on
// dark fills and black on light ones.
func (l *Label) stroke() Color {
	if l.StrokeColor != nil {
		return *l.StrokeColor
	}
	if l.Color.Luminance() < 0.1 {
		return ColorWhite
	}
	return ColorBlack
}

// --- LabelSet ---

const (
	defaultLabelLineWidth = 2
	defaultLabelFont      = "sans-serif"
)

// LabelSet collects the label candidates of one paint cycle and declutters
// them at render time. Labels do not persist across frames; scenes clear and
// refill the set when they paint.
type LabelSet struct {
	labels          []Label
	order           []int
	lineWidth       float64
	font            string
	scaleMultiplier float64
}

// NewLabelSet creates an empty set with line width 2, font "sans-serif" and a
// scale multiplier of 1.
func NewLabelSet() *LabelSet {
	return &LabelSet{
		lineWidth:       defaultLabelLineWidth,
		font:            defaultLabelFont,
		scaleMultiplier: 1,
	}
}

// Draw adds a label candidate in the given fill color.
func (s *LabelSet) Draw(text string, x, y, size, scale float64, color Color) {
	s.labels = append(s.labels, Label{Text: text, X: x, Y: y, Size: size, Scale: scale, Color: color})
}

// Add adds a fully specified label candidate.
func (s *LabelSet) Add(l Label) {
	s.labels = append(s.labels, l)
}

// Clear removes all candidates.
func (s *LabelSet) Clear() {
	s.labels = s.labels[:0]
}

// Len returns the number of candidates.
func (s *LabelSet) Len() int {
	return len(s.labels)
}

// Labels returns the candidates in insertion order. The returned slice MUST NOT be mutated.
func (s *LabelSet) Labels() []Label {
	return s.labels
}

// LineWidth returns the outline width in screen pixels.
func (s *LabelSet) LineWidth() float64 { return s.lineWidth }

// SetLineWidth sets the outline width in screen pixels.
func (s *LabelSet) SetLineWidth(w float64) { s.lineWidth = w }

// Font returns the font family.
func (s *LabelSet) Font() string { return s.font }

// SetFont sets the font family.
func (s *LabelSet) SetFont(font string) { s.font = font }

// ScaleMultiplier returns the divisor applied to the render scale before the
// visibility threshold test.
func (s *LabelSet) ScaleMultiplier() float64 { return s.scaleMultiplier }

// SetScaleMultiplier sets the visibility divisor. Values <= 0 reset it to 1.
func (s *LabelSet) SetScaleMultiplier(m float64) {
	if m <= 0 {
		m = 1
	}
	s.scaleMultiplier = m
}

// sortBySize orders candidate indices by size, largest first, keeping
// insertion order among equal sizes.
func (s *LabelSet) sortBySize() []int {
	s.order = s.order[:0]
	for i := range s.labels {
		s.order = append(s.order, i)
	}
	sort.SliceStable(s.order, func(a, b int) bool {
		return s.labels[s.order[a]].Size > s.labels[s.order[b]].Size
	})
	return s.order
}

func (s *LabelSet) fontSize(l *Label, scale float64) float64 {
	return math.Round(l.Size / scale)
}

// Render declutters the candidates over region (world units) at the given
// render scale and draws the survivors, largest first. It returns the labels
// that were drawn.
//
// A label is skipped without measurement when its Scale threshold is at or
// below scale / ScaleMultiplier. Surviving labels are measured with the
// surface's overlay and submitted to an Occluder; accepted labels are stroked
// then filled.
func (s *LabelSet) Render(surface Surface, region Rect, scale float64) []Label {
	ov, ok := surface.Overlay()
	if !ok || len(s.labels) == 0 || scale <= 0 {
		return nil
	}
	threshold := scale / s.scaleMultiplier
	occluder := NewOccluder(region)
	var drawn []Label
	for _, i := range s.sortBySize() {
		l := &s.labels[i]
		if l.Scale <= threshold {
			continue
		}
		ov.SetFont(s.fontSize(l, scale), s.font)
		m := ov.MeasureText(l.Text)
		w, h := m.Width, m.Height()
		if occluder.Occlude(Rect{X: l.X - w/2, Y: l.Y - h/2, Width: w, Height: h}) {
			drawn = append(drawn, *l)
		}
	}
	for i := range drawn {
		l := &drawn[i]
		ov.SetFont(s.fontSize(l, scale), s.font)
		ov.SetLineWidth(s.lineWidth / scale)
		ov.StrokeText(l.Text, l.X, l.Y, l.stroke())
		ov.FillText(l.Text, l.X, l.Y, l.Color)
	}
	return drawn
}
