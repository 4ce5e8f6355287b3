package worldview

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	defaultPaintBudget = 12 * time.Millisecond
	defaultSlowFrame   = 50 * time.Millisecond
)

// BeltStats counts TimingBelt activity.
type BeltStats struct {
	Frames    uint64        // Cycle calls
	Cycles    uint64        // frames that ran tick/paint/render
	Rearmed   uint64        // cycles that reported pending work
	LastCycle time.Duration // wall time of the last cycle that ran
}

// TimingBelt is the frame pump. Each frame it runs tick, paint and render, in
// that order, on every registered Renderable, but only when one of their
// schedule signals has fired since the previous frame.
type TimingBelt struct {
	renderables []Renderable
	scheduled   bool
	paintBudget time.Duration
	slowFrame   time.Duration
	logger      *log.Logger
	stats       BeltStats
	now         func() time.Time
}

// BeltOption configures a TimingBelt.
type BeltOption func(*TimingBelt)

// WithBeltLogger sets the belt's logger.
func WithBeltLogger(l *log.Logger) BeltOption {
	return func(b *TimingBelt) { b.logger = l }
}

// WithBeltClock replaces the clock used to time cycles.
func WithBeltClock(now func() time.Time) BeltOption {
	return func(b *TimingBelt) { b.now = now }
}

// NewTimingBelt creates an empty belt with a 12ms paint budget.
func NewTimingBelt(opts ...BeltOption) *TimingBelt {
	b := &TimingBelt{
		paintBudget: defaultPaintBudget,
		slowFrame:   defaultSlowFrame,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = defaultLogger()
	}
	return b
}

// SetPaintBudget sets the total paint timeout per frame, split evenly across
// renderables. Zero means unbounded.
func (b *TimingBelt) SetPaintBudget(d time.Duration) {
	if d < 0 {
		d = 0
	}
	b.paintBudget = d
}

// PaintBudget returns the total paint timeout per frame.
func (b *TimingBelt) PaintBudget() time.Duration { return b.paintBudget }

// SetSlowFrame sets the cycle duration above which a warning is logged.
func (b *TimingBelt) SetSlowFrame(d time.Duration) { b.slowFrame = d }

// Stats returns the activity counters.
func (b *TimingBelt) Stats() BeltStats { return b.stats }

// Len returns the number of registered renderables.
func (b *TimingBelt) Len() int { return len(b.renderables) }

// AddRenderable registers r, wires its schedule signal to the belt and
// schedules a frame. Adding a registered renderable only schedules.
func (b *TimingBelt) AddRenderable(r Renderable) {
	if r == nil {
		panic("worldview: cannot add nil renderable")
	}
	for _, have := range b.renderables {
		if have == r {
			b.ScheduleUpdate()
			return
		}
	}
	b.renderables = append(b.renderables, r)
	r.SetOnScheduleUpdate(func(any) { b.ScheduleUpdate() }, b)
	b.ScheduleUpdate()
}

// RemoveRenderable unregisters r and clears its schedule signal. It reports
// whether r was registered.
func (b *TimingBelt) RemoveRenderable(r Renderable) bool {
	for i, have := range b.renderables {
		if have == r {
			r.SetOnScheduleUpdate(nil, nil)
			b.renderables = append(b.renderables[:i], b.renderables[i+1:]...)
			return true
		}
	}
	return false
}

// ScheduleUpdate requests a cycle on the next frame.
func (b *TimingBelt) ScheduleUpdate() {
	b.scheduled = true
}

// Scheduled reports whether a cycle is pending.
func (b *TimingBelt) Scheduled() bool { return b.scheduled }

// Cycle runs one frame at time now. It does nothing unless a cycle was
// scheduled. It returns true if any phase of any renderable reported pending
// work, in which case the next frame is scheduled too.
func (b *TimingBelt) Cycle(now time.Time) bool {
	b.stats.Frames++
	if !b.scheduled {
		return false
	}
	b.scheduled = false
	b.stats.Cycles++
	start := b.now()

	needsUpdate := false
	for _, r := range b.renderables {
		needsUpdate = r.Tick(now) || needsUpdate
	}
	var share time.Duration
	if n := len(b.renderables); n > 0 {
		share = b.paintBudget / time.Duration(n)
	}
	for _, r := range b.renderables {
		needsUpdate = r.Paint(share) || needsUpdate
	}
	for _, r := range b.renderables {
		needsUpdate = r.Render() || needsUpdate
	}

	if needsUpdate {
		b.stats.Rearmed++
		b.scheduled = true
	}
	elapsed := b.now().Sub(start)
	b.stats.LastCycle = elapsed
	if b.slowFrame > 0 && elapsed > b.slowFrame {
		b.logger.Warn("slow frame", "elapsed", elapsed, "renderables", len(b.renderables))
	} else {
		b.logger.Debug("frame", "elapsed", elapsed, "needsUpdate", needsUpdate)
	}
	return needsUpdate
}

// --- Ebitengine adapter ---

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	// ShowFPS adds a StatusScene in front of the viewport's scenes. The
	// viewport.show_status setting does the same.
	ShowFPS bool
}

// Game adapts a TimingBelt driving a Viewport on an EbitenSurface to
// ebiten.Game.
type Game struct {
	// ScreenshotDir is where Screenshot writes files. Defaults to
	// "screenshots".
	ScreenshotDir string
	// CaptureFormat encodes screenshots. Defaults to PNG.
	CaptureFormat CaptureFormat
	// OnCapture, if set, receives every screenshot result on the game
	// goroutine instead of the viewport logger.
	OnCapture func(Capture)

	viewport    *Viewport
	surface     *EbitenSurface
	input       *EbitenInput
	belt        *TimingBelt
	posted      chan func()
	done        chan struct{}
	doneOnce    sync.Once
	stopped     atomic.Bool
	shotPending bool
	shotSeq     int
}

// postQueueSize bounds the functions waiting for the next Update.
const postQueueSize = 16

// NewGame wires vp, whose surface must be surface, into a new belt with input
// attached.
func NewGame(vp *Viewport, surface *EbitenSurface, input *EbitenInput) *Game {
	belt := NewTimingBelt(WithBeltLogger(vp.Logger()))
	if d := vp.Config().Viewport.PaintBudget; d > 0 {
		belt.SetPaintBudget(d)
	}
	vp.AttachInput(input)
	belt.AddRenderable(vp)
	return &Game{
		ScreenshotDir: "screenshots",
		CaptureFormat: CapturePNG,
		viewport:      vp,
		surface:       surface,
		input:         input,
		belt:          belt,
		posted:        make(chan func(), postQueueSize),
		done:          make(chan struct{}),
	}
}

// Belt returns the game's frame pump.
func (g *Game) Belt() *TimingBelt { return g.belt }

// Input returns the game's input poller.
func (g *Game) Input() *EbitenInput { return g.input }

// Post queues fn to run on the game goroutine at the start of the next
// Update. It is safe to call from any goroutine, including the game's own,
// and never blocks: it reports false and drops fn when the queue is full or
// the game has finished.
func (g *Game) Post(fn func()) bool {
	select {
	case <-g.done:
		return false
	default:
	}
	select {
	case g.posted <- fn:
		return true
	default:
		g.viewport.Logger().Warn("post queue full, dropping function", "size", postQueueSize)
		return false
	}
}

// Done is closed once the game loop has ended.
func (g *Game) Done() <-chan struct{} { return g.done }

func (g *Game) finish() {
	g.doneOnce.Do(func() { close(g.done) })
}

func (g *Game) runPosted() {
	for {
		select {
		case fn := <-g.posted:
			fn()
		default:
			return
		}
	}
}

// Stop ends the game loop on the next Update. It is safe to call from any
// goroutine.
func (g *Game) Stop() {
	g.stopped.Store(true)
}

// Update runs posted functions, polls input and runs a belt cycle.
func (g *Game) Update() error {
	g.runPosted()
	if g.stopped.Load() {
		g.finish()
		return ebiten.Termination
	}
	g.input.Poll()
	g.belt.Cycle(time.Now())
	return nil
}

// Draw presents the surface layers and writes queued screenshots.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Present(screen)
	g.flushScreenshots(screen)
}

// Layout resizes the surface to the window and schedules a repaint when the
// size changed.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.surface.Resize(outsideWidth, outsideHeight) {
		g.viewport.ScheduleRepaint()
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and drives vp until the window closes. vp must have been
// created on an EbitenSurface.
func Run(vp *Viewport, cfg RunConfig) error {
	surface, ok := vp.Surface().(*EbitenSurface)
	if !ok {
		return errors.New("worldview: Run requires a viewport on an EbitenSurface")
	}
	return NewGame(vp, surface, NewEbitenInput(vp.Config().Keys.Aliases)).Run(cfg)
}

// Run opens a window and drives the game until the window closes.
func (g *Game) Run(cfg RunConfig) error {
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
		g.surface.Resize(cfg.Width, cfg.Height)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	vp := g.viewport
	if cfg.ShowFPS || vp.Config().Viewport.ShowStatus {
		vp.Scenes().AddToFront(NewStatusScene(g.surface, vp))
	}
	defer g.finish()
	return ebiten.RunGame(g)
}
