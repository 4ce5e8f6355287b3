package worldview

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSource delivers key and pointer events to at most one key controller
// and one mouse controller. Passing nil detaches.
type InputSource interface {
	SetKeyControl(c KeyController)
	SetMouseControl(c MouseController)
}

// EventType identifies an input event.
type EventType uint8

const (
	EventKeyDown EventType = iota + 1
	EventKeyUp
	EventPointerDown
	EventPointerMove
	EventPointerUp
	EventWheel
	EventFocus
	EventBlur
)

var eventTypeNames = [...]string{
	EventKeyDown:     "keydown",
	EventKeyUp:       "keyup",
	EventPointerDown: "pointerdown",
	EventPointerMove: "pointermove",
	EventPointerUp:   "pointerup",
	EventWheel:       "wheel",
	EventFocus:       "focus",
	EventBlur:        "blur",
}

// String returns the DOM-style event name.
func (t EventType) String() string {
	if int(t) < len(eventTypeNames) && eventTypeNames[t] != "" {
		return eventTypeNames[t]
	}
	return "unknown"
}

// Event is a single input event in screen coordinates. Key is used by key
// events; Button and Time by pointer down/up; Magnitude by wheel events, where
// positive values scroll down, as DOM deltaY does.
type Event struct {
	Type      EventType
	Key       Keystroke
	Button    MouseButton
	Time      time.Time
	X, Y      float64
	Magnitude float64
}

// --- EbitenInput ---

// EbitenInput polls Ebitengine input state once per frame and routes it to
// the active controllers. Synthetic events can be queued with the Inject
// methods; a queued pointer event replaces real pointer input for its frame.
type EbitenInput struct {
	keys  KeyController
	mouse MouseController

	aliases map[string]string
	queue   []Event
	now     func() time.Time

	keyBuf    []ebiten.Key
	cursorX   int
	cursorY   int
	hasCursor bool
	focused   bool
}

// NewEbitenInput creates a poller. aliases maps Ebitengine key names to the
// names delivered to controllers, e.g. "Equal" to "ZoomIn".
func NewEbitenInput(aliases map[string]string) *EbitenInput {
	return &EbitenInput{aliases: aliases, now: time.Now, focused: true}
}

// SetKeyControl implements InputSource.
func (in *EbitenInput) SetKeyControl(c KeyController) { in.keys = c }

// SetMouseControl implements InputSource.
func (in *EbitenInput) SetMouseControl(c MouseController) { in.mouse = c }

// SetAliases replaces the key alias map.
func (in *EbitenInput) SetAliases(aliases map[string]string) { in.aliases = aliases }

// SetClock replaces the clock used to stamp events without a time.
func (in *EbitenInput) SetClock(now func() time.Time) { in.now = now }

// Pending returns the number of queued synthetic events.
func (in *EbitenInput) Pending() int { return len(in.queue) }

// keyName maps an Ebitengine key name through the alias table.
func (in *EbitenInput) keyName(name string) string {
	if alias, ok := in.aliases[name]; ok {
		return alias
	}
	return name
}

// Dispatch delivers e to the active controller. Malformed events (a key event
// without a name, an unknown type) and events with no controller attached are
// ignored and return false.
func (in *EbitenInput) Dispatch(e Event) bool {
	if e.Time.IsZero() {
		e.Time = in.now()
	}
	switch e.Type {
	case EventKeyDown, EventKeyUp:
		if e.Key.Name == "" || in.keys == nil {
			return false
		}
		if e.Type == EventKeyDown {
			return in.keys.KeyDown(e.Key)
		}
		return in.keys.KeyUp(e.Key)
	case EventPointerDown, EventPointerMove, EventPointerUp, EventWheel, EventFocus, EventBlur:
		if in.mouse == nil {
			return false
		}
	default:
		return false
	}
	switch e.Type {
	case EventPointerDown:
		return in.mouse.MouseDown(e.Button, e.Time, e.X, e.Y)
	case EventPointerMove:
		return in.mouse.MouseMove(e.X, e.Y)
	case EventPointerUp:
		return in.mouse.MouseUp(e.Button, e.Time, e.X, e.Y)
	case EventWheel:
		return in.mouse.Wheel(e.Magnitude, e.X, e.Y)
	case EventFocus:
		in.mouse.Focus()
	case EventBlur:
		in.mouse.Blur()
	}
	return false
}

// --- Injection ---

// Inject queues e for a later Poll.
func (in *EbitenInput) Inject(e Event) {
	in.queue = append(in.queue, e)
}

// InjectKey queues a key press or release. name is delivered verbatim.
func (in *EbitenInput) InjectKey(name string, down bool) {
	t := EventKeyUp
	if down {
		t = EventKeyDown
	}
	in.Inject(Event{Type: t, Key: Keystroke{Name: name}})
}

// InjectPointer queues a pointer event at screen coordinates (left button).
func (in *EbitenInput) InjectPointer(t EventType, x, y float64) {
	in.Inject(Event{Type: t, Button: MouseButtonLeft, X: x, Y: y})
}

// InjectWheel queues a wheel event at screen coordinates.
func (in *EbitenInput) InjectWheel(mag, x, y float64) {
	in.Inject(Event{Type: EventWheel, Magnitude: mag, X: x, Y: y})
}

// InjectDrag queues a press at (fromX, fromY), frames-2 interpolated moves
// and a release at (toX, toY). The sequence consumes frames polls; the
// minimum is 2.
func (in *EbitenInput) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.InjectPointer(EventPointerDown, fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		in.InjectPointer(EventPointerMove, fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	in.InjectPointer(EventPointerUp, toX, toY)
}

// popInjected dispatches queued key events and at most one queued pointer
// event. It reports whether a pointer event was taken.
func (in *EbitenInput) popInjected() (handled, pointer bool) {
	for len(in.queue) > 0 {
		e := in.queue[0]
		isKey := e.Type == EventKeyDown || e.Type == EventKeyUp
		if !isKey && pointer {
			break
		}
		copy(in.queue, in.queue[1:])
		in.queue = in.queue[:len(in.queue)-1]
		if in.Dispatch(e) {
			handled = true
		}
		if !isKey {
			pointer = true
		}
	}
	return handled, pointer
}

// --- Polling ---

var ebitenButtons = [...]struct {
	ebiten ebiten.MouseButton
	button MouseButton
}{
	{ebiten.MouseButtonLeft, MouseButtonLeft},
	{ebiten.MouseButtonRight, MouseButtonRight},
	{ebiten.MouseButtonMiddle, MouseButtonMiddle},
}

func currentModifiers() KeyModifiers {
	var m KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		m |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		m |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		m |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		m |= ModMeta
	}
	return m
}

// Poll reads this frame's Ebitengine input and dispatches it, after any
// injected events. It must be called from ebiten.Game.Update. It returns true
// if any controller consumed an event.
func (in *EbitenInput) Poll() bool {
	handled, injectedPointer := in.popInjected()
	now := in.now()

	if focused := ebiten.IsFocused(); focused != in.focused {
		in.focused = focused
		t := EventBlur
		if focused {
			t = EventFocus
		}
		in.Dispatch(Event{Type: t, Time: now})
	}

	mods := currentModifiers()
	in.keyBuf = inpututil.AppendJustPressedKeys(in.keyBuf[:0])
	for _, k := range in.keyBuf {
		if in.Dispatch(Event{Type: EventKeyDown, Key: Keystroke{Name: in.keyName(k.String()), Modifiers: mods}, Time: now}) {
			handled = true
		}
	}
	in.keyBuf = inpututil.AppendJustReleasedKeys(in.keyBuf[:0])
	for _, k := range in.keyBuf {
		if in.Dispatch(Event{Type: EventKeyUp, Key: Keystroke{Name: in.keyName(k.String()), Modifiers: mods}, Time: now}) {
			handled = true
		}
	}

	if injectedPointer {
		return handled
	}

	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	if !in.hasCursor || cx != in.cursorX || cy != in.cursorY {
		in.cursorX, in.cursorY, in.hasCursor = cx, cy, true
		if in.Dispatch(Event{Type: EventPointerMove, X: x, Y: y, Time: now}) {
			handled = true
		}
	}
	for _, b := range ebitenButtons {
		if inpututil.IsMouseButtonJustPressed(b.ebiten) {
			if in.Dispatch(Event{Type: EventPointerDown, Button: b.button, X: x, Y: y, Time: now}) {
				handled = true
			}
		}
		if inpututil.IsMouseButtonJustReleased(b.ebiten) {
			if in.Dispatch(Event{Type: EventPointerUp, Button: b.button, X: x, Y: y, Time: now}) {
				handled = true
			}
		}
	}
	// Ebitengine reports positive dy for scrolling up.
	if _, dy := ebiten.Wheel(); dy != 0 {
		if in.Dispatch(Event{Type: EventWheel, Magnitude: -dy, X: x, Y: y, Time: now}) {
			handled = true
		}
	}
	return handled
}
