package worldview

import "time"

// KeyController handles key events. A handler returns true when it consumed
// the event.
type KeyController interface {
	Scheduler
	Ticker
	KeyDown(event Keystroke) bool
	KeyUp(event Keystroke) bool
}

// MouseController handles pointer, wheel and focus events. A handler returns
// true when it consumed the event.
type MouseController interface {
	Scheduler
	Ticker
	MouseDown(button MouseButton, downTime time.Time, x, y float64) bool
	MouseMove(x, y float64) bool
	MouseUp(button MouseButton, downTime time.Time, x, y float64) bool
	Wheel(mag, x, y float64) bool
	Focus()
	Blur()
	LastMouseX() float64
	LastMouseY() float64
}

// --- KeyControllers ---

// KeyControllers is an input composite with first-responder dispatch: the most
// recently added controller is offered each event first, and the first one to
// consume it stops propagation. Only a consumed event fires the list's signal.
type KeyControllers struct {
	List[KeyController]
}

// NewKeyControllers creates an empty key controller list.
func NewKeyControllers() *KeyControllers {
	return &KeyControllers{}
}

func (k *KeyControllers) dispatch(fn func(KeyController) bool) bool {
	if _, ok := k.firstResponder(fn); ok {
		k.ScheduleUpdate()
		return true
	}
	return false
}

// KeyDown implements KeyController.
func (k *KeyControllers) KeyDown(event Keystroke) bool {
	return k.dispatch(func(c KeyController) bool { return c.KeyDown(event) })
}

// KeyUp implements KeyController.
func (k *KeyControllers) KeyUp(event Keystroke) bool {
	return k.dispatch(func(c KeyController) bool { return c.KeyUp(event) })
}

// Tick visits every controller.
func (k *KeyControllers) Tick(cycleStart time.Time) bool {
	needsUpdate := false
	for _, c := range k.items {
		needsUpdate = c.Tick(cycleStart) || needsUpdate
	}
	return needsUpdate
}

// --- MouseControllers ---

// MouseControllers is the pointer counterpart of KeyControllers. It remembers
// the controller that last consumed an event so LastMouseX/Y report its
// position.
type MouseControllers struct {
	List[MouseController]

	focused   bool
	lastMouse MouseController
}

// NewMouseControllers creates an empty mouse controller list.
func NewMouseControllers() *MouseControllers {
	m := &MouseControllers{}
	m.onRemoved = func(c MouseController) {
		if m.lastMouse == c {
			m.lastMouse = nil
		}
	}
	return m
}

func (m *MouseControllers) dispatch(fn func(MouseController) bool) bool {
	if c, ok := m.firstResponder(fn); ok {
		m.lastMouse = c
		m.ScheduleUpdate()
		return true
	}
	return false
}

// LastResponder returns the controller that last consumed an event.
func (m *MouseControllers) LastResponder() (MouseController, bool) {
	return m.lastMouse, m.lastMouse != nil
}

// LastMouseX returns the last responder's pointer X, or 0 if none.
func (m *MouseControllers) LastMouseX() float64 {
	if m.lastMouse == nil {
		return 0
	}
	return m.lastMouse.LastMouseX()
}

// LastMouseY returns the last responder's pointer Y, or 0 if none.
func (m *MouseControllers) LastMouseY() float64 {
	if m.lastMouse == nil {
		return 0
	}
	return m.lastMouse.LastMouseY()
}

// Tick visits every controller.
func (m *MouseControllers) Tick(cycleStart time.Time) bool {
	needsUpdate := false
	for _, c := range m.items {
		needsUpdate = c.Tick(cycleStart) || needsUpdate
	}
	return needsUpdate
}

// Focus is broadcast to every controller.
func (m *MouseControllers) Focus() {
	m.focused = true
	for _, c := range m.items {
		c.Focus()
	}
}

// Blur is broadcast to every controller.
func (m *MouseControllers) Blur() {
	m.focused = false
	for _, c := range m.items {
		c.Blur()
	}
}

// Focused reports whether the last focus event was a Focus.
func (m *MouseControllers) Focused() bool {
	return m.focused
}

// MouseDown implements MouseController.
func (m *MouseControllers) MouseDown(button MouseButton, downTime time.Time, x, y float64) bool {
	return m.dispatch(func(c MouseController) bool { return c.MouseDown(button, downTime, x, y) })
}

// MouseMove implements MouseController.
func (m *MouseControllers) MouseMove(x, y float64) bool {
	return m.dispatch(func(c MouseController) bool { return c.MouseMove(x, y) })
}

// MouseUp implements MouseController.
func (m *MouseControllers) MouseUp(button MouseButton, downTime time.Time, x, y float64) bool {
	return m.dispatch(func(c MouseController) bool { return c.MouseUp(button, downTime, x, y) })
}

// Wheel implements MouseController.
func (m *MouseControllers) Wheel(mag, x, y float64) bool {
	return m.dispatch(func(c MouseController) bool { return c.Wheel(mag, x, y) })
}
