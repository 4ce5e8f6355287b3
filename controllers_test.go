package worldview

import (
	"reflect"
	"testing"
	"time"
)

func TestKeyControllersFirstResponder(t *testing.T) {
	tests := []struct {
		name      string
		consume   [3]bool // back to front
		wantLog   []string
		wantFired int
		want      bool
	}{
		{"front consumes", [3]bool{true, true, true}, []string{"c"}, 1, true},
		{"middle consumes", [3]bool{true, true, false}, []string{"c", "b"}, 1, true},
		{"back consumes", [3]bool{true, false, false}, []string{"c", "b", "a"}, 1, true},
		{"nobody consumes", [3]bool{}, []string{"c", "b", "a"}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log []string
			k := NewKeyControllers()
			for i, name := range []string{"a", "b", "c"} {
				k.AddToFront(&keyProbe{name: name, log: &log, consume: tt.consume[i]})
			}
			var fired int
			k.SetOnScheduleUpdate(counter(&fired), nil)

			if got := k.KeyDown(Keystroke{Name: "A"}); got != tt.want {
				t.Errorf("KeyDown = %v, want %v", got, tt.want)
			}
			if !reflect.DeepEqual(log, tt.wantLog) {
				t.Errorf("dispatch order = %v, want %v", log, tt.wantLog)
			}
			if fired != tt.wantFired {
				t.Errorf("fired %d times, want %d", fired, tt.wantFired)
			}
		})
	}
}

func TestKeyControllersTickVisitsAll(t *testing.T) {
	k := NewKeyControllers()
	a := &keyProbe{name: "a", ticked: true}
	b := &keyProbe{name: "b"}
	k.AddToFront(a)
	k.AddToFront(b)
	if !k.Tick(time.Time{}) {
		t.Error("Tick = false, want true")
	}
}

func TestMouseControllersLastResponder(t *testing.T) {
	m := NewMouseControllers()
	back := &mouseProbe{name: "back", consume: true}
	front := &mouseProbe{name: "front"}
	m.AddToFront(back)
	m.AddToFront(front)

	if _, ok := m.LastResponder(); ok {
		t.Fatal("LastResponder set before any event")
	}
	if !m.MouseMove(10, 20) {
		t.Fatal("MouseMove = false, want true")
	}
	if c, _ := m.LastResponder(); c != back {
		t.Errorf("LastResponder = %v, want back", c)
	}
	if m.LastMouseX() != 10 || m.LastMouseY() != 20 {
		t.Errorf("LastMouse = (%v, %v), want (10, 20)", m.LastMouseX(), m.LastMouseY())
	}

	m.Remove(back)
	if _, ok := m.LastResponder(); ok {
		t.Error("LastResponder kept a removed controller")
	}
	if m.LastMouseX() != 0 {
		t.Errorf("LastMouseX = %v after removal, want 0", m.LastMouseX())
	}
}

func TestMouseControllersUnconsumedDoesNotFire(t *testing.T) {
	m := NewMouseControllers()
	p := &mouseProbe{name: "p"}
	m.AddToFront(p)
	var fired int
	m.SetOnScheduleUpdate(counter(&fired), nil)
	now := time.Now()
	m.MouseDown(MouseButtonLeft, now, 1, 1)
	m.MouseMove(2, 2)
	m.MouseUp(MouseButtonLeft, now, 2, 2)
	m.Wheel(1, 2, 2)
	if fired != 0 {
		t.Errorf("fired %d times for unconsumed events", fired)
	}
}

func TestMouseControllersFocusBroadcast(t *testing.T) {
	m := NewMouseControllers()
	a, b := &mouseProbe{name: "a", consume: true}, &mouseProbe{name: "b", consume: true}
	m.AddToFront(a)
	m.AddToFront(b)
	m.Focus()
	if !m.Focused() {
		t.Error("Focused = false after Focus")
	}
	m.Blur()
	if m.Focused() {
		t.Error("Focused = true after Blur")
	}
	for _, p := range []*mouseProbe{a, b} {
		if p.focus != 1 || p.blur != 1 {
			t.Errorf("%s: focus = %d, blur = %d, want 1 and 1", p.name, p.focus, p.blur)
		}
	}
}
