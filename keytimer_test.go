package worldview

import (
	"testing"
	"time"
)

func TestKeyTimerElapsed(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	k := NewKeyTimer()
	k.SetClock(func() time.Time { return base })

	if k.KeyDown(Keystroke{Name: "ArrowUp"}) {
		t.Error("KeyDown consumed the event")
	}
	if k.GetKey("ArrowUp") != 1 || k.GetKey("ArrowDown") != 0 {
		t.Errorf("GetKey = %d/%d, want 1/0", k.GetKey("ArrowUp"), k.GetKey("ArrowDown"))
	}

	if got := k.KeyElapsed("ArrowUp", base.Add(500*time.Millisecond)); got != 0.5 {
		t.Errorf("KeyElapsed = %v, want 0.5", got)
	}
	// The stamp moved to the sample time.
	if got := k.KeyElapsed("ArrowUp", base.Add(750*time.Millisecond)); got != 0.25 {
		t.Errorf("second KeyElapsed = %v, want 0.25", got)
	}
	if got := k.KeyElapsed("ArrowDown", base.Add(time.Second)); got != 0 {
		t.Errorf("KeyElapsed for released key = %v, want 0", got)
	}
}

func TestKeyTimerIgnoresRepeatsAndEmptyNames(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base
	k := NewKeyTimer()
	k.SetClock(func() time.Time { return now })

	k.KeyDown(Keystroke{Name: "A"})
	now = base.Add(time.Second)
	k.KeyDown(Keystroke{Name: "A"}) // auto-repeat
	if got := k.KeyElapsed("A", base.Add(2*time.Second)); got != 2 {
		t.Errorf("KeyElapsed = %v, want 2 (repeat must not restamp)", got)
	}

	k.KeyDown(Keystroke{})
	if k.GetKey("") != 0 {
		t.Error("empty key name recorded")
	}
}

func TestKeyTimerKeyUp(t *testing.T) {
	k := NewKeyTimer()
	k.KeyDown(Keystroke{Name: "A"})
	if k.KeyUp(Keystroke{Name: "A"}) {
		t.Error("KeyUp consumed the event")
	}
	if k.Held("A") {
		t.Error("key still held after KeyUp")
	}
}
