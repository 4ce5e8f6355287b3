package worldview

import "time"

// KeyTimer records when each key went down so held keys can drive motion
// proportional to elapsed time. It never consumes events.
type KeyTimer struct {
	keydowns map[string]time.Time
	now      func() time.Time
}

// NewKeyTimer creates a KeyTimer using the wall clock.
func NewKeyTimer() *KeyTimer {
	return &KeyTimer{keydowns: make(map[string]time.Time), now: time.Now}
}

// SetClock replaces the clock used to stamp key presses.
func (k *KeyTimer) SetClock(now func() time.Time) {
	k.now = now
}

// GetKey returns 1 if key is held, else 0.
func (k *KeyTimer) GetKey(key string) int {
	if _, ok := k.keydowns[key]; ok {
		return 1
	}
	return 0
}

// Held reports whether key is held.
func (k *KeyTimer) Held(key string) bool {
	_, ok := k.keydowns[key]
	return ok
}

// KeyElapsed returns the seconds since key was pressed or last sampled, and
// restamps it at cycleStart. It returns 0 for keys that are not held.
func (k *KeyTimer) KeyElapsed(key string, cycleStart time.Time) float64 {
	v, ok := k.keydowns[key]
	if !ok {
		return 0
	}
	k.keydowns[key] = cycleStart
	return cycleStart.Sub(v).Seconds()
}

// KeyDown stamps a newly pressed key. Empty names and repeats are ignored.
func (k *KeyTimer) KeyDown(event Keystroke) bool {
	if event.Name == "" {
		return false
	}
	if _, ok := k.keydowns[event.Name]; ok {
		return false
	}
	k.keydowns[event.Name] = k.now()
	return false
}

// KeyUp forgets a released key.
func (k *KeyTimer) KeyUp(event Keystroke) bool {
	delete(k.keydowns, event.Name)
	return false
}

// Tick implements Ticker.
func (k *KeyTimer) Tick(time.Time) bool {
	return false
}

// SetOnScheduleUpdate implements Scheduler. KeyTimer never schedules.
func (k *KeyTimer) SetOnScheduleUpdate(UpdateFunc, any) {}
