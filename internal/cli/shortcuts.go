package cli

import (
	"time"

	"github.com/phanxgames/worldview"
)

// screenshotKey is the key that captures the next frame.
const screenshotKey = "F12"

// shortcuts handles the run command's own key bindings. It sits in front of
// the camera controller and consumes only the keys it acts on.
type shortcuts struct {
	update     worldview.Signal
	screenshot func()
	count      int
}

func (s *shortcuts) SetOnScheduleUpdate(fn worldview.UpdateFunc, owner any) {
	s.update.Set(fn, owner)
}

func (s *shortcuts) Tick(time.Time) bool { return false }

func (s *shortcuts) KeyDown(e worldview.Keystroke) bool {
	if e.Name != screenshotKey {
		return false
	}
	s.count++
	s.screenshot()
	// Schedule a render so the capture happens even when the view is idle.
	s.update.Fire()
	return true
}

func (s *shortcuts) KeyUp(e worldview.Keystroke) bool {
	return e.Name == screenshotKey
}
