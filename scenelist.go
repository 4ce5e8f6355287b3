package worldview

import "time"

// SceneList is a render composite. It is itself a WorldRenderable, so lists
// nest to any depth.
//
// Tick, Paint and Render visit every child on every call and report the
// logical OR of their results; a child that reports pending work never
// prevents its siblings from advancing.
type SceneList struct {
	List[WorldRenderable]
}

// NewSceneList creates an empty scene list.
func NewSceneList() *SceneList {
	return &SceneList{}
}

// Tick implements Ticker.
func (l *SceneList) Tick(cycleStart time.Time) bool {
	needsUpdate := false
	for _, scene := range l.items {
		needsUpdate = scene.Tick(cycleStart) || needsUpdate
	}
	return needsUpdate
}

// Paint divides timeout evenly among the children.
func (l *SceneList) Paint(timeout time.Duration) bool {
	if len(l.items) == 0 {
		return false
	}
	share := timeout / time.Duration(len(l.items))
	needsUpdate := false
	for _, scene := range l.items {
		needsUpdate = scene.Paint(share) || needsUpdate
	}
	return needsUpdate
}

// Render implements Renderer.
func (l *SceneList) Render() bool {
	needsUpdate := false
	for _, scene := range l.items {
		needsUpdate = scene.Render() || needsUpdate
	}
	return needsUpdate
}

// SetWorldTransform hands the same transform to every child.
func (l *SceneList) SetWorldTransform(world *WorldTransform) {
	for _, scene := range l.items {
		scene.SetWorldTransform(world)
	}
}

// Unmount implements Unmounter.
func (l *SceneList) Unmount() {
	for _, scene := range l.items {
		scene.Unmount()
	}
}
