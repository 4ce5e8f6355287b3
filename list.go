package worldview

import "reflect"

// Schedulable constrains the element type of a List: comparable units that
// accept a schedule signal listener.
type Schedulable interface {
	comparable
	Scheduler
}

// List is an insertion-ordered composite of units. Index 0 is the back of the
// list; AddToFront appends. Every child present in the list has its signal
// wired to the list's own ScheduleUpdate, and every mutation fires the list's
// signal exactly once.
//
// Children are matched by identity, so they should be pointers. Adding a
// child whose dynamic type cannot be compared panics.
//
// List is not safe for concurrent use.
type List[T Schedulable] struct {
	items  []T
	update Signal

	// onRemoved, if set, runs after a child is unwired.
	onRemoved func(T)
}

func (l *List[T]) wire(item T) {
	item.SetOnScheduleUpdate(func(any) { l.ScheduleUpdate() }, l)
}

func unwire[T Schedulable](item T) {
	item.SetOnScheduleUpdate(nil, nil)
}

// checkChild panics if item cannot be compared with ==.
func checkChild(item any) {
	if t := reflect.TypeOf(item); t != nil && !t.Comparable() {
		panic("worldview: list child " + t.String() + " is not comparable; add a pointer")
	}
}

func (l *List[T]) indexOf(item T) int {
	for i, it := range l.items {
		if it == item {
			return i
		}
	}
	return -1
}

// detach removes item from the slice without firing. Reports whether it was present.
func (l *List[T]) detach(item T) bool {
	i := l.indexOf(item)
	if i < 0 {
		return false
	}
	var zero T
	copy(l.items[i:], l.items[i+1:])
	l.items[len(l.items)-1] = zero
	l.items = l.items[:len(l.items)-1]
	return true
}

// Len returns the number of children.
func (l *List[T]) Len() int {
	return len(l.items)
}

// At returns the child at index i, where 0 is the back.
func (l *List[T]) At(i int) T {
	return l.items[i]
}

// Items returns the children back to front. The returned slice MUST NOT be mutated.
func (l *List[T]) Items() []T {
	return l.items
}

// Contains reports whether item is a child.
func (l *List[T]) Contains(item T) bool {
	return l.indexOf(item) >= 0
}

// ScheduleUpdate fires the list's own signal.
func (l *List[T]) ScheduleUpdate() {
	l.update.Fire()
}

// SetOnScheduleUpdate implements Scheduler.
func (l *List[T]) SetOnScheduleUpdate(fn UpdateFunc, owner any) {
	l.update.Set(fn, owner)
}

// AddToFront appends item as the front-most child. An item already present is
// moved. The zero value is ignored.
func (l *List[T]) AddToFront(item T) {
	checkChild(item)
	var zero T
	if item == zero {
		return
	}
	l.detach(item)
	l.items = append(l.items, item)
	l.wire(item)
	l.ScheduleUpdate()
}

// AddToBack inserts item as the back-most child. An item already present is
// moved. The zero value is ignored.
func (l *List[T]) AddToBack(item T) {
	checkChild(item)
	var zero T
	if item == zero {
		return
	}
	l.detach(item)
	l.items = append(l.items, zero)
	copy(l.items[1:], l.items)
	l.items[0] = item
	l.wire(item)
	l.ScheduleUpdate()
}

// Remove unwires and removes item. It fires only if item was present.
func (l *List[T]) Remove(item T) {
	checkChild(item)
	var zero T
	if item == zero || !l.detach(item) {
		return
	}
	unwire(item)
	if l.onRemoved != nil {
		l.onRemoved(item)
	}
	l.ScheduleUpdate()
}

// Replace swaps orig for item in place. It is a no-op when orig == item or
// orig is not a child, and degrades to Remove(orig) when item is the zero value.
func (l *List[T]) Replace(orig, item T) {
	checkChild(orig)
	checkChild(item)
	if orig == item {
		return
	}
	var zero T
	if item == zero {
		l.Remove(orig)
		return
	}
	i := l.indexOf(orig)
	if i < 0 {
		return
	}
	unwire(orig)
	if l.onRemoved != nil {
		l.onRemoved(orig)
	}
	if j := l.indexOf(item); j >= 0 {
		// item was already a child elsewhere; it moves into orig's slot.
		copy(l.items[j:], l.items[j+1:])
		l.items[len(l.items)-1] = zero
		l.items = l.items[:len(l.items)-1]
		if j < i {
			i--
		}
	}
	l.items[i] = item
	l.wire(item)
	l.ScheduleUpdate()
}

// Each calls fn for every child back to front. It visits every child.
func (l *List[T]) Each(fn func(T)) {
	for _, it := range l.items {
		fn(it)
	}
}

// firstResponder offers fn to children from front to back (most recently
// added first) and returns the first child that reports true.
func (l *List[T]) firstResponder(fn func(T) bool) (T, bool) {
	for i := len(l.items) - 1; i >= 0; i-- {
		if it := l.items[i]; fn(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}
