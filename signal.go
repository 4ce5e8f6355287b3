package worldview

// UpdateFunc is the listener type for a Signal. It receives the owner value
// that was registered alongside it.
type UpdateFunc func(owner any)

// Signal is a single-slot "schedule update" register. Each unit notifies at
// most one parent; registering a new listener replaces the previous one.
//
// The zero value is an unwired signal.
type Signal struct {
	fn    UpdateFunc
	owner any
}

// Set registers fn as the sole listener, paired with owner. Passing a nil fn
// clears the signal.
func (s *Signal) Set(fn UpdateFunc, owner any) {
	if fn == nil {
		s.Clear()
		return
	}
	s.fn = fn
	s.owner = owner
}

// Clear unwires the listener.
func (s *Signal) Clear() {
	s.fn = nil
	s.owner = nil
}

// IsSet reports whether a listener is registered.
func (s *Signal) IsSet() bool {
	return s.fn != nil
}

// Owner returns the owner value paired with the current listener.
func (s *Signal) Owner() any {
	return s.owner
}

// Fire notifies the listener, if any.
func (s *Signal) Fire() {
	if s.fn != nil {
		s.fn(s.owner)
	}
}
