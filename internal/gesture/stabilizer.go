package gesture

// DefaultWindow is the number of identical consecutive labels needed to
// confirm a gesture.
const DefaultWindow = 8

// Stabilizer debounces raw per-frame labels. A gesture is confirmed once
// the last Window labels are all equal to it; the confirmed gesture then
// persists through unknown frames and mixed histories until another
// gesture fills the window.
type Stabilizer struct {
	window    int
	history   []Label
	confirmed Label
	ok        bool
}

// NewStabilizer creates a Stabilizer with the given window size.
// Non-positive sizes fall back to DefaultWindow.
func NewStabilizer(window int) *Stabilizer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Stabilizer{
		window:  window,
		history: make([]Label, 0, window),
	}
}

// Update records raw and returns the confirmed gesture, if any.
func (s *Stabilizer) Update(raw Label) (Label, bool) {
	if len(s.history) >= s.window {
		// Shift left by 1, dropping the oldest label
		copy(s.history, s.history[1:])
		s.history = s.history[:s.window-1]
	}
	s.history = append(s.history, raw)

	if !raw.IsGesture() {
		return s.confirmed, s.ok
	}
	if len(s.history) < s.window {
		return s.confirmed, s.ok
	}
	for _, l := range s.history {
		if l != raw {
			return s.confirmed, s.ok
		}
	}

	s.confirmed = raw
	s.ok = true
	return s.confirmed, s.ok
}

// Confirmed returns the last confirmed gesture.
func (s *Stabilizer) Confirmed() (Label, bool) {
	return s.confirmed, s.ok
}

// History returns a copy of the recorded labels, oldest first.
func (s *Stabilizer) History() []Label {
	out := make([]Label, len(s.history))
	copy(out, s.history)
	return out
}

// Window returns the configured window size.
func (s *Stabilizer) Window() int {
	return s.window
}

// Reset forgets the history and the confirmed gesture.
func (s *Stabilizer) Reset() {
	s.history = s.history[:0]
	s.confirmed = ""
	s.ok = false
}
