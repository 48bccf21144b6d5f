package input

import "sync/atomic"

// Snapshot holds the current raw pressed state of every logical key.
// It has a single writer (the input-delivery collaborator) and is read by
// the per-key state machines once per frame. Each key is an independent
// atomic flag, so a write can never be observed half-applied; the last
// write before a frame's update pass wins.
type Snapshot struct {
	state [KeyCount]atomic.Bool
}

// NewSnapshot returns a snapshot with every key released.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Press marks the key as held down.
func (s *Snapshot) Press(k Key) {
	if k < KeyCount {
		s.state[k].Store(true)
	}
}

// Release marks the key as released.
func (s *Snapshot) Release(k Key) {
	if k < KeyCount {
		s.state[k].Store(false)
	}
}

// Apply records one raw input event.
func (s *Snapshot) Apply(ev Event) {
	if ev.Key < KeyCount {
		s.state[ev.Key].Store(ev.Down)
	}
}

// Pressed reports whether the key is currently held down.
func (s *Snapshot) Pressed(k Key) bool {
	if k >= KeyCount {
		return false
	}
	return s.state[k].Load()
}

// ReleaseAll clears every key, used when an input source disconnects so no
// key sticks down forever.
func (s *Snapshot) ReleaseAll() {
	for k := range s.state {
		s.state[k].Store(false)
	}
}
