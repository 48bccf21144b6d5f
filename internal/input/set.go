package input

// Set owns one Machine per logical key, all bound to the same snapshot.
// Games read keys through the named lookups; the scheduler drives the whole
// set with a single UpdateAll per frame.
type Set struct {
	snapshot *Snapshot
	machines [KeyCount]*Machine
}

// NewSet creates a machine for every logical key over one shared snapshot.
func NewSet(snap *Snapshot) *Set {
	s := &Set{snapshot: snap}
	for k := Key(0); k < KeyCount; k++ {
		s.machines[k] = NewMachine(k, snap)
	}
	return s
}

// Snapshot returns the shared raw-state snapshot, which input-delivery
// collaborators write into.
func (s *Set) Snapshot() *Snapshot {
	return s.snapshot
}

// UpdateAll advances every machine one frame. Key order does not matter;
// all machines have settled before any game code reads them.
func (s *Set) UpdateAll() {
	for _, m := range s.machines {
		m.Update()
	}
}

// Machine returns the state machine for an arbitrary key.
func (s *Set) Machine(k Key) *Machine {
	if k >= KeyCount {
		return nil
	}
	return s.machines[k]
}

// Named lookups, one per logical key.

func (s *Set) Up() *Machine    { return s.machines[KeyUp] }
func (s *Set) Down() *Machine  { return s.machines[KeyDown] }
func (s *Set) Left() *Machine  { return s.machines[KeyLeft] }
func (s *Set) Right() *Machine { return s.machines[KeyRight] }
func (s *Set) W() *Machine     { return s.machines[KeyW] }
func (s *Set) A() *Machine     { return s.machines[KeyA] }
func (s *Set) S() *Machine     { return s.machines[KeyS] }
func (s *Set) D() *Machine     { return s.machines[KeyD] }
func (s *Set) Space() *Machine { return s.machines[KeySpace] }
func (s *Set) Q() *Machine     { return s.machines[KeyQ] }
