package input

// DefaultFireCooldown is the number of frames Fire waits between repeats
// while a key stays held.
const DefaultFireCooldown = 30

// Machine derives edge and hold signals for one logical key. Update must be
// called exactly once per frame, before any signal is read; between updates
// every signal is stable, so sampling a key many times within one frame
// always answers the same.
type Machine struct {
	key  Key
	snap *Snapshot

	previous bool
	current  bool

	cooldownRemaining  int
	fireCooldownLength int
}

// NewMachine binds a state machine to one key of the given snapshot.
func NewMachine(key Key, snap *Snapshot) *Machine {
	return &Machine{
		key:                key,
		snap:               snap,
		fireCooldownLength: DefaultFireCooldown,
	}
}

// Key returns the logical key this machine tracks.
func (m *Machine) Key() Key {
	return m.key
}

// Update samples the snapshot and advances the cooldown. Called once per
// frame by the scheduler before the game callback runs.
func (m *Machine) Update() {
	m.previous = m.current
	m.current = m.snap.Pressed(m.key)
	if m.cooldownRemaining > 0 {
		m.cooldownRemaining--
	}
}

// Pressed reports the raw state sampled at the last Update.
func (m *Machine) Pressed() bool {
	return m.current
}

// JustPressed reports a release-to-press edge at the last Update.
func (m *Machine) JustPressed() bool {
	return m.current && !m.previous
}

// StillPressed reports the key held across the last two updates.
func (m *Machine) StillPressed() bool {
	return m.current && m.previous
}

// JustNotPressed reports a press-to-release edge at the last Update.
func (m *Machine) JustNotPressed() bool {
	return !m.current && m.previous
}

// StillNotPressed reports the key released across the last two updates.
func (m *Machine) StillNotPressed() bool {
	return !m.current && !m.previous
}

// Fire is a debounced auto-repeat trigger: it returns true on the frame the
// key is first pressed, and again every cooldown-length frames while the
// key stays held. Returning true rearms the cooldown; returning false never
// mutates it.
func (m *Machine) Fire() bool {
	if m.JustPressed() || (m.StillPressed() && m.cooldownRemaining == 0) {
		m.cooldownRemaining = m.fireCooldownLength
		return true
	}
	return false
}

// SetFireCooldown sets the repeat delay in frames. Zero makes Fire trigger
// on every frame the key is held.
func (m *Machine) SetFireCooldown(frames int) {
	if frames < 0 {
		frames = 0
	}
	m.fireCooldownLength = frames
}
