package input

import "testing"

func TestMachineNeverPressed(t *testing.T) {
	snap := NewSnapshot()
	m := NewMachine(KeySpace, snap)

	m.Update()

	if !m.StillNotPressed() {
		t.Error("StillNotPressed should be true for a key that was never pressed")
	}
	if m.JustPressed() || m.StillPressed() || m.JustNotPressed() {
		t.Error("only StillNotPressed should be true for a key that was never pressed")
	}
}

func TestMachineEdgeSignals(t *testing.T) {
	snap := NewSnapshot()
	m := NewMachine(KeyUp, snap)

	// Frame 1: key goes down
	snap.Press(KeyUp)
	m.Update()
	if !m.JustPressed() {
		t.Error("frame 1: JustPressed should be true")
	}
	if m.StillPressed() {
		t.Error("frame 1: StillPressed should be false")
	}

	// Frame 2: key held
	m.Update()
	if m.JustPressed() {
		t.Error("frame 2: JustPressed should be false")
	}
	if !m.StillPressed() {
		t.Error("frame 2: StillPressed should be true")
	}

	// Frame 3: key released
	snap.Release(KeyUp)
	m.Update()
	if !m.JustNotPressed() {
		t.Error("frame 3: JustNotPressed should be true")
	}
	if m.StillNotPressed() {
		t.Error("frame 3: StillNotPressed should be false")
	}

	// Frame 4: key stays released
	m.Update()
	if !m.StillNotPressed() {
		t.Error("frame 4: StillNotPressed should be true")
	}
	if m.JustNotPressed() {
		t.Error("frame 4: JustNotPressed should be false")
	}
}

func TestMachineSignalsStableWithinFrame(t *testing.T) {
	snap := NewSnapshot()
	m := NewMachine(KeyA, snap)

	snap.Press(KeyA)
	m.Update()

	// Raw state flips mid-frame, but signals answer identically until the
	// next Update.
	snap.Release(KeyA)
	for i := 0; i < 3; i++ {
		if !m.JustPressed() {
			t.Fatalf("read %d: JustPressed changed within a frame", i)
		}
		if !m.Pressed() {
			t.Fatalf("read %d: Pressed changed within a frame", i)
		}
	}
}

func TestMachineFireCooldown(t *testing.T) {
	snap := NewSnapshot()
	m := NewMachine(KeySpace, snap)
	m.SetFireCooldown(3)

	snap.Press(KeySpace)

	want := []bool{true, false, false, true, false}
	for i, expected := range want {
		m.Update()
		got := m.Fire()
		if got != expected {
			t.Errorf("frame %d: Fire() = %v, expected %v", i+1, got, expected)
		}
	}
}

func TestMachineFireZeroCooldown(t *testing.T) {
	snap := NewSnapshot()
	m := NewMachine(KeySpace, snap)
	m.SetFireCooldown(0)

	snap.Press(KeySpace)
	for i := 0; i < 4; i++ {
		m.Update()
		if !m.Fire() {
			t.Errorf("frame %d: Fire() should trigger every frame with zero cooldown", i+1)
		}
	}
}

func TestMachineFireNeverWhileReleased(t *testing.T) {
	snap := NewSnapshot()
	m := NewMachine(KeySpace, snap)
	m.SetFireCooldown(0)

	for i := 0; i < 3; i++ {
		m.Update()
		if m.Fire() {
			t.Errorf("frame %d: Fire() triggered while key released", i+1)
		}
	}

	// Press, fire, release: released frames never fire even with expired cooldown
	snap.Press(KeySpace)
	m.Update()
	if !m.Fire() {
		t.Error("Fire() should trigger on press")
	}
	snap.Release(KeySpace)
	for i := 0; i < 5; i++ {
		m.Update()
		if m.Fire() {
			t.Errorf("released frame %d: Fire() should not trigger", i+1)
		}
	}
}

func TestMachineFireFalseDoesNotTouchCooldown(t *testing.T) {
	snap := NewSnapshot()
	m := NewMachine(KeySpace, snap)
	m.SetFireCooldown(2)

	snap.Press(KeySpace)
	m.Update()
	if !m.Fire() {
		t.Fatal("first Fire() should trigger")
	}

	// Calling Fire repeatedly within a cooldown frame must not rearm or
	// drain the counter beyond the per-frame decrement.
	m.Update()
	for i := 0; i < 3; i++ {
		if m.Fire() {
			t.Fatal("Fire() should be cooling down")
		}
	}
	m.Update()
	if !m.Fire() {
		t.Fatal("Fire() should trigger once cooldown expires")
	}
	m.Update()
	if m.Fire() {
		t.Fatal("Fire() should be cooling down again after retriggering")
	}
}

func TestSetNamedLookups(t *testing.T) {
	snap := NewSnapshot()
	set := NewSet(snap)

	lookups := map[Key]*Machine{
		KeyUp:    set.Up(),
		KeyDown:  set.Down(),
		KeyLeft:  set.Left(),
		KeyRight: set.Right(),
		KeyW:     set.W(),
		KeyA:     set.A(),
		KeyS:     set.S(),
		KeyD:     set.D(),
		KeySpace: set.Space(),
		KeyQ:     set.Q(),
	}

	for key, m := range lookups {
		if m == nil {
			t.Fatalf("lookup for %v returned nil", key)
		}
		if m.Key() != key {
			t.Errorf("lookup for %v returned machine for %v", key, m.Key())
		}
		if m != set.Machine(key) {
			t.Errorf("named lookup and Machine(%v) disagree", key)
		}
	}
}

func TestSetUpdateAll(t *testing.T) {
	snap := NewSnapshot()
	set := NewSet(snap)

	snap.Press(KeyLeft)
	snap.Press(KeyD)
	set.UpdateAll()

	if !set.Left().JustPressed() {
		t.Error("left should be just pressed after UpdateAll")
	}
	if !set.D().JustPressed() {
		t.Error("d should be just pressed after UpdateAll")
	}
	if !set.Right().StillNotPressed() {
		t.Error("right should be still not pressed")
	}
}

func TestSnapshotApplyAndParse(t *testing.T) {
	snap := NewSnapshot()

	key, ok := ParseKey("space")
	if !ok || key != KeySpace {
		t.Fatalf("ParseKey(space) = %v, %v", key, ok)
	}

	snap.Apply(Event{Key: key, Down: true})
	if !snap.Pressed(KeySpace) {
		t.Error("space should be pressed after Apply")
	}

	snap.Apply(Event{Key: key, Down: false})
	if snap.Pressed(KeySpace) {
		t.Error("space should be released after Apply")
	}

	if _, ok := ParseKey("escape"); ok {
		t.Error("ParseKey should reject unknown key names")
	}

	// Round trip every key name
	for k := Key(0); k < KeyCount; k++ {
		parsed, ok := ParseKey(k.String())
		if !ok || parsed != k {
			t.Errorf("ParseKey(%q) = %v, %v", k.String(), parsed, ok)
		}
	}
}

func TestSnapshotReleaseAll(t *testing.T) {
	snap := NewSnapshot()
	for k := Key(0); k < KeyCount; k++ {
		snap.Press(k)
	}
	snap.ReleaseAll()
	for k := Key(0); k < KeyCount; k++ {
		if snap.Pressed(k) {
			t.Errorf("%v still pressed after ReleaseAll", k)
		}
	}
}
