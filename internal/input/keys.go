// Package input tracks the raw pressed state of the engine's ten logical
// keys and derives per-frame edge, hold and auto-repeat signals from it.
// The raw state is written asynchronously by whatever delivers input
// (terminal, SSH session, websocket peer); the derived signals are sampled
// exactly once per frame by the scheduler so that every read within a frame
// answers identically.
package input

// Key identifies one of the ten logical keys the engine recognizes.
type Key uint8

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyW
	KeyA
	KeyS
	KeyD
	KeySpace
	KeyQ

	// KeyCount is the number of logical keys; not a key itself.
	KeyCount
)

// String returns the wire name of the key, also used in log output.
func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyW:
		return "w"
	case KeyA:
		return "a"
	case KeyS:
		return "s"
	case KeyD:
		return "d"
	case KeySpace:
		return "space"
	case KeyQ:
		return "q"
	default:
		return "unknown"
	}
}

// ParseKey maps a wire name back to a Key. The second return is false for
// names outside the ten recognized keys.
func ParseKey(name string) (Key, bool) {
	switch name {
	case "up":
		return KeyUp, true
	case "down":
		return KeyDown, true
	case "left":
		return KeyLeft, true
	case "right":
		return KeyRight, true
	case "w":
		return KeyW, true
	case "a":
		return KeyA, true
	case "s":
		return KeyS, true
	case "d":
		return KeyD, true
	case "space", " ":
		return KeySpace, true
	case "q":
		return KeyQ, true
	default:
		return 0, false
	}
}

// Event is one raw press or release pushed by an input-delivery collaborator.
type Event struct {
	Key  Key
	Down bool
}
