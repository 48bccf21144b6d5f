package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avoronov/gridframe/internal/input"
)

// defaultKeyHold is how long a key press stays "held" in the input snapshot.
// Terminals only report presses, never releases, so each press is turned
// into a short synthetic hold; the terminal's own auto-repeat keeps
// refreshing the hold while the key is physically down.
const defaultKeyHold = 150 * time.Millisecond

// KeyMapper translates Bubble Tea key messages into snapshot presses and
// expires the synthetic holds.
type KeyMapper struct {
	hold   time.Duration
	expiry map[input.Key]time.Time
}

// NewKeyMapper creates a mapper with the default hold duration.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		hold:   defaultKeyHold,
		expiry: make(map[input.Key]time.Time),
	}
}

// Press maps a key message into the snapshot and starts (or refreshes) its
// hold. Returns false when the key is not part of the game's key set.
func (km *KeyMapper) Press(msg tea.KeyMsg, snap *input.Snapshot, now time.Time) bool {
	k, ok := input.ParseKey(msg.String())
	if !ok {
		return false
	}
	snap.Press(k)
	km.expiry[k] = now.Add(km.hold)
	return true
}

// Expire releases keys whose hold has run out.
func (km *KeyMapper) Expire(snap *input.Snapshot, now time.Time) {
	for k, deadline := range km.expiry {
		if now.After(deadline) {
			snap.Release(k)
			delete(km.expiry, k)
		}
	}
}

// ReleaseAll drops every synthetic hold, used on shutdown.
func (km *KeyMapper) ReleaseAll(snap *input.Snapshot) {
	for k := range km.expiry {
		snap.Release(k)
		delete(km.expiry, k)
	}
}

// uiKeyMap holds the bindings the terminal chrome owns. Game keys are
// forwarded to the engine untouched; these never are.
type uiKeyMap struct {
	ForceQuit key.Binding
	Help      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k uiKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.ForceQuit}
}

// FullHelp returns key bindings for the full help view.
func (k uiKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Help, k.ForceQuit}}
}

func defaultUIKeyMap() uiKeyMap {
	return uiKeyMap{
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
