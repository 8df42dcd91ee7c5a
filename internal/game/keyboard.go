// internal/game/keyboard.go
//
// Per-letter keyboard coloring state derived from scored guesses.

package game

import "strings"

// Keyboard tracks the best-known state of every letter across a session,
// the way the on-screen keyboard colors its keys. A key only ever upgrades
// along the TileState ordering; a letter scored Correct once stays Correct
// even if a later guess places it wrong.
type Keyboard map[string]TileState

// NewKeyboard returns an empty keyboard (every key TileEmpty).
func NewKeyboard() Keyboard { return make(Keyboard, 26) }

// Observe upgrades key states from one scored guess.
func (k Keyboard) Observe(r GuessResult) {
	for _, t := range r {
		if t.State > k[t.Letter] {
			k[t.Letter] = t.State
		}
	}
}

// State returns the best-known state for a letter, TileEmpty if unseen.
func (k Keyboard) State(letter string) TileState {
	return k[strings.ToLower(letter)]
}
