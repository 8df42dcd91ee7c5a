// internal/game/types.go
//
// Core type definitions for the guess-evaluation engine.
// Defines:
//   - TileState: per-letter classification with an upgrade ordering.
//   - Word: validated canonical 5-letter guess/solution value.
//   - Tile / GuessResult: position-aligned scoring output.
//   - Sentinel errors surfaced by Session.Submit.

package game

import (
	"encoding/json"
	"errors"
	"strings"
)

// WordLength is the number of letters in every guess and solution.
const WordLength = 5

// TileState classifies one letter position of a guess.
// The numeric values double as an upgrade ordering
// (Empty < Unknown < Absent < Present < Correct): the on-screen keyboard
// only ever moves a key to a higher state, never back down.
type TileState int

const (
	TileEmpty   TileState = iota // no letter entered yet
	TileUnknown                  // letter entered, not yet scored
	TileAbsent                   // letter not in solution (after duplicates)
	TilePresent                  // letter in solution, wrong position
	TileCorrect                  // letter in solution, right position
)

// String returns the wire name of the state.
func (t TileState) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileUnknown:
		return "unknown"
	case TileAbsent:
		return "absent"
	case TilePresent:
		return "present"
	case TileCorrect:
		return "correct"
	}
	return "invalid"
}

// MarshalJSON encodes a TileState as its wire name.
func (t TileState) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// Errors surfaced by ParseWord and Session.Submit.
var (
	ErrWordLength     = errors.New("word must be exactly 5 letters")
	ErrWordCharacters = errors.New("word must contain only letters a-z")
	ErrGameOver       = errors.New("game is already over")
)

// Word is a canonical 5-letter lowercase word. The zero value is invalid;
// construct through ParseWord.
type Word string

// ParseWord trims and lowercases raw input and validates its shape.
// Returns ErrWordLength or ErrWordCharacters on bad input.
func ParseWord(raw string) (Word, error) {
	w := strings.ToLower(strings.TrimSpace(raw))
	if len(w) != WordLength {
		return "", ErrWordLength
	}
	for _, r := range w {
		if r < 'a' || r > 'z' {
			return "", ErrWordCharacters
		}
	}
	return Word(w), nil
}

// Tile pairs one guessed letter with its classification.
type Tile struct {
	Letter string    `json:"letter"`
	State  TileState `json:"state"`
}

// GuessResult is the scored form of one guess: 5 tiles, position-aligned
// with the submitted word. States are always Absent, Present or Correct.
type GuessResult [WordLength]Tile

// AllCorrect reports whether every tile is TileCorrect.
func (r GuessResult) AllCorrect() bool {
	for _, t := range r {
		if t.State != TileCorrect {
			return false
		}
	}
	return true
}
