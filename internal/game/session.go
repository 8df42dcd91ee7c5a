// internal/game/session.go
//
// Game session state machine for a single day's word.
// Responsibilities:
//   - Hold the immutable solution and the append-only guess history.
//   - Track the remaining-guess counter (6) and status transitions:
//     playing → won/lost, terminal states accept no further guesses.
//
// A Session is not safe for concurrent use; callers serialize access
// (the HTTP layer goes through the store and holds one goroutine per
// request-session pair).

package game

import (
	"crypto/rand"
	"encoding/hex"
)

// MaxGuesses is the guess budget for one session.
const MaxGuesses = 6

// Status enumerates the session lifecycle.
type Status int

const (
	StatusInProgress Status = iota
	StatusWon
	StatusLost
)

// Session holds the state of one game: the hidden solution, every scored
// guess in chronological order, and the remaining-guess counter.
type Session struct {
	ID        string        // unique session identifier (random hex)
	Solution  Word          // the hidden word, fixed for the session lifetime
	History   []GuessResult // scored guesses, append-only
	Remaining int           // guesses left, counts down from MaxGuesses
	Status    Status
}

// NewSession constructs an in-progress session around a resolved solution.
func NewSession(solution Word) *Session {
	return &Session{
		ID:        randomID(),
		Solution:  solution,
		Remaining: MaxGuesses,
	}
}

// Submit validates, scores and records one guess.
//
// Returns ErrGameOver without mutating anything if the session is already
// terminal, and ErrWordLength/ErrWordCharacters for malformed input (a
// malformed guess does not consume the counter). Dictionary membership is a
// boundary concern and is checked by the caller before Submit.
//
// On success the result is appended to History, the counter is decremented,
// and the status moves to Won (all tiles Correct) or Lost (counter hit
// zero). The result is returned even on the guess that ends the game.
func (s *Session) Submit(raw string) (GuessResult, error) {
	if s.Over() {
		return GuessResult{}, ErrGameOver
	}
	w, err := ParseWord(raw)
	if err != nil {
		return GuessResult{}, err
	}

	res := Evaluate(w, s.Solution)
	s.History = append(s.History, res)
	s.Remaining--

	switch {
	case res.AllCorrect():
		s.Status = StatusWon
	case s.Remaining == 0:
		s.Status = StatusLost
	}
	return res, nil
}

// Over reports whether the session reached a terminal state.
func (s *Session) Over() bool { return s.Status != StatusInProgress }

// State reports the coarse wire representation of the session status.
func (s *Session) State() string {
	switch s.Status {
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	}
	return "playing"
}

// Keys folds the whole history into per-letter keyboard states.
func (s *Session) Keys() Keyboard {
	kb := NewKeyboard()
	for _, r := range s.History {
		kb.Observe(r)
	}
	return kb
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
