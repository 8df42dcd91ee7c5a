// internal/solution/local.go
//
// Offline provider: picks the day's word deterministically from the loaded
// answer list, so every instance with the same salt and lists agrees on
// the solution without a network round trip.

package solution

import (
	"context"
	"fmt"
	"time"

	"github.com/ovattry/quintle/internal/daily"
	"github.com/ovattry/quintle/internal/game"
	"github.com/ovattry/quintle/internal/words"
)

// Local selects today's answer by HMAC of the date key.
type Local struct {
	Salt string
}

// NewLocal returns a deterministic provider over the words package lists.
func NewLocal(salt string) *Local { return &Local{Salt: salt} }

// DailySolution returns the answer for the date. Fails with ErrUnavailable
// only when no answer list is loaded.
func (p *Local) DailySolution(_ context.Context, date time.Time) (game.Word, error) {
	answers := words.Answers()
	if len(answers) == 0 {
		return "", fmt.Errorf("%w: answers list not loaded", ErrUnavailable)
	}
	idx := daily.WordIndex(date, p.Salt, len(answers))
	w, err := game.ParseWord(answers[idx])
	if err != nil {
		return "", fmt.Errorf("%w: bad answer %q at index %d", ErrUnavailable, answers[idx], idx)
	}
	return w, nil
}
