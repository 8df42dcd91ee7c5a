// internal/solution/provider.go
//
// Daily solution retrieval. A session cannot be constructed without a
// resolved solution; provider failures surface as ErrUnavailable and abort
// session construction rather than degrading to a guessed word.

package solution

import (
	"context"
	"errors"
	"time"

	"github.com/ovattry/quintle/internal/game"
)

// ErrUnavailable wraps any network, decode or validation failure while
// resolving the day's solution.
var ErrUnavailable = errors.New("daily solution unavailable")

// Provider supplies the hidden word for a given day.
type Provider interface {
	DailySolution(ctx context.Context, date time.Time) (game.Word, error)
}
