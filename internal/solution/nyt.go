// internal/solution/nyt.go
//
// Official daily-solution endpoint client. The endpoint serves one JSON
// document per date: https://www.nytimes.com/svc/wordle/v2/<YYYY-MM-DD>.json

package solution

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ovattry/quintle/internal/daily"
	"github.com/ovattry/quintle/internal/game"
)

const defaultBaseURL = "https://www.nytimes.com/svc/wordle/v2"

// NYT fetches the daily solution over HTTP.
type NYT struct {
	BaseURL string // overridable for tests
	Client  *http.Client
}

// NewNYT returns a client against the official endpoint with a short
// timeout; the fetch happens once per session construction, so a slow
// upstream should fail fast rather than stall startup.
func NewNYT() *NYT {
	return &NYT{
		BaseURL: defaultBaseURL,
		Client:  &http.Client{Timeout: 3 * time.Second},
	}
}

// DailySolution fetches and validates the solution for the given date.
// All failures wrap ErrUnavailable.
func (p *NYT) DailySolution(ctx context.Context, date time.Time) (game.Word, error) {
	url := fmt.Sprintf("%s/%s.json", p.BaseURL, daily.DateKey(date))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var body struct {
		Solution string `json:"solution"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}

	w, err := game.ParseWord(body.Solution)
	if err != nil {
		return "", fmt.Errorf("%w: bad solution %q", ErrUnavailable, body.Solution)
	}
	return w, nil
}
