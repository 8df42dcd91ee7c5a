// internal/httpserver/routes_daily.go
//
// Routes for the daily mode, mounted under /daily:
//   - POST /daily/new         → start or resume today's run
//   - POST /daily/guess       → submit a guess against today's word
//   - GET  /daily/leaderboard → top winning runs for a date
//
// Each user plays once per calendar day (UTC). The day's solution comes
// from the configured provider; construction of a run fails cleanly when
// the provider cannot resolve a word. Active runs are held in memory and
// persisted to the DB when they finish.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/ovattry/quintle/internal/daily"
	"github.com/ovattry/quintle/internal/game"
	"github.com/ovattry/quintle/internal/solution"
	"github.com/ovattry/quintle/internal/words"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	provider solution.Provider
	runs     map[string]*dailyRun // active runs keyed by userID|date
	mu       sync.Mutex           // guards runs
}

// dailyRun pairs a game session with the metadata the results table needs.
type dailyRun struct {
	Session   *game.Session
	UserID    string
	Date      string
	WordIndex int
	Start     time.Time
	Recorded  bool
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		provider: s.provider,
		runs:     make(map[string]*dailyRun),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// userID returns the authenticated user ID if logged in, otherwise a
// stable anonymous ID from the guest cookie.
func (d *dailyServer) userID(w http.ResponseWriter, r *http.Request) string {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	GameID    string `json:"gameId"`
	Date      string `json:"date"`
	Remaining int    `json:"remaining"`
	Played    bool   `json:"played"`
}

// handleNew starts or resumes today's run.
// - A recorded result for today → Played=true, no new session.
// - An active run → its GameID is returned, play continues.
// - Otherwise the provider resolves today's word; resolution failure is a
//   503, never a degraded session.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.userID(w, r)
	now := time.Now().UTC()
	date := daily.DateKey(now)

	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Played: true})
		return
	}

	key := uid + "|" + date
	d.mu.Lock()
	d.sweepStale(date)
	if run, ok := d.runs[key]; ok {
		res := dailyNewRes{GameID: run.Session.ID, Date: date, Remaining: run.Session.Remaining}
		d.mu.Unlock()
		_ = json.NewEncoder(w).Encode(res)
		return
	}
	d.mu.Unlock()

	answer, err := d.provider.DailySolution(r.Context(), now)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("resolve daily solution")
		http.Error(w, `{"error":"solution_unavailable"}`, http.StatusServiceUnavailable)
		return
	}

	run := &dailyRun{
		Session:   game.NewSession(answer),
		UserID:    uid,
		Date:      date,
		WordIndex: answerIndex(string(answer)),
		Start:     now,
	}
	d.mu.Lock()
	// Another request may have won the race; keep the first run.
	if existing, ok := d.runs[key]; ok {
		run = existing
	} else {
		d.runs[key] = run
	}
	d.mu.Unlock()

	_ = json.NewEncoder(w).Encode(dailyNewRes{
		GameID:    run.Session.ID,
		Date:      date,
		Remaining: run.Session.Remaining,
	})
}

// sweepStale drops runs from earlier dates so the map only ever holds the
// current day. Finished runs are persisted before their day rolls over;
// abandoned ones are simply forgotten. Callers hold d.mu.
func (d *dailyServer) sweepStale(today string) {
	for k, run := range d.runs {
		if run.Date != today {
			delete(d.runs, k)
		}
	}
}

// answerIndex locates the answer in the canonical list, -1 when the
// provider returned a word outside it.
func answerIndex(answer string) int {
	for i, w := range words.Answers() {
		if w == answer {
			return i
		}
	}
	return -1
}

// -----------------------------------------------------------------------------
// /daily/guess

// dailyGuessReq is the request payload for /daily/guess.
type dailyGuessReq struct {
	GameID string `json:"gameId"`
	Word   string `json:"word"`
}

// dailyGuessRes is the response payload for /daily/guess.
type dailyGuessRes struct {
	Tiles     game.GuessResult `json:"tiles"`
	State     string           `json:"state"` // "playing" | "won" | "lost"
	Remaining int              `json:"remaining"`
	Keys      game.Keyboard    `json:"keys"`
}

// handleGuess submits one guess against today's run: dictionary gate first
// (free), then Session.Submit; a finished run is persisted exactly once.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	uid := d.userID(w, r)

	var p dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if p.GameID == "" {
		http.Error(w, `{"error":"invalid_game_id"}`, http.StatusBadRequest)
		return
	}

	date := daily.DateKey(time.Now().UTC())
	key := uid + "|" + date
	d.mu.Lock()
	run, ok := d.runs[key]
	d.mu.Unlock()
	if !ok || run.Session.ID != p.GameID {
		http.Error(w, `{"error":"no_session"}`, http.StatusConflict)
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !run.Session.Over() {
		if _, perr := game.ParseWord(p.Word); perr != nil {
			http.Error(w, `{"error":"`+guessErrorCode(perr)+`"}`, guessErrorStatus(perr))
			return
		}
		if !words.IsAllowed(p.Word) {
			http.Error(w, `{"error":"not_in_word_list"}`, http.StatusUnprocessableEntity)
			return
		}
	}

	res, err := run.Session.Submit(p.Word)
	if err != nil {
		if errors.Is(err, game.ErrGameOver) {
			http.Error(w, `{"error":"game_over"}`, http.StatusConflict)
			return
		}
		http.Error(w, `{"error":"`+guessErrorCode(err)+`"}`, guessErrorStatus(err))
		return
	}

	if run.Session.Over() && !run.Recorded {
		run.Recorded = true
		elapsed := int(time.Since(run.Start).Milliseconds())
		if err := d.store.InsertResult(r.Context(), daily.Result{
			UserID:    uid,
			Date:      date,
			WordIndex: run.WordIndex,
			Guesses:   len(run.Session.History),
			ElapsedMs: elapsed,
			Won:       run.Session.Status == game.StatusWon,
		}); err != nil {
			log.Warn().Err(err).Str("user", uid).Msg("record daily result")
		}
	}

	_ = json.NewEncoder(w).Encode(dailyGuessRes{
		Tiles:     res,
		State:     run.Session.State(),
		Remaining: run.Session.Remaining,
		Keys:      run.Session.Keys(),
	})
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default
// today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(time.Now().UTC())
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
