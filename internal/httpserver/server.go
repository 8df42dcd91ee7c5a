// internal/httpserver/server.go
//
// HTTP wiring for the quintle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints (optional auth): POST /game/new, POST /game/guess,
//     GET /game/{id}.
//   - Daily mode (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints (require auth): /auth/*, /stats/me,
//     /games/mine.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled so cookies work.
//   - Optional auth decorates requests with user context when a valid token
//     is present; routes still run for guests.
//   - The dictionary gate runs here, before Session.Submit, so a rejected
//     word never consumes a guess.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/ovattry/quintle/internal/game"
	"github.com/ovattry/quintle/internal/solution"
	"github.com/ovattry/quintle/internal/store"
	"github.com/ovattry/quintle/internal/words"
)

// Server bundles router, in-memory session store, DB handle and the
// daily-solution provider.
type Server struct {
	r        *chi.Mux
	store    store.Store
	db       *sql.DB
	provider solution.Provider
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, db *sql.DB, provider solution.Provider) *Server {
	s := &Server{r: chi.NewRouter(), store: st, db: db, provider: provider}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(accessLog)
	s.r.Use(jsonContentType)
	s.r.Use(corsFromEnv)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"quintle","endpoints":["/health","POST /game/new","POST /game/guess","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Game endpoints — optional auth, guests can play.
	s.r.With(s.withOptionalAuth()).Post("/game/new", s.handleNewGame)
	s.r.With(s.withOptionalAuth()).Post("/game/guess", s.handleGuess)
	s.r.With(s.withOptionalAuth()).Get("/game/{id}", s.handleGameState)

	// Daily mode — optional auth, one play per user per day.
	s.mountDaily(s.r.With(s.withOptionalAuth()))

	// Auth + profile/stats.
	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := words.Stats()
		_ = json.NewEncoder(w).Encode(map[string]int{"answers": a, "allowed": g})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// accessLog emits one structured log line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("reqId", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Answer string `json:"answer"` // optional fixed answer (testing)
}
type newGameRes struct {
	GameID    string `json:"gameId"`
	Remaining int    `json:"remaining"`
}

// handleNewGame creates a new in-memory session and persists a DB owner row
// (user_id or anonymous_id) for history/stats. Free play draws a random
// answer; the daily word lives under /daily.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	raw := req.Answer
	if raw == "" {
		raw = words.RandomAnswer()
	}
	answer, err := game.ParseWord(raw)
	if err != nil {
		http.Error(w, `{"error":"invalid_answer"}`, http.StatusBadRequest)
		return
	}

	sess := game.NewSession(answer)
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	// Owner row for history/stats; the answer itself stays out of the DB.
	now := time.Now().UTC().Format(time.RFC3339)
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		_, err := s.db.Exec(`INSERT INTO games (id, user_id, started_at, status, guesses)
		                     VALUES (?,?,?,?,0)`, sess.ID, me.ID, now, "playing")
		if err != nil {
			log.Warn().Err(err).Str("gameId", sess.ID).Msg("insert user game row")
		}
	} else {
		anon := s.ensureAnonID(w, r)
		_, err := s.db.Exec(`INSERT INTO games (id, anonymous_id, started_at, status, guesses)
		                     VALUES (?,?,?,?,0)`, sess.ID, anon, now, "playing")
		if err != nil {
			log.Warn().Err(err).Str("gameId", sess.ID).Msg("insert anon game row")
		}
	}

	_ = json.NewEncoder(w).Encode(newGameRes{GameID: sess.ID, Remaining: sess.Remaining})
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Tiles     game.GuessResult `json:"tiles"`
	State     string           `json:"state"` // "playing" | "won" | "lost"
	Remaining int              `json:"remaining"`
	Keys      game.Keyboard    `json:"keys"`
}

// handleGuess applies one guess to a session: dictionary gate first (a
// rejected word costs nothing), then Session.Submit, then best-effort
// persistence of counters and stats.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	if !sess.Over() {
		if _, perr := game.ParseWord(req.Guess); perr != nil {
			http.Error(w, `{"error":"`+guessErrorCode(perr)+`"}`, guessErrorStatus(perr))
			return
		}
		if !words.IsAllowed(req.Guess) {
			http.Error(w, `{"error":"not_in_word_list"}`, http.StatusUnprocessableEntity)
			return
		}
	}

	res, err := sess.Submit(req.Guess)
	if err != nil {
		http.Error(w, `{"error":"`+guessErrorCode(err)+`"}`, guessErrorStatus(err))
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	s.persistProgress(w, r, sess)

	_ = json.NewEncoder(w).Encode(guessRes{
		Tiles:     res,
		State:     sess.State(),
		Remaining: sess.Remaining,
		Keys:      sess.Keys(),
	})
}

// handleGameState reports the current state of a session without mutating
// it: scored history, remaining guesses and keyboard states.
func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"gameId":    sess.ID,
		"state":     sess.State(),
		"remaining": sess.Remaining,
		"history":   sess.History,
		"keys":      sess.Keys(),
	})
}

// guessErrorCode maps Submit errors to wire error codes.
func guessErrorCode(err error) string {
	switch {
	case errors.Is(err, game.ErrGameOver):
		return "game_over"
	case errors.Is(err, game.ErrWordLength):
		return "invalid_length"
	case errors.Is(err, game.ErrWordCharacters):
		return "invalid_characters"
	}
	return "invalid_guess"
}

// guessErrorStatus maps Submit errors to HTTP statuses.
func guessErrorStatus(err error) int {
	if errors.Is(err, game.ErrGameOver) {
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

// persistProgress updates the games row and, on a terminal state, the
// owner's stats. Best effort: failures are logged, never surfaced.
func (s *Server) persistProgress(w http.ResponseWriter, r *http.Request, sess *game.Session) {
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	ownerClause := `anonymous_id=?`
	ownerArg := any(s.ensureAnonID(w, r))
	if me != nil {
		ownerClause = `user_id=?`
		ownerArg = any(me.ID)
	}

	tx, err := s.db.Begin()
	if err != nil {
		log.Warn().Err(err).Msg("begin progress tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE games SET guesses = guesses + 1 WHERE id=? AND `+ownerClause, sess.ID, ownerArg); err != nil {
		log.Warn().Err(err).Msg("update guesses")
	}

	if sess.Over() {
		if _, err := tx.Exec(`UPDATE games SET status=?, finished_at=? WHERE id=? AND `+ownerClause,
			sess.State(), time.Now().UTC().Format(time.RFC3339), sess.ID, ownerArg); err != nil {
			log.Warn().Err(err).Msg("finish game")
		}
		if me != nil {
			if err := s.bumpStats(tx, me.ID, sess.Status == game.StatusWon); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			}
		}
	}
	_ = tx.Commit()
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
