package httpserver_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovattry/quintle/internal/httpserver"
	"github.com/ovattry/quintle/internal/solution"
	"github.com/ovattry/quintle/internal/store"
	"github.com/ovattry/quintle/internal/words"
)

const testSchema = `
CREATE TABLE users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE COLLATE NOCASE,
    password_hash TEXT NOT NULL,
    created_at TEXT NOT NULL,
    games_played INTEGER NOT NULL DEFAULT 0,
    wins INTEGER NOT NULL DEFAULT 0,
    streak INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE games (
    id TEXT PRIMARY KEY,
    user_id TEXT,
    anonymous_id TEXT,
    started_at TEXT NOT NULL,
    finished_at TEXT,
    status TEXT NOT NULL DEFAULT 'playing',
    guesses INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE daily_results (
    user_id TEXT NOT NULL,
    date TEXT NOT NULL,
    word_index INTEGER NOT NULL,
    guesses INTEGER NOT NULL,
    elapsed_ms INTEGER NOT NULL,
    won INTEGER NOT NULL DEFAULT 1,
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
    UNIQUE(user_id, date)
);`

func newTestServer(t *testing.T) *httpserver.Server {
	t.Helper()
	require.NoError(t, words.Init())

	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	return httpserver.New(store.NewMemoryStore(), db, solution.NewLocal("test_salt"))
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, cookies []*http.Cookie) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	out := map[string]any{}
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec, out
}

func Test_game_flow_win(t *testing.T) {
	srv := newTestServer(t)

	rec, res := doJSON(t, srv.Router(), http.MethodPost, "/game/new",
		map[string]string{"answer": "crane"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	gameID, _ := res["gameId"].(string)
	require.NotEmpty(t, gameID)
	assert.EqualValues(t, 6, res["remaining"])

	// Unknown word: rejected without consuming a guess.
	rec, res = doJSON(t, srv.Router(), http.MethodPost, "/game/guess",
		map[string]string{"gameId": gameID, "guess": "zzzzz"}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, res = doJSON(t, srv.Router(), http.MethodPost, "/game/guess",
		map[string]string{"gameId": gameID, "guess": "snake"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "playing", res["state"])
	assert.EqualValues(t, 5, res["remaining"])

	tiles, ok := res["tiles"].([]any)
	require.True(t, ok)
	require.Len(t, tiles, 5)
	first := tiles[0].(map[string]any)
	assert.Equal(t, "s", first["letter"])
	assert.Equal(t, "absent", first["state"])
	third := tiles[2].(map[string]any)
	assert.Equal(t, "correct", third["state"])

	rec, res = doJSON(t, srv.Router(), http.MethodPost, "/game/guess",
		map[string]string{"gameId": gameID, "guess": "crane"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "won", res["state"])

	// Any further guess is a usage error.
	rec, _ = doJSON(t, srv.Router(), http.MethodPost, "/game/guess",
		map[string]string{"gameId": gameID, "guess": "snake"}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func Test_game_guess_validation(t *testing.T) {
	srv := newTestServer(t)

	_, res := doJSON(t, srv.Router(), http.MethodPost, "/game/new",
		map[string]string{"answer": "crane"}, nil)
	gameID := res["gameId"].(string)

	rec, res := doJSON(t, srv.Router(), http.MethodPost, "/game/guess",
		map[string]string{"gameId": gameID, "guess": "care"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_length", res["error"])

	rec, res = doJSON(t, srv.Router(), http.MethodPost, "/game/guess",
		map[string]string{"gameId": gameID, "guess": "cr4ne"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_characters", res["error"])

	rec, _ = doJSON(t, srv.Router(), http.MethodPost, "/game/guess",
		map[string]string{"gameId": "missing", "guess": "crane"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Nothing consumed by any of the rejections.
	_, res = doJSON(t, srv.Router(), http.MethodGet, "/game/"+gameID, nil, nil)
	assert.EqualValues(t, 6, res["remaining"])
	assert.Equal(t, "playing", res["state"])
}

func Test_daily_flow(t *testing.T) {
	srv := newTestServer(t)

	rec, res := doJSON(t, srv.Router(), http.MethodPost, "/daily/new", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	gameID, _ := res["gameId"].(string)
	require.NotEmpty(t, gameID)
	assert.Equal(t, false, res["played"])

	// The anon cookie from /daily/new identifies the run on /daily/guess.
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	// "stare" is allowed but never an answer, so the run keeps playing.
	rec, res = doJSON(t, srv.Router(), http.MethodPost, "/daily/guess",
		map[string]string{"gameId": gameID, "word": "stare"}, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "playing", res["state"])
	assert.EqualValues(t, 5, res["remaining"])

	// Same user, same day: /daily/new resumes the run in progress.
	rec, res = doJSON(t, srv.Router(), http.MethodPost, "/daily/new", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, gameID, res["gameId"])
	assert.EqualValues(t, 5, res["remaining"])

	// A different game id is rejected.
	rec, _ = doJSON(t, srv.Router(), http.MethodPost, "/daily/guess",
		map[string]string{"gameId": "bogus", "word": "stare"}, cookies)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, res = doJSON(t, srv.Router(), http.MethodGet, "/daily/leaderboard", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, res["date"])
}

func Test_auth_signup_and_me(t *testing.T) {
	srv := newTestServer(t)

	rec, res := doJSON(t, srv.Router(), http.MethodPost, "/auth/signup",
		map[string]string{"username": "player_one", "password": "hunter2hunter2"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "player_one", res["username"])

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	rec, res = doJSON(t, srv.Router(), http.MethodGet, "/auth/me", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "player_one", res["username"])

	rec, res = doJSON(t, srv.Router(), http.MethodGet, "/stats/me", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, res["gamesPlayed"])

	// Duplicate username is a conflict.
	rec, _ = doJSON(t, srv.Router(), http.MethodPost, "/auth/signup",
		map[string]string{"username": "player_one", "password": "hunter2hunter2"}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Bad credentials.
	rec, _ = doJSON(t, srv.Router(), http.MethodPost, "/auth/login",
		map[string]string{"username": "player_one", "password": "wrong-password"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// No token at all.
	rec, _ = doJSON(t, srv.Router(), http.MethodGet, "/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func Test_health(t *testing.T) {
	srv := newTestServer(t)
	rec, res := doJSON(t, srv.Router(), http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, res["ok"])
}
