// main.go
//
// Process bootstrap for the quintle server: env, logging, word lists,
// database, daily-solution provider, HTTP server.

package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ovattry/quintle/internal/httpserver"
	"github.com/ovattry/quintle/internal/solution"
	"github.com/ovattry/quintle/internal/store"
	"github.com/ovattry/quintle/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}

	db, err := openDB(getEnv("DB_PATH", "./data/quintle.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	provider := newProvider()
	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, db, provider)

	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting quintle server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// newProvider picks the daily-solution source.
// SOLUTION_SOURCE=nyt fetches the official endpoint; anything else uses the
// deterministic offline provider seeded by DAILY_SALT.
func newProvider() solution.Provider {
	if getEnv("SOLUTION_SOURCE", "local") == "nyt" {
		log.Info().Msg("daily solutions from official endpoint")
		return solution.NewNYT()
	}
	return solution.NewLocal(getEnv("DAILY_SALT", "local_dev_salt"))
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
