package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nikosalonen/moelkky-sub000/internal/httpserver"
	"github.com/nikosalonen/moelkky-sub000/internal/session"
	"github.com/nikosalonen/moelkky-sub000/internal/stats"
	"github.com/nikosalonen/moelkky-sub000/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := openDB(getEnv("DB_PATH", "./data/molkky.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	adapter := session.NewAdapter(store.NewSQLiteStore(db))
	srv := httpserver.New(adapter, stats.NewStore(db))
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting molkky scorekeeper")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
