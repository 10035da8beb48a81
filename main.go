package main

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/julekalender/assets"
	"github.com/robalobadob/julekalender/internal/config"
	"github.com/robalobadob/julekalender/internal/daily"
	"github.com/robalobadob/julekalender/internal/dictionary"
	"github.com/robalobadob/julekalender/internal/game"
	"github.com/robalobadob/julekalender/internal/httpserver"
	"github.com/robalobadob/julekalender/internal/store"
	"github.com/robalobadob/julekalender/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	setupLogging(cfg)

	var rnd *rand.Rand
	if cfg.WordsSeed != 0 {
		rnd = words.Seeded(cfg.WordsSeed)
	}
	src, err := words.Load(cfg.WordsFile, rnd)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}

	db, err := openDB(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open db")
	}
	defer db.Close()
	if err := migrate(db, assets.Migrations()); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	var dict game.Dictionary = dictionary.AcceptAll
	if !cfg.DictionaryDisabled {
		dict = dictionary.NewClient(dictionary.ClientConfig{
			BaseURL: cfg.DictionaryURL,
			Timeout: cfg.DictionaryTimeout,
		})
	}

	cal := daily.Calendar{
		Window:   daily.Window{Month: time.Month(cfg.CalendarMonth), Days: cfg.CalendarDays},
		Override: cfg.CalendarDay,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mem := store.NewMemoryStore()
	go store.RunSweeper(ctx, mem, time.Minute, cfg.SessionIdleTTL, func(n int) {
		log.Info().Int("evicted", n).Msg("idle sessions swept")
	})

	srv := httpserver.New(httpserver.Deps{
		Store:      mem,
		Results:    daily.NewStore(db),
		Words:      src,
		Calendar:   cal,
		Dictionary: dict,
		Auth: httpserver.AuthConfig{
			Secret:     cfg.JWTSecret,
			TokenTTL:   cfg.TokenTTL,
			Production: cfg.Production,
		},
		ClientOrigin: cfg.ClientOrigin,
	})

	hs := &http.Server{Addr: ":" + cfg.Port, Handler: srv.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = hs.Shutdown(shutdownCtx)
	}()

	log.Info().Str("port", cfg.Port).Int("day", cal.Today()).Int("words", src.Len()).Msg("starting julekalender")
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func setupLogging(cfg *config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
