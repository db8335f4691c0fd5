package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	router "github.com/dkeye/mazetown/internal/adapters/http"
	"github.com/dkeye/mazetown/internal/adapters/storage/memory"
	"github.com/dkeye/mazetown/internal/adapters/storage/postgres"
	"github.com/dkeye/mazetown/internal/adapters/video"
	"github.com/dkeye/mazetown/internal/app"
	"github.com/dkeye/mazetown/internal/app/orch"
	"github.com/dkeye/mazetown/internal/config"
	"github.com/dkeye/mazetown/internal/core"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && lvl != zerolog.NoLevel {
		zerolog.SetGlobalLevel(lvl)
	}

	board, closeBoard, err := openLeaderboard(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open leaderboard")
	}
	defer closeBoard()

	issuer, err := newVideoIssuer(cfg.Video)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure video tokens")
	}

	reg := app.NewRegistry(app.TownDefaults{
		Capacity:      cfg.TownCapacity,
		InviteTimeout: cfg.InviteTimeout,
		DemoTownID:    cfg.DemoTownID,
		Video:         issuer,
		Leaderboard:   board,
	})
	if cfg.DemoTownID != "" {
		if _, err := reg.CreateTown(cfg.DemoTownID, true); err != nil {
			log.Fatal().Err(err).Msg("failed to create demo town")
		}
	}

	o := &orch.Orchestrator{
		Registry:    reg,
		Leaderboard: board,
		Limiter:     app.NewInviteRateLimiter(cfg.InviteRateLimit, cfg.InviteRateInterval),
		Policy:      app.SimplePolicy{},
	}

	r := router.SetupRouter(ctx, cfg, o)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("mazetown server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		reg.StopAll(shutdownCtx)
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server error")
		return
	}
	log.Info().Msg("Server exited gracefully")
}

func openLeaderboard(ctx context.Context, dsn string) (core.LeaderboardStore, func(), error) {
	if dsn == "" {
		log.Warn().Str("module", "main").Msg("database_url empty, leaderboard kept in memory")
		return memory.NewLeaderboard(), func() {}, nil
	}
	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Str("module", "main").Msg("close leaderboard")
		}
	}, nil
}

// newVideoIssuer falls back to throwaway credentials when none are set, so
// a local server still hands out tokens.
func newVideoIssuer(cfg config.VideoConfig) (*video.TokenIssuer, error) {
	vc := video.Config{APIKey: cfg.APIKey, APISecret: cfg.APISecret, TTL: cfg.TokenTTL}
	if vc.APIKey == "" || vc.APISecret == "" {
		log.Warn().Str("module", "main").Msg("video credentials missing, issuing tokens with a random secret")
		vc.APIKey = "local"
		vc.APISecret = uuid.NewString()
	}
	return video.NewTokenIssuer(vc)
}
