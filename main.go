package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stylescout/stylescout/config"
	"github.com/stylescout/stylescout/internal/llm"
	"github.com/stylescout/stylescout/internal/playground"
	"github.com/stylescout/stylescout/internal/retry"
	"github.com/stylescout/stylescout/internal/server"
	"github.com/stylescout/stylescout/internal/storage"
	"golang.org/x/sync/errgroup"
)

const sweepInterval = 10 * time.Minute

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	config.LoadEnvFile()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	encryptionKey, err := storage.DeriveKey(cfg.DataKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to derive encryption key")
	}

	store, err := storage.NewSQLiteStore(cfg.DBPath, encryptionKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize store")
	}
	defer store.Close()
	log.Info().Str("dbPath", cfg.DBPath).Msg("store initialized")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	gemini, err := llm.NewGeminiClient(ctx, llm.Config{
		APIKey:        cfg.GeminiAPIKey,
		AnalysisModel: cfg.AnalysisModel,
		PreviewModel:  cfg.PreviewModel,
		Retry:         retry.Default(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize gemini client")
	}
	log.Info().Msg("gemini client initialized")

	analyzer := llm.NewCachedAnalyzer(gemini, store)
	sessions := playground.NewStore()

	srv := server.New(analyzer, gemini, sessions, store, server.NewImageFetcher())
	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Handler(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", cfg.ListenAddr).Msg("http server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return runSweeper(ctx, sessions, store, cfg.SessionTTL)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("shutdown with error")
	} else {
		log.Info().Msg("shutdown complete")
	}
}

// runSweeper periodically drops expired playground sessions and previews
// older than the session TTL.
func runSweeper(ctx context.Context, sessions *playground.Store, store storage.Store, ttl time.Duration) error {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			sessions.Sweep(ttl)
			n, err := store.DeletePreviewsBefore(time.Now().Add(-ttl))
			if err != nil {
				log.Warn().Err(err).Msg("failed to sweep old previews")
			} else if n > 0 {
				log.Debug().Int64("removed", n).Msg("swept old previews")
			}
		}
	}
}
