package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/wordle-engine/internal/config"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/database"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/httpserver"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/metrics"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/store"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/words"
)

const sweepEvery = time.Minute

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API. Settings come from the environment (or .env):
PORT, LOG_LEVEL, DB_PATH, WORDS_DIR, JWT_SECRET, TOKEN_TTL, COOKIE_NAME,
COOKIE_SECURE, CLIENT_ORIGIN, DAILY_SALT, SESSION_TTL, KEEP_SCORE_ON_RESET.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			zerolog.SetGlobalLevel(cfg.Level())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	bank, err := loadBank(ctx, cfg)
	if err != nil {
		return err
	}
	answers, allowed := bank.Stats()
	log.Info().Int("answers", answers).Int("allowed", allowed).Strs("categories", bank.Categories()).Msg("word bank loaded")

	mem := store.NewMemory()
	api := httpserver.New(httpserver.Options{
		Bank:  bank,
		Store: mem,
		Auth: httpserver.Auth{
			Secret:     []byte(cfg.JWTSecret),
			TTL:        cfg.TokenTTL,
			CookieName: cfg.CookieName,
			Secure:     cfg.CookieSecure,
		},
		ClientOrigin:     cfg.ClientOrigin,
		DailySalt:        cfg.DailySalt,
		KeepScoreOnReset: cfg.KeepScoreOnReset,
	})
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("starting wordle-engine")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		janitor(ctx, mem, cfg.SessionTTL, sweepEvery)
		return nil
	})
	return g.Wait()
}

// loadBank reads the source lists (WORDS_DIR or embedded), seeds the SQLite
// word table on first run and serves from the table. With DB_PATH empty
// the lists are used directly.
func loadBank(ctx context.Context, cfg *config.Config) (*words.Bank, error) {
	var (
		src *words.Bank
		err error
	)
	if cfg.WordsDir != "" {
		src, err = words.FromDir(cfg.WordsDir)
	} else {
		src, err = words.Embedded()
	}
	if err != nil {
		return nil, err
	}
	if cfg.DBPath == "" {
		return src, nil
	}

	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		return nil, err
	}
	n, err := words.Seed(ctx, db, src)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		log.Info().Int("rows", n).Str("db", cfg.DBPath).Msg("seeded word table")
	}
	return words.Load(ctx, db)
}

// janitor drops idle sessions until ctx is done.
func janitor(ctx context.Context, mem *store.Memory, ttl, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := mem.Sweep(ttl); n > 0 {
				log.Debug().Int("removed", n).Msg("swept idle sessions")
			}
			metrics.ActiveSessions.Set(float64(mem.Len()))
		}
	}
}
