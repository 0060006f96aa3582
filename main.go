package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordstack/internal/config"
	"github.com/robalobadob/wordstack/internal/game"
	"github.com/robalobadob/wordstack/internal/httpserver"
	"github.com/robalobadob/wordstack/internal/store"
	"github.com/robalobadob/wordstack/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("bad configuration")
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The server starts answering right away; games stay inert until the
	// dictionary is in.
	lex := words.NewLoader(words.SourceFor(cfg.WordsURL, cfg.WordsFile, cfg.WordsAttempts))
	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, lex, httpserver.Options{
		JWTSecret:    cfg.JWTSecret,
		TokenTTL:     cfg.TokenTTL,
		ClientOrigin: cfg.ClientOrigin,
		Session: []game.Option{
			game.WithStackSize(cfg.StackSize),
			game.WithResolveDelay(cfg.ResolveDelay),
			game.WithScoreTick(cfg.ScoreTick),
		},
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// A failed load is logged by the loader and leaves the game inert;
		// it must not bring the server down.
		_ = lex.Load(ctx)
		return nil
	})
	g.Go(func() error {
		sweepIdle(ctx, mem, cfg.SessionIdle)
		return nil
	})
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("starting wordstack")
		return srv.Run(ctx, ":"+cfg.Port)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("bye")
}

func setupLogging(cfg config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// sweepIdle drops abandoned sessions until ctx is done.
func sweepIdle(ctx context.Context, mem *store.Memory, idle time.Duration) {
	if idle <= 0 {
		return
	}
	t := time.NewTicker(idle / 4)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := mem.Sweep(idle); n > 0 {
				log.Info().Int("dropped", n).Int("live", mem.Len()).Msg("swept idle sessions")
			}
		}
	}
}
