package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/gothello/internal/board"
	"github.com/hailam/gothello/internal/config"
	"github.com/hailam/gothello/internal/engine"
	"github.com/hailam/gothello/internal/player"
	"github.com/hailam/gothello/internal/protocol"
	"github.com/hailam/gothello/internal/storage"
)

func main() {
	fs := pflag.NewFlagSet("gthplayer", pflag.ExitOnError)
	config.Flags(fs)
	cpuprofile := fs.String("cpuprofile", "", "write cpu profile to file")
	fs.Parse(os.Args[1:])

	cfg, err := config.FromFlags(fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := cfg.SetupLogging(os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("could-not-create-cpu-profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could-not-start-cpu-profile")
		}
		defer pprof.StopCPUProfile()
		log.Info().Str("path", profilePath).Msg("cpu-profiling-enabled")
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := play(sigCtx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		pprof.StopCPUProfile()
		log.Fatal().Err(err).Msg("game-failed")
	}
}

func play(ctx context.Context, cfg *config.Config) error {
	eng := engine.NewEngine()
	if cfg.Seed != 0 {
		eng = engine.NewSeededEngine(cfg.Seed)
	}

	opts := protocol.Options{
		Side:     cfg.Color(),
		Host:     cfg.Host,
		Server:   cfg.Server,
		Attempts: cfg.DialAttempts,
	}
	client, err := protocol.Dial(ctx, opts)
	if err != nil {
		return err
	}
	defer client.Close()

	p := player.New(eng, client, cfg.Depth)
	p.Opponent = opts.Addr()

	if cfg.Record {
		store, err := openStorage(cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		p.Recorder = store
	}

	res, err := playUntilQuit(ctx, p.Play, client.Close)
	if err != nil {
		return err
	}

	if res.Winner != board.Empty {
		fmt.Printf("%s win\n", res.Winner)
	}
	return nil
}

// playUntilQuit runs the game and calls hangUp as soon as ctx is cancelled,
// so a blocked read does not hold the seat until the server times out.
func playUntilQuit(ctx context.Context, game func(context.Context) (player.Result, error), hangUp func() error) (player.Result, error) {
	var res player.Result
	g, gctx := errgroup.WithContext(ctx)
	finished := make(chan struct{})
	g.Go(func() error {
		defer close(finished)
		var err error
		res, err = game(gctx)
		return err
	})
	g.Go(func() error {
		select {
		case <-finished:
			return nil
		case <-gctx.Done():
		}
		select {
		case <-finished:
			return nil
		default:
		}
		log.Info().Msg("got-quit-signal")
		return hangUp()
	})
	err := g.Wait()
	return res, err
}

func openStorage(cfg *config.Config) (*storage.Storage, error) {
	if cfg.DataDir == "" {
		return storage.NewStorage()
	}
	return storage.Open(filepath.Join(cfg.DataDir, "db"))
}
