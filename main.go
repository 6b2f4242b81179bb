// Gothello - a 5x5 capture game against the engine, built with Ebitengine
package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/hailam/gothello/internal/config"
	"github.com/hailam/gothello/internal/ui"
)

func main() {
	fs := pflag.NewFlagSet("gothello", pflag.ExitOnError)
	config.Flags(fs)
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

	// Saved preferences win unless the command line names a value.
	opts := ui.Options{
		DataDir: cfg.DataDir,
		Seed:    cfg.Seed,
	}
	if fs.Changed("difficulty") {
		d := cfg.EngineDifficulty()
		opts.Difficulty = &d
	}
	if fs.Changed("side") {
		opts.PlayerColor = cfg.Color()
	}

	game := ui.NewGame(opts)
	defer game.Close()

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("Gothello")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		game.Close()
		log.Fatal().Err(err).Msg("run-game")
	}
}
