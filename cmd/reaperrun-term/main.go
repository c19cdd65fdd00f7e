package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/reaperrun/assets"
	"github.com/plus3/reaperrun/config"
	"github.com/plus3/reaperrun/game"
	"github.com/plus3/reaperrun/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file; defaults are used when empty")
	flag.Parse()

	status, err := run(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
	switch status {
	case game.Win:
		fmt.Println("You win!")
	case game.Lose:
		fmt.Println("You lose!")
	}
}

func run(configPath string) (game.GameStatus, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return game.Running, err
		}
	}
	// tcell owns the terminal, so only errors are logged.
	cfg.Logging.Level = "error"
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return game.Running, fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	// Glyphs replace the art; the manifest only matters for sprite sizes.
	sprites := game.DefaultSprites()
	if manifest, err := assets.LoadManifest(cfg.Assets.Manifest); err == nil {
		if sprites, err = manifest.SpriteSet(); err != nil {
			return game.Running, err
		}
	}

	session, err := game.NewSession(cfg.Settings(sprites), game.WithLogger(logger))
	if err != nil {
		return game.Running, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return game.Running, fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return game.Running, fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	t := &terminal{
		screen:  screen,
		session: session,
		canvasW: int32(cfg.Window.Width),
		canvasH: int32(cfg.Window.Height),
	}
	t.loop(cfg.FrameDuration())
	return session.Status(), nil
}
