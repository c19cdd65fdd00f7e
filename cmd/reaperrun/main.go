package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/reaperrun/assets"
	"github.com/plus3/reaperrun/config"
	"github.com/plus3/reaperrun/game"
	"github.com/plus3/reaperrun/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file; defaults are used when empty")
	debug := flag.Bool("debug", false, "show the ImGui debug overlay")
	flag.Parse()

	if err := run(*configPath, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func run(configPath string, debug bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	manifest, err := assets.LoadManifest(cfg.Assets.Manifest)
	if err != nil {
		return err
	}
	sprites, err := manifest.SpriteSet()
	if err != nil {
		return err
	}

	session, err := game.NewSession(cfg.Settings(sprites), game.WithLogger(logger))
	if err != nil {
		return err
	}

	g := &Game{
		session:  session,
		logger:   logger,
		textures: loadTextures(manifest.TexturePaths(cfg.Assets.BaseDir), logger),
		width:    int32(cfg.Window.Width),
		height:   int32(cfg.Window.Height),
	}
	if debug || cfg.Debug.Overlay {
		g.debug = newDebugOverlay(cfg, session)
	} else {
		ebiten.SetWindowTitle(cfg.Window.Title)
		ebiten.SetWindowSize(int(float64(cfg.Window.Width)*cfg.Window.Scale), int(float64(cfg.Window.Height)*cfg.Window.Scale))
	}
	ebiten.SetTPS(cfg.World.FrameRate)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}

	switch g.session.Status() {
	case game.Win:
		fmt.Println("You win!")
	case game.Lose:
		fmt.Println("You lose!")
	}
	return nil
}
