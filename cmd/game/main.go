package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Boiling-Point/internal/game"
	"github.com/Garsondee/Boiling-Point/internal/logger"
)

func main() {
	world, err := setup(os.Args[1:])
	if err != nil {
		logger.Log.WithError(err).Fatal("startup failed")
	}

	g := game.New(world)
	ebiten.SetWindowTitle("Boiling Point")
	ebiten.SetWindowSize(g.Layout(0, 0))
	if err := ebiten.RunGame(g); err != nil {
		world.Context().Log.WithError(err).Fatal("run game")
	}
}

// setup parses flags, configures logging and builds the world session.
func setup(args []string) (*game.World, error) {
	fs := flag.NewFlagSet("game", flag.ContinueOnError)
	configPath := fs.String("config", "config.yaml", "path to YAML config")
	levelPath := fs.String("level", "", "level file (overrides config)")
	seed := fs.Int64("seed", 0, "random seed (0 = config or time)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := game.LoadConfig(*configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	if *levelPath != "" {
		cfg.LevelPath = *levelPath
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	profiles := game.DefaultProfiles()
	if cfg.ProfilesPath != "" {
		if profiles, err = game.LoadProfiles(cfg.ProfilesPath); err != nil {
			return nil, fmt.Errorf("load profiles: %w", err)
		}
	}

	ctx := game.NewContext(cfg, game.NewSeededRandom(cfg.Seed), profiles)
	lvl, err := game.LoadLevel(cfg.LevelPath, cfg.TileSize, ctx.Log.WithField("component", "level"))
	if err != nil {
		return nil, err
	}
	progress := game.NewProgressStore(cfg.ProgressPath, ctx.Log.WithField("component", "progress"))
	world, err := game.NewWorld(ctx, lvl, progress)
	if err != nil {
		return nil, err
	}
	ctx.Log.WithField("seed", cfg.Seed).WithField("level", cfg.LevelPath).Info("starting")
	return world, nil
}
