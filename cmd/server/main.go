package main

import (
	"fmt"
	"os"

	"github.com/benbeisheim/checkers-backend/internal/config"
	"github.com/benbeisheim/checkers-backend/internal/controller"
	"github.com/benbeisheim/checkers-backend/internal/log2"
	"github.com/benbeisheim/checkers-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "checkers-server",
		Usage: "Serve checkers games against the minimax engine",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "port to listen on (overrides PORT)",
			},
			&cli.IntFlag{
				Name:    "depth",
				Aliases: []string{"d"},
				Usage:   "search depth in plies (overrides SEARCH_DEPTH)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "zerolog level (overrides LOG_LEVEL)",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "dotenv file to load",
				Value: ".env",
			},
		},
		Action: serve,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func serve(cCtx *cli.Context) error {
	cfg, err := config.Load(cCtx.String("env-file"))
	if err != nil {
		return err
	}
	if cCtx.IsSet("port") {
		cfg.Port = cCtx.Int("port")
	}
	if cCtx.IsSet("depth") {
		cfg.Depth = cCtx.Int("depth")
	}
	if cCtx.IsSet("log-level") {
		cfg.LogLevel = cCtx.String("log-level")
	}
	if cfg.Depth < 1 {
		return fmt.Errorf("depth must be at least 1, got %d", cfg.Depth)
	}
	log2.Configure(cfg.LogLevel)

	gameManager := service.NewGameManager(cfg.Depth)
	gameService := service.NewGameService(gameManager, cfg.DefaultDifficulty)
	app := controller.NewApp(gameService, cfg.AllowedOrigin)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info().
		Str("addr", addr).
		Int("depth", cfg.Depth).
		Str("difficulty", cfg.DefaultDifficulty.String()).
		Msg("listening")
	return app.Listen(addr)
}
