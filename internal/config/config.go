package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/benbeisheim/checkers-backend/internal/engine"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	DefaultPort          = 3000
	DefaultAllowedOrigin = "http://localhost:5173"
	DefaultDepth         = 2
	DefaultLogLevel      = "info"
)

type Config struct {
	Port              int
	AllowedOrigin     string
	Depth             int
	DefaultDifficulty engine.Strategy
	LogLevel          string
}

func Default() Config {
	return Config{
		Port:              DefaultPort,
		AllowedOrigin:     DefaultAllowedOrigin,
		Depth:             DefaultDepth,
		DefaultDifficulty: engine.Basic,
		LogLevel:          DefaultLogLevel,
	}
}

// Load reads the given .env files (".env" when none are named) into the
// process environment and then builds a Config from it. A missing file only
// warns.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file: %w", err)
		}
		log.Warn().Msg("no .env file found, using environment only")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from lookup, applying defaults for unset keys.
func FromEnv(lookup func(string) string) (Config, error) {
	cfg := Default()

	if v := lookup("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}
	if v := lookup("ALLOWED_ORIGIN"); v != "" {
		cfg.AllowedOrigin = v
	}
	if v := lookup("SEARCH_DEPTH"); v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil || depth < 1 {
			return Config{}, fmt.Errorf("invalid SEARCH_DEPTH %q", v)
		}
		cfg.Depth = depth
	}
	if v := lookup("DEFAULT_DIFFICULTY"); v != "" {
		strategy, err := engine.ParseStrategy(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DEFAULT_DIFFICULTY: %w", err)
		}
		cfg.DefaultDifficulty = strategy
	}
	if v := lookup("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return cfg, nil
}
