package log2

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Configure installs a console logger on the global zerolog logger. An
// unparsable level falls back to info.
func Configure(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().
		Timestamp().
		Logger()
	if err != nil {
		log.Warn().Str("level", level).Msg("unknown log level, using info")
	}
}

func Debugf(format string, args ...interface{}) {
	log.Debug().Msgf(format, args...)
}
