// Package logging configures the global zerolog logger for the CLI.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup points the global logger at w using a console writer for
// format "console" and JSON lines otherwise. Unknown levels fall back to info.
// It returns the run id attached to every log line.
func Setup(w io.Writer, level, format string) string {
	if w == nil {
		w = os.Stderr
	}
	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	runID := uuid.NewString()
	log.Logger = zerolog.New(w).With().
		Timestamp().
		Str("service", "agent-staffing").
		Str("run_id", runID).
		Logger()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		log.Warn().Str("level", level).Msg("invalid log level, using info")
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	return runID
}
