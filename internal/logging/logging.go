// Package logging configures the global zerolog logger for the binaries.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup points the global logger at w (stderr when nil) at the given level,
// with unix timestamps and caller info. Console switches to the human
// readable writer.
func Setup(level zerolog.Level, w io.Writer, console bool) {
	if w == nil {
		w = os.Stderr
	}
	if console {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// add file and line number to log
	log.Logger = zerolog.New(w).With().Timestamp().Caller().Logger().Level(level)
}
