package dicom

import (
	"os"

	"github.com/rs/zerolog"
)

// log is the package-wide structured logger. Diagnostics are always
// debug-level: the codec never logs at a level that implies failure, since
// non-fatal oddities are reported to the caller via File.Warnings, not by
// forcing output onto stderr.
var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
	Level(zerolog.WarnLevel).
	With().Timestamp().Logger()

// SetLogLevel lets a host application turn up codec diagnostics, e.g. for
// debugging a misbehaving file. Defaults to warn-level (roughly silent)
// because the codec surfaces the same information structurally via
// File.Warnings; logging is a debugging aid, not the primary error channel.
func SetLogLevel(level zerolog.Level) {
	log = log.Level(level)
}
