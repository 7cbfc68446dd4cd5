package logging

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
)

// LogConfig describes configuration of the logger.
type LogConfig struct {
	// Log level: 0-debug 1-info 2-warn 3-error 4-fatal 5-panic
	Level int

	// Path to the logfile. "stdout" or "stderr" are possible too.
	Path string

	// The size of diode buffer. 0 disables the diode. Recommended big.
	DiodeBuf int

	// The smallest unit of time (recommended time.Millisecond)
	TimeUnit time.Duration
}

// NewLogger creates a zerolog logger based on the given LogConfig and sets
// the global zerolog field names to their short forms. It should be called
// once at startup, the returned logger is then handed to the components:
//
//	log.Info().Uint64(logging.Round, 12).Msg(logging.SubdagBuilt)
//
// Timestamps are logged as integers starting at 0 when the logger was
// created, counted in the chosen time unit.
func NewLogger(lc LogConfig) (zerolog.Logger, error) {
	var (
		output io.Writer
		err    error
	)

	switch lc.Path {
	case "stdout":
		output = os.Stdout

	case "stderr":
		output = os.Stderr

	default:
		output, err = os.Create(lc.Path)
		if err != nil {
			return zerolog.Nop(), err
		}
	}

	if lc.DiodeBuf > 0 {
		output = diode.NewWriter(output, lc.DiodeBuf, 0, func(missed int) {
			fmt.Fprintf(os.Stderr, "WARNING: Dropped %d log entries\n", missed)
		})
	}

	zerolog.SetGlobalLevel(zerolog.Level(lc.Level))

	// short names of compulsory fields to save some space
	zerolog.TimestampFieldName = Time
	zerolog.LevelFieldName = Level
	zerolog.MessageFieldName = Event

	// make level names single character
	zerolog.LevelFieldMarshalFunc = func(l zerolog.Level) string {
		return strconv.Itoa(int(l))
	}

	log := zerolog.New(output).With().Timestamp().Logger()

	// log the beginning of time
	genesis := time.Now()
	log.Log().Msg(Genesis)

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.TimestampFunc = func() time.Time {
		return time.Unix(int64(time.Since(genesis)/lc.TimeUnit), 0)
	}

	return log, nil
}
