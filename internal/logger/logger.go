package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

// New writes JSON lines in prod and colored console lines otherwise.
// Unknown levels fall back to info.
func New(stage, level string) zerolog.Logger {
	return NewWithWriter(os.Stderr, stage, level)
}

func NewWithWriter(w io.Writer, stage, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	out := w
	if stage != StageProd {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Str("stage", stage).Logger()
}
