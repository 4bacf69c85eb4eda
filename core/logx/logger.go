package logx

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options controls the global logger. Zero value means development, debug level.
type Options struct {
	Env   string
	Level string
	Out   io.Writer
}

// Init configures the global zerolog logger. Production gets JSON lines,
// everything else a console writer with caller info.
func Init(opts Options) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	level := parseLevel(opts.Level, opts.Env)
	if strings.EqualFold(opts.Env, "production") {
		log.Logger = zerolog.New(out).With().Timestamp().Logger().Level(level)
		return
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out}).
		With().Timestamp().Caller().Logger().Level(level)
}

func parseLevel(level, env string) zerolog.Level {
	if level != "" {
		if l, err := zerolog.ParseLevel(strings.ToLower(level)); err == nil {
			return l
		}
	}
	if strings.EqualFold(env, "production") {
		return zerolog.InfoLevel
	}
	return zerolog.DebugLevel
}

// Logger returns the global logger, for packages that need a value rather than events.
func Logger() *zerolog.Logger {
	return &log.Logger
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}

// Printf lets the global logger stand in for a log.Logger (gorm, cron).
type Printf struct {
	Level zerolog.Level
}

func (p Printf) Printf(format string, args ...interface{}) {
	log.WithLevel(p.Level).Msgf(strings.TrimSpace(format), args...)
}
