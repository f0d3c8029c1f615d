package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ekisa-team/ttsrelay/internal/env"
	"github.com/ekisa-team/ttsrelay/internal/xfs"
)

const (
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
	defaultMaxAgeDays = 28
)

// Options configures the logger.
type Options struct {
	Output    io.Writer
	LogFile   string
	Level     slog.Level
	LogToFile bool
}

// Option mutates Options.
type Option func(*Options)

// WithLogToFile enables or disables the rotating file sink.
func WithLogToFile(enabled bool) Option {
	return func(o *Options) {
		o.LogToFile = enabled
	}
}

// WithLogFile sets the path of the rotating log file.
func WithLogFile(path string) Option {
	return func(o *Options) {
		o.LogFile = path
	}
}

// WithLevel sets the minimum level.
func WithLevel(level slog.Level) Option {
	return func(o *Options) {
		o.Level = level
	}
}

// WithOutput sets the console writer. Defaults to os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(o *Options) {
		o.Output = w
	}
}

// New builds a slog.Logger for the given environment.
// Development logs are colorized via tint, production logs are JSON.
// When file logging is enabled, JSON records are also written to a rotating file.
func New(environment env.Environment, opts ...Option) *slog.Logger {
	o := Options{
		Output:  os.Stderr,
		LogFile: filepath.Join("logs", "ttsrelay.log"),
		Level:   slog.LevelInfo,
	}
	if !environment.IsProduction() {
		o.Level = slog.LevelDebug
	}
	for _, opt := range opts {
		opt(&o)
	}

	var console slog.Handler
	if environment.IsProduction() {
		console = slog.NewJSONHandler(o.Output, &slog.HandlerOptions{Level: o.Level})
	} else {
		console = tint.NewHandler(o.Output, &tint.Options{
			Level:      o.Level,
			TimeFormat: time.Kitchen,
		})
	}

	if !o.LogToFile {
		return slog.New(console)
	}

	file := &lumberjack.Logger{
		Filename:   xfs.ExpandTilde(o.LogFile),
		MaxSize:    defaultMaxSizeMB,
		MaxBackups: defaultMaxBackups,
		MaxAge:     defaultMaxAgeDays,
		Compress:   true,
	}

	return slog.New(slogmulti.Fanout(
		console,
		slog.NewJSONHandler(file, &slog.HandlerOptions{Level: o.Level}),
	))
}
