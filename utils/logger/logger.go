// ABOUTME: Builds the process logger: stdout, a month-partitioned file and optional OTel export
// ABOUTME: Level values are lowercased so every sink carries the same line shape
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log/global"
)

var Logger *slog.Logger

// Options configures Init.
type Options struct {
	Level       string
	Format      string
	ServiceName string
	Component   string
	Dir         string
	FilePrefix  string
	Location    *time.Location
	OTelEnabled bool
	Stdout      io.Writer
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func handlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level:     level,
		AddSource: false,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok {
					return slog.Attr{Key: "level", Value: slog.StringValue(strings.ToLower(lvl.String()))}
				}
			}
			return a
		},
	}
}

func newHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	if format == "text" {
		return slog.NewTextHandler(w, handlerOptions(level))
	}
	return slog.NewJSONHandler(w, handlerOptions(level))
}

// Init builds the logger, installs it as the slog default and returns a
// closer for the log file.
func Init(opts Options) (*slog.Logger, io.Closer, error) {
	level := ParseLevel(opts.Level)
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	handlers := []slog.Handler{newHandler(stdout, opts.Format, level)}

	var closer io.Closer = nopCloser{}
	if opts.Dir != "" {
		file, err := NewMonthlyFile(opts.Dir, opts.FilePrefix, opts.Location)
		if err != nil {
			return nil, nil, err
		}
		// files are always JSON so they stay machine readable
		handlers = append(handlers, slog.NewJSONHandler(file, handlerOptions(level)))
		closer = file
	}

	if opts.OTelEnabled {
		handlers = append(handlers, otelslog.NewHandler(
			opts.ServiceName,
			otelslog.WithLoggerProvider(global.GetLoggerProvider()),
		))
	}

	l := slog.New(NewMultiHandler(handlers...)).With("service", opts.ServiceName)
	if opts.Component != "" {
		l = l.With("component", opts.Component)
	}

	Logger = l
	slog.SetDefault(l)

	return l, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
