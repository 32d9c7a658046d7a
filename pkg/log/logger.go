package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger = zerolog.Nop()
var once sync.Once

type LoggerOption func(*LoggerConfig)

type LoggerConfig struct {
	fileName string
	console  bool
	level    zerolog.Level
	writer   io.Writer
}

// WithFileLogger adds a rotating file output. An empty name is ignored.
func WithFileLogger(fileName string) LoggerOption {
	return func(l *LoggerConfig) {
		l.fileName = fileName
	}
}

func WithConsoleLogger() LoggerOption {
	return func(l *LoggerConfig) {
		l.console = true
	}
}

// WithLogLevel sets the minimum level by name ("debug", "info", ...).
// Unknown names keep the default info level.
func WithLogLevel(level string) LoggerOption {
	return func(l *LoggerConfig) {
		if parsed, err := zerolog.ParseLevel(level); err == nil && level != "" {
			l.level = parsed
		}
	}
}

// WithWriter sends JSON output to w instead of stdout.
func WithWriter(w io.Writer) LoggerOption {
	return func(l *LoggerConfig) {
		l.writer = w
	}
}

// Init configures the process-wide logger. Only the first call has effect.
func Init(serviceName string, opts ...LoggerOption) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		l := &LoggerConfig{level: zerolog.InfoLevel}

		for _, opt := range opts {
			opt(l)
		}

		output := make([]io.Writer, 0, 3)
		var defaultOutput io.Writer = os.Stdout
		if l.writer != nil {
			defaultOutput = l.writer
		}
		if l.console {
			output = append(output, zerolog.ConsoleWriter{
				Out:        defaultOutput,
				TimeFormat: time.RFC3339,
			})
		}
		if l.fileName != "" {
			output = append(output, &lumberjack.Logger{
				Filename:   l.fileName,
				MaxSize:    5,
				MaxBackups: 10,
				MaxAge:     14,
				Compress:   true,
			})
		}

		if len(output) == 0 {
			output = append(output, defaultOutput)
		}

		logger = zerolog.New(zerolog.MultiLevelWriter(output...)).
			Level(l.level).
			With().
			Timestamp().
			Str("service", serviceName).
			Logger()
	})
}

// GetLogger returns the process logger, a no-op logger before Init.
func GetLogger() zerolog.Logger {
	return logger
}
