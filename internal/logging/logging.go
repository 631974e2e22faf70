// Package logging builds the zap logger shared by the CLI and the converter.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a structured, key/value logger.
type Logger struct {
	*zap.SugaredLogger
}

// Options describes logger construction parameters.
type Options struct {
	Level   string // debug, info, warn, error
	Format  string // console or json
	Verbose bool   // forces debug level
	Writer  io.Writer
}

// New constructs a logger. Output goes to stderr unless Writer is set. The
// console format is colored only when writing to a terminal.
func New(opts Options) (*Logger, error) {
	level := zapcore.InfoLevel
	if value := strings.TrimSpace(opts.Level); value != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(value))); err != nil {
			return nil, fmt.Errorf("log level: unsupported value %q", opts.Level)
		}
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}
	color := IsTerminal(writer)

	var encoder zapcore.Encoder
	switch format := strings.ToLower(strings.TrimSpace(opts.Format)); format {
	case "", "console":
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		if color {
			cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		cfg.CallerKey = ""
		encoder = zapcore.NewConsoleEncoder(cfg)
	case "json":
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(writer)), level)
	return &Logger{zap.New(core).Sugar()}, nil
}

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zap.NewNop().Sugar()}
}

// With returns a child logger carrying the given key/value pairs.
func (l *Logger) With(args ...interface{}) *Logger {
	return &Logger{l.SugaredLogger.With(args...)}
}
