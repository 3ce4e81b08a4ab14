package logx

import (
	"io"
	"os"
	"strings"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	Name  string
	Level string

	// File enables JSON output to a rotated log file.
	File       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool

	// Console mirrors logs to stderr. The TUI turns this off because it owns the terminal.
	Console bool

	// AtomicLevel, when set, is adjusted to Level and shared by every core so
	// the caller can change the level later.
	AtomicLevel *zap.AtomicLevel
}

// ParseLevel maps a level name to a zap level; unknown or empty names are info.
func ParseLevel(s string) zapcore.Level {
	lvl := zapcore.InfoLevel
	if strings.TrimSpace(s) == "" {
		return lvl
	}
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// New builds a zap logger from opts. With neither File nor Console set it returns a no-op logger.
func New(opts Options) (*zap.Logger, error) {
	atomicLevel := zap.NewAtomicLevelAt(ParseLevel(opts.Level))
	if opts.AtomicLevel != nil {
		opts.AtomicLevel.SetLevel(ParseLevel(opts.Level))
		atomicLevel = *opts.AtomicLevel
	}

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var cores []zapcore.Core
	if opts.Console {
		consoleCfg := encoderCfg
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stderr), atomicLevel))
	}
	if strings.TrimSpace(opts.File) != "" {
		fileCfg := encoderCfg
		fileCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		var w io.Writer = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    max(1, opts.MaxSize),
			MaxBackups: max(0, opts.MaxBackups),
			MaxAge:     max(0, opts.MaxAge),
			Compress:   opts.Compress,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(w), atomicLevel))
	}
	if len(cores) == 0 {
		return zap.NewNop(), nil
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	if opts.Name != "" {
		l = l.Named(opts.Name)
	}
	return l, nil
}
