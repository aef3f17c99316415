// Package logger builds the *zap.Logger instances pricebook hands to its
// construction, rehash, and panic-recovery paths. The hot insert/find/
// erase paths never hold a reference to one of these at all; logging
// only happens off the hot path.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level names accepted by New, matching zapcore's own level set minus
// DPanic/Panic/Fatal: a log call itself should never terminate the
// process, that is pbkerrors's job via panic.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

func parseLevel(level string) zapcore.Level {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds a JSON-encoded, stdout-writing *zap.Logger at the given
// level, named component so a process hosting a Registry of many books
// can filter by which entry emitted a line.
func New(level, component string) (*zap.Logger, error) {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		parseLevel(level),
	)

	base := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	if component == "" {
		return base, nil
	}
	return base.Named(component), nil
}

// RecoverInvariant is deferred at a caller-driven boundary that wants to
// observe a pricebook fatal path (an *pbkerrors.InvariantError panic)
// without silently swallowing it. It logs the recovered value at error
// level, tagged with the book label, then re-panics: this package never
// downgrades a fatal error into a handled one, it only makes sure it was
// recorded on the way out.
func RecoverInvariant(log *zap.Logger, bookLabel string) {
	r := recover()
	if r == nil {
		return
	}
	if err, ok := r.(error); ok {
		log.Error("pricebook invariant violation", zap.String("book", bookLabel), zap.Error(err))
	} else {
		log.Error("pricebook invariant violation", zap.String("book", bookLabel), zap.String("panic", fmt.Sprint(r)))
	}
	panic(r)
}
