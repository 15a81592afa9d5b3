// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package log

import (
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// DebugLogger is a global logger configured to output messages at DebugLevel
	// and above to os.Stdout.
	DebugLogger = NewZap(DebugLevel, os.Stdout)

	// DiscardLogger is a no-op logger that discards all log messages.
	DiscardLogger Logger = discardLogger{}

	// DefaultLogger is a global logger configured to output messages at InfoLevel
	// and above to os.Stdout.
	DefaultLogger = NewZap(InfoLevel, os.Stdout)
)

// maxInlineFields is the maximum number of key-value pairs With keeps on the stack.
const maxInlineFields = 6

// Zap implements Logger interface with zap as the underlying logging library.
type Zap struct {
	logger  *zap.Logger
	sugar   *zap.SugaredLogger
	outputs []io.Writer
}

// enforce compilation and linter error
var _ Logger = &Zap{}

// NewZap creates an instance of Zap writing JSON lines to the given writers.
// Unknown levels fall back to DebugLevel.
func NewZap(level Level, writers ...io.Writer) *Zap {
	if len(writers) == 0 {
		writers = []io.Writer{os.Stdout}
	}

	syncers := make([]zapcore.WriteSyncer, 0, len(writers))
	for _, writer := range writers {
		syncers = append(syncers, zapcore.AddSync(writer))
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(newEncoderConfig()),
		zap.CombineWriteSyncers(syncers...),
		toZapLevel(level),
	)

	zapLogger := zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel))

	return &Zap{
		logger:  zapLogger,
		sugar:   zapLogger.Sugar(),
		outputs: writers,
	}
}

// Debug starts a message with debug level
func (z *Zap) Debug(v ...any) {
	z.sugar.Debug(v...)
}

// Debugf starts a message with debug level
func (z *Zap) Debugf(format string, v ...any) {
	z.sugar.Debugf(format, v...)
}

// Info starts a message with info level
func (z *Zap) Info(v ...any) {
	z.sugar.Info(v...)
}

// Infof starts a message with info level
func (z *Zap) Infof(format string, v ...any) {
	z.sugar.Infof(format, v...)
}

// Warn starts a new message with warn level
func (z *Zap) Warn(v ...any) {
	z.sugar.Warn(v...)
}

// Warnf starts a new message with warn level
func (z *Zap) Warnf(format string, v ...any) {
	z.sugar.Warnf(format, v...)
}

// Error starts a new message with error level.
func (z *Zap) Error(v ...any) {
	z.sugar.Error(v...)
}

// Errorf starts a new message with error level.
func (z *Zap) Errorf(format string, v ...any) {
	z.sugar.Errorf(format, v...)
}

// Enabled reports whether the given level is enabled.
func (z *Zap) Enabled(level Level) bool {
	return z.logger.Core().Enabled(toZapLevel(level))
}

// With returns a Logger that includes the given key-value pairs in all subsequent log entries.
// Non-string keys are skipped and an orphan trailing value is logged under "_".
func (z *Zap) With(keyValues ...any) Logger {
	n := (len(keyValues) + 1) / 2
	if n == 0 {
		return z
	}

	var buf [maxInlineFields]zap.Field
	var fields []zap.Field
	if n <= maxInlineFields {
		fields = buf[:0:n]
	} else {
		fields = make([]zap.Field, 0, n)
	}

	for i := 0; i < len(keyValues); i += 2 {
		if i+1 >= len(keyValues) {
			fields = append(fields, toZapField("_", keyValues[i]))
			break
		}
		k, ok := keyValues[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, toZapField(k, keyValues[i+1]))
	}
	if len(fields) == 0 {
		return z
	}

	newLogger := z.logger.With(fields...)
	return &Zap{
		logger:  newLogger,
		sugar:   newLogger.Sugar(),
		outputs: z.outputs,
	}
}

// LogLevel returns the log level that is used
func (z *Zap) LogLevel() Level {
	switch z.logger.Level() {
	case zapcore.ErrorLevel:
		return ErrorLevel
	case zapcore.InfoLevel:
		return InfoLevel
	case zapcore.DebugLevel:
		return DebugLevel
	case zapcore.WarnLevel:
		return WarningLevel
	default:
		return InvalidLevel
	}
}

// LogOutput returns the log output that is set
func (z *Zap) LogOutput() []io.Writer {
	return z.outputs
}

// Flush flushes any buffered log entries.
func (z *Zap) Flush() error {
	return z.logger.Sync()
}

func toZapField(key string, val any) zap.Field {
	switch v := val.(type) {
	case string:
		return zap.String(key, v)
	case int:
		return zap.Int(key, v)
	case int32:
		return zap.Int32(key, v)
	case int64:
		return zap.Int64(key, v)
	case bool:
		return zap.Bool(key, v)
	case error:
		return zap.NamedError(key, v)
	default:
		return zap.Any(key, val)
	}
}

func newEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stacktrace",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.LowercaseLevelEncoder,
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.Format("2006-01-02T15:04:05.000000Z0700"))
		},
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case InfoLevel:
		return zapcore.InfoLevel
	case DebugLevel:
		return zapcore.DebugLevel
	case WarningLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.DebugLevel
	}
}
