package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts zap to ports.Logger.
type ZapLogger struct {
	log *zap.Logger
}

// New builds the diagnostic logger. Diagnostics stay off the user's terminal
// unless verbose is set, in which case a debug level production logger writes
// to stderr.
func New(verbose bool) (*ZapLogger, error) {
	if !verbose {
		return NewNop(), nil
	}
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	log, err := config.Build()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{log: log}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *ZapLogger {
	return &ZapLogger{log: zap.NewNop()}
}

// Wrap adapts an existing zap logger.
func Wrap(log *zap.Logger) *ZapLogger {
	return &ZapLogger{log: log}
}

func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug(msg, toFields(fields)...)
}

func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.log.Info(msg, toFields(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn(msg, toFields(fields)...)
}

func (l *ZapLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.log.Error(msg, append(toFields(fields), zap.Error(err))...)
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.log.Sync()
}

func toFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}
