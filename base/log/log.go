package log

import (
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Fields map[string]interface{}

// Logger is a zap sugared logger carrying key value pairs, it is passed by
// value so derived loggers never share fields
type Logger struct {
	logger *zap.SugaredLogger
	fields []interface{}
}

var (
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	root  *zap.SugaredLogger
)

func init() {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	z, _ := cfg.Build(zap.AddCallerSkip(1))
	root = z.Sugar()
}

// SetLevel changes the level of every logger, e.g. "debug", "info", "warn"
func SetLevel(lvl string) error {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(lvl)); err != nil {
		return err
	}
	level.SetLevel(l)
	return nil
}

func Sync() error {
	return root.Sync()
}

func Log() Logger {
	return Logger{logger: root}
}

func (l Logger) WithField(key string, value interface{}) Logger {
	fields := make([]interface{}, 0, len(l.fields)+2)
	fields = append(fields, l.fields...)
	l.fields = append(fields, key, value)
	return l
}

// WithFields appends kvs in key order
func (l Logger) WithFields(kvs Fields) Logger {
	ks := make([]string, 0, len(kvs))
	for k := range kvs {
		ks = append(ks, k)
	}
	sort.Strings(ks)

	fields := make([]interface{}, 0, len(l.fields)+2*len(kvs))
	fields = append(fields, l.fields...)
	for _, k := range ks {
		fields = append(fields, k, kvs[k])
	}
	l.fields = fields
	return l
}

func (l Logger) sugared() *zap.SugaredLogger {
	return l.logger.With(l.fields...)
}

func (l Logger) Debug(args ...interface{}) { l.sugared().Debug(args...) }
func (l Logger) Info(args ...interface{})  { l.sugared().Info(args...) }
func (l Logger) Warn(args ...interface{})  { l.sugared().Warn(args...) }
func (l Logger) Error(args ...interface{}) { l.sugared().Error(args...) }
func (l Logger) Panic(args ...interface{}) { l.sugared().Panic(args...) }
