package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

func newObservedLogger(level zapcore.Level) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewLoggerFromCore(core), logs
}

func TestLogLevels(t *testing.T) {
	log, logs := newObservedLogger(zapcore.DebugLevel)

	log.Debug("d")
	log.Info("i")
	log.Warn("w")
	log.Error("e")

	require.Equal(t, 4, logs.Len())
	assert.Equal(t, zapcore.DebugLevel, logs.All()[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[3].Level)
}

func TestFieldsAreAttached(t *testing.T) {
	log, logs := newObservedLogger(zapcore.InfoLevel)

	log.Info("created client",
		String("fullname", "Name Surname"),
		Int64("id", 7),
		Duration("took", 5*time.Millisecond),
		Err(errors.New("boom")),
	)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "Name Surname", fields["fullname"])
	assert.Equal(t, int64(7), fields["id"])
	assert.Equal(t, "boom", fields["error"])
}

func TestWithAndNamed(t *testing.T) {
	log, logs := newObservedLogger(zapcore.InfoLevel)

	child := log.With(String("component", "repository")).Named("sqldb")
	child.Info("ready")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "sqldb", entry.LoggerName)
	assert.Equal(t, "repository", entry.ContextMap()["component"])
}

func TestErrNil(t *testing.T) {
	f := Err(nil)
	assert.Equal(t, "error", f.Key)
	assert.Equal(t, "<nil>", f.Value)
}

func TestParseLevelDefaults(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
}

func TestNopLoggerIsSilent(t *testing.T) {
	log := NewNopLogger()
	log.Info("nothing happens")
	assert.Equal(t, log, log.With(String("k", "v")))
}
