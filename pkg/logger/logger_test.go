package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize_InvalidLevel(t *testing.T) {
	err := Initialize(Config{Level: "loud"})
	assert.ErrorContains(t, err, "invalid log level loud")
}

func TestInitialize_ProductionWritesLogDir(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Initialize(Config{Level: "debug", LogDir: dir, Environment: "production", ServiceName: "test"}))
	Info("hello")
	Sync()

	assert.FileExists(t, filepath.Join(dir, "app.log"))
}

func TestLogHTTPRequest_LevelFollowsStatus(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	core, logs := observer.New(zapcore.DebugLevel)
	Log = zap.New(core)

	LogHTTPRequest("GET", "/api/mentors", 200, 0.01)
	LogHTTPRequest("GET", "/api/mentors/x", 404, 0.01)
	LogHTTPRequest("POST", "/api/upload", 502, 0.01, zap.String("route", "/api/upload"))

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "/api/upload", entries[2].ContextMap()["route"])
	assert.Equal(t, int64(502), entries[2].ContextMap()["status"])
}
