package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surrealdb/surrealblog/pkg/logger"
)

func TestLog(t *testing.T) {
	buff := bytes.NewBuffer([]byte{})
	templogger, err := logger.New().FromWriter(buff).Make()
	require.NoError(t, err)
	require.NotNil(t, templogger)

	require.Equal(t, buff.Len(), 0)
	templogger.Info("Test", "id", "1")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buff.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "Test", line["message"])
	assert.Equal(t, "1", line["id"])
}

func TestLog_Level(t *testing.T) {
	buff := bytes.NewBuffer([]byte{})
	templogger, err := logger.New().FromWriter(buff).Level("warn").Make()
	require.NoError(t, err)

	templogger.Debug("hidden")
	templogger.Info("hidden")
	assert.Equal(t, 0, buff.Len())

	templogger.Warn("shown")
	assert.Contains(t, buff.String(), "shown")
}

func TestLog_UnknownLevelKeepsDefault(t *testing.T) {
	buff := bytes.NewBuffer([]byte{})
	templogger, err := logger.New().FromWriter(buff).Level("verbose").Make()
	require.NoError(t, err)

	templogger.Debug("hidden")
	assert.Equal(t, 0, buff.Len())
	templogger.Info("shown")
	assert.Contains(t, buff.String(), "shown")
}

func TestLog_FromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "surrealblog.log")
	templogger, err := logger.New().FromPath(path).Make()
	require.NoError(t, err)

	templogger.Error("boom", "code", 7)
	require.NoError(t, templogger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "boom")
	assert.Contains(t, string(data), `"code":7`)
}

func TestLog_Console(t *testing.T) {
	buff := bytes.NewBuffer([]byte{})
	templogger, err := logger.New().FromWriter(buff).Console(true).Make()
	require.NoError(t, err)

	templogger.Info("Server started", "addr", ":8080")
	assert.Contains(t, buff.String(), "Server started")
	assert.Contains(t, buff.String(), "addr=")
}

func TestNop(t *testing.T) {
	l := logger.Nop()
	l.Error("ignored")
	l.Debug("ignored", "k", "v")
}
