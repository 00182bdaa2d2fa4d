package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	slogadapter "github.com/surrealdb/surrealblog/pkg/logger/slog"
)

const seedYAML = `
users:
  - id: "u1"
    name: Ada
    email: ada@example.com
posts:
  - id: "p1"
    title: Notes
    body: On the engine
    published: true
    author: "u1"
`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testLogger() Option {
	return WithLogger(slogadapter.New(slog.NewTextHandler(io.Discard, nil)))
}

func testConfig() Config {
	return Config{
		Addr:          "127.0.0.1:0",
		Format:        "cbor",
		BufferSize:    10,
		CountInterval: time.Second,
		LogLevel:      "info",
	}
}

func TestDefaultConfig_Env(t *testing.T) {
	t.Setenv(EnvAddr, ":9999")
	t.Setenv(EnvDemo, "true")
	t.Setenv(EnvBufferSize, "7")
	t.Setenv(EnvCountInterval, "250ms")
	t.Setenv(EnvFormat, "json")
	t.Setenv(EnvLogFormat, LogFormatSlog)

	config := DefaultConfig()
	assert.Equal(t, ":9999", config.Addr)
	assert.True(t, config.Demo)
	assert.Equal(t, 7, config.BufferSize)
	assert.Equal(t, 250*time.Millisecond, config.CountInterval)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, LogFormatSlog, config.LogFormat)
	require.NoError(t, config.Validate())
}

func TestDefaultConfig_IgnoresMalformedEnv(t *testing.T) {
	t.Setenv(EnvBufferSize, "lots")
	t.Setenv(EnvDemo, "maybe")

	config := DefaultConfig()
	assert.Equal(t, 100, config.BufferSize)
	assert.False(t, config.Demo)
}

func TestConfig_Validate(t *testing.T) {
	config := testConfig()
	config.Format = "xml"
	require.Error(t, config.Validate())

	config = testConfig()
	config.BufferSize = 0
	require.Error(t, config.Validate())

	config = testConfig()
	config.Addr = ""
	require.Error(t, config.Validate())

	config = testConfig()
	config.LogFormat = "logrus"
	require.Error(t, config.Validate())
}

func TestNew_LogBackends(t *testing.T) {
	for _, format := range []string{LogFormatZerolog, LogFormatSlog} {
		t.Run(format, func(t *testing.T) {
			config := testConfig()
			config.Demo = true
			config.LogFormat = format
			config.LogFile = filepath.Join(t.TempDir(), "surrealblog.log")

			a, err := New(config)
			require.NoError(t, err)
			a.close()

			data, err := os.ReadFile(config.LogFile)
			require.NoError(t, err)
			assert.Contains(t, string(data), `"Store ready"`)
			assert.Contains(t, string(data), `"users":3`)
		})
	}
}

func TestNew_Seeds(t *testing.T) {
	config := testConfig()
	config.Demo = true
	config.SeedFile = writeSeed(t, seedYAML)

	a, err := New(config, testLogger())
	require.NoError(t, err)

	snap := a.Resolver().Snapshot()
	assert.Len(t, snap.Users, 4)
	assert.Len(t, snap.Posts, 4)
	assert.Len(t, snap.Comments, 4)
}

func TestNew_InvalidSeed(t *testing.T) {
	config := testConfig()
	config.SeedFile = writeSeed(t, "posts:\n  - id: p1\n    author: nobody\n")

	_, err := New(config, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `author "nobody" does not exist`)
}

func TestCheck(t *testing.T) {
	summary, err := Check(writeSeed(t, seedYAML))
	require.NoError(t, err)
	assert.Equal(t, Summary{Users: 1, Posts: 1}, summary)

	_, err = Check(writeSeed(t, "comments:\n  - id: c1\n    author: x\n    post: y\n"))
	require.Error(t, err)
}

func TestCheckCommand(t *testing.T) {
	path := writeSeed(t, seedYAML)

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"check", path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1 users, 1 posts, 0 comments")
}

func TestCheckCommand_RequiresPath(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"check"})
	require.Error(t, cmd.Execute())
}

func TestServe_GracefulShutdown(t *testing.T) {
	config := testConfig()
	config.Demo = true

	a, err := New(config, testLogger())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- a.Serve(ctx, ln)
	}()

	url := "http://" + ln.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("Timeout waiting for shutdown")
	}

	_, err = http.Get(url)
	require.Error(t, err)
}
