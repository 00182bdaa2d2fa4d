package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/surrealdb/surrealblog/internal/codec"
	"github.com/surrealdb/surrealblog/pkg/pubsub"
	"github.com/surrealdb/surrealblog/pkg/resolver"
)

// Environment variables read by DefaultConfig.
const (
	EnvAddr          = "SURREALBLOG_ADDR"
	EnvSeed          = "SURREALBLOG_SEED"
	EnvDemo          = "SURREALBLOG_DEMO"
	EnvFormat        = "SURREALBLOG_FORMAT"
	EnvBufferSize    = "SURREALBLOG_BUFFER_SIZE"
	EnvCountInterval = "SURREALBLOG_COUNT_INTERVAL"
	EnvLogLevel      = "SURREALBLOG_LOG_LEVEL"
	EnvLogFile       = "SURREALBLOG_LOG_FILE"
	EnvLogConsole    = "SURREALBLOG_LOG_CONSOLE"
	EnvLogFormat     = "SURREALBLOG_LOG_FORMAT"
)

// Log backends selectable with Config.LogFormat.
const (
	LogFormatZerolog = "zerolog"
	LogFormatSlog    = "slog"
)

// ShutdownTimeout bounds how long Run waits for in-flight HTTP requests after ctx is done.
const ShutdownTimeout = 5 * time.Second

// Config holds everything needed to start a server.
type Config struct {
	// Addr is the TCP address to listen on.
	Addr string
	// Format is the WebSocket encoding used when a client does not pick one.
	Format string

	// SeedFile is a YAML seed document loaded at startup.
	SeedFile string
	// Demo loads the sample blog. It is applied before SeedFile.
	Demo bool

	// BufferSize is the number of undelivered events each live query may hold.
	BufferSize int
	// CountInterval is the tick period of count live queries.
	CountInterval time.Duration

	LogLevel   string
	LogFile    string
	LogConsole bool
	// LogFormat picks the log backend, zerolog or slog.
	LogFormat string
}

// DefaultConfig returns the built-in defaults overridden by the environment.
func DefaultConfig() Config {
	return Config{
		Addr:          getEnvOrDefault(EnvAddr, ":4000"),
		Format:        getEnvOrDefault(EnvFormat, codec.FormatCBOR),
		SeedFile:      getEnvOrDefault(EnvSeed, ""),
		Demo:          getEnvBool(EnvDemo, false),
		BufferSize:    getEnvInt(EnvBufferSize, pubsub.DefaultBufferSize),
		CountInterval: getEnvDuration(EnvCountInterval, resolver.DefaultCountInterval),
		LogLevel:      getEnvOrDefault(EnvLogLevel, "info"),
		LogFile:       getEnvOrDefault(EnvLogFile, ""),
		LogConsole:    getEnvBool(EnvLogConsole, false),
		LogFormat:     getEnvOrDefault(EnvLogFormat, LogFormatZerolog),
	}
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("listen address is required")
	}
	if _, err := codec.ByName(c.Format); err != nil {
		return err
	}
	if c.BufferSize <= 0 {
		return fmt.Errorf("buffer size must be positive, got %d", c.BufferSize)
	}
	if c.CountInterval <= 0 {
		return fmt.Errorf("count interval must be positive, got %s", c.CountInterval)
	}
	switch c.LogFormat {
	case "", LogFormatZerolog, LogFormatSlog:
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}
