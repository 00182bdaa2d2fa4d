// Package logger defines the structured logging interface used across surrealblog
// and a zerolog-backed implementation of it.
//
// Messages carry alternating key/value pairs:
//
//	log.Debug("Comment created", "id", comment.ID, "post", comment.PostID)
//
// Use [New] to build a zerolog logger writing to stdout, a custom writer, or a file.
// For log/slog users, [github.com/surrealdb/surrealblog/pkg/logger/slog] adapts a slog.Handler.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const (
	permission = 0664
)

// Logger is a leveled structured logger.
type Logger interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
}

type LogBuild struct {
	writer  io.Writer
	path    string
	level   zerolog.Level
	console bool
}

type LogData struct {
	LogFile *os.File
	Logger  zerolog.Logger
}

// New starts building a logger. Without further options it writes JSON lines to stdout at INFO.
func New() *LogBuild {
	return &LogBuild{level: zerolog.InfoLevel}
}

// FromPath makes the logger append to the file at path.
func (build *LogBuild) FromPath(path string) *LogBuild {
	build.path = path
	return build
}

// FromWriter makes the logger write to w.
func (build *LogBuild) FromWriter(w io.Writer) *LogBuild {
	build.writer = w
	return build
}

// Level sets the minimum level by name (debug, info, warn, error).
// Unknown names keep the current level.
func (build *LogBuild) Level(name string) *LogBuild {
	if lvl, err := zerolog.ParseLevel(name); err == nil && lvl != zerolog.NoLevel {
		build.level = lvl
	}
	return build
}

// Console switches to human readable output instead of JSON lines.
func (build *LogBuild) Console(enabled bool) *LogBuild {
	build.console = enabled
	return build
}

func (build *LogBuild) Make() (logData *LogData, err error) {
	logData = new(LogData)

	var writer io.Writer = os.Stdout
	if build.writer != nil {
		writer = build.writer
	}
	if build.path != "" {
		logData.LogFile, err = OpenFile(build.path)
		if err != nil {
			return nil, err
		}
		writer = zerolog.SyncWriter(logData.LogFile)
	}
	if build.console {
		writer = zerolog.ConsoleWriter{Out: writer, NoColor: build.path != ""}
	}

	logData.Logger = zerolog.New(writer).Level(build.level).With().Timestamp().Logger()
	return logData, nil
}

// OpenFile opens path for appending log lines, creating it if needed.
func OpenFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
}

// Close releases the log file, if any.
func (logData *LogData) Close() error {
	if logData.LogFile != nil {
		return logData.LogFile.Close()
	}
	return nil
}

func (logData *LogData) Error(msg string, args ...any) {
	logData.Logger.Error().Fields(args).Msg(msg)
}

func (logData *LogData) Warn(msg string, args ...any) {
	logData.Logger.Warn().Fields(args).Msg(msg)
}

func (logData *LogData) Info(msg string, args ...any) {
	logData.Logger.Info().Fields(args).Msg(msg)
}

func (logData *LogData) Debug(msg string, args ...any) {
	logData.Logger.Debug().Fields(args).Msg(msg)
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return &LogData{Logger: zerolog.Nop()}
}
