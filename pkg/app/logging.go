package app

import (
	"io"
	"os"

	"github.com/surrealdb/surrealblog/pkg/logger"
	slogadapter "github.com/surrealdb/surrealblog/pkg/logger/slog"
)

// newLogger builds the backend named by config.LogFormat. The returned closer releases the
// log file and is nil when logging to stdout.
func newLogger(config Config) (logger.Logger, io.Closer, error) {
	if config.LogFormat != LogFormatSlog {
		logData, err := logger.New().
			FromPath(config.LogFile).
			Level(config.LogLevel).
			Console(config.LogConsole).
			Make()
		if err != nil {
			return nil, nil, err
		}
		if logData.LogFile == nil {
			return logData, nil, nil
		}
		return logData, logData, nil
	}

	if config.LogFile == "" {
		return slogadapter.NewWriter(os.Stdout, config.LogLevel, config.LogConsole), nil, nil
	}
	file, err := logger.OpenFile(config.LogFile)
	if err != nil {
		return nil, nil, err
	}
	return slogadapter.NewWriter(file, config.LogLevel, config.LogConsole), file, nil
}
