// Package slog adapts a log/slog handler to the surrealblog logger.Logger interface.
//
// The server selects it with --log-format slog; the default backend is zerolog.
package slog

import (
	"io"
	"log/slog"
	"strings"
)

type SlogHandler struct {
	logger *slog.Logger
}

// New wraps an existing handler.
func New(h slog.Handler) *SlogHandler {
	return &SlogHandler{logger: slog.New(h)}
}

// NewWriter logs to w at the named level, as JSON lines or, when text is set, as key=value text.
func NewWriter(w io.Writer, level string, text bool) *SlogHandler {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if text {
		return New(slog.NewTextHandler(w, opts))
	}
	return New(slog.NewJSONHandler(w, opts))
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else is info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (h *SlogHandler) Error(msg string, args ...any) {
	h.logger.Error(msg, args...)
}

func (h *SlogHandler) Warn(msg string, args ...any) {
	h.logger.Warn(msg, args...)
}

func (h *SlogHandler) Info(msg string, args ...any) {
	h.logger.Info(msg, args...)
}

func (h *SlogHandler) Debug(msg string, args ...any) {
	h.logger.Debug(msg, args...)
}
