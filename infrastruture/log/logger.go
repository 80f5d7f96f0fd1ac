// Package log provides the leveled, colored loggers every component writes to.
package log

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/service/i"
)

var _ i.Logger = &Logger{}

// Logger writes structured records tagged with a component prefix.
type Logger struct {
	logger *slog.Logger
}

// New creates a logger that tags every record with prefix and, when color is not
// empty, wraps each line in the given ANSI color.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, errors.New("logger: nil writer")
	}
	if color != "" {
		w = &colorWriter{w: w, color: color}
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &Logger{
		logger: slog.New(handler).With("component", prefix),
	}, nil
}

// Slog exposes the underlying structured logger.
func (l *Logger) Slog() *slog.Logger {
	return l.logger
}

// Info implements i.Logger.
func (l *Logger) Info(msg string) {
	l.logger.Info(msg)
}

// Warning implements i.Logger.
func (l *Logger) Warning(msg string) {
	l.logger.Warn(msg)
}

// Error implements i.Logger.
func (l *Logger) Error(msg string) {
	l.logger.Error(msg)
}

// colorWriter colors whole records; the text handler emits one Write per record.
type colorWriter struct {
	mu    sync.Mutex
	w     io.Writer
	color string
	buf   bytes.Buffer
}

func (c *colorWriter) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.buf.Reset()
	c.buf.WriteString(c.color)
	c.buf.Write(bytes.TrimSuffix(p, []byte("\n")))
	c.buf.WriteString(config.ColorReset)
	c.buf.WriteByte('\n')
	if _, err := c.w.Write(c.buf.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}
