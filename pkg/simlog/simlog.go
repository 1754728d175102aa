// Package simlog wraps log/slog with a minimal single-line text handler,
// adapted from the project's S370-style logger wrapper: level, timestamp
// and message on one line, attributes space-joined after it.
package simlog

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Handler writes level-prefixed, single-line log records to out.
type Handler struct {
	out io.Writer
	mu  *sync.Mutex
	min slog.Level
}

// New returns a Handler writing to out at or above minLevel.
func New(out io.Writer, minLevel slog.Level) *Handler {
	return &Handler{out: out, mu: &sync.Mutex{}, min: minLevel}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.min
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	parts := []string{r.Time.Format("2006/01/02 15:04:05"), r.Level.String() + ":", r.Message}
	r.Attrs(func(a slog.Attr) bool {
		parts = append(parts, a.String())
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, strings.Join(parts, " ")+"\n")
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	// The simulator only ever logs flat, one-shot records (scheduling
	// warnings, per-cycle verbose lines); grouped/derived loggers are not
	// part of the surface, so WithAttrs/WithGroup are not exercised.
	return h
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return h
}
