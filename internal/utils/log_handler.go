package utils

import (
	"context"
	"errors"
	"log/slog"
)

// FanoutHandler passes every record to each of its handlers that accepts the level.
type FanoutHandler []slog.Handler

func NewFanoutHandler(handlers ...slog.Handler) FanoutHandler {
	return FanoutHandler(handlers)
}

func (f FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f FanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		// handlers may retain the record, so each gets its own copy
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return f.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (f FanoutHandler) WithGroup(name string) slog.Handler {
	return f.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (f FanoutHandler) derive(fn func(slog.Handler) slog.Handler) FanoutHandler {
	out := make(FanoutHandler, len(f))
	for i, h := range f {
		out[i] = fn(h)
	}
	return out
}

// BelowLevelHandler only lets records strictly below Max through to the wrapped handler.
type BelowLevelHandler struct {
	slog.Handler
	Max slog.Level
}

func NewBelowLevelHandler(h slog.Handler, max slog.Level) *BelowLevelHandler {
	return &BelowLevelHandler{Handler: h, Max: max}
}

func (h *BelowLevelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level < h.Max && h.Handler.Enabled(ctx, level)
}

func (h *BelowLevelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewBelowLevelHandler(h.Handler.WithAttrs(attrs), h.Max)
}

func (h *BelowLevelHandler) WithGroup(name string) slog.Handler {
	return NewBelowLevelHandler(h.Handler.WithGroup(name), h.Max)
}
