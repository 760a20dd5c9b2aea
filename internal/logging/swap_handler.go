package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// handlerOp records one WithAttrs or WithGroup application so it can be
// replayed against whatever chain is current when a record arrives.
type handlerOp struct {
	attrs []slog.Attr
	group string
}

// swapHandler delegates to an appender chain read through an atomic
// pointer. Initialize stores a freshly built chain on every
// (re)configuration, so loggers handed out earlier keep their pointer
// identity but route new records through the new appenders. Attrs and
// groups bound to the logger are replayed onto the current chain rather
// than baked into a stale one.
type swapHandler struct {
	chain *atomic.Pointer[slog.Handler]
	ops   []handlerOp
}

func newSwapHandler(chain *atomic.Pointer[slog.Handler]) *swapHandler {
	return &swapHandler{chain: chain}
}

func (h *swapHandler) resolve() slog.Handler {
	inner := *h.chain.Load()
	for _, op := range h.ops {
		if op.group != "" {
			inner = inner.WithGroup(op.group)
		} else {
			inner = inner.WithAttrs(op.attrs)
		}
	}
	return inner
}

// Enabled implements slog.Handler.
func (h *swapHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.resolve().Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *swapHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.resolve().Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *swapHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	ops := make([]handlerOp, len(h.ops)+1)
	copy(ops, h.ops)
	ops[len(h.ops)] = handlerOp{attrs: attrs}
	return &swapHandler{chain: h.chain, ops: ops}
}

// WithGroup implements slog.Handler.
func (h *swapHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	ops := make([]handlerOp, len(h.ops)+1)
	copy(ops, h.ops)
	ops[len(h.ops)] = handlerOp{group: name}
	return &swapHandler{chain: h.chain, ops: ops}
}
