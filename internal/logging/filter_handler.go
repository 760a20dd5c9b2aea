package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// namespaceKey is the attribute carrying a record's origin namespace.
// GetLogger attaches it; handlers treat it as identity, not payload.
const namespaceKey = "namespace"

// FilterHandler consults a TargetFilter on a record's namespace before
// delegating to the wrapped handler. Rejected records are dropped
// silently. The filter is read through an atomic pointer so a config
// reload can swap in a freshly built (and itself immutable) filter
// without stopping concurrent loggers.
type FilterHandler struct {
	filter    *atomic.Pointer[TargetFilter]
	inner     slog.Handler
	namespace string
}

// NewFilterHandler wraps inner with namespace filtering. The pointer's
// current filter is consulted on every record.
func NewFilterHandler(filter *atomic.Pointer[TargetFilter], inner slog.Handler) *FilterHandler {
	return &FilterHandler{filter: filter, inner: inner}
}

// Enabled implements slog.Handler. Level gating belongs to the wrapped
// handler; the namespace is not known at Enabled time.
func (h *FilterHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *FilterHandler) Handle(ctx context.Context, r slog.Record) error {
	ns := h.namespace
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == namespaceKey {
			ns = a.Value.String()
			return false
		}
		return true
	})

	// Records from the default logger carry no namespace attribute;
	// they filter under the same root identity the buffer records
	// them with.
	if ns == "" {
		ns = rootNamespace
	}

	if f := h.filter.Load(); f != nil && f.Decide(ns) == Reject {
		recordsFiltered.Inc()
		return nil
	}
	return h.inner.Handle(ctx, r)
}

// WithAttrs implements slog.Handler. The namespace attribute is
// remembered so records logged through a namespaced logger are
// filterable even though the attribute was bound before Handle.
func (h *FilterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	ns := h.namespace
	for _, a := range attrs {
		if a.Key == namespaceKey {
			ns = a.Value.String()
		}
	}
	return &FilterHandler{filter: h.filter, inner: h.inner.WithAttrs(attrs), namespace: ns}
}

// WithGroup implements slog.Handler.
func (h *FilterHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &FilterHandler{filter: h.filter, inner: h.inner.WithGroup(name), namespace: h.namespace}
}
