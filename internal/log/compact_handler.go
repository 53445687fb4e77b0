package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// DefaultMaxStringLen is the length at which string attribute values are
// truncated. Raw page content routinely runs to tens of kilobytes; log
// lines must stay readable.
const DefaultMaxStringLen = 256

// DefaultMaxListItems is the number of list elements shown before the
// remainder is summarized as a count.
const DefaultMaxListItems = 8

// CompactHandler wraps an slog.Handler to keep log records terminal-sized.
// Oversized string values are truncated with an ellipsis marker, and long
// string slices (orphan lists, page sets) are summarized to their first
// few elements plus a count.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites can log full values and leave bounding to the sink
type CompactHandler struct {
	// handler is the underlying slog handler that receives compacted records.
	handler slog.Handler

	// maxStringLen bounds string attribute values.
	maxStringLen int

	// maxListItems bounds string slice attribute values.
	maxListItems int
}

// CompactHandlerOption configures a CompactHandler.
type CompactHandlerOption func(*CompactHandler)

// WithMaxStringLen sets the string truncation threshold.
func WithMaxStringLen(n int) CompactHandlerOption {
	return func(h *CompactHandler) {
		h.maxStringLen = n
	}
}

// WithMaxListItems sets the number of list elements shown before summarizing.
func WithMaxListItems(n int) CompactHandlerOption {
	return func(h *CompactHandler) {
		h.maxListItems = n
	}
}

// NewCompactHandler creates a new CompactHandler wrapping the given handler.
// If handler is nil, the returned CompactHandler wraps slog.Default().Handler().
func NewCompactHandler(handler slog.Handler, opts ...CompactHandlerOption) *CompactHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	h := &CompactHandler{
		handler:      handler,
		maxStringLen: DefaultMaxStringLen,
		maxListItems: DefaultMaxListItems,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *CompactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle compacts the record's attributes and passes it to the underlying handler.
func (h *CompactHandler) Handle(ctx context.Context, r slog.Record) error {
	compacted := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		compacted.AddAttrs(h.compactAttr(a))
		return true
	})

	return h.handler.Handle(ctx, compacted)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are compacted before being added.
func (h *CompactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	compactedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		compactedAttrs[i] = h.compactAttr(a)
	}
	return &CompactHandler{
		handler:      h.handler.WithAttrs(compactedAttrs),
		maxStringLen: h.maxStringLen,
		maxListItems: h.maxListItems,
	}
}

// WithGroup returns a new handler with the given group name.
func (h *CompactHandler) WithGroup(name string) slog.Handler {
	return &CompactHandler{
		handler:      h.handler.WithGroup(name),
		maxStringLen: h.maxStringLen,
		maxListItems: h.maxListItems,
	}
}

// compactAttr bounds a single attribute, recursively handling groups.
func (h *CompactHandler) compactAttr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		compactedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			compactedAttrs[i] = h.compactAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(compactedAttrs...)}

	case slog.KindString:
		return slog.String(a.Key, h.truncate(a.Value.String()))

	case slog.KindAny:
		if list, ok := a.Value.Any().([]string); ok {
			return slog.String(a.Key, h.summarizeList(list))
		}
		return a

	default:
		return a
	}
}

// truncate bounds a string value, marking the cut with an ellipsis and the
// original length.
func (h *CompactHandler) truncate(s string) string {
	if len(s) <= h.maxStringLen {
		return s
	}
	return fmt.Sprintf("%s... (%d bytes)", s[:h.maxStringLen], len(s))
}

// summarizeList renders a string slice as its first elements plus a count
// of the remainder.
func (h *CompactHandler) summarizeList(list []string) string {
	if len(list) <= h.maxListItems {
		return strings.Join(list, ", ")
	}
	shown := strings.Join(list[:h.maxListItems], ", ")
	return fmt.Sprintf("%s, ... (%d total)", shown, len(list))
}

// NewLogger creates a new slog.Logger with compact text output.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or passed
// to components that accept *slog.Logger.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewCompactHandler(textHandler))
}

// NewJSONLogger creates a new slog.Logger with compact JSON output.
// Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)
	return slog.New(NewCompactHandler(jsonHandler))
}
