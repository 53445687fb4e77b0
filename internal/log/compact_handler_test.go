package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

// newTestLogger returns a compact logger writing to the returned buffer.
func newTestLogger(opts ...CompactHandlerOption) (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	textHandler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(NewCompactHandler(textHandler, opts...)), buf
}

func TestCompactHandlerTruncatesStrings(t *testing.T) {
	t.Parallel()

	t.Run("short strings pass through", func(t *testing.T) {
		t.Parallel()

		logger, buf := newTestLogger()
		logger.Info("page read", "page", "index")

		if !strings.Contains(buf.String(), "page=index") {
			t.Errorf("expected untouched value, got: %s", buf.String())
		}
	})

	t.Run("oversized strings are truncated with length marker", func(t *testing.T) {
		t.Parallel()

		logger, buf := newTestLogger(WithMaxStringLen(16))
		logger.Info("page read", "raw", strings.Repeat("x", 100))

		out := buf.String()
		if strings.Contains(out, strings.Repeat("x", 17)) {
			t.Errorf("expected value truncated to 16 chars, got: %s", out)
		}
		if !strings.Contains(out, "(100 bytes)") {
			t.Errorf("expected original length marker, got: %s", out)
		}
	})

	t.Run("message is never truncated", func(t *testing.T) {
		t.Parallel()

		msg := strings.Repeat("m", 50)
		logger, buf := newTestLogger(WithMaxStringLen(16))
		logger.Info(msg)

		if !strings.Contains(buf.String(), msg) {
			t.Errorf("expected full message, got: %s", buf.String())
		}
	})
}

func TestCompactHandlerSummarizesLists(t *testing.T) {
	t.Parallel()

	t.Run("short lists are joined in full", func(t *testing.T) {
		t.Parallel()

		logger, buf := newTestLogger()
		logger.Info("orphans found", "orphans", []string{"a", "b"})

		if !strings.Contains(buf.String(), "a, b") {
			t.Errorf("expected joined list, got: %s", buf.String())
		}
	})

	t.Run("long lists are summarized with a count", func(t *testing.T) {
		t.Parallel()

		logger, buf := newTestLogger(WithMaxListItems(2))
		logger.Info("orphans found", "orphans", []string{"a", "b", "c", "d", "e"})

		out := buf.String()
		if !strings.Contains(out, "a, b") {
			t.Errorf("expected leading elements, got: %s", out)
		}
		if !strings.Contains(out, "(5 total)") {
			t.Errorf("expected total count, got: %s", out)
		}
		if strings.Contains(out, "e") && strings.Contains(out, "orphans=\"a, b, c") {
			t.Errorf("expected tail elements hidden, got: %s", out)
		}
	})
}

func TestCompactHandlerGroups(t *testing.T) {
	t.Parallel()

	logger, buf := newTestLogger(WithMaxStringLen(8))
	logger.Info("audit", slog.Group("page",
		slog.String("id", "index"),
		slog.String("raw", strings.Repeat("y", 64)),
	))

	out := buf.String()
	if !strings.Contains(out, "page.id=index") {
		t.Errorf("expected group attribute, got: %s", out)
	}
	if !strings.Contains(out, "(64 bytes)") {
		t.Errorf("expected truncation inside group, got: %s", out)
	}
}

func TestCompactHandlerWithAttrs(t *testing.T) {
	t.Parallel()

	logger, buf := newTestLogger(WithMaxStringLen(8))
	bound := logger.With("site", strings.Repeat("z", 32))
	bound.Info("audit")

	if !strings.Contains(buf.String(), "(32 bytes)") {
		t.Errorf("expected bound attribute truncated, got: %s", buf.String())
	}
}

func TestNewLoggerLevels(t *testing.T) {
	t.Parallel()

	t.Run("default level suppresses info", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		logger := NewLogger(buf, false)
		logger.Info("hidden")
		logger.Warn("shown")

		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Errorf("info must be suppressed without verbose, got: %s", out)
		}
		if !strings.Contains(out, "shown") {
			t.Errorf("warn must pass, got: %s", out)
		}
	})

	t.Run("verbose enables debug", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		logger := NewLogger(buf, true)
		if !logger.Enabled(context.Background(), slog.LevelDebug) {
			t.Error("expected debug enabled in verbose mode")
		}
	})

	t.Run("json logger emits json", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		logger := NewJSONLogger(buf, true)
		logger.Info("audit", "page", "index")

		if !strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
			t.Errorf("expected JSON output, got: %s", buf.String())
		}
	})
}
