package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestFromContextReturnsFallbackWhenUnset(t *testing.T) {
	fallback := slog.Default()
	if got := FromContext(context.Background(), fallback); got != fallback {
		t.Fatal("expected fallback logger")
	}
	if got := FromContext(nil, fallback); got != fallback { //nolint:staticcheck
		t.Fatal("expected fallback logger for nil context")
	}
}

func TestWithLoggerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := WithLogger(context.Background(), logger)

	FromContext(ctx, nil).Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("expected context logger to receive message, got %q", buf.String())
	}
}

func TestHelpersTolerateNilLogger(t *testing.T) {
	Info(nil, "ignored")
	Warn(nil, "ignored")
	Error(nil, "ignored", nil)
}
