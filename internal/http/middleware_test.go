package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gridiron-data-service/internal/logging"
)

func TestMiddlewareGeneratesRequestID(t *testing.T) {
	var ctxID string
	inner := nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		ctxID = requestIDFromContext(r.Context())
		w.WriteHeader(200)
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	LoggingMiddleware(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), nil, inner).ServeHTTP(rr, req)

	if ctxID == "" {
		t.Fatal("expected a generated request id in context")
	}
	if got := rr.Header().Get("X-Request-ID"); got != ctxID {
		t.Fatalf("expected response header %q to match context id %q", got, ctxID)
	}
}

func TestMiddlewarePropagatesRequestID(t *testing.T) {
	var ctxID string
	inner := nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		ctxID = requestIDFromContext(r.Context())
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	LoggingMiddleware(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), nil, inner).ServeHTTP(rr, req)

	if ctxID != "upstream-id" {
		t.Fatalf("expected upstream id to propagate, got %q", ctxID)
	}
	if got := rr.Header().Get("X-Request-ID"); got != "upstream-id" {
		t.Fatalf("expected upstream id echoed in response, got %q", got)
	}
}

func TestMiddlewareLogsStatusAndAttachesLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	inner := nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		logger := logging.FromContext(r.Context(), nil)
		logger.Info("inside handler")
		w.WriteHeader(nethttp.StatusNotFound)
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/games/abc", nil)
	req.Header.Set("X-Request-ID", "req-123")
	LoggingMiddleware(base, nil, inner).ServeHTTP(rr, req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %s", len(lines), buf.String())
	}

	var handlerLine map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &handlerLine); err != nil {
		t.Fatalf("failed decoding handler log line: %v", err)
	}
	if handlerLine[logging.FieldRequestID] != "req-123" {
		t.Fatalf("expected request id on context logger, got %v", handlerLine[logging.FieldRequestID])
	}

	var completeLine map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &completeLine); err != nil {
		t.Fatalf("failed decoding completion log line: %v", err)
	}
	if completeLine["msg"] != "request complete" {
		t.Fatalf("expected completion log, got %v", completeLine["msg"])
	}
	if completeLine[logging.FieldStatusCode].(float64) != 404 {
		t.Fatalf("expected captured status 404, got %v", completeLine[logging.FieldStatusCode])
	}
	if completeLine[logging.FieldPath] != "/games/abc" {
		t.Fatalf("expected path field, got %v", completeLine[logging.FieldPath])
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/health", "/health"},
		{"/board", "/board"},
		{"/board/nfl", "/board/:league"},
		{"/games/nfl-2025-15-gb-chi", "/games/:id"},
		{"/lines/ncaaf", "/lines/:league"},
	}
	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
