package http

import (
	"log/slog"
	nethttp "net/http"
	"strings"
	"time"

	"gridiron-data-service/internal/logging"
	"gridiron-data-service/internal/metrics"
)

// LoggingMiddleware wraps the handler with request logging and request
// ID propagation. HTTP metrics are recorded with normalized paths so
// per-game URLs do not explode label cardinality.
func LoggingMiddleware(baseLogger *slog.Logger, recorder *metrics.Recorder, next nethttp.Handler) nethttp.Handler {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		start := time.Now()
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = generateRequestID()
		}
		w.Header().Set("X-Request-ID", reqID)

		clientIP := r.RemoteAddr
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			clientIP = forwarded
		}

		logger := baseLogger.With(
			slog.String(logging.FieldRequestID, reqID),
			slog.String(logging.FieldMethod, r.Method),
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", clientIP),
		)

		ctx := logging.WithLogger(r.Context(), logger)
		ctx = withRequestID(ctx, reqID)
		r = r.WithContext(ctx)
		ww := &responseWriter{ResponseWriter: w, status: nethttp.StatusOK}

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		if recorder != nil {
			recorder.RecordHTTPRequest(r.Method, normalizePath(r.URL.Path), ww.status, duration)
		}
		logger.Info("request complete",
			slog.Int(logging.FieldStatusCode, ww.status),
			slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
		)
	})
}

type responseWriter struct {
	nethttp.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// normalizePath collapses id- and league-bearing segments to stable
// metric labels.
func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/games/"):
		return "/games/:id"
	case strings.HasPrefix(path, "/board/"):
		return "/board/:league"
	case strings.HasPrefix(path, "/lines/"):
		return "/lines/:league"
	}
	return path
}
