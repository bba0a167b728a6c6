package httputil

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/comda/boi-proxy/pkg/logger"
)

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
)

// Body logging limits; larger bodies are logged as a size only
const (
	maxLoggedRequestBody  = 10000
	maxLoggedResponseBody = 5000
)

// RequestID middleware adds a request ID to each request
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Logger middleware logs HTTP requests
func Logger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			var event *zerolog.Event
			switch {
			case wrapped.statusCode >= 500:
				event = log.Error()
			case wrapped.statusCode >= 400:
				event = log.Warn()
			default:
				event = log.Info()
			}

			event.
				Str("request_id", GetRequestID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", wrapped.statusCode).
				Dur("duration", time.Since(start)).
				Str("remote_addr", r.RemoteAddr).
				Str("content_type", r.Header.Get("Content-Type")).
				Msg("HTTP request")
		})
	}
}

// BodyLogger logs request and response bodies at debug level.
// It is a no-op unless the logger is at debug or below.
func BodyLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if log.GetLevel() > zerolog.DebugLevel {
				next.ServeHTTP(w, r)
				return
			}

			requestID := GetRequestID(r.Context())

			if r.Body != nil {
				body, err := io.ReadAll(r.Body)
				r.Body.Close()
				if err != nil {
					log.Warn().Err(err).Str("request_id", requestID).Msg("failed to read request body")
				}
				r.Body = io.NopCloser(bytes.NewReader(body))
				logBody(log, requestID, "request body", body, maxLoggedRequestBody)
			}

			recorder := &bodyRecorder{ResponseWriter: w}
			next.ServeHTTP(recorder, r)

			logBody(log, requestID, "response body", recorder.body.Bytes(), maxLoggedResponseBody)
		})
	}
}

func logBody(log *logger.Logger, requestID, msg string, body []byte, limit int) {
	if len(body) == 0 {
		return
	}
	event := log.Debug().Str("request_id", requestID)
	if len(body) < limit {
		event.Str("body", string(body)).Msg(msg)
		return
	}
	event.Int("length", len(body)).Bool("truncated", true).Msg(msg)
}

// Recoverer middleware recovers from panics
func Recoverer(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error().
						Interface("panic", err).
						Str("path", r.URL.Path).
						Msg("panic recovered")

					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

type bodyRecorder struct {
	http.ResponseWriter
	body bytes.Buffer
}

func (br *bodyRecorder) Write(p []byte) (int, error) {
	br.body.Write(p)
	return br.ResponseWriter.Write(p)
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
