package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// AccessLogFormatter turns chi request log entries into zerolog events.
// Server errors log at error, client errors at warn, the rest at info.
type AccessLogFormatter struct {
	Logger *zerolog.Logger
}

// AccessLogger is middleware.RequestLogger over an AccessLogFormatter.
func AccessLogger(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return middleware.RequestLogger(&AccessLogFormatter{Logger: logger})
}

func (f *AccessLogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &accessLogEntry{logger: f.Logger, request: r}
}

type accessLogEntry struct {
	logger  *zerolog.Logger
	request *http.Request
}

func (e *accessLogEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	// handlers that never call WriteHeader answer 200
	if status == 0 {
		status = http.StatusOK
	}

	var event *zerolog.Event
	switch {
	case status >= http.StatusInternalServerError:
		event = e.logger.Error()
	case status >= http.StatusBadRequest:
		event = e.logger.Warn()
	default:
		event = e.logger.Info()
	}

	event.
		Str("method", e.request.Method).
		Str("path", e.request.URL.Path).
		Int("status", status).
		Int("bytes", bytes).
		Dur("duration", elapsed).
		Str("request_id", middleware.GetReqID(e.request.Context())).
		Str("remote_addr", e.request.RemoteAddr).
		Msg("Request completed")
}

func (e *accessLogEntry) Panic(v interface{}, stack []byte) {
	e.logger.Error().
		Interface("panic", v).
		Bytes("stack", stack).
		Str("request_id", middleware.GetReqID(e.request.Context())).
		Msg("Request panicked")
}
