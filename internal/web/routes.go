package web

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"convertd/internal/tracing"
)

// Routes assembles the mux behind the standard middleware chain.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /convert", h.Convert)
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.Handle("GET /metrics", promhttp.Handler())

	var handler http.Handler = mux
	handler = Metrics(handler)
	handler = RequestLogger(handler)
	handler = Recovery(handler)
	handler = RequestID(handler)
	if h.config.TracingEnabled {
		handler = tracing.HTTPMiddleware(handler)
	}

	return handler
}
