package main

import (
	"net/http"

	"github.com/angeloszaimis/dirserve/internal/handler"
	"github.com/angeloszaimis/dirserve/internal/metrics"
)

func setupRouter(fileListHandler *handler.FileListHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /{path...}", fileListHandler)

	return mux
}

// setupAdminRouter serves metrics on a separate listener so that no path of
// the file-serving port is shadowed.
func setupAdminRouter(metricsCollector *metrics.Collector) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /metrics", metricsCollector.Handler())

	return mux
}
