package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/rainfield/status"
)

const metricsShutdownTimeout = 2 * time.Second

// serveMetrics exposes the registry at /metrics until the returned stop is called
func serveMetrics(addr string, reg *status.Registry, log *zap.Logger) (stop func()) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", status.Handler(reg, metricsNamespace))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("metrics listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("metrics server stopped", zap.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
