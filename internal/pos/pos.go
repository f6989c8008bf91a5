// Package pos is the facade for the POS catalog module.
package pos

import (
	"log/slog"

	"campuscoffee/internal/pos/handler"
	"campuscoffee/internal/pos/metrics"
	"campuscoffee/internal/pos/service"
)

// Service exposes POS catalog orchestration including the OSM import pipeline.
type Service = service.Service

// Handler wires HTTP endpoints to the POS service.
type Handler = handler.Handler

// NewService constructs the POS service with required dependencies.
func NewService(store service.Store, fetcher service.Fetcher, logger *slog.Logger, m *metrics.Metrics) *Service {
	return service.New(store, fetcher, logger, m)
}

// NewHandler constructs an HTTP handler for the POS catalog routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
