// Package server assembles the relay HTTP API.
package server

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/fleetsync/internal/server/handlers"
	"github.com/iudanet/fleetsync/internal/server/middleware"
)

// Storage хранилище relay
type Storage interface {
	handlers.RelayStorage
	handlers.Pinger
}

// Deps зависимости HTTP API relay
type Deps struct {
	Logger  *slog.Logger
	Store   Storage
	Hub     handlers.SnapshotMerger
	Tokens  middleware.TokenValidator
	Limiter *middleware.RateLimiter // nil отключает ограничение частоты
	Version string
}

// NewRouter создает HTTP handler relay со всеми маршрутами и middleware
func NewRouter(d Deps) http.Handler {
	healthHandler := handlers.NewHealthHandler(d.Logger, d.Store, d.Version)
	syncHandler := handlers.NewSyncHandler(d.Logger, d.Store, d.Hub, nil)

	// Защищенные маршруты: сначала аутентификация, затем лимит по replica_id
	protected := []func(http.Handler) http.Handler{
		middleware.AuthMiddleware(d.Logger, d.Tokens),
	}
	if d.Limiter != nil {
		protected = append(protected, middleware.RateLimitMiddleware(d.Limiter, d.Logger))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/health", healthHandler.Health)
	mux.Handle("/api/v1/sync/items", middleware.Chain(http.HandlerFunc(syncHandler.HandleItems), protected...))
	mux.Handle("/api/v1/sync/merge", middleware.Chain(http.HandlerFunc(syncHandler.HandleMerge), protected...))
	mux.Handle("/api/v1/sync/status", middleware.Chain(http.HandlerFunc(syncHandler.HandleStatus), protected...))

	return middleware.Chain(mux,
		middleware.RecoveryMiddleware(d.Logger),
		middleware.LoggingWithSkip(d.Logger, []string{"/api/v1/health"}),
	)
}
