package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/lorrc/user-management-api/internal/adapters/primary/http/middleware"
	"github.com/lorrc/user-management-api/internal/core/ports"
)

// RouterConfig holds the dependencies mounted by NewRouter.
type RouterConfig struct {
	UserService    ports.UserService
	HealthProber   ports.HealthProber
	Version        string
	AllowedOrigins []string
	CORSMaxAge     int
	Logger         *slog.Logger
}

// NewRouter wires the global middleware, the health endpoints and the
// /users routes.
func NewRouter(cfg RouterConfig) http.Handler {
	errorHandler := NewErrorHandler(cfg.Logger)
	userHandler := NewUserHandler(cfg.UserService, errorHandler, cfg.Logger)
	healthHandler := NewHealthHandler(cfg.HealthProber, cfg.Version, cfg.Logger)

	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(cfg.Logger))
	r.Use(mw.RecoveryLogger(cfg.Logger))
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.AllowedOrigins, cfg.CORSMaxAge))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusNotFound, ErrorResponse{Detail: "Not Found", Code: "NOT_FOUND"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Detail: "Method Not Allowed", Code: "METHOD_NOT_ALLOWED"})
	})

	r.Route("/health", healthHandler.RegisterRoutes)
	r.Route("/users", userHandler.RegisterRoutes)

	return r
}
