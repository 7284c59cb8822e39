// ABOUTME: HTTP API for the nutrition planner.
// ABOUTME: Routes with gorilla/mux behind logging, per-IP rate limiting and CORS.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/harperreed/nutriplan/internal/models"
	"github.com/harperreed/nutriplan/internal/planner"
	"github.com/harperreed/nutriplan/internal/storage"
	"github.com/rs/cors"
)

// Options configures a Server.
type Options struct {
	Repo     storage.Repository
	Planner  *planner.Planner
	Defaults models.ProfileRequest
	Logger   *log.Logger

	// RateLimitRPS <= 0 disables rate limiting.
	RateLimitRPS   float64
	RateLimitBurst int
	AllowedOrigins []string
	// TrustProxy keys rate limits and logs on X-Forwarded-For.
	TrustProxy bool
}

// Server serves the planner over HTTP.
type Server struct {
	repo     storage.Repository
	planner  *planner.Planner
	defaults models.ProfileRequest
	logger   *log.Logger
	router   *mux.Router
	handler  http.Handler
}

// New creates a Server and registers its routes.
func New(opts Options) *Server {
	s := &Server{
		repo:     opts.Repo,
		planner:  opts.Planner,
		defaults: opts.Defaults,
		logger:   opts.Logger,
		router:   mux.NewRouter(),
	}
	if s.planner == nil {
		s.planner = planner.New(nil)
	}
	if s.logger == nil {
		s.logger = log.Default().WithPrefix("http")
	}

	s.routes()

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})

	var h http.Handler = s.router
	h = RateLimitMiddleware(opts.RateLimitRPS, opts.RateLimitBurst, opts.TrustProxy, h)
	h = loggingMiddleware(s.logger, opts.TrustProxy, h)
	s.handler = c.Handler(h)
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)

	s.router.HandleFunc("/v1/catalog", s.handleCatalog).Methods(http.MethodGet)
	s.router.HandleFunc("/v1/profile", s.handleProfile).Methods(http.MethodPost)
	s.router.HandleFunc("/v1/meal-timing", s.handleMealTiming).Methods(http.MethodPost)

	s.router.HandleFunc("/v1/plans", s.handleCreatePlan).Methods(http.MethodPost)
	s.router.HandleFunc("/v1/plans", s.handleListPlans).Methods(http.MethodGet)
	s.router.HandleFunc("/v1/plans/{id}", s.handleGetPlan).Methods(http.MethodGet)
	s.router.HandleFunc("/v1/plans/{id}", s.handleDeletePlan).Methods(http.MethodDelete)
	s.router.HandleFunc("/v1/plans/{id}/report.pdf", s.handlePlanReport).Methods(http.MethodGet)

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "route not found")
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
