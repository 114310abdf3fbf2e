// Package server serves the recipe collection, shopping lists and pantry over
// a JSON HTTP API.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cooklang/cookcli-sub000/internal/catalog"
	"github.com/cooklang/cookcli-sub000/internal/shopping"
	"github.com/cooklang/cookcli-sub000/internal/units"
)

type Options struct {
	BasePath string
	// AislePath and PantryPath override the files found for the collection.
	AislePath  string
	PantryPath string
	Host       string
	Port       int
}

func (o Options) Addr() string {
	return net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
}

type Server struct {
	opts     Options
	log      *zap.Logger
	db       *sql.DB
	index    *catalog.Index
	resolver *shopping.Resolver
	validate *validator.Validate
	registry *prometheus.Registry
	metrics  *metrics
	router   chi.Router

	// pantryMu serializes pantry file rewrites.
	pantryMu sync.Mutex
}

func New(opts Options, db *sql.DB, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	reg := prometheus.NewRegistry()
	s := &Server{
		opts:     opts,
		log:      log,
		db:       db,
		index:    catalog.NewIndex(opts.BasePath, log),
		resolver: shopping.NewResolver(units.New(), log),
		validate: validator.New(),
		registry: reg,
		metrics:  newMetrics(reg),
	}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(s.metrics.instrument)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/recipes", s.handleRecipeTree)
		r.Get("/recipes/*", s.handleRecipe)
		r.Get("/search", s.handleSearch)

		r.Post("/shopping_list", s.handleShoppingList)
		r.Route("/shopping_list/items", func(r chi.Router) {
			r.Get("/", s.handleListItems)
			r.Post("/", s.handleAddItem)
			r.Delete("/", s.handleRemoveItems)
			r.Delete("/{id}", s.handleRemoveItem)
		})
		r.Get("/shopping_list/checked", s.handleListChecked)
		r.Post("/shopping_list/checked", s.handleSetChecked)

		r.Route("/pantry", func(r chi.Router) {
			r.Get("/", s.handlePantry)
			r.Post("/", s.handleAddPantryItem)
			r.Get("/depleted", s.handleDepleted)
			r.Get("/expiring", s.handleExpiring)
			r.Put("/{section}/{name}", s.handleUpdatePantryItem)
			r.Delete("/{section}/{name}", s.handleRemovePantryItem)
		})
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	go func() {
		if err := s.index.Watch(watchCtx); err != nil {
			s.log.Warn("recipe watcher stopped", zap.Error(err))
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", srv.Addr), zap.String("base", s.opts.BasePath))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", srv.Addr, err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
