// Package app contains the application setup for the catalog service.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/gocatalog/internal/config"
	"github.com/abgdnv/gocatalog/internal/platform/web"
	"github.com/abgdnv/gocatalog/internal/product/handler"
	"github.com/abgdnv/gocatalog/internal/product/service"
	"github.com/abgdnv/gocatalog/internal/product/storage"
	"github.com/abgdnv/gocatalog/internal/product/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
)

type Dependencies struct {
	ProductService service.ProductService
	Files          *storage.DiskStore
	Logger         *slog.Logger
}

// SetupDependencies wires the store, file storage and service together.
func SetupDependencies(db *sqlx.DB, staticDir string, logger *slog.Logger) (*Dependencies, error) {
	files, err := storage.NewDiskStore(staticDir)
	if err != nil {
		return nil, fmt.Errorf("failed to set up static file storage: %w", err)
	}
	pService := service.NewService(store.NewSqliteStore(db), files)

	return &Dependencies{
		ProductService: pService,
		Files:          files,
		Logger:         logger,
	}, nil
}

// SetupHttpHandler initializes the router with middleware, product routes and
// the static file server. Also used by the e2e tests.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	pApi := handler.NewAPI(deps.ProductService, deps.Logger)

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(web.RequestIDInjector)
	mux.Use(web.StructuredLogger(deps.Logger))
	mux.Use(web.Recoverer(deps.Logger))

	handler.RegisterRoutes(mux, pApi)

	// Uploaded images are served back from the same directory they land in.
	fileServer := http.StripPrefix("/static/", http.FileServer(http.Dir(deps.Files.Dir())))
	mux.Handle("/static/*", fileServer)

	return mux
}

// SetupHttpServer creates and configures an HTTP server for the catalog service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPServer.Port),
		Handler:           mux,
		ReadTimeout:       cfg.HTTPServer.Timeout.Read,
		WriteTimeout:      cfg.HTTPServer.Timeout.Write,
		IdleTimeout:       cfg.HTTPServer.Timeout.Idle,
		ReadHeaderTimeout: cfg.HTTPServer.Timeout.ReadHeader,
		MaxHeaderBytes:    cfg.HTTPServer.MaxHeaderBytes,
	}
	return server
}
