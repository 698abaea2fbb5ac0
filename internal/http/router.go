// Package http wires the API handlers into a chi router.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"hybridrag/internal/handlers"
)

// Engine answers search and ask requests.
type Engine interface {
	handlers.Searcher
	handlers.Asker
}

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Engine  Engine
	Indexer handlers.Indexer
	Catalog handlers.Catalog
	DataDir string
	// VectorStore is checked by the health endpoint when set.
	VectorStore    handlers.CollectionChecker
	CollectionName string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(CORS)

	r.Method(http.MethodGet, "/api/health", handlers.NewHealthHandler(deps.Catalog, deps.VectorStore, deps.CollectionName))

	r.Route("/api/v1", func(r chi.Router) {
		r.Method(http.MethodPost, "/search", handlers.NewSearchHandler(deps.Engine))
		r.Method(http.MethodPost, "/ask", handlers.NewAskHandler(deps.Engine))
		r.Method(http.MethodPost, "/index", handlers.NewIndexHandler(deps.Indexer, deps.DataDir))
		r.Method(http.MethodGet, "/sources", handlers.NewSourcesHandler(deps.Catalog))
	})

	return r
}
