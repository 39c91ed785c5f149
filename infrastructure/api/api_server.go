package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lapsetrack/lapsetrack"
	apimiddleware "github.com/lapsetrack/lapsetrack/infrastructure/api/middleware"
	v1 "github.com/lapsetrack/lapsetrack/infrastructure/api/v1"
)

// APIServer provides an HTTP API backed by a lapsetrack Client.
type APIServer struct {
	client *lapsetrack.Client
	server *Server
}

// NewAPIServer creates a new APIServer wired to the given Client.
func NewAPIServer(client *lapsetrack.Client) *APIServer {
	return &APIServer{client: client}
}

// mountRoutes wires up all routes on the given router.
func (a *APIServer) mountRoutes(router chi.Router) {
	c := a.client
	logger := c.Logger()

	router.Use(apimiddleware.Logging(logger))
	router.Use(apimiddleware.Requests(c.Metrics()))

	wellsRouter := v1.NewWellsRouter(c.Records(), c.Reports(), logger)
	groupsRouter := v1.NewWellGroupsRouter(c.Records(), c.Reports(), logger)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(120 * time.Second))

		r.Mount("/wells", wellsRouter.Routes())
		r.Mount("/well-groups", groupsRouter.Routes())
	})

	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(
		c.Metrics().Registry(),
		promhttp.HandlerOpts{},
	))
	router.Get("/healthz", a.healthz)
}

func (a *APIServer) healthz(w http.ResponseWriter, req *http.Request) {
	if err := a.client.Ping(req.Context()); err != nil {
		apimiddleware.WriteError(w, a.client.Logger(), err)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// ListenAndServe starts the HTTP server on the given address and blocks
// until it stops.
func (a *APIServer) ListenAndServe(addr string) error {
	server := NewServer(addr, a.client.Logger())
	a.server = &server
	a.mountRoutes(server.Router())
	return a.server.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}
