package httpx

import (
	"log/slog"
	"net/http"

	"github.com/simbadocs/docparse/internal/service"
)

// RouterServices holds the services the router wires handlers to.
type RouterServices struct {
	Dispatch *service.DispatchService
	Status   *service.StatusService
	Fleet    *service.FleetService
	Logger   *slog.Logger
}

// NewRouter builds the HTTP handler tree for the docparse API.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	registerParsingRoutes(mux, services)

	var handler http.Handler = mux
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}

func registerParsingRoutes(mux *http.ServeMux, services RouterServices) {
	parsing := &ParsingHandlers{Dispatch: services.Dispatch, Status: services.Status}
	fleet := &FleetHandlers{Svc: services.Fleet}

	mux.HandleFunc("GET /api/parsers", parsing.ListParsers)
	mux.HandleFunc("POST /api/parse", parsing.SubmitParse)
	mux.HandleFunc("GET /api/parsing/tasks/{id}", parsing.GetTaskStatus)
	mux.HandleFunc("GET /api/parsing/tasks", fleet.Snapshot)
}
