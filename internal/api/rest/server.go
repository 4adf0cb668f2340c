package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, handler *Handler) *Server {
	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Schedules
	api.HandleFunc("/schedule/{league}", handler.GetSchedule).Methods("GET")
	api.HandleFunc("/schedule/{league}/debug", handler.GetScheduleDebug).Methods("GET")
	api.HandleFunc("/schedule/{league}/completed", handler.GetCompletedGames).Methods("GET")

	// Teams
	api.HandleFunc("/teams/{league}", handler.GetTeams).Methods("GET")
	api.HandleFunc("/teams/{league}/resolve", handler.ResolveTeam).Methods("GET")

	// Link harvesting
	api.HandleFunc("/scrape", handler.ScrapePage).Methods("POST")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
