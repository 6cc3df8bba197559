package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hourei/hourei-backend/internal/lawapi"
	"github.com/hourei/hourei-backend/internal/proxy"
	"github.com/hourei/hourei-backend/internal/quiz"
)

// RouterDeps carries the collaborators the router wires together.
type RouterDeps struct {
	Client    *lawapi.Client
	Generator *quiz.Generator
	Proxy     *proxy.Handler
	// Registry serves /metrics when set.
	Registry *prometheus.Registry
}

// NewRouter creates the HTTP router with all API routes.
func NewRouter(deps RouterDeps) *mux.Router {
	router := mux.NewRouter()

	lawsHandler := NewLawsHandler(deps.Client)
	quizHandler := NewQuizHandler(deps.Generator)
	healthHandler := NewHealthHandler()

	router.HandleFunc("/v0/health", healthHandler.CheckHealth).Methods("GET")

	router.HandleFunc("/api/laws/search", lawsHandler.SearchLaws).Methods("GET")
	router.HandleFunc("/api/laws/{lawId}", lawsHandler.GetLaw).Methods("GET")
	router.HandleFunc("/api/laws/{lawId}/provisions/random", lawsHandler.RandomProvision).Methods("GET")
	router.HandleFunc("/api/laws/{lawId}/provisions", lawsHandler.ProvisionsByKeyword).Methods("GET")

	router.HandleFunc("/api/quiz/questions", quizHandler.CreateQuestion).Methods("POST")

	if deps.Proxy != nil {
		router.Handle("/api/proxy", deps.Proxy).Methods("GET", "OPTIONS")
	}
	if deps.Registry != nil {
		router.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	return router
}
