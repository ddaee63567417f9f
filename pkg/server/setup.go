package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/npardra/clientdash/pkg/httpx"
)

var startTime = time.Now()

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// handleHealth reports liveness. It deliberately does not touch Mongo: the
// data source being down degrades renders, not the process.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httpx.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: "1.0.0",
		Uptime:  time.Since(startTime).String(),
	})
}

// SetupRoutes configures all HTTP routes for the server.
func SetupRoutes(router *mux.Router, handler *Handler, port string) {
	router.Use(requestIDMiddleware)
	router.Use(corsMiddleware(port))

	api := router.PathPrefix("/v1").Subrouter()

	// Full render: every widget from one fresh snapshot
	api.HandleFunc("/dashboard", handler.HandleDashboard).Methods("GET")

	// Individual widgets; each call is its own render
	api.HandleFunc("/overview", handler.HandleOverview).Methods("GET")
	api.HandleFunc("/monthly", handler.HandleMonthly).Methods("GET")
	api.HandleFunc("/retention", handler.HandleRetention).Methods("GET")
	api.HandleFunc("/membership-breakdown", handler.HandleMembershipBreakdown).Methods("GET")
	api.HandleFunc("/tiers", handler.HandleTiers).Methods("GET")
	api.HandleFunc("/countries", handler.HandleCountries).Methods("GET")
	api.HandleFunc("/age-groups", handler.HandleAgeGroups).Methods("GET")
	api.HandleFunc("/birthdays", handler.HandleBirthdays).Methods("GET")
	api.HandleFunc("/top-spenders", handler.HandleTopSpenders).Methods("GET")
	api.HandleFunc("/daily-totals", handler.HandleDailyTotals).Methods("GET")
	api.HandleFunc("/spending-by-tier", handler.HandleSpendingByTier).Methods("GET")
	api.HandleFunc("/transactions/scatter", handler.HandleScatter).Methods("GET")

	router.HandleFunc("/health", handleHealth).Methods("GET")
}

// requestIDMiddleware tags every request with an id, echoed back in
// X-Request-ID so a failed render can be matched to its log lines.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware restricts browser access to localhost origins, where the
// dashboard frontend is served during development.
func corsMiddleware(port string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			allowedOrigins := []string{
				"http://localhost:" + port,
				"http://127.0.0.1:" + port,
				"http://localhost:3000",
				"http://127.0.0.1:3000",
			}

			allowed := false
			for _, allowedOrigin := range allowedOrigins {
				if origin == allowedOrigin {
					allowed = true
					break
				}
			}

			if allowed {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
