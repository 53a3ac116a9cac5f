package app

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wasmfix/pkg/logger"
	"wasmfix/pkg/metrics"
)

// BuildRouter assembles the chi router for the invocation harness.
func BuildRouter(app *AppContext) *chi.Mux {
	r := chi.NewRouter()
	r.Use(logger.Middleware)
	r.Use(metrics.Middleware)
	r.Use(chimw.Recoverer)

	// Rate limiting, env-driven. Off unless RATE_LIMIT_REQUESTS is set.
	rlReqStr := os.Getenv("RATE_LIMIT_REQUESTS")
	if rlReqStr != "" {
		rlRequests, _ := strconv.Atoi(rlReqStr)
		if rlRequests == 0 {
			rlRequests = 100
		}
		rlWindow, _ := strconv.Atoi(os.Getenv("RATE_LIMIT_WINDOW"))
		if rlWindow == 0 {
			rlWindow = 60
		}
		r.Use(httprate.LimitByIP(rlRequests, time.Duration(rlWindow)*time.Second))
	} else {
		slog.Info("Rate limiting disabled (RATE_LIMIT_REQUESTS not set)")
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/functions", app.handleListFunctions)
		r.Post("/functions/{name}", app.handleCallFunction)
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
