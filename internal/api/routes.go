package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/marktivo/growth-os/internal/store"
)

// SetupRoutes configures all API routes
func SetupRoutes(h *Handlers) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Get("/traffic", h.HandleTraffic)
		r.Get("/funnel", h.HandleFunnel)
		r.Get("/funnel/devices", h.HandleFunnelByDevice)
		r.Get("/funnel/sources", h.HandleFunnelBySource)
		r.Get("/pagespeed", h.HandlePageSpeed)
		r.Get("/organic", h.HandleOrganic)
		r.Get("/content", h.HandleContent)
		r.Get("/campaigns", h.HandleCampaigns)
		r.Get("/cohorts", h.HandleCohorts)
		r.Get("/revops", h.HandleRevOps)
		r.Get("/dashboard", h.HandleDashboard)
		r.Get("/batches/{batchID}", h.HandleBatch)
		r.Post("/generate", h.HandleGenerate)
	})

	return r
}

// HandleBatch returns a single batch by ID
func (h *Handlers) HandleBatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "batchID")
	b, err := h.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "batch not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load batch")
		return
	}
	respondJSON(w, http.StatusOK, b)
}
