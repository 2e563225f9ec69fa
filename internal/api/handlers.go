package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/marktivo/growth-os/internal/config"
	"github.com/marktivo/growth-os/internal/dataset"
	"github.com/marktivo/growth-os/internal/pkg/logger"
	"github.com/marktivo/growth-os/internal/rng"
	"github.com/marktivo/growth-os/internal/store"
	"github.com/marktivo/growth-os/internal/validate"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	store  store.Store
	config *config.Config
}

// NewHandlers creates a new Handlers instance
func NewHandlers(st store.Store, cfg *config.Config) *Handlers {
	return &Handlers{store: st, config: cfg}
}

// HealthCheck reports server liveness
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// latest loads the most recent batch, writing the error response itself when
// none is available.
func (h *Handlers) latest(w http.ResponseWriter, r *http.Request) (*dataset.Batch, bool) {
	b, err := h.store.Latest(r.Context())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "no batch generated yet")
		} else {
			logger.Error("failed to load latest batch", "error", err.Error())
			respondError(w, http.StatusInternalServerError, "failed to load batch")
		}
		return nil, false
	}
	return b, true
}

// HandleTraffic returns the daily traffic table of the latest batch
func (h *Handlers) HandleTraffic(w http.ResponseWriter, r *http.Request) {
	b, ok := h.latest(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, b.Traffic)
}

// HandleFunnel returns the overall daily funnel
func (h *Handlers) HandleFunnel(w http.ResponseWriter, r *http.Request) {
	b, ok := h.latest(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, b.Funnel)
}

// HandleFunnelByDevice returns the per-device funnel rows
func (h *Handlers) HandleFunnelByDevice(w http.ResponseWriter, r *http.Request) {
	b, ok := h.latest(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, b.DeviceFunnels)
}

// HandleFunnelBySource returns the per-source funnel rows
func (h *Handlers) HandleFunnelBySource(w http.ResponseWriter, r *http.Request) {
	b, ok := h.latest(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, b.SourceFunnels)
}

// HandlePageSpeed returns the daily page speed table
func (h *Handlers) HandlePageSpeed(w http.ResponseWriter, r *http.Request) {
	b, ok := h.latest(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, b.PageSpeed)
}

// HandleOrganic returns per-platform daily social metrics.
// Supports ?platform=Instagram filtering.
func (h *Handlers) HandleOrganic(w http.ResponseWriter, r *http.Request) {
	b, ok := h.latest(w, r)
	if !ok {
		return
	}
	platform := r.URL.Query().Get("platform")
	if platform == "" {
		respondJSON(w, http.StatusOK, b.Organic)
		return
	}
	filtered := b.Organic[:0:0]
	for _, row := range b.Organic {
		if row.Platform == platform {
			filtered = append(filtered, row)
		}
	}
	respondJSON(w, http.StatusOK, filtered)
}

// HandleContent returns the content library.
// Supports ?platform=Instagram filtering.
func (h *Handlers) HandleContent(w http.ResponseWriter, r *http.Request) {
	b, ok := h.latest(w, r)
	if !ok {
		return
	}
	platform := r.URL.Query().Get("platform")
	if platform == "" {
		respondJSON(w, http.StatusOK, b.Content)
		return
	}
	filtered := b.Content[:0:0]
	for _, item := range b.Content {
		if item.Platform == platform {
			filtered = append(filtered, item)
		}
	}
	respondJSON(w, http.StatusOK, filtered)
}

// HandleCampaigns returns the paid-acquisition table.
// Supports ?stage=TOF filtering.
func (h *Handlers) HandleCampaigns(w http.ResponseWriter, r *http.Request) {
	b, ok := h.latest(w, r)
	if !ok {
		return
	}
	stage := r.URL.Query().Get("stage")
	if stage == "" {
		respondJSON(w, http.StatusOK, b.Campaigns)
		return
	}
	filtered := b.Campaigns[:0:0]
	for _, row := range b.Campaigns {
		if row.Stage == stage {
			filtered = append(filtered, row)
		}
	}
	respondJSON(w, http.StatusOK, filtered)
}

// HandleCohorts returns the monthly cohort LTV table
func (h *Handlers) HandleCohorts(w http.ResponseWriter, r *http.Request) {
	b, ok := h.latest(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, b.Cohorts)
}

// HandleRevOps returns the daily lead-pipeline table
func (h *Handlers) HandleRevOps(w http.ResponseWriter, r *http.Request) {
	b, ok := h.latest(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, b.RevOps)
}

// HandleDashboard returns the whole latest batch in one call
func (h *Handlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	b, ok := h.latest(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, b)
}

// GenerateRequest is the body for POST /api/generate. Zero values fall back
// to the configured defaults.
type GenerateRequest struct {
	Seed       *int64 `json:"seed,omitempty"`
	WindowDays int    `json:"window_days,omitempty"`
}

// HandleGenerate creates a fresh batch and makes it the latest
func (h *Handlers) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}

	cfg := *h.config
	seed := cfg.Generation.Seed
	if req.Seed != nil {
		seed = *req.Seed
	}
	if req.WindowDays != 0 {
		cfg.Generation.WindowDays = req.WindowDays
	}

	b, err := dataset.Generate(seed, &cfg)
	if err != nil {
		var inputErr *rng.InputError
		if errors.As(err, &inputErr) {
			respondError(w, http.StatusBadRequest, inputErr.Error())
			return
		}
		var integrityErr *validate.IntegrityError
		if errors.As(err, &integrityErr) {
			logger.Error("generated batch failed validation", "error", integrityErr.Error())
			respondError(w, http.StatusInternalServerError, integrityErr.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.store.Save(r.Context(), b); err != nil {
		logger.Error("failed to save batch", "batch_id", b.ID, "error", err.Error())
		respondError(w, http.StatusInternalServerError, "failed to save batch")
		return
	}

	logger.Info("generated batch", "batch_id", b.ID, "seed", seed, "window_days", b.WindowDays)
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"id":           b.ID,
		"seed":         b.Seed,
		"window_days":  b.WindowDays,
		"generated_at": b.GeneratedAt,
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
