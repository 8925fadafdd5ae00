// internal/api/handler.go
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/Pjezz/carmatch/internal/common/logger"
	"github.com/Pjezz/carmatch/internal/common/observability"
	"github.com/Pjezz/carmatch/internal/common/validation"
	"github.com/Pjezz/carmatch/internal/recommender"
	"github.com/Pjezz/carmatch/internal/recommender/prefs"
)

// requestSchema bounds the accepted shape of the recommendation payload.
// Preference fields allow both scalar and collection forms; value-level
// leniency stays in the normalizer.
var requestSchema = validation.Schema{
	Properties: map[string]validation.Property{
		"brands":       {Types: []string{"string", "array"}},
		"budget":       {Types: []string{"string", "number", "object"}},
		"fuel":         {Types: []string{"string", "array"}},
		"types":        {Types: []string{"string", "array"}},
		"transmission": {Types: []string{"string", "array"}},
		"gender":       {Types: []string{"string"}},
		"ageRange":     {Types: []string{"string"}},
		"limit":        {Types: []string{"number"}},
	},
	AdditionalProperties: true,
}

// Handler is the thin HTTP ingress in front of the recommendation service.
type Handler struct {
	service *recommender.Service
	obs     *observability.Observability
	logger  logger.Logger
	timeout time.Duration
}

func NewHandler(service *recommender.Service, obs *observability.Observability, timeout time.Duration, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		obs:     obs,
		logger:  log.WithFields(map[string]interface{}{"component": "api"}),
		timeout: timeout,
	}
}

// Register wires the API routes onto a mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/recommendations", h.handleRecommendations)
	mux.HandleFunc("/healthz", h.handleHealth)
}

func (h *Handler) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "only POST is supported")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "unreadable request body")
		return
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if result := validation.Validate(raw, requestSchema); !result.Valid {
		h.logger.Warn("rejected malformed request", map[string]interface{}{
			"errors": result.Errors,
		})
		h.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "malformed request",
			"details": result.Errors,
		})
		return
	}

	var input prefs.Input
	if err := json.Unmarshal(body, &input); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	start := time.Now()
	result := h.service.Recommend(ctx, &input)

	if h.obs != nil {
		h.obs.RecordRequest(ctx, result.Source)
		h.obs.RecordRequestDuration(ctx, time.Since(start), result.Source)
	}

	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{"status": "ok", "catalog": "ok"}
	code := http.StatusOK
	if err := h.service.Ping(ctx); err != nil {
		// The service still answers requests via the fallback set, so a
		// broken catalog degrades the health report without failing it
		status["catalog"] = "unavailable"
	}

	h.writeJSON(w, code, status)
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (h *Handler) writeError(w http.ResponseWriter, code int, message string) {
	h.writeJSON(w, code, map[string]string{"error": message})
}
