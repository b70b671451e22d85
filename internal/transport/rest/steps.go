package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/lingosteps/backend/internal/service/steps"
)

// stepService defines the minimal interface needed by StepHandler.
type stepService interface {
	Mark(ctx context.Context, input steps.MarkInput) error
	Get(ctx context.Context, textID uuid.UUID) ([]int, error)
	Reset(ctx context.Context, textID uuid.UUID) error
}

// StepHandler serves curriculum step REST endpoints, nested under a text.
type StepHandler struct {
	svc stepService
	log *slog.Logger
}

// NewStepHandler creates a StepHandler.
func NewStepHandler(svc stepService, logger *slog.Logger) *StepHandler {
	return &StepHandler{svc: svc, log: logger.With("handler", "steps")}
}

type markStepRequest struct {
	Step int `json:"step"`
}

type stepsResponse struct {
	CompletedSteps []int `json:"completedSteps"`
}

// Mark handles POST /texts/{id}/steps.
func (h *StepHandler) Mark(w http.ResponseWriter, r *http.Request) {
	textID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req markStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.svc.Mark(r.Context(), steps.MarkInput{
		TextID:     textID,
		StepNumber: req.Step,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Get handles GET /texts/{id}/steps.
func (h *StepHandler) Get(w http.ResponseWriter, r *http.Request) {
	textID, ok := pathID(w, r)
	if !ok {
		return
	}

	completed, err := h.svc.Get(r.Context(), textID)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, stepsResponse{CompletedSteps: completed})
}

// Reset handles DELETE /texts/{id}/steps.
func (h *StepHandler) Reset(w http.ResponseWriter, r *http.Request) {
	textID, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Reset(r.Context(), textID); err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
