package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/lingosteps/backend/internal/domain"
	"github.com/lingosteps/backend/internal/service/completion"
)

// completionService defines the minimal interface needed by CompletionHandler.
type completionService interface {
	Record(ctx context.Context, input completion.RecordInput) error
	GetStats(ctx context.Context, timezone string) (completion.Stats, error)
}

// CompletionHandler serves word practice completion REST endpoints.
type CompletionHandler struct {
	svc completionService
	log *slog.Logger
}

// NewCompletionHandler creates a CompletionHandler.
func NewCompletionHandler(svc completionService, logger *slog.Logger) *CompletionHandler {
	return &CompletionHandler{svc: svc, log: logger.With("handler", "completions")}
}

type recordCompletionRequest struct {
	WordID string `json:"wordId"`
	Method string `json:"method"`
}

type dayCountResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type statsResponse struct {
	Days   []dayCountResponse `json:"days"`
	Streak int                `json:"streak"`
	Total  int                `json:"total"`
}

// Record handles POST /completions.
func (h *CompletionHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req recordCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	wordID, err := uuid.Parse(req.WordID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid word id")
		return
	}

	err = h.svc.Record(r.Context(), completion.RecordInput{
		WordID: wordID,
		Method: domain.CompletionMethod(req.Method),
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

// Stats handles GET /completions/stats. The timezone query parameter
// shifts day bucketing; missing or invalid values fall back to UTC.
func (h *CompletionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.GetStats(r.Context(), r.URL.Query().Get("timezone"))
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	days := make([]dayCountResponse, 0, len(stats.Days))
	for _, d := range stats.Days {
		days = append(days, dayCountResponse{
			Date:  d.Date.Format("2006-01-02"),
			Count: d.Count,
		})
	}
	writeJSON(w, http.StatusOK, statsResponse{
		Days:   days,
		Streak: stats.Streak,
		Total:  stats.Total,
	})
}
