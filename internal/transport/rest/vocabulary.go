package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lingosteps/backend/internal/domain"
)

// vocabularyService defines the minimal interface needed by VocabularyHandler.
type vocabularyService interface {
	List(ctx context.Context) (map[string][]domain.WordStats, error)
	Get(ctx context.Context, wordID uuid.UUID) (domain.Word, error)
}

// VocabularyHandler serves vocabulary REST endpoints.
type VocabularyHandler struct {
	svc vocabularyService
	log *slog.Logger
}

// NewVocabularyHandler creates a VocabularyHandler.
func NewVocabularyHandler(svc vocabularyService, logger *slog.Logger) *VocabularyHandler {
	return &VocabularyHandler{svc: svc, log: logger.With("handler", "vocabulary")}
}

type wordResponse struct {
	ID             string    `json:"id"`
	SourceWord     string    `json:"sourceWord"`
	TargetWord     string    `json:"targetWord"`
	SourceLanguage string    `json:"sourceLanguage"`
	TargetLanguage string    `json:"targetLanguage"`
	AudioURL       *string   `json:"audioUrl,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type wordStatsResponse struct {
	wordResponse
	OccurrenceCount int `json:"occurrenceCount"`
	CompletionCount int `json:"completionCount"`
}

// List handles GET /vocabulary. Words come grouped by source language.
func (h *VocabularyHandler) List(w http.ResponseWriter, r *http.Request) {
	grouped, err := h.svc.List(r.Context())
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	out := make(map[string][]wordStatsResponse, len(grouped))
	for lang, words := range grouped {
		group := make([]wordStatsResponse, 0, len(words))
		for _, ws := range words {
			group = append(group, wordStatsResponse{
				wordResponse:    toWordResponse(ws.Word),
				OccurrenceCount: ws.OccurrenceCount,
				CompletionCount: ws.CompletionCount,
			})
		}
		out[lang] = group
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /vocabulary/{id}.
func (h *VocabularyHandler) Get(w http.ResponseWriter, r *http.Request) {
	wordID, ok := pathID(w, r)
	if !ok {
		return
	}

	word, err := h.svc.Get(r.Context(), wordID)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toWordResponse(word))
}

func toWordResponse(word domain.Word) wordResponse {
	return wordResponse{
		ID:             word.ID.String(),
		SourceWord:     word.SourceWord,
		TargetWord:     word.TargetWord,
		SourceLanguage: word.SourceLanguage,
		TargetLanguage: word.TargetLanguage,
		AudioURL:       word.AudioURL,
		CreatedAt:      word.CreatedAt,
	}
}
