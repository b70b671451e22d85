package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lingosteps/backend/internal/domain"
	"github.com/lingosteps/backend/internal/service/text"
)

// textService defines the minimal interface needed by TextHandler.
type textService interface {
	Create(ctx context.Context, input text.CreateInput) (domain.Text, error)
	Generate(ctx context.Context, input text.GenerateInput) (domain.Text, error)
	List(ctx context.Context) ([]text.Summary, error)
	Get(ctx context.Context, textID uuid.UUID) (text.Detail, error)
	Delete(ctx context.Context, textID uuid.UUID) error
}

// TextHandler serves text REST endpoints.
type TextHandler struct {
	svc textService
	log *slog.Logger
}

// NewTextHandler creates a TextHandler.
func NewTextHandler(svc textService, logger *slog.Logger) *TextHandler {
	return &TextHandler{svc: svc, log: logger.With("handler", "texts")}
}

type createTextRequest struct {
	Body           string `json:"body"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
}

type generateTextRequest struct {
	SourceLanguage     string `json:"sourceLanguage"`
	TargetLanguage     string `json:"targetLanguage"`
	NewWordsPercentage int    `json:"newWordsPercentage"`
	SentenceCount      int    `json:"sentenceCount"`
}

type usageResponse struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

type textResponse struct {
	ID             string        `json:"id"`
	Body           string        `json:"body"`
	SourceLanguage string        `json:"sourceLanguage"`
	TargetLanguage string        `json:"targetLanguage"`
	AudioStatus    string        `json:"audioStatus"`
	Usage          usageResponse `json:"usage"`
	CreatedAt      time.Time     `json:"createdAt"`
}

type textSummaryResponse struct {
	textResponse
	CompletedSteps int `json:"completedSteps"`
}

type alignedWordResponse struct {
	WordID          string  `json:"wordId"`
	OrderInSentence int     `json:"orderInSentence"`
	SourceWord      string  `json:"sourceWord"`
	TargetWord      string  `json:"targetWord"`
	AudioURL        *string `json:"audioUrl,omitempty"`
	OccurrenceCount int     `json:"occurrenceCount"`
}

type sentenceResponse struct {
	ID             string                `json:"id"`
	OrderInText    int                   `json:"orderInText"`
	SourceSentence string                `json:"sourceSentence"`
	TargetSentence string                `json:"targetSentence"`
	AudioURL       *string               `json:"audioUrl,omitempty"`
	Words          []alignedWordResponse `json:"words"`
}

type textDetailResponse struct {
	textResponse
	Sentences []sentenceResponse `json:"sentences"`
}

// Create handles POST /texts.
func (h *TextHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.Create(r.Context(), text.CreateInput{
		Body:           req.Body,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTextResponse(created))
}

// Generate handles POST /texts/generate.
func (h *TextHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.Generate(r.Context(), text.GenerateInput{
		SourceLanguage:     req.SourceLanguage,
		TargetLanguage:     req.TargetLanguage,
		NewWordsPercentage: req.NewWordsPercentage,
		SentenceCount:      req.SentenceCount,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTextResponse(created))
}

// List handles GET /texts.
func (h *TextHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.svc.List(r.Context())
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	out := make([]textSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, textSummaryResponse{
			textResponse:   toTextResponse(s.Text),
			CompletedSteps: s.CompletedSteps,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /texts/{id}.
func (h *TextHandler) Get(w http.ResponseWriter, r *http.Request) {
	textID, ok := pathID(w, r)
	if !ok {
		return
	}

	detail, err := h.svc.Get(r.Context(), textID)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTextDetailResponse(detail))
}

// Delete handles DELETE /texts/{id}.
func (h *TextHandler) Delete(w http.ResponseWriter, r *http.Request) {
	textID, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), textID); err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toTextResponse(t domain.Text) textResponse {
	return textResponse{
		ID:             t.ID.String(),
		Body:           t.Body,
		SourceLanguage: t.SourceLanguage,
		TargetLanguage: t.TargetLanguage,
		AudioStatus:    string(t.AudioStatus),
		Usage: usageResponse{
			PromptTokens:     t.Usage.Prompt,
			CompletionTokens: t.Usage.Completion,
			TotalTokens:      t.Usage.Total,
		},
		CreatedAt: t.CreatedAt,
	}
}

func toTextDetailResponse(detail text.Detail) textDetailResponse {
	sentences := make([]sentenceResponse, 0, len(detail.Sentences))
	for _, sv := range detail.Sentences {
		words := make([]alignedWordResponse, 0, len(sv.Words))
		for _, w := range sv.Words {
			words = append(words, alignedWordResponse{
				WordID:          w.WordID.String(),
				OrderInSentence: w.OrderInSentence,
				SourceWord:      w.SourceWord,
				TargetWord:      w.TargetWord,
				AudioURL:        w.AudioURL,
				OccurrenceCount: w.OccurrenceCount,
			})
		}
		sentences = append(sentences, sentenceResponse{
			ID:             sv.Sentence.ID.String(),
			OrderInText:    sv.Sentence.OrderInText,
			SourceSentence: sv.Sentence.SourceSentence,
			TargetSentence: sv.Sentence.TargetSentence,
			AudioURL:       sv.Sentence.AudioURL,
			Words:          words,
		})
	}
	return textDetailResponse{
		textResponse: toTextResponse(detail.Text),
		Sentences:    sentences,
	}
}
