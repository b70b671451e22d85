package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/lingosteps/backend/internal/service/practice"
)

// practiceService defines the minimal interface needed by PracticeHandler.
type practiceService interface {
	CheckSpeech(ctx context.Context, input practice.SpeechInput) (practice.SpeechResult, error)
	CheckCloze(ctx context.Context, input practice.ClozeInput) (practice.ClozeResult, error)
}

// PracticeHandler serves speech and cloze practice REST endpoints.
type PracticeHandler struct {
	svc practiceService
	log *slog.Logger
}

// NewPracticeHandler creates a PracticeHandler.
func NewPracticeHandler(svc practiceService, logger *slog.Logger) *PracticeHandler {
	return &PracticeHandler{svc: svc, log: logger.With("handler", "practice")}
}

type speechRequest struct {
	SentenceID string `json:"sentenceId"`
	Transcript string `json:"transcript"`
}

type wordResultResponse struct {
	Attempted     string  `json:"attempted"`
	Expected      string  `json:"expected"`
	Status        string  `json:"status"`
	MatchedWordID *string `json:"matchedWordId,omitempty"`
	Score         int     `json:"score"`
}

type speechResponse struct {
	Words           []wordResultResponse `json:"words"`
	CreditedWordIDs []string             `json:"creditedWordIds"`
}

type clozeRequest struct {
	WordID string `json:"wordId"`
	Answer string `json:"answer"`
}

type clozeResponse struct {
	Status   string `json:"status"`
	Expected string `json:"expected"`
	Credited bool   `json:"credited"`
}

// Speech handles POST /practice/speech.
func (h *PracticeHandler) Speech(w http.ResponseWriter, r *http.Request) {
	var req speechRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sentenceID, err := uuid.Parse(req.SentenceID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sentence id")
		return
	}

	result, err := h.svc.CheckSpeech(r.Context(), practice.SpeechInput{
		SentenceID: sentenceID,
		Transcript: req.Transcript,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	words := make([]wordResultResponse, 0, len(result.Words))
	for _, wr := range result.Words {
		var matched *string
		if wr.Matched != nil {
			s := wr.Matched.String()
			matched = &s
		}
		words = append(words, wordResultResponse{
			Attempted:     wr.Attempted,
			Expected:      wr.Expected,
			Status:        string(wr.Status),
			MatchedWordID: matched,
			Score:         wr.Score,
		})
	}
	credited := make([]string, 0, len(result.CreditedWords))
	for _, id := range result.CreditedWords {
		credited = append(credited, id.String())
	}

	writeJSON(w, http.StatusOK, speechResponse{
		Words:           words,
		CreditedWordIDs: credited,
	})
}

// Cloze handles POST /practice/cloze.
func (h *PracticeHandler) Cloze(w http.ResponseWriter, r *http.Request) {
	var req clozeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	wordID, err := uuid.Parse(req.WordID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid word id")
		return
	}

	result, err := h.svc.CheckCloze(r.Context(), practice.ClozeInput{
		WordID: wordID,
		Answer: req.Answer,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, clozeResponse{
		Status:   string(result.Status),
		Expected: result.Expected,
		Credited: result.Credited,
	})
}
