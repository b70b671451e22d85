// Package generate implements the external draft-text generator.
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/lingosteps/backend/internal/domain"
)

// Provider calls a text-generation API that produces practice text built
// around a learner's known vocabulary.
type Provider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a Provider for the given API endpoint.
func New(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "generate"),
	}
}

type generateRequest struct {
	KnownWords         []string `json:"known_words"`
	NewWordsPercentage int      `json:"new_words_percentage"`
	SourceLanguage     string   `json:"source_language"`
	SentenceCount      int      `json:"sentence_count"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// Generate produces a draft text from the user's known words. It has no
// persistence side effects of its own.
func (p *Provider) Generate(ctx context.Context, knownWords []string, newWordsPercentage int, sourceLang string, sentenceCount int) (string, error) {
	payload, err := json.Marshal(generateRequest{
		KnownWords:         knownWords,
		NewWordsPercentage: newWordsPercentage,
		SourceLanguage:     sourceLang,
		SentenceCount:      sentenceCount,
	})
	if err != nil {
		return "", fmt.Errorf("generate: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("generate: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.ErrorContext(ctx, "generate request failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("generate: request failed: %v: %w", err, domain.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generate: unexpected status %d: %w", resp.StatusCode, domain.ErrUpstream)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("generate: read body: %w", err)
	}

	var api generateResponse
	if err := json.Unmarshal(body, &api); err != nil {
		return "", fmt.Errorf("generate: decode json: %w", err)
	}
	if api.Text == "" {
		return "", fmt.Errorf("generate: empty text in response")
	}

	return api.Text, nil
}
