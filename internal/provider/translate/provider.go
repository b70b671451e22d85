// Package translate implements the external machine-translation provider.
package translate

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
	"github.com/lingosteps/backend/internal/provider"
)

// Provider calls a translation API that segments a text into aligned
// sentences and word pairs.
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
		log:        logger.With("adapter", "translate"),
	}
}

type translateRequest struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

type apiResponse struct {
	Sentences []apiSentence `json:"sentences"`
	Usage     apiUsage      `json:"usage"`
}

type apiSentence struct {
	Order          int       `json:"order"`
	SourceSentence string    `json:"source_sentence"`
	TargetSentence string    `json:"target_sentence"`
	Items          []apiItem `json:"items"`
}

type apiItem struct {
	Order  int    `json:"order"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type apiUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Translate submits a text and returns the aligned translation graph.
// Malformed upstream output fails loudly; callers treat the error as a
// server fault, never a validation outcome.
func (p *Provider) Translate(ctx context.Context, text, sourceLang, targetLang string) (provider.TranslationResult, error) {
	payload, err := json.Marshal(translateRequest{
		Text:           text,
		SourceLanguage: sourceLang,
		TargetLanguage: targetLang,
	})
	if err != nil {
		return provider.TranslationResult{}, fmt.Errorf("translate: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/translate", bytes.NewReader(payload))
	if err != nil {
		return provider.TranslationResult{}, fmt.Errorf("translate: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.doWithRetry(ctx, req)
	if err != nil {
		p.log.ErrorContext(ctx, "translate request failed", slog.String("error", err.Error()))
		return provider.TranslationResult{}, fmt.Errorf("translate: request failed: %v: %w", err, domain.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return provider.TranslationResult{}, fmt.Errorf("translate: unexpected status %d: %w", resp.StatusCode, domain.ErrUpstream)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return provider.TranslationResult{}, fmt.Errorf("translate: read body: %w", err)
	}

	var api apiResponse
	if err := json.Unmarshal(body, &api); err != nil {
		return provider.TranslationResult{}, fmt.Errorf("translate: decode json: %w", err)
	}

	result := mapAPIResponse(api)
	if len(result.Sentences) == 0 {
		return provider.TranslationResult{}, fmt.Errorf("translate: empty sentence list in response")
	}

	p.log.DebugContext(ctx, "translate response",
		slog.Int("sentences", len(result.Sentences)),
		slog.Int("total_tokens", result.Usage.TotalTokens),
	)

	return result, nil
}

// doWithRetry executes the request with a single retry on 5xx or network
// errors. The request body is re-created via GetBody on retry.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}
	if ctx.Err() != nil {
		return resp, err
	}

	if resp != nil {
		resp.Body.Close()
	}

	retryReq := req.Clone(ctx)
	if req.GetBody != nil {
		body, bodyErr := req.GetBody()
		if bodyErr != nil {
			return nil, fmt.Errorf("reset request body: %w", bodyErr)
		}
		retryReq.Body = body
	}

	p.log.WarnContext(ctx, "translate retrying request")
	return p.httpClient.Do(retryReq)
}

func mapAPIResponse(api apiResponse) provider.TranslationResult {
	result := provider.TranslationResult{
		Usage: provider.TokenUsageResult{
			PromptTokens:     api.Usage.PromptTokens,
			CompletionTokens: api.Usage.CompletionTokens,
			TotalTokens:      api.Usage.TotalTokens,
		},
	}

	for _, s := range api.Sentences {
		sentence := provider.SentenceResult{
			Order:          s.Order,
			SourceSentence: s.SourceSentence,
			TargetSentence: s.TargetSentence,
		}
		for _, it := range s.Items {
			sentence.Items = append(sentence.Items, provider.ItemResult{
				Order:  it.Order,
				Source: it.Source,
				Target: it.Target,
			})
		}
		result.Sentences = append(result.Sentences, sentence)
	}

	return result
}
