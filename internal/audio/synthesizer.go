package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/lingosteps/backend/internal/domain"
)

// Synthesizer renders one utterance to encoded audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, language, voice string) ([]byte, error)
}

// HTTPSynthesizer calls an external text-to-speech service.
type HTTPSynthesizer struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPSynthesizer(baseURL, apiKey string, client *http.Client) *HTTPSynthesizer {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSynthesizer{baseURL: baseURL, apiKey: apiKey, httpClient: client}
}

type synthesizeRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Voice    string `json:"voice"`
}

func (s *HTTPSynthesizer) Synthesize(ctx context.Context, text, language, voice string) ([]byte, error) {
	body, err := json.Marshal(synthesizeRequest{Text: text, Language: language, Voice: voice})
	if err != nil {
		return nil, fmt.Errorf("marshal synthesize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/synthesize", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build synthesize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call speech service: %w", domain.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speech service returned %d: %w", resp.StatusCode, domain.ErrUpstream)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read speech response: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("speech service returned empty audio: %w", domain.ErrUpstream)
	}
	return audio, nil
}

// StubSynthesizer produces deterministic fake audio for local runs and
// tests.
type StubSynthesizer struct{}

func (StubSynthesizer) Synthesize(_ context.Context, text, language, voice string) ([]byte, error) {
	return []byte("stub-audio:" + language + ":" + voice + ":" + text), nil
}
