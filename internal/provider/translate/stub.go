package translate

import (
	"context"
	"strings"

	"github.com/lingosteps/backend/internal/provider"
)

// Stub is a deterministic offline translator for tests and local
// development. It splits on sentence-ending punctuation and "translates"
// each token by reversing it, preserving the order contract of the real
// provider.
type Stub struct{}

// NewStub creates a stub translator.
func NewStub() *Stub { return &Stub{} }

// Translate segments text into sentences and word items without calling
// any external service.
func (s *Stub) Translate(_ context.Context, text, _, _ string) (provider.TranslationResult, error) {
	result := provider.TranslationResult{}

	order := 0
	for _, raw := range splitSentences(text) {
		sentence := strings.TrimSpace(raw)
		if sentence == "" {
			continue
		}
		order++

		sr := provider.SentenceResult{
			Order:          order,
			SourceSentence: sentence,
			TargetSentence: reverse(sentence),
		}
		for i, token := range strings.Fields(sentence) {
			sr.Items = append(sr.Items, provider.ItemResult{
				Order:  i + 1,
				Source: token,
				Target: reverse(token),
			})
		}
		result.Sentences = append(result.Sentences, sr)
	}

	return result, nil
}

func splitSentences(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
