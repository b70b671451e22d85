// Package provider defines the structured results returned by external
// language providers (translation, text generation, speech synthesis).
package provider

// TranslationResult is the aligned sentence/word graph returned by the
// translator for one submitted text.
type TranslationResult struct {
	Sentences []SentenceResult
	Usage     TokenUsageResult
}

// SentenceResult is one aligned sentence, 1-based order within the text.
type SentenceResult struct {
	Order          int
	SourceSentence string
	TargetSentence string
	Items          []ItemResult
}

// ItemResult pairs one source token with its target counterpart, 1-based
// order within the sentence.
type ItemResult struct {
	Order  int
	Source string
	Target string
}

// TokenUsageResult is the translator's reported token consumption.
type TokenUsageResult struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
