package text

import (
	"unicode/utf8"

	"github.com/lingosteps/backend/internal/domain"
)

// maxTextLength bounds submitted texts, in runes.
const maxTextLength = 10000

var supportedLanguages = map[string]bool{
	"en": true, "es": true, "de": true, "fr": true, "it": true,
	"pt": true, "ru": true, "ja": true, "zh": true,
}

// CreateInput holds parameters for submitting a new text.
type CreateInput struct {
	Body           string
	SourceLanguage string
	TargetLanguage string
}

// Validate validates the create input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.Body == "" {
		errs = append(errs, domain.FieldError{Field: "body", Message: "required"})
	} else if utf8.RuneCountInString(i.Body) > maxTextLength {
		errs = append(errs, domain.FieldError{Field: "body", Message: "too long"})
	}

	errs = append(errs, validateLanguagePair(i.SourceLanguage, i.TargetLanguage)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// GenerateInput holds parameters for generating a practice text from the
// user's vocabulary.
type GenerateInput struct {
	SourceLanguage     string
	TargetLanguage     string
	NewWordsPercentage int
	SentenceCount      int
}

// Validate validates the generate input.
func (i GenerateInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, validateLanguagePair(i.SourceLanguage, i.TargetLanguage)...)

	if i.NewWordsPercentage < 0 || i.NewWordsPercentage > 100 {
		errs = append(errs, domain.FieldError{Field: "new_words_percentage", Message: "must be between 0 and 100"})
	}
	if i.SentenceCount < 1 || i.SentenceCount > 50 {
		errs = append(errs, domain.FieldError{Field: "sentence_count", Message: "must be between 1 and 50"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateLanguagePair(source, target string) []domain.FieldError {
	var errs []domain.FieldError

	if source == "" {
		errs = append(errs, domain.FieldError{Field: "source_language", Message: "required"})
	} else if !supportedLanguages[source] {
		errs = append(errs, domain.FieldError{Field: "source_language", Message: "unsupported language"})
	}

	if target == "" {
		errs = append(errs, domain.FieldError{Field: "target_language", Message: "required"})
	} else if !supportedLanguages[target] {
		errs = append(errs, domain.FieldError{Field: "target_language", Message: "unsupported language"})
	}

	if source != "" && source == target {
		errs = append(errs, domain.FieldError{Field: "target_language", Message: "must differ from source_language"})
	}

	return errs
}
