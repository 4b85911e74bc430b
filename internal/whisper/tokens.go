package whisper

import (
	"fmt"

	"scribe/internal/language"
)

const (
	// multilingualStartOfTranscript is <|startoftranscript|> in the multilingual vocabulary.
	multilingualStartOfTranscript = 50258
	// englishStartOfTranscript is <|startoftranscript|> in the English-only vocabulary.
	englishStartOfTranscript = 50257

	baseLanguageCount = 99
	v3VocabSize       = 51866
)

// LanguageToken returns the token ID of the <|code|> marker for a model.
func LanguageToken(model Model, code string) (int, error) {
	normalized, err := language.Normalize(code)
	if err != nil {
		return 0, err
	}
	if normalized == "" {
		return 0, fmt.Errorf("empty language code")
	}
	idx, ok := language.Index(normalized)
	if !ok || idx >= languageCount(model) {
		return 0, fmt.Errorf("model %s has no token for language %q", model.Name(), normalized)
	}
	sot := englishStartOfTranscript
	if model.IsMultilingual() {
		sot = multilingualStartOfTranscript
	}
	return sot + 1 + idx, nil
}

// LanguageTokens resolves several language codes in order.
func LanguageTokens(model Model, codes []string) ([]int, error) {
	tokens := make([]int, 0, len(codes))
	for _, code := range codes {
		token, err := LanguageToken(model, code)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}

// languageCount is 100 for large-v3 vocabularies, which add Cantonese.
func languageCount(model Model) int {
	if model.Dims().NVocab >= v3VocabSize {
		return baseLanguageCount + 1
	}
	return baseLanguageCount
}
