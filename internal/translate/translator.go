package translate

import "context"

// Translator is the live machine-translation backend. Implementations must
// treat the target language as an ISO 639-1 code ("ko", "en").
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}
