package service

import (
	"context"
	"time"

	"diet_tracker/internal/repository"
	"diet_tracker/internal/translate"
)

// memoTTL bounds the in-memory layer in front of the persistent cache,
// avoiding redundant live calls within a session.
const memoTTL = 24 * time.Hour

// TranslationService resolves display names through a persistent barcode
// cache, a short-lived in-memory cache, and finally the live translator.
// Every path fails open: a failure anywhere returns the input unchanged so
// translation trouble never aborts the caller's flow.
type TranslationService struct {
	repo       repository.TranslationRepo
	translator LiveTranslator
	langs      LanguageConfig
	memo       *translate.MemoCache
	queryMemo  *translate.MemoCache
}

var _ Translation = (*TranslationService)(nil)

func NewTranslationService(repo repository.TranslationRepo, translator LiveTranslator, langs LanguageConfig) *TranslationService {
	if langs.Display == "" {
		langs.Display = "ko"
	}
	if langs.Query == "" {
		langs.Query = "en"
	}
	return &TranslationService{
		repo:       repo,
		translator: translator,
		langs:      langs,
		memo:       translate.NewMemoCache(memoTTL),
		queryMemo:  translate.NewMemoCache(memoTTL),
	}
}

// Localize returns the display-language form of text. With a barcode, a
// persistent cache row wins without any network call; a fresh translation is
// persisted best-effort under that barcode.
func (s *TranslationService) Localize(ctx context.Context, text, barcode string) string {
	// Barcode and text keys live in separate namespaces: a product name that
	// happens to equal another product's barcode must not hit its cache entry.
	memoKey := "t:" + text
	if barcode != "" {
		memoKey = "b:" + barcode
	}
	if v, ok := s.memo.Get(memoKey); ok {
		return v
	}

	if barcode != "" {
		if name, found, err := s.repo.Get(ctx, barcode); err == nil && found {
			s.memo.Set(memoKey, name)
			return name
		}
		// lookup errors fall through to the live call
	}

	translated, err := s.translator.Translate(ctx, text, s.langs.Display)
	if err != nil {
		return text
	}

	if barcode != "" {
		// Best-effort persist; an existing row from a concurrent insert wins.
		_ = s.repo.Put(ctx, barcode, translated)
	}
	s.memo.Set(memoKey, translated)
	return translated
}

// QueryLanguage translates an outgoing search query into the food service's
// expected language. Results are memoized in-memory only.
func (s *TranslationService) QueryLanguage(ctx context.Context, text string) string {
	if v, ok := s.queryMemo.Get(text); ok {
		return v
	}
	translated, err := s.translator.Translate(ctx, text, s.langs.Query)
	if err != nil {
		return text
	}
	s.queryMemo.Set(text, translated)
	return translated
}
