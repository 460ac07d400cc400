package service

import (
	"context"
	"time"

	"diet_tracker/internal/chat"
	"diet_tracker/internal/models"
)

// FoodAPI is the slice of the OpenFoodFacts client the services consume.
type FoodAPI interface {
	Search(ctx context.Context, query string) ([]models.RawProduct, error)
	List(ctx context.Context, page, pageSize int) ([]models.RawProduct, error)
	Nutrition(ctx context.Context, barcode string) (*models.NutritionInfo, error)
}

// LiveTranslator is the live machine-translation backend.
type LiveTranslator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// Completer produces the next assistant message for a transcript.
type Completer interface {
	Complete(ctx context.Context, messages []chat.Message) (string, error)
}

// AuthConfig carries token signing parameters loaded from config.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

// LanguageConfig carries the display/query language pair (ISO 639-1).
// Display is what users read ("ko"); Query is what the food service expects ("en").
type LanguageConfig struct {
	Display string
	Query   string
}

// Targets are the fixed daily nutrition targets.
type Targets struct {
	Calories float64 `json:"calories"`
	Proteins float64 `json:"proteins"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// Progress holds per-nutrient completion ratios clamped to [0, 1].
type Progress struct {
	Calories float64 `json:"calories"`
	Proteins float64 `json:"proteins"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// Summary is the daily statistics view: totals, targets, clamped progress.
type Summary struct {
	Calories float64  `json:"calories"`
	Proteins float64  `json:"proteins"`
	Carbs    float64  `json:"carbs"`
	Fats     float64  `json:"fats"`
	Targets  Targets  `json:"targets"`
	Progress Progress `json:"progress"`
}
