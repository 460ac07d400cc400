package service

import (
	"context"

	"diet_tracker/internal/chat"
	"diet_tracker/internal/models"
	"diet_tracker/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Translation localizes product names with a persistent barcode cache in
// front of the live translator. Both methods fail open: on any error the
// input text comes back unchanged.
type Translation interface {
	Localize(ctx context.Context, text, barcode string) string
	QueryLanguage(ctx context.Context, text string) string
}

// Foods covers the search-and-translation pipeline: query translation,
// external search, projection to display records, and nutrition lookup.
type Foods interface {
	Search(ctx context.Context, query string) ([]models.DisplayProduct, error)
	List(ctx context.Context, page, pageSize int) ([]models.DisplayProduct, error)
	Nutrition(ctx context.Context, barcode string) (*models.NutritionInfo, error)
}

// Meals is user-scoped CRUD over API-derived and manually entered meals.
type Meals interface {
	Add(ctx context.Context, userID int, n models.NutritionInfo) (int64, error)
	AddManual(ctx context.Context, userID int, name string) (int64, error)
	List(ctx context.Context, userID int, opts repository.ListOptions) ([]models.Meal, error)
	ListManual(ctx context.Context, userID int) ([]models.ManualMeal, error)
	Delete(ctx context.Context, userID int, mealID int64) (bool, error)
	DeleteManual(ctx context.Context, userID int, mealID int64) (bool, error)
	Reset(ctx context.Context, userID int) error
}

// Statistics sums a user's meals against the fixed daily targets.
type Statistics interface {
	Summarize(ctx context.Context, userID int) (Summary, error)
}

// Backup exports and restores a user's meal data as JSON.
type Backup interface {
	Export(ctx context.Context, userID int) ([]byte, string, error)
	Import(ctx context.Context, userID int, data []byte) error
}

// Sessions holds per-user interactive state that survives across requests.
type Sessions interface {
	Bind(userID int, username string)
	Paging(userID int) (page, pageSize int)
	SetPaging(userID, page, pageSize int)
	SetSearchResults(userID int, products []models.DisplayProduct)
	SearchResults(userID int) []models.DisplayProduct
	SetPendingSelection(userID int, n *models.NutritionInfo)
	PendingSelection(userID int) *models.NutritionInfo
	Transcript(userID int) []chat.Message
	AppendTranscript(userID int, msgs ...chat.Message)
	Reset(userID int)
}

// Chat is the scripted nutrition chatbot: an append-only transcript plus one
// completion call per turn.
type Chat interface {
	Say(ctx context.Context, userID int, text string) (string, error)
	StatsFeedback(ctx context.Context, userID int) (string, error)
}

type Service struct {
	Authorization
	Translation
	Foods
	Meals
	Statistics
	Backup
	Sessions
	Chat
}

// Deps carries the external clients the service layer needs beyond repositories.
type Deps struct {
	FoodAPI    FoodAPI
	Translator LiveTranslator
	Completer  Completer
	AuthConfig AuthConfig
	Langs      LanguageConfig
}

// NewService wires repositories and external clients into concrete services.
func NewService(repos *repository.Repository, deps Deps) *Service {
	translation := NewTranslationService(repos.Translations, deps.Translator, deps.Langs)
	sessions := NewSessionService()
	stats := NewStatsService(repos.Meals)

	return &Service{
		Authorization: NewAuthService(repos.Auth, deps.AuthConfig),
		Translation:   translation,
		Foods:         NewFoodService(deps.FoodAPI, translation),
		Meals:         NewMealService(repos.Meals, repos.Translations),
		Statistics:    stats,
		Backup:        NewBackupService(repos.Meals),
		Sessions:      sessions,
		Chat:          NewChatService(deps.Completer, sessions, stats),
	}
}
