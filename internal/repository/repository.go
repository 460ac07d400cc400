package repository

import (
	"context"
	"database/sql"

	"diet_tracker/internal/models"
	"diet_tracker/internal/repository/db"
)

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// ListOptions controls ordering and filtering of meal listings.
type ListOptions struct {
	SortBy     string // "id" | "name" | "calories" | "proteins" | "carbs" | "fats"
	Descending bool
	NameFilter string // substring match on name; empty means no filter
}

type MealRepo interface {
	AddMeal(ctx context.Context, m models.Meal) (int64, error)
	ListMeals(ctx context.Context, userID int, opts ListOptions) ([]models.Meal, error)
	DeleteMeal(ctx context.Context, userID int, mealID int64) (bool, error)

	AddManualMeal(ctx context.Context, m models.ManualMeal) (int64, error)
	ListManualMeals(ctx context.Context, userID int) ([]models.ManualMeal, error)
	DeleteManualMeal(ctx context.Context, userID int, mealID int64) (bool, error)

	// DeleteAllForUser removes every meal and manual meal of one user in a
	// single transaction.
	DeleteAllForUser(ctx context.Context, userID int) error

	// RestoreAll inserts the given rows under userID in a single transaction;
	// any failure rolls back the whole batch.
	RestoreAll(ctx context.Context, userID int, meals []models.Meal, manual []models.ManualMeal) error
}

type TranslationRepo interface {
	Get(ctx context.Context, barcode string) (string, bool, error)
	Put(ctx context.Context, barcode, translatedName string) error
	DeleteAll(ctx context.Context) error
}

type Repository struct {
	Auth         Authorization
	Meals        MealRepo
	Translations TranslationRepo
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Auth:         NewUserRepository(sqlDB),
		Meals:        NewMealSQLite(sqlDB),
		Translations: NewTranslationSQLite(sqlDB),
	}
}

// InitDB opens the SQLite file and ensures the schema exists.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
