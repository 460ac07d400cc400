package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"diet_tracker/internal/models"
	"diet_tracker/internal/repository"
)

var errEmptyMealName = errors.New("meal name is empty")

// MealService is user-scoped CRUD over meals and manual meals.
type MealService struct {
	meals        repository.MealRepo
	translations repository.TranslationRepo
}

var _ Meals = (*MealService)(nil)

func NewMealService(meals repository.MealRepo, translations repository.TranslationRepo) *MealService {
	return &MealService{meals: meals, translations: translations}
}

// Add saves a looked-up nutrition record as a meal. Missing numeric fields
// already default to 0 in the lookup; the timestamp is set at insertion.
func (s *MealService) Add(ctx context.Context, userID int, n models.NutritionInfo) (int64, error) {
	if strings.TrimSpace(n.Name) == "" {
		return 0, errEmptyMealName
	}
	return s.meals.AddMeal(ctx, models.Meal{
		UserID:   userID,
		Name:     n.Name,
		Calories: n.Calories,
		Proteins: n.Proteins,
		Carbs:    n.Carbs,
		Fats:     n.Fats,
	})
}

// AddManual saves a name-only diet entry.
func (s *MealService) AddManual(ctx context.Context, userID int, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errEmptyMealName
	}
	return s.meals.AddManualMeal(ctx, models.ManualMeal{UserID: userID, Name: name})
}

func (s *MealService) List(ctx context.Context, userID int, opts repository.ListOptions) ([]models.Meal, error) {
	opts.SortBy = strings.ToLower(strings.TrimSpace(opts.SortBy))
	opts.NameFilter = strings.TrimSpace(opts.NameFilter)
	return s.meals.ListMeals(ctx, userID, opts)
}

func (s *MealService) ListManual(ctx context.Context, userID int) ([]models.ManualMeal, error) {
	return s.meals.ListManualMeals(ctx, userID)
}

// Delete removes one meal if owned by userID; false means no such row.
func (s *MealService) Delete(ctx context.Context, userID int, mealID int64) (bool, error) {
	return s.meals.DeleteMeal(ctx, userID, mealID)
}

func (s *MealService) DeleteManual(ctx context.Context, userID int, mealID int64) (bool, error) {
	return s.meals.DeleteManualMeal(ctx, userID, mealID)
}

// Reset deletes all of the user's meals and manual meals, and wipes the
// translation cache for every user. The global wipe matches the current
// product behavior; whether it should be scoped narrower is an open design
// question (see DESIGN.md).
func (s *MealService) Reset(ctx context.Context, userID int) error {
	if err := s.meals.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("reset meal data: %w", err)
	}
	if err := s.translations.DeleteAll(ctx); err != nil {
		return fmt.Errorf("reset translation cache: %w", err)
	}
	return nil
}
