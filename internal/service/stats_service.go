package service

import (
	"context"

	"diet_tracker/internal/repository"
)

// Fixed daily targets. Manual meals carry no nutrition data and never
// contribute to the totals.
var dailyTargets = Targets{
	Calories: 2200,
	Proteins: 60,
	Carbs:    130,
	Fats:     51,
}

// StatsService aggregates a user's meals against the daily targets.
type StatsService struct {
	meals repository.MealRepo
}

var _ Statistics = (*StatsService)(nil)

func NewStatsService(meals repository.MealRepo) *StatsService {
	return &StatsService{meals: meals}
}

// Summarize sums each nutrition field across the user's meals and computes
// progress ratios clamped to [0, 1] for display.
func (s *StatsService) Summarize(ctx context.Context, userID int) (Summary, error) {
	meals, err := s.meals.ListMeals(ctx, userID, repository.ListOptions{})
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{Targets: dailyTargets}
	for _, m := range meals {
		sum.Calories += m.Calories
		sum.Proteins += m.Proteins
		sum.Carbs += m.Carbs
		sum.Fats += m.Fats
	}

	sum.Progress = Progress{
		Calories: clampRatio(sum.Calories, dailyTargets.Calories),
		Proteins: clampRatio(sum.Proteins, dailyTargets.Proteins),
		Carbs:    clampRatio(sum.Carbs, dailyTargets.Carbs),
		Fats:     clampRatio(sum.Fats, dailyTargets.Fats),
	}
	return sum, nil
}

// clampRatio returns total/target bounded to [0, 1]; a zero target yields 0.
func clampRatio(total, target float64) float64 {
	if target <= 0 {
		return 0
	}
	r := total / target
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
