package models

import "time"

// Meal is a diet entry saved from an OpenFoodFacts nutrition lookup.
// Nutrition values are per 100g and default to 0 when the source omits them.
type Meal struct {
	ID        int64     `json:"id"`
	UserID    int       `json:"-"`
	Name      string    `json:"name"`
	Calories  float64   `json:"calories"`
	Proteins  float64   `json:"proteins"`
	Carbs     float64   `json:"carbs"`
	Fats      float64   `json:"fats"`
	CreatedAt time.Time `json:"created_at"`
}

// ManualMeal is a diet entry typed in by hand: name only, no nutrition data.
type ManualMeal struct {
	ID        int64     `json:"id"`
	UserID    int       `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
