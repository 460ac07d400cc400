package models

// Backup is the JSON document produced by a data export and accepted back on
// restore. Dates are formatted "YYYY-MM-DD HH:MM:SS"; ids are informational
// only — restore assigns fresh ones.
type Backup struct {
	Meals       []BackupMeal       `json:"meals"`
	ManualMeals []BackupManualMeal `json:"manual_meals"`
}

type BackupMeal struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Proteins float64 `json:"proteins"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Date     string  `json:"date"`
}

type BackupManualMeal struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
}
