package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"diet_tracker/internal/models"
	"diet_tracker/internal/repository"
)

const (
	// backupDateLayout is the wire format for dates in backup files.
	backupDateLayout = "2006-01-02 15:04:05"
	// backupFileLayout names downloaded backups, e.g. backup_20250101_093000.json.
	backupFileLayout = "20060102_150405"
)

// BackupService exports and restores one user's meal data as a JSON document.
type BackupService struct {
	meals repository.MealRepo
}

var _ Backup = (*BackupService)(nil)

func NewBackupService(meals repository.MealRepo) *BackupService {
	return &BackupService{meals: meals}
}

// Export serializes the user's meals and manual meals. Returns the document
// and a timestamped download filename.
func (s *BackupService) Export(ctx context.Context, userID int) ([]byte, string, error) {
	meals, err := s.meals.ListMeals(ctx, userID, repository.ListOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("load meals for backup: %w", err)
	}
	manual, err := s.meals.ListManualMeals(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("load manual meals for backup: %w", err)
	}

	doc := models.Backup{
		Meals:       make([]models.BackupMeal, 0, len(meals)),
		ManualMeals: make([]models.BackupManualMeal, 0, len(manual)),
	}
	for _, m := range meals {
		doc.Meals = append(doc.Meals, models.BackupMeal{
			ID:       m.ID,
			Name:     m.Name,
			Calories: m.Calories,
			Proteins: m.Proteins,
			Carbs:    m.Carbs,
			Fats:     m.Fats,
			Date:     m.CreatedAt.Format(backupDateLayout),
		})
	}
	for _, m := range manual {
		doc.ManualMeals = append(doc.ManualMeals, models.BackupManualMeal{
			ID:   m.ID,
			Name: m.Name,
			Date: m.CreatedAt.Format(backupDateLayout),
		})
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, "", fmt.Errorf("marshal backup: %w", err)
	}
	filename := "backup_" + time.Now().Format(backupFileLayout) + ".json"
	return data, filename, nil
}

// Import re-inserts backup rows under userID in one transaction. Supplied
// dates are trusted; supplied ids are ignored and fresh ones assigned.
// Malformed JSON or an unparsable date aborts with no state mutated.
func (s *BackupService) Import(ctx context.Context, userID int, data []byte) error {
	var doc models.Backup
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse backup file: %w", err)
	}

	meals := make([]models.Meal, 0, len(doc.Meals))
	for _, m := range doc.Meals {
		ts, err := time.Parse(backupDateLayout, m.Date)
		if err != nil {
			return fmt.Errorf("parse date of meal %q: %w", m.Name, err)
		}
		meals = append(meals, models.Meal{
			Name:      m.Name,
			Calories:  m.Calories,
			Proteins:  m.Proteins,
			Carbs:     m.Carbs,
			Fats:      m.Fats,
			CreatedAt: ts,
		})
	}

	manual := make([]models.ManualMeal, 0, len(doc.ManualMeals))
	for _, m := range doc.ManualMeals {
		ts, err := time.Parse(backupDateLayout, m.Date)
		if err != nil {
			return fmt.Errorf("parse date of manual meal %q: %w", m.Name, err)
		}
		manual = append(manual, models.ManualMeal{Name: m.Name, CreatedAt: ts})
	}

	return s.meals.RestoreAll(ctx, userID, meals, manual)
}
