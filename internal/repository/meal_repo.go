package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"diet_tracker/internal/models"
)

type MealSQLite struct {
	db *sql.DB
}

func NewMealSQLite(db *sql.DB) *MealSQLite { return &MealSQLite{db: db} }

var _ MealRepo = (*MealSQLite)(nil)

const (
	insertMealSQL = `INSERT INTO meals (user_id, name, calories, proteins, carbs, fats, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	deleteMealSQL = `DELETE FROM meals WHERE id = ? AND user_id = ?`

	insertManualMealSQL = `INSERT INTO manual_meals (user_id, name, created_at) VALUES (?, ?, ?)`
	selectManualSQL     = `SELECT id, user_id, name, created_at FROM manual_meals WHERE user_id = ?`
	deleteManualSQL     = `DELETE FROM manual_meals WHERE id = ? AND user_id = ?`

	deleteUserMealsSQL       = `DELETE FROM meals WHERE user_id = ?`
	deleteUserManualMealsSQL = `DELETE FROM manual_meals WHERE user_id = ?`
)

// sortColumns whitelists ORDER BY targets; listing must never interpolate
// caller input into SQL directly.
var sortColumns = map[string]string{
	"id":       "id",
	"name":     "name",
	"calories": "calories",
	"proteins": "proteins",
	"carbs":    "carbs",
	"fats":     "fats",
}

// AddMeal inserts a meal row. A zero CreatedAt is set to now.
func (r *MealSQLite) AddMeal(ctx context.Context, m models.Meal) (int64, error) {
	ts := m.CreatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	res, err := r.db.ExecContext(ctx, insertMealSQL,
		m.UserID, m.Name, m.Calories, m.Proteins, m.Carbs, m.Fats, ts)
	if err != nil {
		return 0, fmt.Errorf("insert meal for user %d: %w", m.UserID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for meal: %w", err)
	}
	return id, nil
}

// ListMeals returns one user's meals, optionally filtered by a name substring
// and ordered by a whitelisted column.
func (r *MealSQLite) ListMeals(ctx context.Context, userID int, opts ListOptions) ([]models.Meal, error) {
	q := `SELECT id, user_id, name, calories, proteins, carbs, fats, created_at FROM meals WHERE user_id = ?`
	args := []any{userID}

	if opts.NameFilter != "" {
		q += " AND name LIKE ?"
		args = append(args, "%"+opts.NameFilter+"%")
	}

	if col, ok := sortColumns[strings.ToLower(strings.TrimSpace(opts.SortBy))]; ok {
		q += " ORDER BY " + col
		if opts.Descending {
			q += " DESC"
		} else {
			q += " ASC"
		}
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list meals for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.Meal, 0, 32)
	for rows.Next() {
		var m models.Meal
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.Calories, &m.Proteins, &m.Carbs, &m.Fats, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.CreatedAt = m.CreatedAt.UTC()
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteMeal removes a meal only if it belongs to userID.
// Returns false (no error) when no such row exists.
func (r *MealSQLite) DeleteMeal(ctx context.Context, userID int, mealID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteMealSQL, mealID, userID)
	if err != nil {
		return false, fmt.Errorf("delete meal %d for user %d: %w", mealID, userID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for meal delete: %w", err)
	}
	return n > 0, nil
}

// AddManualMeal inserts a manual meal row. A zero CreatedAt is set to now.
func (r *MealSQLite) AddManualMeal(ctx context.Context, m models.ManualMeal) (int64, error) {
	ts := m.CreatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	res, err := r.db.ExecContext(ctx, insertManualMealSQL, m.UserID, m.Name, ts)
	if err != nil {
		return 0, fmt.Errorf("insert manual meal for user %d: %w", m.UserID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for manual meal: %w", err)
	}
	return id, nil
}

func (r *MealSQLite) ListManualMeals(ctx context.Context, userID int) ([]models.ManualMeal, error) {
	rows, err := r.db.QueryContext(ctx, selectManualSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list manual meals for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.ManualMeal, 0, 16)
	for rows.Next() {
		var m models.ManualMeal
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.CreatedAt = m.CreatedAt.UTC()
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteManualMeal removes a manual meal only if it belongs to userID.
func (r *MealSQLite) DeleteManualMeal(ctx context.Context, userID int, mealID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteManualSQL, mealID, userID)
	if err != nil {
		return false, fmt.Errorf("delete manual meal %d for user %d: %w", mealID, userID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for manual meal delete: %w", err)
	}
	return n > 0, nil
}

// DeleteAllForUser removes all of one user's meals and manual meals atomically.
func (r *MealSQLite) DeleteAllForUser(ctx context.Context, userID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, deleteUserMealsSQL, userID); err != nil {
		return fmt.Errorf("delete meals for user %d: %w", userID, err)
	}
	if _, err := tx.ExecContext(ctx, deleteUserManualMealsSQL, userID); err != nil {
		return fmt.Errorf("delete manual meals for user %d: %w", userID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset transaction: %w", err)
	}
	return nil
}

// RestoreAll inserts backup rows under userID in one transaction; any failed
// insert rolls back the whole batch.
func (r *MealSQLite) RestoreAll(ctx context.Context, userID int, meals []models.Meal, manual []models.ManualMeal) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin restore transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, m := range meals {
		if _, err := tx.ExecContext(ctx, insertMealSQL,
			userID, m.Name, m.Calories, m.Proteins, m.Carbs, m.Fats, m.CreatedAt.UTC()); err != nil {
			return fmt.Errorf("restore meal %q: %w", m.Name, err)
		}
	}
	for _, m := range manual {
		if _, err := tx.ExecContext(ctx, insertManualMealSQL, userID, m.Name, m.CreatedAt.UTC()); err != nil {
			return fmt.Errorf("restore manual meal %q: %w", m.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit restore transaction: %w", err)
	}
	return nil
}
