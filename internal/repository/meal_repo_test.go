// meal_repo_test.go
package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"diet_tracker/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockMealRepo(t *testing.T) (*MealSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewMealSQLite(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestMealSQLite_AddMeal(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		meal       models.Meal
		mockExpect func(sqlmock.Sqlmock)
		wantID     int64
		wantErr    bool
	}{
		{
			name: "success with explicit timestamp",
			meal: models.Meal{
				UserID:    3,
				Name:      "닭가슴살",
				Calories:  165,
				Proteins:  31,
				Carbs:     0,
				Fats:      3.6,
				CreatedAt: ts,
			},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertMealSQL)).
					WithArgs(3, "닭가슴살", 165.0, 31.0, 0.0, 3.6, ts).
					WillReturnResult(sqlmock.NewResult(11, 1))
			},
			wantID: 11,
		},
		{
			name: "zero timestamp gets filled",
			meal: models.Meal{UserID: 3, Name: "현미밥"},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertMealSQL)).
					WithArgs(3, "현미밥", 0.0, 0.0, 0.0, 0.0, sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(12, 1))
			},
			wantID: 12,
		},
		{
			name: "exec error",
			meal: models.Meal{UserID: 3, Name: "x", CreatedAt: ts},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertMealSQL)).
					WithArgs(3, "x", 0.0, 0.0, 0.0, 0.0, ts).
					WillReturnError(errors.New("db exec failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt // capture
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockMealRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			id, err := repo.AddMeal(context.Background(), tt.meal)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tt.wantID {
				t.Fatalf("unexpected id: want %d, got %d", tt.wantID, id)
			}
		})
	}
}

func TestMealSQLite_ListMeals(t *testing.T) {
	ts := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	mealColumns := []string{"id", "user_id", "name", "calories", "proteins", "carbs", "fats", "created_at"}

	tests := []struct {
		name       string
		opts       ListOptions
		mockExpect func(sqlmock.Sqlmock)
		wantNames  []string
		wantErr    bool
	}{
		{
			name: "no options",
			opts: ListOptions{},
			mockExpect: func(m sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(mealColumns).
					AddRow(1, 3, "닭가슴살", 165.0, 31.0, 0.0, 3.6, ts).
					AddRow(2, 3, "현미밥", 350.0, 7.0, 74.0, 2.7, ts)
				m.ExpectQuery(regexp.QuoteMeta(
					`SELECT id, user_id, name, calories, proteins, carbs, fats, created_at FROM meals WHERE user_id = ?`,
				)).WithArgs(3).WillReturnRows(rows)
			},
			wantNames: []string{"닭가슴살", "현미밥"},
		},
		{
			name: "name filter uses LIKE",
			opts: ListOptions{NameFilter: "닭"},
			mockExpect: func(m sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(mealColumns).
					AddRow(1, 3, "닭가슴살", 165.0, 31.0, 0.0, 3.6, ts)
				m.ExpectQuery(regexp.QuoteMeta(
					`SELECT id, user_id, name, calories, proteins, carbs, fats, created_at FROM meals WHERE user_id = ? AND name LIKE ?`,
				)).WithArgs(3, "%닭%").WillReturnRows(rows)
			},
			wantNames: []string{"닭가슴살"},
		},
		{
			name: "sort by whitelisted column descending",
			opts: ListOptions{SortBy: "calories", Descending: true},
			mockExpect: func(m sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(mealColumns).
					AddRow(2, 3, "현미밥", 350.0, 7.0, 74.0, 2.7, ts).
					AddRow(1, 3, "닭가슴살", 165.0, 31.0, 0.0, 3.6, ts)
				m.ExpectQuery(regexp.QuoteMeta(
					`SELECT id, user_id, name, calories, proteins, carbs, fats, created_at FROM meals WHERE user_id = ? ORDER BY calories DESC`,
				)).WithArgs(3).WillReturnRows(rows)
			},
			wantNames: []string{"현미밥", "닭가슴살"},
		},
		{
			name: "unknown sort column is ignored",
			opts: ListOptions{SortBy: "name; DROP TABLE meals"},
			mockExpect: func(m sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(mealColumns).
					AddRow(1, 3, "닭가슴살", 165.0, 31.0, 0.0, 3.6, ts)
				m.ExpectQuery(regexp.QuoteMeta(
					`SELECT id, user_id, name, calories, proteins, carbs, fats, created_at FROM meals WHERE user_id = ?`,
				)).WithArgs(3).WillReturnRows(rows)
			},
			wantNames: []string{"닭가슴살"},
		},
		{
			name: "query error",
			opts: ListOptions{},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(
					`SELECT id, user_id, name, calories, proteins, carbs, fats, created_at FROM meals WHERE user_id = ?`,
				)).WithArgs(3).WillReturnError(errors.New("db query failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt // capture
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockMealRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			meals, err := repo.ListMeals(context.Background(), 3, tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(meals) != len(tt.wantNames) {
				t.Fatalf("unexpected meal count: want %d, got %d", len(tt.wantNames), len(meals))
			}
			for i, want := range tt.wantNames {
				if meals[i].Name != want {
					t.Fatalf("meal %d: want name %q, got %q", i, want, meals[i].Name)
				}
			}
		})
	}
}

func TestMealSQLite_DeleteMeal(t *testing.T) {
	tests := []struct {
		name       string
		mockExpect func(sqlmock.Sqlmock)
		wantFound  bool
		wantErr    bool
	}{
		{
			name: "deleted",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(deleteMealSQL)).
					WithArgs(int64(5), 3).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantFound: true,
		},
		{
			name: "not owned or missing",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(deleteMealSQL)).
					WithArgs(int64(5), 3).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantFound: false,
		},
		{
			name: "exec error",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(deleteMealSQL)).
					WithArgs(int64(5), 3).
					WillReturnError(errors.New("db exec failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt // capture
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockMealRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			found, err := repo.DeleteMeal(context.Background(), 3, 5)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if found != tt.wantFound {
				t.Fatalf("unexpected found: want %v, got %v", tt.wantFound, found)
			}
		})
	}
}

func TestMealSQLite_DeleteAllForUser(t *testing.T) {
	t.Run("success commits both deletes", func(t *testing.T) {
		repo, mock, cleanup := newMockMealRepo(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(deleteUserMealsSQL)).
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(regexp.QuoteMeta(deleteUserManualMealsSQL)).
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		if err := repo.DeleteAllForUser(context.Background(), 3); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("failure rolls back", func(t *testing.T) {
		repo, mock, cleanup := newMockMealRepo(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(deleteUserMealsSQL)).
			WithArgs(3).
			WillReturnError(errors.New("db exec failed"))
		mock.ExpectRollback()

		if err := repo.DeleteAllForUser(context.Background(), 3); err == nil {
			t.Fatalf("expected error, got nil")
		}
	})
}

func TestMealSQLite_RestoreAll(t *testing.T) {
	ts := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	meals := []models.Meal{
		{Name: "닭가슴살", Calories: 165, Proteins: 31, Carbs: 0, Fats: 3.6, CreatedAt: ts},
	}
	manual := []models.ManualMeal{
		{Name: "집밥", CreatedAt: ts},
	}

	t.Run("success inserts all rows in one transaction", func(t *testing.T) {
		repo, mock, cleanup := newMockMealRepo(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(insertMealSQL)).
			WithArgs(3, "닭가슴살", 165.0, 31.0, 0.0, 3.6, ts).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(regexp.QuoteMeta(insertManualMealSQL)).
			WithArgs(3, "집밥", ts).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		if err := repo.RestoreAll(context.Background(), 3, meals, manual); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("failed insert rolls back the whole batch", func(t *testing.T) {
		repo, mock, cleanup := newMockMealRepo(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(insertMealSQL)).
			WithArgs(3, "닭가슴살", 165.0, 31.0, 0.0, 3.6, ts).
			WillReturnError(errors.New("db exec failed"))
		mock.ExpectRollback()

		if err := repo.RestoreAll(context.Background(), 3, meals, manual); err == nil {
			t.Fatalf("expected error, got nil")
		}
	})
}
