package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"diet_tracker/internal/models"
)

func doAuthedJSON(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header = authHeader("tok")
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAddMeal_ExplicitBody(t *testing.T) {
	s, m := newMockService()
	m.auth.parseID = 3
	m.meals.addID = 7
	r := newTestRouter(s)

	w := doAuthedJSON(r, http.MethodPost, "/api/v1/meals",
		`{"name":"닭가슴살","calories":165,"proteins":31,"fats":3.6}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if m.meals.lastAdd.Name != "닭가슴살" || m.meals.lastAdd.Calories != 165 {
		t.Fatalf("unexpected saved meal: %+v", m.meals.lastAdd)
	}

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if int64(out["id"].(float64)) != 7 {
		t.Fatalf("expected id=7, got %v", out["id"])
	}
}

func TestAddMeal_FromPendingSelection(t *testing.T) {
	s, m := newMockService()
	m.auth.parseID = 3
	m.meals.addID = 8
	r := newTestRouter(s)

	s.Sessions.SetPendingSelection(3, &models.NutritionInfo{Name: "현미밥", Calories: 350})
	s.Sessions.SetSearchResults(3, []models.DisplayProduct{{Name: "현미밥", Barcode: "456"}})

	w := doAuthedJSON(r, http.MethodPost, "/api/v1/meals", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if m.meals.lastAdd.Name != "현미밥" || m.meals.lastAdd.Calories != 350 {
		t.Fatalf("pending selection not saved: %+v", m.meals.lastAdd)
	}

	// a saved selection is consumed along with the stale search results
	if got := s.Sessions.PendingSelection(3); got != nil {
		t.Fatalf("pending selection not consumed: %+v", got)
	}
	if got := s.Sessions.SearchResults(3); got != nil {
		t.Fatalf("search results not cleared: %+v", got)
	}
}

func TestAddMeal_NoBodyNoSelection(t *testing.T) {
	s, m := newMockService()
	m.auth.parseID = 3
	r := newTestRouter(s)

	w := doAuthedJSON(r, http.MethodPost, "/api/v1/meals", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (body=%s)", w.Code, w.Body.String())
	}
}

func TestListMeals_PassesOptions(t *testing.T) {
	s, m := newMockService()
	m.auth.parseID = 3
	m.meals.listResp = []models.Meal{{ID: 1, Name: "닭가슴살", Calories: 165}}
	r := newTestRouter(s)

	w := doAuthed(r, http.MethodGet, "/api/v1/meals?sort_by=calories&order=DESC&q=닭")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	opts := m.meals.lastListOpts
	if opts.SortBy != "calories" || !opts.Descending || opts.NameFilter != "닭" {
		t.Fatalf("unexpected list options: %+v", opts)
	}

	var out struct {
		Count int           `json:"count"`
		Meals []models.Meal `json:"meals"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 1 || out.Meals[0].Name != "닭가슴살" {
		t.Fatalf("unexpected response: %+v", out)
	}
}

func TestDeleteMeal(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		deleted  bool
		err      error
		wantCode int
	}{
		{"deleted", "/api/v1/meals/5", true, nil, http.StatusOK},
		{"not found", "/api/v1/meals/5", false, nil, http.StatusNotFound},
		{"bad id", "/api/v1/meals/abc", false, nil, http.StatusBadRequest},
		{"repo error", "/api/v1/meals/5", false, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt // capture
		t.Run(tt.name, func(t *testing.T) {
			s, m := newMockService()
			m.auth.parseID = 3
			m.meals.deleted = tt.deleted
			m.meals.deleteErr = tt.err
			r := newTestRouter(s)

			w := doAuthed(r, http.MethodDelete, tt.target)
			if w.Code != tt.wantCode {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tt.wantCode, w.Body.String())
			}
		})
	}
}

func TestAddManualMeal(t *testing.T) {
	s, m := newMockService()
	m.auth.parseID = 3
	m.meals.addManualID = 9
	r := newTestRouter(s)

	w := doAuthedJSON(r, http.MethodPost, "/api/v1/meals/manual", `{"name":"집밥"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if m.meals.lastManualName != "집밥" {
		t.Fatalf("unexpected manual meal name: %q", m.meals.lastManualName)
	}

	// name is required
	w = doAuthedJSON(r, http.MethodPost, "/api/v1/meals/manual", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", w.Code)
	}
}

func TestListManualMeals(t *testing.T) {
	s, m := newMockService()
	m.auth.parseID = 3
	m.meals.listManual = []models.ManualMeal{{ID: 1, Name: "집밥"}}
	r := newTestRouter(s)

	w := doAuthed(r, http.MethodGet, "/api/v1/meals/manual")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	var out struct {
		Count int                 `json:"count"`
		Meals []models.ManualMeal `json:"meals"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 1 || out.Meals[0].Name != "집밥" {
		t.Fatalf("unexpected response: %+v", out)
	}
}

func TestDeleteManualMeal_NotFound(t *testing.T) {
	s, m := newMockService()
	m.auth.parseID = 3
	m.meals.deleted = false
	r := newTestRouter(s)

	w := doAuthed(r, http.MethodDelete, "/api/v1/meals/manual/42")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if m.meals.lastDeleteID != 42 {
		t.Fatalf("unexpected delete id: %d", m.meals.lastDeleteID)
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	s, _ := newMockService()
	r := newTestRouter(s)

	for _, target := range []string{
		"/api/v1/meals",
		"/api/v1/foods/search?q=x",
		"/api/v1/stats/daily",
		"/api/v1/backup",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 without token, got %d", target, w.Code)
		}
	}
}
