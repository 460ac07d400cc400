// mocks_test.go — hand-rolled fakes shared by the service tests.
package service

import (
	"context"
	"strings"
	"sync"

	"diet_tracker/internal/chat"
	"diet_tracker/internal/models"
	"diet_tracker/internal/repository"
)

// fakeAuthRepo is an in-memory repository.Authorization.
type fakeAuthRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[string]*models.User
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{nextID: 1, users: make(map[string]*models.User)}
}

func (f *fakeAuthRepo) Create(_ context.Context, username, passwordHash string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[username]; ok {
		return 0, repository.ErrUsernameTaken
	}
	id := f.nextID
	f.nextID++
	f.users[username] = &models.User{ID: id, Username: username, PasswordHash: passwordHash}
	return id, nil
}

func (f *fakeAuthRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[username]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

var _ repository.Authorization = (*fakeAuthRepo)(nil)

// fakeMealRepo is an in-memory repository.MealRepo.
type fakeMealRepo struct {
	mu     sync.Mutex
	nextID int64
	meals  []models.Meal
	manual []models.ManualMeal

	listErr    error
	restoreErr error
}

func newFakeMealRepo() *fakeMealRepo {
	return &fakeMealRepo{nextID: 1}
}

func (f *fakeMealRepo) AddMeal(_ context.Context, m models.Meal) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m.ID = f.nextID
	f.nextID++
	f.meals = append(f.meals, m)
	return m.ID, nil
}

func (f *fakeMealRepo) ListMeals(_ context.Context, userID int, opts repository.ListOptions) ([]models.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Meal, 0, len(f.meals))
	for _, m := range f.meals {
		if m.UserID != userID {
			continue
		}
		if opts.NameFilter != "" && !strings.Contains(m.Name, opts.NameFilter) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMealRepo) DeleteMeal(_ context.Context, userID int, mealID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, m := range f.meals {
		if m.ID == mealID && m.UserID == userID {
			f.meals = append(f.meals[:i], f.meals[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMealRepo) AddManualMeal(_ context.Context, m models.ManualMeal) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m.ID = f.nextID
	f.nextID++
	f.manual = append(f.manual, m)
	return m.ID, nil
}

func (f *fakeMealRepo) ListManualMeals(_ context.Context, userID int) ([]models.ManualMeal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.ManualMeal, 0, len(f.manual))
	for _, m := range f.manual {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMealRepo) DeleteManualMeal(_ context.Context, userID int, mealID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, m := range f.manual {
		if m.ID == mealID && m.UserID == userID {
			f.manual = append(f.manual[:i], f.manual[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMealRepo) DeleteAllForUser(_ context.Context, userID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	meals := f.meals[:0]
	for _, m := range f.meals {
		if m.UserID != userID {
			meals = append(meals, m)
		}
	}
	f.meals = meals
	manual := f.manual[:0]
	for _, m := range f.manual {
		if m.UserID != userID {
			manual = append(manual, m)
		}
	}
	f.manual = manual
	return nil
}

func (f *fakeMealRepo) RestoreAll(_ context.Context, userID int, meals []models.Meal, manual []models.ManualMeal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.restoreErr != nil {
		return f.restoreErr
	}
	for _, m := range meals {
		m.ID = f.nextID
		f.nextID++
		m.UserID = userID
		f.meals = append(f.meals, m)
	}
	for _, m := range manual {
		m.ID = f.nextID
		f.nextID++
		m.UserID = userID
		f.manual = append(f.manual, m)
	}
	return nil
}

var _ repository.MealRepo = (*fakeMealRepo)(nil)

// fakeTranslationRepo is an in-memory repository.TranslationRepo.
type fakeTranslationRepo struct {
	mu      sync.Mutex
	rows    map[string]string
	getErr  error
	putErr  error
	getHits int
	puts    int
}

func newFakeTranslationRepo() *fakeTranslationRepo {
	return &fakeTranslationRepo{rows: make(map[string]string)}
}

func (f *fakeTranslationRepo) Get(_ context.Context, barcode string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getHits++
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.rows[barcode]
	return v, ok, nil
}

func (f *fakeTranslationRepo) Put(_ context.Context, barcode, translatedName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	if f.putErr != nil {
		return f.putErr
	}
	if _, ok := f.rows[barcode]; !ok {
		f.rows[barcode] = translatedName
	}
	return nil
}

func (f *fakeTranslationRepo) DeleteAll(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = make(map[string]string)
	return nil
}

var _ repository.TranslationRepo = (*fakeTranslationRepo)(nil)

// fakeTranslator records live-translation calls and returns a canned mapping.
type fakeTranslator struct {
	mu      sync.Mutex
	results map[string]string
	err     error
	calls   []string
}

func newFakeTranslator(results map[string]string) *fakeTranslator {
	return &fakeTranslator{results: results}
}

func (f *fakeTranslator) Translate(_ context.Context, text, targetLang string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, text+"->"+targetLang)
	if f.err != nil {
		return "", f.err
	}
	if v, ok := f.results[text]; ok {
		return v, nil
	}
	return text, nil
}

func (f *fakeTranslator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeFoodAPI returns canned search/list/nutrition results.
type fakeFoodAPI struct {
	searchResults []models.RawProduct
	searchErr     error
	searchQueries []string

	listResults []models.RawProduct
	listErr     error

	nutrition    *models.NutritionInfo
	nutritionErr error
}

func (f *fakeFoodAPI) Search(_ context.Context, query string) ([]models.RawProduct, error) {
	f.searchQueries = append(f.searchQueries, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResults, nil
}

func (f *fakeFoodAPI) List(_ context.Context, page, pageSize int) ([]models.RawProduct, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResults, nil
}

func (f *fakeFoodAPI) Nutrition(_ context.Context, barcode string) (*models.NutritionInfo, error) {
	if f.nutritionErr != nil {
		return nil, f.nutritionErr
	}
	return f.nutrition, nil
}

var _ FoodAPI = (*fakeFoodAPI)(nil)

// fakeTranslation is a recording Translation that prefixes localized text.
type fakeTranslation struct {
	localizeCalls []string // "text|barcode"
	queryCalls    []string
}

func (f *fakeTranslation) Localize(_ context.Context, text, barcode string) string {
	f.localizeCalls = append(f.localizeCalls, text+"|"+barcode)
	return "ko:" + text
}

func (f *fakeTranslation) QueryLanguage(_ context.Context, text string) string {
	f.queryCalls = append(f.queryCalls, text)
	return "en:" + text
}

var _ Translation = (*fakeTranslation)(nil)

// fakeCompleter replies with a canned message and records transcripts.
type fakeCompleter struct {
	reply       string
	err         error
	transcripts [][]chat.Message
}

func (f *fakeCompleter) Complete(_ context.Context, messages []chat.Message) (string, error) {
	cp := make([]chat.Message, len(messages))
	copy(cp, messages)
	f.transcripts = append(f.transcripts, cp)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

var _ Completer = (*fakeCompleter)(nil)
