package handlers

import (
	"context"
	"net/http"

	"diet_tracker/internal/models"
	"diet_tracker/internal/repository"
	"diet_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockFoods struct {
	searchResults []models.DisplayProduct
	searchErr     error
	listResults   []models.DisplayProduct
	listErr       error
	nutrition     *models.NutritionInfo
	nutritionErr  error

	lastQuery    string
	lastPage     int
	lastPageSize int
	lastBarcode  string
}

func (m *mockFoods) Search(_ context.Context, query string) ([]models.DisplayProduct, error) {
	m.lastQuery = query
	return m.searchResults, m.searchErr
}
func (m *mockFoods) List(_ context.Context, page, pageSize int) ([]models.DisplayProduct, error) {
	m.lastPage = page
	m.lastPageSize = pageSize
	return m.listResults, m.listErr
}
func (m *mockFoods) Nutrition(_ context.Context, barcode string) (*models.NutritionInfo, error) {
	m.lastBarcode = barcode
	return m.nutrition, m.nutritionErr
}

type mockMeals struct {
	addID         int64
	addErr        error
	addManualID   int64
	addManualErr  error
	listResp      []models.Meal
	listErr       error
	listManual    []models.ManualMeal
	listManualErr error
	deleted       bool
	deleteErr     error
	resetErr      error

	lastAdd        models.NutritionInfo
	lastManualName string
	lastListOpts   repository.ListOptions
	lastDeleteID   int64
	resetCalls     int
}

func (m *mockMeals) Add(_ context.Context, userID int, n models.NutritionInfo) (int64, error) {
	m.lastAdd = n
	return m.addID, m.addErr
}
func (m *mockMeals) AddManual(_ context.Context, userID int, name string) (int64, error) {
	m.lastManualName = name
	return m.addManualID, m.addManualErr
}
func (m *mockMeals) List(_ context.Context, userID int, opts repository.ListOptions) ([]models.Meal, error) {
	m.lastListOpts = opts
	return m.listResp, m.listErr
}
func (m *mockMeals) ListManual(_ context.Context, userID int) ([]models.ManualMeal, error) {
	return m.listManual, m.listManualErr
}
func (m *mockMeals) Delete(_ context.Context, userID int, mealID int64) (bool, error) {
	m.lastDeleteID = mealID
	return m.deleted, m.deleteErr
}
func (m *mockMeals) DeleteManual(_ context.Context, userID int, mealID int64) (bool, error) {
	m.lastDeleteID = mealID
	return m.deleted, m.deleteErr
}
func (m *mockMeals) Reset(_ context.Context, userID int) error {
	m.resetCalls++
	return m.resetErr
}

type mockStats struct {
	summary service.Summary
	err     error
}

func (m *mockStats) Summarize(_ context.Context, userID int) (service.Summary, error) {
	return m.summary, m.err
}

type mockBackup struct {
	exportData []byte
	exportName string
	exportErr  error
	importErr  error

	lastImport []byte
}

func (m *mockBackup) Export(_ context.Context, userID int) ([]byte, string, error) {
	return m.exportData, m.exportName, m.exportErr
}
func (m *mockBackup) Import(_ context.Context, userID int, data []byte) error {
	m.lastImport = data
	return m.importErr
}

type mockChat struct {
	sayReply    string
	sayErr      error
	fbReply     string
	fbErr       error
	lastSayText string
}

func (m *mockChat) Say(_ context.Context, userID int, text string) (string, error) {
	m.lastSayText = text
	return m.sayReply, m.sayErr
}
func (m *mockChat) StatsFeedback(_ context.Context, userID int) (string, error) {
	return m.fbReply, m.fbErr
}

// ---- Shared Test Helpers ----

// testMocks bundles the per-interface mocks wired into one service.Service.
// Sessions is the real in-memory implementation; the handlers' session
// interactions are part of what the tests assert.
type testMocks struct {
	auth   *mockAuth
	foods  *mockFoods
	meals  *mockMeals
	stats  *mockStats
	backup *mockBackup
	chat   *mockChat
}

func newMockService() (*service.Service, *testMocks) {
	m := &testMocks{
		auth:   &mockAuth{},
		foods:  &mockFoods{},
		meals:  &mockMeals{},
		stats:  &mockStats{},
		backup: &mockBackup{},
		chat:   &mockChat{},
	}
	s := &service.Service{
		Authorization: m.auth,
		Foods:         m.foods,
		Meals:         m.meals,
		Statistics:    m.stats,
		Backup:        m.backup,
		Sessions:      service.NewSessionService(),
		Chat:          m.chat,
	}
	return s, m
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
