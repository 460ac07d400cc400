package handlers

import (
	"diet_tracker/internal/logger"
	"diet_tracker/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestIDMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Interactive chatbot over WebSocket — same port, token via query param
	router.GET("/ws/chat", h.wsChat)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerFoodRoutes(api)
		h.registerMealRoutes(api)
		h.registerStatsRoutes(api)
		h.registerDataRoutes(api)
		h.registerChatRoutes(api)
	}
}

func (h *Handler) registerFoodRoutes(api *gin.RouterGroup) {
	foods := api.Group("/foods")
	{
		foods.GET("/search", h.searchFoods)
		foods.GET("", h.listFoods)
		foods.GET("/:barcode/nutrition", h.getNutrition)
	}
}

func (h *Handler) registerMealRoutes(api *gin.RouterGroup) {
	meals := api.Group("/meals")
	{
		meals.POST("", h.addMeal)
		meals.GET("", h.listMeals)
		meals.DELETE("/:id", h.deleteMeal)

		meals.POST("/manual", h.addManualMeal)
		meals.GET("/manual", h.listManualMeals)
		meals.DELETE("/manual/:id", h.deleteManualMeal)
	}
}

func (h *Handler) registerStatsRoutes(api *gin.RouterGroup) {
	stats := api.Group("/stats")
	{
		stats.GET("/daily", h.dailyStats)
	}
}

func (h *Handler) registerDataRoutes(api *gin.RouterGroup) {
	api.GET("/backup", h.backup)
	api.POST("/restore", h.restore)
	api.POST("/reset", h.resetData)
	api.POST("/session/reset", h.resetSession)
}

func (h *Handler) registerChatRoutes(api *gin.RouterGroup) {
	chatGroup := api.Group("/chat")
	{
		chatGroup.POST("", h.chatSay)
		chatGroup.POST("/feedback", h.chatFeedback)
	}
}
