package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"diet_tracker/internal/models"
	"diet_tracker/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	errAddMeal    = "failed to save meal"
	errListMeals  = "failed to load meals"
	errDeleteMeal = "failed to delete meal"

	orderDesc = "desc"
)

// Request DTO for saving a meal. All fields optional: an empty body saves the
// session's pending nutrition selection.
type addMealRequest struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Proteins float64 `json:"proteins"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

type addManualMealRequest struct {
	Name string `json:"name" binding:"required"`
}

// @Summary      Save a meal
// @Description  Saves nutrition facts as a meal. With an empty body the session's pending selection (from the last nutrition lookup) is saved and then cleared.
// @Tags         meals
// @Accept       json
// @Produce      json
// @Param        body  body  addMealRequest  false  "Meal payload"
// @Success      200  {object}  map[string]interface{}  "id"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/meals [post]
// @Security     BearerAuth
func (h *Handler) addMeal(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req addMealRequest
	if c.Request.ContentLength > 0 {
		if ok := h.bindJSONOrBadRequest(c, &req); !ok {
			return
		}
	}

	info := models.NutritionInfo{
		Name:     strings.TrimSpace(req.Name),
		Calories: req.Calories,
		Proteins: req.Proteins,
		Carbs:    req.Carbs,
		Fats:     req.Fats,
	}
	fromSelection := false
	if info.Name == "" {
		pending := h.services.Sessions.PendingSelection(userID)
		if pending == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no meal data given and no pending selection"})
			return
		}
		info = *pending
		fromSelection = true
	}

	id, err := h.services.Meals.Add(c.Request.Context(), userID, info)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errAddMeal, "meal_add_failed", err)
		return
	}

	// A saved selection is consumed, along with the stale search results.
	if fromSelection {
		h.services.Sessions.SetPendingSelection(userID, nil)
		h.services.Sessions.SetSearchResults(userID, nil)
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "name": info.Name})
}

// @Summary      List meals
// @Tags         meals
// @Produce      json
// @Param        sort_by  query  string  false  "Sort column"  Enums(id,name,calories,proteins,carbs,fats)
// @Param        order    query  string  false  "Sort order"   Enums(asc,desc)
// @Param        q        query  string  false  "Name substring filter"
// @Success      200  {object}  map[string]interface{}  "count, meals"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/meals [get]
// @Security     BearerAuth
func (h *Handler) listMeals(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	opts := repository.ListOptions{
		SortBy:     c.Query("sort_by"),
		Descending: strings.EqualFold(c.Query("order"), orderDesc),
		NameFilter: c.Query("q"),
	}

	meals, err := h.services.Meals.List(c.Request.Context(), userID, opts)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListMeals, "meal_list_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(meals),
		"meals": meals,
	})
}

// @Summary      Delete a meal
// @Tags         meals
// @Produce      json
// @Param        id  path  int  true  "Meal id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/meals/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteMeal(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	deleted, err := h.services.Meals.Delete(c.Request.Context(), userID, id)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errDeleteMeal, "meal_delete_failed", err, "meal_id", id)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// @Summary      Add a manual meal
// @Tags         meals
// @Accept       json
// @Produce      json
// @Param        body  body  addManualMealRequest  true  "Manual meal payload"
// @Success      200  {object}  map[string]interface{}  "id"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/meals/manual [post]
// @Security     BearerAuth
func (h *Handler) addManualMeal(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req addManualMealRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	id, err := h.services.Meals.AddManual(c.Request.Context(), userID, req.Name)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errAddMeal, "manual_meal_add_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "name": strings.TrimSpace(req.Name)})
}

// @Summary      List manual meals
// @Tags         meals
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, meals"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/meals/manual [get]
// @Security     BearerAuth
func (h *Handler) listManualMeals(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	meals, err := h.services.Meals.ListManual(c.Request.Context(), userID)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListMeals, "manual_meal_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(meals),
		"meals": meals,
	})
}

// @Summary      Delete a manual meal
// @Tags         meals
// @Produce      json
// @Param        id  path  int  true  "Manual meal id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/meals/manual/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteManualMeal(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	deleted, err := h.services.Meals.DeleteManual(c.Request.Context(), userID, id)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errDeleteMeal, "manual_meal_delete_failed", err, "meal_id", id)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
