package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errSearchFailed    = "food search failed, please try again later"
	errListFailed      = "failed to load food catalog"
	errNutritionFailed = "failed to load nutrition info"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Search foods
// @Description  Translates the query, searches the external food database and returns localized display records. A failed search yields an empty product list with an error notice.
// @Tags         foods
// @Produce      json
// @Param        q  query  string  true  "Free-text food query (any language)"
// @Success      200  {object}  map[string]interface{}  "count, products"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]interface{}
// @Router       /api/v1/foods/search [get]
// @Security     BearerAuth
func (h *Handler) searchFoods(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter 'q'"})
		return
	}

	products, err := h.services.Foods.Search(c.Request.Context(), query)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("food_search_failed", "err", err, "query", query)
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": errSearchFailed, "products": []any{}})
		return
	}

	// Remember results so a later save can resolve the selection.
	h.services.Sessions.SetSearchResults(userID, products)

	c.JSON(http.StatusOK, gin.H{
		"count":    len(products),
		"products": products,
	})
}

// @Summary      List catalog foods
// @Description  Returns one projected page of the external catalog. Paging defaults come from the caller's session and the requested page is remembered there.
// @Tags         foods
// @Produce      json
// @Param        page       query  int  false  "Page number (default: last requested)"
// @Param        page_size  query  int  false  "Items per page, 10..100"
// @Success      200  {object}  map[string]interface{}  "page, page_size, products"
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/foods [get]
// @Security     BearerAuth
func (h *Handler) listFoods(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	page, pageSize := h.services.Sessions.Paging(userID)
	if qs := c.Query("page"); qs != "" {
		if v, err := strconv.Atoi(qs); err == nil && v > 0 {
			page = v
		}
	}
	if qs := c.Query("page_size"); qs != "" {
		if v, err := strconv.Atoi(qs); err == nil && v > 0 {
			pageSize = v
		}
	}
	h.services.Sessions.SetPaging(userID, page, pageSize)
	page, pageSize = h.services.Sessions.Paging(userID)

	products, err := h.services.Foods.List(c.Request.Context(), page, pageSize)
	if err != nil {
		h.logAndJSONError(c, http.StatusBadGateway, errListFailed, "food_list_failed", err, "page", page)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":      page,
		"page_size": pageSize,
		"products":  products,
	})
}

// @Summary      Get nutrition facts
// @Description  Per-100g nutrition for a barcode. 404 means the product is unknown upstream — not zero nutrition.
// @Tags         foods
// @Produce      json
// @Param        barcode  path  string  true  "Product barcode"
// @Success      200  {object}  models.NutritionInfo
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/foods/{barcode}/nutrition [get]
// @Security     BearerAuth
func (h *Handler) getNutrition(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	barcode := c.Param("barcode")
	info, err := h.services.Foods.Nutrition(c.Request.Context(), barcode)
	if err != nil {
		h.logAndJSONError(c, http.StatusBadGateway, errNutritionFailed, "nutrition_lookup_failed", err, "barcode", barcode)
		return
	}
	if info == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	// Keep the looked-up facts as the pending selection for a later save.
	h.services.Sessions.SetPendingSelection(userID, info)

	c.JSON(http.StatusOK, info)
}
