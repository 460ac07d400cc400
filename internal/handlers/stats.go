package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Daily statistics
// @Description  Sums the user's meals and compares against fixed daily targets. Progress ratios are clamped to [0, 1].
// @Tags         stats
// @Produce      json
// @Success      200  {object}  service.Summary
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/stats/daily [get]
// @Security     BearerAuth
func (h *Handler) dailyStats(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	sum, err := h.services.Statistics.Summarize(c.Request.Context(), userID)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load statistics", "stats_failed", err)
		return
	}
	c.JSON(http.StatusOK, sum)
}
