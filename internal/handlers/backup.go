package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const maxRestoreBytes = 10 << 20 // 10 MB

// @Summary      Download a backup
// @Description  Exports the user's meals and manual meals as a JSON attachment.
// @Tags         data
// @Produce      json
// @Success      200  {object}  models.Backup
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/backup [get]
// @Security     BearerAuth
func (h *Handler) backup(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	data, filename, err := h.services.Backup.Export(c.Request.Context(), userID)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to create backup", "backup_failed", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/json", data)
}

// @Summary      Restore from a backup
// @Description  Re-inserts backup rows under the current user. Dates in the file are trusted; ids are reassigned. A malformed file changes nothing.
// @Tags         data
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/restore [post]
// @Security     BearerAuth
func (h *Handler) restore(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxRestoreBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read backup file"})
		return
	}

	if err := h.services.Backup.Import(c.Request.Context(), userID, data); err != nil {
		if h.log != nil {
			h.log.Infow("restore_failed", "err", err, "user_id", userID)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "restored"})
}

// @Summary      Reset diet data
// @Description  Deletes all of the user's meals and manual meals, and wipes the shared translation cache.
// @Tags         data
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/reset [post]
// @Security     BearerAuth
func (h *Handler) resetData(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	if err := h.services.Meals.Reset(c.Request.Context(), userID); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to reset data", "reset_failed", err)
		return
	}
	// Transient UI state goes with the data.
	h.services.Sessions.Reset(userID)

	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

// @Summary      Reset session state
// @Description  Clears transient session state (paging, search results, pending selection, chat transcript) while keeping identity.
// @Tags         data
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/session/reset [post]
// @Security     BearerAuth
func (h *Handler) resetSession(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	h.services.Sessions.Reset(userID)
	c.JSON(http.StatusOK, gin.H{"status": "session_reset"})
}
