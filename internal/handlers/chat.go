package handlers

import (
	"errors"
	"net/http"

	"diet_tracker/internal/chat"

	"github.com/gin-gonic/gin"
)

// rateLimitNotice is shown verbatim when the completion provider throttles us.
const rateLimitNotice = "현재 서비스 이용량이 초과되었습니다. 잠시 후 다시 시도해주세요."

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// writeChatError maps provider failures: rate limits get the canned
// retry-later notice, anything else is surfaced verbatim.
func (h *Handler) writeChatError(c *gin.Context, err error) {
	if errors.Is(err, chat.ErrRateLimited) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": rateLimitNotice})
		return
	}
	if h.log != nil {
		h.log.Errorw("chat_completion_failed", "err", err)
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}

// @Summary      Chat with the nutrition assistant
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body  chatRequest  true  "User message"
// @Success      200  {object}  map[string]string  "reply"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/chat [post]
// @Security     BearerAuth
func (h *Handler) chatSay(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req chatRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	reply, err := h.services.Chat.Say(c.Request.Context(), userID, req.Message)
	if err != nil {
		h.writeChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// @Summary      Ask for feedback on today's intake
// @Description  Injects the current daily statistics into the conversation and returns the assistant's comment.
// @Tags         chat
// @Produce      json
// @Success      200  {object}  map[string]string  "reply"
// @Failure      401  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/chat/feedback [post]
// @Security     BearerAuth
func (h *Handler) chatFeedback(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	reply, err := h.services.Chat.StatsFeedback(c.Request.Context(), userID)
	if err != nil {
		h.writeChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
