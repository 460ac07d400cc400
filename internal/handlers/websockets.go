package handlers

import (
	"errors"
	"net/http"
	"time"

	"diet_tracker/internal/chat"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12 // 4 KB
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

const (
	wsTypeReply = "reply"
	wsTypeError = "error"
)

// Upgrader for HTTP -> WebSocket. Consider tightening CheckOrigin in production.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origins for production
}

// wsChat runs an interactive chat session over one WebSocket connection:
// each incoming text frame is a user turn, each outgoing reply envelope the
// assistant's answer. Auth comes via ?token= since browsers cannot set
// headers on WebSocket dials.
func (h *Handler) wsChat(c *gin.Context) {
	userID, err := h.services.ParseToken(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Incoming user turns from the reader goroutine. quit unblocks a reader
	// stuck sending a turn after this handler has already returned.
	turns := make(chan string)
	done := make(chan struct{})
	quit := make(chan struct{})
	defer close(quit)
	go h.readTurns(conn, turns, done, quit)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case text := <-turns:
			if err := h.answerTurn(c, conn, userID, text); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		}
	}
}

// readTurns forwards incoming text frames and closes done on disconnect.
// The send races against quit: conn.Close alone cannot unblock a channel
// send, so a handler that exits mid-turn must release the reader here.
func (h *Handler) readTurns(conn *websocket.Conn, turns chan<- string, done chan<- struct{}, quit <-chan struct{}) {
	defer close(done)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
		select {
		case turns <- string(msg):
		case <-quit:
			return
		}
	}
}

// answerTurn runs one chatbot turn and writes the reply envelope. Provider
// failures are sent as error envelopes; only write failures end the session.
func (h *Handler) answerTurn(c *gin.Context, conn *websocket.Conn, userID int, text string) error {
	reply, err := h.services.Chat.Say(c.Request.Context(), userID, text)

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err != nil {
		notice := err.Error()
		if errors.Is(err, chat.ErrRateLimited) {
			notice = rateLimitNotice
		}
		return conn.WriteJSON(wsEnvelope{Type: wsTypeError, Error: notice})
	}
	return conn.WriteJSON(wsEnvelope{Type: wsTypeReply, Data: reply})
}
