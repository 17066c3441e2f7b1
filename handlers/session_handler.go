package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"termbingo/services"
)

type SessionHandler struct {
	sessionService *services.SessionService
	hub            *services.Hub
	publicBaseURL  string
}

func NewSessionHandler(sessionService *services.SessionService, hub *services.Hub, publicBaseURL string) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		hub:            hub,
		publicBaseURL:  publicBaseURL,
	}
}

func (h *SessionHandler) joinURL(code string) string {
	return h.publicBaseURL + "/play/" + code
}

func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req services.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessionService.CreateSession(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":            session.Code,
		"gridRows":      session.Rows,
		"gridCols":      session.Cols,
		"winConditions": session.WinConditions,
		"joinUrl":       h.joinURL(session.Code),
	})
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session code required"})
		return
	}

	state, err := h.sessionService.GetState(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}

	// The draw order is deliberately withheld: it would reveal every future
	// draw to anyone polling the session.
	c.JSON(http.StatusOK, gin.H{
		"id":             state.Code,
		"rows":           state.Rows,
		"cols":           state.Cols,
		"win_conditions": state.WinConditions,
		"status":         state.Status,
		"pool_size":      state.PoolSize,
		"draws":          state.Draws,
		"players":        state.Players,
		"round_number":   state.RoundNumber,
		"round_rule":     state.RoundRule,
	})
}

func (h *SessionHandler) JoinSession(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session code required"})
		return
	}

	var req services.JoinSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player, err := h.sessionService.JoinSession(c.Request.Context(), code, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.hub != nil {
		h.hub.BroadcastToSession(code, "player_update", gin.H{
			"action": "joined",
			"player": gin.H{"player_id": player.PublicID, "name": player.Name},
		})
	}

	c.JSON(http.StatusCreated, gin.H{
		"playerId": player.PublicID,
		"cardId":   player.PublicID,
		"gridRows": len(player.Layout),
		"gridCols": len(player.Layout[0]),
		"layout":   player.Layout,
	})
}

func (h *SessionHandler) DrawNext(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session code required"})
		return
	}

	draw, done, err := h.sessionService.DrawNext(c.Request.Context(), code, h.hub)
	if err != nil {
		respondError(c, err)
		return
	}
	if done {
		c.JSON(http.StatusOK, gin.H{"done": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"index":    draw.Index,
		"term":     draw.Term,
		"drawn_at": draw.DrawnAt,
	})
}

func (h *SessionHandler) UndoLastDraw(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session code required"})
		return
	}

	if err := h.sessionService.UndoLastDraw(c.Request.Context(), code, h.hub); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// QRCode renders the join URL as a PNG for the organizer's projector screen.
func (h *SessionHandler) QRCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session code required"})
		return
	}

	if _, err := h.sessionService.GetState(c.Request.Context(), code); err != nil {
		respondError(c, err)
		return
	}

	png, err := qrcode.Encode(h.joinURL(code), qrcode.Medium, 512)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render QR code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
