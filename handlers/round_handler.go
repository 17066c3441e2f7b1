package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"termbingo/services"
)

type RoundHandler struct {
	roundService *services.RoundService
	hub          *services.Hub
}

func NewRoundHandler(roundService *services.RoundService, hub *services.Hub) *RoundHandler {
	return &RoundHandler{
		roundService: roundService,
		hub:          hub,
	}
}

func (h *RoundHandler) GetActiveRound(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session code required"})
		return
	}

	round, err := h.roundService.ActiveRound(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"number": round.Number, "rule": round.Rule})
}

func (h *RoundHandler) StartRound(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session code required"})
		return
	}

	var req services.RoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	round, err := h.roundService.StartRound(c.Request.Context(), code, req.Rule, h.hub)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"number": round.Number, "rule": round.Rule})
}

func (h *RoundHandler) SetRoundRule(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session code required"})
		return
	}

	var req services.RoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	round, err := h.roundService.SetRule(c.Request.Context(), code, req.Rule, h.hub)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"number": round.Number, "rule": round.Rule})
}
