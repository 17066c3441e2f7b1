package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"termbingo/services"
)

type ClaimHandler struct {
	claimService *services.ClaimService
	hub          *services.Hub
}

func NewClaimHandler(claimService *services.ClaimService, hub *services.Hub) *ClaimHandler {
	return &ClaimHandler{
		claimService: claimService,
		hub:          hub,
	}
}

// roundFilter parses the optional ?round=N query parameter.
func roundFilter(c *gin.Context) (*int, bool) {
	raw := c.Query("round")
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return nil, false
	}
	return &n, true
}

func (h *ClaimHandler) SubmitClaim(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session code required"})
		return
	}

	var req services.SubmitClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claim, err := h.claimService.SubmitClaim(c.Request.Context(), code, &req, h.hub)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"claim_id":     claim.PublicID,
		"verdict":      claim.Verdict,
		"round_number": claim.RoundNumber,
		"round_rule":   claim.RoundRule,
	})
}

func (h *ClaimHandler) ListClaims(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session code required"})
		return
	}

	round, ok := roundFilter(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid round filter"})
		return
	}

	claims, err := h.claimService.ListClaims(c.Request.Context(), code, round)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, claims)
}

func (h *ClaimHandler) GetStats(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session code required"})
		return
	}

	round, ok := roundFilter(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid round filter"})
		return
	}

	stats, err := h.claimService.ComputeStats(c.Request.Context(), code, round)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
