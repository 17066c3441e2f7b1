package routes

import (
	"log"
	"net/http"

	"termbingo/handlers"
	"termbingo/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // event screens and phones connect from anywhere
	},
}

// organizerID is the playerID the organizer's screen connects with; it is not
// a joined player and skips the player lookup.
const organizerID = "host"

func SetupRoutes(
	router *gin.Engine,
	sessionHandler *handlers.SessionHandler,
	roundHandler *handlers.RoundHandler,
	claimHandler *handlers.ClaimHandler,
	hub *services.Hub,
	sessionService *services.SessionService,
) {
	api := router.Group("/api")
	{
		sessions := api.Group("/sessions")
		{
			sessions.POST("", sessionHandler.CreateSession)
			sessions.GET("/:code", sessionHandler.GetSession)
			sessions.GET("/:code/qr", sessionHandler.QRCode)
			sessions.POST("/:code/players", sessionHandler.JoinSession)
			sessions.POST("/:code/draw/next", sessionHandler.DrawNext)
			sessions.POST("/:code/draw/undo", sessionHandler.UndoLastDraw)

			sessions.GET("/:code/round", roundHandler.GetActiveRound)
			sessions.POST("/:code/rounds", roundHandler.StartRound)
			sessions.PUT("/:code/round/rule", roundHandler.SetRoundRule)

			sessions.POST("/:code/claims", claimHandler.SubmitClaim)
			sessions.GET("/:code/claims", claimHandler.ListClaims)
			sessions.GET("/:code/stats", claimHandler.GetStats)
		}
	}

	// WebSocket endpoint for live draw/round/claim updates
	router.GET("/ws/:code/:playerID", func(c *gin.Context) {
		code := c.Param("code")
		playerID := c.Param("playerID")

		state, err := sessionService.GetState(c.Request.Context(), code)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}

		playerName := c.Query("playerName")
		if playerID != organizerID {
			player, err := sessionService.GetPlayer(c.Request.Context(), playerID)
			if err != nil || player.SessionID != state.SessionID {
				log.Printf("WebSocket access denied for session %s, player %s: %v", code, playerID, err)
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Player not found in session"})
				return
			}
			if playerName == "" {
				playerName = player.Name
			}
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed for session %s, player %s: %v", code, playerID, err)
			return
		}

		hub.RegisterClient(conn, code, playerID, playerName)
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
