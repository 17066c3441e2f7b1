package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Hub pushes session events (draws, round changes, claim results) to
// connected clients. Clients that lag are dropped; HTTP polling of the
// session state stays correct without any websocket at all.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	sessions   *SessionService
}

type Client struct {
	hub         *Hub
	id          string
	socket      *websocket.Conn
	send        chan []byte
	sessionCode string
	playerID    string
	playerName  string
}

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

func NewHub(sessions *SessionService) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		sessions:   sessions,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Printf("Client registered: %s for session %s (player %s: %s) - Total clients: %d",
				client.id, client.sessionCode, client.playerID, client.playerName, len(h.clients))

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("Client unregistered: %s for session %s (player %s: %s) - Total clients: %d",
					client.id, client.sessionCode, client.playerID, client.playerName, len(h.clients))
			}
			h.mutex.Unlock()
		}
	}
}

func (h *Hub) BroadcastToSession(code string, messageType string, payload interface{}) {
	message := Message{
		Type:    messageType,
		Payload: payload,
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	sent := 0
	for client := range h.clients {
		if strings.EqualFold(client.sessionCode, code) {
			select {
			case client.send <- data:
				sent++
			default:
				close(client.send)
				delete(h.clients, client)
			}
		}
	}
	log.Printf("Broadcast %s to %d clients in session %s", messageType, sent, code)
}

// SendSessionStateSync pushes the full live state to one client, used when a
// client (re)connects and needs to catch up with the draws it missed.
func (h *Hub) SendSessionStateSync(client *Client) {
	state, err := h.sessions.GetState(context.Background(), client.sessionCode)
	if err != nil {
		log.Printf("Error getting session state for client %s: %v", client.id, err)
		return
	}

	message := Message{
		Type: "session_state_sync",
		Payload: map[string]interface{}{
			"status":         state.Status,
			"rows":           state.Rows,
			"cols":           state.Cols,
			"win_conditions": state.WinConditions,
			"draws":          state.Draws,
			"players":        state.Players,
			"round_number":   state.RoundNumber,
			"round_rule":     state.RoundRule,
		},
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling session state sync message: %v", err)
		return
	}

	select {
	case client.send <- data:
	default:
		close(client.send)
		h.mutex.Lock()
		delete(h.clients, client)
		h.mutex.Unlock()
	}
}

func (h *Hub) ConnectedPlayers(code string) []string {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	var playerIDs []string
	for client := range h.clients {
		if strings.EqualFold(client.sessionCode, code) {
			playerIDs = append(playerIDs, client.playerID)
		}
	}
	return playerIDs
}

func (h *Hub) RegisterClient(conn *websocket.Conn, sessionCode, playerID, playerName string) *Client {
	client := &Client{
		hub:         h,
		id:          uuid.NewString(),
		socket:      conn,
		send:        make(chan []byte, 256),
		sessionCode: sessionCode,
		playerID:    playerID,
		playerName:  playerName,
	}

	h.register <- client

	go client.writePump()
	go client.readPump()

	return client
}

func (h *Hub) UnregisterClient(client *Client) {
	h.unregister <- client
}

func (c *Client) readPump() {
	defer func() {
		c.hub.UnregisterClient(c)
		c.socket.Close()
	}()

	for {
		_, message, err := c.socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	defer c.socket.Close()

	for message := range c.send {
		w, err := c.socket.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)
		if err := w.Close(); err != nil {
			return
		}
	}
	c.socket.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *Client) handleMessage(msg Message) {
	switch msg.Type {
	case "ping":
		response := Message{Type: "pong", Payload: "pong"}
		data, _ := json.Marshal(response)
		c.send <- data

	case "join_session":
		log.Printf("Player %s (%s) joined session %s via WebSocket", c.playerID, c.playerName, c.sessionCode)
		c.hub.SendSessionStateSync(c)

	case "request_session_state":
		c.hub.SendSessionStateSync(c)

	default:
		log.Printf("Unknown message type: %s from player %s (%s) in session %s", msg.Type, c.playerID, c.playerName, c.sessionCode)
	}
}
