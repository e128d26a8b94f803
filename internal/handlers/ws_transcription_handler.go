package handlers

import (
	"net/http"
	"sync"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/services"
	jwtutil "github.com/MdAmzadAli/note-taking-app-sub003/pkg/jwt"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub tracks WebSocket connections per user and pushes transcription
// progress events to them. It is created once in main and injected into
// both the handler and the transcription service, so no connection state
// lives at package level.
type Hub struct {
	mu      sync.Mutex
	clients map[string][]*websocket.Conn
}

// NewHub creates an empty connection hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string][]*websocket.Conn)}
}

func (hub *Hub) add(userID string, conn *websocket.Conn) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	hub.clients[userID] = append(hub.clients[userID], conn)
}

func (hub *Hub) remove(userID string, conn *websocket.Conn) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	conns := hub.clients[userID]
	for i, c := range conns {
		if c == conn {
			hub.clients[userID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(hub.clients[userID]) == 0 {
		delete(hub.clients, userID)
	}
}

// PublishTranscription sends a job progress event to every connection the
// owning user currently has open. Implements services.EventPublisher.
// The lock is held across the writes: each job publishes from its own
// goroutine and a websocket connection allows only one concurrent writer.
func (hub *Hub) PublishTranscription(event services.TranscriptionEvent) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	for _, conn := range hub.clients[event.UserID] {
		if err := conn.WriteJSON(event); err != nil {
			logrus.WithError(err).WithField("userID", event.UserID).Warn("Failed to push transcription event")
		}
	}
}

// TranscriptionWSHandler upgrades the connection and registers it with the
// hub. Auth happens via a token query parameter since browsers cannot set
// headers on WebSocket requests.
type TranscriptionWSHandler struct {
	Hub       *Hub
	JWTSecret string
}

// NewTranscriptionWSHandler creates a new instance of TranscriptionWSHandler.
func NewTranscriptionWSHandler(hub *Hub, jwtSecret string) *TranscriptionWSHandler {
	return &TranscriptionWSHandler{Hub: hub, JWTSecret: jwtSecret}
}

// ServeWS handles the WebSocket upgrade for the transcription event feed.
func (h *TranscriptionWSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}
	claims, err := jwtutil.ValidateToken(token, h.JWTSecret)
	if err != nil {
		logrus.WithError(err).Warn("WebSocket auth failed")
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}
	userID := claims.UserID

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Error("WebSocket upgrade failed")
		return
	}

	logrus.WithField("userID", userID).Info("Transcription WebSocket connected")
	h.Hub.add(userID, conn)

	defer func() {
		h.Hub.remove(userID, conn)
		conn.Close()
		logrus.WithField("userID", userID).Info("Transcription WebSocket disconnected")
	}()

	// The feed is push-only; the read loop just waits for the client to go
	// away so the connection can be cleaned up.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
