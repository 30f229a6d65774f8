package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/talentpath/assist/internal/answer"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket frame from the chat widget.
type wsRequest struct {
	Type        string              `json:"type"` // "message"
	SessionID   string              `json:"session_id"`
	Content     string              `json:"content"`
	UserProfile *answer.UserProfile `json:"user_profile,omitempty"`
}

// wsResponse is the outgoing WebSocket frame.
type wsResponse struct {
	Type      string                  `json:"type"` // "answer" or "error"
	SessionID string                  `json:"session_id"`
	Answer    *answer.StructuredAnswer `json:"answer,omitempty"`
	Message   string                  `json:"message,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("server: websocket read: %v", err)
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendWSError(conn, "", "invalid message format")
			continue
		}

		if req.Type != "message" {
			s.sendWSError(conn, req.SessionID, "unknown message type: "+req.Type)
			continue
		}
		if len(req.Content) < 3 || len(req.Content) > 1000 {
			s.sendWSError(conn, req.SessionID, "content must be 3-1000 characters")
			continue
		}

		sessionID := req.SessionID
		if sessionID == "" {
			sessionID = uuid.New().String()
		}

		areq := answer.Request{
			Message:   req.Content,
			SessionID: sessionID,
			Profile:   req.UserProfile,
		}

		ans := s.engine.Generate(r.Context(), areq)
		s.logInteraction(r.Context(), areq, ans)

		resp := wsResponse{
			Type:      "answer",
			SessionID: sessionID,
			Answer:    &ans,
		}
		if err := conn.WriteJSON(resp); err != nil {
			log.Printf("server: websocket write: %v", err)
			return
		}
	}
}

func (s *Server) sendWSError(conn *websocket.Conn, sessionID, message string) {
	resp := wsResponse{
		Type:      "error",
		SessionID: sessionID,
		Message:   message,
	}
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("server: websocket write error: %v", err)
	}
}
