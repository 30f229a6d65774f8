package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/talentpath/assist/internal/answer"
	"github.com/talentpath/assist/internal/interactions"
	"github.com/talentpath/assist/internal/knowledge"
	"github.com/talentpath/assist/internal/redact"
)

// chatRequest is the request envelope consumed by POST /api/chat.
type chatRequest struct {
	Message   string       `json:"message"`
	Context   *chatContext `json:"context"`
	SessionID string       `json:"session_id"`
}

type chatContext struct {
	SessionID   string              `json:"session_id"`
	UserID      string              `json:"user_id,omitempty"`
	Page        string              `json:"page,omitempty"`
	UserProfile *answer.UserProfile `json:"user_profile,omitempty"`
}

// fieldError is one validation failure in a 400 response.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validate checks the request envelope. Violations never reach the pipeline.
func (req *chatRequest) validate() []fieldError {
	var errs []fieldError

	if req.Message == "" {
		errs = append(errs, fieldError{Field: "message", Message: "message is required"})
	} else if len(req.Message) < 3 || len(req.Message) > 1000 {
		errs = append(errs, fieldError{Field: "message", Message: "message must be 3-1000 characters"})
	}

	if req.Context == nil {
		errs = append(errs, fieldError{Field: "context", Message: "context is required"})
	}

	if req.SessionID == "" {
		errs = append(errs, fieldError{Field: "session_id", Message: "session_id is required"})
	}

	return errs
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"errors": []fieldError{{Field: "body", Message: "invalid JSON"}},
		})
		return
	}

	if errs := req.validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
		return
	}

	areq := answer.Request{
		Message:   req.Message,
		SessionID: req.SessionID,
		UserID:    req.Context.UserID,
		Page:      req.Context.Page,
		Profile:   req.Context.UserProfile,
	}

	ans := s.engine.Generate(r.Context(), areq)
	s.logInteraction(r.Context(), areq, ans)

	writeJSON(w, http.StatusOK, ans)
}

// logInteraction persists the turn. Failures are logged, never surfaced:
// the answer is already committed to the caller.
func (s *Server) logInteraction(ctx context.Context, req answer.Request, ans answer.StructuredAnswer) {
	if s.log == nil {
		return
	}

	// Only the redacted question may be stored.
	redacted := redact.Redact(req.Message, false)

	entry := interactions.Entry{
		SessionID:       req.SessionID,
		UserID:          req.UserID,
		Question:        redacted.RedactedText,
		AnswerLength:    len(ans.AnswerText),
		ConfidenceScore: ans.ConfidenceScore,
		ConfidenceLabel: ans.ConfidenceLabel,
		Escalated:       ans.UIActions.TalkToHuman,
		PassageCount:    ans.Metadata.RetrievedPassages,
		Model:           ans.Metadata.LLMModel,
		LatencyMS:       ans.Metadata.ResponseTimeMS,
	}

	// Detach from the request context so a disconnecting client does not
	// lose the log entry.
	logCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.log.Log(logCtx, entry); err != nil {
		log.Printf("server: logging interaction: %v", err)
	}
}

// articleSummary is the listing shape for GET /api/articles.
type articleSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Category string `json:"category"`
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	articles := s.kb.All()
	summaries := make([]articleSummary, 0, len(articles))
	for _, a := range articles {
		if a.Visibility == knowledge.VisibilityInternal {
			continue
		}
		summaries = append(summaries, articleSummary{
			ID:       a.ID,
			Title:    a.Title,
			Summary:  a.Summary,
			Category: a.Category,
		})
	}
	writeJSON(w, http.StatusOK, summaries)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
