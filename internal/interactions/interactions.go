// Package interactions persists a per-turn log of answered chat requests.
// Only redacted question text is ever stored.
package interactions

import (
	"time"

	"github.com/talentpath/assist/internal/confidence"
)

// Entry is one logged chat turn.
type Entry struct {
	ID              string           `json:"id"`
	SessionID       string           `json:"session_id"`
	UserID          string           `json:"user_id,omitempty"`
	Question        string           `json:"question"`
	AnswerLength    int              `json:"answer_length"`
	ConfidenceScore int              `json:"confidence_score"`
	ConfidenceLabel confidence.Label `json:"confidence_label"`
	Escalated       bool             `json:"escalated"`
	PassageCount    int              `json:"passage_count"`
	Model           string           `json:"model"`
	LatencyMS       int64            `json:"latency_ms"`
	CreatedAt       time.Time        `json:"created_at"`
}

// QueryFilter controls which entries are returned by Query.
type QueryFilter struct {
	SessionID     string
	EscalatedOnly bool
	Since         *time.Time
	Until         *time.Time
	Limit         int
	Offset        int
}

// Stats holds aggregate interaction statistics.
type Stats struct {
	Total          int                      `json:"total"`
	MeanConfidence float64                  `json:"mean_confidence"`
	EscalationRate float64                  `json:"escalation_rate"`
	ByLabel        map[confidence.Label]int `json:"by_label"`
}
