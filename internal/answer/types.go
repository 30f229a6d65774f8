package answer

import "github.com/talentpath/assist/internal/confidence"

// UserProfile is optional requester context threaded into the prompt.
type UserProfile struct {
	Plan           string `json:"plan"`
	CareerGoal     string `json:"career_goal,omitempty"`
	ExpertiseLevel string `json:"expertise_level,omitempty"`
}

// Request is one chat turn handed to the engine by the transport layer,
// already validated.
type Request struct {
	Message   string
	SessionID string
	UserID    string
	Page      string
	Profile   *UserProfile
}

// Provenance cites one source article supporting the answer.
type Provenance struct {
	ArticleID string `json:"article_id"`
	Title     string `json:"title"`
	Link      string `json:"link"`
	Excerpt   string `json:"excerpt"`
}

// UIActions tells the widget which affordances to render.
type UIActions struct {
	ShowFullArticle bool `json:"show_full_article"`
	TalkToHuman     bool `json:"talk_to_human"`
}

// Metadata carries per-turn diagnostics.
type Metadata struct {
	RetrievedPassages int    `json:"retrieved_passages"`
	LLMModel          string `json:"llm_model"`
	ResponseTimeMS    int64  `json:"response_time_ms"`
}

// StructuredAnswer is the complete response for one chat turn. Every path
// through the engine, including all failure paths, produces one.
type StructuredAnswer struct {
	AnswerText         string           `json:"answer_text"`
	ConfidenceScore    int              `json:"confidence_score"`
	ConfidenceLabel    confidence.Label `json:"confidence_label"`
	Provenance         []Provenance     `json:"provenance"`
	SuggestedNextSteps []string         `json:"suggested_next_steps"`
	UIActions          UIActions        `json:"ui_actions"`
	Metadata           Metadata         `json:"metadata"`
}
