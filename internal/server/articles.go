package server

import (
	"bytes"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/talentpath/assist/internal/knowledge"
)

// md renders article bodies, which are authored as markdown.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// articleResponse is the full-article shape backing the widget's
// "show full article" action.
type articleResponse struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Summary    string           `json:"summary"`
	Category   string           `json:"category"`
	Tags       []string         `json:"tags"`
	AnswerHTML string           `json:"answer_html"`
	StepByStep []string         `json:"step_by_step,omitempty"`
	Examples   []string         `json:"examples,omitempty"`
	IfNotWork  []string         `json:"if_not_work,omitempty"`
	Related    []articleSummary `json:"related,omitempty"`
	LastUpdate time.Time        `json:"last_updated"`
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	a := s.kb.Get(id)
	if a == nil || a.Visibility == knowledge.VisibilityInternal {
		http.Error(w, "article not found", http.StatusNotFound)
		return
	}

	var html bytes.Buffer
	if err := md.Convert([]byte(a.Answer), &html); err != nil {
		http.Error(w, "rendering article", http.StatusInternalServerError)
		return
	}

	resp := articleResponse{
		ID:         a.ID,
		Title:      a.Title,
		Summary:    a.Summary,
		Category:   a.Category,
		Tags:       a.Tags,
		AnswerHTML: html.String(),
		StepByStep: a.StepByStep,
		Examples:   a.Examples,
		IfNotWork:  a.IfNotWork,
		LastUpdate: a.LastUpdated,
	}

	for _, rel := range s.kb.Related(id) {
		if rel.Visibility == knowledge.VisibilityInternal {
			continue
		}
		resp.Related = append(resp.Related, articleSummary{
			ID:       rel.ID,
			Title:    rel.Title,
			Summary:  rel.Summary,
			Category: rel.Category,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
