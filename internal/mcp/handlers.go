package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/talentpath/assist/internal/answer"
)

// handleAskAssist runs one full answer-pipeline turn.
func (s *Server) handleAskAssist(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: question"), nil
	}

	ans := s.engine.Generate(ctx, answer.Request{
		Message:   question,
		SessionID: "mcp",
	})

	return mcp.NewToolResultText(formatAnswer(ans)), nil
}

// handleSearchKnowledge runs retrieval only.
func (s *Server) handleSearchKnowledge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 3)
	if limit <= 0 {
		limit = 3
	}

	results := s.retriever.Search(query, limit)
	if len(results) == 0 {
		return mcp.NewToolResultText("No matching help articles found."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d passage(s):\n\n", len(results))
	for i, r := range results {
		fmt.Fprintf(&b, "--- Passage %d (score: %.1f) ---\n", i+1, r.Score)
		fmt.Fprintf(&b, "Article: %s (%s)\n", r.Title, r.ArticleID)
		if r.Category != "" {
			fmt.Fprintf(&b, "Category: %s\n", r.Category)
		}
		b.WriteString("\n")
		b.WriteString(r.Passage)
		b.WriteString("\n\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

// formatAnswer renders a structured answer as readable text for the agent.
func formatAnswer(ans answer.StructuredAnswer) string {
	var b strings.Builder

	b.WriteString(ans.AnswerText)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Confidence: %s (%d/100)\n", ans.ConfidenceLabel, ans.ConfidenceScore)

	if len(ans.Provenance) > 0 {
		b.WriteString("Sources:\n")
		for _, p := range ans.Provenance {
			fmt.Fprintf(&b, "- %s (%s)\n", p.Title, p.Link)
		}
	}

	if len(ans.SuggestedNextSteps) > 0 {
		b.WriteString("Suggested next steps:\n")
		for _, step := range ans.SuggestedNextSteps {
			fmt.Fprintf(&b, "- %s\n", step)
		}
	}

	if ans.UIActions.TalkToHuman {
		b.WriteString("This question should be escalated to a human support agent.\n")
	}

	return b.String()
}
