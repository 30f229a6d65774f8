package answer

import (
	"fmt"
	"strings"

	"github.com/talentpath/assist/internal/llm"
	"github.com/talentpath/assist/internal/retrieval"
)

const systemPrompt = `You are Pathfinder, the friendly support assistant for TalentPath, a career platform for job seekers. You answer questions about using the platform: profiles, resume uploads, job applications, career coaching, salary insights, plans and billing.

Rules:
- Answer ONLY from the help articles provided in the context. Do not invent features, prices, or policies.
- If the context does not cover the question, say so and suggest contacting support.
- Keep answers to 2-4 sentences, warm and direct.
- Never ask the user for personal information.`

// buildPrompt assembles the system and user messages for one generation
// call: persona, optional user profile, the retrieved passages labeled by
// source index, and the redacted question.
func buildPrompt(redactedQuestion string, profile *UserProfile, results []retrieval.Result) []llm.Message {
	var b strings.Builder

	if profile != nil {
		b.WriteString("About this user:\n")
		if profile.Plan != "" {
			fmt.Fprintf(&b, "- Plan: %s\n", profile.Plan)
		}
		if profile.CareerGoal != "" {
			fmt.Fprintf(&b, "- Career goal: %s\n", profile.CareerGoal)
		}
		if profile.ExpertiseLevel != "" {
			fmt.Fprintf(&b, "- Expertise level: %s\n", profile.ExpertiseLevel)
		}
		b.WriteString("\n")
	}

	b.WriteString("Help articles:\n\n")
	for i, r := range results {
		fmt.Fprintf(&b, "[Source %d] %s\n%s\n\n", i+1, r.Title, r.Passage)
	}

	fmt.Fprintf(&b, "Question: %s\n\n", redactedQuestion)
	b.WriteString("Answer the question in 2-4 sentences using only the help articles above.")

	return []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: b.String()},
	}
}
