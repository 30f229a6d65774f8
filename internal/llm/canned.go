package llm

import (
	"context"
	"strings"
)

// CannedProvider is a deterministic offline generator used in development
// and tests. It pattern-matches the prompt and returns a short fixed reply,
// standing in for a real model behind the same Provider seam.
type CannedProvider struct{}

// NewCannedProvider creates a canned provider.
func NewCannedProvider() *CannedProvider {
	return &CannedProvider{}
}

func (p *CannedProvider) Name() string {
	return "canned"
}

// cannedReplies maps prompt keywords to fixed responses, checked in order.
var cannedReplies = []struct {
	keyword string
	reply   string
}{
	{"resume", "You can upload your resume from your profile page. Open Profile, choose Documents, and select the file to upload. Supported formats are PDF and DOCX."},
	{"coach", "Career coaches are available on the Coaching tab. Pick a coach, choose a time slot, and the session link arrives by notification."},
	{"salary", "Salary insights appear on each job posting when the employer provides a range. You can also compare roles from the Insights page."},
	{"billing", "Billing is managed under Settings, in the Plan & Billing section. You can change your plan or update your payment method there."},
	{"upgrade", "Plan upgrades take effect immediately. Go to Settings, open Plan & Billing, and pick the plan you want."},
}

func (p *CannedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var prompt strings.Builder
	for _, m := range req.Messages {
		prompt.WriteString(strings.ToLower(m.Content))
		prompt.WriteString("\n")
	}
	text := prompt.String()

	reply := "Based on the help articles provided, here is what I found. Please check the linked articles for the full details."
	for _, c := range cannedReplies {
		if strings.Contains(text, c.keyword) {
			reply = c.reply
			break
		}
	}

	return &CompletionResponse{
		Content:      reply,
		Model:        "canned",
		FinishReason: "stop",
	}, nil
}
