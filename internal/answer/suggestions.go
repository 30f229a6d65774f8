package answer

import (
	"fmt"
	"strings"

	"github.com/talentpath/assist/internal/retrieval"
)

// maxSuggestions caps the suggested_next_steps list.
const maxSuggestions = 3

// suggestionRule maps query keywords to canned next steps, checked in order.
type suggestionRule struct {
	keywords []string
	steps    []string
}

var suggestionRules = []suggestionRule{
	{
		keywords: []string{"resume", "cv"},
		steps: []string{
			"Open your profile and go to Documents",
			"Upload your resume as PDF or DOCX",
		},
	},
	{
		keywords: []string{"coach", "coaching", "mentor"},
		steps: []string{
			"Browse available coaches on the Coaching tab",
			"Book a session slot that fits your schedule",
		},
	},
	{
		keywords: []string{"salary", "pay", "compensation"},
		steps: []string{
			"Check the salary range on the job posting",
			"Compare similar roles on the Insights page",
		},
	},
	{
		keywords: []string{"upgrade", "billing", "plan", "subscription", "payment"},
		steps: []string{
			"Open Settings and go to Plan & Billing",
			"Review the plan comparison before confirming",
		},
	},
}

// suggestNextSteps derives up to three suggested actions from the original
// query, falling back to pointing at the top retrieved article.
func suggestNextSteps(message string, results []retrieval.Result) []string {
	lower := strings.ToLower(message)

	var steps []string
	for _, rule := range suggestionRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				steps = append(steps, rule.steps...)
				break
			}
		}
		if len(steps) >= maxSuggestions {
			break
		}
	}

	if len(steps) == 0 && len(results) > 0 {
		steps = append(steps, fmt.Sprintf("Read %q in the help center", results[0].Title))
	}

	if len(steps) > maxSuggestions {
		steps = steps[:maxSuggestions]
	}
	return steps
}
