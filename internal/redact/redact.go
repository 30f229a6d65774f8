// Package redact masks personally identifiable information in user messages
// before they reach the LLM or any log line.
package redact

import (
	"fmt"
	"regexp"
	"strings"
)

// Category identifies a class of PII detected in text.
type Category string

const (
	CategoryEmail        Category = "email"
	CategoryPhone        Category = "phone"
	CategoryGovernmentID Category = "government_id"
	CategoryPaymentCard  Category = "payment_card"
	CategoryPostalCode   Category = "postal_code"
)

// pattern pairs a PII category with its detector and mask token prefix.
type pattern struct {
	category Category
	re       *regexp.Regexp
	prefix   string
}

// patterns is the fixed, ordered detector set. Order matters: earlier
// categories consume their matches before later ones scan the masked text,
// so a phone number is never re-matched as a postal code.
var patterns = []pattern{
	{
		category: CategoryEmail,
		re:       regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`),
		prefix:   "EMAIL",
	},
	{
		category: CategoryPhone,
		re:       regexp.MustCompile(`\b(?:\+?1[-. ]?)?\(?\d{3}\)?[-. ]?\d{3}[-. ]?\d{4}\b`),
		prefix:   "PHONE",
	},
	{
		category: CategoryGovernmentID,
		re:       regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
		prefix:   "GOV_ID",
	},
	{
		category: CategoryPaymentCard,
		re:       regexp.MustCompile(`\b(?:\d[ \-]?){13,16}\b`),
		prefix:   "CARD",
	},
	{
		category: CategoryPostalCode,
		re:       regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`),
		prefix:   "POSTAL",
	},
}

// Result holds the outcome of a redaction pass.
type Result struct {
	RedactedText string
	// Masks maps each original matched substring to its mask token.
	Masks map[string]string
	// Categories lists the PII categories found, in detector order.
	Categories []Category
}

// Redact scans text and replaces every PII match with a category-and-index
// tagged mask token. Distinct values get distinct tokens; repeated values
// share one. If userConsent is true the text passes through untouched (used
// when a human agent needs the real value on escalation handoff).
func Redact(text string, userConsent bool) Result {
	if userConsent {
		return Result{RedactedText: text, Masks: map[string]string{}}
	}

	result := Result{
		RedactedText: text,
		Masks:        map[string]string{},
	}

	for _, p := range patterns {
		count := 0
		found := false
		result.RedactedText = p.re.ReplaceAllStringFunc(result.RedactedText, func(match string) string {
			found = true
			if token, ok := result.Masks[match]; ok {
				return token
			}
			count++
			token := fmt.Sprintf("[%s_%d]", p.prefix, count)
			result.Masks[match] = token
			return token
		})
		if found {
			result.Categories = append(result.Categories, p.category)
		}
	}

	return result
}

// Restore reverses a redaction given the mask map produced by Redact.
func Restore(maskedText string, masks map[string]string) string {
	restored := maskedText
	for original, token := range masks {
		restored = strings.ReplaceAll(restored, token, original)
	}
	return restored
}

// ContainsPII reports whether any PII detector matches the text.
func ContainsPII(text string) bool {
	for _, p := range patterns {
		if p.re.MatchString(text) {
			return true
		}
	}
	return false
}

// Analyze returns the PII categories present in the text without modifying it.
func Analyze(text string) []Category {
	var found []Category
	for _, p := range patterns {
		if p.re.MatchString(text) {
			found = append(found, p.category)
		}
	}
	return found
}
