// Package retrieval scores knowledge articles against a user query and
// extracts the best passage from each match. Scoring is a weighted keyword
// match over a small in-memory article set; there are no embeddings and no
// cross-article normalization.
package retrieval

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/talentpath/assist/internal/knowledge"
)

// Weights are the relative contributions of each field match to the final
// article score. They should sum to 1.0.
type Weights struct {
	CanonicalQuestion float64 `yaml:"canonical_question" koanf:"canonical_question"`
	Title             float64 `yaml:"title" koanf:"title"`
	Summary           float64 `yaml:"summary" koanf:"summary"`
	Tag               float64 `yaml:"tag" koanf:"tag"`
}

// Config holds the tunable constants of the scoring algorithm.
type Config struct {
	Weights Weights `yaml:"weights" koanf:"weights"`
	// PopularityBonusMax is added on top of the weighted score, scaled by
	// the article's popularity, then the total is clamped to [0,100].
	PopularityBonusMax float64 `yaml:"popularity_bonus_max" koanf:"popularity_bonus_max"`
	// StopWords are removed from the query before token matching.
	StopWords []string `yaml:"stop_words" koanf:"stop_words"`
	// MinTokenLength discards query tokens at or below this length.
	MinTokenLength int `yaml:"min_token_length" koanf:"min_token_length"`
	// CanonicalAnswerThreshold: above this canonical-question match the
	// article's direct answer always wins over the intent heuristic.
	CanonicalAnswerThreshold float64 `yaml:"canonical_answer_threshold" koanf:"canonical_answer_threshold"`
}

// DefaultStopWords are the query words carrying no retrieval signal.
var DefaultStopWords = []string{
	"how", "do", "i", "the", "a", "an", "is", "are", "can",
	"what", "where", "when", "why", "to", "my", "me", "you", "your",
}

// DefaultConfig returns the production scoring constants.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			CanonicalQuestion: 0.40,
			Title:             0.30,
			Summary:           0.20,
			Tag:               0.10,
		},
		PopularityBonusMax:       10,
		StopWords:                DefaultStopWords,
		MinTokenLength:           2,
		CanonicalAnswerThreshold: 0.7,
	}
}

// Result is one ranked passage match. Article metadata used by downstream
// confidence scoring is copied in so callers need no second lookup.
type Result struct {
	ArticleID   string
	Title       string
	Passage     string
	Score       float64
	Category    string
	Tags        []string
	LastUpdated time.Time
	Visibility  knowledge.Visibility
}

// Engine scores articles against queries. It is stateless apart from its
// read-only inputs and safe for concurrent use.
type Engine struct {
	kb        *knowledge.Store
	cfg       Config
	stopWords map[string]bool
}

// NewEngine creates an Engine over the given article store.
func NewEngine(kb *knowledge.Store, cfg Config) *Engine {
	stop := make(map[string]bool, len(cfg.StopWords))
	for _, w := range cfg.StopWords {
		stop[strings.ToLower(w)] = true
	}
	return &Engine{kb: kb, cfg: cfg, stopWords: stop}
}

// Search returns the top-limit passage matches for the query, sorted by
// non-increasing score. Zero-score articles are dropped; an empty result
// means "no knowledge", not an error.
func (e *Engine) Search(query string, limit int) []Result {
	normalized := strings.ToLower(strings.TrimSpace(query))
	tokens := e.tokenize(normalized)

	var results []Result
	for _, a := range e.kb.All() {
		canonical := 0.0
		for _, q := range a.CanonicalQuestions {
			if s := e.fuzzyMatch(normalized, tokens, q); s > canonical {
				canonical = s
			}
		}
		title := e.fuzzyMatch(normalized, tokens, a.Title)
		summary := e.fuzzyMatch(normalized, tokens, a.Summary)
		tags := e.tagMatch(tokens, a.Tags)

		w := e.cfg.Weights
		score := 100 * (w.CanonicalQuestion*canonical + w.Title*title + w.Summary*summary + w.Tag*tags)
		if score == 0 {
			// Popularity never resurrects an article with no text match:
			// zero query overlap must yield zero results.
			continue
		}
		if a.PopularityScore > 0 {
			score += e.cfg.PopularityBonusMax * (a.PopularityScore / 100)
		}
		score = clamp(score, 0, 100)

		results = append(results, Result{
			ArticleID:   a.ID,
			Title:       a.Title,
			Passage:     selectPassage(&a, normalized, canonical > e.cfg.CanonicalAnswerThreshold),
			Score:       score,
			Category:    a.Category,
			Tags:        a.Tags,
			LastUpdated: a.LastUpdated,
			Visibility:  a.Visibility,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// tokenize splits the normalized query into significant tokens, dropping
// stop words and very short tokens.
func (e *Engine) tokenize(normalized string) []string {
	fields := strings.FieldsFunc(normalized, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var tokens []string
	for _, f := range fields {
		if len(f) <= e.cfg.MinTokenLength {
			continue
		}
		if e.stopWords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// fuzzyMatch scores how well the query matches the target text, in [0,1].
// A full-query substring hit is a perfect match; otherwise the score is the
// fraction of query tokens appearing in the target.
func (e *Engine) fuzzyMatch(normalizedQuery string, tokens []string, target string) float64 {
	if target == "" {
		return 0
	}
	lower := strings.ToLower(target)
	if normalizedQuery != "" && strings.Contains(lower, normalizedQuery) {
		return 1.0
	}
	if len(tokens) == 0 {
		return 0
	}

	hits := 0
	for _, t := range tokens {
		if strings.Contains(lower, t) {
			hits++
		}
	}
	return float64(hits) / float64(len(tokens))
}

// tagMatch returns the fraction of the article's tags sharing a substring
// relationship with any query token, in either direction.
func (e *Engine) tagMatch(tokens []string, tags []string) float64 {
	if len(tags) == 0 || len(tokens) == 0 {
		return 0
	}

	hits := 0
	for _, tag := range tags {
		lower := strings.ToLower(tag)
		for _, t := range tokens {
			if strings.Contains(lower, t) || strings.Contains(t, lower) {
				hits++
				break
			}
		}
	}
	return float64(hits) / float64(len(tags))
}

// selectPassage picks the passage view of an article best matching the
// query's intent. A strong canonical-question match always returns the
// direct answer, since the query is a known phrasing of it.
func selectPassage(a *knowledge.Article, normalizedQuery string, canonicalHit bool) string {
	if canonicalHit {
		return a.Answer
	}

	switch {
	case containsAny(normalizedQuery, "step", "how") && len(a.StepByStep) > 0:
		return strings.Join(a.StepByStep, "\n")
	case strings.Contains(normalizedQuery, "example") && len(a.Examples) > 0:
		return strings.Join(a.Examples, "\n")
	case containsAny(normalizedQuery, "not work", "problem", "error") && len(a.IfNotWork) > 0:
		return strings.Join(a.IfNotWork, "\n")
	default:
		return a.Answer
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
