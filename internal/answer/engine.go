// Package answer orchestrates one chat turn: PII redaction, knowledge
// retrieval, prompt construction, the single external LLM call, confidence
// scoring, and assembly of the structured answer. Nothing in this package
// ever surfaces an error to the transport layer; every failure degrades to
// a well-formed low-confidence answer.
package answer

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/talentpath/assist/internal/confidence"
	"github.com/talentpath/assist/internal/knowledge"
	"github.com/talentpath/assist/internal/llm"
	"github.com/talentpath/assist/internal/redact"
	"github.com/talentpath/assist/internal/retrieval"
)

// Config holds the orchestration constants.
type Config struct {
	// RetrievalLimit caps how many passages ground the prompt.
	RetrievalLimit int `yaml:"retrieval_limit" koanf:"retrieval_limit"`
	// ExcerptMaxLen truncates provenance excerpts, ellipsis included.
	ExcerptMaxLen int `yaml:"excerpt_max_len" koanf:"excerpt_max_len"`
	// HelpCenterBaseURL prefixes constructed article links.
	HelpCenterBaseURL string `yaml:"help_center_base_url" koanf:"help_center_base_url"`
	// GeneratorTimeout bounds the external LLM call; a timeout is handled
	// like any other generator failure, with no retry.
	GeneratorTimeout time.Duration `yaml:"generator_timeout" koanf:"generator_timeout"`
	// CoverageWhenResults and ModelCertaintyDefault are the fixed factor
	// values used while the generator exposes no real introspection.
	CoverageWhenResults   float64 `yaml:"coverage_when_results" koanf:"coverage_when_results"`
	ModelCertaintyDefault float64 `yaml:"model_certainty_default" koanf:"model_certainty_default"`
	// ShowArticleThreshold is the minimum confidence for the widget to
	// offer the full source article.
	ShowArticleThreshold int `yaml:"show_article_threshold" koanf:"show_article_threshold"`
}

// DefaultConfig returns the production orchestration constants.
func DefaultConfig() Config {
	return Config{
		RetrievalLimit:        3,
		ExcerptMaxLen:         150,
		HelpCenterBaseURL:     "https://help.talentpath.io/articles",
		GeneratorTimeout:      20 * time.Second,
		CoverageWhenResults:   0.8,
		ModelCertaintyDefault: 0.7,
		ShowArticleThreshold:  70,
	}
}

// Engine wires the pipeline components together. It holds no per-request
// state and is safe for concurrent use.
type Engine struct {
	retriever *retrieval.Engine
	scorer    *confidence.Scorer
	provider  llm.Provider
	model     string
	cfg       Config
}

// NewEngine creates an Engine over the given components.
func NewEngine(retriever *retrieval.Engine, scorer *confidence.Scorer, provider llm.Provider, model string, cfg Config) *Engine {
	return &Engine{
		retriever: retriever,
		scorer:    scorer,
		provider:  provider,
		model:     model,
		cfg:       cfg,
	}
}

// Generate runs one full chat turn. It never returns an error: validation
// happens upstream, and every internal failure maps to a degraded answer.
func (e *Engine) Generate(ctx context.Context, req Request) (out StructuredAnswer) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("answer: recovered from panic: %v", r)
			out = e.errorAnswer(start)
		}
	}()

	redacted := redact.Redact(req.Message, false)
	if len(redacted.Categories) > 0 {
		log.Printf("answer: masked %d PII value(s) in session %s", len(redacted.Masks), req.SessionID)
	}

	results := e.retriever.Search(redacted.RedactedText, e.cfg.RetrievalLimit)
	if len(results) == 0 {
		return e.noKnowledgeAnswer(start)
	}

	prompt := buildPrompt(redacted.RedactedText, req.Profile, results)

	genCtx, cancel := context.WithTimeout(ctx, e.cfg.GeneratorTimeout)
	defer cancel()

	resp, err := e.provider.Complete(genCtx, llm.CompletionRequest{
		Model:       e.model,
		Messages:    prompt,
		Temperature: 0.3,
	})
	if err != nil || strings.TrimSpace(resp.Content) == "" {
		if err != nil {
			log.Printf("answer: generator call failed: %v", err)
		} else {
			log.Printf("answer: generator returned empty content")
		}
		return e.errorAnswer(start)
	}

	score := e.scoreResults(results)
	label := e.scorer.Label(score)
	escalate := label == confidence.LabelLow ||
		e.scorer.ShouldEscalate(score, wantsHuman(req.Message))

	return StructuredAnswer{
		AnswerText:         resp.Content,
		ConfidenceScore:    score,
		ConfidenceLabel:    label,
		Provenance:         e.buildProvenance(results),
		SuggestedNextSteps: suggestNextSteps(req.Message, results),
		UIActions: UIActions{
			ShowFullArticle: score >= e.cfg.ShowArticleThreshold,
			TalkToHuman:     escalate,
		},
		Metadata: Metadata{
			RetrievedPassages: len(results),
			LLMModel:          resp.Model,
			ResponseTimeMS:    time.Since(start).Milliseconds(),
		},
	}
}

// scoreResults computes the five confidence factors from the retrieval
// results and runs the scorer. Coverage and model certainty are fixed
// placeholders until the generator exposes usable introspection.
func (e *Engine) scoreResults(results []retrieval.Result) int {
	scores := make([]float64, len(results))
	for i, r := range results {
		scores[i] = r.Score
	}

	top := results[0]
	factors := confidence.Factors{
		RetrievalScore:  e.scorer.RetrievalScore(scores),
		PassageCoverage: e.cfg.CoverageWhenResults,
		ModelCertainty:  e.cfg.ModelCertaintyDefault,
		RecencyFactor:   e.scorer.RecencyFactor(top.LastUpdated, time.Now()),
		SourceTrust:     e.scorer.SourceTrust(top.Category, top.Visibility == knowledge.VisibilityPublic),
	}
	return e.scorer.Calculate(factors)
}

// buildProvenance cites each retrieval result with a constructed help-center
// link and a truncated excerpt.
func (e *Engine) buildProvenance(results []retrieval.Result) []Provenance {
	provenance := make([]Provenance, 0, len(results))
	for _, r := range results {
		provenance = append(provenance, Provenance{
			ArticleID: r.ArticleID,
			Title:     r.Title,
			Link:      e.cfg.HelpCenterBaseURL + "/" + r.ArticleID,
			Excerpt:   truncate(r.Passage, e.cfg.ExcerptMaxLen),
		})
	}
	return provenance
}

// noKnowledgeAnswer is the fixed short-circuit when retrieval finds nothing.
// The generator is never invoked without grounding context.
func (e *Engine) noKnowledgeAnswer(start time.Time) StructuredAnswer {
	return StructuredAnswer{
		AnswerText: "I couldn't find anything in our help center that answers that. " +
			"Could you rephrase your question, or would you like to talk to a human agent?",
		ConfidenceScore: 20,
		ConfidenceLabel: confidence.LabelLow,
		Provenance:      []Provenance{},
		SuggestedNextSteps: []string{
			"Try rephrasing your question with different words",
			"Search the help center directly",
			"Contact our support team",
		},
		UIActions: UIActions{TalkToHuman: true},
		Metadata: Metadata{
			LLMModel:       e.model,
			ResponseTimeMS: time.Since(start).Milliseconds(),
		},
	}
}

// errorAnswer is the fixed degraded response for generator failures,
// timeouts, and anything unexpected inside the pipeline.
func (e *Engine) errorAnswer(start time.Time) StructuredAnswer {
	return StructuredAnswer{
		AnswerText: "I'm having trouble processing your question right now. " +
			"Please try again in a moment, or talk to a human agent.",
		ConfidenceScore: 0,
		ConfidenceLabel: confidence.LabelLow,
		Provenance:      []Provenance{},
		SuggestedNextSteps: []string{
			"Try again in a few moments",
			"Talk to a human agent",
		},
		UIActions: UIActions{TalkToHuman: true},
		Metadata: Metadata{
			LLMModel:       e.model,
			ResponseTimeMS: time.Since(start).Milliseconds(),
		},
	}
}

// wantsHuman detects an explicit request to reach a person.
func wantsHuman(message string) bool {
	lower := strings.ToLower(message)
	for _, phrase := range []string{"talk to a human", "human agent", "real person", "speak to someone", "talk to support"} {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// truncate cuts s to at most max runes, ellipsis included when cut.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
