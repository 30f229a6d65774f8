package cmd

import (
	"fmt"

	"github.com/talentpath/assist/internal/answer"
	"github.com/talentpath/assist/internal/config"
	"github.com/talentpath/assist/internal/confidence"
	"github.com/talentpath/assist/internal/knowledge"
	"github.com/talentpath/assist/internal/llm"
	"github.com/talentpath/assist/internal/retrieval"
)

// loadConfig loads and validates the configuration file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// buildEngine constructs the full answer pipeline from config: knowledge
// base, retriever, scorer, provider, orchestrator.
func buildEngine(cfg *config.Config) (*answer.Engine, *retrieval.Engine, *knowledge.Store, error) {
	articles, err := knowledge.LoadDir(cfg.KnowledgeDir, cfg.Include)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading knowledge base from %s: %w", cfg.KnowledgeDir, err)
	}
	kb := knowledge.NewStore(articles)

	retriever := retrieval.NewEngine(kb, cfg.Retrieval)
	scorer := confidence.NewScorer(cfg.Confidence)

	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("creating LLM provider: %w", err)
	}

	engine := answer.NewEngine(retriever, scorer, provider, cfg.Model, cfg.Answer)
	return engine, retriever, kb, nil
}
