package config

import (
	"github.com/talentpath/assist/internal/answer"
	"github.com/talentpath/assist/internal/confidence"
	"github.com/talentpath/assist/internal/retrieval"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:     ProviderOpenAI,
		Model:        "gpt-4o-mini",
		KnowledgeDir: "knowledge",
		Include:      []string{"**/*.yml", "**/*.yaml"},
		Server: ServerConfig{
			Port:    8090,
			DataDir: ".assist",
		},
		Retrieval:  retrieval.DefaultConfig(),
		Confidence: confidence.DefaultConfig(),
		Answer:     answer.DefaultConfig(),
	}
}
