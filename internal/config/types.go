package config

import (
	"github.com/talentpath/assist/internal/answer"
	"github.com/talentpath/assist/internal/confidence"
	"github.com/talentpath/assist/internal/retrieval"
)

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderCanned ProviderType = "canned"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     int    `yaml:"port" koanf:"port"`
	DataDir  string `yaml:"data_dir" koanf:"data_dir"`
	AllowAll bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// Config is the top-level assist configuration, corresponding to .assist.yml.
// Every tunable constant of the answer pipeline lives here so the scoring
// behavior is swappable without a rebuild.
type Config struct {
	Provider     ProviderType      `yaml:"provider" koanf:"provider"`
	Model        string            `yaml:"model" koanf:"model"`
	KnowledgeDir string            `yaml:"knowledge_dir" koanf:"knowledge_dir"`
	Include      []string          `yaml:"include" koanf:"include"`
	Server       ServerConfig      `yaml:"server" koanf:"server"`
	Retrieval    retrieval.Config  `yaml:"retrieval" koanf:"retrieval"`
	Confidence   confidence.Config `yaml:"confidence" koanf:"confidence"`
	Answer       answer.Config     `yaml:"answer" koanf:"answer"`
}
