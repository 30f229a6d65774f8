package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (ASSIST_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: ASSIST_PROVIDER -> provider,
	// ASSIST_SERVER.PORT -> server.port, etc.
	if err := k.Load(env.Provider("ASSIST_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "ASSIST_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validProviders is the set of recognized provider values.
var validProviders = map[ProviderType]bool{
	ProviderOpenAI: true,
	ProviderCanned: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if !validProviders[c.Provider] {
		return fmt.Errorf("invalid provider %q: must be one of openai, canned", c.Provider)
	}

	if c.Model == "" {
		return fmt.Errorf("model is required")
	}

	if c.KnowledgeDir == "" {
		return fmt.Errorf("knowledge_dir is required")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535, got %d", c.Server.Port)
	}

	w := c.Retrieval.Weights
	if sum := w.CanonicalQuestion + w.Title + w.Summary + w.Tag; !nearOne(sum) {
		return fmt.Errorf("retrieval.weights must sum to 1.0, got %.2f", sum)
	}

	cw := c.Confidence.Weights
	if sum := cw.Retrieval + cw.Coverage + cw.ModelCertainty + cw.Recency + cw.SourceTrust; !nearOne(sum) {
		return fmt.Errorf("confidence.weights must sum to 1.0, got %.2f", sum)
	}

	if c.Confidence.EscalateBelow > c.Confidence.MediumThreshold {
		return fmt.Errorf("confidence.escalate_below (%d) must not exceed confidence.medium_threshold (%d)",
			c.Confidence.EscalateBelow, c.Confidence.MediumThreshold)
	}

	if c.Answer.RetrievalLimit <= 0 {
		return fmt.Errorf("answer.retrieval_limit must be positive")
	}

	return nil
}

func nearOne(v float64) bool {
	return v > 0.999 && v < 1.001
}

// APIKeyEnvVar returns the conventional environment variable name for the
// API key of the given provider, or "" when none is needed.
func APIKeyEnvVar(provider ProviderType) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	default:
		return ""
	}
}
