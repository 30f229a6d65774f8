package config

import (
	"fmt"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to the given path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to assist! Let's configure your support assistant.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select LLM provider",
		Items: []string{"openai", "canned (offline, for development)"},
	}
	idx, _, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	providers := []ProviderType{ProviderOpenAI, ProviderCanned}
	cfg.Provider = providers[idx]

	// 2. Model, only meaningful for a real provider.
	if cfg.Provider == ProviderOpenAI {
		modelPrompt := promptui.Prompt{
			Label:   "Model",
			Default: cfg.Model,
		}
		model, err := modelPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("model prompt: %w", err)
		}
		cfg.Model = model
	}

	// 3. Knowledge base directory.
	kbPrompt := promptui.Prompt{
		Label:   "Knowledge base directory",
		Default: cfg.KnowledgeDir,
	}
	kbDir, err := kbPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("knowledge dir prompt: %w", err)
	}
	cfg.KnowledgeDir = kbDir

	// 4. Server port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP server port",
		Default: fmt.Sprintf("%d", cfg.Server.Port),
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port prompt: %w", err)
	}
	if _, err := fmt.Sscanf(portStr, "%d", &cfg.Server.Port); err != nil {
		return nil, fmt.Errorf("invalid port %q", portStr)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, err
	}
	fmt.Printf("\nConfiguration saved to %s\n", path)

	if envVar := APIKeyEnvVar(cfg.Provider); envVar != "" {
		fmt.Printf("Remember to set %s before running `assist serve`.\n", envVar)
	}

	return cfg, nil
}
