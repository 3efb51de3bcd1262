package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates a generative backend based on configuration.
// An empty provider name returns (nil, nil): the backend is optional and
// the deterministic path needs none.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown generative backend: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}
