package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/Donmaston09/crts/internal/model"
	openai "github.com/sashabaranov/go-openai"
)

// Provider defines the interface for generative backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Synthesize requests a structured synthesis plus candidate claims.
	// Candidates are UNVALIDATED: every claim must pass the substring
	// check against its cited abstract before it may be surfaced.
	Synthesize(ctx context.Context, req SynthesizeRequest) (*SynthesizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SynthesizeRequest contains the input for backend synthesis
type SynthesizeRequest struct {
	// Query is the clinical research question
	Query string

	// Documents are the prioritised source abstracts; only the top few
	// are placed into the prompt (see BuildPrompt)
	Documents []model.Document

	// Prompt is an optional pre-built prompt (if empty, BuildPrompt is used)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SynthesizeResponse contains the backend's parsed output
type SynthesizeResponse struct {
	// Synthesis is the short overall summary
	Synthesis string

	// Candidates are the claim→source records exactly as the backend
	// produced them, before validation
	Candidates []Candidate

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Candidate is one unvalidated claim with its asserted citation.
type Candidate struct {
	Claim         string `json:"claim"`
	DocumentID    string `json:"document_id"`
	SourceText    string `json:"source_text"`
	DocumentTitle string `json:"document_title,omitempty"`
}

// Config holds generative backend configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(cfg model.LLMConfig) Config {
	return Config{
		Provider:   cfg.Provider,
		Model:      cfg.Model,
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		MaxTokens:  cfg.MaxTokens,
		HTTPProxy:  cfg.HTTPProxy,
		HTTPSProxy: cfg.HTTPSProxy,
		NoProxy:    cfg.NoProxy,
	}
}

// IsQuotaError reports whether a backend failure is quota exhaustion
// rather than a transport or contract problem. Both end in the
// deterministic fallback; only the advisory to the caller differs.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(strings.ToLower(msg), "quota")
}
