package model

import "time"

// Config is the full application configuration.
type Config struct {
	Weights  Weights `yaml:"weights" mapstructure:"weights"`
	KSeconds float64 `yaml:"k_seconds" mapstructure:"k_seconds"` // Audit window for AR*

	Align       AlignConfig       `yaml:"align" mapstructure:"align"`
	Rank        RankConfig        `yaml:"rank" mapstructure:"rank"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// AlignConfig controls guideline alignment and the similarity network.
type AlignConfig struct {
	Threshold        float64 `yaml:"threshold" mapstructure:"threshold"`                 // Claim↔guideline match cutoff
	NetworkThreshold float64 `yaml:"network_threshold" mapstructure:"network_threshold"` // Document↔document edge cutoff
}

// RankConfig holds the configurable stem lists used by the prioritiser.
// Empty slices fall back to the built-in lexicons.
type RankConfig struct {
	SafetyStems      []string `yaml:"safety_stems" mapstructure:"safety_stems"`
	SafetyStudyHints []string `yaml:"safety_study_hints" mapstructure:"safety_study_hints"`
}

// LLMConfig configures the optional generative backend.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "openai", "ollama", "" (disabled)
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"api_key"` // Never serialised back out
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // Seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`

	HTTPProxy  string `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy    string `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// CacheConfig controls caching of generative backend payloads.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ConcurrencyConfig controls batch workers and backend rate limiting.
type ConcurrencyConfig struct {
	Workers      int     `yaml:"workers" mapstructure:"workers"`
	BackendRPS   float64 `yaml:"backend_rps" mapstructure:"backend_rps"`
	BackendBurst int     `yaml:"backend_burst" mapstructure:"backend_burst"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights:  DefaultWeights(),
		KSeconds: 5.0,
		Align: AlignConfig{
			Threshold:        0.15,
			NetworkThreshold: 0.25,
		},
		Rank: RankConfig{}, // Built-in lexicons
		LLM: LLMConfig{
			Provider:  "", // Disabled by default; the deterministic path needs no backend
			Timeout:   30,
			MaxTokens: 1000,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			Workers:      4,
			BackendRPS:   1,
			BackendBurst: 2,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
