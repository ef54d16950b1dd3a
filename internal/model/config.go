package model

import "time"

// Config holds the complete runtime configuration
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Knowledge   KnowledgeConfig   `yaml:"knowledge"`
	HTTP        HTTPConfig        `yaml:"http"`
	Cache       CacheConfig       `yaml:"cache"`
	Output      OutputConfig      `yaml:"output"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}

// LLMConfig configures the optional rewrite provider
type LLMConfig struct {
	Provider  string  `yaml:"provider"` // openai, groq, anthropic, ollama, "" (disabled)
	Model     string  `yaml:"model"`
	APIKey    string  `yaml:"api_key,omitempty"`
	BaseURL   string  `yaml:"base_url,omitempty"`
	Timeout   int     `yaml:"timeout"` // seconds
	MaxTokens int     `yaml:"max_tokens"`
	RateLimit float64 `yaml:"rate_limit"` // requests per second against the provider

	HTTPProxy  string `yaml:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty"`
	NoProxy    string `yaml:"no_proxy,omitempty"`
}

// KnowledgeConfig configures the plain-language manual lookup
type KnowledgeConfig struct {
	Enabled  bool          `yaml:"enabled"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// HTTPConfig configures fetching of web pages for analysis
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	CheckRobots  bool          `yaml:"check_robots"`
}

// CacheConfig configures the rewrite/page cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir,omitempty"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// OutputConfig configures report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// ConcurrencyConfig bounds parallel work
type ConcurrencyConfig struct {
	BatchWorkers int `yaml:"batch_workers"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  "", // Disabled by default
			Timeout:   30,
			MaxTokens: 1500,
			RateLimit: 1,
		},
		Knowledge: KnowledgeConfig{
			Enabled:  true,
			CacheTTL: 10 * time.Minute,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Aclarador/0.2 (+https://github.com/menpente/aclarador-clean)",
			MaxBodyBytes: 2_000_000,
			CheckRobots:  true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers: 4,
		},
	}
}
