package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the medkb API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Oracle    OracleConfig    `yaml:"oracle"`
	Cache     CacheConfig     `yaml:"cache"`
	Knowledge KnowledgeConfig `yaml:"knowledge"`
	Engine    EngineConfig    `yaml:"engine"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// OracleConfig holds external oracle settings. An empty API key disables the
// oracle entirely; the engine then runs on deterministic fallbacks only.
type OracleConfig struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	EmbeddingModel string `yaml:"embedding_model"`
	ChatModel      string `yaml:"chat_model"`
	TimeoutSec     int    `yaml:"timeout_sec"`

	// Token budgets for embedding calls. Zero means unlimited.
	DailyTokenBudget   int64  `yaml:"daily_token_budget"`
	MonthlyTokenBudget int64  `yaml:"monthly_token_budget"`
	BudgetAction       string `yaml:"budget_action"` // warn (default) or reject
}

// Enabled reports whether an oracle is configured.
func (o OracleConfig) Enabled() bool {
	return o.APIKey != ""
}

// CacheConfig holds optional embedding-cache settings. Empty addrs disable
// the Redis cache; embeddings are then recomputed per call.
type CacheConfig struct {
	Addrs    []string `yaml:"addrs"`
	Password string   `yaml:"password"`
	TTLHours int      `yaml:"ttl_hours"`
}

// KnowledgeConfig points at an optional YAML override for the built-in
// reference tables.
type KnowledgeConfig struct {
	Path string `yaml:"path"`
}

// EngineConfig holds retrieval and concurrency settings.
type EngineConfig struct {
	TopK           int `yaml:"top_k"`
	MaxConcurrency int `yaml:"max_concurrency"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Oracle.EmbeddingModel == "" {
		c.Oracle.EmbeddingModel = "text-embedding-3-small"
	}
	if c.Oracle.ChatModel == "" {
		c.Oracle.ChatModel = "gpt-4o-mini"
	}
	if c.Oracle.TimeoutSec <= 0 {
		c.Oracle.TimeoutSec = 30
	}
	if c.Oracle.BudgetAction == "" {
		c.Oracle.BudgetAction = "warn"
	}
	if c.Cache.TTLHours <= 0 {
		c.Cache.TTLHours = 24 * 7
	}
	if c.Engine.TopK <= 0 {
		c.Engine.TopK = 5
	}
	if c.Engine.MaxConcurrency <= 0 {
		c.Engine.MaxConcurrency = 4
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Oracle.BudgetAction {
	case "", "warn", "reject":
		// ok
	default:
		return fmt.Errorf("oracle.budget_action must be warn or reject, got %q", c.Oracle.BudgetAction)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
		// ok
	default:
		return fmt.Errorf("logging.level must be one of debug/info/warn/error, got %q", c.Logging.Level)
	}
	if c.Knowledge.Path != "" {
		if _, err := os.Stat(c.Knowledge.Path); err != nil {
			return fmt.Errorf("knowledge.path %q: %w", c.Knowledge.Path, err)
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
