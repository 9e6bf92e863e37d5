package config

import (
	"os"
	"testing"
)

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 0},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 8080},
		Logging: LoggingConfig{Level: "verbose"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid log level")
	}
}

func TestValidate_ValidLogLevels(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "error"} {
		t.Run("level="+level, func(t *testing.T) {
			cfg := Config{
				HTTP:    HTTPConfig{Port: 8080},
				Logging: LoggingConfig{Level: level},
			}

			if err := cfg.Validate(); err != nil {
				t.Fatalf("unexpected error for valid level %q: %v", level, err)
			}
		})
	}
}

func TestValidate_InvalidBudgetAction(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{Port: 8080},
		Oracle: OracleConfig{BudgetAction: "panic"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid budget action")
	}
}

func TestValidate_MissingKnowledgeFile(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{Port: 8080},
		Knowledge: KnowledgeConfig{Path: "/nonexistent/knowledge.yaml"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing knowledge override file")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()

	if cfg.Engine.TopK != 5 {
		t.Errorf("expected default top_k 5, got %d", cfg.Engine.TopK)
	}
	if cfg.Engine.MaxConcurrency != 4 {
		t.Errorf("expected default max_concurrency 4, got %d", cfg.Engine.MaxConcurrency)
	}
	if cfg.Oracle.TimeoutSec != 30 {
		t.Errorf("expected default oracle timeout 30s, got %d", cfg.Oracle.TimeoutSec)
	}
	if cfg.Oracle.EmbeddingModel == "" || cfg.Oracle.ChatModel == "" {
		t.Error("expected default oracle models to be filled")
	}
	if cfg.Oracle.BudgetAction != "warn" {
		t.Errorf("expected default budget action warn, got %q", cfg.Oracle.BudgetAction)
	}
}

func TestOracleEnabled(t *testing.T) {
	if (OracleConfig{}).Enabled() {
		t.Error("oracle with no api key should be disabled")
	}
	if !(OracleConfig{APIKey: "k"}).Enabled() {
		t.Error("oracle with api key should be enabled")
	}
}

func TestExpandEnvVars(t *testing.T) {
	if err := os.Setenv("MEDKB_TEST_KEY", "secret"); err != nil {
		t.Fatal(err)
	}
	defer os.Unsetenv("MEDKB_TEST_KEY")

	in := []byte("api_key: ${MEDKB_TEST_KEY}\nbase_url: ${MEDKB_TEST_URL:-https://fallback}")
	out := string(expandEnvVars(in))

	want := "api_key: secret\nbase_url: https://fallback"
	if out != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", out, want)
	}
}
