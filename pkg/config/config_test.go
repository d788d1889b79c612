package config

import (
	"errors"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadReadsAPIKeyFromEnv(t *testing.T) {
	viper.Reset()
	t.Setenv("CS_COPILOT_LLM_APIKEY", "sk-test-123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with CS_COPILOT_LLM_APIKEY set returned error: %v", err)
	}
	if cfg.LLM.APIKey != "sk-test-123" {
		t.Errorf("LLM.APIKey = %q, want value from environment", cfg.LLM.APIKey)
	}
}

func TestLoadMissingAPIKey(t *testing.T) {
	viper.Reset()
	t.Setenv("CS_COPILOT_LLM_APIKEY", "")

	_, err := Load()
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Load() error = %v, want ErrMissingAPIKey", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Setenv("CS_COPILOT_LLM_APIKEY", "sk-test-123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default 8080", cfg.Server.Port)
	}
	if cfg.LLM.AnalysisModel != "gpt-3.5-turbo" || cfg.LLM.ResponseModel != "gpt-4" {
		t.Errorf("model defaults = %q/%q", cfg.LLM.AnalysisModel, cfg.LLM.ResponseModel)
	}
	if cfg.Pipeline.StageTimeoutSec != 45 {
		t.Errorf("Pipeline.StageTimeoutSec = %d, want default 45", cfg.Pipeline.StageTimeoutSec)
	}
}

func TestLoadEnvOverridesDefault(t *testing.T) {
	viper.Reset()
	t.Setenv("CS_COPILOT_LLM_APIKEY", "sk-test-123")
	t.Setenv("CS_COPILOT_SERVER_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want env override 9090", cfg.Server.Port)
	}
}
