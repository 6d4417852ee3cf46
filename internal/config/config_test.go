package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/llm"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_JSONAndYAMLAreEquivalent(t *testing.T) {
	jsonPath := writeFile(t, "config.json", `{
		"llm": {"provider": "openrouter", "timeout": "30s", "temperature": 0.2, "models": {"advanced": "anthropic/claude-sonnet-4"}},
		"typesetting": {"attempts": 3, "backoff_unit": 1},
		"server": {"port": 9090, "max_concurrent_requests": 8},
		"log": {"level": "debug", "format": "pretty"},
		"lint": {"forbidden_phrases": ["synergy"]},
		"use_browser": true
	}`)
	yamlPath := writeFile(t, "config.yaml", `
llm:
  provider: openrouter
  timeout: 30s
  temperature: 0.2
  models:
    advanced: anthropic/claude-sonnet-4
typesetting:
  attempts: 3
  backoff_unit: 1
server:
  port: 9090
  max_concurrent_requests: 8
log:
  level: debug
  format: pretty
lint:
  forbidden_phrases:
    - synergy
use_browser: true
`)

	fromJSON, err := Load(jsonPath)
	require.NoError(t, err)
	fromYAML, err := Load(yamlPath)
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromYAML)
	assert.Equal(t, "openrouter", fromJSON.LLM.Provider)
	assert.Equal(t, 30*time.Second, fromJSON.LLM.Timeout.Std())
	assert.Equal(t, time.Second, fromJSON.Typesetting.BackoffUnit.Std())
	assert.Equal(t, 9090, fromJSON.Server.Port)
	assert.True(t, fromJSON.UseBrowser)
	assert.Equal(t, []string{"synergy"}, fromYAML.Lint.ForbiddenPhrases)
	assert.Equal(t, 110, fromYAML.Lint.MaxLineChars)

	// untouched sections keep their defaults
	assert.Equal(t, Default().Typesetting.BaseURL, fromJSON.Typesetting.BaseURL)
	assert.Equal(t, Default().Server.MaxUploadBytes, fromYAML.Server.MaxUploadBytes)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantMsg string
	}{
		{name: "missing file", path: "/nonexistent/config.json", wantMsg: "failed to read config file"},
		{name: "bad json", path: writeFile(t, "bad.json", `{ invalid json }`), wantMsg: "failed to parse config JSON"},
		{name: "bad yaml", path: writeFile(t, "bad.yaml", "llm: [unclosed"), wantMsg: "failed to parse config YAML"},
		{name: "bad duration", path: writeFile(t, "dur.json", `{"llm": {"timeout": "soon"}}`), wantMsg: "failed to parse config JSON"},
		{name: "unknown extension", path: writeFile(t, "config.toml", `x = 1`), wantMsg: "unsupported config format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.path)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "OpenRouter")
	t.Setenv("OPENROUTER_API_KEY", "or-key")
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("LLM_TIMEOUT", "45")
	t.Setenv("PORT", "7000")
	t.Setenv("MAX_CONCURRENT_REQUESTS", "2")
	t.Setenv("LOG_LEVEL", "warn")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "openrouter", cfg.LLM.Provider)
	assert.Equal(t, "or-key", cfg.LLM.APIKey)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout.Std())
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, 2, cfg.Server.MaxConcurrentRequests)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestApplyEnv_FileKeyWins(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg := Default()
	cfg.LLM.APIKey = "file-key"
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "file-key", cfg.LLM.APIKey)
}

func TestApplyEnv_InvalidNumber(t *testing.T) {
	t.Setenv("PORT", "eighty")

	err := Default().ApplyEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "unknown provider", mutate: func(c *Config) { c.LLM.Provider = "mystery" }, wantErr: true},
		{name: "zero attempts", mutate: func(c *Config) { c.Typesetting.Attempts = 0 }, wantErr: true},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
		{name: "no concurrency", mutate: func(c *Config) { c.Server.MaxConcurrentRequests = 0 }, wantErr: true},
		{name: "bad engine", mutate: func(c *Config) { c.Typesetting.Engine = "troff" }, wantErr: true},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
		{name: "missing template", mutate: func(c *Config) { c.Template = "/nonexistent/resume.tex" }, wantErr: true},
		{name: "negative temperature", mutate: func(c *Config) { c.LLM.Temperature = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				var cfgErr *Error
				assert.ErrorAs(t, err, &cfgErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequireAPIKey(t *testing.T) {
	cfg := Default()
	err := cfg.RequireAPIKey()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")

	cfg.LLM.Provider = "openrouter"
	assert.Contains(t, cfg.RequireAPIKey().Error(), "OPENROUTER_API_KEY")

	cfg.LLM.APIKey = "k"
	assert.NoError(t, cfg.RequireAPIKey())
}

func TestLLMClientConfig(t *testing.T) {
	cfg := Default()
	cfg.LLM.Provider = "openrouter"
	cfg.LLM.Models = map[string]string{"advanced": "custom/model"}
	cfg.LLM.Timeout = Duration(10 * time.Second)

	out := cfg.LLMClientConfig()
	assert.Equal(t, llm.ProviderOpenRouter, out.Provider)
	assert.Equal(t, "custom/model", out.GetModel(llm.TierAdvanced))
	assert.Equal(t, "google/gemini-2.5-flash", out.GetModel(llm.TierStandard))
	assert.Equal(t, 10*time.Second, out.Timeout)
	assert.Equal(t, llm.DefaultOpenRouterURL, out.BaseURL)
}

func TestTypesettingOptions(t *testing.T) {
	opts := Default().TypesettingOptions()
	assert.Equal(t, "https://latex.ytotech.com", opts.BaseURL)
	assert.Equal(t, 45*time.Second, opts.Timeout)
	assert.Equal(t, 2, opts.Attempts)
	assert.Equal(t, 2*time.Second, opts.BackoffUnit)
}

func TestLintOptions(t *testing.T) {
	cfg := Default()
	cfg.Lint.ForbiddenPhrases = []string{"rockstar"}

	opts := cfg.LintOptions()
	assert.Equal(t, 110, opts.MaxLineChars)
	assert.Equal(t, []string{"rockstar"}, opts.ForbiddenPhrases)
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "90s", want: 90 * time.Second},
		{in: "1m30s", want: 90 * time.Second},
		{in: "2.5", want: 2500 * time.Millisecond},
		{in: "10x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Std())
		})
	}
}
