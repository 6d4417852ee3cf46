// Package config loads resume-tailor settings from JSON or YAML files and the
// environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/logger"
	"github.com/jonathan/resume-tailor/internal/typesetting"
	"github.com/jonathan/resume-tailor/internal/validation"
)

// Config is the full application configuration. Every field is optional in
// files; Default supplies the rest.
type Config struct {
	LLM         LLMConfig         `json:"llm" yaml:"llm"`
	Typesetting TypesettingConfig `json:"typesetting" yaml:"typesetting"`
	Server      ServerConfig      `json:"server" yaml:"server"`
	Log         logger.Config     `json:"log" yaml:"log"`
	Lint        LintConfig        `json:"lint" yaml:"lint"`

	Template   string `json:"template,omitempty" yaml:"template,omitempty"`       // path to a LaTeX template
	UseBrowser bool   `json:"use_browser,omitempty" yaml:"use_browser,omitempty"` // render job URLs with headless Chrome
}

// LLMConfig selects the reasoning service
type LLMConfig struct {
	Provider    string            `json:"provider" yaml:"provider" validate:"oneof=gemini openrouter"`
	APIKey      string            `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Models      map[string]string `json:"models,omitempty" yaml:"models,omitempty"`
	Timeout     Duration          `json:"timeout" yaml:"timeout" validate:"gt=0"`
	Temperature float32           `json:"temperature" yaml:"temperature" validate:"gte=0,lte=2"`
	BaseURL     string            `json:"base_url,omitempty" yaml:"base_url,omitempty" validate:"omitempty,url"`
}

// TypesettingConfig controls the remote LaTeX compiler
type TypesettingConfig struct {
	BaseURL     string   `json:"base_url" yaml:"base_url" validate:"required,url"`
	Engine      string   `json:"engine" yaml:"engine" validate:"oneof=pdflatex xelatex lualatex"`
	Timeout     Duration `json:"timeout" yaml:"timeout" validate:"gt=0"`
	Attempts    int      `json:"attempts" yaml:"attempts" validate:"gte=1,lte=5"`
	BackoffUnit Duration `json:"backoff_unit" yaml:"backoff_unit" validate:"gte=0"`
}

// ServerConfig controls the HTTP API
type ServerConfig struct {
	Port                  int      `json:"port" yaml:"port" validate:"gte=1,lte=65535"`
	MaxConcurrentRequests int      `json:"max_concurrent_requests" yaml:"max_concurrent_requests" validate:"gte=1"`
	MaxUploadBytes        int64    `json:"max_upload_bytes" yaml:"max_upload_bytes" validate:"gte=1024"`
	RequestTimeout        Duration `json:"request_timeout" yaml:"request_timeout" validate:"gt=0"`
	AllowedOrigins        []string `json:"allowed_origins" yaml:"allowed_origins"`
}

// LintConfig controls the checks run over generated LaTeX
type LintConfig struct {
	MaxLineChars     int      `json:"max_line_chars" yaml:"max_line_chars" validate:"gte=0"`
	ForbiddenPhrases []string `json:"forbidden_phrases,omitempty" yaml:"forbidden_phrases,omitempty"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    string(llm.ProviderGemini),
			Timeout:     Duration(llm.DefaultTimeout),
			Temperature: 0.1,
		},
		Typesetting: TypesettingConfig{
			BaseURL:     typesetting.DefaultBaseURL,
			Engine:      typesetting.DefaultEngine,
			Timeout:     Duration(typesetting.DefaultTimeout),
			Attempts:    typesetting.DefaultAttempts,
			BackoffUnit: Duration(typesetting.DefaultBackoffUnit),
		},
		Server: ServerConfig{
			Port:                  8000,
			MaxConcurrentRequests: 4,
			MaxUploadBytes:        10 << 20,
			RequestTimeout:        Duration(5 * time.Minute),
			AllowedOrigins:        []string{"*"},
		},
		Log:  logger.Config{Level: "info", Format: "json"},
		Lint: LintConfig{MaxLineChars: validation.DefaultMaxLineChars},
	}
}

// Load reads a JSON or YAML file, chosen by extension, over the defaults. An
// empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to read config file %s", path), Cause: err}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, &Error{Message: "failed to parse config JSON", Cause: err}
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &Error{Message: "failed to parse config YAML", Cause: err}
		}
	default:
		return nil, &Error{Message: fmt.Sprintf("unsupported config format %q (want .json, .yaml or .yml)", filepath.Ext(path))}
	}

	return cfg, nil
}

// ApplyEnv overrides settings from environment variables. API keys are only
// taken from the environment when the file does not set one.
func (c *Config) ApplyEnv() error {
	if v, ok := lookup("LLM_PROVIDER"); ok {
		c.LLM.Provider = strings.ToLower(v)
	}
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = c.providerKeyFromEnv()
	}
	if v, ok := lookup("LLM_BASE_URL"); ok {
		c.LLM.BaseURL = v
	}
	if v, ok := lookup("TYPESETTING_BASE_URL"); ok {
		c.Typesetting.BaseURL = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup("LOG_FORMAT"); ok {
		c.Log.Format = v
	}

	if v, ok := lookup("LLM_TIMEOUT"); ok {
		d, err := ParseDuration(v)
		if err != nil {
			return &Error{Message: "LLM_TIMEOUT", Cause: err}
		}
		c.LLM.Timeout = d
	}
	if v, ok := lookup("TYPESETTING_TIMEOUT"); ok {
		d, err := ParseDuration(v)
		if err != nil {
			return &Error{Message: "TYPESETTING_TIMEOUT", Cause: err}
		}
		c.Typesetting.Timeout = d
	}

	for name, dst := range map[string]*int{
		"PORT":                    &c.Server.Port,
		"MAX_CONCURRENT_REQUESTS": &c.Server.MaxConcurrentRequests,
		"TYPESETTING_ATTEMPTS":    &c.Typesetting.Attempts,
	} {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return &Error{Message: name, Cause: err}
		}
		*dst = n
	}

	return nil
}

func (c *Config) providerKeyFromEnv() string {
	if llm.Provider(c.LLM.Provider) == llm.ProviderOpenRouter {
		v, _ := lookup("OPENROUTER_API_KEY")
		return v
	}
	v, _ := lookup("GEMINI_API_KEY")
	return v
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

var validate = validator.New()

// Validate checks value ranges and referenced files. A missing API key is not
// an error here; commands that call the reasoning service check it.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &Error{Message: fmt.Sprintf("%s fails %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())}
		}
		return &Error{Message: "invalid configuration", Cause: err}
	}

	switch c.Log.Format {
	case "", "json", "pretty":
	default:
		return &Error{Message: fmt.Sprintf("log format must be json or pretty, got %q", c.Log.Format)}
	}

	if c.Template != "" {
		if _, err := os.Stat(c.Template); err != nil {
			return &Error{Message: fmt.Sprintf("template file not found: %s", c.Template), Cause: err}
		}
	}
	return nil
}

// RequireAPIKey fails when no key is configured for the selected provider
func (c *Config) RequireAPIKey() error {
	if c.LLM.APIKey != "" {
		return nil
	}
	envVar := "GEMINI_API_KEY"
	if llm.Provider(c.LLM.Provider) == llm.ProviderOpenRouter {
		envVar = "OPENROUTER_API_KEY"
	}
	return &Error{Message: fmt.Sprintf("no API key for provider %s (set %s)", c.LLM.Provider, envVar)}
}

// LLMClientConfig converts the settings into an llm.Config, starting from the
// provider defaults
func (c *Config) LLMClientConfig() *llm.Config {
	out := llm.DefaultConfigFor(llm.Provider(c.LLM.Provider))
	for tier, model := range c.LLM.Models {
		out = out.WithModel(llm.ModelTier(tier), model)
	}
	out.Timeout = c.LLM.Timeout.Std()
	out.Temperature = c.LLM.Temperature
	if c.LLM.BaseURL != "" {
		out.BaseURL = c.LLM.BaseURL
	}
	return out
}

// TypesettingOptions converts the settings into typesetting.Options
func (c *Config) TypesettingOptions() typesetting.Options {
	return typesetting.Options{
		BaseURL:     c.Typesetting.BaseURL,
		Engine:      c.Typesetting.Engine,
		Timeout:     c.Typesetting.Timeout.Std(),
		Attempts:    c.Typesetting.Attempts,
		BackoffUnit: c.Typesetting.BackoffUnit.Std(),
	}
}

// LintOptions converts the settings into validation.Options
func (c *Config) LintOptions() validation.Options {
	return validation.Options{
		MaxLineChars:     c.Lint.MaxLineChars,
		ForbiddenPhrases: c.Lint.ForbiddenPhrases,
	}
}
