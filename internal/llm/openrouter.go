package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// OpenRouterClient implements Client for OpenAI-compatible chat completion
// endpoints, OpenRouter by default.
type OpenRouterClient struct {
	http   *resty.Client
	config *Config
	apiKey string
}

// NewOpenRouterClient creates a new OpenRouter client
func NewOpenRouterClient(config *Config, apiKey string) (*OpenRouterClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config.BaseURL == "" {
		withURL := *config
		withURL.BaseURL = DefaultOpenRouterURL
		config = &withURL
	}

	return &OpenRouterClient{
		http:   resty.New(),
		config: config,
		apiKey: apiKey,
	}, nil
}

// GenerateStructured posts a chat completion request with a json_schema
// response format and returns the first choice's content.
func (c *OpenRouterClient) GenerateStructured(ctx context.Context, messages []Message, schema Schema, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.callTimeout())
	defer cancel()

	chat := make([]map[string]string, 0, len(messages))
	for _, m := range messages {
		chat = append(chat, map[string]string{"role": string(m.Role), "content": m.Content})
	}

	body := map[string]interface{}{
		"model":       modelName,
		"messages":    chat,
		"temperature": c.config.Temperature,
	}
	if schema.JSON != "" {
		name := schema.Name
		if name == "" {
			name = "response"
		}
		body["response_format"] = map[string]interface{}{
			"type": "json_schema",
			"json_schema": map[string]interface{}{
				"name":   name,
				"strict": false,
				"schema": json.RawMessage(schema.JSON),
			},
		}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(c.config.BaseURL)
	if err != nil {
		return "", &ServiceError{Provider: ProviderOpenRouter, Message: "request failed", Cause: contextCause(ctx, err)}
	}
	if resp.IsError() {
		return "", &ServiceError{
			Provider: ProviderOpenRouter,
			Message:  fmt.Sprintf("HTTP %d: %s", resp.StatusCode(), truncate(resp.String(), 300)),
		}
	}

	if msg := gjson.Get(resp.String(), "error.message"); msg.Exists() {
		return "", &ServiceError{Provider: ProviderOpenRouter, Message: msg.String()}
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return "", &ServiceError{Provider: ProviderOpenRouter, Message: "no response from LLM"}
	}
	return text, nil
}

// GetModel returns the model name for a tier
func (c *OpenRouterClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the HTTP client holds no resources that need releasing
func (c *OpenRouterClient) Close() error {
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
