package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Role identifies the author of a message
type Role string

// Message roles understood by every provider
const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is one entry of the conversation sent to the reasoning service
type Message struct {
	Role    Role
	Content string
}

// Schema describes the structured output expected from a call
type Schema struct {
	Name        string
	Description string
	// JSON is a JSON Schema (draft-07) document
	JSON string
}

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateStructured sends the messages and returns the raw response text,
	// which the provider has been asked to shape according to schema.
	GenerateStructured(ctx context.Context, messages []Message, schema Schema, tier ModelTier) (string, error)
	// GetModel returns the underlying provider model for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderOpenRouter:
		return NewOpenRouterClient(config, apiKey)
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", config.Provider)
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// GenerateStructured asks Gemini for a JSON response. The JSON Schema is passed
// as a native response schema when it can be expressed that way, otherwise it
// is appended to the prompt.
func (c *GeminiClient) GenerateStructured(ctx context.Context, messages []Message, schema Schema, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.callTimeout())
	defer cancel()

	system, user := splitMessages(messages)

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(c.config.Temperature)
	model.ResponseMIMEType = "application/json"
	if responseSchema, ok := ToGeminiSchema(schema.JSON); ok {
		model.ResponseSchema = responseSchema
	} else {
		user += SchemaInstruction(schema)
	}
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", &ServiceError{Provider: ProviderGemini, Message: "failed to generate content", Cause: contextCause(ctx, err)}
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", &ServiceError{Provider: ProviderGemini, Message: "empty response", Cause: err}
	}
	return text, nil
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

// splitMessages joins system messages into one instruction and the remaining
// messages into one prompt, both separated by blank lines.
func splitMessages(messages []Message) (system, user string) {
	var sys, usr []string
	for _, m := range messages {
		if m.Role == RoleSystem {
			sys = append(sys, m.Content)
		} else {
			usr = append(usr, m.Content)
		}
	}
	return strings.Join(sys, "\n\n"), strings.Join(usr, "\n\n")
}

// SchemaInstruction renders the prompt suffix used when a provider cannot
// enforce the schema natively.
func SchemaInstruction(schema Schema) string {
	var sb strings.Builder
	sb.WriteString("\n\nReturn ONLY valid JSON")
	if schema.Name != "" {
		sb.WriteString(" for ")
		sb.WriteString(schema.Name)
	}
	sb.WriteString(" matching this JSON Schema:\n")
	sb.WriteString(schema.JSON)
	sb.WriteString("\n\nIMPORTANT:\n")
	sb.WriteString("- Do not add fields that the schema does not define.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n")
	return sb.String()
}

// contextCause reports the deadline instead of the transport error when the
// per-call timeout fired.
func contextCause(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		return fmt.Errorf("%w: %v", ctxErr, err)
	}
	return err
}
