package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/jonathan/resume-tailor/internal/schemas"
)

// Invoke performs exactly one structured call and decodes the response into T.
//
// The cleaned response must satisfy the JSON Schema and decode strictly (no
// unknown fields). Anything else is a *SchemaViolationError; failures reaching
// the service are *ServiceError. Values are never coerced and calls are never
// retried.
func Invoke[T any](ctx context.Context, client Client, messages []Message, schema Schema, tier ModelTier) (*T, error) {
	raw, err := client.GenerateStructured(ctx, messages, schema, tier)
	if err != nil {
		var svcErr *ServiceError
		if errors.As(err, &svcErr) {
			return nil, err
		}
		return nil, &ServiceError{Message: "structured call failed", Cause: err}
	}

	cleaned := CleanJSONBlock(raw)
	if cleaned == "" {
		return nil, &SchemaViolationError{Schema: schema.Name, Message: "empty response"}
	}

	if schema.JSON != "" {
		if err := schemas.ValidateJSONString(schema.JSON, cleaned); err != nil {
			var vErr *schemas.ValidationError
			if errors.As(err, &vErr) {
				return nil, &SchemaViolationError{Schema: schema.Name, Message: vErr.Summary(), Raw: cleaned, Cause: err}
			}
			var docErr *schemas.DocumentError
			if errors.As(err, &docErr) {
				return nil, &SchemaViolationError{Schema: schema.Name, Message: "response is not valid JSON", Raw: cleaned, Cause: err}
			}
			return nil, &ServiceError{Message: "invalid schema " + schema.Name, Cause: err}
		}
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(cleaned)))
	dec.DisallowUnknownFields()
	var out T
	if err := dec.Decode(&out); err != nil {
		return nil, &SchemaViolationError{Schema: schema.Name, Message: "failed to decode response", Raw: cleaned, Cause: err}
	}
	return &out, nil
}
