// Package llm sends prompts to hosted language models and returns
// schema-checked JSON. Briefings are the only caller today.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider generates a response for a prompt.
type Provider interface {
	// Generate returns the model output. When req.Schema is set the
	// Content is JSON that has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model the provider is configured for.
	ModelID() string
}

// Role identifies who wrote a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Request is a single generation call.
type Request struct {
	System      string
	Messages    []Message
	Schema      *Schema
	MaxTokens   int
	Temperature float64 // 0 leaves the provider default
}

// Prompt builds a single-turn request.
func Prompt(system, user string, schema *Schema, maxTokens int) Request {
	return Request{
		System:    system,
		Messages:  []Message{{Role: RoleUser, Content: user}},
		Schema:    schema,
		MaxTokens: maxTokens,
	}
}

// Schema is a named JSON Schema the output must satisfy. Name doubles as
// the cache key for the compiled schema.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// StopReason is the normalized reason generation ended.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response is the model output.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason StopReason
}

// Usage counts tokens for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total is input plus output tokens.
func (u Usage) Total() int { return u.InputTokens + u.OutputTokens }

// Decode unmarshals the response content into a T.
func Decode[T any](resp *Response) (T, error) {
	var v T
	if resp == nil {
		return v, fmt.Errorf("decode: nil response")
	}
	if err := json.Unmarshal(resp.Content, &v); err != nil {
		return v, &ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	return v, nil
}

// finish applies the checks every provider shares: truncated structured
// output is an error, and structured output must match the schema.
func finish(req Request, content json.RawMessage, usage Usage, model string, stop StopReason) (*Response, error) {
	if req.Schema != nil {
		if stop == StopMaxTokens {
			return nil, &ErrMaxTokensExceeded{Content: content}
		}
		if err := schemas.check(req.Schema, content); err != nil {
			return nil, err
		}
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}

// resolveModel expands a short alias, passing unknown names through.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
