package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenAIProvider calls a chat completions endpoint. OpenRouter speaks the
// same protocol, so NewOpenRouterProvider returns one of these too.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	name   string
}

// NewOpenAIProvider builds a provider for api.openai.com, or for BaseURL
// when set.
func NewOpenAIProvider(cfg ProviderConfig) (*OpenAIProvider, error) {
	return newChatProvider(ProviderOpenAI, cfg, "")
}

// NewOpenRouterProvider builds a provider for OpenRouter.
func NewOpenRouterProvider(cfg ProviderConfig) (*OpenAIProvider, error) {
	return newChatProvider(ProviderOpenRouter, cfg, openRouterBaseURL)
}

func newChatProvider(name string, cfg ProviderConfig, defaultBaseURL string) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: API key is required", name)
	}
	conf := openai.DefaultConfig(cfg.APIKey)
	switch {
	case cfg.BaseURL != "":
		conf.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	case defaultBaseURL != "":
		conf.BaseURL = defaultBaseURL
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(conf),
		model:  cfg.Model,
		name:   name,
	}, nil
}

func (p *OpenAIProvider) ModelID() string { return p.model }

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chat := openai.ChatCompletionRequest{
		Model:               p.model,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
	if req.System != "" {
		chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	if req.Schema != nil {
		def, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("%s: marshal schema: %w", p.name, err)
		}
		chat.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        req.Schema.Name,
				Description: req.Schema.Description,
				Schema:      json.RawMessage(def),
				Strict:      true,
			},
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chat)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, fromStatus(apiErr.HTTPStatusCode, 0, err)
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			return nil, fromStatus(reqErr.HTTPStatusCode, 0, err)
		}
		return nil, &ErrProviderUnavailable{Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("%s: response has no choices", p.name)}
	}

	choice := resp.Choices[0]
	stop := StopEnd
	if choice.FinishReason == openai.FinishReasonLength {
		stop = StopMaxTokens
	}
	usage := Usage{InputTokens: resp.Usage.PromptTokens, OutputTokens: resp.Usage.CompletionTokens}
	return finish(req, json.RawMessage(choice.Message.Content), usage, resp.Model, stop)
}
