package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var briefingSchema = &Schema{
	Name: "test-briefing",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headline": map[string]any{"type": "string"},
			"message":  map[string]any{"type": "string"},
		},
		"required":             []any{"headline", "message"},
		"additionalProperties": false,
	},
}

func jsonHandler(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-haiku-4-5-20251001",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 42, "output_tokens": 17},
	}
}

func newAnthropicTest(t *testing.T, h http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	p, err := NewAnthropicProvider(ProviderConfig{APIKey: "test", Model: "claude-haiku", BaseURL: srv.URL})
	require.NoError(t, err)
	return p
}

func TestAnthropicProvider_StructuredOutput(t *testing.T) {
	p := newAnthropicTest(t, jsonHandler(http.StatusOK,
		anthropicMessage(`{"headline":"Rise","message":"Six quests await."}`, "end_turn")))

	resp, err := p.Generate(context.Background(), Prompt("sys", "brief me", briefingSchema, 200))
	require.NoError(t, err)
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.Equal(t, 42, resp.Usage.InputTokens)
	assert.Equal(t, 59, resp.Usage.Total())
	assert.Equal(t, "claude-haiku-4-5-20251001", p.ModelID())

	out, err := Decode[map[string]string](resp)
	require.NoError(t, err)
	assert.Equal(t, "Rise", out["headline"])
}

func TestAnthropicProvider_SchemaMismatch(t *testing.T) {
	p := newAnthropicTest(t, jsonHandler(http.StatusOK, anthropicMessage(`{"headline":"only"}`, "end_turn")))

	_, err := p.Generate(context.Background(), Prompt("", "x", briefingSchema, 50))
	var bad *ErrInvalidResponse
	assert.ErrorAs(t, err, &bad)
}

func TestAnthropicProvider_Truncated(t *testing.T) {
	p := newAnthropicTest(t, jsonHandler(http.StatusOK, anthropicMessage(`{"headline":"cut`, "max_tokens")))

	_, err := p.Generate(context.Background(), Prompt("", "x", briefingSchema, 5))
	var truncated *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &truncated)
}

func TestAnthropicProvider_StatusMapping(t *testing.T) {
	errBody := map[string]any{"type": "error", "error": map[string]any{"type": "x", "message": "nope"}}

	t.Run("rate limit", func(t *testing.T) {
		p := newAnthropicTest(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "3")
			jsonHandler(http.StatusTooManyRequests, errBody)(w, r)
		})
		_, err := p.Generate(context.Background(), Prompt("", "x", nil, 10))
		var rl *ErrRateLimit
		require.ErrorAs(t, err, &rl)
	})

	t.Run("other status", func(t *testing.T) {
		p := newAnthropicTest(t, jsonHandler(http.StatusBadRequest, errBody))
		_, err := p.Generate(context.Background(), Prompt("", "x", nil, 10))
		var down *ErrProviderUnavailable
		assert.ErrorAs(t, err, &down)
	})
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 30, "completion_tokens": 12, "total_tokens": 42},
	}
}

func newOpenAITest(t *testing.T, h http.HandlerFunc, router bool) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	cfg := ProviderConfig{APIKey: "test", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"}
	var (
		p   *OpenAIProvider
		err error
	)
	if router {
		p, err = NewOpenRouterProvider(cfg)
	} else {
		p, err = NewOpenAIProvider(cfg)
	}
	require.NoError(t, err)
	return p
}

func TestOpenAIProvider_StructuredOutput(t *testing.T) {
	var sent map[string]any
	p := newOpenAITest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		jsonHandler(http.StatusOK, chatCompletion(`{"headline":"Go","message":"Now."}`, "stop"))(w, r)
	}, false)

	resp, err := p.Generate(context.Background(), Prompt("system prompt", "brief me", briefingSchema, 100))
	require.NoError(t, err)
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.Equal(t, 30, resp.Usage.InputTokens)
	assert.Equal(t, 12, resp.Usage.OutputTokens)

	msgs, ok := sent["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, msgs, 2, "system plus user message")
	format, ok := sent["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_schema", format["type"])
}

func TestOpenAIProvider_Errors(t *testing.T) {
	errBody := map[string]any{"error": map[string]any{"message": "slow down", "type": "rate_limit"}}

	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{"rate limit", http.StatusTooManyRequests, func(t *testing.T, err error) {
			var rl *ErrRateLimit
			assert.ErrorAs(t, err, &rl)
		}},
		{"outage", http.StatusBadGateway, func(t *testing.T, err error) {
			var down *ErrProviderUnavailable
			assert.ErrorAs(t, err, &down)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newOpenAITest(t, jsonHandler(tt.status, errBody), false)
			_, err := p.Generate(context.Background(), Prompt("", "x", nil, 10))
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	body := chatCompletion("", "stop")
	body["choices"] = []any{}
	p := newOpenAITest(t, jsonHandler(http.StatusOK, body), false)

	_, err := p.Generate(context.Background(), Prompt("", "x", nil, 10))
	var bad *ErrInvalidResponse
	assert.ErrorAs(t, err, &bad)
}

func TestOpenAIProvider_LengthIsTruncation(t *testing.T) {
	p := newOpenAITest(t, jsonHandler(http.StatusOK, chatCompletion(`{"headline":`, "length")), true)

	_, err := p.Generate(context.Background(), Prompt("", "x", briefingSchema, 3))
	var truncated *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &truncated)
}

func TestNewOpenRouterProvider(t *testing.T) {
	p, err := NewOpenRouterProvider(ProviderConfig{APIKey: "sk-or", Model: "openai/gpt-4o-mini"})
	require.NoError(t, err)
	assert.Equal(t, "openai/gpt-4o-mini", p.ModelID())

	_, err = NewOpenRouterProvider(ProviderConfig{Model: "x"})
	assert.Error(t, err)
}

func TestGeminiSchemaConversion(t *testing.T) {
	gs := toGeminiSchema(map[string]any{
		"type":        "object",
		"description": "briefing",
		"properties": map[string]any{
			"headline": map[string]any{"type": "string"},
			"tone":     map[string]any{"type": "string", "enum": []any{"calm", "fierce"}},
			"quests":   map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
			"mystery":  map[string]any{"type": "tuple"},
		},
		"required": []string{"headline"},
	})

	assert.Equal(t, "OBJECT", string(gs.Type))
	assert.Equal(t, "briefing", gs.Description)
	assert.Len(t, gs.Properties, 4)
	assert.Equal(t, []string{"calm", "fierce"}, gs.Properties["tone"].Enum)
	assert.Equal(t, "INTEGER", string(gs.Properties["quests"].Items.Type))
	assert.Equal(t, "STRING", string(gs.Properties["mystery"].Type), "unknown types fall back to string")
	assert.Equal(t, []string{"headline"}, gs.Required)
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		in      string
		aliases map[string]string
		want    string
	}{
		{"claude-haiku", anthropicAliases, "claude-haiku-4-5-20251001"},
		{"gemini-flash", geminiAliases, "gemini-2.5-flash"},
		{"gemini-2.0-flash", geminiAliases, "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.in, tt.aliases); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMock(t *testing.T) {
	m := NewMock(JSONReply(map[string]string{"headline": "a", "message": "b"}))

	resp, err := m.Generate(context.Background(), Prompt("", "first", briefingSchema, 10))
	require.NoError(t, err)
	assert.JSONEq(t, `{"headline":"a","message":"b"}`, string(resp.Content))

	_, err = m.Generate(context.Background(), Prompt("", "second", nil, 10))
	var down *ErrProviderUnavailable
	assert.ErrorAs(t, err, &down)

	m.Push(MockReply{Err: errors.New("boom")})
	_, err = m.Generate(context.Background(), Request{})
	assert.EqualError(t, err, "boom")
	assert.Len(t, m.Requests(), 3)
}

func TestDecode(t *testing.T) {
	_, err := Decode[map[string]int](&Response{Content: json.RawMessage(`[1]`)})
	var bad *ErrInvalidResponse
	assert.ErrorAs(t, err, &bad)

	_, err = Decode[int](nil)
	assert.Error(t, err)
}
