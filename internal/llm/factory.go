package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// New builds the configured provider wrapped as
// timeout -> retry -> logging -> provider, so every attempt is recorded.
// It returns (nil, nil) when no provider is selected.
func New(ctx context.Context, cfg Config, sink EventSink, logger *zap.Logger) (Provider, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	name := strings.ToLower(cfg.Provider)
	var (
		base Provider
		err  error
	)
	switch name {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderMock:
		base = NewMock()
	}
	if err != nil {
		return nil, fmt.Errorf("init %s provider: %w", name, err)
	}

	p := WithRetry(WithLogging(base, name, sink, logger), cfg.Retry)
	if cfg.Timeout > 0 {
		p = WithTimeout(p, cfg.Timeout)
	}
	return p, nil
}

type timeoutProvider struct {
	inner Provider
	d     time.Duration
}

// WithTimeout bounds each Generate call, retries included.
func WithTimeout(p Provider, d time.Duration) Provider {
	return &timeoutProvider{inner: p, d: d}
}

func (t *timeoutProvider) ModelID() string { return t.inner.ModelID() }

func (t *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.inner.Generate(ctx, req)
}
