package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hunter-system/hunter/internal/store"
)

// EventSink persists one record per provider call. store.EventRepo
// satisfies it.
type EventSink interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

type loggingProvider struct {
	inner    Provider
	provider string
	sink     EventSink
	logger   *zap.Logger
}

// WithLogging records every call to sink and logs failures. sink and
// logger may be nil.
func WithLogging(p Provider, providerName string, sink EventSink, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &loggingProvider{inner: p, provider: providerName, sink: sink, logger: logger}
}

func (l *loggingProvider) ModelID() string { return l.inner.ModelID() }

func (l *loggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	elapsed := time.Since(start)

	ev := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   elapsed.Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}

	fields := []zap.Field{
		zap.String("provider", ev.Provider),
		zap.String("model", ev.Model),
		zap.String("purpose", ev.Purpose),
		zap.Duration("latency", elapsed),
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
		l.logger.Warn("llm request failed", append(fields, zap.Error(err))...)
	} else {
		l.logger.Debug("llm request", append(fields, zap.Int("tokens", resp.Usage.Total()))...)
	}

	if l.sink != nil {
		// A failed write does not fail the call.
		if logErr := l.sink.AppendLLMRequest(context.WithoutCancel(ctx), ev); logErr != nil {
			l.logger.Warn("record llm request", zap.Error(logErr))
		}
	}
	return resp, err
}

// transcript renders a request for the event log.
func transcript(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}

type retryProvider struct {
	inner Provider
	cfg   RetryConfig
	sleep func(ctx context.Context, d time.Duration) error
}

// WithRetry retries transient failures with capped exponential backoff and
// jitter. Rate limits wait for the provider's hint when one is given.
// Invalid output is retried at most once.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Multiplier < 1 {
		cfg.Multiplier = 1
	}
	return &retryProvider{inner: p, cfg: cfg, sleep: sleepCtx}
}

func (r *retryProvider) ModelID() string { return r.inner.ModelID() }

func (r *retryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var (
		err            error
		invalidRetried bool
	)
	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		retry, invalid := retryable(err)
		if invalid {
			retry = !invalidRetried
			invalidRetried = true
		}
		if !retry || attempt == r.cfg.MaxAttempts-1 {
			return nil, err
		}
		if serr := r.sleep(ctx, r.wait(attempt, err)); serr != nil {
			return nil, serr
		}
	}
	return nil, err
}

func (r *retryProvider) wait(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	base := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt))
	if limit := float64(r.cfg.MaxWait); limit > 0 && base > limit {
		base = limit
	}
	// +/-20% jitter
	d := base * (0.8 + 0.4*rand.Float64())
	return time.Duration(max(0, d))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
