package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrRateLimit is a 429 from the provider.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry in %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse means the output was not valid JSON for the schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid model output: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers outages, network failures and anything
// else the provider could not serve.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "provider unavailable"
	}
	return fmt.Sprintf("provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means structured output was cut off.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "model output truncated at max tokens"
}

// fromStatus maps an HTTP status from any provider SDK to a typed error.
func fromStatus(status int, retryAfter time.Duration, err error) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{RetryAfter: retryAfter, Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// parseRetryAfter reads a Retry-After header given in seconds.
func parseRetryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// retryable reports whether err is worth another attempt. Invalid output
// is reported separately so callers can cap how often it is retried.
func retryable(err error) (retry bool, invalid bool) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false, false
	}
	var truncated *ErrMaxTokensExceeded
	if errors.As(err, &truncated) {
		return false, false
	}
	var bad *ErrInvalidResponse
	if errors.As(err, &bad) {
		return true, true
	}
	return true, false
}
