package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// retryClass says whether a failed call may be repeated.
type retryClass int

const (
	retryNever retryClass = iota
	// retryOnce is for replies that failed validation: the model gets a
	// single second chance.
	retryOnce
	retryAlways
)

// classify sorts a Generate error into a retryClass.
func classify(err error) retryClass {
	var (
		maxTok  *ErrMaxTokensExceeded
		invalid *ErrInvalidResponse
		limited *ErrRateLimit
		unavail *ErrProviderUnavailable
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return retryNever
	case errors.As(err, &maxTok):
		return retryNever
	case errors.As(err, &invalid):
		return retryOnce
	case errors.As(err, &limited):
		return retryAlways
	case errors.As(err, &unavail):
		// 4xx means a bad key or model; asking again will not help.
		if unavail.StatusCode != 0 && unavail.StatusCode < 500 {
			return retryNever
		}
	}
	return retryAlways
}

// RetryProvider repeats transient failures with exponential backoff.
// MaxAttempts counts the first call, so the default of 1 never retries.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	usedOnce := false

	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if attempt >= attempts {
			return nil, err
		}

		switch classify(err) {
		case retryNever:
			return nil, err
		case retryOnce:
			if usedOnce {
				return nil, err
			}
			usedOnce = true
		}

		timer := time.NewTimer(r.wait(attempt, err))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// wait returns the pause after the given failed attempt (1-based). A
// vendor Retry-After wins over the computed backoff.
func (r *RetryProvider) wait(attempt int, err error) time.Duration {
	var limited *ErrRateLimit
	if errors.As(err, &limited) && limited.RetryAfter > 0 {
		return limited.RetryAfter
	}

	d := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt-1))
	d = math.Min(d, float64(r.config.MaxWait))
	jitter := 0.8 + 0.4*rand.Float64()
	return time.Duration(d * jitter)
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// Name forwards the vendor name of the wrapped provider.
func (r *RetryProvider) Name() string {
	return providerName(r.inner)
}
