package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"snowday/internal/domain/entity"
	"snowday/internal/domain/repository"
	"snowday/internal/logger"
)

// ResilientProvider retries a primary model on transient failures and then
// falls back to a secondary model once. The whole call shares one timeout.
type ResilientProvider struct {
	primary  repository.AIProvider
	fallback repository.AIProvider
	attempts int
	delay    time.Duration
	maxDelay time.Duration
	timeout  time.Duration
	log      logger.Logger
}

func NewResilientProvider(primary, fallback repository.AIProvider, timeout time.Duration, log logger.Logger) *ResilientProvider {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ResilientProvider{
		primary:  primary,
		fallback: fallback,
		attempts: 3,
		delay:    500 * time.Millisecond,
		maxDelay: 4 * time.Second,
		timeout:  timeout,
		log:      log.With(map[string]interface{}{"component": "resilient_provider"}),
	}
}

func (r *ResilientProvider) Generate(ctx context.Context, prompt string) (*entity.AIResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, primaryErr := r.generateWithRetry(ctx, prompt)
	if primaryErr == nil {
		return resp, nil
	}
	if r.fallback == nil {
		return nil, fmt.Errorf("primary model failed: %w", primaryErr)
	}

	r.log.WithError(primaryErr).Warn("primary model gave up, trying fallback", nil)

	resp, err := r.fallback.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("both primary and fallback failed: %w", errors.Join(primaryErr, err))
	}
	if resp.Metadata == nil {
		resp.Metadata = map[string]any{}
	}
	resp.Metadata["fallback_used"] = true
	return resp, nil
}

func (r *ResilientProvider) generateWithRetry(ctx context.Context, prompt string) (*entity.AIResponse, error) {
	var err error
	for n := 1; ; n++ {
		var resp *entity.AIResponse
		if resp, err = r.primary.Generate(ctx, prompt); err == nil {
			return resp, nil
		}
		if n >= r.attempts || !transient(err) {
			return nil, err
		}

		wait := r.backoff(n)
		r.log.WithError(err).Debug("retrying primary model", map[string]interface{}{
			"attempt": n,
			"wait_ms": wait.Milliseconds(),
		})

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, errors.Join(err, ctx.Err())
		case <-timer.C:
		}
	}
}

// transient reports whether another attempt at the same model could succeed.
func transient(err error) bool {
	return errors.Is(err, entity.ErrTransientAI) || errors.Is(err, context.DeadlineExceeded)
}

// backoff doubles the delay per attempt up to maxDelay and adds up to 20% jitter.
func (r *ResilientProvider) backoff(attempt int) time.Duration {
	d := r.delay << (attempt - 1)
	if d <= 0 || d > r.maxDelay {
		d = r.maxDelay
	}
	return d + time.Duration(rand.Int63n(int64(d)/5+1))
}
