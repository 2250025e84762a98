// Package retry runs backend operations under a fixed exponential backoff policy.
package retry

import (
	"context"
	"log/slog"
	"time"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/errclass"
)

// Policy is fixed per deployment.
type Policy struct {
	MaxRetries        int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
}

var DefaultPolicy = Policy{
	MaxRetries:        3,
	InitialDelay:      500 * time.Millisecond,
	MaxDelay:          5 * time.Second,
	BackoffMultiplier: 2.0,
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Retrier holds the policy and its sinks. It keeps no per-call state and is safe
// for concurrent use.
type Retrier struct {
	policy    Policy
	sleep     Sleeper
	retryable func(error) bool
	log       *slog.Logger
	metrics   *Metrics
}

type Option func(*Retrier)

func WithSleeper(s Sleeper) Option {
	return func(r *Retrier) { r.sleep = s }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Retrier) { r.log = l }
}

func WithMetrics(m *Metrics) Option {
	return func(r *Retrier) { r.metrics = m }
}

// WithClassifier overrides the retryability decision. Defaults to errclass.IsRetryable.
func WithClassifier(fn func(error) bool) Option {
	return func(r *Retrier) { r.retryable = fn }
}

func New(p Policy, opts ...Option) *Retrier {
	if p.MaxRetries < 1 {
		p.MaxRetries = 1
	}
	if p.BackoffMultiplier <= 1 {
		p.BackoffMultiplier = DefaultPolicy.BackoffMultiplier
	}
	if p.MaxDelay < p.InitialDelay {
		p.MaxDelay = p.InitialDelay
	}

	r := &Retrier{
		policy:    p,
		sleep:     sleepContext,
		retryable: errclass.IsRetryable,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Retrier) Policy() Policy {
	return r.policy
}

// Do runs fn until it succeeds, fails with a non-retryable error, or MaxRetries
// attempts have been made. The returned error is always the one fn produced,
// except when ctx ends during a backoff sleep.
func Do[T any](ctx context.Context, r *Retrier, op string, fn func(context.Context) (T, error)) (T, error) {
	start := time.Now()
	delay := r.policy.InitialDelay

	for attempt := 1; ; attempt++ {
		r.metrics.attempt(op)

		result, err := fn(ctx)
		if err == nil {
			r.metrics.finish(op, outcomeSuccess, start)
			return result, nil
		}

		if !r.retryable(err) {
			r.log.Debug("operation failed with non-retryable error", "op", op, "attempt", attempt, "error", err)
			r.metrics.finish(op, outcomeFatal, start)
			return result, err
		}

		if attempt >= r.policy.MaxRetries {
			r.log.Warn("operation failed, retries exhausted", "op", op, "attempts", attempt, "error", err)
			r.metrics.finish(op, outcomeExhausted, start)
			return result, err
		}

		r.log.Debug("retrying operation", "op", op, "attempt", attempt, "delay", delay, "error", err)
		r.metrics.retry(op)

		if sleepErr := r.sleep(ctx, delay); sleepErr != nil {
			r.metrics.finish(op, outcomeCanceled, start)
			var zero T
			return zero, sleepErr
		}

		delay = nextDelay(delay, r.policy)
	}
}

func nextDelay(current time.Duration, p Policy) time.Duration {
	next := time.Duration(float64(current) * p.BackoffMultiplier)
	if next > p.MaxDelay || next < current {
		return p.MaxDelay
	}
	return next
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
