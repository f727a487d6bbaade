// Package retry provides backoff policies for transient failures such as a
// LibreOffice conversion losing a race for its profile lock.
package retry

import (
	"context"
	"time"

	"git.home.luguber.info/inful/specref/internal/config"
	"git.home.luguber.info/inful/specref/internal/foundation/errors"
)

// Policy encapsulates retry/backoff settings. The zero Policy never retries.
type Policy struct {
	Mode       config.RetryBackoffMode // fixed|linear|exponential
	Initial    time.Duration           // base delay
	Max        time.Duration           // cap for growth
	MaxRetries int                     // retries after the first failure
}

// DefaultPolicy returns linear backoff from 1s, capped at 30s, with 2 retries.
func DefaultPolicy() Policy {
	return Policy{
		Mode:       config.RetryBackoffLinear,
		Initial:    config.DefaultRetryInitial,
		Max:        config.DefaultRetryMax,
		MaxRetries: config.DefaultMaxRetries,
	}
}

// FromConfig builds a policy from converter retry settings; zero or invalid
// values fall back to defaults.
func FromConfig(rc config.RetryConfig) Policy {
	maxRetries := -1
	if rc.MaxRetries != nil {
		maxRetries = *rc.MaxRetries
	}
	return NewPolicy(rc.Backoff, rc.Initial, rc.Max, maxRetries)
}

// NewPolicy builds a policy from raw fields; zero/invalid values fall back to defaults.
func NewPolicy(mode config.RetryBackoffMode, initial, maxDuration time.Duration, maxRetries int) Policy {
	p := DefaultPolicy()
	if maxRetries >= 0 {
		p.MaxRetries = maxRetries
	}
	if initial > 0 {
		p.Initial = initial
	}
	if maxDuration > 0 {
		p.Max = maxDuration
	}
	switch mode {
	case config.RetryBackoffFixed, config.RetryBackoffLinear, config.RetryBackoffExponential:
		p.Mode = mode
	}
	if p.Initial > p.Max {
		p.Initial = p.Max
	}
	return p
}

// Delay returns the backoff delay for the given retry (1-based: first retry => 1).
func (p Policy) Delay(retryCount int) time.Duration {
	if retryCount <= 0 {
		return 0
	}
	var d time.Duration
	switch p.Mode {
	case config.RetryBackoffFixed:
		return p.Initial
	case config.RetryBackoffExponential:
		d = p.Initial
		for i := 1; i < retryCount && d < p.Max; i++ {
			d *= 2
		}
	default: // linear
		d = time.Duration(retryCount) * p.Initial
	}
	if d > p.Max {
		return p.Max
	}
	return d
}

// Validate ensures the policy can be applied.
func (p Policy) Validate() error {
	switch {
	case p.MaxRetries < 0:
		return errors.ValidationError("max retries cannot be negative").Build()
	case p.MaxRetries > 0 && p.Initial <= 0:
		return errors.ValidationError("initial delay must be positive").Build()
	case p.MaxRetries > 0 && p.Max <= 0:
		return errors.ValidationError("max delay must be positive").Build()
	}
	return nil
}

// Do calls fn until it succeeds, retryable reports false, the retries are
// used up or ctx is done. onRetry, if set, runs before each wait.
func (p Policy) Do(ctx context.Context, fn func(context.Context) error, retryable func(error) bool,
	onRetry func(attempt int, delay time.Duration, err error),
) error {
	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil || attempt >= p.MaxRetries || ctx.Err() != nil || (retryable != nil && !retryable(err)) {
			return err
		}

		delay := p.Delay(attempt + 1)
		if onRetry != nil {
			onRetry(attempt+1, delay, err)
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return err
		case <-t.C:
		}
	}
}

// Transient reports whether err is a non-fatal conversion failure.
func Transient(err error) bool {
	ce, ok := errors.AsClassified(err)
	return ok && ce.IsCategory(errors.CategoryConversion) && !ce.IsFatal()
}
