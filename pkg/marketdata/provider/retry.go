package provider

import (
	"context"
	"net/http"
	"time"

	"github.com/rxtech-lab/argo-features/pkg/errors"
)

// Action is what the caller should do after an attempt.
type Action int

const (
	// ActionDone means the response is usable.
	ActionDone Action = iota
	// ActionRetry means wait Decision.Wait and try again.
	ActionRetry
	// ActionFail means stop with Decision.Err.
	ActionFail
)

// Decision is the outcome of RetryPolicy.Next.
type Decision struct {
	Action Action
	Wait   time.Duration
	Err    error
}

// MaxRetriesLimit is the largest MaxRetries a policy accepts.
const MaxRetriesLimit = 10

// maxBackoffShift caps the exponent of Backoff so the wait cannot overflow.
const maxBackoffShift = MaxRetriesLimit - 1

// RetryPolicy bounds the attempts made against a rate limited API.
// Only HTTP 429 is retried.
type RetryPolicy struct {
	MaxRetries int           `yaml:"max_retries" validate:"gte=1,lte=10"`
	BaseDelay  time.Duration `yaml:"base_delay" validate:"gte=0"`
}

// DefaultRetryPolicy allows three attempts with 5s and 10s waits between them.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 3,
		BaseDelay:  5 * time.Second,
	}
}

// Backoff returns BaseDelay * 2^attempt. The exponent is clamped to
// [0, MaxRetriesLimit-1].
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	shift := min(max(attempt, 0), maxBackoffShift)

	return p.BaseDelay * time.Duration(1<<shift)
}

// Next decides what follows attempt (zero based) ending with status. body is
// only used to describe a failure.
func (p RetryPolicy) Next(attempt int, status int, body string) Decision {
	switch {
	case status == http.StatusOK:
		return Decision{Action: ActionDone}
	case status == http.StatusTooManyRequests && attempt < p.MaxRetries-1:
		return Decision{Action: ActionRetry, Wait: p.Backoff(attempt)}
	case status == http.StatusTooManyRequests:
		return Decision{
			Action: ActionFail,
			Err:    errors.Newf(errors.ErrCodeRateLimited, "rate limited after %d attempts, try again later", attempt+1),
		}
	default:
		return Decision{
			Action: ActionFail,
			Err:    errors.Wrap(errors.ErrCodeAPIError, "request failed", errors.NewAPIError(status, body)),
		}
	}
}

// Sleeper waits between attempts.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type timerSleeper struct{}

// NewTimerSleeper returns a Sleeper backed by a timer. It returns early with
// the context error when ctx is cancelled.
func NewTimerSleeper() Sleeper {
	return timerSleeper{}
}

func (timerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Attempt performs one request and reports its status and body. A non-nil
// error is a transport failure and ends the loop.
type Attempt func(ctx context.Context) (status int, body []byte, err error)

// OnRetry is called before each wait.
type OnRetry func(attempt int, wait time.Duration)

// Execute runs attempt until the policy returns Done or Fail.
func Execute(ctx context.Context, policy RetryPolicy, sleeper Sleeper, attempt Attempt, onRetry OnRetry) ([]byte, error) {
	for n := 0; ; n++ {
		status, body, err := attempt(ctx)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "request failed", err)
		}

		snippet := ""
		if status != http.StatusOK {
			snippet = bodySnippet(body)
		}

		decision := policy.Next(n, status, snippet)

		switch decision.Action {
		case ActionDone:
			return body, nil
		case ActionFail:
			return nil, decision.Err
		case ActionRetry:
			if onRetry != nil {
				onRetry(n, decision.Wait)
			}

			if err := sleeper.Sleep(ctx, decision.Wait); err != nil {
				return nil, errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "retry wait interrupted", err)
			}
		}
	}
}
