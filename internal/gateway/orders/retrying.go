package order

import (
	"context"
	"errors"
	"net"
	"time"

	"service-dispatch/internal/logx"
)

type gateway interface {
	GetByID(context.Context, string) (*Order, error)
}

type counter interface {
	Inc()
}

// RetryConfig describes the RetryingGateway behavior.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingGateway decorates an orders gateway with bounded retries and
// exponential backoff.
type RetryingGateway struct {
	next    gateway
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingGateway wraps next; a nil next propagates as nil so a
// disabled gateway stays disabled.
func NewRetryingGateway(next gateway, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingGateway {
	if next == nil || (isNilGateway(next)) {
		return nil
	}
	return &RetryingGateway{next: next, logger: logger, retries: retries, cfg: cfg}
}

func isNilGateway(g gateway) bool {
	hg, ok := g.(*HTTPGateway)
	return ok && hg == nil
}

// GetByID fetches an order, retrying transient failures.
func (g *RetryingGateway) GetByID(ctx context.Context, id string) (*Order, error) {
	var lastErr error
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		ord, err := g.next.GetByID(ctx, id)
		if err == nil {
			return ord, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("orders gateway retry",
			logx.String("method", "GetByID"),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Any("err", err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return nil, lastErr
}

// isRetryable treats transport errors, timeouts and 5xx answers as
// transient.
func isRetryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= 500
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
