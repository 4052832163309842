package addresses

import (
	"context"
	"errors"
	"net"
	"time"

	"freight-broker-service/internal/domain"
	"freight-broker-service/internal/logx"
)

type gateway interface {
	DefaultAddresses(ctx context.Context, shipperID int64) (domain.Address, domain.Address, error)
}

type counter interface {
	Inc()
}

// RetryConfig describes the retry behavior of RetryingGateway.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingGateway decorates an address gateway with bounded
// exponential-backoff retries on transient failures.
type RetryingGateway struct {
	next    gateway
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingGateway wraps next; returns nil if next is nil.
func NewRetryingGateway(next gateway, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingGateway {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &RetryingGateway{next: next, logger: logger, retries: retries, cfg: cfg}
}

// DefaultAddresses fetches the shipper's addresses, retrying transient
// failures up to the configured attempt budget.
func (g *RetryingGateway) DefaultAddresses(ctx context.Context, shipperID int64) (domain.Address, domain.Address, error) {
	var lastErr error
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		pickUp, delivery, err := g.next.DefaultAddresses(ctx, shipperID)
		if err == nil {
			return pickUp, delivery, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("address gateway retry",
			logx.Int64("shipper_id", shipperID),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return domain.Address{}, domain.Address{}, lastErr
}

// isRetryable treats network errors and 5xx responses as transient.
func isRetryable(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var statusErr StatusError
	return errors.As(err, &statusErr) && statusErr.Code >= 500
}

// backoff computes the delay before the next attempt.
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
