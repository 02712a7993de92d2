package health

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Checker reports whether some dependency of the application is usable.
type Checker interface {
	Check(ctx context.Context) error
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingChecker is healthy while its target answers a ping within timeout, e.g. a *sql.DB.
type PingChecker struct {
	name    string
	target  Pinger
	timeout time.Duration
}

func NewPingChecker(name string, target Pinger, timeout time.Duration) *PingChecker {
	return &PingChecker{name: name, target: target, timeout: timeout}
}

func (c *PingChecker) Check(ctx context.Context) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return errors.Wrapf(c.target.PingContext(ctx), "%s is unreachable", c.name)
}
