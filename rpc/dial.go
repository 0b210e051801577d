package rpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.miragespace.co/chordring/spec/ring"
	"go.miragespace.co/chordring/timing"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
)

// Dialer connects to peers, retrying a fixed number of times with a fixed delay.
type Dialer struct {
	Logger   *zap.Logger
	Attempts uint
	Delay    time.Duration
}

func (d *Dialer) attempts() uint {
	if d.Attempts == 0 {
		return timing.ConnectAttempts
	}
	return d.Attempts
}

func (d *Dialer) delay() time.Duration {
	if d.Delay == 0 {
		return timing.ConnectDelay
	}
	return d.Delay
}

func (d *Dialer) Dial(ctx context.Context, addr string) (*Client, error) {
	client, err := retry.DoWithData(func() (*Client, error) {
		dialCtx, cancel := context.WithTimeout(ctx, timing.DialTimeout)
		defer cancel()

		var nd net.Dialer
		conn, err := nd.DialContext(dialCtx, "tcp", addr)
		if err != nil {
			return nil, err
		}
		return NewClient(d.Logger, conn)
	},
		retry.Context(ctx),
		retry.Attempts(d.attempts()),
		retry.Delay(d.delay()),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			d.Logger.Info("Retrying connection", zap.String("addr", addr), zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w %s after %d attempts: %v", ring.ErrConnectionFailed, addr, d.attempts(), err)
	}
	return client, nil
}
