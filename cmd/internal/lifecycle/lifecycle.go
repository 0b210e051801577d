package lifecycle

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.miragespace.co/chordring/util"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

// HandleSignals cancels the group via cancel once SIGINT or SIGTERM is received.
func HandleSignals(ctx context.Context, g *errgroup.Group, logger *zap.Logger, cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	g.Go(func() error {
		defer signal.Stop(sigs)
		select {
		case sig := <-sigs:
			logger.Info("received signal to stop", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
		return nil
	})
}

// ServeHTTP serves handler on addr until ctx is done. An empty addr is a no-op.
func ServeHTTP(ctx context.Context, g *errgroup.Group, logger *zap.Logger, addr string, handler http.Handler) error {
	if addr == "" {
		return nil
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		ReadHeaderTimeout: time.Second * 5,
		Handler:           handler,
		ErrorLog:          util.StdLogger(logger, "httpServer", zapcore.WarnLevel),
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	logger.Info("Serving HTTP", zap.String("listen", listener.Addr().String()))

	g.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return srv.Close()
	})

	return nil
}
