package logging

import (
	"fmt"
	"time"

	"github.com/TheZeroSlave/zapsentry"
	"github.com/getsentry/sentry-go"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var SentryFlag = &cli.StringFlag{
	Name:        "sentry",
	DefaultText: "https://public@sentry.example.com/1",
	Usage:       "Sentry DSN for error monitoring. Alternatively, you can set the DSN via the environment variable SENTRY_DSN",
	EnvVars:     []string{"SENTRY_DSN"},
	Category:    "Observability Options",
}

// FromContext returns the logger configured by the app's Before hook.
func FromContext(ctx *cli.Context) (*zap.Logger, error) {
	logger, ok := ctx.App.Metadata["logger"].(*zap.Logger)
	if !ok || logger == nil {
		return nil, fmt.Errorf("unable to obtain logger from app context")
	}
	return logger, nil
}

func modifyToSentryLogger(logger *zap.Logger, client *sentry.Client) *zap.Logger {
	cfg := zapsentry.Configuration{
		Level:             zapcore.WarnLevel,
		EnableBreadcrumbs: true,
		BreadcrumbLevel:   zapcore.InfoLevel,
	}
	core, err := zapsentry.NewCore(cfg, zapsentry.NewSentryClientFromClient(client))
	if err != nil {
		logger.Warn("failed to init zap", zap.Error(err))
		return logger
	}

	return zapsentry.AttachCoreToLogger(core, logger)
}

// WithSentry attaches Sentry reporting to logger when the sentry flag is set.
// The returned function flushes pending events and must be called before exit.
func WithSentry(ctx *cli.Context, logger *zap.Logger) (*zap.Logger, func(), error) {
	if !ctx.IsSet(SentryFlag.Name) {
		return logger, func() {}, nil
	}
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:     ctx.String(SentryFlag.Name),
		Release: ctx.App.Version,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("initializing sentry client: %w", err)
	}
	logger = modifyToSentryLogger(logger, client).With(zapsentry.NewScope())
	return logger, func() {
		logger.Sync()
		client.Flush(time.Second * 2)
	}, nil
}
