package chordring

import (
	"fmt"
	"runtime"

	"go.miragespace.co/chordring/cmd/client"
	"go.miragespace.co/chordring/cmd/node"
	"go.miragespace.co/chordring/cmd/registry"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"moul.io/zapfilter"
)

var (
	Build = "head"
)

var (
	App = cli.App{
		Name:            "chordring",
		Usage:           fmt.Sprintf("build for %s on %s", runtime.GOARCH, runtime.GOOS),
		Version:         Build,
		HideHelpCommand: true,
		Description:     "a key-value store spread over a ring of nodes, with a registry to find your way in",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Value: false,
				Usage: "enable verbose logging",
			},
			&cli.StringFlag{
				Name:    "log-filter",
				Value:   "*:*",
				EnvVars: []string{"LOG_FILTER"},
				Usage: `Filter log entries by level and logger name, for example "info+:*" or "debug:* -*:rpc*".
			See moul.io/zapfilter for the rule syntax`,
			},
		},
		Commands: []*cli.Command{
			registry.Generate(),
			node.Generate(),
			client.Generate(),
		},
		Before: ConfigLogger,
	}
)

func ConfigLogger(ctx *cli.Context) error {
	var config zap.Config
	if ctx.Bool("verbose") {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
	}
	// Redirect everything to stderr
	config.OutputPaths = []string{"stderr"}
	logger, err := config.Build()
	if err != nil {
		return err
	}

	rules, err := zapfilter.ParseRules(ctx.String("log-filter"))
	if err != nil {
		return fmt.Errorf("parsing log filter: %w", err)
	}
	logger = zap.New(zapfilter.NewFilteringCore(logger.Core(), rules), zap.AddCaller())

	_, err = zap.RedirectStdLogAt(logger.With(zap.String("subsystem", "unknown")), zapcore.InfoLevel)
	if err != nil {
		return fmt.Errorf("redirecting stdlog output: %w", err)
	}
	ctx.App.Metadata["logger"] = logger

	return nil
}
