package registry

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"go.miragespace.co/chordring/cmd/internal/lifecycle"
	"go.miragespace.co/chordring/cmd/internal/logging"
	"go.miragespace.co/chordring/registry"
	rpcImpl "go.miragespace.co/chordring/rpc"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func Generate() *cli.Command {
	return &cli.Command{
		Name:  "registry",
		Usage: "start the registry that hands out node identifiers",
		Description: `The registry assigns an identifier to every node that registers and tells it which node to join through.
	Clients ask the registry for the list of nodes to pick an entry point.

	By default the node list lives in memory. Provide --db to keep it in a SQLite database across restarts.`,
		ArgsUsage: " ",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "listen-addr",
				Aliases:  []string{"listen"},
				Value:    "127.0.0.1:50000",
				Usage:    "Address and port to accept node and client connections on",
				Category: "Network Options",
			},
			&cli.StringFlag{
				Name:     "listen-http",
				Usage:    "Address and port to serve /nodes and /graph on. Absent of this flag disables the endpoint",
				Category: "Network Options",
			},
			&cli.PathFlag{
				Name:     "db",
				Usage:    "Path to a SQLite database for persisting registered nodes",
				EnvVars:  []string{"REGISTRY_DB"},
				Category: "Registry Options",
			},
			logging.SentryFlag,
		},
		Action: cmdRegistry,
	}
}

func getDirectory(ctx *cli.Context, logger *zap.Logger) (registry.Directory, error) {
	if !ctx.IsSet("db") {
		logger.Info("Using memory directory, registered nodes are lost on restart")
		return registry.NewMemoryDirectory(), nil
	}

	dbPath := ctx.Path("db")
	cacheDir := filepath.Join(filepath.Dir(dbPath), ".wazero")
	if err := os.MkdirAll(cacheDir, 0750); err != nil {
		return nil, fmt.Errorf("creating runtime cache directory: %w", err)
	}
	if err := registry.InitializeSQLite(cacheDir); err != nil {
		return nil, fmt.Errorf("initializing sqlite runtime: %w", err)
	}
	dir, err := registry.NewSQLiteDirectory(logger.Named("sqlite"), dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite directory: %w", err)
	}
	logger.Info("Using SQLite directory", zap.String("db", dbPath))
	return dir, nil
}

func cmdRegistry(ctx *cli.Context) error {
	logger, err := logging.FromContext(ctx)
	if err != nil {
		return err
	}
	logger, flush, err := logging.WithSentry(ctx, logger.Named("registry"))
	if err != nil {
		return err
	}
	defer flush()

	dir, err := getDirectory(ctx, logger)
	if err != nil {
		return err
	}
	defer dir.Close()

	manager := registry.NewManager(registry.ManagerConfig{
		Logger:    logger.With(zap.String("component", "manager")),
		Directory: dir,
	})

	listener, err := net.Listen("tcp", ctx.String("listen-addr"))
	if err != nil {
		return fmt.Errorf("error setting up registry listener: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx.Context)
	defer cancel()

	g, gCtx := errgroup.WithContext(runCtx)

	rpcServer := &rpcImpl.Server{
		Logger: logger.Named("rpc"),
		Handler: (&registry.Server{
			Logger:   logger.With(zap.String("component", "rpc")),
			Registry: manager,
		}).Handler(),
	}
	g.Go(func() error {
		return rpcServer.Serve(gCtx, listener)
	})

	if err := lifecycle.ServeHTTP(gCtx, g, logger, ctx.String("listen-http"), manager.HTTPHandler()); err != nil {
		cancel()
		g.Wait()
		return fmt.Errorf("error setting up http listener: %w", err)
	}

	lifecycle.HandleSignals(gCtx, g, logger, cancel)

	logger.Info("Registry started", zap.String("listen", listener.Addr().String()))

	return g.Wait()
}
