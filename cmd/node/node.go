package node

import (
	"context"
	"fmt"
	"net"

	"go.miragespace.co/chordring/chord"
	"go.miragespace.co/chordring/cmd/internal/lifecycle"
	"go.miragespace.co/chordring/cmd/internal/logging"
	"go.miragespace.co/chordring/kv/memory"
	"go.miragespace.co/chordring/registry"
	rpcImpl "go.miragespace.co/chordring/rpc"
	"go.miragespace.co/chordring/rtt"
	"go.miragespace.co/chordring/spec/protocol"
	"go.miragespace.co/chordring/timing"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func Generate() *cli.Command {
	return &cli.Command{
		Name:  "node",
		Usage: "start a node and join it to the ring",
		Description: `The node registers its advertise address with the registry, which hands back an identifier and the node to join through.
	If the registry has no other node, the node starts a new ring on its own.

	Keys are stored in memory only. A node that fails to join exits with an error.`,
		ArgsUsage: " ",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "listen-addr",
				Aliases:  []string{"listen"},
				Value:    "127.0.0.1:50001",
				Usage:    "Address and port to accept connections from other nodes and clients on",
				Category: "Network Options",
			},
			&cli.StringFlag{
				Name:        "advertise-addr",
				Aliases:     []string{"advertise"},
				DefaultText: "same as listen-addr",
				Usage: `Address and port other nodes and clients use to reach this node.
			Note that the registry derives the identifier of the node from this address`,
				Category: "Network Options",
			},
			&cli.StringFlag{
				Name:     "listen-http",
				Usage:    "Address and port to serve node statistics on. Absent of this flag disables the endpoint",
				Category: "Network Options",
			},
			&cli.StringFlag{
				Name:     "registry",
				Value:    "127.0.0.1:50000",
				EnvVars:  []string{"REGISTRY_ADDR"},
				Usage:    "Address and port of the registry",
				Category: "Ring Options",
			},
			&cli.UintFlag{
				Name:     "connect-attempts",
				Value:    timing.ConnectAttempts,
				Usage:    "Number of attempts to connect to the registry or another node before giving up",
				Category: "Ring Options",
			},
			&cli.DurationFlag{
				Name:     "connect-delay",
				Value:    timing.ConnectDelay,
				Usage:    "Delay between connection attempts",
				Category: "Ring Options",
			},
			logging.SentryFlag,
		},
		Action: cmdNode,
	}
}

func cmdNode(ctx *cli.Context) error {
	logger, err := logging.FromContext(ctx)
	if err != nil {
		return err
	}
	logger, flush, err := logging.WithSentry(ctx, logger.Named("node"))
	if err != nil {
		return err
	}
	defer flush()

	listener, err := net.Listen("tcp", ctx.String("listen-addr"))
	if err != nil {
		return fmt.Errorf("error setting up node listener: %w", err)
	}

	advertise := listener.Addr().String()
	if ctx.IsSet("advertise-addr") {
		advertise = ctx.String("advertise-addr")
	}
	if _, _, err := net.SplitHostPort(advertise); err != nil {
		listener.Close()
		return fmt.Errorf("error parsing advertise address: %w", err)
	}

	dialer := &rpcImpl.Dialer{
		Logger:   logger.Named("rpc"),
		Attempts: ctx.Uint("connect-attempts"),
		Delay:    ctx.Duration("connect-delay"),
	}

	regRPC, err := dialer.Dial(ctx.Context, ctx.String("registry"))
	if err != nil {
		listener.Close()
		return fmt.Errorf("error connecting to registry: %w", err)
	}
	regClient := registry.NewClient(regRPC)
	defer regClient.Close()

	info, err := registry.Register(ctx.Context, logger, regClient, advertise)
	if err != nil {
		listener.Close()
		return fmt.Errorf("error registering with registry: %w", err)
	}

	identity := &protocol.Node{
		Id:      info.GetId(),
		Address: advertise,
	}
	logger = logger.With(zap.Uint64("node", identity.GetId()))
	logger.Info("Registered with registry", zap.Object("identity", identity), zap.Object("rendezvous", info.GetNeighbor()))

	local := chord.NewLocalNode(chord.NodeConfig{
		Logger:   logger.Named("chord"),
		Identity: identity,
		Store:    memory.New(),
		Factory:  chord.DialFactory(dialer),
		NodesRTT: rtt.NewHopLatency(20),
	})
	defer local.Stop()

	runCtx, cancel := context.WithCancel(ctx.Context)
	defer cancel()

	g, gCtx := errgroup.WithContext(runCtx)

	// the rendezvous calls back while we join, so serve first
	rpcServer := &rpcImpl.Server{
		Logger: logger.Named("rpc"),
		Handler: (&chord.Server{
			Logger:    logger.With(zap.String("component", "rpc")),
			LocalNode: local,
		}).Handler(),
	}
	g.Go(func() error {
		return rpcServer.Serve(gCtx, listener)
	})

	if err := lifecycle.ServeHTTP(gCtx, g, logger, ctx.String("listen-http"), local.StatsHandler()); err != nil {
		cancel()
		g.Wait()
		return fmt.Errorf("error setting up http listener: %w", err)
	}

	g.Go(func() error {
		if err := local.Join(gCtx, info.GetNeighbor()); err != nil {
			logger.Error("Failed to join ring", zap.Error(err))
			return fmt.Errorf("error joining ring: %w", err)
		}
		logger.Info("Node is active", zap.Int("keys", local.Store.Len()))
		return nil
	})

	lifecycle.HandleSignals(gCtx, g, logger, cancel)

	return g.Wait()
}
