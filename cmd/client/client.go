package client

import (
	"fmt"
	"os"
	"strings"

	"go.miragespace.co/chordring/cmd/internal/logging"

	"github.com/urfave/cli/v2"
)

func Generate() *cli.Command {
	return &cli.Command{
		Name:  "client",
		Usage: "query the ring interactively or with a single command",
		Description: `Without a subcommand, the client starts a prompt accepting SET <key> <value>, GET <key>, DELETE <key> and EXIT.
	Every command is sent to a node picked at random from the registry, unless --nearest is set.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "registry",
				Value:    "127.0.0.1:50000",
				EnvVars:  []string{"REGISTRY_ADDR"},
				Usage:    "Address and port of the registry",
				Category: "Client Options",
			},
			&cli.BoolFlag{
				Name:     "nearest",
				Usage:    "Send every command to the node expected to own the key instead of a random node",
				Category: "Client Options",
			},
		},
		Action: withSession(func(ctx *cli.Context, s *session) error {
			return s.runInteractive(ctx.Context)
		}),
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "print the value stored under key",
				ArgsUsage: "<key>",
				Action: withSession(func(ctx *cli.Context, s *session) error {
					if ctx.NArg() != 1 {
						return fmt.Errorf("expected exactly one key")
					}
					return s.get(ctx.Context, ctx.Args().First())
				}),
			},
			{
				Name:      "set",
				Usage:     "store value under key",
				ArgsUsage: "<key> <value>",
				Action: withSession(func(ctx *cli.Context, s *session) error {
					if ctx.NArg() < 2 {
						return fmt.Errorf("expected a key and a value")
					}
					return s.set(ctx.Context, ctx.Args().First(), strings.Join(ctx.Args().Tail(), " "), true)
				}),
			},
			{
				Name:      "delete",
				Usage:     "remove key and print its value",
				ArgsUsage: "<key>",
				Action: withSession(func(ctx *cli.Context, s *session) error {
					if ctx.NArg() != 1 {
						return fmt.Errorf("expected exactly one key")
					}
					return s.delete(ctx.Context, ctx.Args().First())
				}),
			},
			{
				Name:  "nodes",
				Usage: "list the nodes known to the registry",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "yaml",
						Usage: "print the list as yaml",
					},
				},
				Action: withSession(func(ctx *cli.Context, s *session) error {
					return s.printNodes(ctx.Context, ctx.Bool("yaml"))
				}),
			},
		},
	}
}

func withSession(fn func(*cli.Context, *session) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		logger, err := logging.FromContext(ctx)
		if err != nil {
			return err
		}
		s, err := newSession(ctx.Context, sessionConfig{
			Logger:   logger.Named("client"),
			Registry: ctx.String("registry"),
			Nearest:  ctx.Bool("nearest"),
			Out:      os.Stdout,
		})
		if err != nil {
			return err
		}
		defer s.Close()

		return fn(ctx, s)
	}
}
