package main

import (
	"context"
	"fmt"
	"os"

	"go.miragespace.co/chordring/cmd/chordring"
	"go.miragespace.co/chordring/util"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	util.PrettierHelpPrinter()

	if err := chordring.App.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
