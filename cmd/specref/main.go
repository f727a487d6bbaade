package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/specref/cmd/specref/commands"
	"git.home.luguber.info/inful/specref/internal/foundation/errors"
	"git.home.luguber.info/inful/specref/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli := &commands.CLI{}
	global := &commands.Global{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
	parser, err := commands.NewParser(ctx, cli, global, kong.Vars{"version": version.String()})
	if err != nil {
		panic(err)
	}

	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = kctx.Run()
	stop()
	if err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
	}
}
