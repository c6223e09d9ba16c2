package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/linkfix/cmd/linkfix/commands"
	"git.home.luguber.info/inful/linkfix/internal/foundation/errors"
	"git.home.luguber.info/inful/linkfix/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli commands.CLI
	parser := kong.Parse(&cli,
		kong.Name("linkfix"),
		kong.Description("Rewrite malformed melonJS blob links across a documentation tree."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	if err := parser.Run(&commands.Global{Logger: slog.Default()}); err != nil {
		stop()
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
