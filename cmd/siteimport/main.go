package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/siteimport/cmd/siteimport/commands"
	"git.home.luguber.info/inful/siteimport/internal/foundation/errors"
	"git.home.luguber.info/inful/siteimport/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("siteimport"),
		kong.Description("Import blog exports into a static site source tree."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	global := &commands.Global{Ctx: ctx, Out: os.Stdout}
	err := parser.Run(global, cli)

	adapter := errors.NewCLIErrorAdapter(cli.Verbose, nil)
	if code := adapter.HandleError(err); code != 0 {
		cancel()
		os.Exit(code)
	}
}
