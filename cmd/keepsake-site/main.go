package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/replicate/keepsake-site/cmd/keepsake-site/commands"
	"github.com/replicate/keepsake-site/internal/foundation/errors"
	"github.com/replicate/keepsake-site/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := &commands.Global{}

	parser := kong.Must(cli,
		kong.Name("keepsake-site"),
		kong.Description("Render, serve, preview and export the Keepsake homepage."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)
	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		os.Exit(errors.NewCLIErrorAdapter(cli.Verbose, nil).Report(os.Stderr, err))
	}
	if err := ctx.Run(global, cli); err != nil {
		os.Exit(errors.NewCLIErrorAdapter(cli.Verbose, global.Logger).Report(os.Stderr, err))
	}
}
