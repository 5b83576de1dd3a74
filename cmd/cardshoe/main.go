package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/lox/cardshoe/internal/config"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Deck     DeckCmd          `cmd:"" help:"Manage deck templates"`
	Player   PlayerCmd        `cmd:"" help:"Manage players and their hands"`
	Game     GameCmd          `cmd:"" help:"Manage games, shoes and deals"`
	Simulate SimulateCmd      `cmd:"" help:"Deal out many shuffled shoes in parallel"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("cardshoe"),
		kong.Description("Card games on a multi-deck shoe"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_file": config.DefaultFile,
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.Globals.open(ctx, os.Stdout)
	kctx.FatalIfErrorf(err)

	if err := kctx.Run(app); err != nil {
		app.logger.Error("Command failed", "command", kctx.Command(), "error", err)
		stop()
		os.Exit(1)
	}
}
