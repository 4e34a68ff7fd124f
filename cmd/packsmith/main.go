package main

import (
	"context"
	"os"
	"os/signal"

	_ "github.com/tliron/commonlog/simple"

	"github.com/pluqqy/packsmith/cmd/commands"
	"github.com/pluqqy/packsmith/internal/cli"
)

// Version is set during build with -ldflags
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := commands.NewRootCommand(version).ExecuteContext(ctx); err != nil {
		cli.PrintError("%v", err)
		stop()
		os.Exit(1)
	}
}
