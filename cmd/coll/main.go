package main

import (
	"context"
	"log/slog"

	"github.com/scott-cotton/cli"
)

func main() {
	// collections and their hubs log through the default logger when no
	// logger is given.
	slog.SetDefault(theLog)
	cli.MainContext(context.Background(), MainCommand())
}
