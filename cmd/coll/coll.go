package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/scott-cotton/cli"
)

func collMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer cfg.closeOut()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.V {
		logLevel.Set(slog.LevelDebug)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	name, rest := args[0], args[1:]
	sub := cfg.Main.FindSub(cc, name)
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, name)
	}
	theLog.Debug("running", "command", name, "args", rest)
	err = sub.Run(cc, rest)
	if !errors.Is(err, cli.ErrUsage) {
		return err
	}
	sub.Usage(cc, err)
	// os.Exit skips the deferred close.
	cfg.closeOut()
	os.Exit(sub.Exit(cc, err))
	return nil
}

// outOpt sends output to the file a; "-" keeps stdout.
func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.Create(a)
	if err != nil {
		return nil, fmt.Errorf("cannot open output: %w", err)
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) closeOut() {
	if cfg.CloseOut == nil {
		return
	}
	if err := cfg.CloseOut(); err != nil {
		theLog.Error("closing output", "file", cfg.Out, "error", err)
	}
	cfg.CloseOut = nil
}
