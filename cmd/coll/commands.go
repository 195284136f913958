package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "debug",
			Description: "enable a trace switch: diff, path or emit",
			Type:        cli.NamedFuncOpt(cfg.debugOpt, "(switch)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "coll").
		WithSynopsis("coll [opts] command [opts]").
		WithDescription("coll diffs sequences and replays mutations of observable collections.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return collMain(cfg, cc, args)
		}).
		WithSubs(
			DiffCommand(cfg),
			ReplayCommand(cfg))
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithOpts(opts...).
		WithSynopsis("diff [-text] [-r] a b").
		WithDescription("print the edit script turning sequence a into sequence b").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func ReplayCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ReplayConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("replay").
		WithAliases("r", "re").
		WithOpts(opts...).
		WithSynopsis("replay [-where expr] [-patch] [-metrics] [-config file] script").
		WithDescription("apply the operations of a script to a collection and print its changes").
		WithRun(func(cc *cli.Context, args []string) error {
			return replay(cfg, cc, args)
		})
	cfg.Replay = cmd
	return cmd
}
