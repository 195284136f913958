package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/signadot/mutcoll/debug"
	"github.com/signadot/mutcoll/encode"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='encode with color'"`
	J     bool `cli:"name=j aliases=json desc='output json'"`
	V     bool `cli:"name=v desc='debug logging'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) debugOpt(_ *cli.Context, a string) (any, error) {
	switch a {
	case "diff", "path", "emit":
		debug.Set(a, true)
		return a, nil
	}
	return nil, fmt.Errorf("%w: unknown debug switch %q", cli.ErrUsage, a)
}

func (cfg *MainConfig) format() encode.Format {
	if cfg.J {
		return encode.JSONFormat
	}
	return encode.YAMLFormat
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.format()),
	}
	if cfg.colors(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name == "color" && opt.Value != nil {
				return false
			}
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type DiffConfig struct {
	*MainConfig
	Text    bool `cli:"name=text desc='line diff of the rendered documents'"`
	Reverse bool `cli:"name=r desc='reverse the diff'"`

	Diff *cli.Command
}

type ReplayConfig struct {
	*MainConfig
	Where   string `cli:"name=where desc='only print changes matching an expr-lang expression'"`
	Patch   bool   `cli:"name=patch desc='check that the json patch of all changes reproduces the result'"`
	Metrics bool   `cli:"name=metrics desc='print collection metrics'"`
	Config  string `cli:"name=config desc='collection config file'"`
	Quiet   bool   `cli:"name=q desc='do not print the final value'"`

	Replay *cli.Command
}
