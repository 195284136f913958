package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	"github.com/signadot/mutcoll/change"
	"github.com/signadot/mutcoll/encode"
	"github.com/signadot/mutcoll/libdiff"
	"github.com/signadot/mutcoll/section"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := readSequence(cc.In, args[0])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := readSequence(cc.In, args[1])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	var differs bool
	if cfg.Text {
		differs, err = diffText(cfg, cc.Out, a, b)
	} else {
		differs, err = diffSequences(cfg, cc.Out, a, b)
	}
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func diffSequences(cfg *DiffConfig, w io.Writer, a, b []section.Slot[any]) (bool, error) {
	script := libdiff.SequenceFunc(a, b, slotEqual)
	if len(script) == 0 {
		return false, nil
	}
	d := change.Composite(script...)
	if cfg.Reverse {
		d = libdiff.Reverse(d)
	}
	theLog.Debug("diff", "from", len(a), "to", len(b), "changes", len(script))
	if err := encode.FlatChange(w, d, cfg.encOpts(w)...); err != nil {
		return false, err
	}
	return true, nil
}

func diffText(cfg *DiffConfig, w io.Writer, a, b []section.Slot[any]) (bool, error) {
	if cfg.Reverse {
		a, b = b, a
	}
	opts := []encode.EncodeOption{encode.EncodeFormat(cfg.format())}
	from, err := render(a, opts)
	if err != nil {
		return false, err
	}
	to, err := render(b, opts)
	if err != nil {
		return false, err
	}
	ds := libdiff.Lines(from, to)
	if !libdiff.Changed(ds) {
		return false, nil
	}
	var colorize func(libdiff.Op, string) string
	if cfg.colors(w) {
		colors := encode.NewColors()
		colorize = func(op libdiff.Op, line string) string {
			switch op {
			case libdiff.Add:
				return colors.Color(encode.InsertColor, line)
			case libdiff.Delete:
				return colors.Color(encode.RemoveColor, line)
			}
			return line
		}
	}
	_, err = io.WriteString(w, libdiff.FormatLines(ds, colorize))
	return true, err
}

func render(seq []section.Slot[any], opts []encode.EncodeOption) (string, error) {
	var buf bytes.Buffer
	if err := encode.Snapshot(&buf, section.New(seq...).Plain(), opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}
