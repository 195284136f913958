package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/scott-cotton/cli"
	"github.com/signadot/mutcoll/change"
	"github.com/signadot/mutcoll/collection"
	"github.com/signadot/mutcoll/encode"
	"github.com/signadot/mutcoll/metrics"
	"github.com/signadot/mutcoll/section"
	"golang.org/x/sync/errgroup"
)

const patchRoot = "/items"

var errPatchMismatch = errors.New("json patch replay does not match collection")

func replay(cfg *ReplayConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Replay.Parse(cc, args)
	if err != nil {
		cfg.Replay.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: replay requires 1 arg, got %v", cli.ErrUsage, args)
	}
	script, err := readScript(cc.In, args[0])
	if err != nil {
		return err
	}
	var m *change.Matcher
	if cfg.Where != "" {
		m, err = change.NewMatcher(cfg.Where)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	spec := &collection.Spec{Log: theLog}
	if cfg.Config != "" {
		spec.Config, err = collection.LoadConfig(cfg.Config)
		if err != nil {
			return err
		}
	}
	reg := prometheus.NewRegistry()
	if cfg.Metrics {
		spec.Metrics, err = metrics.New(reg, "coll")
		if err != nil {
			return err
		}
	}
	return runScript(cfg, cc.Out, script, spec, m, reg)
}

func runScript(cfg *ReplayConfig, w io.Writer, script *Script, spec *collection.Spec, m *change.Matcher, reg *prometheus.Registry) error {
	c, err := collection.New(section.New(toSlots(script.Initial)...), spec)
	if err != nil {
		return err
	}
	defer c.Close()
	doc, err := json.Marshal(map[string]any{"items": c.Plain()})
	if err != nil {
		return err
	}
	theLog.Debug("replay", "collection", c.ID(), "ops", len(script.Ops))

	events := c.Streams().Events(0)
	g, _ := errgroup.WithContext(context.Background())
	g.Go(func() error {
		for ev := range events.Events {
			if err := printChange(cfg, w, m, ev.Deep); err != nil {
				return err
			}
			if !cfg.Patch {
				continue
			}
			patch, err := change.JSONPatch(ev.Deep, patchRoot)
			if err != nil {
				return err
			}
			doc, err = change.ApplyJSONPatch(doc, patch)
			if err != nil {
				return fmt.Errorf("error applying patch for %s: %w", ev.Op, err)
			}
		}
		if events.IsFailed() {
			return fmt.Errorf("change watcher of %s fell behind", c.ID())
		}
		return nil
	})

	var opErr error
	for i := range script.Ops {
		op := &script.Ops[i]
		if err := op.apply(c); err != nil {
			opErr = fmt.Errorf("op %d (%s): %w", i, op.Op, err)
			break
		}
	}
	final := c.Plain()
	c.Close()
	if err := g.Wait(); err != nil {
		return err
	}
	if opErr != nil {
		return opErr
	}
	if cfg.Patch {
		want, err := json.Marshal(map[string]any{"items": final})
		if err != nil {
			return err
		}
		if !jsonpatch.Equal(doc, want) {
			return fmt.Errorf("%w: got %s want %s", errPatchMismatch, doc, want)
		}
		theLog.Debug("json patch replay matches", "collection", c.ID())
	}
	if !cfg.Quiet {
		if _, err := io.WriteString(w, "---\n"); err != nil {
			return err
		}
		if err := encode.Snapshot(w, final, cfg.encOpts(w)...); err != nil {
			return err
		}
	}
	if cfg.Metrics {
		return writeMetrics(w, reg)
	}
	return nil
}

func printChange(cfg *ReplayConfig, w io.Writer, m *change.Matcher, c change.Deep[section.Slot[any]]) error {
	if m != nil {
		filtered, ok, err := change.Filter(m, c)
		if err != nil || !ok {
			return err
		}
		c = filtered
	}
	return encode.Change(w, c, cfg.encOpts(w)...)
}

func writeMetrics(w io.Writer, reg *prometheus.Registry) error {
	mfs, err := reg.Gather()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return err
		}
	}
	_, err = w.Write(buf.Bytes())
	return err
}
