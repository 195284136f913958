package main

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/signadot/mutcoll/change"
	"github.com/signadot/mutcoll/collection"
	"github.com/signadot/mutcoll/metrics"
	"github.com/signadot/mutcoll/section"
)

const testScript = `
initial: [a, [b, c]]
ops:
- op: append
  value: d
- op: moveAtPath
  from: "[1][0]"
  to: "[0]"
- op: removeLast
`

func parseScript(t *testing.T, src string) *Script {
	t.Helper()
	s, err := readScript(strings.NewReader(src), "-")
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRunScript(t *testing.T) {
	tests := []struct {
		name  string
		where string
		patch bool
		want  string
	}{
		{
			name: "all",
			want: "+ [2] d\n- [1][0] b\n+ [0] b\n- [3] d\n",
		},
		{
			name:  "where",
			where: `op == "insert"`,
			want:  "+ [2] d\n+ [0] b\n",
		},
		{
			name:  "where deep",
			where: `depth > 1`,
			want:  "- [1][0] b\n",
		},
		{
			name:  "patch",
			patch: true,
			want:  "+ [2] d\n- [1][0] b\n+ [0] b\n- [3] d\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &ReplayConfig{MainConfig: &MainConfig{}, Quiet: true, Patch: tt.patch}
			var m *change.Matcher
			if tt.where != "" {
				var err error
				m, err = change.NewMatcher(tt.where)
				if err != nil {
					t.Fatal(err)
				}
			}
			var out bytes.Buffer
			err := runScript(cfg, &out, parseScript(t, testScript), &collection.Spec{Log: theLog}, m, prometheus.NewRegistry())
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, out.String()); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunScriptSnapshot(t *testing.T) {
	cfg := &ReplayConfig{MainConfig: &MainConfig{J: true}}
	var out bytes.Buffer
	err := runScript(cfg, &out, parseScript(t, testScript), &collection.Spec{Log: theLog}, nil, prometheus.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	_, snap, ok := strings.Cut(out.String(), "---\n")
	if !ok {
		t.Fatalf("no snapshot in %q", out.String())
	}
	got := strings.Join(strings.Fields(snap), "")
	if got != `["b","a",["c"]]` {
		t.Errorf("got snapshot %s", got)
	}
}

func TestRunScriptOpError(t *testing.T) {
	s := parseScript(t, `
initial: [a]
ops:
- op: append
  value: b
- op: removeAt
  index: 5
- op: append
  value: c
`)
	cfg := &ReplayConfig{MainConfig: &MainConfig{}, Quiet: true}
	var out bytes.Buffer
	err := runScript(cfg, &out, s, &collection.Spec{Log: theLog}, nil, prometheus.NewRegistry())
	if !errors.Is(err, section.ErrIndexOutOfRange) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(err.Error(), "op 1 (removeAt)") {
		t.Errorf("error %q does not name the op", err)
	}
	if diff := cmp.Diff("+ [1] b\n", out.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRunScriptMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg, "coll")
	if err != nil {
		t.Fatal(err)
	}
	cfg := &ReplayConfig{MainConfig: &MainConfig{}, Quiet: true, Metrics: true}
	var out bytes.Buffer
	err = runScript(cfg, &out, parseScript(t, testScript), &collection.Spec{Log: theLog, Metrics: m}, nil, reg)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `coll_collection_mutations_total{op="moveAtPath"} 1`) {
		t.Errorf("missing mutation count in\n%s", out.String())
	}
}

func TestUnknownOp(t *testing.T) {
	c, err := collection.New[any](nil, &collection.Spec{Log: theLog})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	op := &Op{Op: "shuffle"}
	if err := op.apply(c); err == nil {
		t.Fatal("expected error")
	}
	op = &Op{Op: "move", From: "[0][1]", To: "[0]"}
	if err := op.apply(c); err == nil {
		t.Fatal("expected error for nested move")
	}
}

func TestDiffSequences(t *testing.T) {
	a, err := readSequence(strings.NewReader("[t0, t1, t2, t3]"), "-")
	if err != nil {
		t.Fatal(err)
	}
	b, err := readSequence(strings.NewReader("[t1, t2c, t3, t4]"), "-")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name    string
		reverse bool
		want    string
	}{
		{
			name: "forward",
			want: "- [0] t0\n- [2] t2\n+ [1] t2c\n+ [3] t4\n",
		},
		{
			name:    "reverse",
			reverse: true,
			want:    "+ [0] t0\n+ [2] t2\n- [1] t2c\n- [3] t4\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &DiffConfig{MainConfig: &MainConfig{}, Reverse: tt.reverse}
			var out bytes.Buffer
			differs, err := diffSequences(cfg, &out, a, b)
			if err != nil {
				t.Fatal(err)
			}
			if !differs {
				t.Fatal("expected a difference")
			}
			if diff := cmp.Diff(tt.want, out.String()); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiffNested(t *testing.T) {
	a, err := readSequence(strings.NewReader("[a, [b, c]]"), "-")
	if err != nil {
		t.Fatal(err)
	}
	b, err := readSequence(strings.NewReader("[a, [b, c]]"), "-")
	if err != nil {
		t.Fatal(err)
	}
	cfg := &DiffConfig{MainConfig: &MainConfig{}}
	var out bytes.Buffer
	differs, err := diffSequences(cfg, &out, a, b)
	if err != nil {
		t.Fatal(err)
	}
	if differs || out.Len() != 0 {
		t.Errorf("equal nested sequences differ: %q", out.String())
	}
	differs, err = diffText(cfg, &out, a, b)
	if err != nil {
		t.Fatal(err)
	}
	if differs {
		t.Errorf("equal nested sequences differ as text: %q", out.String())
	}
}

func TestDiffText(t *testing.T) {
	a, err := readSequence(strings.NewReader("[a, b, c]"), "-")
	if err != nil {
		t.Fatal(err)
	}
	b, err := readSequence(strings.NewReader("[a, x, c]"), "-")
	if err != nil {
		t.Fatal(err)
	}
	cfg := &DiffConfig{MainConfig: &MainConfig{J: true}}
	var out bytes.Buffer
	differs, err := diffText(cfg, &out, a, b)
	if err != nil {
		t.Fatal(err)
	}
	if !differs {
		t.Fatal("expected a difference")
	}
	got := out.String()
	if !strings.Contains(got, `- `) || !strings.Contains(got, `"b"`) || !strings.Contains(got, `"x"`) {
		t.Errorf("unexpected line diff:\n%s", got)
	}
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		log   func(l *slog.Logger)
		want  string
	}{
		{
			name: "info has no level",
			log:  func(l *slog.Logger) { l.Info("replay", "ops", 3) },
			want: "msg=replay ops=3\n",
		},
		{
			name: "warn keeps level",
			log:  func(l *slog.Logger) { l.Warn("mutation rejected", "op", "move") },
			want: "level=WARN msg=\"mutation rejected\" op=move\n",
		},
		{
			name: "debug hidden by default",
			log:  func(l *slog.Logger) { l.Debug("running") },
			want: "",
		},
		{
			name:  "debug shown at debug level",
			level: slog.LevelDebug,
			log:   func(l *slog.Logger) { l.Debug("running", "command", "diff") },
			want:  "level=DEBUG msg=running command=diff\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(newLogger(&buf, tt.level))
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("log mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
