package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	outMu sync.Mutex
	out   io.Writer = os.Stderr
)

// SetOutput redirects Logf, returning the previous writer.
func SetOutput(w io.Writer) io.Writer {
	outMu.Lock()
	defer outMu.Unlock()
	prev := out
	out = w
	return prev
}

// Logf writes a trace line. Plain trees ([]any, map[string]any) and int
// tables are rendered as indented JSON so nested sections stay readable.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch a.(type) {
		case map[string]any, []any, [][]int, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		default:
		}
	}
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(out, msg, args...)
}
