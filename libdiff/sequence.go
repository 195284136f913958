package libdiff

import (
	"slices"

	"github.com/signadot/mutcoll/change"
	"github.com/signadot/mutcoll/debug"
)

// Sequence returns the edit script turning from into to, comparing elements
// with ==. Identical inputs give an empty script.
func Sequence[E comparable](from, to []E) []change.Flat[E] {
	return SequenceFunc(from, to, func(a, b E) bool { return a == b })
}

// SequenceFunc is Sequence with a caller supplied equality.
func SequenceFunc[E any](from, to []E, eq func(a, b E) bool) []change.Flat[E] {
	table := lcsTable(from, to, eq)
	if debug.Diff() {
		debug.Logf("lcs table %d x %d:\n%v\n", len(from), len(to), table)
	}
	res := backtrack(table, from, to)
	if debug.Diff() {
		debug.Logf("edit script: %v\n", res)
	}
	return res
}

// lcsTable has len(from)+1 rows and len(to)+1 columns. Entry [i][j] is the
// length of the longest common subsequence of from[:i] and to[:j].
func lcsTable[E any](from, to []E, eq func(a, b E) bool) [][]int {
	n, m := len(from), len(to)
	table := make([][]int, n+1)
	cells := make([]int, (n+1)*(m+1))
	for i := range table {
		table[i] = cells[i*(m+1) : (i+1)*(m+1)]
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if eq(from[i-1], to[j-1]) {
				table[i][j] = table[i-1][j-1] + 1
				continue
			}
			table[i][j] = max(table[i-1][j], table[i][j-1])
		}
	}
	return table
}

// backtrack walks table from the bottom right corner. The walk visits the
// script back to front, so the result is reversed before returning.
func backtrack[E any](table [][]int, from, to []E) []change.Flat[E] {
	var res []change.Flat[E]
	i, j := len(from), len(to)
	for i > 0 || j > 0 {
		switch {
		case i == 0:
			res = append(res, change.Insert(j-1, to[j-1]))
			j--
		case j == 0:
			res = append(res, change.Remove(i-1, from[i-1]))
			i--
		case table[i][j] == table[i][j-1]:
			// insertion is checked first
			res = append(res, change.Insert(j-1, to[j-1]))
			j--
		case table[i][j] == table[i-1][j]:
			res = append(res, change.Remove(i-1, from[i-1]))
			i--
		default:
			i--
			j--
		}
	}
	slices.Reverse(res)
	return res
}
