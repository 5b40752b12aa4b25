// Package diff produces unified diffs between two versions of a file,
// used by check mode to show what formatting would change.
package diff

import (
	"fmt"
	"strings"
)

// LineKind classifies one line of a hunk.
type LineKind int

const (
	// Context is an unchanged line shown around a change.
	Context LineKind = iota
	// Added is a line present only in the after version.
	Added
	// Removed is a line present only in the before version.
	Removed
)

// Line is one line of a hunk, without its diff prefix.
type Line struct {
	Kind LineKind
	Text string
}

// Hunk is one contiguous change region with surrounding context.
type Hunk struct {
	BeforeStart int // 1-based first line in the before version
	BeforeCount int
	AfterStart  int // 1-based first line in the after version
	AfterCount  int
	Lines       []Line
}

// Diff is a unified diff between two versions of one file.
type Diff struct {
	Path      string
	Before    []byte
	After     []byte
	Hunks     []Hunk
	Additions int
	Deletions int
}

// contextSize is the number of unchanged lines kept around each change.
const contextSize = 3

// Compute diffs before against after. It returns nil when the two
// versions are line-identical.
func Compute(path string, before, after []byte) *Diff {
	if len(before) == 0 && len(after) == 0 {
		return nil
	}

	beforeLines := splitLines(before)
	afterLines := splitLines(after)
	if equalLines(beforeLines, afterLines) {
		return nil
	}

	hunks := computeHunks(beforeLines, afterLines)
	if len(hunks) == 0 {
		return nil
	}

	d := &Diff{
		Path:   path,
		Before: before,
		After:  after,
		Hunks:  hunks,
	}
	for _, hunk := range hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case Added:
				d.Additions++
			case Removed:
				d.Deletions++
			}
		}
	}
	return d
}

// HasChanges reports whether the diff contains any hunks.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String renders the diff in unified format, without the git header.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n", path)
	fmt.Fprintf(&b, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n",
			hunk.BeforeStart, hunk.BeforeCount,
			hunk.AfterStart, hunk.AfterCount)
		for _, line := range hunk.Lines {
			switch line.Kind {
			case Context:
				fmt.Fprintf(&b, " %s\n", line.Text)
			case Added:
				fmt.Fprintf(&b, "+%s\n", line.Text)
			case Removed:
				fmt.Fprintf(&b, "-%s\n", line.Text)
			}
		}
	}
	return b.String()
}

// FullString renders the diff including the git header.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.Split(string(content), "\n")
	// Drop the trailing empty element of newline-terminated content.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// op is one element of the raw line-by-line edit script.
type op struct {
	kind LineKind
	text string
}

func computeHunks(before, after []string) []Hunk {
	lcs := longestCommonSubsequence(before, after)
	ops := buildOps(before, after, lcs)
	if len(ops) == 0 {
		return nil
	}
	return groupIntoHunks(ops)
}

// buildOps walks both versions against the common subsequence and emits
// one op per line.
func buildOps(before, after, lcs []string) []op {
	var ops []op
	bi, ai, li := 0, 0, 0

	for bi < len(before) || ai < len(after) {
		if li < len(lcs) && bi < len(before) && ai < len(after) &&
			before[bi] == lcs[li] && after[ai] == lcs[li] {
			ops = append(ops, op{kind: Context, text: before[bi]})
			bi++
			ai++
			li++
			continue
		}

		for bi < len(before) && (li >= len(lcs) || before[bi] != lcs[li]) {
			ops = append(ops, op{kind: Removed, text: before[bi]})
			bi++
		}
		for ai < len(after) && (li >= len(lcs) || after[ai] != lcs[li]) {
			ops = append(ops, op{kind: Added, text: after[ai]})
			ai++
		}
	}
	return ops
}

// groupIntoHunks merges nearby change runs and wraps them in context.
func groupIntoHunks(ops []op) []Hunk {
	type span struct{ start, end int }

	var runs []span
	inRun := false
	runStart := 0
	for i, o := range ops {
		changed := o.kind != Context
		switch {
		case changed && !inRun:
			runStart = i
			inRun = true
		case !changed && inRun:
			runs = append(runs, span{runStart, i})
			inRun = false
		}
	}
	if inRun {
		runs = append(runs, span{runStart, len(ops)})
	}
	if len(runs) == 0 {
		return nil
	}

	var hunks []Hunk
	for i := 0; i < len(runs); {
		// Runs separated by at most two context windows share a hunk.
		j := i + 1
		for j < len(runs) && runs[j].start-runs[j-1].end <= contextSize*2 {
			j++
		}
		hunk := buildHunk(ops, runs[i].start, runs[j-1].end)
		if len(hunk.Lines) > 0 {
			hunks = append(hunks, hunk)
		}
		i = j
	}
	return hunks
}

func buildHunk(ops []op, changeStart, changeEnd int) Hunk {
	start := max(changeStart-contextSize, 0)
	end := min(changeEnd+contextSize, len(ops))

	hunk := Hunk{BeforeStart: 1, AfterStart: 1}
	for i := range start {
		if ops[i].kind != Added {
			hunk.BeforeStart++
		}
		if ops[i].kind != Removed {
			hunk.AfterStart++
		}
	}

	for i := start; i < end; i++ {
		hunk.Lines = append(hunk.Lines, Line{Kind: ops[i].kind, Text: ops[i].text})
		switch ops[i].kind {
		case Context:
			hunk.BeforeCount++
			hunk.AfterCount++
		case Removed:
			hunk.BeforeCount++
		case Added:
			hunk.AfterCount++
		}
	}
	return hunk
}

// longestCommonSubsequence computes the LCS of two line slices by
// dynamic programming.
func longestCommonSubsequence(before, after []string) []string {
	n, m := len(before), len(after)
	if n == 0 || m == 0 {
		return nil
	}

	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if before[i-1] == after[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else {
				dp[i][j] = max(dp[i-1][j], dp[i][j-1])
			}
		}
	}

	length := dp[n][m]
	if length == 0 {
		return nil
	}

	lcs := make([]string, length)
	i, j, k := n, m, length-1
	for i > 0 && j > 0 {
		switch {
		case before[i-1] == after[j-1]:
			lcs[k] = before[i-1]
			i--
			j--
			k--
		case dp[i-1][j] > dp[i][j-1]:
			i--
		default:
			j--
		}
	}
	return lcs
}
