// Package diff computes line-oriented unified diffs. It is used to show what
// formatting would change and, during validation, where two syntax tree
// dumps diverge.
package diff

import (
	"fmt"
	"strings"
)

// Diff is a unified diff between an original and a modified text.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Hunks contains the diff hunks.
	Hunks []Hunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// Hunk is one contiguous region of change with its context.
type Hunk struct {
	// OriginalStart is the 1-based line number where the hunk starts in the original.
	OriginalStart int
	OriginalCount int

	// ModifiedStart is the 1-based line number where the hunk starts in the modified.
	ModifiedStart int
	ModifiedCount int

	Lines []Line
}

// Line is a single line of a hunk.
type Line struct {
	Kind    LineKind
	Content string
}

// LineKind indicates the type of diff line.
type LineKind int

const (
	LineContext LineKind = iota
	LineAdd
	LineRemove
)

// ContextLines is the number of unchanged lines shown around changes.
const ContextLines = 3

// maxTableCells bounds the LCS table. Larger change regions are reported
// as a single replacement.
const maxTableCells = 4_000_000

// Generate creates a unified diff between original and modified.
// Returns nil if there are no changes.
func Generate(path, original, modified string) *Diff {
	if original == modified {
		return nil
	}

	origLines := splitLines(original)
	modLines := splitLines(modified)

	ops := diffOps(origLines, modLines)
	hunks := groupIntoHunks(ops)
	if len(hunks) == 0 {
		return nil
	}

	d := &Diff{Path: path, Hunks: hunks}
	for _, hunk := range hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineAdd:
				d.Additions++
			case LineRemove:
				d.Deletions++
			}
		}
	}
	return d
}

// Unified returns the unified diff text of original and modified, or ""
// when they are equal.
func Unified(path, original, modified string) string {
	return Generate(path, original, modified).String()
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String returns the diff in unified diff format (without the git header).
func (d *Diff) String() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)

		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineContext:
				fmt.Fprintf(&builder, " %s\n", line.Content)
			case LineAdd:
				fmt.Fprintf(&builder, "+%s\n", line.Content)
			case LineRemove:
				fmt.Fprintf(&builder, "-%s\n", line.Content)
			}
		}
	}

	return builder.String()
}

// FullString returns the complete diff including the git header.
func (d *Diff) FullString() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// splitLines splits text into lines, dropping the empty string after a
// final newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

type diffOp struct {
	kind    LineKind
	content string
}

// diffOps aligns two line slices. Common prefix and suffix are matched
// directly; the remaining middle goes through an LCS table.
func diffOps(orig, mod []string) []diffOp {
	prefix := 0
	for prefix < len(orig) && prefix < len(mod) && orig[prefix] == mod[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(orig)-prefix && suffix < len(mod)-prefix &&
		orig[len(orig)-1-suffix] == mod[len(mod)-1-suffix] {
		suffix++
	}

	ops := make([]diffOp, 0, len(orig)+len(mod))
	for _, line := range orig[:prefix] {
		ops = append(ops, diffOp{LineContext, line})
	}
	ops = append(ops, middleOps(orig[prefix:len(orig)-suffix], mod[prefix:len(mod)-suffix])...)
	for _, line := range orig[len(orig)-suffix:] {
		ops = append(ops, diffOp{LineContext, line})
	}
	return ops
}

func middleOps(orig, mod []string) []diffOp {
	var ops []diffOp

	if len(orig)*len(mod) > maxTableCells {
		for _, line := range orig {
			ops = append(ops, diffOp{LineRemove, line})
		}
		for _, line := range mod {
			ops = append(ops, diffOp{LineAdd, line})
		}
		return ops
	}

	// dp[i][j] is the LCS length of orig[i:] and mod[j:].
	dp := make([][]int, len(orig)+1)
	for i := range dp {
		dp[i] = make([]int, len(mod)+1)
	}
	for i := len(orig) - 1; i >= 0; i-- {
		for j := len(mod) - 1; j >= 0; j-- {
			if orig[i] == mod[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else {
				dp[i][j] = max(dp[i+1][j], dp[i][j+1])
			}
		}
	}

	i, j := 0, 0
	for i < len(orig) || j < len(mod) {
		switch {
		case i < len(orig) && j < len(mod) && orig[i] == mod[j]:
			ops = append(ops, diffOp{LineContext, orig[i]})
			i++
			j++
		case j >= len(mod) || (i < len(orig) && dp[i+1][j] >= dp[i][j+1]):
			ops = append(ops, diffOp{LineRemove, orig[i]})
			i++
		default:
			ops = append(ops, diffOp{LineAdd, mod[j]})
			j++
		}
	}
	return ops
}

// groupIntoHunks groups operations into hunks, merging changes separated
// by fewer than 2*ContextLines unchanged lines.
func groupIntoHunks(ops []diffOp) []Hunk {
	type changeRange struct{ start, end int }

	var ranges []changeRange
	inChange := false
	rangeStart := 0
	for idx, op := range ops {
		isChange := op.kind != LineContext
		if isChange && !inChange {
			rangeStart = idx
			inChange = true
		} else if !isChange && inChange {
			ranges = append(ranges, changeRange{rangeStart, idx})
			inChange = false
		}
	}
	if inChange {
		ranges = append(ranges, changeRange{rangeStart, len(ops)})
	}

	var hunks []Hunk
	for r := 0; r < len(ranges); {
		end := r + 1
		for end < len(ranges) && ranges[end].start-ranges[end-1].end <= ContextLines*2 {
			end++
		}
		hunks = append(hunks, buildHunk(ops, ranges[r].start, ranges[end-1].end))
		r = end
	}
	return hunks
}

func buildHunk(ops []diffOp, changeStart, changeEnd int) Hunk {
	start := max(changeStart-ContextLines, 0)
	end := min(changeEnd+ContextLines, len(ops))

	hunk := Hunk{OriginalStart: 1, ModifiedStart: 1}
	for _, op := range ops[:start] {
		if op.kind != LineAdd {
			hunk.OriginalStart++
		}
		if op.kind != LineRemove {
			hunk.ModifiedStart++
		}
	}

	for _, op := range ops[start:end] {
		hunk.Lines = append(hunk.Lines, Line{Kind: op.kind, Content: op.content})
		switch op.kind {
		case LineContext:
			hunk.OriginalCount++
			hunk.ModifiedCount++
		case LineRemove:
			hunk.OriginalCount++
		case LineAdd:
			hunk.ModifiedCount++
		}
	}
	return hunk
}
