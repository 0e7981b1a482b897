package mdblocks

import (
	"bytes"
	"fmt"
	"slices"
)

// edit replaces content[start:end] with text.
type edit struct {
	start int
	end   int
	text  string
}

// ConflictError reports two block replacements that overlap.
type ConflictError struct {
	FirstStart, FirstEnd   int
	SecondStart, SecondEnd int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.FirstStart, e.FirstEnd, e.SecondStart, e.SecondEnd)
}

// prepareEdits checks that every edit lies within content, then sorts them
// by position and rejects overlaps.
func prepareEdits(edits []edit, contentLen int) ([]edit, error) {
	for _, e := range edits {
		if e.start < 0 || e.end < e.start || e.end > contentLen {
			return nil, fmt.Errorf("invalid edit [%d:%d] for content of length %d", e.start, e.end, contentLen)
		}
	}

	sorted := slices.Clone(edits)
	slices.SortFunc(sorted, func(a, b edit) int {
		if a.start != b.start {
			return a.start - b.start
		}
		return a.end - b.end
	})

	for i := 1; i < len(sorted); i++ {
		prev, curr := sorted[i-1], sorted[i]
		if curr.start < prev.end {
			return nil, &ConflictError{
				FirstStart: prev.start, FirstEnd: prev.end,
				SecondStart: curr.start, SecondEnd: curr.end,
			}
		}
	}
	return sorted, nil
}

// applyEdits applies edits prepared by prepareEdits.
func applyEdits(content []byte, edits []edit) []byte {
	if len(edits) == 0 {
		return content
	}

	delta := 0
	for _, e := range edits {
		delta += len(e.text) - (e.end - e.start)
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range edits {
		out.Write(content[cursor:e.start])
		out.WriteString(e.text)
		cursor = e.end
	}
	out.Write(content[cursor:])

	return out.Bytes()
}
