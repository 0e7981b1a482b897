package printer

import "strings"

// indentPart tags one column of a tab-mode indentation as a plain indent
// level or as alignment of a given width.
type indentPart struct {
	align bool
	width int
}

// indentation is the prefix written after each newline.
type indentation struct {
	value  string
	length int

	// parts is only tracked once tabs and alignment are combined; it
	// decides which columns collapse into tabs.
	parts []indentPart
}

type indenter struct {
	useTabs  bool
	tabWidth int
}

func (in indenter) root() *indentation {
	return &indentation{}
}

func (in indenter) indent(cur *indentation) *indentation {
	if !in.useTabs {
		return &indentation{
			value:  cur.value + strings.Repeat(" ", in.tabWidth),
			length: cur.length + in.tabWidth,
		}
	}
	if cur.parts != nil {
		return in.withParts(cur, indentPart{})
	}
	return &indentation{
		value:  cur.value + "\t",
		length: cur.length + in.tabWidth,
	}
}

func (in indenter) align(cur *indentation, width int) *indentation {
	if in.useTabs {
		return in.withParts(cur, indentPart{align: true, width: width})
	}
	return &indentation{
		value:  cur.value + strings.Repeat(" ", width),
		length: cur.length + width,
	}
}

// withParts appends next to a tab-mode indentation. Trailing alignment
// stays as spaces, alignment before a later indent level becomes a tab,
// and back-to-back alignments merge into a single tab.
func (in indenter) withParts(cur *indentation, next indentPart) *indentation {
	var parts []indentPart

	if cur.parts == nil {
		// Everything so far is plain indentation.
		parts = make([]indentPart, 0, len(cur.value)+1)
		for range cur.value {
			parts = append(parts, indentPart{})
		}
		parts = append(parts, next)
	} else {
		parts = make([]indentPart, 0, len(cur.parts)+1)
		parts = append(parts, cur.parts...)
		parts = append(parts, next)

		placeTab := false
		for i := len(parts) - 1; i >= 0; i-- {
			if !parts[i].align {
				placeTab = true
			}
			if placeTab {
				parts[i] = indentPart{}
			}
		}

		for i := 0; i < len(parts)-1; i++ {
			if parts[i].align && parts[i+1].align {
				parts[i] = indentPart{}
				parts = append(parts[:i+1], parts[i+2:]...)
				i--
			}
		}
	}

	var sb strings.Builder
	length := 0
	for _, part := range parts {
		if part.align {
			sb.WriteString(strings.Repeat(" ", part.width))
			length += part.width
			continue
		}
		sb.WriteByte('\t')
		length += in.tabWidth
	}

	return &indentation{value: sb.String(), length: length, parts: parts}
}
