package printer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndenter(t *testing.T) {
	t.Parallel()

	tabs := indenter{useTabs: true, tabWidth: 4}
	spaces := indenter{tabWidth: 4}

	tests := []struct {
		name   string
		build  func() *indentation
		value  string
		length int
	}{
		{
			name:   "tab levels",
			build:  func() *indentation { return tabs.indent(tabs.indent(tabs.root())) },
			value:  "\t\t",
			length: 8,
		},
		{
			name:   "trailing alignment stays spaces",
			build:  func() *indentation { return tabs.align(tabs.indent(tabs.indent(tabs.root())), 2) },
			value:  "\t\t  ",
			length: 10,
		},
		{
			name:   "alignment before indent becomes tab",
			build:  func() *indentation { return tabs.indent(tabs.align(tabs.indent(tabs.root()), 2)) },
			value:  "\t\t\t",
			length: 12,
		},
		{
			name:   "adjacent alignments merge",
			build:  func() *indentation { return tabs.align(tabs.align(tabs.indent(tabs.root()), 2), 3) },
			value:  "\t\t",
			length: 8,
		},
		{
			name:   "spaces",
			build:  func() *indentation { return spaces.align(spaces.indent(spaces.root()), 2) },
			value:  "      ",
			length: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.build()
			assert.Equal(t, tt.value, got.value)
			assert.Equal(t, tt.length, got.length)
		})
	}
}
