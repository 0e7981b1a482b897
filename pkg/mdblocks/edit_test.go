package mdblocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		edits   []edit
		want    string
	}{
		{
			name:    "no edits",
			content: "hello world",
			want:    "hello world",
		},
		{
			name:    "replacement",
			content: "hello world",
			edits:   []edit{{start: 0, end: 5, text: "hi"}},
			want:    "hi world",
		},
		{
			name:    "insertion",
			content: "hello world",
			edits:   []edit{{start: 5, end: 5, text: " big"}},
			want:    "hello big world",
		},
		{
			name:    "unsorted input",
			content: "abcdef",
			edits: []edit{
				{start: 4, end: 6, text: "EF"},
				{start: 0, end: 2, text: "AB"},
			},
			want: "ABcdEF",
		},
		{
			name:    "adjacent edits",
			content: "abcdef",
			edits: []edit{
				{start: 0, end: 3, text: "x"},
				{start: 3, end: 6, text: "y"},
			},
			want: "xy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			prepared, err := prepareEdits(tt.edits, len(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(applyEdits([]byte(tt.content), prepared)))
		})
	}
}

func TestPrepareEdits_Errors(t *testing.T) {
	t.Parallel()

	_, err := prepareEdits([]edit{{start: 2, end: 1}}, 10)
	require.Error(t, err)

	_, err = prepareEdits([]edit{{start: 0, end: 11}}, 10)
	require.Error(t, err)

	_, err = prepareEdits([]edit{{start: 0, end: 5}, {start: 3, end: 8}}, 10)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "overlapping edits: [0:5] and [3:8]", conflict.Error())
}
