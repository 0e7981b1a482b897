package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gmlfmt/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "empty",
			content:  "  \n",
			expected: "text",
		},
		{
			name:     "shebang bash",
			content:  "#!/bin/bash\necho hello",
			expected: "bash",
		},
		{
			name:     "macro",
			content:  "#macro SPEED 4",
			expected: "gml",
		},
		{
			name:     "builtin call",
			content:  "if (keyboard_check(vk_left)) x -= 4;",
			expected: "gml",
		},
		{
			name:     "map accessor",
			content:  "var hp = stats[? \"hp\"];",
			expected: "gml",
		},
		{
			name:     "constructor",
			content:  "function Vec2(_x, _y) constructor {\n\tx = _x;\n}",
			expected: "gml",
		},
		{
			name:     "json object",
			content:  `{"key": "value", "number": 123}`,
			expected: "json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, langdetect.Detect([]byte(tt.content)))
		})
	}
}

func TestDetectClassifierFallback(t *testing.T) {
	t.Parallel()

	got := langdetect.Detect([]byte("local function greet(name)\n  print(\"hi \" .. name)\nend"))
	assert.NotEmpty(t, got)
	assert.NotEqual(t, "bash", got)
}

func TestIsGMLTag(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"gml":                 true,
		"GML":                 true,
		"gml title=\"Step\"":  true,
		"gamemaker":           true,
		"game-maker-language": true,
		"js":                  false,
		"":                    false,
		"  ":                  false,
	}
	for info, want := range tests {
		assert.Equal(t, want, langdetect.IsGMLTag(info), info)
	}
}

func TestIsGMLFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		content string
		want    bool
	}{
		{"script", "scripts/scr_move/scr_move.gml", "x += 1;", true},
		{"xml with gml extension", "map.gml", "<?xml version=\"1.0\"?>\n<gml:FeatureCollection/>", false},
		{"other extension", "notes.txt", "x += 1;", false},
		{"extensionless gml", "Step", "show_debug_message(\"tick\");", true},
		{"extensionless text", "README", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, langdetect.IsGMLFile(tt.path, []byte(tt.content)))
		})
	}
}
