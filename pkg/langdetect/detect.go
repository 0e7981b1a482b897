// Package langdetect recognises GameMaker Language source. It uses go-enry
// to tell .gml scripts apart from other formats sharing the extension and
// to classify unlabeled code snippets.
package langdetect

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// GameMakerLanguage is the linguist name of GML.
const GameMakerLanguage = "Game Maker Language"

// Fence tags returned by Detect.
const (
	TagGML  = "gml"
	TagText = "text"
	tagBash = "bash"
	tagJSON = "json"
)

// fenceAliases are Markdown info strings that name GML.
var fenceAliases = []string{"gml", "gamemaker", "game-maker-language", "gamemaker-language"}

// IsGMLTag reports whether a Markdown fence info string names GML. Only
// the first word of the info string is considered.
func IsGMLTag(info string) bool {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return false
	}
	return slices.Contains(fenceAliases, strings.ToLower(fields[0]))
}

// IsGMLFile reports whether the file at path with the given content is
// GML. The extension narrows the candidates; when it is shared with other
// formats (".gml" is also used by XML and the Graph Modeling Language) the
// content decides. Files without an extension are classified by content.
func IsGMLFile(path string, content []byte) bool {
	if filepath.Ext(path) == "" {
		return Detect(content) == TagGML
	}

	langs := enry.GetLanguagesByExtension(path, content, nil)
	switch {
	case len(langs) == 0:
		return false
	case len(langs) == 1:
		return langs[0] == GameMakerLanguage
	case !slices.Contains(langs, GameMakerLanguage):
		return false
	}

	if byContent := enry.GetLanguagesByContent(path, content, langs); len(byContent) == 1 {
		return byContent[0] == GameMakerLanguage
	}
	return true
}

// Detect returns the fence tag for an unlabeled snippet: "gml" when the
// snippet looks like GML, another lowercase language name when it clearly
// is something else, and "text" when unsure.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return TagText
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if looksLikeGML(content) {
		return TagGML
	}

	if (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`":`)) {
		return tagJSON
	}

	langs := enry.GetLanguagesByClassifier("", content, classifierCandidates)
	if len(langs) > 0 {
		return normalize(langs[0])
	}
	return TagText
}

// classifierCandidates are the languages an unlabeled snippet in GameMaker
// documentation is most often confused with.
var classifierCandidates = []string{
	GameMakerLanguage, "JavaScript", "C", "C#", "Lua", "Python", "Shell",
}

// gmlMarkers are substrings that practically only occur in GML.
var gmlMarkers = [][]byte{
	[]byte("#macro "),
	[]byte("#region"),
	[]byte("#endregion"),
	[]byte("show_debug_message("),
	[]byte("instance_create_"),
	[]byte("instance_destroy("),
	[]byte("draw_sprite"),
	[]byte("draw_text("),
	[]byte("keyboard_check"),
	[]byte("room_goto"),
	[]byte("ds_map_"),
	[]byte("ds_list_"),
	[]byte("ds_grid_"),
	[]byte("globalvar "),
	[]byte(") constructor"),
	[]byte("[? "),
	[]byte("[| "),
	[]byte("[# "),
}

func looksLikeGML(content []byte) bool {
	for _, marker := range gmlMarkers {
		if bytes.Contains(content, marker) {
			return true
		}
	}
	return false
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	switch lang {
	case GameMakerLanguage:
		return TagGML
	case "Shell":
		return tagBash
	}
	return strings.ToLower(lang)
}
