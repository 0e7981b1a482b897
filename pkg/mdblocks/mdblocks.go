// Package mdblocks formats GML code blocks embedded in Markdown documents.
//
// Fenced blocks tagged gml (or an alias), and untagged blocks whose content
// looks like GML, are run through the formatter. Everything else in the
// document is left byte for byte as it was.
package mdblocks

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gmlfmt/internal/logging"
	"github.com/yaklabco/gmlfmt/pkg/config"
	"github.com/yaklabco/gmlfmt/pkg/format"
	"github.com/yaklabco/gmlfmt/pkg/langdetect"
)

// Block is a fenced code block holding GML.
type Block struct {
	// Info is the fence info string, empty for untagged blocks.
	Info string

	// Line is the 1-based line of the first content line.
	Line int

	// Start and End delimit the content lines, including the container
	// prefix of the first line and the newline of the last.
	Start, End int

	// Prefix is the container prefix repeated on every content line, such
	// as list indentation or "> ".
	Prefix string

	// Code is the block content with prefixes removed.
	Code string
}

// BlockError reports a block that was left unchanged.
type BlockError struct {
	Line int
	Err  error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("code block at line %d: %v", e.Line, e.Err)
}

func (e *BlockError) Unwrap() error { return e.Err }

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Find returns the GML blocks of a Markdown document in source order.
// Blocks whose lines do not share one container prefix are not returned.
func Find(content []byte) []Block {
	root := markdown.Parser().Parse(text.NewReader(content))

	var blocks []Block
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if block, ok := blockOf(fenced, content); ok {
			blocks = append(blocks, block)
		}
		return ast.WalkSkipChildren, nil
	})
	return blocks
}

func blockOf(fenced *ast.FencedCodeBlock, content []byte) (Block, bool) {
	lines := fenced.Lines()
	if lines.Len() == 0 {
		return Block{}, false
	}

	var info string
	if fenced.Info != nil {
		info = string(fenced.Info.Value(content))
	}

	first := lines.At(0)
	start := lineStart(content, first.Start)
	prefix := string(content[start:first.Start])

	var code strings.Builder
	for i := range lines.Len() {
		seg := lines.At(i)
		if seg.Padding != 0 || string(content[lineStart(content, seg.Start):seg.Start]) != prefix {
			return Block{}, false
		}
		code.Write(seg.Value(content))
	}

	last := lines.At(lines.Len() - 1)
	if last.Stop == 0 || content[last.Stop-1] != '\n' {
		return Block{}, false
	}

	block := Block{
		Info:   info,
		Line:   bytes.Count(content[:first.Start], []byte("\n")) + 1,
		Start:  start,
		End:    last.Stop,
		Prefix: prefix,
		Code:   code.String(),
	}

	switch {
	case langdetect.IsGMLTag(info):
		return block, true
	case strings.TrimSpace(info) == "":
		return block, langdetect.Detect([]byte(block.Code)) == langdetect.TagGML
	}
	return Block{}, false
}

// lineStart returns the offset of the beginning of the line holding off.
func lineStart(content []byte, off int) int {
	return bytes.LastIndexByte(content[:off], '\n') + 1
}

// Format formats every GML block of a Markdown document. Blocks that fail
// to format stay as they were and are reported in the returned errors.
func Format(content []byte, opts config.FormatOptions) ([]byte, []*BlockError) {
	blocks := Find(content)
	if len(blocks) == 0 {
		return content, nil
	}

	var (
		edits []edit
		errs  []*BlockError
	)
	for _, block := range blocks {
		res, err := format.Format(block.Code, opts)
		if err != nil {
			errs = append(errs, &BlockError{Line: block.Line, Err: err})
			continue
		}
		edits = append(edits, edit{start: block.Start, end: block.End, text: reindent(res.Output, block.Prefix)})
	}

	prepared, err := prepareEdits(edits, len(content))
	if err != nil {
		return content, append(errs, &BlockError{Line: blocks[0].Line, Err: err})
	}
	return applyEdits(content, prepared), errs
}

// reindent puts prefix in front of every line of code and terminates the
// last line. Empty lines get the prefix without trailing blanks.
func reindent(code, prefix string) string {
	if code == "" {
		return ""
	}

	var b strings.Builder
	for line := range strings.SplitSeq(code, "\n") {
		if line == "" {
			b.WriteString(strings.TrimRight(prefix, " \t"))
		} else {
			b.WriteString(prefix)
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatFile formats the GML blocks of the Markdown file at path, writing
// it back when opts.Write is set.
func FormatFile(ctx context.Context, path string, opts format.FileOptions) (*format.FileResult, error) {
	logger := logging.ForFile(ctx, path)

	return format.FormatFileWith(ctx, path, opts, func(src string) (string, error) {
		out, errs := Format([]byte(src), opts.Format)
		for _, err := range errs {
			logger.Warn("code block left unformatted", logging.FieldLine, err.Line, logging.FieldError, err.Err)
		}
		return string(out), nil
	})
}
