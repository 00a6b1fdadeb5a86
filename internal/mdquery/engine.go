// Package mdquery parses Markdown documents and evaluates the
// sections-with-code query that groups nodes into per-section records.
//
// The package is the document-query boundary of the tool: callers hand it
// raw document text and get back ordered generic key-value records, one per
// section at the requested heading level. Everything downstream works with
// typed entities built from these records.
package mdquery

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Engine evaluates section queries against Markdown documents.
type Engine struct {
	md goldmark.Markdown
}

// NewEngine creates an engine with a CommonMark parser.
func NewEngine() *Engine {
	return &Engine{md: goldmark.New()}
}

// Document is a parsed Markdown document ready for querying.
type Document struct {
	root   ast.Node
	source []byte
}

// Parse parses raw Markdown text into a queryable document.
func (e *Engine) Parse(source []byte) (*Document, error) {
	reader := text.NewReader(source)
	root := e.md.Parser().Parse(reader)
	if root == nil {
		return nil, fmt.Errorf("parser returned no document")
	}
	return &Document{root: root, source: source}, nil
}

// SectionsWithCode groups the document's nodes into one record per heading
// at the target level. Each record is a generic key-value map with keys
// "title" (string), "level" (int), "codes" ([]any of {lang, code} maps) and
// "description" (string, present only when prose follows the heading).
//
// A section spans everything between its heading and the next heading at
// the same or a shallower level. Fenced code under deeper sub-headings
// still belongs to the enclosing section: a task may be documented with
// internal structure.
func (e *Engine) SectionsWithCode(doc *Document, level int) ([]any, error) {
	if level < 1 || level > 6 {
		return nil, fmt.Errorf("heading level %d out of range 1-6", level)
	}

	var records []any
	var current map[string]any
	var codes []any
	descOpen := false

	flush := func() {
		if current == nil {
			return
		}
		current["codes"] = codes
		records = append(records, current)
		current = nil
		codes = nil
	}

	for child := doc.root.FirstChild(); child != nil; child = child.NextSibling() {
		if heading, ok := child.(*ast.Heading); ok {
			if heading.Level <= level {
				flush()
			}
			if heading.Level == level {
				current = map[string]any{
					"title": textOf(heading, doc.source),
					"level": heading.Level,
				}
				codes = []any{}
				descOpen = true
			} else {
				// A sub-heading ends the description prose but not
				// the section's code collection.
				descOpen = false
			}
			continue
		}

		if current == nil {
			continue
		}

		if para, ok := child.(*ast.Paragraph); ok && descOpen {
			if desc := strings.TrimSpace(textOf(para, doc.source)); desc != "" {
				current["description"] = desc
			}
			descOpen = false
			continue
		}

		// Fenced code anywhere under this node belongs to the section,
		// even when nested inside a list item or blockquote.
		if fences := collectFences(child, doc.source); len(fences) > 0 {
			descOpen = false
			codes = append(codes, fences...)
		}
	}
	flush()

	return records, nil
}

// collectFences gathers the fenced code blocks of a node and all of its
// descendants in document order.
func collectFences(n ast.Node, source []byte) []any {
	var fences []any
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if fc, ok := node.(*ast.FencedCodeBlock); ok {
			fences = append(fences, map[string]any{
				"lang": string(fc.Language(source)),
				"code": codeOf(fc, source),
			})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return fences
}

// textOf collects the plain text of a node's inline content.
func textOf(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := node.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte('\n')
			}
		case *ast.CodeSpan:
			for c := t.FirstChild(); c != nil; c = c.NextSibling() {
				if seg, ok := c.(*ast.Text); ok {
					sb.Write(seg.Segment.Value(source))
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

// codeOf returns a fenced code block's body without the fence markers and
// without the fence's trailing newline.
func codeOf(n *ast.FencedCodeBlock, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
