package web

import (
	"bytes"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

var (
	mdRenderer    goldmark.Markdown
	htmlSanitizer *bluemonday.Policy
)

func init() {
	mdRenderer = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	htmlSanitizer = bluemonday.UGCPolicy()
	htmlSanitizer.AllowAttrs("id").Matching(regexp.MustCompile(`^[a-z0-9-]+$`)).OnElements("h1", "h2", "h3")
}

// HelpSection is a second-level heading of a rendered document, used for the
// in-page table of contents.
type HelpSection struct {
	ID    string
	Title string
}

// HelpDocument is markdown rendered to sanitized HTML plus its sections.
type HelpDocument struct {
	HTML     string
	Sections []HelpSection
}

// RenderHelp parses src once, collects its level-2 headings, and renders it
// to sanitized HTML. Headings get generated ids so sections can be linked.
func RenderHelp(src string) HelpDocument {
	var doc HelpDocument
	if src == "" {
		return doc
	}

	source := []byte(src)
	root := mdRenderer.Parser().Parse(text.NewReader(source))

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		heading, ok := n.(*ast.Heading)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}
		if heading.Level == 2 {
			doc.Sections = append(doc.Sections, HelpSection{
				ID:    headingID(heading),
				Title: string(heading.Text(source)),
			})
		}
		return ast.WalkSkipChildren, nil
	})

	var buf bytes.Buffer
	if err := mdRenderer.Renderer().Render(&buf, source, root); err != nil {
		doc.HTML = htmlSanitizer.Sanitize(src)
		return doc
	}
	doc.HTML = htmlSanitizer.Sanitize(buf.String())

	return doc
}

func headingID(h *ast.Heading) string {
	v, ok := h.AttributeString("id")
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case []byte:
		return string(id)
	case string:
		return id
	}
	return ""
}
