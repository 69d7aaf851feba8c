package web

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHelp_PlainText(t *testing.T) {
	result := RenderHelp("hello world").HTML
	assert.Contains(t, result, "hello world")
}

func TestRenderHelp_Bold(t *testing.T) {
	result := RenderHelp("**bold text**").HTML
	assert.Contains(t, result, "<strong>bold text</strong>")
}

func TestRenderHelp_InlineCode(t *testing.T) {
	result := RenderHelp("use `fmt.Println`").HTML
	assert.Contains(t, result, "<code>fmt.Println</code>")
}

func TestRenderHelp_CodeBlock(t *testing.T) {
	input := "```go\nfmt.Println(\"hello\")\n```"
	result := RenderHelp(input).HTML
	assert.Contains(t, result, "<code")
	assert.Contains(t, result, "fmt.Println")
}

func TestRenderHelp_Link(t *testing.T) {
	result := RenderHelp("[click](https://example.com)").HTML
	assert.Contains(t, result, `<a href="https://example.com"`)
	assert.Contains(t, result, "click</a>")
}

func TestRenderHelp_SanitizesScript(t *testing.T) {
	result := RenderHelp(`<script>alert("xss")</script>`).HTML
	assert.NotContains(t, result, "<script>")
}

func TestRenderHelp_GFMStrikethrough(t *testing.T) {
	result := RenderHelp("~~deleted~~").HTML
	assert.Contains(t, result, "<del>deleted</del>")
}

func TestRenderHelp_GFMTaskList(t *testing.T) {
	result := RenderHelp("- [x] done\n- [ ] todo").HTML
	assert.Contains(t, result, "<li>")
	assert.Contains(t, result, "done")
	assert.Contains(t, result, "todo")
}

func TestRenderHelp_HelpDocument(t *testing.T) {
	result := RenderHelp(helpMarkdown).HTML

	assert.Contains(t, result, "<h1")
	assert.Contains(t, result, "<table>")
	assert.Contains(t, result, "Mark all congregation")
	assert.True(t, strings.Contains(result, "<code>") || strings.Contains(result, "<pre>"))
}

func TestRenderHelp_Sections(t *testing.T) {
	doc := RenderHelp(helpMarkdown)

	require.Len(t, doc.Sections, 4)
	assert.Equal(t, HelpSection{ID: "recording-a-day", Title: "Recording a day"}, doc.Sections[0])
	assert.Equal(t, "data-manager", doc.Sections[2].ID)
	assert.Equal(t, "Command line", doc.Sections[3].Title)
	assert.Contains(t, doc.HTML, `id="data-manager"`)
}

func TestRenderHelp_Empty(t *testing.T) {
	doc := RenderHelp("")

	assert.Empty(t, doc.HTML)
	assert.Empty(t, doc.Sections)
}
