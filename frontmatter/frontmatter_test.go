package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMarkdown(t *testing.T) {
	src := "---\n" +
		"minRead: 5\n" +
		"date: 2025-02-14\n" +
		"tags: [go, web]\n" +
		"author:\n" +
		"  name: Doctor Nyte\n" +
		"---\n" +
		"# Hello\n\nFirst paragraph.\n"

	doc, err := Parse("blog/hello.md", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, 5, doc.Meta["minRead"])
	assert.Equal(t, "2025-02-14", doc.Meta["date"], "timestamps stay strings until a schema parses them")
	assert.Equal(t, []any{"go", "web"}, doc.Meta["tags"])
	assert.Equal(t, map[string]any{"name": "Doctor Nyte"}, doc.Meta["author"])
	assert.Equal(t, "# Hello\n\nFirst paragraph.\n", doc.Body)
	assert.Equal(t, 8, doc.BodyLine)
}

func TestParseMarkdownWithoutFrontMatter(t *testing.T) {
	doc, err := Parse("notes.md", []byte("# Just a body\n"))
	require.NoError(t, err)
	assert.Empty(t, doc.Meta)
	assert.Equal(t, "# Just a body\n", doc.Body)
}

func TestParseMarkdownUnclosed(t *testing.T) {
	_, err := Parse("bad.md", []byte("---\ntitle: x\n# body\n"))
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "bad.md", pe.File)
	assert.Equal(t, 1, pe.Line)
}

func TestParseMarkdownBadYAMLReportsFileLine(t *testing.T) {
	_, err := Parse("bad.md", []byte("---\ntitle: ok\nlinks: [a, b\n---\nbody\n"))
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Greater(t, pe.Line, 1)
}

func TestParseYAMLData(t *testing.T) {
	doc, err := Parse("blog.yml", []byte("links:\n  - label: Home\n    color: primary\n"))
	require.NoError(t, err)
	assert.Empty(t, doc.Body)
	assert.Equal(t, []any{map[string]any{"label": "Home", "color": "primary"}}, doc.Meta["links"])
}

func TestParseEmptyYAML(t *testing.T) {
	doc, err := Parse("index.yml", nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Meta)
}

func TestParseRejectsNonMapping(t *testing.T) {
	_, err := Parse("list.yaml", []byte("- a\n- b\n"))
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestParseRejectsDuplicateKeys(t *testing.T) {
	_, err := Parse("dup.yml", []byte("title: a\ntitle: b\n"))
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestParseJSON(t *testing.T) {
	doc, err := Parse("team.json", []byte(`{"minRead": 4, "ratio": 0.5, "nested": {"n": [1, 2]}}`))
	require.NoError(t, err)
	assert.Equal(t, int64(4), doc.Meta["minRead"])
	assert.Equal(t, 0.5, doc.Meta["ratio"])
	assert.Equal(t, map[string]any{"n": []any{int64(1), int64(2)}}, doc.Meta["nested"])
}

func TestParseUnsupported(t *testing.T) {
	_, err := Parse("logo.png", []byte{0x89})
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.False(t, Supported("logo.png"))
	assert.True(t, Supported("About.YML"))
}

func TestSplitCRLF(t *testing.T) {
	front, body, line, ok := Split([]byte("---\r\ntitle: x\r\n---\r\nbody\r\n"))
	require.True(t, ok)
	assert.Equal(t, "title: x\r\n", string(front))
	assert.Equal(t, "body\r\n", string(body))
	assert.Equal(t, 4, line)
}

func TestParseNonStringKeys(t *testing.T) {
	doc, err := Parse("about.yml", []byte("content:\n  2024: launched\n  title: hi\n  nested:\n    - 1: one\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"2024":   "launched",
		"title":  "hi",
		"nested": []any{map[string]any{"1": "one"}},
	}, doc.Meta["content"])
}

func TestParseMarkdownUnclosedCRLF(t *testing.T) {
	_, err := Parse("blog/x.md", []byte("---\r\ntitle: x\r\n# body\r\n"))
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Line)
}
