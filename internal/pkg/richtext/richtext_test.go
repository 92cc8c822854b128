package richtext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `{
  "type": "doc",
  "content": [
    {"type": "heading", "attrs": {"level": 2}, "content": [{"type": "text", "text": "Graph Neural Networks"}]},
    {"type": "paragraph", "content": [
      {"type": "text", "text": "We study "},
      {"type": "text", "text": "message passing", "marks": [{"type": "bold"}, {"type": "italic"}]},
      {"type": "hardBreak"},
      {"type": "text", "text": "see ", "marks": []},
      {"type": "text", "text": "the paper", "marks": [{"type": "link", "attrs": {"href": "https://arxiv.org/abs/1"}}]}
    ]},
    {"type": "bulletList", "content": [
      {"type": "listItem", "content": [{"type": "paragraph", "content": [{"type": "text", "text": "one"}]}]},
      {"type": "listItem", "content": [{"type": "paragraph", "content": [{"type": "text", "text": "two"}]}]}
    ]}
  ]
}`

func TestToHTML(t *testing.T) {
	out, err := ToHTML(sampleDoc)
	require.NoError(t, err)

	assert.Contains(t, out, "<h2>Graph Neural Networks</h2>")
	assert.Contains(t, out, "<strong><em>message passing</em></strong>")
	assert.Contains(t, out, "<br")
	assert.Contains(t, out, `href="https://arxiv.org/abs/1"`)
	assert.Contains(t, out, "<ul><li><p>one</p></li><li><p>two</p></li></ul>")
}

func TestToHTMLEscapesText(t *testing.T) {
	doc := `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"<script>alert(1)</script>"}]}]}`

	out, err := ToHTML(doc)
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestToHTMLDropsJavascriptLinks(t *testing.T) {
	doc := `{"type":"doc","content":[{"type":"paragraph","content":[
		{"type":"text","text":"click","marks":[{"type":"link","attrs":{"href":"javascript:alert(1)"}}]}]}]}`

	out, err := ToHTML(doc)
	require.NoError(t, err)
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, "click")
}

func TestHeadingLevelIsClamped(t *testing.T) {
	doc := `{"type":"doc","content":[{"type":"heading","attrs":{"level":9},"content":[{"type":"text","text":"x"}]}]}`

	out, err := ToHTML(doc)
	require.NoError(t, err)
	assert.Equal(t, "<h1>x</h1>", out)
}

func TestPlainText(t *testing.T) {
	text, err := PlainText(sampleDoc)
	require.NoError(t, err)
	assert.Equal(t, "Graph Neural Networks\nWe study message passing see the paper\none\ntwo", text)
}

func TestParseRejectsNonDocuments(t *testing.T) {
	for _, raw := range []string{"", "plain words", `{"type":"paragraph"}`, `[1,2]`} {
		_, err := Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidDocument, raw)
		assert.Error(t, Validate(raw))
	}
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", Excerpt("short", 50))
	assert.Equal(t, "a b", Excerpt("  a\n\tb ", 50))

	long := strings.Repeat("ğ", 60)
	assert.Equal(t, strings.Repeat("ğ", 50)+"...", Excerpt(long, 50))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", Truncate("", 50))
	assert.Equal(t, "a b", Truncate("  a\n\tb ", 50))

	long := strings.Repeat("ğ", 60)
	assert.Equal(t, strings.Repeat("ğ", 50), Truncate(long, 50))
}
