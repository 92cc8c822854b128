// Package richtext renders editor documents stored as JSON into sanitized HTML
// and plain text.
package richtext

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// ErrInvalidDocument is returned when the input is not an editor document
var ErrInvalidDocument = errors.New("invalid rich text document")

// Node is one element of an editor document tree
type Node struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []Node         `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
}

// Mark decorates a text node
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

var policy = bluemonday.UGCPolicy()

// Parse decodes a document and checks that its root is a doc node
func Parse(raw string) (*Node, error) {
	var doc Node
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if doc.Type != "doc" {
		return nil, fmt.Errorf("%w: root node is %q", ErrInvalidDocument, doc.Type)
	}
	return &doc, nil
}

// Validate reports whether raw is a well formed document
func Validate(raw string) error {
	_, err := Parse(raw)
	return err
}

// ToHTML renders the document and sanitizes the result with the UGC policy
func ToHTML(raw string) (string, error) {
	doc, err := Parse(raw)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, n := range doc.Content {
		renderNode(&b, n)
	}
	return policy.Sanitize(b.String()), nil
}

// PlainText extracts the text content, with blocks separated by a newline
func PlainText(raw string) (string, error) {
	doc, err := Parse(raw)
	if err != nil {
		return "", err
	}
	var blocks []string
	collectBlocks(doc.Content, &blocks)
	return strings.Join(blocks, "\n"), nil
}

// Excerpt returns the first n runes of s, appending "..." when s was cut
func Excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return Truncate(s, n) + "..."
}

// Truncate collapses whitespace in s and keeps at most its first n runes
func Truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n]))
}

func renderNode(b *strings.Builder, n Node) {
	switch n.Type {
	case "text":
		renderText(b, n)
	case "paragraph":
		wrap(b, "p", n.Content)
	case "heading":
		level := intAttr(n.Attrs, "level", 1)
		if level < 1 || level > 6 {
			level = 1
		}
		wrap(b, "h"+strconv.Itoa(level), n.Content)
	case "bulletList":
		wrap(b, "ul", n.Content)
	case "orderedList":
		wrap(b, "ol", n.Content)
	case "listItem":
		wrap(b, "li", n.Content)
	case "blockquote":
		wrap(b, "blockquote", n.Content)
	case "codeBlock":
		b.WriteString("<pre><code>")
		for _, c := range n.Content {
			b.WriteString(html.EscapeString(c.Text))
		}
		b.WriteString("</code></pre>")
	case "hardBreak":
		b.WriteString("<br>")
	case "horizontalRule":
		b.WriteString("<hr>")
	default:
		// Unknown nodes keep their children
		for _, c := range n.Content {
			renderNode(b, c)
		}
	}
}

func wrap(b *strings.Builder, tag string, children []Node) {
	b.WriteString("<" + tag + ">")
	for _, c := range children {
		renderNode(b, c)
	}
	b.WriteString("</" + tag + ">")
}

func renderText(b *strings.Builder, n Node) {
	var open, closing []string
	for _, m := range n.Marks {
		var start, end string
		switch m.Type {
		case "bold":
			start, end = "<strong>", "</strong>"
		case "italic":
			start, end = "<em>", "</em>"
		case "underline":
			start, end = "<u>", "</u>"
		case "strike":
			start, end = "<s>", "</s>"
		case "code":
			start, end = "<code>", "</code>"
		case "link":
			href, _ := m.Attrs["href"].(string)
			start, end = `<a href="`+html.EscapeString(href)+`">`, "</a>"
		default:
			continue
		}
		open = append(open, start)
		closing = append([]string{end}, closing...)
	}
	b.WriteString(strings.Join(open, ""))
	b.WriteString(html.EscapeString(n.Text))
	b.WriteString(strings.Join(closing, ""))
}

func collectBlocks(nodes []Node, blocks *[]string) {
	for _, n := range nodes {
		switch n.Type {
		case "paragraph", "heading", "codeBlock":
			if t := strings.TrimSpace(inlineText(n.Content)); t != "" {
				*blocks = append(*blocks, t)
			}
		default:
			collectBlocks(n.Content, blocks)
		}
	}
}

func inlineText(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		switch n.Type {
		case "text":
			b.WriteString(n.Text)
		case "hardBreak":
			b.WriteString(" ")
		default:
			b.WriteString(inlineText(n.Content))
		}
	}
	return b.String()
}

func intAttr(attrs map[string]any, key string, def int) int {
	// JSON numbers decode as float64
	if v, ok := attrs[key].(float64); ok {
		return int(v)
	}
	return def
}
