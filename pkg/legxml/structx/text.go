// Package structx provides the structural utilities shared by the XML
// document parser: date parsing, text extraction, table/list/image
// rendering, footnote and historical-note collection, heading
// extraction, and the paired-defined-term walker.
package structx

import (
	"html"
	"regexp"
	"strings"

	"github.com/sprice/legrag/pkg/legxml/tree"
)

var whitespaceRun = regexp.MustCompile(`[ \t\r\n]+`)

// ExtractText recursively collects all CharData under e, normalizing
// whitespace runs to a single space and trimming the result. Repealed
// markers, footnote refs and other non-text elements still contribute
// their own text content since the element taxonomy routes "no visible
// text" elements (e.g. Ins/Del) to this same function deliberately —
// pass-through, not suppression.
func ExtractText(e *tree.Element) string {
	var sb strings.Builder
	collectText(e, &sb)
	return normalizeWhitespace(sb.String())
}

func collectText(e *tree.Element, sb *strings.Builder) {
	for _, c := range e.Contents {
		switch v := c.(type) {
		case tree.CharData:
			sb.Write(v)
		case *tree.Element:
			switch v.Name() {
			case "LineBreak", "PageBreak":
				sb.WriteString("\n")
			default:
				collectText(v, sb)
			}
		}
	}
}

func normalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// CollectLines splits a container element's children into one trimmed
// text line per direct child (used for BillHistory-style lists where
// each child element is logically one history entry).
func CollectLines(e *tree.Element) []string {
	var out []string
	for _, child := range e.Children() {
		if text := ExtractText(child); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// EscapeHTML XML/HTML-escapes text for inclusion in rendered markup.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}
