package structx

import (
	"fmt"
	"strings"

	"github.com/sprice/legrag/pkg/legxml/tree"
)

// orderedListStyles maps a List @style value to the HTML <ol type="...">
// value it renders as; any other (or absent) style renders as <ul>.
var orderedListStyles = map[string]string{
	"arabic":      "1",
	"decimal":     "1",
	"lower-roman": "i",
	"upper-roman": "I",
	"lower-alpha": "a",
	"upper-alpha": "A",
}

// RenderList renders a List element to <ul> or <ol type="...">
// depending on its @style attribute, one <li> per Item child.
func RenderList(list *tree.Element) string {
	style, _ := list.Attr("style")
	olType, ordered := orderedListStyles[style]

	var sb strings.Builder
	if ordered {
		sb.WriteString(fmt.Sprintf(`<ol type="%s">`, olType))
	} else {
		sb.WriteString("<ul>")
	}
	for _, item := range list.ChildrenNamed("Item") {
		sb.WriteString("<li>")
		sb.WriteString(EscapeHTML(ExtractText(item)))
		sb.WriteString("</li>")
	}
	if ordered {
		sb.WriteString("</ol>")
	} else {
		sb.WriteString("</ul>")
	}
	return sb.String()
}
