package legxml

import (
	"fmt"
	"strings"

	"github.com/sprice/legrag/pkg/legxml/structx"
	"github.com/sprice/legrag/pkg/legxml/tree"
)

// emphasisStyles maps an Emphasis @style to its HTML wrapper tag.
var emphasisStyles = map[string]string{
	"bold":   "strong",
	"italic": "em",
}

// renderSectionHTML renders a Section element's content to HTML,
// applying the rendering rules of spec.md §4.B. Unrecognized inline
// elements recurse into their children and contribute only their text,
// matching the parser's pass-through failure model.
func renderSectionHTML(section *tree.Element) string {
	var sb strings.Builder
	for _, c := range section.Contents {
		renderContent(&sb, c)
	}
	return sb.String()
}

func renderContent(sb *strings.Builder, c tree.Content) {
	switch v := c.(type) {
	case tree.CharData:
		sb.WriteString(structx.EscapeHTML(v.String()))
	case *tree.Element:
		renderElement(sb, v)
	}
}

func renderChildren(sb *strings.Builder, e *tree.Element) {
	for _, c := range e.Contents {
		renderContent(sb, c)
	}
}

func renderElement(sb *strings.Builder, e *tree.Element) {
	switch e.Name() {
	case "Label", "MarginalNote", "HistoricalNote", "Footnote":
		// Rendered separately onto the Section struct; skip inline.
		return
	case "LineBreak", "PageBreak":
		sb.WriteString("<br>")
	case "List":
		sb.WriteString(structx.RenderList(e))
	case "TableGroup":
		sb.WriteString(structx.RenderTable(e))
	case "ImageGroup":
		sb.WriteString(structx.RenderImageGroup(e))
	case "BilingualGroup":
		sb.WriteString(`<div class="bilingual-group">`)
		for _, item := range e.Children() {
			switch item.Name() {
			case "BilingualItemEn":
				sb.WriteString(`<span lang="en" class="bilingual-en">`)
				renderChildren(sb, item)
				sb.WriteString("</span>")
			case "BilingualItemFr":
				sb.WriteString(`<span lang="fr" class="bilingual-fr">`)
				renderChildren(sb, item)
				sb.WriteString("</span>")
			}
		}
		sb.WriteString("</div>")
	case "Language":
		lang := e.AttrOr("xml:lang", e.AttrOr("lang", ""))
		sb.WriteString(fmt.Sprintf(`<span lang="%s">`, structx.EscapeHTML(lang)))
		renderChildren(sb, e)
		sb.WriteString("</span>")
	case "XRefExternal":
		refType, hasType := e.Attr("reference-type")
		link, hasLink := e.Attr("link")
		text := structx.ExtractText(e)
		if hasType && hasLink && recognizedXRefTypes[refType] {
			href := "/legislation/" + xrefCollection(refType) + "/" + link
			sb.WriteString(fmt.Sprintf(`<a class="xref" href="%s">%s</a>`,
				structx.EscapeHTML(href), structx.EscapeHTML(text)))
		} else {
			sb.WriteString(structx.EscapeHTML(text))
		}
	case "XRefInternal":
		text := structx.ExtractText(e)
		if idref, ok := e.Attr("idref"); ok {
			sb.WriteString(fmt.Sprintf(`<a class="xref-internal" href="#%s">%s</a>`,
				structx.EscapeHTML(idref), structx.EscapeHTML(text)))
		} else {
			sb.WriteString(fmt.Sprintf(`<span class="xref-internal">%s</span>`, structx.EscapeHTML(text)))
		}
	case "Emphasis":
		style, _ := e.Attr("style")
		tag, ok := emphasisStyles[style]
		if !ok {
			tag = "em"
		}
		sb.WriteString("<" + tag + ">")
		renderChildren(sb, e)
		sb.WriteString("</" + tag + ">")
	case "Sup":
		sb.WriteString("<sup>")
		renderChildren(sb, e)
		sb.WriteString("</sup>")
	case "Sub":
		sb.WriteString("<sub>")
		renderChildren(sb, e)
		sb.WriteString("</sub>")
	case "Repealed":
		sb.WriteString(`<span class="repealed">`)
		renderChildren(sb, e)
		sb.WriteString("</span>")
	case "CenteredText":
		sb.WriteString(`<div class="centered-text">`)
		renderChildren(sb, e)
		sb.WriteString("</div>")
	case "Ins", "Del":
		// Change-tracking markers pass through; content is preserved,
		// markers are not, per spec.md §4.B "Change tracking".
		renderChildren(sb, e)
	default:
		renderChildren(sb, e)
	}
}

// xrefCollection maps an XRefExternal reference-type to the URL path
// segment used to build the href, per spec.md §4.B.
func xrefCollection(refType string) string {
	switch refType {
	case "regulation":
		return "regulation"
	default:
		return "act"
	}
}
