package structx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sprice/legrag/pkg/legxml/tree"
)

// RenderTable renders a TableGroup/table CALS element to an HTML
// <table>, preserving @frame/@colsep/@rowsep/@bilingual as data-*
// attributes, translating cell @align to an inline style, @morerows=N to
// rowspan=N+1, and thead @valign to data-valign.
func RenderTable(tableGroup *tree.Element) string {
	table := tableGroup.First("table")
	if table == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("<table")
	writeDataAttr(&sb, "frame", table)
	writeDataAttr(&sb, "colsep", table)
	writeDataAttr(&sb, "rowsep", table)
	if bilingual, ok := tableGroup.Attr("bilingual"); ok {
		sb.WriteString(fmt.Sprintf(` data-bilingual="%s"`, EscapeHTML(bilingual)))
	}
	sb.WriteString(">")

	for _, tgroup := range table.ChildrenNamed("tgroup") {
		if thead := tgroup.First("thead"); thead != nil {
			sb.WriteString("<thead")
			if valign, ok := thead.Attr("valign"); ok {
				sb.WriteString(fmt.Sprintf(` data-valign="%s"`, EscapeHTML(valign)))
			}
			sb.WriteString(">")
			renderRows(&sb, thead, "th")
			sb.WriteString("</thead>")
		}
		if tbody := tgroup.First("tbody"); tbody != nil {
			sb.WriteString("<tbody>")
			renderRows(&sb, tbody, "td")
			sb.WriteString("</tbody>")
		}
	}
	sb.WriteString("</table>")
	return sb.String()
}

func renderRows(sb *strings.Builder, container *tree.Element, cellTag string) {
	for _, row := range container.ChildrenNamed("row") {
		sb.WriteString("<tr>")
		for _, entry := range row.ChildrenNamed("entry") {
			sb.WriteString("<" + cellTag)
			if align, ok := entry.Attr("align"); ok {
				sb.WriteString(fmt.Sprintf(` style="text-align:%s"`, EscapeHTML(align)))
			}
			if morerows, ok := entry.Attr("morerows"); ok {
				if n, err := strconv.Atoi(morerows); err == nil {
					sb.WriteString(fmt.Sprintf(` rowspan="%d"`, n+1))
				}
			}
			sb.WriteString(">")
			sb.WriteString(EscapeHTML(ExtractText(entry)))
			sb.WriteString("</" + cellTag + ">")
		}
		sb.WriteString("</tr>")
	}
}

func writeDataAttr(sb *strings.Builder, name string, el *tree.Element) {
	if v, ok := el.Attr(name); ok {
		sb.WriteString(fmt.Sprintf(` data-%s="%s"`, name, EscapeHTML(v)))
	}
}
