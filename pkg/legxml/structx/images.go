package structx

import (
	"fmt"
	"strings"

	"github.com/sprice/legrag/pkg/legxml/tree"
)

// NormalizeImageSource rewrites a relative Image @source into the
// published /legislation/images/{name} path; absolute URLs and paths
// already under a scheme pass through unchanged.
func NormalizeImageSource(source string) string {
	if source == "" {
		return ""
	}
	if strings.Contains(source, "://") || strings.HasPrefix(source, "/") {
		return source
	}
	name := source
	if idx := strings.LastIndexByte(source, '/'); idx >= 0 {
		name = source[idx+1:]
	}
	return "/legislation/images/" + name
}

// RenderImageGroup renders an ImageGroup to a <figure> wrapping an <img>,
// carrying @position as data-position when present.
func RenderImageGroup(group *tree.Element) string {
	var sb strings.Builder
	sb.WriteString(`<figure class="image-group"`)
	if pos, ok := group.Attr("position"); ok {
		sb.WriteString(fmt.Sprintf(` data-position="%s"`, EscapeHTML(pos)))
	}
	sb.WriteString(">")
	for _, img := range group.ChildrenNamed("Image") {
		src, _ := img.Attr("source")
		sb.WriteString(fmt.Sprintf(`<img class="legislation-image" loading="lazy" src="%s">`,
			EscapeHTML(NormalizeImageSource(src))))
	}
	if caption := group.First("Caption"); caption != nil {
		sb.WriteString("<figcaption>")
		sb.WriteString(EscapeHTML(ExtractText(caption)))
		sb.WriteString("</figcaption>")
	}
	sb.WriteString("</figure>")
	return sb.String()
}
