package structx

import (
	"strconv"

	"github.com/sprice/legrag/pkg/legxml/tree"
)

// Footnote mirrors legtypes.Footnote without importing legtypes, so this
// leaf package stays dependency-free of the data model package (which
// itself does not depend on structx). legxml converts between the two.
type Footnote struct {
	Ref  string
	Text string
}

// CollectFootnotes gathers every Footnote descendant of e, keyed by its
// own @ref attribute when present, falling back to its 1-based position
// among e's footnotes.
func CollectFootnotes(e *tree.Element) []Footnote {
	var out []Footnote
	n := 0
	for _, fn := range e.FindAll("Footnote") {
		n++
		ref, ok := fn.Attr("ref")
		if !ok || ref == "" {
			ref = strconv.Itoa(n)
		}
		out = append(out, Footnote{Ref: ref, Text: ExtractText(fn)})
	}
	return out
}
