package legretrieve

import (
	"fmt"

	"github.com/sprice/legrag/pkg/legcite"
	"github.com/sprice/legrag/pkg/legtypes"
)

// legislationSourceTypes is the set of sourceTypes the citation builder
// treats as "legislation" (prefixedId "L{n}") rather than "parliament"
// (prefixedId "P{n}").
var legislationSourceTypes = map[legtypes.SourceType]bool{
	legtypes.SourceTypeAct:               true,
	legtypes.SourceTypeRegulation:        true,
	legtypes.SourceTypeActSection:        true,
	legtypes.SourceTypeRegulationSection: true,
	legtypes.SourceTypeDefinedTerm:       true,
}

// Citation is a rendered, bilingual citation attached to a search
// result. Both language URLs are carried unconditionally; the renderer
// picks one at display time.
type Citation struct {
	PrefixedID string
	SourceType legtypes.SourceType
	SourceID   string
	URLs       map[legtypes.Language]string
}

// documentKindFor maps a legislation sourceType to the DocumentKind its
// URL path segment depends on.
func documentKindFor(st legtypes.SourceType) legtypes.DocumentKind {
	switch st {
	case legtypes.SourceTypeRegulation, legtypes.SourceTypeRegulationSection:
		return legtypes.DocumentKindRegulation
	default:
		return legtypes.DocumentKindAct
	}
}

// BuildCitations assigns a per-result ordinal prefixed id ("L{n}" for
// legislation, "P{n}" for parliament, numbered independently so the two
// sets never collide) and builds the bilingual URL pair for each
// legislation result. Parliament-sourced results get a prefixed id but
// no URL, since their hydration/link is handled outside legislation.gov.
func BuildCitations(results []SearchResult) []Citation {
	out := make([]Citation, 0, len(results))
	legislationN, parliamentN := 0, 0

	for _, r := range results {
		var c Citation
		c.SourceType = r.SourceType
		c.SourceID = r.SourceID

		if legislationSourceTypes[r.SourceType] {
			legislationN++
			c.PrefixedID = fmt.Sprintf("L%d", legislationN)
			kind := documentKindFor(r.SourceType)
			if sectionLabel, ok := r.Metadata["sectionLabel"].(string); ok && sectionLabel != "" {
				c.URLs = legcite.SectionURL(r.SourceID, sectionLabel, kind)
			} else {
				c.URLs = legcite.DocumentURL(r.SourceID, kind)
			}
		} else {
			parliamentN++
			c.PrefixedID = fmt.Sprintf("P%d", parliamentN)
		}

		out = append(out, c)
	}

	return out
}
