package structx

import "github.com/sprice/legrag/pkg/legxml/tree"

// FindPairedTerm returns the text of the first occurrence of
// oppositeElement (DefinedTermFr when parsing an English document, or
// DefinedTermEn when parsing a French one) anywhere within the
// definition subtree, searching arbitrary nesting (Text, Paragraph,
// Subparagraph, Clause, Subclause, ContinuedParagraph,
// ContinuedDefinition, ContinuedSectionSubsection). Returns "" if none is
// found.
func FindPairedTerm(definition *tree.Element, oppositeElement string) string {
	matches := definition.FindAll(oppositeElement)
	if len(matches) == 0 {
		return ""
	}
	return ExtractText(matches[0])
}
