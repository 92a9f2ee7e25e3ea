package legxml

import (
	"strings"

	"github.com/sprice/legrag/pkg/legtypes"
	"github.com/sprice/legrag/pkg/legxml/structx"
	"github.com/sprice/legrag/pkg/legxml/tree"
)

// containerElements are the body containers that carry a heading onto
// the hierarchyPath but are not themselves sections.
var containerElements = map[string]bool{
	"Part": true, "Division": true, "Subdivision": true, "Group": true,
}

// walkBody recursively walks Body's children in document order,
// maintaining the hierarchyPath of enclosing headings and emitting one
// Section per Section/Subsection-bearing element encountered.
func walkBody(st *parseState, container *tree.Element) {
	for _, child := range container.Children() {
		switch {
		case child.Name() == "Section":
			handleSection(st, child)
		case child.Name() == "ContinuedDefinition":
			handleContinuedDefinition(st, child)
		case containerElements[child.Name()]:
			h := structx.ExtractHeading(child)
			label := strings.TrimSpace(h.Label + " " + h.Title)
			st.hierarchyStack = append(st.hierarchyStack, strings.TrimSpace(label))
			walkBody(st, child)
			st.hierarchyStack = st.hierarchyStack[:len(st.hierarchyStack)-1]
		case child.Name() == "Introduction", child.Name() == "Enacts", child.Name() == "DocumentInternal":
			walkBody(st, child)
		}
	}
}

// handleSection builds one legtypes.Section (plus any harvested defined
// terms and cross-references) from a Section element and appends it to
// st.sections in document order.
func handleSection(st *parseState, section *tree.Element) {
	sec := legtypes.Section{
		Language:      st.lang,
		ActID:         st.parentActID(),
		RegulationID:  st.parentRegulationID(),
		SectionOrder:  st.sectionOrder,
		SectionType:   legtypes.SectionTypeSection,
		HierarchyPath: append([]string(nil), st.hierarchyStack...),
		ScheduleID:    st.scheduleID,
	}
	st.sectionOrder++

	if st.inSchedule {
		if st.scheduleAmended {
			sec.SectionType = legtypes.SectionTypeAmending
			sec.ContentFlags |= legtypes.ContentFlagAmending
		} else {
			sec.SectionType = legtypes.SectionTypeSchedule
		}
		sec.ContentFlags |= legtypes.ContentFlagHasSchedule
	}

	if label := section.First("Label"); label != nil {
		sec.SectionLabel = structx.ExtractText(label)
	}
	if mn := section.First("MarginalNote"); mn != nil {
		sec.MarginalNote = structx.ExtractText(mn)
	}
	if xmlType, ok := section.Attr("type"); ok {
		sec.XMLType = xmlType
	}
	if target, ok := section.Attr("idref"); ok {
		sec.XMLTarget = target
	}

	sec.CanonicalSectionID = canonicalSectionID(st, sec.SectionLabel, sec.ScheduleID)

	if structx.IsRepealed(section) {
		sec.Status = legtypes.StatusRepealed
	} else {
		sec.Status = legtypes.StatusInForce
	}

	sec.Content = structx.ExtractText(section)
	sec.ContentHTML = renderSectionHTML(section)

	if lims := structx.ExtractLimsMetadata(section); lims != nil {
		sec.FormattingAttributes = lims
		sec.ContentFlags |= legtypes.ContentFlagLimsMetadata
		if v, ok := lims["lims:inforce-start-date"]; ok {
			sec.InForceStartDate = v
		}
	}

	if notes := structx.CollectHistoricalNotes(section); len(notes) > 0 {
		sec.HistoricalNotes = make([]legtypes.HistoricalNote, len(notes))
		for i, n := range notes {
			sec.HistoricalNotes[i] = legtypes.HistoricalNote{
				Citation: n.Citation, EnactedDate: n.EnactedDate,
				InForceDate: n.InForceDate, Text: n.Text,
			}
		}
	}
	if fns := structx.CollectFootnotes(section); len(fns) > 0 {
		sec.Footnotes = make([]legtypes.Footnote, len(fns))
		for i, f := range fns {
			sec.Footnotes[i] = legtypes.Footnote{Ref: f.Ref, Text: f.Text}
		}
	}

	setContentFlags(&sec, section)
	extractInternalReferences(st, &sec, section)

	if sec.InForceStartDate != "" && sec.ContentFlags.Has(legtypes.ContentFlagAmending) {
		st.warnings = append(st.warnings, "section "+sec.SectionLabel+
			": lims:inforce-start-date present alongside a CIF/amending schedule type; not reconciled, see DESIGN.md open question (a)")
	}

	st.sections = append(st.sections, sec)

	extractDefinitions(st, section, sec.SectionLabel)
	extractCrossReferences(st, section, sec.SectionLabel)
}

// handleContinuedDefinition handles a labeled ContinuedDefinition block
// that appears as a direct Body/Part child rather than nested inside a
// Section (a page-break continuation carrying its own label). Per
// DESIGN.md open question (b), each labeled continuation becomes its own
// Section — in both EN and FR parses — rather than being folded into a
// neighboring section, so sectionOrder parity stays consistent across
// languages even when only one language's source splits the block.
func handleContinuedDefinition(st *parseState, cont *tree.Element) {
	label, _ := cont.Attr("label")
	if label == "" {
		if l := cont.First("Label"); l != nil {
			label = structx.ExtractText(l)
		}
	}
	if label == "" {
		return
	}
	sec := legtypes.Section{
		Language:      st.lang,
		ActID:         st.parentActID(),
		RegulationID:  st.parentRegulationID(),
		SectionOrder:  st.sectionOrder,
		SectionType:   legtypes.SectionTypeSection,
		SectionLabel:  label,
		HierarchyPath: append([]string(nil), st.hierarchyStack...),
		Status:        legtypes.StatusInForce,
		Content:       structx.ExtractText(cont),
		ContentHTML:   renderSectionHTML(cont),
	}
	st.sectionOrder++
	sec.CanonicalSectionID = canonicalSectionID(st, label, "") + "/cont-" + label
	setContentFlags(&sec, cont)
	st.sections = append(st.sections, sec)
	extractDefinitions(st, cont, label)
}

func canonicalSectionID(st *parseState, label, scheduleID string) string {
	docID := st.parentActID()
	if docID == "" {
		docID = st.parentRegulationID()
	}
	id := "" + docID + "/" + string(st.lang) + "/s" + label
	if scheduleID != "" {
		id += "/" + scheduleID
	}
	return id
}

func setContentFlags(sec *legtypes.Section, section *tree.Element) {
	if len(section.FindAll("TableGroup")) > 0 {
		sec.ContentFlags |= legtypes.ContentFlagHasTable
	}
	if len(section.FindAll("Formula")) > 0 || len(section.FindAll("FormulaGroup")) > 0 {
		sec.ContentFlags |= legtypes.ContentFlagHasFormula
	}
	if len(section.FindAll("ImageGroup")) > 0 {
		sec.ContentFlags |= legtypes.ContentFlagHasImage
	}
	if len(section.FindAll("BilingualGroup")) > 0 {
		sec.ContentFlags |= legtypes.ContentFlagBilingualGroup
	}
}

func extractInternalReferences(st *parseState, sec *legtypes.Section, section *tree.Element) {
	for _, xref := range section.FindAll("XRefInternal") {
		ref := legtypes.InternalReference{
			TargetLabel:   strings.TrimSpace(structx.ExtractText(xref)),
			ReferenceText: strings.TrimSpace(structx.ExtractText(xref)),
		}
		if idref, ok := xref.Attr("idref"); ok {
			ref.TargetID = idref
		}
		sec.InternalReferences = append(sec.InternalReferences, ref)
		st.refs = append(st.refs, legtypes.CrossReference{
			SourceActID:        st.parentActID(),
			SourceRegulationID: st.parentRegulationID(),
			SourceSectionLabel: sec.SectionLabel,
			TargetType:         legtypes.TargetTypeSection,
			TargetRef:          ref.TargetLabel,
			ReferenceText:      ref.ReferenceText,
		})
	}
}

// extractCrossReferences harvests XRefExternal cross-references from a
// section. Unknown reference-type attributes and missing @link cause
// the reference to be dropped silently, per spec.md §4.B.
func extractCrossReferences(st *parseState, section *tree.Element, sectionLabel string) {
	for _, xref := range section.FindAll("XRefExternal") {
		refType, hasType := xref.Attr("reference-type")
		link, hasLink := xref.Attr("link")
		if !hasType || !hasLink || !recognizedXRefTypes[refType] {
			continue
		}
		st.refs = append(st.refs, legtypes.CrossReference{
			SourceActID:        st.parentActID(),
			SourceRegulationID: st.parentRegulationID(),
			SourceSectionLabel: sectionLabel,
			TargetType:         legtypes.CrossReferenceTargetType(refType),
			TargetRef:          link,
			ReferenceText:      structx.ExtractText(xref),
		})
	}
}

// extractDefinitions harvests DefinedTerm entries from every Definition
// wrapper in a section. Bare DefinedTermEn/Fr occurrences outside a
// Definition wrapper (e.g. a cross-reference to a term defined
// elsewhere) are never harvested as terms, regardless of whether the
// section also contains Definition wrappers.
func extractDefinitions(st *parseState, section *tree.Element, sectionLabel string) {
	ownTermElement := "DefinedTermEn"
	oppositeTermElement := "DefinedTermFr"
	if st.lang == legtypes.LanguageFR {
		ownTermElement, oppositeTermElement = "DefinedTermFr", "DefinedTermEn"
	}

	for _, def := range section.FindAll("Definition") {
		termEls := def.FindAnyOf(ownTermElement)
		if len(termEls) == 0 {
			continue
		}
		term := structx.ExtractText(termEls[0])
		if term == "" {
			continue
		}
		paired := structx.FindPairedTerm(def, oppositeTermElement)

		scopeType := legtypes.ScopeTypePart
		var scopeSections []string
		if len(st.hierarchyStack) == 0 {
			scopeType = legtypes.ScopeTypeAct
		} else {
			scopeSections = append([]string(nil), st.hierarchyStack...)
		}

		st.terms = append(st.terms, legtypes.DefinedTerm{
			Language:      st.lang,
			Term:          term,
			PairedTerm:    paired,
			ActID:         st.parentActID(),
			RegulationID:  st.parentRegulationID(),
			SectionLabel:  sectionLabel,
			ScopeType:     scopeType,
			ScopeSections: scopeSections,
		})
	}
}
