package legxml

import (
	"strings"

	"github.com/sprice/legrag/pkg/legtypes"
	"github.com/sprice/legrag/pkg/legxml/structx"
	"github.com/sprice/legrag/pkg/legxml/tree"
)

// walkSchedule processes one top-level Schedule element: it tags all
// contained sections as "amending" rather than "schedule" when the
// schedule heading or a descendant Section carries @type of "amending"
// or "CIF", or the schedule's id is "NifProvs" (spec.md §4.B "Schedule
// type derivation"). DocumentInternal/Provision content produces one
// section per Provision, with hierarchyPath carrying enclosing
// Group/GroupHeading labels.
func walkSchedule(st *parseState, schedule *tree.Element) {
	scheduleID, _ := schedule.Attr("id")
	amended := scheduleID == "NifProvs"
	if !amended {
		if h := schedule.First("Heading"); h != nil {
			if t, ok := h.Attr("type"); ok && schedulePhaseTypes[t] {
				amended = true
			}
		}
	}
	if !amended {
		for _, s := range schedule.FindAnyOf("Section", "Provision") {
			if t, ok := s.Attr("type"); ok && schedulePhaseTypes[t] {
				amended = true
				break
			}
		}
	}

	prevInSchedule, prevID, prevAmended := st.inSchedule, st.scheduleID, st.scheduleAmended
	st.inSchedule = true
	st.scheduleID = scheduleID
	st.scheduleAmended = amended
	defer func() {
		st.inSchedule, st.scheduleID, st.scheduleAmended = prevInSchedule, prevID, prevAmended
	}()

	for _, child := range schedule.Children() {
		switch child.Name() {
		case "Section":
			handleSection(st, child)
		case "DocumentInternal":
			walkDocumentInternal(st, child)
		case "Group":
			h := structx.ExtractHeading(child)
			label := strings.TrimSpace(h.Label + " " + h.Title)
			st.hierarchyStack = append(st.hierarchyStack, strings.TrimSpace(label))
			for _, gc := range child.Children() {
				switch gc.Name() {
				case "Section":
					handleSection(st, gc)
				case "DocumentInternal":
					walkDocumentInternal(st, gc)
				}
			}
			st.hierarchyStack = st.hierarchyStack[:len(st.hierarchyStack)-1]
		}
	}
}

// walkDocumentInternal emits one Section per Provision child,
// capturing a ProvisionHeading from any ProvisionHeading element.
func walkDocumentInternal(st *parseState, docInternal *tree.Element) {
	for _, prov := range docInternal.ChildrenNamed("Provision") {
		sec := legtypes.Section{
			Language:      st.lang,
			ActID:         st.parentActID(),
			RegulationID:  st.parentRegulationID(),
			SectionOrder:  st.sectionOrder,
			HierarchyPath: append([]string(nil), st.hierarchyStack...),
			ScheduleID:    st.scheduleID,
			Status:        legtypes.StatusInForce,
		}
		st.sectionOrder++

		if st.scheduleAmended {
			sec.SectionType = legtypes.SectionTypeAmending
			sec.ContentFlags |= legtypes.ContentFlagAmending
		} else {
			sec.SectionType = legtypes.SectionTypeSchedule
		}
		sec.ContentFlags |= legtypes.ContentFlagHasSchedule

		if label := prov.First("Label"); label != nil {
			sec.SectionLabel = structx.ExtractText(label)
		}
		sec.CanonicalSectionID = canonicalSectionID(st, sec.SectionLabel, sec.ScheduleID)

		if ph := prov.First("ProvisionHeading"); ph != nil {
			sec.ProvisionHeading = &legtypes.ProvisionHeading{
				Text:         structx.ExtractText(ph),
				FormatRef:    ph.AttrOr("format-ref", ""),
				LimsMetadata: structx.ExtractLimsMetadata(ph),
			}
		}

		if structx.IsRepealed(prov) {
			sec.Status = legtypes.StatusRepealed
		}

		sec.Content = structx.ExtractText(prov)
		sec.ContentHTML = renderSectionHTML(prov)
		setContentFlags(&sec, prov)

		st.sections = append(st.sections, sec)

		extractDefinitions(st, prov, sec.SectionLabel)
		extractCrossReferences(st, prov, sec.SectionLabel)
	}
}
