package legxml

import (
	"fmt"
	"os"
	"strings"

	"github.com/sprice/legrag/pkg/legerrors"
	"github.com/sprice/legrag/pkg/legtypes"
	"github.com/sprice/legrag/pkg/legxml/structx"
	"github.com/sprice/legrag/pkg/legxml/tree"
)

// parseState is the mutable visitor bag the element-dispatch walk writes
// into. Traversal is a recursive function over the tagged XML tree plus
// this bag — no reflection, no per-element struct unmarshalling.
type parseState struct {
	lang            legtypes.Language
	docKind         legtypes.DocumentKind
	act             *legtypes.ActFields
	regulation      *legtypes.RegulationFields
	sections        []legtypes.Section
	terms           []legtypes.DefinedTerm
	refs            []legtypes.CrossReference
	warnings        []string
	sectionOrder    int
	hierarchyStack  []string
	inSchedule      bool
	scheduleID      string
	scheduleAmended bool
}

func (s *parseState) parentActID() string {
	if s.docKind == legtypes.DocumentKindAct && s.act != nil {
		return s.act.ActID
	}
	return ""
}

func (s *parseState) parentRegulationID() string {
	if s.docKind == legtypes.DocumentKindRegulation && s.regulation != nil {
		return s.regulation.RegulationID
	}
	return ""
}

// ParseLegislationXML decodes one legislation XML file at path, declared
// in the given language, into a ParsedDocument. Malformed XML, a missing
// Identification block, or a missing ChapterNumber/InstrumentNumber all
// yield legerrors.ErrParseFailure; the parser never returns a partial
// document on those failures. Unrecognized inline elements pass through
// as text and never fail the parse.
func ParseLegislationXML(path string, lang legtypes.Language) (*legtypes.ParsedDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("legxml: open %s: %w", path, err)
	}
	defer f.Close()

	root, err := tree.Parse(f)
	if err != nil {
		return nil, legerrors.NewParseFailure(path, err.Error())
	}

	st := &parseState{lang: lang}
	switch root.Name() {
	case "Statute":
		st.docKind = legtypes.DocumentKindAct
	case "Regulation":
		st.docKind = legtypes.DocumentKindRegulation
	default:
		return nil, legerrors.NewParseFailure(path, fmt.Sprintf("unrecognized root element %q", root.Name()))
	}

	ident := root.First("Identification")
	if ident == nil {
		return nil, legerrors.NewParseFailure(path, "missing Identification element")
	}

	if err := parseIdentification(st, ident); err != nil {
		return nil, legerrors.NewParseFailure(path, err.Error())
	}

	body := root.First("Body")
	if body != nil {
		walkBody(st, body)
	}
	if preamble := root.First("Preamble"); preamble != nil && st.act != nil {
		st.act.Preamble = structx.ExtractText(preamble)
	}
	if schedules := root.First("Schedules"); schedules != nil {
		for _, sch := range schedules.ChildrenNamed("Schedule") {
			walkSchedule(st, sch)
		}
	}

	doc := &legtypes.Document{
		Kind:       st.docKind,
		Language:   lang,
		Act:        st.act,
		Regulation: st.regulation,
	}

	return &legtypes.ParsedDocument{
		Type:                  st.docKind,
		Document:              doc,
		Sections:              st.sections,
		DefinedTerms:          st.terms,
		CrossReferences:       st.refs,
		ConsolidationWarnings: st.warnings,
	}, nil
}

// parseIdentification extracts document-level metadata from the
// Identification block per spec.md §4.B.
func parseIdentification(st *parseState, ident *tree.Element) error {
	switch st.docKind {
	case legtypes.DocumentKindAct:
		return parseActIdentification(st, ident)
	case legtypes.DocumentKindRegulation:
		return parseRegulationIdentification(st, ident)
	}
	return fmt.Errorf("unknown document kind")
}

func parseActIdentification(st *parseState, ident *tree.Element) error {
	act := &legtypes.ActFields{Status: legtypes.StatusInForce}

	chapter := ident.First("Chapter")
	if chapter == nil {
		return fmt.Errorf("missing Chapter element")
	}
	cn := chapter.First("ConsolidatedNumber")
	if cn == nil {
		return fmt.Errorf("missing ChapterNumber (ConsolidatedNumber)")
	}
	act.ActID = strings.TrimSpace(structx.ExtractText(cn))
	if act.ActID == "" {
		return fmt.Errorf("missing ChapterNumber (ConsolidatedNumber)")
	}
	if official, ok := cn.Attr("official"); ok {
		act.ConsolidatedNumber = act.ActID
		act.ConsolidatedNumberOfficial = legtypes.YesNo(official)
	}

	if shortTitle := ident.First("ShortTitle"); shortTitle != nil {
		act.Title = structx.ExtractText(shortTitle)
		if status, ok := shortTitle.Attr("status"); ok {
			act.ShortTitleStatus = legtypes.ShortTitleStatus(status)
		}
	}
	if lt := ident.First("LongTitle"); lt != nil {
		act.LongTitle = structx.ExtractText(lt)
	}
	if rh := ident.First("RunningHead"); rh != nil {
		act.RunningHead = structx.ExtractText(rh)
	}
	if asid := ident.First("AnnualStatuteId"); asid != nil {
		if y := asid.First("StatuteYear"); y != nil {
			act.AnnualStatuteYear = structx.ExtractText(y)
		}
		if c := asid.First("Chapter"); c != nil {
			act.AnnualStatuteChapter = structx.ExtractText(c)
		}
	}
	if bh := ident.First("BillHistory"); bh != nil {
		act.BillHistory = structx.CollectLines(bh)
	}
	if cd := ident.First("ConsolidationDate"); cd != nil {
		act.ConsolidationDate = structx.ParseElementDate(cd)
	}
	if ra := ident.First("RecentAmendments"); ra != nil {
		act.RecentAmendments = collectAmendments(ra)
	}

	st.act = act
	return nil
}

func parseRegulationIdentification(st *parseState, ident *tree.Element) error {
	reg := &legtypes.RegulationFields{Status: legtypes.StatusInForce}

	in := ident.First("InstrumentNumber")
	if in == nil {
		return fmt.Errorf("missing InstrumentNumber")
	}
	reg.InstrumentNumber = strings.TrimSpace(structx.ExtractText(in))
	if reg.InstrumentNumber == "" {
		return fmt.Errorf("missing InstrumentNumber")
	}
	reg.RegulationID = reg.InstrumentNumber

	if shortTitle := ident.First("ShortTitle"); shortTitle != nil {
		reg.Title = structx.ExtractText(shortTitle)
	}
	if lt := ident.First("LongTitle"); lt != nil {
		reg.LongTitle = structx.ExtractText(lt)
	}
	for _, ea := range ident.ChildrenNamed("EnablingAuthority") {
		reg.EnablingAuthorities = append(reg.EnablingAuthorities, structx.ExtractText(ea))
	}
	if rd := ident.First("RegistrationDate"); rd != nil {
		reg.RegistrationDate = structx.ParseElementDate(rd)
	}
	if cd := ident.First("ConsolidationDate"); cd != nil {
		reg.ConsolidationDate = structx.ParseElementDate(cd)
	}
	if rmo := ident.First("RegulationMakerOrder"); rmo != nil {
		reg.RegulationMakerOrder = structx.ExtractText(rmo)
	}
	if ra := ident.First("RecentAmendments"); ra != nil {
		reg.RecentAmendments = collectAmendments(ra)
	}

	st.regulation = reg
	return nil
}

func collectAmendments(ra *tree.Element) []legtypes.Amendment {
	var out []legtypes.Amendment
	for _, am := range ra.ChildrenNamed("Amendment") {
		var a legtypes.Amendment
		if c := am.First("AmendmentCitation"); c != nil {
			a.Citation = structx.ExtractText(c)
		}
		if d := am.First("AmendmentDate"); d != nil {
			a.Date = structx.ParseElementDate(d)
		}
		out = append(out, a)
	}
	return out
}
