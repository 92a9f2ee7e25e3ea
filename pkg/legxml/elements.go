// Package legxml decodes one legislation XML file (Act or Regulation,
// per the Justice Canada LIMS2HTML/regulation_web schema) into a
// legtypes.ParsedDocument: document metadata, an ordered section list,
// harvested defined terms, and harvested cross-references.
package legxml

// KnownElements is the taxonomy of element names this parser recognizes,
// used by check-schema-coverage to report gaps against a sampled corpus
// walk. Unrecognized elements are never a parse error — their text
// content passes through unchanged (spec.md §4.B "Failure model").
var KnownElements = map[string]bool{
	// Document root / identification.
	"Statute": true, "Regulation": true, "Identification": true,
	"Chapter": true, "ConsolidatedNumber": true, "ShortTitle": true,
	"LongTitle": true, "InstrumentNumber": true, "AnnualStatuteId": true,
	"StatuteYear": true, "EnablingAuthority": true, "BillHistory": true,
	"RegulationMakerOrder": true, "RegistrationDate": true,
	"ConsolidationDate": true, "RunningHead": true, "ReaderNote": true,
	"Note": true, "Date": true, "YYYY": true, "MM": true, "DD": true,

	// Body containers.
	"Body": true, "Introduction": true, "Preamble": true, "Enacts": true,
	"Schedules": true, "Schedule": true, "Part": true, "Division": true,
	"Subdivision": true, "Group": true, "GroupHeading": true,
	"DocumentInternal": true,

	// Provision structure.
	"Section": true, "Subsection": true, "Paragraph": true,
	"Subparagraph": true, "Clause": true, "Subclause": true,
	"Provision": true, "Definition": true, "Item": true, "List": true,
	"ContinuedDefinition": true, "ContinuedSectionSubsection": true,
	"ContinuedParagraph": true, "ContinuedSubparagraph": true,
	"ContinuedClause": true, "ContinuedSubclause": true,
	"ContinuedFormulaParagraph": true,

	// Inline/content.
	"Text": true, "Label": true, "MarginalNote": true, "Heading": true,
	"TitleText": true, "Emphasis": true, "Sup": true, "Sub": true,
	"LineBreak": true, "PageBreak": true, "FormBlank": true, "Leader": true,
	"LeaderRightJustified": true, "Separator": true, "Language": true,
	"CenteredText": true, "DefinitionRef": true, "Repealed": true,
	"Oath": true, "FormGroup": true, "FormulaConnector": true,
	"FormHeading": true, "ScheduleFormHeading": true,

	// References.
	"XRefExternal": true, "XRefInternal": true, "DefinedTermEn": true,
	"DefinedTermFr": true, "FootnoteRef": true, "Footnote": true,
	"Citation": true, "Source": true,

	// Change tracking.
	"Ins": true, "Del": true,

	// Bilingual.
	"BilingualGroup": true, "BilingualItemEn": true, "BilingualItemFr": true,

	// Tables (CALS).
	"TableGroup": true, "table": true, "tgroup": true, "thead": true,
	"tbody": true, "row": true, "entry": true, "colspec": true,

	// Formulas.
	"Formula": true, "FormulaGroup": true, "FormulaText": true,
	"FormulaTerm": true, "FormulaDefinition": true, "FormulaParagraph": true,
	"Numerator": true, "Denominator": true, "Fraction": true,

	// Images.
	"ImageGroup": true, "Image": true, "Caption": true,

	// History/amendments.
	"HistoricalNote": true, "HistoricalNoteSubItem": true,
	"RecentAmendments": true, "Amendment": true, "AmendmentCitation": true,
	"AmendmentDate": true, "RelatedProvisions": true, "RelatedProvision": true,
	"BillInternal": true,

	// Math.
	"MathML": true, "math": true, "MSup": true, "MSub": true,
}

// schedulePhaseTypes are the Section/Schedule @type values (and the
// NifProvs id) that mark a schedule's contained sections as "amending"
// rather than plain "schedule" sections.
var schedulePhaseTypes = map[string]bool{
	"amending": true,
	"CIF":      true,
}

// recognizedXRefTypes are the XRefExternal reference-type values that
// produce a CrossReference; anything else is dropped silently.
var recognizedXRefTypes = map[string]bool{
	"act":            true,
	"regulation":     true,
	"agreement":      true,
	"canada-gazette": true,
	"citation":       true,
	"standard":       true,
	"other":          true,
}
