package legtypes

// ContentFlags is a bitset of semantic markers attached to a Section,
// cheaper to store/filter than a set of booleans and convenient as a
// single JSONB/int column.
type ContentFlags uint32

const (
	ContentFlagHasTable ContentFlags = 1 << iota
	ContentFlagHasFormula
	ContentFlagHasImage
	ContentFlagBilingualGroup
	ContentFlagHasSchedule
	ContentFlagAmending
	ContentFlagLimsMetadata
)

// Has reports whether flag is set.
func (f ContentFlags) Has(flag ContentFlags) bool { return f&flag != 0 }

// SectionType distinguishes ordinary provisions from schedules and
// amending/coming-into-force provisions.
type SectionType string

const (
	SectionTypeSection  SectionType = "section"
	SectionTypeSchedule SectionType = "schedule"
	SectionTypeAmending SectionType = "amending"
)

// Footnote is a single footnote attached to a section, keyed by its
// FootnoteRef marker.
type Footnote struct {
	Ref  string
	Text string
}

// HistoricalNote is one HistoricalNoteSubItem entry.
type HistoricalNote struct {
	Citation       string
	EnactedDate    string
	InForceDate    string
	Text           string
}

// InternalReference is a captured XRefInternal occurrence within a
// section's content.
type InternalReference struct {
	TargetLabel   string
	TargetID      string
	ReferenceText string
}

// ProvisionHeading is the heading captured for a schedule-internal
// Provision (DocumentInternal/Provision), including any LIMS bag.
type ProvisionHeading struct {
	Text         string
	FormatRef    string
	LimsMetadata map[string]string
}

// Section is one node of a document's flattened, ordered provision list.
// Exactly one of ActID/RegulationID is set (the Section invariant).
type Section struct {
	ID                   string
	ActID                string
	RegulationID         string
	Language             Language
	CanonicalSectionID   string
	SectionLabel         string
	SectionOrder         int
	SectionType          SectionType
	HierarchyPath        []string
	MarginalNote         string
	Content              string
	ContentHTML          string
	Status               Status
	XMLType              string
	XMLTarget            string
	ChangeType           string
	InForceStartDate     string
	LastAmendedDate      string
	HistoricalNotes      []HistoricalNote
	Footnotes            []Footnote
	ScheduleID           string
	ScheduleBilingual    bool
	ContentFlags         ContentFlags
	FormattingAttributes map[string]string
	ProvisionHeading     *ProvisionHeading
	InternalReferences   []InternalReference
}

// ScopeType classifies the reach of a DefinedTerm.
type ScopeType string

const (
	ScopeTypeAct     ScopeType = "act"
	ScopeTypePart    ScopeType = "part"
	ScopeTypeSection ScopeType = "section"
)

// DefinedTerm is a term formally defined inside a Definition wrapper,
// optionally paired with its other-language equivalent extracted from the
// same wrapper.
type DefinedTerm struct {
	Language      Language
	Term          string
	PairedTerm    string
	ActID         string
	RegulationID  string
	SectionLabel  string
	ScopeType     ScopeType
	ScopeSections []string
}

// CrossReferenceTargetType enumerates the recognized XRefExternal
// reference-type values plus the internal "section" type produced by
// XRefInternal.
type CrossReferenceTargetType string

const (
	TargetTypeAct          CrossReferenceTargetType = "act"
	TargetTypeRegulation   CrossReferenceTargetType = "regulation"
	TargetTypeAgreement    CrossReferenceTargetType = "agreement"
	TargetTypeCanadaGazette CrossReferenceTargetType = "canada-gazette"
	TargetTypeCitation     CrossReferenceTargetType = "citation"
	TargetTypeStandard     CrossReferenceTargetType = "standard"
	TargetTypeSection      CrossReferenceTargetType = "section"
	TargetTypeOther        CrossReferenceTargetType = "other"
)

// CrossReference is one XRefExternal or XRefInternal occurrence.
type CrossReference struct {
	SourceActID        string
	SourceRegulationID string
	SourceSectionLabel string
	TargetType         CrossReferenceTargetType
	TargetRef          string
	ReferenceText      string
}

// ParsedDocument is the output of parsing one legislation XML file.
type ParsedDocument struct {
	Type                  DocumentKind
	Document              *Document
	Sections              []Section
	DefinedTerms          []DefinedTerm
	CrossReferences       []CrossReference
	ConsolidationWarnings []string
}
