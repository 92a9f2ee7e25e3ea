// Package legtypes holds the data model shared across the ingestion,
// chunking, embedding, retrieval and hydration packages: Document,
// Section, DefinedTerm, CrossReference, and the derived Chunk/Citation
// shapes. Centralizing them here keeps the tagged-union and invariant
// rules in one place instead of duplicated per consuming package.
package legtypes

// Language is one of the two official languages a document row is keyed
// by. There is no bilingual merging inside a row — two parallel rows
// exist per document, one per language.
type Language string

const (
	LanguageEN Language = "en"
	LanguageFR Language = "fr"
)

// Status is the in-force lifecycle state shared by Act, Regulation and
// Section rows.
type Status string

const (
	StatusInForce    Status = "in-force"
	StatusNotInForce Status = "not-in-force"
	StatusRepealed   Status = "repealed"
)

// DocumentKind tags the Document union.
type DocumentKind string

const (
	DocumentKindAct        DocumentKind = "act"
	DocumentKindRegulation DocumentKind = "regulation"
)

// ShortTitleStatus distinguishes an act's official short title from an
// unofficial one used only for reference.
type ShortTitleStatus string

const (
	ShortTitleOfficial   ShortTitleStatus = "official"
	ShortTitleUnofficial ShortTitleStatus = "unofficial"
)

// BillOrigin is the chamber in which a bill originated.
type BillOrigin string

const (
	BillOriginCommons BillOrigin = "commons"
	BillOriginSenate  BillOrigin = "senate"
)

// YesNo models the XML schema's yes/no attribute values where a Go bool
// would lose the "attribute absent" state.
type YesNo string

const (
	YesNoYes YesNo = "yes"
	YesNoNo  YesNo = "no"
)

// Amendment is one entry in an act or regulation's recent-amendments list.
type Amendment struct {
	Citation string
	Date     string
}

// RelatedProvision is one entry in an act's RelatedProvisions block.
type RelatedProvision struct {
	Text      string
	TargetRef string
}

// Document is the tagged union (documentId, language) row: exactly one
// of Act or Regulation is non-nil, selected by Kind.
type Document struct {
	Kind       DocumentKind
	Language   Language
	Act        *ActFields
	Regulation *RegulationFields
}

// ActFields holds the fields specific to an Act row.
type ActFields struct {
	ActID                      string
	Title                      string
	LongTitle                  string
	RunningHead                string
	ShortTitleStatus           ShortTitleStatus
	Status                     Status
	InForceDate                string
	EnactedDate                string
	LastAmendedDate            string
	ConsolidationDate          string
	BillOrigin                 BillOrigin
	BillType                   string
	ConsolidatedNumber         string
	ConsolidatedNumberOfficial YesNo
	AnnualStatuteYear          string
	AnnualStatuteChapter       string
	BillHistory                []string
	RecentAmendments           []Amendment
	Preamble                   string
	RelatedProvisions          []RelatedProvision
	SignatureBlocks            []string
	TableOfProvisions          []string
	HasPreviousVersion         bool
}

// RegulationFields holds the fields specific to a Regulation row.
type RegulationFields struct {
	RegulationID         string
	InstrumentNumber     string
	RegulationType       string
	GazettePart          string
	Title                string
	LongTitle            string
	EnablingAuthorities  []string
	EnablingActID        string
	EnablingActTitle     string
	Status               Status
	RegistrationDate     string
	ConsolidationDate    string
	LastAmendedDate      string
	RegulationMakerOrder string
	RecentAmendments     []Amendment
	RelatedProvisions    []RelatedProvision
	HasPreviousVersion   bool
}

// ParentID returns the owning act or regulation ID, matching whichever
// union arm is set (exactly one per the Document invariant).
func (d *Document) ParentID() string {
	switch d.Kind {
	case DocumentKindAct:
		if d.Act != nil {
			return d.Act.ActID
		}
	case DocumentKindRegulation:
		if d.Regulation != nil {
			return d.Regulation.RegulationID
		}
	}
	return ""
}

// Title returns the display title regardless of union arm.
func (d *Document) Title() string {
	switch d.Kind {
	case DocumentKindAct:
		if d.Act != nil {
			return d.Act.Title
		}
	case DocumentKindRegulation:
		if d.Regulation != nil {
			return d.Regulation.Title
		}
	}
	return ""
}
