package leghydrate

import (
	"testing"

	"github.com/sprice/legrag/pkg/legtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHydrateDocumentPrefersRequestedLanguage(t *testing.T) {
	byLang := map[legtypes.Language]legtypes.Document{
		legtypes.LanguageEN: {Kind: legtypes.DocumentKindAct, Language: legtypes.LanguageEN,
			Act: &legtypes.ActFields{ActID: "C-46", Title: "Criminal Code", Status: legtypes.StatusInForce}},
		legtypes.LanguageFR: {Kind: legtypes.DocumentKindAct, Language: legtypes.LanguageFR,
			Act: &legtypes.ActFields{ActID: "C-46", Title: "Code criminel", Status: legtypes.StatusInForce}},
	}

	result := HydrateDocument(byLang, legtypes.LanguageFR)
	require.NotNil(t, result)
	assert.Equal(t, legtypes.LanguageFR, result.LanguageUsed)
	assert.Contains(t, result.Markdown, "Code criminel")
	assert.Empty(t, result.Note)
}

func TestHydrateDocumentFallsBackWhenPreferredMissing(t *testing.T) {
	byLang := map[legtypes.Language]legtypes.Document{
		legtypes.LanguageEN: {Kind: legtypes.DocumentKindAct, Language: legtypes.LanguageEN,
			Act: &legtypes.ActFields{ActID: "C-46", Title: "Criminal Code", Status: legtypes.StatusInForce}},
	}

	result := HydrateDocument(byLang, legtypes.LanguageFR)
	require.NotNil(t, result)
	assert.Equal(t, legtypes.LanguageEN, result.LanguageUsed)
	assert.NotEmpty(t, result.Note)
}

func TestHydrateDocumentSenateOriginLocalizedToFrench(t *testing.T) {
	byLang := map[legtypes.Language]legtypes.Document{
		legtypes.LanguageFR: {Kind: legtypes.DocumentKindAct, Language: legtypes.LanguageFR,
			Act: &legtypes.ActFields{ActID: "C-1", Title: "Loi test", Status: legtypes.StatusInForce, BillOrigin: legtypes.BillOriginSenate}},
	}
	result := HydrateDocument(byLang, legtypes.LanguageFR)
	require.NotNil(t, result)
	assert.Contains(t, result.Markdown, "Sénat")
}

func TestHydrateDocumentReturnsNilWhenBothLanguagesMissing(t *testing.T) {
	assert.Nil(t, HydrateDocument(map[legtypes.Language]legtypes.Document{}, legtypes.LanguageEN))
}

func TestHydrateSectionIncludesMarginalNoteAndStatus(t *testing.T) {
	byLang := map[legtypes.Language]legtypes.Section{
		legtypes.LanguageEN: {
			CanonicalSectionID: "C-46/en/s1", SectionLabel: "1", MarginalNote: "Short title",
			Content: "This Act may be cited as the Criminal Code.", Status: legtypes.StatusInForce,
		},
	}
	result := HydrateSection(byLang, legtypes.LanguageEN)
	require.NotNil(t, result)
	assert.Contains(t, result.Markdown, "Section 1: Short title")
	assert.Contains(t, result.Markdown, "Criminal Code")
}

func TestHydrateBillFallsBackWhenFrenchTitleMissing(t *testing.T) {
	result := HydrateBill(legtypes.Bill{ID: "44-1-C-46", Number: "C-46", Title: "Criminal Code Amendment Act", Sponsor: "Minister of Justice"}, legtypes.LanguageFR)
	require.NotNil(t, result)
	assert.Equal(t, legtypes.LanguageEN, result.LanguageUsed)
	assert.Contains(t, result.Markdown, "C-46: Criminal Code Amendment Act")
	assert.NotEmpty(t, result.Note)
}

func TestHydrateVoteIncludesResultAndDate(t *testing.T) {
	result := HydrateVote(legtypes.Vote{ID: "44-1-321", Number: 321, Description: "Third reading of Bill C-46", Result: "agreed to", Date: "2026-02-10"}, legtypes.LanguageEN)
	require.NotNil(t, result)
	assert.Contains(t, result.Markdown, "Third reading of Bill C-46")
	assert.Contains(t, result.Markdown, "Result: agreed to")
}

func TestHydrateCommitteeLocalizesLabelsToFrench(t *testing.T) {
	result := HydrateCommittee(legtypes.Committee{ID: "JUST", Name: "Justice and Human Rights", NameFR: "Justice et des droits de la personne", Chamber: "House of Commons"}, legtypes.LanguageFR)
	require.NotNil(t, result)
	assert.Contains(t, result.Markdown, "Justice et des droits de la personne")
	assert.Contains(t, result.Markdown, "Chambre: House of Commons")
}

func TestHydratePoliticianReturnsNilWithoutName(t *testing.T) {
	assert.Nil(t, HydratePolitician(legtypes.Politician{}, legtypes.LanguageEN))
}

func TestHydratePoliticianRendersPartyAndRiding(t *testing.T) {
	result := HydratePolitician(legtypes.Politician{ID: "p1", Name: "Jane Doe", Party: "Independent", Riding: "Ottawa Centre", Province: "Ontario"}, legtypes.LanguageEN)
	require.NotNil(t, result)
	assert.Contains(t, result.Markdown, "# Jane Doe")
	assert.Contains(t, result.Markdown, "Party: Independent")
	assert.Contains(t, result.Markdown, "Riding: Ottawa Centre")
}

func TestHydratePartyReturnsNilWhenBothNamesMissing(t *testing.T) {
	assert.Nil(t, HydrateParty(legtypes.Party{}, legtypes.LanguageEN))
}

func TestHydrateRidingPrefersRequestedLanguage(t *testing.T) {
	result := HydrateRiding(legtypes.Riding{ID: "35084", Name: "Ottawa Centre", NameFR: "Ottawa-Centre", Province: "Ontario"}, legtypes.LanguageFR)
	require.NotNil(t, result)
	assert.Equal(t, legtypes.LanguageFR, result.LanguageUsed)
	assert.Contains(t, result.Markdown, "Ottawa-Centre")
}

func TestHydrateHansardUsesRecordLanguageNotPreferred(t *testing.T) {
	result := HydrateHansard(legtypes.Hansard{ID: "h1", Date: "2026-02-10", Speaker: "Jane Doe", Excerpt: "Monsieur le Président, ...", Language: legtypes.LanguageFR}, legtypes.LanguageEN)
	require.NotNil(t, result)
	assert.Equal(t, legtypes.LanguageFR, result.LanguageUsed)
	assert.Contains(t, result.Markdown, "Monsieur le Président")
	assert.NotEmpty(t, result.Note)
}

func TestHydrateHansardReturnsNilWithoutExcerpt(t *testing.T) {
	assert.Nil(t, HydrateHansard(legtypes.Hansard{ID: "h1"}, legtypes.LanguageEN))
}

func TestSplitCanonicalSectionID(t *testing.T) {
	actID, regID, label, ok := splitCanonicalSectionID(legtypes.SourceTypeActSection, "C-46/en/1")
	require.True(t, ok)
	assert.Equal(t, "C-46", actID)
	assert.Equal(t, "", regID)
	assert.Equal(t, "1", label)

	_, regID, label, ok = splitCanonicalSectionID(legtypes.SourceTypeRegulationSection, "SOR-2007-151/fr/2")
	require.True(t, ok)
	assert.Equal(t, "SOR-2007-151", regID)
	assert.Equal(t, "2", label)

	_, _, _, ok = splitCanonicalSectionID(legtypes.SourceTypeActSection, "malformed")
	assert.False(t, ok)
}
