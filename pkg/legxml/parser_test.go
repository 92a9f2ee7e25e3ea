package legxml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sprice/legrag/pkg/legtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempXML(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.xml")
	full := `<?xml version="1.0"?>
<Statute>
  <Identification>
    <Chapter><ConsolidatedNumber official="yes">C-99</ConsolidatedNumber></Chapter>
    <ShortTitle status="official">Test Act</ShortTitle>
  </Identification>
  <Body>` + body + `</Body>
</Statute>`
	require.NoError(t, os.WriteFile(path, []byte(full), 0o644))
	return path
}

func TestParseRepealedSection(t *testing.T) {
	path := writeTempXML(t, `<Section><Label>1</Label><Text><Repealed>[Repealed]</Repealed></Text></Section>`)

	doc, err := ParseLegislationXML(path, legtypes.LanguageEN)
	require.NoError(t, err)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, legtypes.StatusRepealed, doc.Sections[0].Status)
	assert.Equal(t, "1", doc.Sections[0].SectionLabel)
}

func TestParseRepealedSectionWithSiblingStaysActive(t *testing.T) {
	path := writeTempXML(t, `<Section><Label>1</Label><Text><Repealed>[Repealed]</Repealed></Text><DefinedTermEn>Minister</DefinedTermEn></Section>`)

	doc, err := ParseLegislationXML(path, legtypes.LanguageEN)
	require.NoError(t, err)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, legtypes.StatusInForce, doc.Sections[0].Status)
}

func TestParseDefinitionHarvestsOnlyWrappedTerm(t *testing.T) {
	path := writeTempXML(t, `<Section>
		<Label>2</Label>
		<Text>In this Act,</Text>
		<Definition><DefinedTermEn>Minister</DefinedTermEn> means the <DefinedTermFr>ministre</DefinedTermFr> responsible.</Definition>
		<Paragraph><Text>The <DefinedTermEn>Minister</DefinedTermEn> may act.</Text></Paragraph>
	</Section>`)

	doc, err := ParseLegislationXML(path, legtypes.LanguageEN)
	require.NoError(t, err)
	require.Len(t, doc.DefinedTerms, 1)
	assert.Equal(t, "Minister", doc.DefinedTerms[0].Term)
	assert.Equal(t, "ministre", doc.DefinedTerms[0].PairedTerm)
	assert.Equal(t, legtypes.ScopeTypeAct, doc.DefinedTerms[0].ScopeType)
}

func TestParseCrossReferenceRecognizedType(t *testing.T) {
	path := writeTempXML(t, `<Section><Label>3</Label><Text>See the <XRefExternal reference-type="act" link="C-46">Criminal Code</XRefExternal>.</Text></Section>`)

	doc, err := ParseLegislationXML(path, legtypes.LanguageEN)
	require.NoError(t, err)
	require.Len(t, doc.CrossReferences, 1)
	ref := doc.CrossReferences[0]
	assert.Equal(t, legtypes.TargetTypeAct, ref.TargetType)
	assert.Equal(t, "C-46", ref.TargetRef)
	assert.Equal(t, "Criminal Code", ref.ReferenceText)
}

func TestParseCrossReferenceDroppedWhenUnrecognizedOrMissingLink(t *testing.T) {
	path := writeTempXML(t, `<Section><Label>4</Label>
		<Text><XRefExternal reference-type="unknown" link="X">A</XRefExternal></Text>
		<Text><XRefExternal reference-type="act">B</XRefExternal></Text>
	</Section>`)

	doc, err := ParseLegislationXML(path, legtypes.LanguageEN)
	require.NoError(t, err)
	assert.Empty(t, doc.CrossReferences)
}

func TestParseMissingChapterNumberFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.xml")
	require.NoError(t, os.WriteFile(path, []byte(`<Statute><Identification><ShortTitle>X</ShortTitle></Identification><Body></Body></Statute>`), 0o644))

	_, err := ParseLegislationXML(path, legtypes.LanguageEN)
	assert.Error(t, err)
}

func TestSectionOrderIsMonotone(t *testing.T) {
	path := writeTempXML(t, `
		<Section><Label>1</Label><Text>First</Text></Section>
		<Section><Label>2</Label><Text>Second</Text></Section>
		<Part><Section><Label>3</Label><Text>Third</Text></Section></Part>
	`)

	doc, err := ParseLegislationXML(path, legtypes.LanguageEN)
	require.NoError(t, err)
	require.Len(t, doc.Sections, 3)
	for i, s := range doc.Sections {
		assert.Equal(t, i, s.SectionOrder)
	}
	assert.NotEmpty(t, doc.Sections[2].HierarchyPath)
}
