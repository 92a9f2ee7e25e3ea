package legchunk

import (
	"strings"
	"testing"

	"github.com/sprice/legrag/pkg/legtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldSkipSection(t *testing.T) {
	assert.True(t, ShouldSkipSection(""))
	assert.True(t, ShouldSkipSection("   \n\t "))
	assert.False(t, ShouldSkipSection("x"))
}

func TestChunkSectionFastPath(t *testing.T) {
	section := legtypes.Section{SectionLabel: "1", MarginalNote: "Short title", Content: "This Act may be cited as the Test Act."}
	chunks, err := ChunkSection(section, "Test Act", Options{Language: legtypes.LanguageEN})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].ChunkIndex)
	assert.Equal(t, 1, chunks[0].TotalChunks)
	assert.Contains(t, chunks[0].Content, "Test Act")
	assert.Contains(t, chunks[0].Content, "Section 1: Short title")
}

func TestChunkSectionSplitsAtMarkerBoundaries(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("(1) The Minister may, ")
	for i := 0; i < 300; i++ {
		sb.WriteString("exercise broad discretionary powers under this Act ")
	}
	sb.WriteString("in respect of the following: (a) licensing matters, ")
	for i := 0; i < 300; i++ {
		sb.WriteString("including renewal and suspension procedures ")
	}
	sb.WriteString("(i) initial applications, (ii) renewals.")

	section := legtypes.Section{SectionLabel: "5", Content: sb.String()}
	chunks, err := ChunkSection(section, "Test Act", Options{Language: legtypes.LanguageEN, TargetTokens: 200, OverlapTokens: 30})
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	for i, c := range chunks {
		assert.Equal(t, i, c.ChunkIndex)
		assert.Equal(t, len(chunks), c.TotalChunks)
		assert.LessOrEqual(t, CountTokens(c.Content), 200+50)
	}
	// No chunk should begin or end mid-marker, e.g. splitting "(1" from "its ")".
	for _, c := range chunks {
		assert.NotContains(t, c.Content, "(1\n")
	}
}

func TestChunkSectionDeterministicContent(t *testing.T) {
	section := legtypes.Section{SectionLabel: "9", Content: strings.Repeat("word ", 2000)}
	opts := Options{Language: legtypes.LanguageEN, TargetTokens: 100, OverlapTokens: 20}

	first, err := ChunkSection(section, "Test Act", opts)
	require.NoError(t, err)
	second, err := ChunkSection(section, "Test Act", opts)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Content, second[i].Content)
	}
}

func TestChunkSectionHistoricalNotesAppended(t *testing.T) {
	section := legtypes.Section{
		SectionLabel: "3",
		Content:      "The Minister shall report annually.",
		HistoricalNotes: []legtypes.HistoricalNote{
			{Text: "R.S., 1985, c. T-1", EnactedDate: "1985-01-01"},
		},
	}
	chunks, err := ChunkSection(section, "Test Act", Options{
		Language:        legtypes.LanguageEN,
		HistoricalNotes: section.HistoricalNotes,
	})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0].Content, "History:")
	assert.Contains(t, chunks[0].Content, "R.S., 1985, c. T-1")
}

func TestMarkerLevelClassification(t *testing.T) {
	assert.Equal(t, levelSubsection, markerLevel("1"))
	assert.Equal(t, levelClause, markerLevel("A"))
	assert.Equal(t, levelSubparagraph, markerLevel("i"))
	assert.Equal(t, levelSubparagraph, markerLevel("v"))
	assert.Equal(t, levelSubparagraph, markerLevel("x"))
	assert.Equal(t, levelParagraph, markerLevel("a"))
	assert.Equal(t, levelParagraph, markerLevel("b"))
	assert.Equal(t, levelSubparagraph, markerLevel("ii"))
	assert.Equal(t, levelSubparagraph, markerLevel("iii"))
}

func TestSplitLegalUnitsPreamble(t *testing.T) {
	units := splitLegalUnits("Preamble text. (1) First unit (a) nested unit")
	require.Len(t, units, 3)
	assert.Equal(t, levelUnmarked, units[0].level)
	assert.Equal(t, "Preamble text. ", units[0].text)
	assert.Equal(t, levelSubsection, units[1].level)
	assert.Equal(t, levelParagraph, units[2].level)
}
