package legretrieve

import (
	"testing"

	"github.com/sprice/legrag/pkg/legtypes"
	"github.com/stretchr/testify/assert"
)

func TestBuildCitationsPrefixesIndependently(t *testing.T) {
	results := []SearchResult{
		{SourceType: legtypes.SourceTypeActSection, SourceID: "C-46", Metadata: map[string]any{"sectionLabel": "2"}},
		{SourceType: legtypes.SourceTypeBill, SourceID: "C-10"},
		{SourceType: legtypes.SourceTypeAct, SourceID: "C-46"},
		{SourceType: legtypes.SourceTypeVote, SourceID: "42"},
	}
	citations := BuildCitations(results)

	assert.Equal(t, "L1", citations[0].PrefixedID)
	assert.Equal(t, "P1", citations[1].PrefixedID)
	assert.Equal(t, "L2", citations[2].PrefixedID)
	assert.Equal(t, "P2", citations[3].PrefixedID)

	assert.Contains(t, citations[0].URLs[legtypes.LanguageEN], "#sec2")
	assert.Nil(t, citations[1].URLs)
}
