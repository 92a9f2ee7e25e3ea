package legretrieve

import (
	"testing"

	"github.com/sprice/legrag/pkg/legtypes"
	"github.com/stretchr/testify/assert"
)

func TestDeduplicateResultsDistinctSourceTypesSameID(t *testing.T) {
	in := []SearchResult{
		{SourceType: legtypes.SourceTypeBill, SourceID: "123"},
		{SourceType: legtypes.SourceTypeParty, SourceID: "123"},
	}
	out := DeduplicateResults(in)
	assert.Len(t, out, 2)
}

func TestDeduplicateResultsCollapsesSameTuple(t *testing.T) {
	in := []SearchResult{
		{SourceType: legtypes.SourceTypeBill, SourceID: "123", ChunkIndex: 0},
		{SourceType: legtypes.SourceTypeParty, SourceID: "123", ChunkIndex: 0},
		{SourceType: legtypes.SourceTypeBill, SourceID: "123", ChunkIndex: 0},
	}
	out := DeduplicateResults(in)
	assert.Len(t, out, 2)
}
