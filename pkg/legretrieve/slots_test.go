package legretrieve

import (
	"testing"

	"github.com/sprice/legrag/pkg/legtypes"
	"github.com/stretchr/testify/assert"
)

func resultsOf(sourceTypes ...legtypes.SourceType) []SearchResult {
	out := make([]SearchResult, len(sourceTypes))
	for i, st := range sourceTypes {
		out[i] = SearchResult{SourceType: st, SourceID: string(rune('a' + i))}
	}
	return out
}

func TestAllocateCitationSlotsMPInfoExcludesHansard(t *testing.T) {
	results := resultsOf(
		legtypes.SourceTypeHansard,
		legtypes.SourceTypePolitician,
		legtypes.SourceTypeRiding,
		legtypes.SourceTypeParty,
		legtypes.SourceTypeHansard,
	)
	out := AllocateCitationSlots(results, GetSlotConfig(IntentMPInfo), 10)

	for _, r := range out {
		assert.NotEqual(t, legtypes.SourceTypeHansard, r.SourceType)
	}
	assert.Equal(t, legtypes.SourceTypePolitician, out[0].SourceType)
	assert.Equal(t, legtypes.SourceTypeRiding, out[1].SourceType)
	assert.Equal(t, legtypes.SourceTypeParty, out[2].SourceType)
}

func TestEnforceBalanceCapsShareAtMaxRatio(t *testing.T) {
	var results []SearchResult
	for i := 0; i < 10; i++ {
		results = append(results, SearchResult{SourceType: legtypes.SourceTypeBill, SourceID: string(rune('a' + i))})
	}
	for i := 0; i < 10; i++ {
		results = append(results, SearchResult{SourceType: legtypes.SourceTypeVote, SourceID: string(rune('A' + i))})
	}
	for i := 0; i < 10; i++ {
		results = append(results, SearchResult{SourceType: legtypes.SourceTypeParty, SourceID: string(rune('k' + i))})
	}

	out := EnforceBalance(results, 10, 0.4)
	assert.Len(t, out, 10)

	counts := map[legtypes.SourceType]int{}
	for _, r := range out {
		counts[r.SourceType]++
	}
	assert.LessOrEqual(t, counts[legtypes.SourceTypeBill], 4)
}

func TestEnforceBalanceSpillsWhenOtherTypesExhausted(t *testing.T) {
	var results []SearchResult
	for i := 0; i < 3; i++ {
		results = append(results, SearchResult{SourceType: legtypes.SourceTypeVote, SourceID: string(rune('a' + i))})
	}
	for i := 0; i < 10; i++ {
		results = append(results, SearchResult{SourceType: legtypes.SourceTypeBill, SourceID: string(rune('A' + i))})
	}

	out := EnforceBalance(results, 10, 0.4)
	assert.Len(t, out, 10)
}

func TestGetSlotConfigGeneralIsBalanced(t *testing.T) {
	cfg := GetSlotConfig(IntentGeneral)
	assert.True(t, cfg.Balanced)
	assert.Empty(t, cfg.Primary)
}
