package legretrieve

import (
	"math"

	"github.com/sprice/legrag/pkg/legtypes"
)

// Intent tags select the citation-slot policy a caller wants applied to
// a result set.
type Intent string

const (
	IntentBillFocused Intent = "bill_focused"
	IntentVoteFocused Intent = "vote_focused"
	IntentMPInfo      Intent = "mp_info"
	IntentGeneral     Intent = "general"
)

// balanceMaxRatio caps any one sourceType's share of a "general" intent
// result set, per the balancer's fairness rule.
const balanceMaxRatio = 0.4

// SlotConfig describes which sourceTypes fill a result set first
// (primary), which are allowed afterward up to secondaryCap, and which
// are excluded entirely (zero cap).
type SlotConfig struct {
	Primary      []legtypes.SourceType
	Secondary    []legtypes.SourceType
	SecondaryCap int
	Balanced     bool
}

// GetSlotConfig returns the citation-slot policy for intent.
func GetSlotConfig(intent Intent) SlotConfig {
	switch intent {
	case IntentBillFocused:
		return SlotConfig{
			Primary:      []legtypes.SourceType{legtypes.SourceTypeBill},
			Secondary:    []legtypes.SourceType{legtypes.SourceTypeAct, legtypes.SourceTypeActSection, legtypes.SourceTypeVote, legtypes.SourceTypeHansard},
			SecondaryCap: 10,
		}
	case IntentVoteFocused:
		return SlotConfig{
			Primary:      []legtypes.SourceType{legtypes.SourceTypeVote},
			Secondary:    []legtypes.SourceType{legtypes.SourceTypePolitician, legtypes.SourceTypeParty, legtypes.SourceTypeBill},
			SecondaryCap: 10,
		}
	case IntentMPInfo:
		// Hansard is excluded entirely: cap = 0, and it never appears in
		// primary or secondary.
		return SlotConfig{
			Primary:      []legtypes.SourceType{legtypes.SourceTypePolitician, legtypes.SourceTypeRiding, legtypes.SourceTypeParty},
			SecondaryCap: 0,
		}
	default: // general
		return SlotConfig{Balanced: true}
	}
}

// AllocateCitationSlots fills up to limit results: primaries in order
// first, then secondaries up to config.SecondaryCap. For a Balanced
// config (the "general" intent) it delegates entirely to EnforceBalance.
// Results must already be in score order.
func AllocateCitationSlots(results []SearchResult, config SlotConfig, limit int) []SearchResult {
	if config.Balanced {
		return EnforceBalance(results, limit, balanceMaxRatio)
	}

	allowed := make(map[legtypes.SourceType]bool, len(config.Primary)+len(config.Secondary))
	for _, st := range config.Primary {
		allowed[st] = true
	}
	for _, st := range config.Secondary {
		allowed[st] = true
	}

	out := make([]SearchResult, 0, limit)

	for _, primary := range config.Primary {
		for _, r := range results {
			if len(out) >= limit {
				return out
			}
			if r.SourceType == primary {
				out = append(out, r)
			}
		}
	}

	secondaryPicked := 0
	secondarySet := make(map[legtypes.SourceType]bool, len(config.Secondary))
	for _, st := range config.Secondary {
		secondarySet[st] = true
	}
	for _, r := range results {
		if len(out) >= limit || secondaryPicked >= config.SecondaryCap {
			break
		}
		if !secondarySet[r.SourceType] {
			continue
		}
		if containsResult(out, r) {
			continue
		}
		out = append(out, r)
		secondaryPicked++
	}

	return out
}

func containsResult(set []SearchResult, r SearchResult) bool {
	for _, s := range set {
		if s.SourceType == r.SourceType && s.SourceID == r.SourceID && s.ChunkIndex == r.ChunkIndex {
			return true
		}
	}
	return false
}

// EnforceBalance takes results in score order and caps each sourceType
// at floor(limit * maxRatio), spilling overflow into the result set only
// once no unsaturated sourceType has further results to offer.
func EnforceBalance(results []SearchResult, limit int, maxRatio float64) []SearchResult {
	perTypeCap := int(math.Floor(float64(limit) * maxRatio))
	if perTypeCap <= 0 {
		perTypeCap = 1
	}

	counts := make(map[legtypes.SourceType]int)
	out := make([]SearchResult, 0, limit)
	var deferred []SearchResult

	for _, r := range results {
		if len(out) >= limit {
			break
		}
		if counts[r.SourceType] < perTypeCap {
			out = append(out, r)
			counts[r.SourceType]++
		} else {
			deferred = append(deferred, r)
		}
	}

	for _, r := range deferred {
		if len(out) >= limit {
			break
		}
		out = append(out, r)
		counts[r.SourceType]++
	}

	return out
}
