package legretrieve

import "github.com/sprice/legrag/pkg/legtypes"

// dedupKey is the tuple identity dedup collapses on. Different
// sourceType with the same sourceId are always distinct; this was a
// recurring bug class the key's shape guards against.
type dedupKey struct {
	sourceType legtypes.SourceType
	sourceID   string
	chunkIndex int
}

// DeduplicateResults collapses results whose (sourceType, sourceId,
// chunkIndex) all match, keeping the first occurrence (the
// highest-scored, since callers pass results already ordered by score).
func DeduplicateResults(results []SearchResult) []SearchResult {
	seen := make(map[dedupKey]bool, len(results))
	out := make([]SearchResult, 0, len(results))
	for _, r := range results {
		key := dedupKey{sourceType: r.SourceType, sourceID: r.SourceID, chunkIndex: r.ChunkIndex}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}
