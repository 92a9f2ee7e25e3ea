// Package legretrieve implements hybrid vector/lexical search over
// leg_embeddings, deduplication, intent-aware citation-slot allocation,
// and legislation citation building.
package legretrieve

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"

	"github.com/sprice/legrag/pkg/legstore"
	"github.com/sprice/legrag/pkg/legtypes"
)

// VectorWeight and LexicalWeight name the hybrid-score mix so it is a
// constant, not a magic number, at every call site.
const (
	VectorWeight  = 0.7
	LexicalWeight = 0.3
)

// Embedder produces a query embedding in the same vector space as the
// stored chunks. A real implementation wraps an HTTP embedding client;
// that client is out of scope here, matching the embedding pipeline's
// own Embedder boundary.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// SearchResult is one hybrid-search hit; Metadata holds the
// leg_resources.metadata JSON object decoded into a map.
type SearchResult struct {
	Content        string
	Metadata       map[string]any
	Similarity     float64
	SourceType     legtypes.SourceType
	SourceID       string
	ChunkIndex     int
	ResourceKey    string
}

// SearchOptions bounds and filters a hybrid search.
type SearchOptions struct {
	Limit int
}

func (o SearchOptions) withDefaults() SearchOptions {
	if o.Limit <= 0 {
		o.Limit = 20
	}
	return o
}

// ExecuteVectorSearch embeds query, then runs a single hybrid query
// blending pgvector cosine distance and ts_rank lexical match over the
// leg_embeddings/leg_resources join, restricted to sourceType when
// non-empty. Results are ordered by the blended score, descending.
func ExecuteVectorSearch(ctx context.Context, pool *legstore.Pool, embedder Embedder, query string, sourceType legtypes.SourceType, opts SearchOptions) ([]SearchResult, error) {
	opts = opts.withDefaults()

	vectors, err := embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("legretrieve: embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("legretrieve: embedder returned %d vectors for one query", len(vectors))
	}
	qv := pgvector.NewVector(vectors[0])

	const baseQuery = `
		SELECT
			e.content,
			r.metadata,
			r.source_type,
			r.metadata->>'sourceId',
			r.metadata->>'chunkIndex',
			r.resource_key,
			(1 - (e.embedding <=> $1)) AS vector_score,
			ts_rank(e.tsv, plainto_tsquery('english', $2)) AS lexical_score
		FROM leg_embeddings e
		JOIN leg_resources r ON r.id = e.resource_id
		WHERE ($3 = '' OR r.source_type = $3)
		ORDER BY (%f * (1 - (e.embedding <=> $1)) + %f * ts_rank(e.tsv, plainto_tsquery('english', $2))) DESC
		LIMIT $4`

	rows, err := pool.Query(ctx, fmt.Sprintf(baseQuery, VectorWeight, LexicalWeight), qv, query, string(sourceType), opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("legretrieve: hybrid search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var res SearchResult
		var metadataJSON map[string]any
		var st string
		var sourceID, chunkIndexStr string
		var vectorScore, lexicalScore float64
		if err := rows.Scan(&res.Content, &metadataJSON, &st, &sourceID, &chunkIndexStr, &res.ResourceKey, &vectorScore, &lexicalScore); err != nil {
			return nil, fmt.Errorf("legretrieve: scan search row: %w", err)
		}
		res.Metadata = metadataJSON
		res.SourceType = legtypes.SourceType(st)
		res.SourceID = sourceID
		res.ChunkIndex = parseChunkIndex(chunkIndexStr)
		res.Similarity = VectorWeight*vectorScore + LexicalWeight*lexicalScore
		out = append(out, res)
	}
	return out, rows.Err()
}

func parseChunkIndex(s string) int {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	if err != nil {
		return 0
	}
	return n
}
