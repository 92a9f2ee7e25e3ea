package legtypes

import "fmt"

// SourceType enumerates the resource families the embedding pipeline and
// retriever operate over.
type SourceType string

const (
	SourceTypeAct             SourceType = "act"
	SourceTypeRegulation      SourceType = "regulation"
	SourceTypeActSection      SourceType = "act_section"
	SourceTypeRegulationSection SourceType = "regulation_section"
	SourceTypeDefinedTerm     SourceType = "defined_term"

	// Primary-source types hydration and retrieval also deal with, owned
	// by the out-of-scope parliament ingestion adapters but addressed
	// here by the consumer-facing sourceType tag only.
	SourceTypeBill       SourceType = "bill"
	SourceTypeVote       SourceType = "vote"
	SourceTypeCommittee  SourceType = "committee"
	SourceTypePolitician SourceType = "politician"
	SourceTypeParty      SourceType = "party"
	SourceTypeRiding     SourceType = "riding"
	SourceTypeHansard    SourceType = "hansard"
)

// Chunk is a token-bounded slice of a section's (or document's) content,
// ready for embedding.
type Chunk struct {
	Content      string
	ChunkIndex   int
	TotalChunks  int
	SourceType   SourceType
	SourceID     string
	Language     Language
	ResourceKey  string
}

// BuildResourceKey constructs the globally-unique, deterministic
// idempotency key for a chunk: "{sourceType}:{id}:{lang}:{chunkIndex}".
func BuildResourceKey(sourceType SourceType, id string, lang Language, chunkIndex int) string {
	return fmt.Sprintf("%s:%s:%s:%d", sourceType, id, lang, chunkIndex)
}

// Resource is the persisted row a Chunk's embedding is attached to.
type Resource struct {
	ID                int64
	ResourceKey       string
	SourceType        SourceType
	Language          Language
	Metadata          map[string]any
	PairedResourceKey string
}

// Embedding is the persisted vector row for a Resource.
type Embedding struct {
	ResourceID     int64
	Content        string
	Vector         []float32
	EmbeddingModel string
}

// EmbeddingDimensions is the fixed vector width spec.md §6 requires.
const EmbeddingDimensions = 1024

// DefaultEmbeddingModel is the model tag written to new embeddings absent
// an explicit --to-model override.
const DefaultEmbeddingModel = "legrag-embed-v1"
