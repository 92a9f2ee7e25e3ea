// Package legembed produces and refreshes embeddings for legislation
// chunks in batches, idempotently, resuming from a durable progress
// tracker.
package legembed

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/sprice/legrag/pkg/legchunk"
	"github.com/sprice/legrag/pkg/legerrors"
	"github.com/sprice/legrag/pkg/legprogress"
	"github.com/sprice/legrag/pkg/legstore"
	"github.com/sprice/legrag/pkg/legtypes"
)

// Batching and fan-out constants, named per spec.md §4.E/§9 so none of
// them are magic numbers scattered through the pipeline.
const (
	DBFetchBatchSize    = 200
	EmbeddingBatchSize  = 64
	EmbedFanOut         = 4
	maxRetryAttempts    = 5
	retryBaseDelay      = 500 * time.Millisecond
)

// Embedder calls out to an embedding model. The HTTP client implementing
// it is out of scope for this repo (it is "the LLM client itself",
// excluded by spec.md §1); only the interface and a deterministic fake
// for tests live here.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// BatchStats records the outcome of embedding one batch, per spec.md
// §4.E's "pipeline logs per-batch stats" requirement.
type BatchStats struct {
	ChunksProcessed int
	ChunksSkipped   int
	ItemsProcessed  int
	Errors          []error
}

// Pipeline wires together the chunker, embedder, progress tracker, and
// store for a single embed-legislation run.
type Pipeline struct {
	Pool     *legstore.Pool
	Embedder Embedder
	Tracker  *legprogress.Tracker
	Model    string
}

// BuildDocumentMetadataChunk renders the index-0 "metadata chunk" that
// describes a whole document: title, long title, status, dates, bill
// origin, etc. The field labels are English for both languages; only the
// bill-origin value is localized ("Sénat" for a French senate bill).
func BuildDocumentMetadataChunk(doc legtypes.Document) legtypes.Chunk {
	var sb strings.Builder
	sb.WriteString("Document: " + doc.Title() + "\n")

	switch doc.Kind {
	case legtypes.DocumentKindAct:
		a := doc.Act
		if a.LongTitle != "" {
			sb.WriteString(a.LongTitle + "\n")
		}
		sb.WriteString("Status: " + string(a.Status) + "\n")
		if a.InForceDate != "" {
			sb.WriteString("In force: " + a.InForceDate + "\n")
		}
		if a.EnactedDate != "" {
			sb.WriteString("Enacted: " + a.EnactedDate + "\n")
		}
		if a.BillOrigin != "" {
			sb.WriteString("Origin: " + billOriginLabel(a.BillOrigin, doc.Language) + "\n")
		}
	case legtypes.DocumentKindRegulation:
		r := doc.Regulation
		if r.LongTitle != "" {
			sb.WriteString(r.LongTitle + "\n")
		}
		sb.WriteString("Status: " + string(r.Status) + "\n")
		if r.RegistrationDate != "" {
			sb.WriteString("Registered: " + r.RegistrationDate + "\n")
		}
		if r.EnablingActTitle != "" {
			sb.WriteString("Enabling act: " + r.EnablingActTitle + "\n")
		}
	}

	return legtypes.Chunk{
		Content:     sb.String(),
		ChunkIndex:  0,
		TotalChunks: 1,
		SourceType:  documentSourceType(doc.Kind),
		SourceID:    doc.ParentID(),
		Language:    doc.Language,
		ResourceKey: legtypes.BuildResourceKey(documentSourceType(doc.Kind), doc.ParentID(), doc.Language, 0),
	}
}

// billOriginLabel renders a BillOrigin, localizing "senate" to "Sénat"
// in French per the chosen resolution of spec.md §9 open question (c).
func billOriginLabel(origin legtypes.BillOrigin, lang legtypes.Language) string {
	if origin == legtypes.BillOriginSenate && lang == legtypes.LanguageFR {
		return "Sénat"
	}
	return string(origin)
}

func documentSourceType(kind legtypes.DocumentKind) legtypes.SourceType {
	if kind == legtypes.DocumentKindRegulation {
		return legtypes.SourceTypeRegulation
	}
	return legtypes.SourceTypeAct
}

func sectionSourceType(kind legtypes.DocumentKind) legtypes.SourceType {
	if kind == legtypes.DocumentKindRegulation {
		return legtypes.SourceTypeRegulationSection
	}
	return legtypes.SourceTypeActSection
}

// BuildSectionChunks chunks a single section and stamps every resulting
// chunk with its sourceType, sourceID, and resourceKey.
func BuildSectionChunks(kind legtypes.DocumentKind, section legtypes.Section, documentTitle string, opts legchunk.Options) ([]legtypes.Chunk, error) {
	if legchunk.ShouldSkipSection(section.Content) {
		return nil, nil
	}
	chunks, err := legchunk.ChunkSection(section, documentTitle, opts)
	if err != nil {
		return nil, fmt.Errorf("legembed: chunk section %s: %w", section.CanonicalSectionID, err)
	}
	sourceType := sectionSourceType(kind)
	for i := range chunks {
		chunks[i].SourceType = sourceType
		chunks[i].SourceID = section.CanonicalSectionID
		chunks[i].ResourceKey = legtypes.BuildResourceKey(sourceType, section.CanonicalSectionID, section.Language, chunks[i].ChunkIndex)
	}
	return chunks, nil
}

// definedTermResourceID joins the term's owning document, scope, and
// text into a stable id, since defined terms have no primary key of
// their own in the source XML.
func definedTermResourceID(t legtypes.DefinedTerm) string {
	parent := t.ActID
	if parent == "" {
		parent = t.RegulationID
	}
	return parent + "/" + string(t.Language) + "/" + t.SectionLabel + "/" + t.Term
}

// BuildDefinedTermChunk renders a single defined term (and its paired
// other-language term, when extracted from the same wrapper) as a
// standalone glossary chunk, so "defined_term" can be refreshed as its
// own resource family independent of section prose.
func BuildDefinedTermChunk(t legtypes.DefinedTerm) legtypes.Chunk {
	var sb strings.Builder
	sb.WriteString(t.Term)
	if t.PairedTerm != "" {
		sb.WriteString(" / " + t.PairedTerm)
	}
	sb.WriteString("\n")
	sb.WriteString("Scope: " + string(t.ScopeType))
	if len(t.ScopeSections) > 0 {
		sb.WriteString(" (" + strings.Join(t.ScopeSections, ", ") + ")")
	}
	sb.WriteString("\n")

	id := definedTermResourceID(t)
	return legtypes.Chunk{
		Content:     sb.String(),
		ChunkIndex:  0,
		TotalChunks: 1,
		SourceType:  legtypes.SourceTypeDefinedTerm,
		SourceID:    id,
		Language:    t.Language,
		ResourceKey: legtypes.BuildResourceKey(legtypes.SourceTypeDefinedTerm, id, t.Language, 0),
	}
}

// normalizeForEmbedding collapses internal whitespace runs and trims the
// text before it is sent to the embedder, so resourceKey-identical
// chunks always embed byte-identical input.
func normalizeForEmbedding(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// filterNewChunks partitions chunks into those not yet marked in the
// tracker (newChunks) and those already complete (skipped). When
// skipExisting is false every chunk is treated as new, forcing a
// re-embed.
func filterNewChunks(tracker *legprogress.Tracker, chunks []legtypes.Chunk, skipExisting bool) (newChunks, skipped []legtypes.Chunk, err error) {
	if !skipExisting || tracker == nil {
		return chunks, nil, nil
	}
	keys := make([]string, len(chunks))
	for i, c := range chunks {
		keys[i] = c.ResourceKey
	}
	existing, err := tracker.HasMany(keys)
	if err != nil {
		return nil, nil, fmt.Errorf("legembed: check tracker: %w", err)
	}
	for _, c := range chunks {
		if existing[c.ResourceKey] {
			skipped = append(skipped, c)
		} else {
			newChunks = append(newChunks, c)
		}
	}
	return newChunks, skipped, nil
}

// subBatchResult holds one sub-batch's fanned-out embedder call
// outcome, kept indexed so persistence below can proceed in chunk
// order even though the calls above completed out of order.
type subBatchResult struct {
	chunks  []legtypes.Chunk
	vectors [][]float32
	err     error
}

// EmbedChunks generates embeddings for chunks in sub-batches of
// EmbeddingBatchSize. Embedder calls for up to EmbedFanOut sub-batches
// run concurrently via errgroup; persistence of each sub-batch is
// always serialized into its own transaction, matching spec.md §5's
// "concurrent embedder calls, serialized persistence" model. A
// sub-batch's embedder failure is recorded and does not cancel sibling
// sub-batches in flight.
func (p *Pipeline) EmbedChunks(ctx context.Context, chunks []legtypes.Chunk, metadataFor func(legtypes.Chunk) map[string]any) (BatchStats, error) {
	var stats BatchStats

	var subBatches [][]legtypes.Chunk
	for start := 0; start < len(chunks); start += EmbeddingBatchSize {
		end := start + EmbeddingBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		subBatches = append(subBatches, chunks[start:end])
	}

	results := make([]subBatchResult, len(subBatches))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(EmbedFanOut)
	for i, sub := range subBatches {
		i, sub := i, sub
		g.Go(func() error {
			vectors, err := p.generateEmbeddingsWithRetry(gctx, sub)
			results[i] = subBatchResult{chunks: sub, vectors: vectors, err: err}
			return nil // errors are carried in results, never abort siblings
		})
	}
	_ = g.Wait()

	for _, r := range results {
		if r.err != nil {
			stats.Errors = append(stats.Errors, r.err)
			continue
		}

		tx, err := p.Pool.Begin(ctx)
		if err != nil {
			stats.Errors = append(stats.Errors, fmt.Errorf("%w: begin: %v", legerrors.ErrDBTransaction, err))
			continue
		}

		keys := make([]string, 0, len(r.chunks))
		persistErr := persistSubBatch(ctx, tx, r.chunks, r.vectors, p.Model, metadataFor, &keys)
		if persistErr != nil {
			_ = tx.Rollback(ctx)
			stats.Errors = append(stats.Errors, persistErr)
			continue
		}
		if err := tx.Commit(ctx); err != nil {
			stats.Errors = append(stats.Errors, fmt.Errorf("%w: commit: %v", legerrors.ErrDBTransaction, err))
			continue
		}

		if p.Tracker != nil {
			if err := p.Tracker.MarkMany(keys); err != nil {
				stats.Errors = append(stats.Errors, fmt.Errorf("legembed: mark tracker after commit: %w", err))
			}
		}

		stats.ChunksProcessed += len(r.chunks)
	}

	return stats, nil
}

func persistSubBatch(ctx context.Context, tx pgx.Tx, sub []legtypes.Chunk, vectors [][]float32, model string, metadataFor func(legtypes.Chunk) map[string]any, keys *[]string) error {
	for i, c := range sub {
		meta := map[string]any{}
		if metadataFor != nil {
			meta = metadataFor(c)
		}
		res := legtypes.Resource{
			ResourceKey: c.ResourceKey,
			SourceType:  c.SourceType,
			Language:    c.Language,
			Metadata:    meta,
		}
		resourceID, err := legstore.SaveResource(ctx, tx, res)
		if err != nil {
			return err
		}
		if err := legstore.SaveEmbedding(ctx, tx, resourceID, normalizeForEmbedding(c.Content), vectors[i], model); err != nil {
			return err
		}
		*keys = append(*keys, c.ResourceKey)
	}
	return nil
}

// generateEmbeddingsWithRetry calls the embedder with exponential
// backoff on transient errors and validates every returned vector is a
// finite EMBEDDING_DIMENSIONS-length array.
func (p *Pipeline) generateEmbeddingsWithRetry(ctx context.Context, chunks []legtypes.Chunk) ([][]float32, error) {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = normalizeForEmbedding(c.Content)
	}

	var lastErr error
	delay := retryBaseDelay
	for attempt := 0; attempt < maxRetryAttempts; attempt++ {
		vectors, err := p.Embedder.Embed(ctx, texts)
		if err == nil {
			if err := validateVectors(vectors, len(texts)); err != nil {
				return nil, err
			}
			return vectors, nil
		}
		lastErr = err
		if legerrors.IsFatalEmbedderError(err) {
			return nil, fmt.Errorf("%w: %v", legerrors.ErrEmbedderFatal, err)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return nil, fmt.Errorf("%w: exhausted retries: %v", legerrors.ErrEmbedderTransient, lastErr)
}

func validateVectors(vectors [][]float32, want int) error {
	if len(vectors) != want {
		return fmt.Errorf("%w: expected %d vectors, got %d", legerrors.ErrInvalidEmbedding, want, len(vectors))
	}
	for _, v := range vectors {
		if len(v) != legtypes.EmbeddingDimensions {
			return fmt.Errorf("%w: expected %d dimensions, got %d", legerrors.ErrInvalidEmbedding, legtypes.EmbeddingDimensions, len(v))
		}
		for _, f := range v {
			if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
				return fmt.Errorf("%w: non-finite value", legerrors.ErrInvalidEmbedding)
			}
		}
	}
	return nil
}

// FilterNewChunks exposes filterNewChunks for the CLI layer.
func FilterNewChunks(tracker *legprogress.Tracker, chunks []legtypes.Chunk, skipExisting bool) (newChunks, skipped []legtypes.Chunk, err error) {
	return filterNewChunks(tracker, chunks, skipExisting)
}

// NormalizeForEmbedding exposes normalizeForEmbedding for tests and the
// re-embed migration path.
func NormalizeForEmbedding(text string) string {
	return normalizeForEmbedding(text)
}
