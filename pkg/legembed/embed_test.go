package legembed

import (
	"context"
	"errors"
	"testing"

	"github.com/sprice/legrag/pkg/legchunk"
	"github.com/sprice/legrag/pkg/legerrors"
	"github.com/sprice/legrag/pkg/legtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	callCount int
	failUntil int
	fatal     bool
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	f.callCount++
	if f.fatal {
		return nil, &legerrors.FatalEmbedderError{Err: errors.New("bad api key")}
	}
	if f.callCount <= f.failUntil {
		return nil, errors.New("rate limited")
	}
	vectors := make([][]float32, len(texts))
	for i := range vectors {
		vectors[i] = make([]float32, legtypes.EmbeddingDimensions)
	}
	return vectors, nil
}

func legchunkOptions() legchunk.Options {
	return legchunk.Options{Language: legtypes.LanguageEN}
}

func TestNormalizeForEmbedding(t *testing.T) {
	assert.Equal(t, "a b c", normalizeForEmbedding("  a   b\nc  "))
	assert.Equal(t, "", normalizeForEmbedding("   \n\t"))
}

func TestBuildDocumentMetadataChunkAct(t *testing.T) {
	doc := legtypes.Document{
		Kind:     legtypes.DocumentKindAct,
		Language: legtypes.LanguageEN,
		Act: &legtypes.ActFields{
			ActID: "C-46", Title: "Criminal Code", LongTitle: "An Act respecting the criminal law",
			Status: legtypes.StatusInForce, EnactedDate: "1985-01-01",
		},
	}
	chunk := BuildDocumentMetadataChunk(doc)
	assert.Equal(t, 0, chunk.ChunkIndex)
	assert.Equal(t, 1, chunk.TotalChunks)
	assert.Equal(t, legtypes.SourceTypeAct, chunk.SourceType)
	assert.Contains(t, chunk.Content, "Criminal Code")
	assert.Contains(t, chunk.Content, "An Act respecting the criminal law")
	assert.Equal(t, "act:C-46:en:0", chunk.ResourceKey)
}

func TestBuildDocumentMetadataChunkBilingualSenateOrigin(t *testing.T) {
	doc := legtypes.Document{
		Kind:     legtypes.DocumentKindAct,
		Language: legtypes.LanguageFR,
		Act: &legtypes.ActFields{
			ActID: "C-1", Title: "Loi test", Status: legtypes.StatusInForce,
			BillOrigin: legtypes.BillOriginSenate,
		},
	}
	chunk := BuildDocumentMetadataChunk(doc)
	assert.Contains(t, chunk.Content, "Sénat")
}

func TestBuildSectionChunksSkipsEmpty(t *testing.T) {
	section := legtypes.Section{CanonicalSectionID: "C-46/en/s1", Content: "   "}
	chunks, err := BuildSectionChunks(legtypes.DocumentKindAct, section, "Criminal Code", legchunkOptions())
	assert.NoError(t, err)
	assert.Nil(t, chunks)
}

func TestGenerateEmbeddingsWithRetryRecoversFromTransientError(t *testing.T) {
	p := &Pipeline{Embedder: &fakeEmbedder{failUntil: 2}}
	vectors, err := p.generateEmbeddingsWithRetry(context.Background(), []legtypes.Chunk{{Content: "a"}})
	require.NoError(t, err)
	assert.Len(t, vectors, 1)
	assert.Len(t, vectors[0], legtypes.EmbeddingDimensions)
}

func TestGenerateEmbeddingsWithRetrySurfacesFatalError(t *testing.T) {
	p := &Pipeline{Embedder: &fakeEmbedder{fatal: true}}
	_, err := p.generateEmbeddingsWithRetry(context.Background(), []legtypes.Chunk{{Content: "a"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, legerrors.ErrEmbedderFatal)
}

func TestValidateVectorsRejectsWrongDimension(t *testing.T) {
	err := validateVectors([][]float32{{1, 2, 3}}, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, legerrors.ErrInvalidEmbedding)
}

func TestBuildDefinedTermChunk(t *testing.T) {
	term := legtypes.DefinedTerm{
		ActID: "C-46", Language: legtypes.LanguageEN, Term: "peace officer",
		PairedTerm: "", ScopeType: legtypes.ScopeTypeAct,
	}
	chunk := BuildDefinedTermChunk(term)
	assert.Equal(t, legtypes.SourceTypeDefinedTerm, chunk.SourceType)
	assert.Contains(t, chunk.Content, "peace officer")
	assert.Contains(t, chunk.Content, "Scope: act")
	assert.Equal(t, "defined_term:C-46/en//peace officer:en:0", chunk.ResourceKey)
}

func TestBuildSectionChunksStampsResourceKey(t *testing.T) {
	section := legtypes.Section{
		CanonicalSectionID: "C-46/en/s1", SectionLabel: "1",
		Language: legtypes.LanguageEN, Content: "This Act may be cited as the Criminal Code.",
	}
	chunks, err := BuildSectionChunks(legtypes.DocumentKindAct, section, "Criminal Code", legchunkOptions())
	assert.NoError(t, err)
	assert.Len(t, chunks, 1)
	assert.Equal(t, legtypes.SourceTypeActSection, chunks[0].SourceType)
	assert.Equal(t, "act_section:C-46/en/s1:en:0", chunks[0].ResourceKey)
}
