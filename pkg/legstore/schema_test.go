package legstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaDeclaresCoreTables(t *testing.T) {
	for _, table := range []string{
		"acts", "regulations", "sections", "defined_terms",
		"cross_references", "leg_resources", "leg_embeddings",
	} {
		assert.Contains(t, Schema, "CREATE TABLE IF NOT EXISTS "+table, "schema missing table %s", table)
	}
}

func TestSchemaDeclaresVectorAndTsvIndexes(t *testing.T) {
	assert.True(t, strings.Contains(Schema, "vector_cosine_ops"))
	assert.True(t, strings.Contains(Schema, "USING GIN (tsv)"))
	assert.True(t, strings.Contains(Schema, "vector(1024)"))
}
