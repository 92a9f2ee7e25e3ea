package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sprice/legrag/pkg/legtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLanguage(t *testing.T) {
	assert.Equal(t, legtypes.LanguageEN, resolveLanguage(""))
	assert.Equal(t, legtypes.LanguageEN, resolveLanguage("en"))
	assert.Equal(t, legtypes.LanguageFR, resolveLanguage("fr"))
	assert.Equal(t, legtypes.LanguageFR, resolveLanguage("FR"))
}

func TestParseIDList(t *testing.T) {
	assert.Nil(t, parseIDList(""))
	assert.Equal(t, []string{"C-46"}, parseIDList("C-46"))
	assert.Equal(t, []string{"C-46", "C-1"}, parseIDList("C-46, C-1,"))
}

func TestDiscoverLegislationFilesFiltersByResolvedIDs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "C-46.xml"), []byte("<Statute/>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "C-1.xml"), []byte("<Statute/>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("not xml"), 0o644))

	files, err := discoverLegislationFiles(dir, "", nil)
	require.NoError(t, err)
	assert.Len(t, files, 2)

	files, err = discoverLegislationFiles(dir, "", []string{"C-46"})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "C-46.xml", filepath.Base(files[0]))
}
