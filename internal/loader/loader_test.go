package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsearch/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_TextAndMarkdown(t *testing.T) {
	dir := t.TempDir()
	txt := writeFile(t, dir, "notes.txt", "plain text body")
	md := writeFile(t, dir, "readme.md", "# heading\n\nbody")

	docs, skipped, err := Load([]string{txt, md})
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, docs, 2)

	assert.Equal(t, domain.SourceText, docs[0].SourceType)
	assert.Equal(t, "notes", docs[0].Title)
	assert.Equal(t, "plain text body", docs[0].Content)
	assert.NotEmpty(t, docs[0].SourceID)

	assert.Equal(t, domain.SourceMarkdown, docs[1].SourceType)
	assert.Equal(t, "readme", docs[1].Title)
}

func TestLoad_GlobExpansion(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "a")
	writeFile(t, dir, "b.txt", "b")

	docs, _, err := Load([]string{filepath.Join(dir, "*.txt")})
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestLoad_SkipsUnsupportedExtensions(t *testing.T) {
	dir := t.TempDir()
	txt := writeFile(t, dir, "keep.txt", "kept")
	bin := writeFile(t, dir, "drop.bin", "dropped")

	docs, skipped, err := Load([]string{txt, bin})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "keep", docs[0].Title)
	assert.Equal(t, []string{bin}, skipped)
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load([]string{filepath.Join(t.TempDir(), "absent.txt")})
	assert.Error(t, err)
}

func TestLoad_StableSourceIDs(t *testing.T) {
	dir := t.TempDir()
	txt := writeFile(t, dir, "stable.txt", "body")

	first, _, err := Load([]string{txt})
	require.NoError(t, err)
	second, _, err := Load([]string{txt})
	require.NoError(t, err)
	assert.Equal(t, first[0].SourceID, second[0].SourceID)
}
