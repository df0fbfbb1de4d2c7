package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText_PreserveMarkdownHeadings(t *testing.T) {
	result := CleanText("  # Title\n## Subtitle\nContent here")
	assert.Equal(t, "# Title\n## Subtitle\nContent here", result)
}

func TestCleanText_PreserveBulletLists(t *testing.T) {
	result := CleanText("- Item 1\n- Item 2\n  * Nested   item")
	assert.Equal(t, "- Item 1\n- Item 2\n  * Nested item", result)
}

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	result := CleanText("Line    with \t  multiple    spaces   ")
	assert.Equal(t, "Line with multiple spaces", result)
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	result := CleanText("Line 1\n\n\n\n\nLine 2")
	assert.Equal(t, "Line 1\n\nLine 2", result)
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	result := CleanText("Line 1\r\nLine 2\rLine 3\nLine 4")
	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", result)
}

func TestCleanText_EmptyInput(t *testing.T) {
	assert.Empty(t, CleanText(""))
	assert.Empty(t, CleanText("   \n  \n  "))
}

func TestCleanText_SpecialCharacters(t *testing.T) {
	result := CleanText("Test with émojis 🚀 and spéciàl chàracters")
	assert.Equal(t, "Test with émojis 🚀 and spéciàl chàracters", result)
}

func TestCleanText_PreserveIndentation(t *testing.T) {
	result := CleanText("Intro\n    Indented line\n  Less indented")
	assert.Equal(t, "Intro\n    Indented line\n  Less indented", result)
}

func TestReadFile_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(path, []byte("# Job Title\r\n\r\n\r\n\r\nDescription   here\n"), 0644))

	text, metadata, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "# Job Title\n\nDescription here", text)
	require.NotNil(t, metadata)
	assert.Equal(t, SourceFile, metadata.Source)
	assert.Equal(t, path, metadata.Path)
	assert.Len(t, metadata.Hash, 64)
	assert.Equal(t, len(text), metadata.Chars)
}

func TestReadFile_FileNotFound(t *testing.T) {
	text, metadata, err := ReadFile("/nonexistent/file.txt")

	assert.Error(t, err)
	assert.Empty(t, text)
	assert.Nil(t, metadata)
	assert.Contains(t, err.Error(), "file not found")
}

func TestReadFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.txt")
	require.NoError(t, os.WriteFile(path, []byte(" \n\t\n"), 0644))

	_, _, err := ReadFile(path)
	assert.ErrorContains(t, err, "empty")
}

func TestReadFile_HashTracksContent(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	_, a, err := ReadFile(write("a.txt", "Go, SQL"))
	require.NoError(t, err)
	_, b, err := ReadFile(write("b.txt", "Go,   SQL\n"))
	require.NoError(t, err)
	_, c, err := ReadFile(write("c.txt", "Rust"))
	require.NoError(t, err)

	assert.Equal(t, a.Hash, b.Hash, "hash is over cleaned text")
	assert.NotEqual(t, a.Hash, c.Hash)
}
