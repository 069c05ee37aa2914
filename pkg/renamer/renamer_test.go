package renamer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func TestApplyReplacesWholeWords(t *testing.T) {
	in := "Copy-SqlDatabase -SqlServer sql01 -Databases AppDb"
	out, changes := Apply(in)

	assert.Equal(t, "Copy-DbaDatabase -SqlInstance sql01 -Database AppDb", out)
	assert.Len(t, changes, 3)
}

func TestApplyLeavesSubstringsAlone(t *testing.T) {
	// Not whole words: a prefix match must not rewrite.
	in := "MyCopy-SqlDatabaseWrapper"
	out, changes := Apply(in)

	assert.Equal(t, in, out)
	assert.Empty(t, changes)
}

func TestApplyCountsOccurrences(t *testing.T) {
	in := "Copy-SqlDatabase; Copy-SqlDatabase"
	out, changes := Apply(in)

	assert.Equal(t, "Copy-DbaDatabase; Copy-DbaDatabase", out)
	require.Len(t, changes, 1)
	assert.Equal(t, "Copy-SqlDatabase", changes[0].Old)
	assert.Equal(t, "Copy-DbaDatabase", changes[0].New)
	assert.Equal(t, 2, changes[0].Count)
}

func TestApplyIsIdempotent(t *testing.T) {
	in := `Copy-SqlDatabase -SqlServer sql01 -Databases AppDb -NoSystemDb
Get-DbaRegisteredServer -SqlInstance sql02
Test-DbaFullRecoveryModel -SqlInstance sql03`

	once, changes := Apply(in)
	require.NotEmpty(t, changes)

	twice, changes2 := Apply(once)
	assert.Equal(t, once, twice)
	assert.Empty(t, changes2)
}

// Every replacement value must itself be a fixed point, otherwise two passes
// could disagree.
func TestRenameMapsHaveNoChains(t *testing.T) {
	for _, m := range []map[string]string{ParameterRenames, CommandRenames} {
		for oldName, newName := range m {
			assert.NotEqual(t, oldName, newName, "self-mapping %s", oldName)
			_, chained := ParameterRenames[newName]
			assert.False(t, chained, "%s maps to deprecated parameter %s", oldName, newName)
			_, chained = CommandRenames[newName]
			assert.False(t, chained, "%s maps to deprecated command %s", oldName, newName)
		}
	}
}

func TestRewriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "migrate.ps1")
	require.NoError(t, os.WriteFile(path, []byte("Copy-SqlDatabase -SqlServer sql01\n"), 0644))

	rw := &Rewriter{Encoding: unicode.UTF8}
	res, err := rw.RewriteFile(path)
	require.NoError(t, err)

	assert.True(t, res.Changed)
	assert.NotEmpty(t, res.Renames)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Copy-DbaDatabase -SqlInstance sql01\n", string(content))

	// Second pass finds nothing.
	res, err = rw.RewriteFile(path)
	require.NoError(t, err)
	assert.False(t, res.Changed)
}

func TestRewriteFileDryRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "migrate.ps1")
	original := "Copy-SqlDatabase -SqlServer sql01\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0644))

	rw := &Rewriter{Encoding: unicode.UTF8, DryRun: true}
	res, err := rw.RewriteFile(path)
	require.NoError(t, err)

	assert.True(t, res.Changed)
	assert.Contains(t, res.After, "Copy-DbaDatabase")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(content))
}

func TestRewriteFileUTF16(t *testing.T) {
	enc, err := ParseEncoding("unicode")
	require.NoError(t, err)

	// UTF-16LE with BOM, the classic Windows PowerShell default.
	raw := []byte{0xFF, 0xFE}
	for _, r := range "Copy-SqlDatabase" {
		raw = append(raw, byte(r), 0)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "legacy.ps1")
	require.NoError(t, os.WriteFile(path, raw, 0644))

	rw := &Rewriter{Encoding: enc}
	res, err := rw.RewriteFile(path)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, "Copy-DbaDatabase", res.After)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xFE}, content[:2])
}

func TestDiff(t *testing.T) {
	res := &Result{
		Path:    "migrate.ps1",
		Changed: true,
		Before:  "Copy-SqlDatabase\n",
		After:   "Copy-DbaDatabase\n",
	}

	diff := Diff(res)
	assert.Contains(t, diff, "-Copy-SqlDatabase")
	assert.Contains(t, diff, "+Copy-DbaDatabase")
}

func TestParseEncoding(t *testing.T) {
	for _, name := range []string{"utf8", "utf8bom", "unicode", "bigendianunicode", "ascii", "ansi"} {
		enc, err := ParseEncoding(name)
		require.NoError(t, err, name)
		assert.NotNil(t, enc, name)
	}

	_, err := ParseEncoding("ebcdic")
	assert.Error(t, err)
}
