package barcode

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateValue(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9A-F]{8}$`)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		value, err := GenerateValue()
		require.NoError(t, err)
		assert.Regexp(t, pattern, value)
		seen[value] = true
	}
	// 50 nilai acak 4 byte hampir pasti unik semua.
	assert.Greater(t, len(seen), 45)
}

func TestGenerator_Render(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(dir)

	value, err := g.GenerateValue()
	require.NoError(t, err)

	relPath, err := g.Render(value)
	require.NoError(t, err)
	assert.Equal(t, "/barcodes/"+value+".png", relPath)

	info, err := os.Stat(filepath.Join(dir, value+".png"))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// PNG signature
	data, err := os.ReadFile(filepath.Join(dir, value+".png"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4])
}
