package workload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressionFor(t *testing.T) {
	assert.Equal(t, CompressionZSTD, CompressionFor("a/b.trace.zst"))
	assert.Equal(t, CompressionZSTD, CompressionFor("B.ZSTD"))
	assert.Equal(t, CompressionLZ4, CompressionFor("x.lz4"))
	assert.Equal(t, CompressionNone, CompressionFor("x.trace"))
	assert.Equal(t, CompressionNone, CompressionFor("noext"))
}

func TestSaveLoadAllContainers(t *testing.T) {
	tr := Generate(GenerateConfig{Seed: 11, Ops: 2000, MaxSize: 1500, FreeAll: true})
	dir := t.TempDir()

	for _, name := range []string{"plain.trace", "packed.zst", "packed.lz4"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(path, tr))

			got, err := Load(path)
			require.NoError(t, err)
			require.Equal(t, tr.Ops, got.Ops)
		})
	}
}

func TestCompressedFilesAreSmaller(t *testing.T) {
	tr := Generate(GenerateConfig{Seed: 2, Ops: 5000, MaxSize: 64})
	dir := t.TempDir()

	plain := filepath.Join(dir, "t.trace")
	packed := filepath.Join(dir, "t.zst")
	require.NoError(t, Save(plain, tr))
	require.NoError(t, Save(packed, tr))

	pi, err := os.Stat(plain)
	require.NoError(t, err)
	zi, err := os.Stat(packed)
	require.NoError(t, err)
	require.Less(t, zi.Size(), pi.Size())
}

func TestLoadPlainHandWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hand.trace")
	require.NoError(t, os.WriteFile(path, []byte(sampleTrace), 0o644))

	tr, err := Load(path)
	require.NoError(t, err)
	require.Len(t, tr.Ops, 3)
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.trace")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	tr, err := Load(path)
	require.NoError(t, err)
	require.Empty(t, tr.Ops)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.trace"))
	require.Error(t, err)
	_, err = Load(filepath.Join(dir, "missing.zst"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.trace")
	require.NoError(t, os.WriteFile(bad, []byte("a 1 8\nq\n"), 0o644))
	_, err = Load(bad)
	require.ErrorIs(t, err, ErrParse)

	garbage := filepath.Join(dir, "garbage.zst")
	require.NoError(t, os.WriteFile(garbage, []byte("not zstd at all"), 0o644))
	_, err = Load(garbage)
	require.Error(t, err)
}
