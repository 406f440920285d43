package padded

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/jsimd/compress"
	"github.com/arloliu/jsimd/errs"
	"github.com/arloliu/jsimd/format"
)

const sampleDoc = `{"name":"Alice","age":30,"active":true,"tags":["a","b"]}`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func TestLoad_Plain(t *testing.T) {
	path := writeFile(t, "doc.json", []byte(sampleDoc))

	b, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, sampleDoc, b.String())
	assert.Equal(t, len(sampleDoc)+Padding, b.Cap(), "plain files are read into one exact allocation")
	requirePadding(t, b)
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeFile(t, "empty.json", nil)

	b, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, b.Len())
	requirePadding(t, b)
}

func TestLoad_Compressed(t *testing.T) {
	tests := []struct {
		ext   string
		cType format.CompressionType
	}{
		{".json.zst", format.CompressionZstd},
		{".json.s2", format.CompressionS2},
		{".json.lz4", format.CompressionLZ4},
		{".json.gz", format.CompressionGzip},
	}

	for _, tt := range tests {
		t.Run(tt.cType.String(), func(t *testing.T) {
			codec, err := compress.GetCodec(tt.cType)
			require.NoError(t, err)
			compressed, err := codec.Compress([]byte(sampleDoc))
			require.NoError(t, err)

			path := writeFile(t, "doc"+tt.ext, compressed)

			b, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, sampleDoc, b.String())
			requirePadding(t, b)
		})
	}
}

func TestLoadCompressed_ExplicitCodec(t *testing.T) {
	codec, err := compress.GetCodec(format.CompressionZstd)
	require.NoError(t, err)
	compressed, err := codec.Compress([]byte(sampleDoc))
	require.NoError(t, err)

	path := writeFile(t, "doc.bin", compressed)

	b, err := LoadCompressed(path, format.CompressionZstd)
	require.NoError(t, err)
	assert.Equal(t, sampleDoc, b.String())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))

	require.ErrorIs(t, err, errs.ErrIO)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoad_CorruptCompressedFile(t *testing.T) {
	path := writeFile(t, "doc.json.zst", []byte(sampleDoc))

	_, err := Load(path)
	require.ErrorIs(t, err, errs.ErrIO)
}

func TestLoadCompressed_UnknownCodec(t *testing.T) {
	path := writeFile(t, "doc.json", []byte(sampleDoc))

	_, err := LoadCompressed(path, format.CompressionType(0xFF))
	require.ErrorIs(t, err, errs.ErrIO)
}
