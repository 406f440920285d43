package compress

import (
	"errors"
	"fmt"

	"github.com/arloliu/jsimd/format"
)

// MaxDecompressedSize is the largest decompressed output accepted by any codec.
const MaxDecompressedSize uint64 = 0xFFFFFFFF

// ErrTooLarge is returned when a decompressed document would exceed MaxDecompressedSize.
var ErrTooLarge = errors.New("decompressed size exceeds limit")

// Compressor compresses JSON documents.
type Compressor interface {
	// Compress compresses data and returns a newly allocated result. data is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores documents produced by the matching Compressor.
//
// Example:
//
//	decompressor := NewZstdCompressor()
//	original, err := decompressor.Decompress(compressed)
//	if err != nil {
//	    return fmt.Errorf("decompression failed: %w", err)
//	}
type Decompressor interface {
	// Decompress returns the original bytes of data.
	//
	// Error conditions:
	//   - the input is corrupted or uses another format
	//   - the output would exceed MaxDecompressedSize (ErrTooLarge)
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
	format.CompressionGzip: NewGzipCompressor(),
}

// GetCodec retrieves the shared built-in Codec for the specified compression type. Codecs are
// safe for concurrent use.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

func checkSize(n uint64) error {
	if n > MaxDecompressedSize {
		return fmt.Errorf("%w: %d bytes", ErrTooLarge, n)
	}

	return nil
}
