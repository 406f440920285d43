package padded

import (
	"fmt"
	"io"
	"os"

	"github.com/arloliu/jsimd/compress"
	"github.com/arloliu/jsimd/errs"
	"github.com/arloliu/jsimd/format"
	"github.com/arloliu/jsimd/internal/engine"
)

// Load reads the file at path into a new Buffer.
//
// Files ending in .zst, .zstd, .s2, .lz4, .gz or .gzip are decompressed first, see
// format.CompressionForPath. Open, stat, read and decompression failures are reported as
// errs.ErrIO; files larger than the engine limit as errs.ErrCapacity.
func Load(path string) (*Buffer, error) {
	return LoadCompressed(path, format.CompressionForPath(path))
}

// LoadCompressed reads the file at path and decompresses it with the given codec.
func LoadCompressed(path string, compression format.CompressionType) (*Buffer, error) {
	if compression == format.CompressionNone {
		return loadFile(path)
	}

	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, errs.IO("padded.Load", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.IO("padded.Load", err)
	}

	data, err := codec.Decompress(raw)
	if err != nil {
		return nil, errs.IO("padded.Load", fmt.Errorf("%s: %w", path, err))
	}

	return FromOwned(data), nil
}

// loadFile reads an uncompressed file into a single allocation of size+Padding bytes.
func loadFile(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.IO("padded.Load", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errs.IO("padded.Load", err)
	}

	size := info.Size()
	if uint64(size) > engine.MaxSize {
		return nil, errs.Capacity("padded.Load", errs.ErrBufferTooSmall,
			fmt.Sprintf("%s: %d bytes exceeds the %d byte limit", path, size, uint64(engine.MaxSize)))
	}
	if size == 0 {
		// Size is unknown for pipes and procfs entries.
		return FromReader(f)
	}

	data := make([]byte, int(size)+Padding)
	n, err := io.ReadFull(f, data[:size])
	if err != nil {
		return nil, errs.IO("padded.Load", err)
	}

	return &Buffer{data: data, n: n}, nil
}
