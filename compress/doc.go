// Package compress provides the codecs used to read compressed JSON documents.
//
// padded.Load picks a codec from the file extension and decompresses the file before copying it
// into a padded buffer, so a document stored as data.json.zst parses exactly like data.json.
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): returns the input as is.
//   - Zstd (format.CompressionZstd): pure-Go klauspost/compress by default. Building with
//     cgo and the gozstd tag switches to the libzstd binding from valyala/gozstd.
//   - S2 (format.CompressionS2): klauspost/compress/s2 block format.
//   - LZ4 (format.CompressionLZ4): pierrec/lz4 block format.
//   - Gzip (format.CompressionGzip): klauspost/compress/gzip, compatible with gzip(1).
//
// Example:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	doc, err := codec.Decompress(raw)
//
// # Limits
//
// Decompression fails with ErrTooLarge once the output would exceed MaxDecompressedSize, the
// largest document the engine can index. This bounds the memory a hostile input can claim.
//
// # Thread Safety
//
// All codecs are stateless values backed by package-level pools and can be shared across goroutines.
package compress
