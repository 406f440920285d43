package compress

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/jsimd/format"
)

// jsonPayload builds a JSON array of n small records.
func jsonPayload(n int) []byte {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, `{"id":%d,"name":"user-%d","active":%t,"score":%d.5}`, i, i, i%2 == 0, i*3)
	}
	sb.WriteByte(']')

	return []byte(sb.String())
}

// getAllCodecs returns all available codec implementations for testing
func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp": NewNoOpCompressor(),
		"LZ4":  NewLZ4Compressor(),
		"S2":   NewS2Compressor(),
		"Zstd": NewZstdCompressor(),
		"Gzip": NewGzipCompressor(),
	}
}

func TestGetCodec(t *testing.T) {
	tests := []struct {
		cType format.CompressionType
		want  Codec
	}{
		{format.CompressionNone, NoOpCompressor{}},
		{format.CompressionZstd, ZstdCompressor{}},
		{format.CompressionS2, S2Compressor{}},
		{format.CompressionLZ4, LZ4Compressor{}},
		{format.CompressionGzip, GzipCompressor{}},
	}

	for _, tt := range tests {
		t.Run(tt.cType.String(), func(t *testing.T) {
			codec, err := GetCodec(tt.cType)
			require.NoError(t, err)
			require.IsType(t, tt.want, codec)
		})
	}
}

func TestGetCodec_Invalid(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0xFF))
	require.ErrorContains(t, err, "unsupported compression type")
}

func TestNoOpCompressor_SharesMemory(t *testing.T) {
	data := []byte(`{"a":1}`)
	codec := NewNoOpCompressor()

	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	require.Same(t, &data[0], &compressed[0])

	decompressed, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Same(t, &data[0], &decompressed[0])
}

// TestAllCodecs_EmptyData tests that all codecs handle empty data correctly
func TestAllCodecs_EmptyData(t *testing.T) {
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Nil(t, compressed, "Compressing nil should return nil")

			decompressed, err := codec.Decompress(nil)
			require.NoError(t, err)
			require.Nil(t, decompressed, "Decompressing nil should return nil")

			compressed, err = codec.Compress([]byte{})
			require.NoError(t, err)

			decompressed, err = codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed, "Decompressing empty should return empty")
		})
	}
}

// TestAllCodecs_RoundTrip tests compression and decompression round-trip for all codecs
func TestAllCodecs_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{name: "scalar", data: []byte(`42`)},
		{name: "small_object", data: []byte(`{"name":"Alice","age":30,"active":true}`)},
		{name: "unicode", data: []byte(`{"greeting":"héllo wörld 😀"}`)},
		{name: "records_16KB", data: jsonPayload(256)},
		{name: "records_1MB", data: jsonPayload(16 * 1024)},
		{name: "whitespace", data: bytes.Repeat([]byte(" \n\t"), 64*1024)},
	}

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					compressed, err := codec.Compress(tc.data)
					require.NoError(t, err)
					require.NotNil(t, compressed)

					decompressed, err := codec.Decompress(compressed)
					require.NoError(t, err)
					require.Equal(t, tc.data, decompressed, "Decompressed data must match original")
				})
			}
		})
	}
}

// TestAllCodecs_InvalidData tests that all codecs reject data they did not produce
func TestAllCodecs_InvalidData(t *testing.T) {
	invalidInputs := []struct {
		name string
		data []byte
	}{
		{name: "random_bytes", data: []byte{0xFF, 0xFF, 0xFF, 0xFF}},
		{name: "plain_json", data: []byte(`{"not":"compressed"}`)},
		{name: "corrupted_header", data: []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}},
	}

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			if codecName == "NoOp" {
				t.Skip("NoOp codec doesn't validate data")
			}

			for _, input := range invalidInputs {
				t.Run(input.name, func(t *testing.T) {
					_, err := codec.Decompress(input.data)
					require.Error(t, err, "Should return error for invalid compressed data")
				})
			}
		})
	}
}

func TestS2Compressor_RejectsOversizedHeader(t *testing.T) {
	// An S2 block starts with the uvarint decoded length.
	data := binary.AppendUvarint(nil, MaxDecompressedSize+1)
	data = append(data, 0x00, 0x00, 0x00, 0x00)

	_, err := NewS2Compressor().Decompress(data)
	require.Error(t, err)
}

func TestGzipCompressor_ConcatenatedMembers(t *testing.T) {
	codec := NewGzipCompressor()

	first, err := codec.Compress([]byte(`[1,`))
	require.NoError(t, err)
	second, err := codec.Compress([]byte(`2]`))
	require.NoError(t, err)

	out, err := codec.Decompress(append(first, second...))
	require.NoError(t, err)
	require.Equal(t, `[1,2]`, string(out))
}

func TestCheckSize(t *testing.T) {
	require.NoError(t, checkSize(MaxDecompressedSize))
	require.ErrorIs(t, checkSize(MaxDecompressedSize+1), ErrTooLarge)
}

// TestAllCodecs_ConcurrentUsage tests that all codecs are safe for concurrent use
func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	const numGoroutines = 20
	testData := jsonPayload(32)

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			compressed, err := codec.Compress(testData)
			require.NoError(t, err)

			done := make(chan error, numGoroutines*2)
			for range numGoroutines {
				go func() {
					_, err := codec.Compress(testData)
					done <- err
				}()

				go func() {
					decompressed, err := codec.Decompress(compressed)
					if err != nil {
						done <- err
						return
					}
					if !bytes.Equal(testData, decompressed) {
						done <- fmt.Errorf("data mismatch")
						return
					}
					done <- nil
				}()
			}

			for range numGoroutines * 2 {
				require.NoError(t, <-done)
			}
		})
	}
}

// TestAllCodecs_LargeExpansionRatio tests codecs with highly compressible data
func TestAllCodecs_LargeExpansionRatio(t *testing.T) {
	original := []byte("[" + strings.Repeat("0,", 512*1024) + "0]")

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			compressed, err := codec.Compress(original)
			require.NoError(t, err)

			if codecName == "NoOp" {
				require.Equal(t, len(original), len(compressed))
			} else {
				require.Less(t, len(compressed), len(original)/10,
					"Should compress to less than 10% of original for highly compressible data")
			}

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, original, decompressed)
		})
	}
}
