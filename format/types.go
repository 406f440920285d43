package format

import (
	"path/filepath"
	"strings"
)

type (
	ElementType     uint8
	CompressionType uint8
)

const (
	TypeInvalid ElementType = 0x0 // TypeInvalid is the zero ElementType.
	TypeArray   ElementType = 0x1 // TypeArray represents a JSON array.
	TypeObject  ElementType = 0x2 // TypeObject represents a JSON object.
	TypeString  ElementType = 0x3 // TypeString represents a JSON string.
	TypeInt64   ElementType = 0x4 // TypeInt64 represents an integer that fits in int64.
	TypeUint64  ElementType = 0x5 // TypeUint64 represents an integer above math.MaxInt64.
	TypeDouble  ElementType = 0x6 // TypeDouble represents a number with a fraction or exponent.
	TypeBool    ElementType = 0x7 // TypeBool represents true or false.
	TypeNull    ElementType = 0x8 // TypeNull represents null.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
	CompressionGzip CompressionType = 0x5 // CompressionGzip represents gzip compression.
)

func (e ElementType) String() string {
	switch e {
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	case TypeString:
		return "string"
	case TypeInt64:
		return "int64"
	case TypeUint64:
		return "uint64"
	case TypeDouble:
		return "double"
	case TypeBool:
		return "bool"
	case TypeNull:
		return "null"
	default:
		return "invalid"
	}
}

// IsNumber reports whether e is one of the three number types.
func (e ElementType) IsNumber() bool {
	return e == TypeInt64 || e == TypeUint64 || e == TypeDouble
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionGzip:
		return "Gzip"
	default:
		return "Unknown"
	}
}

// CompressionForPath infers the compression of a file from its extension.
// Unrecognized extensions select CompressionNone.
func CompressionForPath(path string) CompressionType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return CompressionZstd
	case ".s2":
		return CompressionS2
	case ".lz4":
		return CompressionLZ4
	case ".gz", ".gzip":
		return CompressionGzip
	default:
		return CompressionNone
	}
}
