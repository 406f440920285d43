package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
//
// It keys object members and struct fields so that lookups compare one integer before
// comparing names.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Bytes computes the xxHash64 of b. Bytes(b) == ID(string(b)).
func Bytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}
