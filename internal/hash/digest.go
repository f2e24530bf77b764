package hash

import "github.com/cespare/xxhash/v2"

// Digest computes the xxHash64 of a context document's raw bytes. It keys
// the resolver's compiled-context cache and lets the caching loader detect
// content changes across fetches of the same URL.
func Digest(data []byte) uint64 {
	return xxhash.Sum64(data)
}
