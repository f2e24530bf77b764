// Package decoder implements the CBOR-LD decode pipeline: header
// dispatch on the envelope tag, context and term resolution into a term
// codec map, recursive construction of a term-keyed, codec-leafed
// decoding tree, and realization of that tree into a plain JSON-LD
// document.
//
// One decode call owns all intermediate state; nothing is shared across
// calls except the resolver's compiled-context memo. Context resolution
// is the only suspending phase, it completes before any tree walking
// begins.
package decoder
