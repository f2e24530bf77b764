// Package errs defines the sentinel error kinds reported by the CBOR-LD
// decode pipeline.
//
// Every decode failure wraps exactly one of these sentinels with
// fmt.Errorf("%w: ...") so callers can classify failures with errors.Is
// while the message carries the offending key or value. There are no
// internal retries: any of these aborts the whole decode call.
package errs

import "errors"

var (
	// ErrNotCBORLD reports a top-level value that is not tagged with one
	// of the two recognized envelope tags.
	ErrNotCBORLD = errors.New("not a CBOR-LD document")

	// ErrUnresolvedContext reports a context code with no mapped URL, or
	// a document loader failure. Loader failures are wrapped alongside
	// this sentinel, never swallowed.
	ErrUnresolvedContext = errors.New("unresolved context")

	// ErrUnknownTerm reports a binary map key with no entry in the term
	// codec map. The map is closed-world: unknown keys fail, they are
	// never silently dropped.
	ErrUnknownTerm = errors.New("unknown term")

	// ErrUnknownEncoding reports a realizer leaf that is neither a nested
	// map, a sequence, nor codec-bearing.
	ErrUnknownEncoding = errors.New("unknown encoding")

	// ErrUnsupportedShape reports an array element that is itself an
	// array, which the term-keyed codec scheme cannot represent.
	ErrUnsupportedShape = errors.New("unsupported shape")

	// ErrInvalidContextCode reports an application context code below the
	// reserved registry boundary.
	ErrInvalidContextCode = errors.New("invalid application context code")
)
