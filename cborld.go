// Package cborld implements a compact binary codec between JSON-LD
// documents and a compressed CBOR wire representation.
//
// Compression replaces JSON-LD terms and certain scalar values with small
// integer codes and type-specific byte encodings, using the document's
// linked-data context(s) to derive a deterministic term-to-code mapping.
// This package provides the decode direction: given a byte sequence
// produced by a symmetric encoder, it reconstructs the original plain
// JSON-LD document.
//
// # Envelope
//
// Every CBOR-LD byte sequence is a tagged CBOR value. Two tags are
// recognized: 0x0500 wraps an uncompressed, string-keyed document that
// passes through unchanged; 0x0501 wraps a compressed, integer-keyed map
// that runs the full decode pipeline. Anything else fails decoding.
//
// # Basic Usage
//
// Decoding a compressed document requires a document loader that can
// resolve the context URLs the document references:
//
//	docs := loader.NewStaticLoader(map[string][]byte{
//	    "https://example.org/ctx": contextJSON,
//	})
//	doc, err := cborld.Decode(context.Background(), data,
//	    cborld.WithDocumentLoader(docs),
//	)
//
// Applications with private context URLs register integer codes for them
// (codes 32768 and up; the space below belongs to the well-known
// registry):
//
//	doc, err := cborld.Decode(context.Background(), data,
//	    cborld.WithDocumentLoader(docs),
//	    cborld.WithAppContextMap(map[uint64]string{
//	        33000: "https://example.org/private-ctx",
//	    }),
//	)
//
// For repeated decodes against the same configuration, create one
// Decoder and reuse it; fetched contexts are compiled once and memoized
// by content digest.
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the decoder
// package. The subpackages carry the moving parts: format (wire
// constants and enums), codec (value codecs), termmap (context and term
// resolution), loader (document loaders), and decoder (the pipeline).
package cborld

import (
	"context"

	"github.com/fxamacker/cbor/v2"

	"github.com/arloliu/cborld/decoder"
	"github.com/arloliu/cborld/format"
	"github.com/arloliu/cborld/loader"
)

// Option configures a Decoder. See the With... constructors.
type Option = decoder.Option

// Decoder decodes CBOR-LD byte sequences into plain JSON-LD documents.
// See decoder.Decoder.
type Decoder = decoder.Decoder

// NewDecoder creates a reusable Decoder.
//
// Returns an error if the configuration is invalid, e.g. an application
// context code below 32768.
//
// Example:
//
//	dec, err := cborld.NewDecoder(
//	    cborld.WithDocumentLoader(loader.NewCachingLoader(httpLoader)),
//	)
//	doc, err := dec.Decode(ctx, data)
func NewDecoder(opts ...Option) (*Decoder, error) {
	return decoder.NewDecoder(opts...)
}

// Decode transforms a CBOR-LD byte sequence into a plain JSON-LD
// document using a one-shot Decoder.
//
// Parameters:
//   - ctx: Context governing document-loader I/O
//   - data: The CBOR-LD byte sequence (tagged 0x0500 or 0x0501)
//   - opts: Optional configuration (loader, app maps, diagnostics)
//
// Returns:
//   - map[string]any: The reconstructed JSON-LD document.
//   - error: One of the errs sentinels describing the failure.
func Decode(ctx context.Context, data []byte, opts ...Option) (map[string]any, error) {
	return decoder.Decode(ctx, data, opts...)
}

// WithDocumentLoader installs the loader used to resolve context URLs.
func WithDocumentLoader(l loader.DocumentLoader) Option {
	return decoder.WithDocumentLoader(l)
}

// WithAppContextMap installs the application context-code map (codes
// must be >= 32768).
func WithAppContextMap(m map[uint64]string) Option {
	return decoder.WithAppContextMap(m)
}

// WithAppTermMap installs the application term-codec map; its overrides
// win on collision and the map is threaded into the decoded document
// under the reserved @codec entry.
func WithAppTermMap(m map[string]format.CodecType) Option {
	return decoder.WithAppTermMap(m)
}

// WithDiagnostic installs an observational sink for human-readable
// renderings of the raw binary tree and the reconstructed document.
func WithDiagnostic(fn func(string)) Option {
	return decoder.WithDiagnostic(fn)
}

// EncodeUncompressed wraps a plain JSON-LD document in the uncompressed
// CBOR-LD envelope (tag 0x0500). The result decodes back to the same
// document; integer values are normalized to int64 on the way back.
func EncodeUncompressed(doc map[string]any) ([]byte, error) {
	return cbor.Marshal(cbor.Tag{Number: format.TagUncompressed, Content: doc})
}
