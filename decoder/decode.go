package decoder

import (
	"context"
	"fmt"

	"github.com/arloliu/cborld/format"
	"github.com/arloliu/cborld/internal/options"
	"github.com/arloliu/cborld/loader"
	"github.com/arloliu/cborld/termmap"
)

// Decoder decodes CBOR-LD byte sequences into plain JSON-LD documents.
//
// A Decoder is safe for concurrent use when its document loader is; all
// per-call state (term codec map, decoding tree) is call-local. Create
// one Decoder per application context/term configuration and reuse it so
// compiled contexts are shared across calls.
type Decoder struct {
	loader        loader.DocumentLoader
	appContextMap map[uint64]string
	appTermMap    map[string]format.CodecType
	diagnose      func(string)

	resolver *termmap.Resolver
}

// Option configures a Decoder during construction.
type Option = options.Option[*Decoder]

// WithDocumentLoader installs the loader used to resolve context URLs.
// Decoding a compressed document that references any context fails
// without one.
func WithDocumentLoader(l loader.DocumentLoader) Option {
	return options.NoError(func(d *Decoder) { d.loader = l })
}

// WithAppContextMap installs the application context-code map. Every
// code must be at least format.MinAppContextCode; lower codes belong to
// the well-known registry and are rejected.
func WithAppContextMap(m map[uint64]string) Option {
	return options.NoError(func(d *Decoder) { d.appContextMap = m })
}

// WithAppTermMap installs the application term-codec map. Overrides are
// merged into the term codec map last, so they win on collision, and the
// map itself is threaded into the decoded document under the reserved
// @codec pseudo-term.
func WithAppTermMap(m map[string]format.CodecType) Option {
	return options.NoError(func(d *Decoder) { d.appTermMap = m })
}

// WithDiagnostic installs an observational sink invoked with
// human-readable renderings of the raw decoded binary tree and the
// reconstructed document. It never affects control flow or output.
func WithDiagnostic(fn func(string)) Option {
	return options.NoError(func(d *Decoder) { d.diagnose = fn })
}

// NewDecoder creates a Decoder. Construction fails if the application
// context map claims a code below format.MinAppContextCode.
func NewDecoder(opts ...Option) (*Decoder, error) {
	d := &Decoder{}
	if err := options.Apply(d, opts...); err != nil {
		return nil, err
	}

	resolver, err := termmap.NewResolver(d.loader, d.appContextMap)
	if err != nil {
		return nil, err
	}
	d.resolver = resolver

	return d, nil
}

// Decode transforms a CBOR-LD byte sequence into a plain JSON-LD
// document.
//
// The uncompressed envelope passes its payload through unchanged; the
// compressed envelope runs the full pipeline: context resolution (the
// only phase that may suspend, on loader I/O), decoding tree
// construction, and realization. Any failure aborts the call with one of
// the errs sentinels; there is no partial output.
func (d *Decoder) Decode(ctx context.Context, data []byte) (map[string]any, error) {
	env, err := parseEnvelope(data)
	if err != nil {
		return nil, err
	}

	d.diagnosef("decoded binary tree: %#v", env.content)

	if !env.compressed {
		doc, err := toPlainDocument(env.content)
		if err != nil {
			return nil, err
		}
		d.diagnosef("reconstructed document (pass-through): %#v", doc)

		return doc, nil
	}

	terms, err := d.resolver.Resolve(ctx, env.content, d.appTermMap)
	if err != nil {
		return nil, err
	}

	tree, err := buildDecodingMap(env.content, terms, d.appTermMap)
	if err != nil {
		return nil, err
	}

	doc, err := realize(tree)
	if err != nil {
		return nil, err
	}
	d.diagnosef("reconstructed document: %#v", doc)

	return doc, nil
}

func (d *Decoder) diagnosef(msg string, args ...any) {
	if d.diagnose != nil {
		d.diagnose(fmt.Sprintf(msg, args...))
	}
}

// Decode is a convenience wrapper constructing a one-shot Decoder.
func Decode(ctx context.Context, data []byte, opts ...Option) (map[string]any, error) {
	d, err := NewDecoder(opts...)
	if err != nil {
		return nil, err
	}

	return d.Decode(ctx, data)
}
