// Package codec implements the value codecs that transform between a
// term's binary representation and its JSON-LD form.
//
// Codecs form a closed set enumerated by format.CodecType and are
// instantiated through CreateCodec; there is no open-ended registration.
// Each instance is single-use: Load accepts the raw value exactly as the
// generic CBOR decoder produced it (plus the active term codec map, for
// the variants that need it), and Materialize produces the plain JSON-LD
// value. Instances are immutable once loaded.
package codec
