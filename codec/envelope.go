package codec

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/arloliu/cborld/format"
	"github.com/arloliu/cborld/termmap"
)

// CompressedDocCodec wraps a whole compressed child document. It exists
// so a codec table can treat document wrapping uniformly with scalar
// codecs: Materialize is the identity plus re-assertion of the
// compressed envelope tag.
type CompressedDocCodec struct {
	content any
}

// Load implements Codec.
func (c *CompressedDocCodec) Load(raw any, _ *termmap.Map) error {
	c.content = raw
	return nil
}

// Materialize implements Codec.
func (c *CompressedDocCodec) Materialize() (any, error) {
	return cbor.Tag{Number: format.TagCompressed, Content: c.content}, nil
}

// UncompressedDocCodec is the uncompressed counterpart of
// CompressedDocCodec.
type UncompressedDocCodec struct {
	content any
}

// Load implements Codec.
func (c *UncompressedDocCodec) Load(raw any, _ *termmap.Map) error {
	c.content = raw
	return nil
}

// Materialize implements Codec.
func (c *UncompressedDocCodec) Materialize() (any, error) {
	return cbor.Tag{Number: format.TagUncompressed, Content: c.content}, nil
}
