package codec

import (
	"fmt"

	"github.com/arloliu/cborld/format"
	"github.com/arloliu/cborld/termmap"
)

// CodecMapCodec wraps an application term-codec map so it is realized
// through the same machinery as every other entry, under the reserved
// @codec pseudo-term.
//
// Unlike the scalar codecs, Materialize reconstructs the original
// application term-map structure rather than a JSON-LD value, so the
// realized map can be threaded back in when nested compressed
// sub-documents reuse it.
type CodecMapCodec struct {
	terms map[string]format.CodecType
}

// Load implements Codec. The raw value is the application term map
// itself: term string to codec type.
func (c *CodecMapCodec) Load(raw any, _ *termmap.Map) error {
	m, ok := raw.(map[string]format.CodecType)
	if !ok {
		return fmt.Errorf("codecMap codec: value %T, want map[string]format.CodecType", raw)
	}

	c.terms = make(map[string]format.CodecType, len(m))
	for term, ct := range m {
		c.terms[term] = ct
	}

	return nil
}

// Materialize implements Codec. The returned map is a copy; mutating it
// does not affect the codec.
func (c *CodecMapCodec) Materialize() (any, error) {
	out := make(map[string]format.CodecType, len(c.terms))
	for term, ct := range c.terms {
		out[term] = ct
	}

	return out, nil
}
