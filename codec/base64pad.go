package codec

import (
	"encoding/base64"
	"fmt"

	"github.com/arloliu/cborld/termmap"
)

// Base64PadCodec renders CBOR byte strings as standard padded base64
// text, for terms typed xsd:base64Binary. A value already in string form
// passes through unchanged, so re-decoding realized output is exact.
type Base64PadCodec struct {
	encoded string
}

// Load implements Codec. Accepted shapes: a byte string or a string.
func (c *Base64PadCodec) Load(raw any, _ *termmap.Map) error {
	switch v := raw.(type) {
	case []byte:
		c.encoded = base64.StdEncoding.EncodeToString(v)
		return nil
	case string:
		c.encoded = v
		return nil
	default:
		return fmt.Errorf("base64Pad codec: value %T, want bytes or string", raw)
	}
}

// Materialize implements Codec.
func (c *Base64PadCodec) Materialize() (any, error) {
	return c.encoded, nil
}
