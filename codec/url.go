package codec

import (
	"fmt"

	"github.com/arloliu/cborld/format"
	"github.com/arloliu/cborld/termmap"
)

// urlPrefixes is the fixed scheme-prefix table of the URL compression
// scheme. The binary form of a compressed URL is the 2-element array
// [prefixCode, suffix].
var urlPrefixes = map[uint64]string{
	1: "http://",
	2: "https://",
	3: "urn:uuid:",
	4: "did:v1:nym:",
	5: "did:key:",
}

// URLCodec decodes prefix-compressed URL values for terms whose @type is
// @id or @vocab. Plain string values pass through unchanged.
type URLCodec struct {
	url string
}

// Load implements Codec. Accepted shapes: a string, or a 2-element array
// [prefixCode, suffix] with a known prefix code.
func (c *URLCodec) Load(raw any, _ *termmap.Map) error {
	switch v := raw.(type) {
	case string:
		c.url = v
		return nil
	case []any:
		if len(v) != 2 {
			return fmt.Errorf("url codec: %d-element array, want [prefixCode, suffix]", len(v))
		}
		code, ok := format.AsTermID(v[0])
		if !ok {
			return fmt.Errorf("url codec: prefix code %v is not an integer", v[0])
		}
		prefix, ok := urlPrefixes[code]
		if !ok {
			return fmt.Errorf("url codec: unknown prefix code %d", code)
		}
		suffix, ok := v[1].(string)
		if !ok {
			return fmt.Errorf("url codec: suffix %v is not a string", v[1])
		}
		c.url = prefix + suffix

		return nil
	default:
		return fmt.Errorf("url codec: value %T, want string or [prefixCode, suffix]", raw)
	}
}

// Materialize implements Codec.
func (c *URLCodec) Materialize() (any, error) {
	return c.url, nil
}
