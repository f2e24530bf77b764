package codec

import (
	"fmt"

	"github.com/arloliu/cborld/errs"
	"github.com/arloliu/cborld/format"
	"github.com/arloliu/cborld/termmap"
)

// ContextCodec expands @context values: integer codes become the context
// URL they map to (well-known registry or application codes installed on
// the term codec map), literal URL strings pass through.
type ContextCodec struct {
	code  uint64
	url   string
	coded bool
}

// Load implements Codec. Accepted shapes: a context code integer or a
// URL string.
func (c *ContextCodec) Load(raw any, terms *termmap.Map) error {
	if s, ok := raw.(string); ok {
		c.url = s
		return nil
	}

	code, ok := format.AsTermID(raw)
	if !ok {
		return fmt.Errorf("context codec: value %v (%T), want code or URL string", raw, raw)
	}
	c.code = code
	c.coded = true
	if terms != nil {
		if url, ok := terms.ContextURL(code); ok {
			c.url = url
		}
	}

	return nil
}

// Materialize implements Codec.
func (c *ContextCodec) Materialize() (any, error) {
	if c.url == "" && c.coded {
		return nil, fmt.Errorf("%w: no URL mapped for context code %d", errs.ErrUnresolvedContext, c.code)
	}

	return c.url, nil
}
