package codec

import (
	"fmt"
	"time"

	"github.com/arloliu/cborld/format"
	"github.com/arloliu/cborld/termmap"
)

// XSDDateTimeCodec renders integer epoch seconds as xsd:dateTime strings
// in UTC, for terms typed xsd:dateTime. String values pass through
// unchanged, which keeps date-time round trips exact even for strings
// the second-resolution integer form cannot represent.
type XSDDateTimeCodec struct {
	value string
}

// Load implements Codec. Accepted shapes: a non-negative integer (epoch
// seconds) or a string.
func (c *XSDDateTimeCodec) Load(raw any, _ *termmap.Map) error {
	if s, ok := raw.(string); ok {
		c.value = s
		return nil
	}

	secs, ok := format.AsTermID(raw)
	if !ok {
		return fmt.Errorf("dateTime codec: value %v (%T), want epoch seconds or string", raw, raw)
	}
	c.value = time.Unix(int64(secs), 0).UTC().Format("2006-01-02T15:04:05Z")

	return nil
}

// Materialize implements Codec.
func (c *XSDDateTimeCodec) Materialize() (any, error) {
	return c.value, nil
}
