package codec

import (
	"fmt"

	"github.com/arloliu/cborld/termmap"
)

// SimpleCodec passes scalar values through unchanged. Terms without a
// recognized @type coercion use it.
type SimpleCodec struct {
	value any
}

// Load implements Codec. Any scalar shape is accepted; containers are
// the tree builder's job and never reach a codec.
func (c *SimpleCodec) Load(raw any, _ *termmap.Map) error {
	switch raw.(type) {
	case map[any]any, []any:
		return fmt.Errorf("simple codec: container value %T, want scalar", raw)
	}
	c.value = raw

	return nil
}

// Materialize implements Codec.
func (c *SimpleCodec) Materialize() (any, error) {
	return normalizeScalar(c.value), nil
}
