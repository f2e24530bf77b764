package decoder

import (
	"fmt"
	"math"

	"github.com/fxamacker/cbor/v2"

	"github.com/arloliu/cborld/errs"
	"github.com/arloliu/cborld/format"
)

// envelope is the dispatched form of the top-level tagged value: either
// an uncompressed pass-through document or the raw map of a compressed
// one.
type envelope struct {
	compressed bool
	content    any
}

// parseEnvelope decodes the byte sequence and dispatches on the envelope
// tag. Exactly two tag values are legal; anything else, including an
// untagged top level, fails with errs.ErrNotCBORLD.
func parseEnvelope(data []byte) (envelope, error) {
	var tag cbor.Tag
	if err := cbor.Unmarshal(data, &tag); err != nil {
		return envelope{}, fmt.Errorf("%w: %v (expected tag 0x%04x or 0x%04x)",
			errs.ErrNotCBORLD, err, format.TagUncompressed, format.TagCompressed)
	}

	switch tag.Number {
	case format.TagUncompressed:
		return envelope{compressed: false, content: tag.Content}, nil
	case format.TagCompressed:
		return envelope{compressed: true, content: tag.Content}, nil
	default:
		return envelope{}, fmt.Errorf("%w: tag 0x%04x (expected 0x%04x or 0x%04x)",
			errs.ErrNotCBORLD, tag.Number, format.TagUncompressed, format.TagCompressed)
	}
}

// toPlainDocument converts the content of an uncompressed envelope into
// a plain string-keyed JSON-LD document. The generic CBOR decoder hands
// maps back as map[any]any; every key must be a string.
func toPlainDocument(content any) (map[string]any, error) {
	m, ok := content.(map[any]any)
	if !ok {
		return nil, fmt.Errorf("%w: uncompressed payload is %T, want map", errs.ErrNotCBORLD, content)
	}

	doc, err := plainValueMap(m)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

func plainValueMap(m map[any]any) (map[string]any, error) {
	doc := make(map[string]any, len(m))
	for k, v := range m {
		key, ok := k.(string)
		if !ok {
			return nil, fmt.Errorf("%w: uncompressed map key %v (%T), want string", errs.ErrNotCBORLD, k, k)
		}
		pv, err := plainValue(v)
		if err != nil {
			return nil, err
		}
		doc[key] = pv
	}

	return doc, nil
}

func plainValue(v any) (any, error) {
	switch val := v.(type) {
	case map[any]any:
		return plainValueMap(val)
	case []any:
		out := make([]any, 0, len(val))
		for _, elem := range val {
			pv, err := plainValue(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, pv)
		}

		return out, nil
	case uint64:
		return normalizeInt(val), nil
	default:
		return v, nil
	}
}

// normalizeInt maps non-negative CBOR integers onto int64 where they
// fit, matching the integer type a plain JSON-LD document carries.
func normalizeInt(n uint64) any {
	if n <= math.MaxInt64 {
		return int64(n)
	}

	return n
}
