package codec

import (
	"fmt"
	"math"

	"github.com/arloliu/cborld/format"
	"github.com/arloliu/cborld/termmap"
)

// Codec is the two-operation contract every variant implements.
//
// Load accepts the as-decoded scalar or sub-structure from the binary
// tree plus the active term codec map, and stores what the variant needs.
// It fails only on input outside the variant's declared shape.
//
// Materialize produces the plain JSON-LD value this codec represents. It
// is pure and side-effect-free; recomputation is idempotent.
type Codec interface {
	Load(raw any, terms *termmap.Map) error
	Materialize() (any, error)
}

// CreateCodec instantiates a fresh codec of the given type. Every
// defined format.CodecType is covered; an unknown type is an error, not
// a fallback.
func CreateCodec(t format.CodecType) (Codec, error) {
	switch t {
	case format.CodecSimple:
		return &SimpleCodec{}, nil
	case format.CodecURL:
		return &URLCodec{}, nil
	case format.CodecBase64Pad:
		return &Base64PadCodec{}, nil
	case format.CodecXSDDateTime:
		return &XSDDateTimeCodec{}, nil
	case format.CodecContext:
		return &ContextCodec{}, nil
	case format.CodecCodecMap:
		return &CodecMapCodec{}, nil
	case format.CodecCompressedDoc:
		return &CompressedDocCodec{}, nil
	case format.CodecUncompressedDoc:
		return &UncompressedDocCodec{}, nil
	default:
		return nil, fmt.Errorf("invalid codec type: %s", t)
	}
}

// normalizeScalar maps CBOR decoder scalar types onto the types a plain
// JSON-LD document carries. Unsigned integers that fit become int64 so
// numbers compare equal across an encode/decode round trip.
func normalizeScalar(v any) any {
	if n, ok := v.(uint64); ok && n <= math.MaxInt64 {
		return int64(n)
	}

	return v
}
