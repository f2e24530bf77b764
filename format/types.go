package format

import "fmt"

// CodecType identifies one of the built-in value codecs used to transform
// a term's binary representation into its JSON-LD form.
type CodecType uint8

const (
	// CodecSimple passes scalar values through unchanged.
	CodecSimple CodecType = 0x1
	// CodecURL expands prefix-compressed URL values.
	CodecURL CodecType = 0x2
	// CodecBase64Pad renders CBOR byte strings as padded base64 text.
	CodecBase64Pad CodecType = 0x3
	// CodecXSDDateTime renders epoch seconds as xsd:dateTime strings.
	CodecXSDDateTime CodecType = 0x4
	// CodecContext expands context codes into context URLs.
	CodecContext CodecType = 0x5
	// CodecCodecMap wraps an application term-codec map so it can be
	// realized through the same machinery as every other entry.
	CodecCodecMap CodecType = 0x6
	// CodecCompressedDoc wraps a whole compressed child document.
	CodecCompressedDoc CodecType = 0x7
	// CodecUncompressedDoc wraps a whole uncompressed child document.
	CodecUncompressedDoc CodecType = 0x8
)

var codecNames = map[CodecType]string{
	CodecSimple:          "simple",
	CodecURL:             "url",
	CodecBase64Pad:       "base64Pad",
	CodecXSDDateTime:     "dateTime",
	CodecContext:         "context",
	CodecCodecMap:        "codecMap",
	CodecCompressedDoc:   "compressed-cborld",
	CodecUncompressedDoc: "uncompressed-cborld",
}

// String returns the canonical name of the codec type.
func (t CodecType) String() string {
	if name, ok := codecNames[t]; ok {
		return name
	}

	return fmt.Sprintf("unknown(0x%02x)", uint8(t))
}

// ParseCodecType resolves a canonical codec name back to its CodecType.
// It is the inverse of CodecType.String for all defined types and is used
// when loading application term maps from configuration files.
func ParseCodecType(name string) (CodecType, error) {
	for t, n := range codecNames {
		if n == name {
			return t, nil
		}
	}

	return 0, fmt.Errorf("unknown codec type: %q", name)
}

// Envelope tag values recognized at the top level of a CBOR-LD byte
// sequence. Exactly these two values are legal; anything else is a
// format error.
const (
	// TagUncompressed wraps a plain string-keyed JSON-LD document.
	TagUncompressed uint64 = 0x0500
	// TagCompressed wraps an integer-keyed compressed document map.
	TagCompressed uint64 = 0x0501
)

// Reserved term IDs for JSON-LD keywords. IDs below FirstTermID never
// collide with context-declared terms.
const (
	IDCodec   uint64 = 0 // reserved pseudo-term for application term maps
	IDContext uint64 = 1
	IDId      uint64 = 2
	IDType    uint64 = 3
)

// KeywordCodec is the pseudo-term under which an application term-codec
// map is threaded through the decoded document.
const KeywordCodec = "@codec"

// keywords lists every reserved term in ID order. The first four entries
// must line up with the ID constants above.
var keywords = []string{
	"@codec",
	"@context",
	"@id",
	"@type",
	"@value",
	"@language",
	"@list",
	"@set",
	"@graph",
	"@base",
	"@vocab",
	"@container",
	"@direction",
	"@index",
	"@json",
	"@nest",
	"@none",
	"@prefix",
	"@propagate",
	"@protected",
	"@reverse",
	"@version",
}

var keywordIDs = func() map[string]uint64 {
	m := make(map[string]uint64, len(keywords))
	for i, kw := range keywords {
		m[kw] = uint64(i)
	}

	return m
}()

// FirstTermID is the lowest term ID assigned to context-declared terms.
// IDs below it are reserved for JSON-LD keywords.
const FirstTermID uint64 = 100

// MinAppContextCode is the lowest context code an application may claim.
// Codes below it index the well-known context registry.
const MinAppContextCode uint64 = 32768

// KeywordID returns the reserved term ID of a JSON-LD keyword.
func KeywordID(term string) (uint64, bool) {
	id, ok := keywordIDs[term]
	return id, ok
}

// KeywordTerm returns the JSON-LD keyword reserved under the given ID.
func KeywordTerm(id uint64) (string, bool) {
	if id >= uint64(len(keywords)) {
		return "", false
	}

	return keywords[id], true
}

// Keywords returns the reserved keywords in ID order. The returned slice
// is a copy and safe to modify.
func Keywords() []string {
	out := make([]string, len(keywords))
	copy(out, keywords)

	return out
}
