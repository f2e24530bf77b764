package decoder

import (
	"context"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/cborld/errs"
	"github.com/arloliu/cborld/format"
	"github.com/arloliu/cborld/loader"
)

// personContext declares, in order: name=100, homepage=101,
// birthDate=102, photoHash=103, knows=104, amount=105.
var personContext = []byte(`{
	"@context": {
		"name": "https://schema.org/name",
		"homepage": {"@id": "https://schema.org/url", "@type": "@id"},
		"birthDate": {"@id": "https://schema.org/birthDate", "@type": "xsd:dateTime"},
		"photoHash": {"@type": "xsd:base64Binary"},
		"knows": "https://schema.org/knows",
		"amount": {"@type": "xsd:dateTime"}
	}
}`)

const personContextURL = "https://example.org/person"

const (
	idName      = format.FirstTermID
	idHomepage  = format.FirstTermID + 1
	idBirthDate = format.FirstTermID + 2
	idPhotoHash = format.FirstTermID + 3
	idKnows     = format.FirstTermID + 4
	idAmount    = format.FirstTermID + 5
)

func personLoader() loader.DocumentLoader {
	return loader.NewStaticLoader(map[string][]byte{
		personContextURL: personContext,
	})
}

func personOptions(extra ...Option) []Option {
	opts := []Option{
		WithDocumentLoader(personLoader()),
		WithAppContextMap(map[uint64]string{33000: personContextURL}),
	}

	return append(opts, extra...)
}

func marshalCompressed(t *testing.T, payload any) []byte {
	t.Helper()
	data, err := cbor.Marshal(cbor.Tag{Number: format.TagCompressed, Content: payload})
	require.NoError(t, err)

	return data
}

func TestDecode_UncompressedPassThrough(t *testing.T) {
	original := map[string]any{
		"@context": "https://example.org/ctx",
		"name":     "Alice",
		"age":      int64(30),
		"tags":     []any{"a", "b"},
	}
	data, err := cbor.Marshal(cbor.Tag{Number: format.TagUncompressed, Content: original})
	require.NoError(t, err)

	doc, err := Decode(context.Background(), data)
	require.NoError(t, err)
	require.Equal(t, original, doc)
}

func TestDecode_UnrecognizedTagFailsFast(t *testing.T) {
	data, err := cbor.Marshal(cbor.Tag{Number: 0x0502, Content: map[uint64]any{999: "x"}})
	require.NoError(t, err)

	// Must fail on the tag alone; no loader is configured, so any
	// attempt at further processing would fail differently.
	_, err = Decode(context.Background(), data)
	require.ErrorIs(t, err, errs.ErrNotCBORLD)
}

func TestDecode_CompressedScenario(t *testing.T) {
	data := marshalCompressed(t, map[uint64]any{
		format.IDContext: uint64(33000),
		idName:           "Alice",
		idHomepage:       []any{uint64(2), "example.org/alice"},
		idBirthDate:      uint64(1577836800),
		idPhotoHash:      []byte{0x01, 0x02, 0x03},
	})

	doc, err := Decode(context.Background(), data, personOptions()...)
	require.NoError(t, err)

	want := map[string]any{
		"@context":  personContextURL,
		"name":      "Alice",
		"homepage":  "https://example.org/alice",
		"birthDate": "2020-01-01T00:00:00Z",
		"photoHash": "AQID",
	}
	require.Equal(t, want, doc)
}

func TestDecode_UnknownTermFails(t *testing.T) {
	data := marshalCompressed(t, map[uint64]any{
		format.IDContext: uint64(33000),
		999:              "unmapped",
	})

	_, err := Decode(context.Background(), data, personOptions()...)
	require.ErrorIs(t, err, errs.ErrUnknownTerm)
	require.Contains(t, err.Error(), "999")
}

func TestDecode_ArrayOfArraysFails(t *testing.T) {
	data := marshalCompressed(t, map[uint64]any{
		format.IDContext: uint64(33000),
		idName:           []any{[]any{"nested"}},
	})

	_, err := Decode(context.Background(), data, personOptions()...)
	require.ErrorIs(t, err, errs.ErrUnsupportedShape)
	require.Contains(t, err.Error(), "name")
}

func TestDecode_NestedMapsRealizePerValue(t *testing.T) {
	// Two levels of nesting distinguish per-value recursion from
	// re-realizing the outer map.
	data := marshalCompressed(t, map[uint64]any{
		format.IDContext: uint64(33000),
		idKnows: map[uint64]any{
			idName: "Bob",
			idKnows: map[uint64]any{
				idName: "Carol",
			},
		},
	})

	doc, err := Decode(context.Background(), data, personOptions()...)
	require.NoError(t, err)

	want := map[string]any{
		"@context": personContextURL,
		"knows": map[string]any{
			"name": "Bob",
			"knows": map[string]any{
				"name": "Carol",
			},
		},
	}
	require.Equal(t, want, doc)
}

func TestDecode_ArrayOfMapsRealizesElements(t *testing.T) {
	data := marshalCompressed(t, map[uint64]any{
		format.IDContext: uint64(33000),
		idKnows: []any{
			map[uint64]any{idName: "Bob"},
			map[uint64]any{idName: "Carol"},
		},
	})

	doc, err := Decode(context.Background(), data, personOptions()...)
	require.NoError(t, err)

	want := map[string]any{
		"@context": personContextURL,
		"knows": []any{
			map[string]any{"name": "Bob"},
			map[string]any{"name": "Carol"},
		},
	}
	require.Equal(t, want, doc)
}

func TestDecode_ScalarArraySharesKeyCodec(t *testing.T) {
	data := marshalCompressed(t, map[uint64]any{
		format.IDContext: uint64(33000),
		idHomepage: []any{
			[]any{uint64(2), "example.org/a"},
			"https://example.org/b",
		},
	})

	// A 2-element array under a URL-typed term is a compressed URL, so
	// array values of compressed URLs cannot be distinguished from an
	// array of arrays; use distinct shapes here.
	_, err := Decode(context.Background(), data, personOptions()...)
	require.ErrorIs(t, err, errs.ErrUnsupportedShape)

	data = marshalCompressed(t, map[uint64]any{
		format.IDContext: uint64(33000),
		idName:           []any{"Alice", "Alicia"},
	})

	doc, err := Decode(context.Background(), data, personOptions()...)
	require.NoError(t, err)
	require.Equal(t, []any{"Alice", "Alicia"}, doc["name"])
}

func TestDecode_AppTermMapOverrideAndCodecEntry(t *testing.T) {
	appTermMap := map[string]format.CodecType{
		"amount": format.CodecSimple, // context types amount as dateTime
	}
	data := marshalCompressed(t, map[uint64]any{
		format.IDContext: uint64(33000),
		idAmount:         uint64(42),
	})

	doc, err := Decode(context.Background(), data, personOptions(WithAppTermMap(appTermMap))...)
	require.NoError(t, err)

	// The override wins: the raw integer stays an integer.
	require.Equal(t, int64(42), doc["amount"])

	// The application term map rides along under @codec, unchanged.
	require.Equal(t, appTermMap, doc["@codec"])
}

func TestDecode_ContextArray(t *testing.T) {
	credentials := []byte(`{"@context": {"issuer": {"@type": "@id"}}}`)
	docs := loader.NewStaticLoader(map[string][]byte{
		personContextURL: personContext,
		"https://www.w3.org/2018/credentials/v1": credentials,
	})

	data := marshalCompressed(t, map[uint64]any{
		format.IDContext: []any{uint64(33000), uint64(0x11)},
		idName:           "Alice",
	})

	doc, err := Decode(context.Background(), data,
		WithDocumentLoader(docs),
		WithAppContextMap(map[uint64]string{33000: personContextURL}),
	)
	require.NoError(t, err)

	want := map[string]any{
		"@context": []any{personContextURL, "https://www.w3.org/2018/credentials/v1"},
		"name":     "Alice",
	}
	require.Equal(t, want, doc)
}

func TestDecode_CompressedPayloadNotMap(t *testing.T) {
	data := marshalCompressed(t, "just a string")
	_, err := Decode(context.Background(), data, personOptions()...)
	require.ErrorIs(t, err, errs.ErrNotCBORLD)
}

func TestDecode_DiagnosticSinkObservesBothTrees(t *testing.T) {
	var messages []string
	data := marshalCompressed(t, map[uint64]any{
		format.IDContext: uint64(33000),
		idName:           "Alice",
	})

	doc, err := Decode(context.Background(), data,
		personOptions(WithDiagnostic(func(msg string) { messages = append(messages, msg) }))...)
	require.NoError(t, err)
	require.Equal(t, "Alice", doc["name"])

	require.Len(t, messages, 2)
	require.Contains(t, messages[0], "binary tree")
	require.Contains(t, messages[1], "reconstructed document")
	require.Contains(t, messages[1], "Alice")
}

func TestNewDecoder_RejectsLowAppContextCode(t *testing.T) {
	_, err := NewDecoder(WithAppContextMap(map[uint64]string{100: "https://example.org/ctx"}))
	require.ErrorIs(t, err, errs.ErrInvalidContextCode)
}

func TestDecoder_Reuse(t *testing.T) {
	d, err := NewDecoder(personOptions()...)
	require.NoError(t, err)

	data := marshalCompressed(t, map[uint64]any{
		format.IDContext: uint64(33000),
		idName:           "Alice",
	})

	for i := 0; i < 2; i++ {
		doc, err := d.Decode(context.Background(), data)
		require.NoError(t, err)
		require.Equal(t, "Alice", doc["name"])
	}
}
