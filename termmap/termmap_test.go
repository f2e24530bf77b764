package termmap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cborld/format"
)

func TestNew_ReservedKeywordBlock(t *testing.T) {
	m := New()

	e, ok := m.Lookup(format.IDCodec)
	require.True(t, ok)
	require.Equal(t, "@codec", e.Term)
	require.Equal(t, format.CodecCodecMap, e.Codec)

	e, ok = m.Lookup(format.IDContext)
	require.True(t, ok)
	require.Equal(t, "@context", e.Term)
	require.Equal(t, format.CodecContext, e.Codec)

	e, ok = m.Lookup(format.IDType)
	require.True(t, ok)
	require.Equal(t, "@type", e.Term)
	require.Equal(t, format.CodecSimple, e.Codec)

	require.Equal(t, len(format.Keywords()), m.Len())
}

func TestMap_Add_SequentialFromFirstTermID(t *testing.T) {
	m := New()

	require.Equal(t, format.FirstTermID, m.Add("name", format.CodecSimple))
	require.Equal(t, format.FirstTermID+1, m.Add("homepage", format.CodecURL))
	require.Equal(t, format.FirstTermID+2, m.Add("birthDate", format.CodecXSDDateTime))

	e, ok := m.Lookup(format.FirstTermID + 1)
	require.True(t, ok)
	require.Equal(t, "homepage", e.Term)
	require.Equal(t, format.CodecURL, e.Codec)
}

func TestMap_Add_FirstDeclarationWins(t *testing.T) {
	m := New()
	id := m.Add("name", format.CodecSimple)

	// Re-declaration keeps both the ID and the codec.
	require.Equal(t, id, m.Add("name", format.CodecURL))
	e, _ := m.Lookup(id)
	require.Equal(t, format.CodecSimple, e.Codec)
}

func TestMap_Add_KeywordKeepsReservedID(t *testing.T) {
	m := New()
	require.Equal(t, format.IDType, m.Add("@type", format.CodecSimple))
	require.Equal(t, len(format.Keywords()), m.Len())
}

func TestMap_SetCodec(t *testing.T) {
	m := New()
	id := m.Add("amount", format.CodecXSDDateTime)

	require.True(t, m.SetCodec("amount", format.CodecSimple))
	e, _ := m.Lookup(id)
	require.Equal(t, format.CodecSimple, e.Codec)

	require.False(t, m.SetCodec("missing", format.CodecSimple))
}

func TestMap_ContextURL(t *testing.T) {
	m := New()
	m.SetContextURL(33000, "https://example.org/ctx")

	url, ok := m.ContextURL(33000)
	require.True(t, ok)
	require.Equal(t, "https://example.org/ctx", url)

	// Falls back to the well-known registry.
	url, ok = m.ContextURL(0x12)
	require.True(t, ok)
	require.Equal(t, "https://www.w3.org/ns/did/v1", url)

	_, ok = m.ContextURL(40000)
	require.False(t, ok)
}

func TestMap_TermID(t *testing.T) {
	m := New()
	id := m.Add("name", format.CodecSimple)

	got, ok := m.TermID("name")
	require.True(t, ok)
	require.Equal(t, id, got)

	got, ok = m.TermID("@context")
	require.True(t, ok)
	require.Equal(t, format.IDContext, got)

	_, ok = m.TermID("missing")
	require.False(t, ok)
}
