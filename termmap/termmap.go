package termmap

import (
	"github.com/arloliu/cborld/format"
)

// Entry pairs a resolved term string with the codec that decodes its
// binary values.
type Entry struct {
	Term  string
	Codec format.CodecType
}

// Map is the term codec map for one decode call: a closed-world mapping
// from integer term ID to (term, codec). Keys absent from the map are
// decode failures, never pass-throughs.
//
// A Map is built once per decode by the Resolver and is not safe for
// concurrent mutation; after construction the decode pipeline only reads
// it.
type Map struct {
	byID        map[uint64]Entry
	byTerm      map[string]uint64
	contextURLs map[uint64]string
	nextID      uint64
}

// New creates a Map pre-populated with the reserved JSON-LD keyword
// block. @context carries the context codec; the remaining keywords
// pass values through unchanged.
func New() *Map {
	kws := format.Keywords()
	m := &Map{
		byID:        make(map[uint64]Entry, len(kws)),
		byTerm:      make(map[string]uint64, len(kws)),
		contextURLs: make(map[uint64]string),
		nextID:      format.FirstTermID,
	}
	for i, kw := range kws {
		ct := format.CodecSimple
		switch uint64(i) {
		case format.IDContext:
			ct = format.CodecContext
		case format.IDCodec:
			ct = format.CodecCodecMap
		}
		m.byID[uint64(i)] = Entry{Term: kw, Codec: ct}
		m.byTerm[kw] = uint64(i)
	}

	return m
}

// Add assigns the next sequential term ID to term with the given codec
// and returns the assigned ID. If the term is already present (as a
// keyword or an earlier declaration) the existing ID is returned and the
// codec is left untouched: the first declaration wins during compilation,
// overrides go through SetCodec.
func (m *Map) Add(term string, ct format.CodecType) uint64 {
	if id, ok := m.byTerm[term]; ok {
		return id
	}

	id := m.nextID
	m.nextID++
	m.byID[id] = Entry{Term: term, Codec: ct}
	m.byTerm[term] = id

	return id
}

// SetCodec replaces the codec recorded for an existing term. It reports
// whether the term was present.
func (m *Map) SetCodec(term string, ct format.CodecType) bool {
	id, ok := m.byTerm[term]
	if !ok {
		return false
	}
	m.byID[id] = Entry{Term: term, Codec: ct}

	return true
}

// Lookup returns the entry registered under a term ID.
func (m *Map) Lookup(id uint64) (Entry, bool) {
	e, ok := m.byID[id]
	return e, ok
}

// TermID returns the ID assigned to a term string.
func (m *Map) TermID(term string) (uint64, bool) {
	id, ok := m.byTerm[term]
	return id, ok
}

// SetContextURL records the URL an application context code maps to, so
// the context codec can expand codes embedded in the document.
func (m *Map) SetContextURL(code uint64, url string) {
	m.contextURLs[code] = url
}

// ContextURL expands a context code into its URL, consulting the
// application codes installed on this map first and the well-known
// registry second.
func (m *Map) ContextURL(code uint64) (string, bool) {
	if url, ok := m.contextURLs[code]; ok {
		return url, true
	}

	return format.RegistryURL(code)
}

// Len returns the number of terms in the map, including the reserved
// keyword block.
func (m *Map) Len() int {
	return len(m.byID)
}
