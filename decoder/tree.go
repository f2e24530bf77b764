package decoder

import (
	"fmt"
	"sort"

	"github.com/arloliu/cborld/codec"
	"github.com/arloliu/cborld/errs"
	"github.com/arloliu/cborld/format"
	"github.com/arloliu/cborld/termmap"
)

// The decoding tree mirrors the raw binary tree with integer keys
// replaced by resolved terms and scalar leaves replaced by loaded codec
// instances. It is a closed union of three shapes; the realizer matches
// on them exhaustively.
type node interface {
	isNode()
}

type mapNode struct {
	entries []mapEntry
}

type mapEntry struct {
	term  string
	value node
}

type listNode struct {
	elems []node
}

type leafNode struct {
	term  string
	codec codec.Codec
}

func (*mapNode) isNode()  {}
func (*listNode) isNode() {}
func (*leafNode) isNode() {}

// buildDecodingMap walks the raw compressed map and the term codec map
// and produces the decoding tree. The term codec map is closed-world: a
// key without an entry aborts the build with errs.ErrUnknownTerm.
//
// When the application supplied a term-codec map, one extra entry is
// synthesized under the reserved @codec pseudo-term wrapping that map,
// so it is realized consistently with every other entry.
func buildDecodingMap(raw any, terms *termmap.Map, appTermMap map[string]format.CodecType) (*mapNode, error) {
	m, ok := raw.(map[any]any)
	if !ok {
		return nil, fmt.Errorf("%w: compressed payload is %T, want map", errs.ErrNotCBORLD, raw)
	}

	root, err := buildMap(m, terms)
	if err != nil {
		return nil, err
	}

	if len(appTermMap) > 0 {
		c, err := codec.CreateCodec(format.CodecCodecMap)
		if err != nil {
			return nil, err
		}
		if err := c.Load(appTermMap, terms); err != nil {
			return nil, err
		}
		root.entries = append(root.entries, mapEntry{
			term:  format.KeywordCodec,
			value: &leafNode{term: format.KeywordCodec, codec: c},
		})
	}

	return root, nil
}

func buildMap(raw map[any]any, terms *termmap.Map) (*mapNode, error) {
	// Sort keys numerically so the tree, and any diagnostics rendered
	// from it, are stable across decodes of the same document.
	ids := make([]uint64, 0, len(raw))
	byID := make(map[uint64]any, len(raw))
	for k, v := range raw {
		id, ok := format.AsTermID(k)
		if !ok {
			return nil, fmt.Errorf("%w: map key %v (%T) is not a term id", errs.ErrUnknownTerm, k, k)
		}
		ids = append(ids, id)
		byID[id] = v
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := &mapNode{entries: make([]mapEntry, 0, len(ids))}
	for _, id := range ids {
		entry, ok := terms.Lookup(id)
		if !ok {
			return nil, fmt.Errorf("%w: term id %d has no term codec map entry", errs.ErrUnknownTerm, id)
		}

		value, err := buildValue(entry, byID[id], terms)
		if err != nil {
			return nil, err
		}
		out.entries = append(out.entries, mapEntry{term: entry.Term, value: value})
	}

	return out, nil
}

// buildValue dispatches on the structural shape of one value: nested
// maps recurse, arrays are processed element-wise with every element
// sharing the key's codec, anything else loads a fresh codec instance.
func buildValue(entry termmap.Entry, raw any, terms *termmap.Map) (node, error) {
	switch v := raw.(type) {
	case map[any]any:
		return buildMap(v, terms)
	case []any:
		if entry.Codec == format.CodecURL && isCompressedURL(v) {
			return buildLeaf(entry, raw, terms)
		}

		return buildList(entry, v, terms)
	default:
		return buildLeaf(entry, raw, terms)
	}
}

// isCompressedURL reports whether an array under a URL-typed term is the
// [prefixCode, suffix] form of a single compressed URL rather than a
// multi-valued term.
func isCompressedURL(v []any) bool {
	if len(v) != 2 {
		return false
	}
	_, ok := format.AsTermID(v[0])

	return ok
}

func buildList(entry termmap.Entry, raw []any, terms *termmap.Map) (*listNode, error) {
	out := &listNode{elems: make([]node, 0, len(raw))}
	for _, elem := range raw {
		switch v := elem.(type) {
		case map[any]any:
			child, err := buildMap(v, terms)
			if err != nil {
				return nil, err
			}
			out.elems = append(out.elems, child)
		case []any:
			// All elements of one array share the key's codec, so an
			// array element that is itself an array has no codec to
			// govern it.
			return nil, fmt.Errorf("%w: term %q: array of arrays", errs.ErrUnsupportedShape, entry.Term)
		default:
			leaf, err := buildLeaf(entry, elem, terms)
			if err != nil {
				return nil, err
			}
			out.elems = append(out.elems, leaf)
		}
	}

	return out, nil
}

func buildLeaf(entry termmap.Entry, raw any, terms *termmap.Map) (*leafNode, error) {
	c, err := codec.CreateCodec(entry.Codec)
	if err != nil {
		return nil, fmt.Errorf("term %q: %w", entry.Term, err)
	}
	if err := c.Load(raw, terms); err != nil {
		return nil, fmt.Errorf("term %q: %w", entry.Term, err)
	}

	return &leafNode{term: entry.Term, codec: c}, nil
}
