package decoder

import (
	"fmt"

	"github.com/arloliu/cborld/errs"
)

// realize materializes a decoding tree into a plain JSON-LD document.
// Recursion targets the specific nested value being visited: a nested
// map realizes that map, an array element realizes that element. No
// codec machinery survives into the output.
func realize(m *mapNode) (map[string]any, error) {
	doc := make(map[string]any, len(m.entries))
	for _, e := range m.entries {
		value, err := realizeNode(e.term, e.value)
		if err != nil {
			return nil, err
		}
		doc[e.term] = value
	}

	return doc, nil
}

func realizeNode(term string, n node) (any, error) {
	switch v := n.(type) {
	case *mapNode:
		return realize(v)
	case *listNode:
		out := make([]any, 0, len(v.elems))
		for _, elem := range v.elems {
			value, err := realizeNode(term, elem)
			if err != nil {
				return nil, err
			}
			out = append(out, value)
		}

		return out, nil
	case *leafNode:
		value, err := v.codec.Materialize()
		if err != nil {
			return nil, fmt.Errorf("term %q: %w", term, err)
		}

		return value, nil
	default:
		return nil, fmt.Errorf("%w: term %q: value %#v", errs.ErrUnknownEncoding, term, n)
	}
}
