package format

// AsTermID coerces an integer decoded from the binary tree into a term or
// context code. The generic CBOR decoder yields uint64 for positive
// integers and int64 for negative ones; plain int shows up in hand-built
// trees. Negative values never identify a term.
func AsTermID(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint64:
		return n, true
	case int64:
		if n < 0 {
			return 0, false
		}

		return uint64(n), true
	case int:
		if n < 0 {
			return 0, false
		}

		return uint64(n), true
	default:
		return 0, false
	}
}
