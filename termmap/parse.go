package termmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arloliu/cborld/format"
	"github.com/arloliu/cborld/internal/hash"
)

// TermDefinition is one term declared by a context document, in the
// position it was declared. Type holds the term's @type coercion ("" when
// the declaration carries none); it selects the term's codec.
type TermDefinition struct {
	Term string
	Type string
}

// ContextDocument is the compiled form of one fetched context: its URL,
// the xxHash64 digest of the raw bytes, and the declared terms in
// declaration order.
type ContextDocument struct {
	URL    string
	Digest uint64
	Terms  []TermDefinition
}

// ParseContextDocument parses the raw JSON of a context document fetched
// from url, preserving term declaration order.
//
// Term IDs are positional, so a generic JSON-to-map decode would destroy
// the information this package depends on; the parser walks the token
// stream instead. It understands the common context shapes:
//
//   - "@context": { term definitions }
//   - "@context": [ { term definitions }, ... ]
//
// Keyword directives inside a context (@version, @protected, @vocab as a
// directive, ...) are skipped; string entries in a context array (remote
// references) contribute no terms. A term defined as null is dropped.
func ParseContextDocument(url string, data []byte) (*ContextDocument, error) {
	doc := &ContextDocument{URL: url, Digest: hash.Digest(data)}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("context %q: %w", url, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("context %q: top-level value is not an object", url)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("context %q: %w", url, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("context %q: unexpected token %v", url, keyTok)
		}

		if key != "@context" {
			if err := skipValue(dec); err != nil {
				return nil, fmt.Errorf("context %q: %w", url, err)
			}
			continue
		}

		terms, err := parseContextValue(dec)
		if err != nil {
			return nil, fmt.Errorf("context %q: %w", url, err)
		}
		doc.Terms = append(doc.Terms, terms...)
	}

	return doc, nil
}

// CodecForType maps a term's @type coercion to the codec used for its
// binary values. Unrecognized types fall back to the pass-through codec.
func CodecForType(typ string) format.CodecType {
	switch typ {
	case "@id", "@vocab":
		return format.CodecURL
	case "xsd:dateTime", "http://www.w3.org/2001/XMLSchema#dateTime":
		return format.CodecXSDDateTime
	case "xsd:base64Binary", "http://www.w3.org/2001/XMLSchema#base64Binary":
		return format.CodecBase64Pad
	default:
		return format.CodecSimple
	}
}

func parseContextValue(dec *json.Decoder) ([]TermDefinition, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return parseTermDefinitions(dec)
		case '[':
			var terms []TermDefinition
			for dec.More() {
				elem, err := dec.Token()
				if err != nil {
					return nil, err
				}
				switch e := elem.(type) {
				case json.Delim:
					if e != '{' {
						return nil, fmt.Errorf("@context array element is %v, want object or string", e)
					}
					defs, err := parseTermDefinitions(dec)
					if err != nil {
						return nil, err
					}
					terms = append(terms, defs...)
				case string:
					// remote reference, contributes no local terms
				default:
					return nil, fmt.Errorf("@context array element is %v, want object or string", elem)
				}
			}
			if _, err := dec.Token(); err != nil { // closing ']'
				return nil, err
			}

			return terms, nil
		}
	case string:
		// single remote reference
		return nil, nil
	}

	return nil, fmt.Errorf("@context value is %v, want object, array, or string", tok)
}

// parseTermDefinitions reads the body of a context object. The caller has
// consumed the opening '{'.
func parseTermDefinitions(dec *json.Decoder) ([]TermDefinition, error) {
	var terms []TermDefinition
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in context object", keyTok)
		}

		if strings.HasPrefix(key, "@") {
			// keyword directive, not a term declaration
			if err := skipValue(dec); err != nil {
				return nil, err
			}
			continue
		}

		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch v := tok.(type) {
		case string:
			terms = append(terms, TermDefinition{Term: key})
		case json.Delim:
			if v == '{' {
				typ, err := parseExpandedTermDefinition(dec)
				if err != nil {
					return nil, err
				}
				terms = append(terms, TermDefinition{Term: key, Type: typ})
			} else {
				if err := skipCompound(dec); err != nil {
					return nil, err
				}
				terms = append(terms, TermDefinition{Term: key})
			}
		case nil:
			// null removes the term
		default:
			terms = append(terms, TermDefinition{Term: key})
		}
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, err
	}

	return terms, nil
}

// parseExpandedTermDefinition extracts the @type coercion from an
// expanded term definition. The caller has consumed the opening '{'.
func parseExpandedTermDefinition(dec *json.Decoder) (string, error) {
	var typ string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return "", err
		}
		key, ok := keyTok.(string)
		if !ok {
			return "", fmt.Errorf("unexpected token %v in term definition", keyTok)
		}

		if key != "@type" {
			if err := skipValue(dec); err != nil {
				return "", err
			}
			continue
		}

		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch v := tok.(type) {
		case string:
			typ = v
		case json.Delim:
			if v == '[' {
				for dec.More() {
					elem, err := dec.Token()
					if err != nil {
						return "", err
					}
					if s, ok := elem.(string); ok && typ == "" {
						typ = s
					} else if d, ok := elem.(json.Delim); ok && (d == '{' || d == '[') {
						if err := skipCompound(dec); err != nil {
							return "", err
						}
					}
				}
				if _, err := dec.Token(); err != nil { // closing ']'
					return "", err
				}
			} else if err := skipCompound(dec); err != nil {
				return "", err
			}
		}
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return "", err
	}

	return typ, nil
}

// skipValue discards the next value in the token stream, compound or
// scalar.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); ok && (delim == '{' || delim == '[') {
		return skipCompound(dec)
	}

	return nil
}

// skipCompound discards tokens until the compound value whose opening
// delimiter was already consumed is closed.
func skipCompound(dec *json.Decoder) error {
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if delim, ok := tok.(json.Delim); ok {
			switch delim {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}

	return nil
}
