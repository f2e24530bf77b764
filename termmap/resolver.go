package termmap

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/arloliu/cborld/errs"
	"github.com/arloliu/cborld/format"
	"github.com/arloliu/cborld/internal/hash"
	"github.com/arloliu/cborld/loader"
)

// Resolver turns the context references embedded in a compressed document
// into a term codec Map.
//
// A Resolver may be reused across decode calls; the compiled term lists
// of fetched contexts are memoized by content digest so repeated decodes
// against unchanged contexts skip re-parsing. The memo is guarded by a
// mutex, making a Resolver safe for concurrent decodes as long as the
// wrapped loader is too.
type Resolver struct {
	loader        loader.DocumentLoader
	appContextMap map[uint64]string

	mu       sync.Mutex
	compiled map[uint64][]TermDefinition
}

// NewResolver creates a Resolver backed by the given document loader.
// appContextMap extends the context code space with application codes;
// every code must be at least format.MinAppContextCode, the space below
// it belongs to the well-known registry.
func NewResolver(l loader.DocumentLoader, appContextMap map[uint64]string) (*Resolver, error) {
	for code := range appContextMap {
		if code < format.MinAppContextCode {
			return nil, fmt.Errorf("%w: %d (application codes start at %d)",
				errs.ErrInvalidContextCode, code, format.MinAppContextCode)
		}
	}

	m := make(map[uint64]string, len(appContextMap))
	for code, url := range appContextMap {
		m[code] = url
	}

	return &Resolver{
		loader:        l,
		appContextMap: m,
		compiled:      make(map[uint64][]TermDefinition),
	}, nil
}

// Resolve walks the raw compressed tree, resolves every referenced
// context, and compiles the term codec Map for this decode call.
//
// Context URLs are resolved strictly in reference order; term IDs are
// assigned sequentially in that order, then declaration order, starting
// at format.FirstTermID. Application term overrides from appTermMap are
// merged last and win on collision.
//
// Loader failures propagate wrapped under errs.ErrUnresolvedContext, as
// does any context code with no mapped URL.
func (r *Resolver) Resolve(ctx context.Context, raw any, appTermMap map[string]format.CodecType) (*Map, error) {
	refs, err := r.collectRefs(raw)
	if err != nil {
		return nil, err
	}

	m := New()
	for code, url := range r.appContextMap {
		m.SetContextURL(code, url)
	}

	for _, url := range refs {
		terms, err := r.compile(ctx, url)
		if err != nil {
			return nil, err
		}
		for _, def := range terms {
			m.Add(def.Term, CodecForType(def.Type))
		}
	}

	// Sorted for deterministic ID assignment of override-only terms.
	overrides := make([]string, 0, len(appTermMap))
	for term := range appTermMap {
		overrides = append(overrides, term)
	}
	sort.Strings(overrides)
	for _, term := range overrides {
		ct := appTermMap[term]
		if !m.SetCodec(term, ct) {
			m.Add(term, ct)
		}
	}

	return m, nil
}

// compile fetches and parses one context document, memoized by content
// digest.
func (r *Resolver) compile(ctx context.Context, url string) ([]TermDefinition, error) {
	if r.loader == nil {
		return nil, fmt.Errorf("%w: %q: no document loader configured", errs.ErrUnresolvedContext, url)
	}

	data, err := r.loader.Load(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", errs.ErrUnresolvedContext, url, err)
	}

	digest := hash.Digest(data)
	r.mu.Lock()
	terms, ok := r.compiled[digest]
	r.mu.Unlock()
	if ok {
		return terms, nil
	}

	doc, err := ParseContextDocument(url, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrUnresolvedContext, err)
	}

	r.mu.Lock()
	r.compiled[digest] = doc.Terms
	r.mu.Unlock()

	return doc.Terms, nil
}

// collectRefs gathers every context URL referenced by the raw tree, in
// deterministic order, deduplicated. References are the values found
// under @context keys at any depth: registry codes, application codes,
// or literal URL strings.
func (r *Resolver) collectRefs(raw any) ([]string, error) {
	var urls []string
	seen := make(map[string]bool)

	add := func(url string) {
		if !seen[url] {
			seen[url] = true
			urls = append(urls, url)
		}
	}

	var walkValue func(v any) error
	var walkMap func(m map[any]any) error

	addRef := func(v any) error {
		switch ref := v.(type) {
		case string:
			add(ref)
			return nil
		default:
			code, ok := format.AsTermID(v)
			if !ok {
				return fmt.Errorf("%w: context reference %v is neither code nor URL", errs.ErrUnresolvedContext, v)
			}
			url, ok := r.contextURL(code)
			if !ok {
				return fmt.Errorf("%w: no URL mapped for context code %d", errs.ErrUnresolvedContext, code)
			}
			add(url)

			return nil
		}
	}

	walkMap = func(m map[any]any) error {
		// Map iteration order is random; sort keys so reference order is
		// deterministic across decodes of the same document.
		keys := make([]uint64, 0, len(m))
		byKey := make(map[uint64]any, len(m))
		for k, v := range m {
			id, ok := format.AsTermID(k)
			if !ok {
				// Non-integer keys are the tree builder's problem; they
				// cannot reference contexts.
				continue
			}
			keys = append(keys, id)
			byKey[id] = v
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

		for _, id := range keys {
			v := byKey[id]
			if id == format.IDContext {
				if list, ok := v.([]any); ok {
					for _, elem := range list {
						if err := addRef(elem); err != nil {
							return err
						}
					}
				} else if err := addRef(v); err != nil {
					return err
				}
				continue
			}
			if err := walkValue(v); err != nil {
				return err
			}
		}

		return nil
	}

	walkValue = func(v any) error {
		switch val := v.(type) {
		case map[any]any:
			return walkMap(val)
		case []any:
			for _, elem := range val {
				if err := walkValue(elem); err != nil {
					return err
				}
			}
			return nil
		default:
			return nil
		}
	}

	if m, ok := raw.(map[any]any); ok {
		if err := walkMap(m); err != nil {
			return nil, err
		}
	}

	return urls, nil
}

// contextURL maps a context code through the well-known registry or the
// application context map.
func (r *Resolver) contextURL(code uint64) (string, bool) {
	if code < format.MinAppContextCode {
		return format.RegistryURL(code)
	}
	url, ok := r.appContextMap[code]

	return url, ok
}
