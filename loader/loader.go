// Package loader provides document loaders: the capability that resolves
// a context URL into the raw bytes of its context document.
//
// The decode pipeline treats loading as its only suspending operation; a
// hung loader hangs the decode, so implementations should honor the
// context they are given. Timeouts are the loader's responsibility, the
// decoder imposes none.
package loader

import (
	"context"
	"fmt"
	"sync"

	"github.com/arloliu/cborld/internal/hash"
)

// DocumentLoader resolves a context URL into the raw bytes of its
// context document. Load may suspend on I/O; failures propagate to the
// caller of decode uncaught.
//
// Implementations used across concurrent decodes must be safe for
// concurrent use.
type DocumentLoader interface {
	Load(ctx context.Context, url string) ([]byte, error)
}

// LoaderFunc adapts a plain function to the DocumentLoader interface.
type LoaderFunc func(ctx context.Context, url string) ([]byte, error)

// Load implements DocumentLoader.
func (f LoaderFunc) Load(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

// StaticLoader serves context documents from a fixed in-memory map. It
// is the loader of choice for tests and for applications that bundle
// their contexts to stay off the network.
type StaticLoader struct {
	docs map[string][]byte
}

// NewStaticLoader creates a StaticLoader over a copy of docs, keyed by
// context URL.
func NewStaticLoader(docs map[string][]byte) *StaticLoader {
	copied := make(map[string][]byte, len(docs))
	for url, data := range docs {
		copied[url] = data
	}

	return &StaticLoader{docs: copied}
}

// Load returns the document registered for url, or an error when no
// document is registered.
func (l *StaticLoader) Load(_ context.Context, url string) ([]byte, error) {
	data, ok := l.docs[url]
	if !ok {
		return nil, fmt.Errorf("no context document registered for %q", url)
	}

	return data, nil
}

// CachingLoader memoizes a wrapped loader by URL. Each URL is fetched at
// most once for the lifetime of the cache; concurrent first Loads of the
// same URL share one fetch. The xxHash64 digest of every cached document
// is retained for change diagnostics.
//
// CachingLoader is safe for concurrent use. Errors are not cached: a
// failed fetch is retried on the next Load.
type CachingLoader struct {
	next DocumentLoader

	mu       sync.Mutex
	cache    map[string]cachedDoc
	inflight map[string]*fetchCall
}

type cachedDoc struct {
	data   []byte
	digest uint64
}

// fetchCall is one in-progress fetch shared by every Load waiting on the
// same URL. data and err are written before done is closed.
type fetchCall struct {
	done chan struct{}
	data []byte
	err  error
}

// NewCachingLoader wraps next with a per-URL memo.
func NewCachingLoader(next DocumentLoader) *CachingLoader {
	return &CachingLoader{
		next:     next,
		cache:    make(map[string]cachedDoc),
		inflight: make(map[string]*fetchCall),
	}
}

// Load returns the cached document for url, fetching it through the
// wrapped loader on first use. Callers must not mutate the returned
// bytes.
func (l *CachingLoader) Load(ctx context.Context, url string) ([]byte, error) {
	l.mu.Lock()
	if doc, ok := l.cache[url]; ok {
		l.mu.Unlock()
		return doc.data, nil
	}
	if call, ok := l.inflight[url]; ok {
		l.mu.Unlock()
		select {
		case <-call.done:
			return call.data, call.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	call := &fetchCall{done: make(chan struct{})}
	l.inflight[url] = call
	l.mu.Unlock()

	call.data, call.err = l.next.Load(ctx, url)

	l.mu.Lock()
	delete(l.inflight, url)
	if call.err == nil {
		l.cache[url] = cachedDoc{data: call.data, digest: hash.Digest(call.data)}
	}
	l.mu.Unlock()
	close(call.done)

	return call.data, call.err
}

// Digest returns the xxHash64 digest of the cached document for url.
func (l *CachingLoader) Digest(url string) (uint64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc, ok := l.cache[url]

	return doc.digest, ok
}
