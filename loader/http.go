package loader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/klauspost/compress/gzip"

	"github.com/arloliu/cborld/internal/hash"
	"github.com/arloliu/cborld/internal/options"
)

// maxDocumentSize bounds how much of a context document HTTPLoader will
// read. Real context documents are a few kilobytes; anything near this
// limit is a misbehaving server.
const maxDocumentSize = 8 << 20

// HTTPLoader fetches context documents over HTTP(S). Responses may be
// gzip-compressed; the loader advertises and transparently decodes
// gzip transfer encoding.
//
// HTTPLoader performs a network round trip on every Load; wrap it in a
// CachingLoader for production use. It is safe for concurrent use.
type HTTPLoader struct {
	client *http.Client
	logger *slog.Logger
}

// HTTPOption configures an HTTPLoader.
type HTTPOption = options.Option[*HTTPLoader]

// WithHTTPClient replaces the http.Client used for fetches. Use this to
// impose timeouts, proxies, or custom transports.
func WithHTTPClient(client *http.Client) HTTPOption {
	return options.NoError(func(l *HTTPLoader) { l.client = client })
}

// WithLogger installs a structured logger; each successful fetch is
// logged at debug level with the document's size and digest.
func WithLogger(logger *slog.Logger) HTTPOption {
	return options.NoError(func(l *HTTPLoader) { l.logger = logger })
}

// NewHTTPLoader creates an HTTPLoader with the default http.Client.
func NewHTTPLoader(opts ...HTTPOption) (*HTTPLoader, error) {
	l := &HTTPLoader{client: http.DefaultClient}
	if err := options.Apply(l, opts...); err != nil {
		return nil, err
	}

	return l, nil
}

// Load fetches the context document at url.
func (l *HTTPLoader) Load(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch context %q: %w", url, err)
	}
	req.Header.Set("Accept", "application/ld+json, application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch context %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch context %q: unexpected status %s", url, resp.Status)
	}

	var body io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("fetch context %q: %w", url, err)
		}
		defer gz.Close()
		body = gz
	}

	data, err := io.ReadAll(io.LimitReader(body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("fetch context %q: %w", url, err)
	}

	if l.logger != nil {
		l.logger.DebugContext(ctx, "fetched context document",
			slog.String("url", url),
			slog.Int("bytes", len(data)),
			slog.String("digest", fmt.Sprintf("%016x", hash.Digest(data))),
		)
	}

	return data, nil
}
