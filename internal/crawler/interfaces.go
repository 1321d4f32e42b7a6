package crawler

import "context"

// Fetcher performs a single HTTP GET for a URL. Redirects are followed
// by the implementation; FinalURL reports where the response came from.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// FetchResult is the outcome of one successful HTTP exchange.
// A non-2xx status code is a valid FetchResult, not an error.
type FetchResult struct {
	StatusCode  int
	Body        []byte
	ContentType string
	FinalURL    string
}

// PageProcessor turns one URL into a PageRecord. The returned error is
// non-nil only for transport failures (timeout, connection refused, DNS);
// the record is populated in every case so the caller can decide whether
// the failure is fatal or just data.
type PageProcessor interface {
	Process(ctx context.Context, url string) (*PageRecord, error)
}

// Storage archives crawl results for later SQL analysis. It is optional:
// the crawler accepts a nil Storage and skips persistence entirely.
type Storage interface {
	SavePage(rec *PageRecord) error
	SaveLinks(sourceURL string, targetURLs []string) error
	SetMeta(key, value string) error
	GetMeta(key string) (string, error)
	Close() error
}
