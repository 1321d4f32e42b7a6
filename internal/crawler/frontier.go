package crawler

import (
	"fmt"
	"net/url"
	"strings"
)

// Frontier is the pending-work queue of one crawl run: a FIFO queue of
// URLs not yet fetched plus the set of normalized URLs already seen
// (visited or queued). It admits only URLs internal to the crawl domain
// and never admits the same normalized URL twice.
type Frontier struct {
	domain  string // normalized registrable host of the start URL
	queue   []FrontierEntry
	seen    map[string]struct{}
	nextSeq int
}

// NewFrontier creates a frontier scoped to the domain of startURL.
func NewFrontier(startURL string) (*Frontier, error) {
	u, err := url.Parse(startURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStartURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStartURL, startURL)
	}
	return &Frontier{
		domain: normalizeDomain(u.Host),
		seen:   make(map[string]struct{}),
	}, nil
}

// Domain returns the normalized crawl domain (www prefix stripped).
func (f *Frontier) Domain() string {
	return f.domain
}

// Enqueue normalizes rawURL and appends it to the queue. URLs outside
// the crawl domain and URLs already seen are silently discarded; that
// is expected operation, not an error. Returns true when the URL was
// actually queued.
func (f *Frontier) Enqueue(rawURL string) bool {
	norm, err := NormalizeURL(rawURL)
	if err != nil {
		return false
	}
	if !f.isInternal(norm) {
		return false
	}
	if _, ok := f.seen[norm]; ok {
		return false
	}
	f.seen[norm] = struct{}{}
	f.queue = append(f.queue, FrontierEntry{URL: norm, Seq: f.nextSeq})
	f.nextSeq++
	return true
}

// Dequeue pops the head of the queue in discovery order.
func (f *Frontier) Dequeue() (string, bool) {
	if len(f.queue) == 0 {
		return "", false
	}
	entry := f.queue[0]
	f.queue = f.queue[1:]
	return entry.URL, true
}

// Seen reports whether the normalized form of rawURL has ever been
// enqueued, regardless of queue position.
func (f *Frontier) Seen(rawURL string) bool {
	norm, err := NormalizeURL(rawURL)
	if err != nil {
		return false
	}
	_, ok := f.seen[norm]
	return ok
}

// Pending returns the number of URLs waiting to be visited.
func (f *Frontier) Pending() int {
	return len(f.queue)
}

func (f *Frontier) isInternal(normURL string) bool {
	u, err := url.Parse(normURL)
	if err != nil {
		return false
	}
	return normalizeDomain(u.Host) == f.domain
}

// NormalizeURL converts rawURL to the canonical form used for dedup:
// lowercase scheme and host, fragment stripped, empty path rewritten to
// "/". Two URLs are the same visit target iff their normalized forms
// are byte-equal. Only absolute http(s) URLs are accepted.
func NormalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("missing host in %q", rawURL)
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String(), nil
}

// normalizeDomain strips a leading www. so that www and non-www hosts
// count as the same site.
func normalizeDomain(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}
