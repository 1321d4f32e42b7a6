package crawler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/seokumo/seokumo/internal/parser"
)

// maxSitemapDepth bounds recursive sitemap-index expansion so that
// cyclic or adversarial index files cannot grow the seed list forever.
const maxSitemapDepth = 3

// SitemapResolver discovers seed URLs from {root}/sitemap.xml, expanding
// sitemap indexes transitively. Any fetch or parse failure makes the
// resolver report the sitemap as unused; the crawler then falls back to
// link discovery. Sitemap absence is never an error.
type SitemapResolver struct {
	fetcher Fetcher
	limiter *RateLimiter
}

// NewSitemapResolver creates a resolver sharing the crawl's fetcher and
// politeness throttle.
func NewSitemapResolver(fetcher Fetcher, limiter *RateLimiter) *SitemapResolver {
	return &SitemapResolver{fetcher: fetcher, limiter: limiter}
}

// Resolve fetches rootURL/sitemap.xml and returns the page URLs it
// lists. used is true only when at least one URL was obtained. The
// returned URLs are not deduplicated; the frontier handles that on
// enqueue.
func (r *SitemapResolver) Resolve(ctx context.Context, rootURL string) (urls []string, used bool) {
	sitemapURL := rootURL + "/sitemap.xml"
	slog.Info("Checking for sitemap", "url", sitemapURL)

	urls = r.resolve(ctx, sitemapURL, 0)
	if len(urls) == 0 {
		slog.Info("No usable sitemap found, falling back to link discovery")
		return nil, false
	}

	slog.Info("Seeded from sitemap", "url_count", len(urls))
	return urls, true
}

func (r *SitemapResolver) resolve(ctx context.Context, sitemapURL string, depth int) []string {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil
	}

	resp, err := r.fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		slog.Debug("Sitemap fetch failed", "url", sitemapURL, "error", err)
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		slog.Debug("Sitemap not available", "url", sitemapURL, "status", resp.StatusCode)
		return nil
	}

	urls, nested, err := parser.ParseSitemap(resp.Body)
	if err != nil {
		slog.Warn("Sitemap parse failed", "url", sitemapURL, "error", err)
		return nil
	}

	if len(nested) > 0 {
		if depth+1 >= maxSitemapDepth {
			slog.Warn("Sitemap index nesting too deep, skipping nested sitemaps",
				"url", sitemapURL, "depth", depth)
		} else {
			slog.Info("Expanding sitemap index", "url", sitemapURL, "sitemaps", len(nested))
			for _, nestedURL := range nested {
				urls = append(urls, r.resolve(ctx, nestedURL, depth+1)...)
			}
		}
	}

	return urls
}
