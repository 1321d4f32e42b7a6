// Package crawler implements the core of the bounded single-site SEO
// crawl: the frontier, sitemap-first seeding, the sequential crawl loop
// with its politeness throttle and page budget, and aggregation of the
// final crawl report.
package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/seokumo/seokumo/internal/config"
)

// Crawler orchestrates one crawl run: Seeding, then Crawling page by
// page until the frontier drains or the page budget is spent, then Done.
// Per-page failures become data in the report; only an invalid start URL
// or a transport failure on the very first fetch abort the run.
type Crawler struct {
	cfg        *config.CrawlConfig
	httpClient *HTTPClient
	processor  PageProcessor
	frontier   *Frontier
	limiter    *RateLimiter
	sitemaps   *SitemapResolver
	agg        *ResultAggregator
	linkMap    *LinkMapper
	nav        *NavDetector
	storage    Storage

	startURL string // normalized form of the configured start URL
	rootURL  string // scheme://host, used to locate sitemap.xml

	stats    CrawlStats
	attempts int
}

// New creates a crawler for one run. storage may be nil to disable the
// SQLite archive. An unparseable or non-http(s) start URL is a fatal
// construction error.
func New(cfg *config.CrawlConfig, storage Storage) (*Crawler, error) {
	startURL, err := NormalizeURL(cfg.StartURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStartURL, err)
	}

	frontier, err := NewFrontier(startURL)
	if err != nil {
		return nil, err
	}

	u, err := url.Parse(startURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStartURL, err)
	}

	httpClient := NewHTTPClient(cfg.UserAgent, cfg.RequestTimeout)
	limiter := NewRateLimiter(cfg.Delay())
	nav := NewNavDetector(cfg.NavThreshold)

	return &Crawler{
		cfg:        cfg,
		httpClient: httpClient,
		processor:  NewPageProcessor(httpClient, cfg.ContentLimit),
		frontier:   frontier,
		limiter:    limiter,
		sitemaps:   NewSitemapResolver(httpClient, limiter),
		agg:        NewResultAggregator(cfg.StartURL, u.Host, cfg.MaxPages),
		linkMap:    NewLinkMapper(nav),
		nav:        nav,
		storage:    storage,
		startURL:   startURL,
		rootURL:    u.Scheme + "://" + u.Host,
	}, nil
}

// Run executes the crawl and returns the finalized report. On a fatal
// failure no report is returned and no partial output should be written.
func (c *Crawler) Run(ctx context.Context) (*CrawlReport, error) {
	c.stats.StartTime = time.Now()

	c.seed(ctx)
	if err := c.crawl(ctx); err != nil {
		return nil, err
	}
	return c.finish(), nil
}

// Close releases the crawler's network resources.
func (c *Crawler) Close() {
	c.httpClient.Close()
}

// GetStats returns current crawling statistics.
func (c *Crawler) GetStats() CrawlStats {
	stats := c.stats
	stats.Duration = time.Since(stats.StartTime)
	return stats
}

// seed populates the frontier. The start URL always enters the queue
// first so it is visited first; sitemap URLs, when discovery is enabled
// and yields anything, follow in sitemap order. Sitemap failure is not
// an error, only a fall-back to link discovery.
func (c *Crawler) seed(ctx context.Context) {
	c.frontier.Enqueue(c.startURL)

	if c.cfg.UseSitemap {
		urls, used := c.sitemaps.Resolve(ctx, c.rootURL)
		for _, u := range urls {
			c.frontier.Enqueue(u)
		}
		c.agg.SetSitemapUsed(used)
	}

	slog.Info("Seeding complete",
		"queued", c.frontier.Pending(),
		"sitemap_enabled", c.cfg.UseSitemap)
}

// crawl is the Crawling state: pop, throttle, fetch, extract, enqueue
// discovered links, append the record. The loop ends when the frontier
// is empty or the page budget is reached, whichever comes first; URLs
// still queued at the cutoff are dropped.
func (c *Crawler) crawl(ctx context.Context) error {
	for c.agg.Len() < c.cfg.MaxPages {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		pageURL, ok := c.frontier.Dequeue()
		if !ok {
			break
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		slog.Info("Crawling page",
			"page", c.agg.Len()+1,
			"max_pages", c.cfg.MaxPages,
			"url", pageURL)

		c.attempts++
		rec, fetchErr := c.processor.Process(ctx, pageURL)
		if fetchErr != nil {
			// The very first fetch failing means nothing can be
			// reported at all; that aborts the run.
			if c.attempts == 1 {
				return fmt.Errorf("%w: %v", ErrFirstFetchFailed, fetchErr)
			}
			slog.Warn("Fetch failed, continuing", "url", pageURL, "error", fetchErr)
			c.stats.ErrorCount++
		} else if rec.Error != "" {
			slog.Warn("Page not crawled cleanly",
				"url", pageURL, "status", rec.StatusCode, "error", rec.Error)
			c.stats.ErrorCount++
		}

		if rec.Metadata != nil {
			c.linkMap.AddPageLinks(pageURL, rec.InternalLinks)
			rec.BacklinksCount = c.linkMap.BacklinkCount(pageURL, false)
		}
		for _, link := range rec.InternalLinks {
			c.frontier.Enqueue(link)
		}

		c.agg.Append(rec)
		c.stats.PagesCrawled++
		c.persist(rec)
	}
	return nil
}

// finish is the Done state: classify navigation links, annotate the
// page records with link-graph data, and finalize the report.
func (c *Crawler) finish() *CrawlReport {
	detected := c.nav.DetectGlobalLinks()

	report := c.agg.Finalize()
	report.NavThreshold = c.nav.Threshold()
	report.NavLinksDetected = detected

	for _, rec := range report.Pages {
		if rec.Metadata == nil {
			continue
		}
		rec.FilteredInternalLinks = c.linkMap.OutgoingLinks(rec.URL, true)
		rec.FilteredInternalLinksCount = len(rec.FilteredInternalLinks)
		rec.FilteredBacklinksCount = c.linkMap.BacklinkCount(rec.URL, true)

		var navLinks []string
		for _, link := range rec.InternalLinks {
			if c.nav.IsGlobalLink(link) {
				navLinks = append(navLinks, link)
			}
		}
		rec.NavLinks = navLinks
		rec.NavLinksCount = len(navLinks)
	}

	if c.cfg.LinkStructure {
		report.LinkStructure = c.linkMap.Structure()
	}

	c.stats.Duration = time.Since(c.stats.StartTime)
	slog.Info("Crawl complete",
		"pages_crawled", report.PagesCrawled,
		"errors", c.stats.ErrorCount,
		"nav_links_detected", detected,
		"sitemap_used", report.SitemapUsed,
		"duration", c.stats.Duration)

	c.persistMeta(report)
	return report
}

func (c *Crawler) persist(rec *PageRecord) {
	if c.storage == nil {
		return
	}
	if err := c.storage.SavePage(rec); err != nil {
		slog.Error("Failed to archive page", "url", rec.URL, "error", err)
	}
	if len(rec.InternalLinks) > 0 {
		if err := c.storage.SaveLinks(rec.URL, rec.InternalLinks); err != nil {
			slog.Error("Failed to archive links", "url", rec.URL, "error", err)
		}
	}
}

func (c *Crawler) persistMeta(report *CrawlReport) {
	if c.storage == nil {
		return
	}
	meta := map[string]string{
		"start_url":     report.StartURL,
		"base_domain":   report.BaseDomain,
		"sitemap_used":  strconv.FormatBool(report.SitemapUsed),
		"pages_crawled": strconv.Itoa(report.PagesCrawled),
		"finished_at":   time.Now().UTC().Format(time.RFC3339),
	}
	for key, value := range meta {
		if err := c.storage.SetMeta(key, value); err != nil {
			slog.Error("Failed to save crawl metadata", "key", key, "error", err)
		}
	}
}
