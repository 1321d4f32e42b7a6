package crawler

import "time"

// FrontierEntry is a queued URL tagged with its discovery order.
// The sequence number is monotonically increasing across one run and
// breaks ties between URLs discovered while processing the same page.
type FrontierEntry struct {
	URL string
	Seq int
}

// TextField holds a piece of extracted text together with its length,
// which SEO tooling cares about (title and description length limits).
type TextField struct {
	Content string `json:"content"`
	Length  int    `json:"length"`
}

// Heading holds the first H1 of a page and how many H1 elements were seen.
type Heading struct {
	Content string `json:"content"`
	Count   int    `json:"count"`
}

// HreflangLink is one <link rel="alternate" hreflang=...> entry.
type HreflangLink struct {
	Href     string `json:"href"`
	Hreflang string `json:"hreflang"`
}

// PageMetadata is the SEO-relevant metadata extracted from one page.
type PageMetadata struct {
	Title           TextField         `json:"title"`
	MetaDescription TextField         `json:"meta_description"`
	Canonical       string            `json:"canonical"`
	H1              Heading           `json:"h1"`
	OpenGraph       map[string]string `json:"open_graph"`
	TwitterCard     map[string]string `json:"twitter_card"`
	Robots          string            `json:"robots,omitempty"`
	Hreflang        []HreflangLink    `json:"hreflang,omitempty"`
}

// PageContent is the cleaned main text of a page.
type PageContent struct {
	Content       string `json:"content"`
	ContentLength int    `json:"content_length"`
	WordCount     int    `json:"word_count"`
	Truncated     bool   `json:"truncated"`
}

// PageRecord is the complete result of attempting to crawl one URL.
// Exactly one record is produced per attempted URL; for transport
// failures and non-2xx responses the metadata and content are absent
// and Error carries the reason.
type PageRecord struct {
	URL                string        `json:"url"`
	StatusCode         int           `json:"status_code"`
	Title              string        `json:"title"`
	Metadata           *PageMetadata `json:"metadata,omitempty"`
	Content            *PageContent  `json:"content,omitempty"`
	InternalLinksCount int           `json:"internal_links_count"`
	InternalLinks      []string      `json:"internal_links"`
	Error              string        `json:"error,omitempty"`

	// Link-graph fields filled in after the crawl completes.
	BacklinksCount             int      `json:"backlinks_count,omitempty"`
	NavLinks                   []string `json:"nav_links,omitempty"`
	NavLinksCount              int      `json:"nav_links_count,omitempty"`
	FilteredInternalLinks      []string `json:"filtered_internal_links,omitempty"`
	FilteredInternalLinksCount int      `json:"filtered_internal_links_count,omitempty"`
	FilteredBacklinksCount     int      `json:"filtered_backlinks_count,omitempty"`
}

// CrawlReport is the finalized output of one crawl run. The top-level
// field names are a compatibility boundary with downstream consumers
// and must not change.
type CrawlReport struct {
	StartURL         string         `json:"start_url"`
	BaseDomain       string         `json:"base_domain"`
	SitemapUsed      bool           `json:"sitemap_used"`
	PagesCrawled     int            `json:"pages_crawled"`
	MaxPages         int            `json:"max_pages"`
	NavThreshold     float64        `json:"nav_threshold,omitempty"`
	NavLinksDetected int            `json:"nav_links_detected,omitempty"`
	Pages            []*PageRecord  `json:"pages"`
	LinkStructure    *LinkStructure `json:"link_structure,omitempty"`
}

// CrawlStats tracks run progress for logging.
type CrawlStats struct {
	PagesCrawled int
	ErrorCount   int
	StartTime    time.Time
	Duration     time.Duration
}
