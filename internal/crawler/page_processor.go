package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/seokumo/seokumo/internal/parser"
)

// DefaultPageProcessor fetches a page and runs extraction, producing
// one PageRecord per attempted URL.
type DefaultPageProcessor struct {
	fetcher      Fetcher
	contentLimit int
}

// NewPageProcessor creates a page processor. contentLimit caps extracted
// content length in characters (0 = unlimited).
func NewPageProcessor(fetcher Fetcher, contentLimit int) PageProcessor {
	return &DefaultPageProcessor{fetcher: fetcher, contentLimit: contentLimit}
}

// Process fetches url and extracts metadata, content and internal links.
// A transport failure returns both a record carrying the error marker and
// the error itself so the crawler can apply its first-fetch fatality rule;
// every other failure mode (non-2xx status, non-HTML body, extraction
// error) is captured in the record alone.
func (p *DefaultPageProcessor) Process(ctx context.Context, url string) (*PageRecord, error) {
	rec := &PageRecord{URL: url, InternalLinks: []string{}}

	resp, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		rec.Error = fmt.Sprintf("fetch failed: %v", err)
		return rec, err
	}

	rec.StatusCode = resp.StatusCode
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rec.Error = fmt.Sprintf("failed to fetch content (status code: %d)", resp.StatusCode)
		return rec, nil
	}

	if !isHTML(resp.ContentType) {
		slog.Debug("Skipping extraction for non-HTML response",
			"url", url, "content_type", resp.ContentType)
		return rec, nil
	}

	// Resolve links against the final URL so redirected pages yield
	// correct absolute targets.
	extractor, err := parser.NewExtractor(resp.FinalURL, p.contentLimit)
	if err != nil {
		rec.Error = fmt.Sprintf("extraction failed: %v", err)
		return rec, nil
	}

	result, err := extractor.Extract(resp.Body)
	if err != nil {
		rec.Error = fmt.Sprintf("extraction failed: %v", err)
		return rec, nil
	}

	rec.Title = result.Title
	rec.Metadata = &PageMetadata{
		Title:           TextField{Content: result.Title, Length: len(result.Title)},
		MetaDescription: TextField{Content: result.MetaDesc, Length: len(result.MetaDesc)},
		Canonical:       result.Canonical,
		H1:              Heading{Content: result.H1, Count: result.H1Count},
		OpenGraph:       result.OpenGraph,
		TwitterCard:     result.TwitterCard,
		Robots:          result.MetaRobots,
	}
	for _, alt := range result.Hreflang {
		rec.Metadata.Hreflang = append(rec.Metadata.Hreflang,
			HreflangLink{Href: alt.Href, Hreflang: alt.Hreflang})
	}
	rec.Content = &PageContent{
		Content:       result.Content,
		ContentLength: len([]rune(result.Content)),
		WordCount:     result.WordCount,
		Truncated:     result.Truncated,
	}
	rec.InternalLinks = result.InternalLinks
	rec.InternalLinksCount = len(result.InternalLinks)

	return rec, nil
}

func isHTML(contentType string) bool {
	return strings.HasPrefix(contentType, "text/html") ||
		strings.HasPrefix(contentType, "application/xhtml+xml")
}
