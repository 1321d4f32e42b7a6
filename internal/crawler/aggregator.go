package crawler

// ResultAggregator collects PageRecords in the exact order the crawler
// appends them (visit order) and produces the final CrawlReport once.
type ResultAggregator struct {
	report    *CrawlReport
	finalized bool
}

// NewResultAggregator creates an aggregator for one run.
func NewResultAggregator(startURL, baseDomain string, maxPages int) *ResultAggregator {
	return &ResultAggregator{
		report: &CrawlReport{
			StartURL:   startURL,
			BaseDomain: baseDomain,
			MaxPages:   maxPages,
			Pages:      []*PageRecord{},
		},
	}
}

// Append adds one page record. Records appended after Finalize are
// dropped; the report is immutable once finalized.
func (a *ResultAggregator) Append(rec *PageRecord) {
	if a.finalized {
		return
	}
	a.report.Pages = append(a.report.Pages, rec)
}

// SetSitemapUsed records which discovery path seeded the frontier.
func (a *ResultAggregator) SetSitemapUsed(used bool) {
	if !a.finalized {
		a.report.SitemapUsed = used
	}
}

// Len returns the number of records appended so far.
func (a *ResultAggregator) Len() int {
	return len(a.report.Pages)
}

// Finalize closes the report and returns it. A report with zero pages
// is a valid outcome. Repeated calls return the same report.
func (a *ResultAggregator) Finalize() *CrawlReport {
	if !a.finalized {
		a.report.PagesCrawled = len(a.report.Pages)
		a.finalized = true
	}
	return a.report
}
