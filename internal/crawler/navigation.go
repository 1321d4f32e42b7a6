package crawler

// NavDetector identifies global navigation links: targets that appear
// on at least a threshold fraction of the crawled pages. Those links
// say little about content relationships and can be filtered out of the
// link graph.
type NavDetector struct {
	threshold   float64
	occurrences map[string]map[string]struct{} // link -> set of pages carrying it
	totalPages  int
	globalLinks map[string]struct{}
}

// NewNavDetector creates a detector. threshold is the fraction of pages
// (0.0-1.0) a link must appear on to count as navigation.
func NewNavDetector(threshold float64) *NavDetector {
	return &NavDetector{
		threshold:   threshold,
		occurrences: make(map[string]map[string]struct{}),
		globalLinks: make(map[string]struct{}),
	}
}

// AddPageLinks registers the links found on one page.
func (d *NavDetector) AddPageLinks(pageURL string, links []string) {
	d.totalPages++
	for _, link := range links {
		pages, ok := d.occurrences[link]
		if !ok {
			pages = make(map[string]struct{})
			d.occurrences[link] = pages
		}
		pages[pageURL] = struct{}{}
	}
}

// DetectGlobalLinks classifies links against the threshold and returns
// how many were flagged. Must be called after all pages are registered.
func (d *NavDetector) DetectGlobalLinks() int {
	if d.totalPages == 0 {
		return 0
	}
	cutoff := float64(d.totalPages) * d.threshold
	for link, pages := range d.occurrences {
		if float64(len(pages)) >= cutoff {
			d.globalLinks[link] = struct{}{}
		}
	}
	return len(d.globalLinks)
}

// IsGlobalLink reports whether url was classified as navigation.
func (d *NavDetector) IsGlobalLink(url string) bool {
	_, ok := d.globalLinks[url]
	return ok
}

// FilterGlobalLinks returns links with navigation targets removed.
func (d *NavDetector) FilterGlobalLinks(links []string) []string {
	filtered := make([]string, 0, len(links))
	for _, link := range links {
		if !d.IsGlobalLink(link) {
			filtered = append(filtered, link)
		}
	}
	return filtered
}

// Threshold returns the configured detection threshold.
func (d *NavDetector) Threshold() float64 {
	return d.threshold
}
