package crawler

import "sort"

// LinkStructure is the serialized internal link graph of a crawl.
type LinkStructure struct {
	OutgoingLinks map[string][]string `json:"outgoing_links"`
	Backlinks     map[string][]string `json:"backlinks"`
	LinkStats     LinkStats           `json:"link_stats"`
}

// LinkStats summarizes the link graph.
type LinkStats struct {
	TotalLinksMapped       int              `json:"total_links_mapped"`
	PagesWithOutgoingLinks int              `json:"pages_with_outgoing_links"`
	PagesWithBacklinks     int              `json:"pages_with_backlinks"`
	MostLinkedPages        []BacklinkedPage `json:"most_linked_pages"`
	MostLinkingPages       []LinkingPage    `json:"most_linking_pages"`
}

// BacklinkedPage ranks a page by the number of pages linking to it.
type BacklinkedPage struct {
	URL           string `json:"url"`
	BacklinkCount int    `json:"backlink_count"`
}

// LinkingPage ranks a page by the number of pages it links to.
type LinkingPage struct {
	URL               string `json:"url"`
	OutgoingLinkCount int    `json:"outgoing_link_count"`
}

// topPages caps the ranked lists in LinkStats.
const topPages = 10

// LinkMapper records the internal link graph between crawled pages:
// source-to-target edges in both directions, deduplicated per pair.
type LinkMapper struct {
	outgoing    map[string][]string
	backlinks   map[string][]string
	edges       map[[2]string]struct{}
	totalMapped int
	nav         *NavDetector
}

// NewLinkMapper creates a link mapper. The nav detector, when non-nil,
// also receives every page's links for global-link classification.
func NewLinkMapper(nav *NavDetector) *LinkMapper {
	return &LinkMapper{
		outgoing:  make(map[string][]string),
		backlinks: make(map[string][]string),
		edges:     make(map[[2]string]struct{}),
		nav:       nav,
	}
}

// AddPageLinks records all outgoing links of one page. Repeated edges
// are counted once.
func (m *LinkMapper) AddPageLinks(sourceURL string, targetURLs []string) {
	for _, target := range targetURLs {
		edge := [2]string{sourceURL, target}
		if _, ok := m.edges[edge]; ok {
			continue
		}
		m.edges[edge] = struct{}{}
		m.outgoing[sourceURL] = append(m.outgoing[sourceURL], target)
		m.backlinks[target] = append(m.backlinks[target], sourceURL)
		m.totalMapped++
	}
	if m.nav != nil {
		m.nav.AddPageLinks(sourceURL, targetURLs)
	}
}

// OutgoingLinks returns the deduplicated targets of url, optionally
// with navigation links filtered out.
func (m *LinkMapper) OutgoingLinks(url string, filterGlobal bool) []string {
	links := m.outgoing[url]
	if filterGlobal && m.nav != nil {
		return m.nav.FilterGlobalLinks(links)
	}
	return links
}

// BacklinkCount returns how many distinct pages link to url. With
// filterGlobal set, a url classified as navigation counts zero: every
// edge into it is a navigation edge.
func (m *LinkMapper) BacklinkCount(url string, filterGlobal bool) int {
	if filterGlobal && m.nav != nil && m.nav.IsGlobalLink(url) {
		return 0
	}
	return len(m.backlinks[url])
}

// Structure builds the serializable link graph with summary stats.
func (m *LinkMapper) Structure() *LinkStructure {
	stats := LinkStats{
		TotalLinksMapped:       m.totalMapped,
		PagesWithOutgoingLinks: len(m.outgoing),
		PagesWithBacklinks:     len(m.backlinks),
		MostLinkedPages:        []BacklinkedPage{},
		MostLinkingPages:       []LinkingPage{},
	}

	for _, url := range rankByCount(m.backlinks) {
		stats.MostLinkedPages = append(stats.MostLinkedPages,
			BacklinkedPage{URL: url, BacklinkCount: len(m.backlinks[url])})
	}
	for _, url := range rankByCount(m.outgoing) {
		stats.MostLinkingPages = append(stats.MostLinkingPages,
			LinkingPage{URL: url, OutgoingLinkCount: len(m.outgoing[url])})
	}

	return &LinkStructure{
		OutgoingLinks: m.outgoing,
		Backlinks:     m.backlinks,
		LinkStats:     stats,
	}
}

// rankByCount returns up to topPages keys ordered by descending list
// length, with URL order as a deterministic tie-break.
func rankByCount(links map[string][]string) []string {
	urls := make([]string, 0, len(links))
	for url := range links {
		urls = append(urls, url)
	}
	sort.Slice(urls, func(i, j int) bool {
		if len(links[urls[i]]) != len(links[urls[j]]) {
			return len(links[urls[i]]) > len(links[urls[j]])
		}
		return urls[i] < urls[j]
	})
	if len(urls) > topPages {
		urls = urls[:topPages]
	}
	return urls
}
