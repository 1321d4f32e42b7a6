// Package parser provides the pure per-page transformations of the
// crawler: SEO metadata extraction, main-content cleaning, internal
// link discovery and sitemap XML decoding.
package parser

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// nonContentPattern matches class and id values of elements that are
// almost never part of the main content (navigation, chrome, ads).
var nonContentPattern = regexp.MustCompile(
	`(?i)(nav|navigation|menu|header|footer|sidebar|comment|widget|ad|banner|cookie|social|share|related|popular|tag|category|subscribe|newsletter)`)

// skipTags are element subtrees excluded from content extraction.
var skipTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "svg": true,
	"iframe": true, "nav": true, "header": true, "footer": true,
	"aside": true,
}

// Alternate is one hreflang alternate of a page.
type Alternate struct {
	Href     string
	Hreflang string
}

// ExtractResult holds everything extracted from one HTML document.
type ExtractResult struct {
	Title       string
	MetaDesc    string
	MetaRobots  string
	Canonical   string
	H1          string
	H1Count     int
	OpenGraph   map[string]string
	TwitterCard map[string]string
	Hreflang    []Alternate

	Content   string
	WordCount int
	Truncated bool

	// InternalLinks are same-domain anchors in document order, resolved
	// to absolute form with fragments stripped. Duplicates are kept; the
	// frontier deduplicates on enqueue.
	InternalLinks []string
}

// Extractor extracts metadata, cleaned content and internal links from
// page HTML. It is a pure transformation: one instance per page,
// resolving relative URLs against that page's URL.
type Extractor struct {
	baseURL      *url.URL
	baseDomain   string
	contentLimit int
}

// NewExtractor creates an extractor for the page at pageURL.
// contentLimit caps the extracted content length in characters;
// zero means unlimited.
func NewExtractor(pageURL string, contentLimit int) (*Extractor, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL: %w", err)
	}
	return &Extractor{
		baseURL:      u,
		baseDomain:   strings.TrimPrefix(strings.ToLower(u.Host), "www."),
		contentLimit: contentLimit,
	}, nil
}

// Extract parses the HTML document and returns metadata, content and
// internal links.
func (e *Extractor) Extract(body []byte) (*ExtractResult, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	result := &ExtractResult{
		OpenGraph:     map[string]string{},
		TwitterCard:   map[string]string{},
		InternalLinks: []string{},
	}

	e.traverse(doc, result)
	e.extractContent(doc, result)

	return result, nil
}

// traverse walks the whole tree collecting metadata and links.
func (e *Extractor) traverse(n *html.Node, result *ExtractResult) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "title":
			if result.Title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				result.Title = strings.TrimSpace(n.FirstChild.Data)
			}
		case "meta":
			e.parseMeta(n, result)
		case "link":
			e.parseLinkTag(n, result)
		case "h1":
			result.H1Count++
			if result.H1 == "" {
				result.H1 = collapseSpace(nodeText(n))
			}
		case "a":
			e.parseAnchor(n, result)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		e.traverse(c, result)
	}
}

func (e *Extractor) parseMeta(n *html.Node, result *ExtractResult) {
	var name, property, content string
	for _, attr := range n.Attr {
		switch attr.Key {
		case "name":
			name = strings.ToLower(attr.Val)
		case "property":
			property = strings.ToLower(attr.Val)
		case "content":
			content = attr.Val
		}
	}
	if content == "" {
		return
	}
	content = strings.TrimSpace(content)

	switch name {
	case "description":
		result.MetaDesc = content
	case "robots":
		result.MetaRobots = content
	}

	if strings.HasPrefix(property, "og:") {
		result.OpenGraph[strings.TrimPrefix(property, "og:")] = content
	}
	// Twitter Card tags appear with either name or property attributes.
	for _, key := range []string{name, property} {
		if strings.HasPrefix(key, "twitter:") {
			result.TwitterCard[strings.TrimPrefix(key, "twitter:")] = content
			break
		}
	}
}

func (e *Extractor) parseLinkTag(n *html.Node, result *ExtractResult) {
	var rel, href, hreflang string
	for _, attr := range n.Attr {
		switch attr.Key {
		case "rel":
			rel = strings.ToLower(attr.Val)
		case "href":
			href = strings.TrimSpace(attr.Val)
		case "hreflang":
			hreflang = strings.TrimSpace(attr.Val)
		}
	}
	if href == "" {
		return
	}

	switch rel {
	case "canonical":
		if abs, err := e.resolve(href); err == nil {
			result.Canonical = abs
		}
	case "alternate":
		if hreflang != "" {
			result.Hreflang = append(result.Hreflang, Alternate{Href: href, Hreflang: hreflang})
		}
	}
}

func (e *Extractor) parseAnchor(n *html.Node, result *ExtractResult) {
	var href string
	for _, attr := range n.Attr {
		if attr.Key == "href" {
			href = strings.TrimSpace(attr.Val)
			break
		}
	}
	if href == "" || strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") {
		return
	}

	abs, err := e.resolve(href)
	if err != nil {
		return
	}

	u, err := url.Parse(abs)
	if err != nil {
		return
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return
	}
	if strings.TrimPrefix(strings.ToLower(u.Host), "www.") != e.baseDomain {
		return
	}

	u.Fragment = ""
	result.InternalLinks = append(result.InternalLinks, u.String())
}

// resolve converts a possibly relative href to absolute form.
func (e *Extractor) resolve(href string) (string, error) {
	u, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return e.baseURL.ResolveReference(u).String(), nil
}

// extractContent collects the cleaned main text of the page. Non-content
// subtrees (scripts, chrome, elements with navigation-flavored class or
// id values) are dropped, then text is gathered from the most specific
// content root available: main, article, #content, or body.
func (e *Extractor) extractContent(doc *html.Node, result *ExtractResult) {
	root := findContentRoot(doc)
	if root == nil {
		root = doc
	}

	var b strings.Builder
	collectText(root, &b)
	content := collapseSpace(b.String())

	runes := []rune(content)
	if e.contentLimit > 0 && len(runes) > e.contentLimit {
		content = string(runes[:e.contentLimit])
	}

	result.Content = content
	result.WordCount = len(strings.Fields(content))
	result.Truncated = e.contentLimit > 0 && len([]rune(content)) >= e.contentLimit
}

// findContentRoot prefers an explicit content container over the body.
func findContentRoot(doc *html.Node) *html.Node {
	body := findElement(doc, func(n *html.Node) bool { return n.Data == "body" })
	if body == nil {
		return doc
	}
	if main := findElement(body, func(n *html.Node) bool {
		return n.Data == "main" || n.Data == "article"
	}); main != nil {
		return main
	}
	if div := findElement(body, func(n *html.Node) bool {
		return n.Data == "div" && attrValue(n, "id") == "content"
	}); div != nil {
		return div
	}
	return body
}

func findElement(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, match); found != nil {
			return found
		}
	}
	return nil
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	}
	if n.Type == html.ElementNode {
		if skipTags[n.Data] {
			return
		}
		if isNonContent(attrValue(n, "class")) || isNonContent(attrValue(n, "id")) {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

func isNonContent(attr string) bool {
	return attr != "" && nonContentPattern.MatchString(attr)
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

var spaceRun = regexp.MustCompile(`\s+`)

func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}
