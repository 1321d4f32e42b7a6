package parser

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// sitemapDoc covers both sitemap document shapes: a urlset listing page
// URLs and a sitemapindex referencing further sitemap files.
type sitemapDoc struct {
	XMLName  xml.Name
	URLs     []sitemapLoc `xml:"url"`
	Sitemaps []sitemapLoc `xml:"sitemap"`
}

type sitemapLoc struct {
	Loc string `xml:"loc"`
}

// ParseSitemap decodes sitemap XML into page URLs and, for sitemap
// indexes, the URLs of the nested sitemap files. Malformed XML and
// unexpected root elements are errors; the caller treats them as a
// signal to fall back to link discovery.
func ParseSitemap(data []byte) (urls []string, nestedSitemaps []string, err error) {
	var doc sitemapDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse sitemap XML: %w", err)
	}

	switch doc.XMLName.Local {
	case "urlset":
		for _, entry := range doc.URLs {
			if loc := strings.TrimSpace(entry.Loc); loc != "" {
				urls = append(urls, loc)
			}
		}
	case "sitemapindex":
		for _, entry := range doc.Sitemaps {
			if loc := strings.TrimSpace(entry.Loc); loc != "" {
				nestedSitemaps = append(nestedSitemaps, loc)
			}
		}
	default:
		return nil, nil, fmt.Errorf("unexpected sitemap root element %q", doc.XMLName.Local)
	}

	return urls, nestedSitemaps, nil
}
