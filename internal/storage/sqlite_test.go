package storage

import (
	"path/filepath"
	"testing"

	"github.com/seokumo/seokumo/internal/crawler"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("Failed to open storage: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSavePageRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	rec := &crawler.PageRecord{
		URL:        "https://example.com/",
		StatusCode: 200,
		Title:      "Home",
		Metadata: &crawler.PageMetadata{
			Title:           crawler.TextField{Content: "Home", Length: 4},
			MetaDescription: crawler.TextField{Content: "A homepage", Length: 10},
			Canonical:       "https://example.com/",
			H1:              crawler.Heading{Content: "Welcome", Count: 1},
		},
		Content:            &crawler.PageContent{Content: "Welcome", ContentLength: 7, WordCount: 1},
		InternalLinksCount: 2,
		InternalLinks:      []string{"https://example.com/a", "https://example.com/b"},
	}
	if err := s.SavePage(rec); err != nil {
		t.Fatalf("SavePage failed: %v", err)
	}

	var title, h1 string
	var status, wordCount int
	err := s.db.QueryRow(`
		SELECT title, h1, status_code, word_count FROM pages WHERE url = ?
	`, rec.URL).Scan(&title, &h1, &status, &wordCount)
	if err != nil {
		t.Fatalf("Failed to read page back: %v", err)
	}
	if title != "Home" || h1 != "Welcome" || status != 200 || wordCount != 1 {
		t.Errorf("Unexpected row: title=%q h1=%q status=%d words=%d", title, h1, status, wordCount)
	}
}

func TestSavePageReplacesExisting(t *testing.T) {
	s := newTestStorage(t)

	first := &crawler.PageRecord{URL: "https://example.com/", StatusCode: 500, Error: "server error"}
	if err := s.SavePage(first); err != nil {
		t.Fatalf("SavePage failed: %v", err)
	}
	second := &crawler.PageRecord{URL: "https://example.com/", StatusCode: 200, Title: "Recovered"}
	if err := s.SavePage(second); err != nil {
		t.Fatalf("SavePage failed: %v", err)
	}

	var count, status int
	if err := s.db.QueryRow(`SELECT COUNT(*), MAX(status_code) FROM pages`).Scan(&count, &status); err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if count != 1 || status != 200 {
		t.Errorf("Expected one replaced row with status 200, got count=%d status=%d", count, status)
	}
}

func TestSavePageWithoutMetadata(t *testing.T) {
	s := newTestStorage(t)

	rec := &crawler.PageRecord{
		URL:        "https://example.com/missing",
		StatusCode: 404,
		Error:      "failed to fetch content (status code: 404)",
	}
	if err := s.SavePage(rec); err != nil {
		t.Fatalf("SavePage failed for a failed page: %v", err)
	}

	var errText string
	if err := s.db.QueryRow(`SELECT error FROM pages WHERE url = ?`, rec.URL).Scan(&errText); err != nil {
		t.Fatalf("Failed to read page back: %v", err)
	}
	if errText == "" {
		t.Error("Expected error text to be stored")
	}
}

func TestSaveLinksDedup(t *testing.T) {
	s := newTestStorage(t)

	links := []string{"https://example.com/a", "https://example.com/b"}
	if err := s.SaveLinks("https://example.com/", links); err != nil {
		t.Fatalf("SaveLinks failed: %v", err)
	}
	// Saving the same edges again is a no-op.
	if err := s.SaveLinks("https://example.com/", links); err != nil {
		t.Fatalf("Repeated SaveLinks failed: %v", err)
	}
	if err := s.SaveLinks("https://example.com/a", nil); err != nil {
		t.Fatalf("SaveLinks with no targets failed: %v", err)
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM links`).Scan(&count); err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 deduplicated edges, got %d", count)
	}
}

func TestMetaRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	if v, err := s.GetMeta("absent"); err != nil || v != "" {
		t.Errorf("Expected empty value for an absent key, got %q err=%v", v, err)
	}

	if err := s.SetMeta("start_url", "https://example.com/"); err != nil {
		t.Fatalf("SetMeta failed: %v", err)
	}
	if err := s.SetMeta("start_url", "https://example.org/"); err != nil {
		t.Fatalf("SetMeta overwrite failed: %v", err)
	}

	v, err := s.GetMeta("start_url")
	if err != nil {
		t.Fatalf("GetMeta failed: %v", err)
	}
	if v != "https://example.org/" {
		t.Errorf("Expected overwritten value, got %q", v)
	}
}
