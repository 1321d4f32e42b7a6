package crawler

import "testing"

func TestNavDetectorThreshold(t *testing.T) {
	d := NewNavDetector(0.8)

	// /nav appears on 4 of 5 pages (80%), /once on only 1.
	d.AddPageLinks("p1", []string{"/nav", "/once"})
	d.AddPageLinks("p2", []string{"/nav"})
	d.AddPageLinks("p3", []string{"/nav"})
	d.AddPageLinks("p4", []string{"/nav"})
	d.AddPageLinks("p5", []string{"/other"})

	if got := d.DetectGlobalLinks(); got != 1 {
		t.Fatalf("Expected 1 global link, got %d", got)
	}
	if !d.IsGlobalLink("/nav") {
		t.Error("Expected /nav at exactly the threshold to be global")
	}
	if d.IsGlobalLink("/once") || d.IsGlobalLink("/other") {
		t.Error("Expected rare links to stay non-global")
	}
}

func TestNavDetectorBelowThreshold(t *testing.T) {
	d := NewNavDetector(0.8)

	d.AddPageLinks("p1", []string{"/semi"})
	d.AddPageLinks("p2", []string{"/semi"})
	d.AddPageLinks("p3", []string{"/semi"})
	d.AddPageLinks("p4", nil)
	d.AddPageLinks("p5", nil)

	// 3 of 5 pages is 60%, below the 80% cutoff.
	if got := d.DetectGlobalLinks(); got != 0 {
		t.Errorf("Expected no global links, got %d", got)
	}
}

func TestNavDetectorDuplicatesOnOnePage(t *testing.T) {
	d := NewNavDetector(0.5)

	// The same link repeated within one page counts that page once.
	d.AddPageLinks("p1", []string{"/x", "/x", "/x"})
	d.AddPageLinks("p2", nil)
	d.AddPageLinks("p3", nil)

	if got := d.DetectGlobalLinks(); got != 0 {
		t.Errorf("Expected repeats on one page not to inflate the count, got %d global", got)
	}
}

func TestNavDetectorNoPages(t *testing.T) {
	d := NewNavDetector(0.8)
	if got := d.DetectGlobalLinks(); got != 0 {
		t.Errorf("Expected 0 global links on an empty crawl, got %d", got)
	}
}

func TestFilterGlobalLinks(t *testing.T) {
	d := NewNavDetector(0.5)
	d.AddPageLinks("p1", []string{"/nav", "/a"})
	d.AddPageLinks("p2", []string{"/nav", "/b"})
	d.DetectGlobalLinks()

	filtered := d.FilterGlobalLinks([]string{"/nav", "/a", "/b"})
	if len(filtered) != 2 {
		t.Fatalf("Expected 2 links after filtering, got %d", len(filtered))
	}
	for _, link := range filtered {
		if link == "/nav" {
			t.Error("Expected /nav to be filtered out")
		}
	}
}
