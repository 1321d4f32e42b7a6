package crawler

import "testing"

func TestFrontierDedup(t *testing.T) {
	f, err := NewFrontier("https://example.com/")
	if err != nil {
		t.Fatalf("Failed to create frontier: %v", err)
	}

	// All of these normalize to the same visit target.
	variants := []string{
		"https://example.com/page",
		"https://example.com/page#section",
		"https://EXAMPLE.COM/page",
		"HTTPS://example.com/page#other",
	}
	for i, v := range variants {
		queued := f.Enqueue(v)
		if i == 0 && !queued {
			t.Errorf("Expected first variant to be queued")
		}
		if i > 0 && queued {
			t.Errorf("Expected variant %q to be deduplicated", v)
		}
	}

	url, ok := f.Dequeue()
	if !ok {
		t.Fatal("Expected one queued URL")
	}
	if url != "https://example.com/page" {
		t.Errorf("Expected normalized URL, got %q", url)
	}
	if _, ok := f.Dequeue(); ok {
		t.Error("Expected queue to be empty after dedup")
	}

	// A dequeued URL stays seen and is never re-admitted.
	if f.Enqueue("https://example.com/page") {
		t.Error("Expected visited URL to stay deduplicated")
	}
	if !f.Seen("https://example.com/page#fragment") {
		t.Error("Expected fragment variant to be reported as seen")
	}
}

func TestFrontierDomainScoping(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{"same domain", "https://example.com/about", true},
		{"same domain with www", "https://www.example.com/about", true},
		{"subdomain", "https://blog.example.com/post", false},
		{"external domain", "https://other.com/page", false},
		{"non-http scheme", "ftp://example.com/file", false},
		{"relative URL", "/about", false},
		{"unparseable", "http://[::1]:namedport/", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFrontier("https://example.com/")
			if err != nil {
				t.Fatalf("Failed to create frontier: %v", err)
			}
			if got := f.Enqueue(tt.url); got != tt.expected {
				t.Errorf("Enqueue(%q) = %v, expected %v", tt.url, got, tt.expected)
			}
		})
	}
}

func TestFrontierFIFOOrder(t *testing.T) {
	f, err := NewFrontier("https://example.com/")
	if err != nil {
		t.Fatalf("Failed to create frontier: %v", err)
	}

	urls := []string{
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/c",
	}
	for _, u := range urls {
		if !f.Enqueue(u) {
			t.Fatalf("Failed to enqueue %q", u)
		}
	}

	if f.Pending() != 3 {
		t.Errorf("Expected 3 pending URLs, got %d", f.Pending())
	}

	for i, want := range urls {
		got, ok := f.Dequeue()
		if !ok {
			t.Fatalf("Dequeue %d: queue unexpectedly empty", i)
		}
		if got != want {
			t.Errorf("Dequeue %d: expected %q, got %q", i, want, got)
		}
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"lowercases scheme and host", "HTTPS://Example.COM/Path", "https://example.com/Path", false},
		{"strips fragment", "https://example.com/page#top", "https://example.com/page", false},
		{"empty path becomes slash", "https://example.com", "https://example.com/", false},
		{"keeps query", "https://example.com/p?x=1", "https://example.com/p?x=1", false},
		{"keeps trailing slash", "https://example.com/p/", "https://example.com/p/", false},
		{"rejects mailto", "mailto:someone@example.com", "", true},
		{"rejects relative", "/about", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeURL(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NormalizeURL(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeURL(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, expected %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFrontierInvalidStartURL(t *testing.T) {
	for _, start := range []string{"not-a-url", "ftp://example.com/", "://bad"} {
		if _, err := NewFrontier(start); err == nil {
			t.Errorf("NewFrontier(%q) expected error", start)
		}
	}
}
