package blogchecker

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>example</title>
  <entry>
    <title>Go on Kubernetes</title>
    <link href="https://example.com/entry/1"/>
    <content type="html">&lt;p&gt;Running Docker images&lt;/p&gt;</content>
  </entry>
  <entry>
    <title>Lunch</title>
    <link href="https://example.com/entry/2"/>
    <content type="html">&lt;p&gt;Ramen again&lt;/p&gt;</content>
  </entry>
</feed>`

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "blogchecker")
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating temp dir: %v\n", err)
		os.Exit(1)
	}
	path := filepath.Join(dir, "techwords.txt")
	if err := os.WriteFile(path, []byte("Go\nDocker\nKubernetes\n"), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "writing word list: %v\n", err)
		os.Exit(1)
	}

	// Set up test environment variables
	os.Setenv("TECHWORDS_PATH", path)
	os.Setenv("FETCH_DELAY", "0s")
	os.Setenv("LOG_LEVEL", "error")

	code := m.Run()

	os.Unsetenv("TECHWORDS_PATH")
	os.Unsetenv("FETCH_DELAY")
	os.Unsetenv("LOG_LEVEL")
	os.RemoveAll(dir)

	os.Exit(code)
}

func TestFilterTechEntries_HealthCheck(t *testing.T) {
	w := httptest.NewRecorder()

	FilterTechEntries(w, httptest.NewRequest("GET", "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if response["status"] != "ok" {
		t.Errorf("Expected status 'ok', got '%v'", response["status"])
	}
}

func TestFilterTechEntries_DiscoveredFeed(t *testing.T) {
	var userAgent string
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/":
			w.Header().Set("Content-Type", "text/html")
			io.WriteString(w, `<html><head><link rel="alternate" type="application/atom+xml" href="/atom.xml"></head></html>`)
		case "/atom.xml":
			w.Header().Set("Content-Type", "application/atom+xml")
			io.WriteString(w, testFeed)
		default:
			http.NotFound(w, r)
		}
	}))
	defer site.Close()

	w := httptest.NewRecorder()
	FilterTechEntries(w, httptest.NewRequest("GET", "/?url="+site.URL+"/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var entries []map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d: %v", len(entries), entries)
	}
	if entries[0]["title"] != "Go on Kubernetes" || entries[0]["url"] != "https://example.com/entry/1" {
		t.Errorf("Unexpected entry: %v", entries[0])
	}
	if userAgent != "BlogCheckerBot/1.0 (@onk)" {
		t.Errorf("Expected bot User-Agent, got %q", userAgent)
	}
}

func TestFilterTechEntries_RedirectedSite(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			http.Redirect(w, r, "/blog", http.StatusMovedPermanently)
		case "/blog":
			http.Redirect(w, r, "/blog/", http.StatusMovedPermanently)
		case "/blog/":
			w.Header().Set("Content-Type", "text/html")
			io.WriteString(w, `<html><head><link rel="alternate" type="application/atom+xml" href="atom.xml"></head></html>`)
		case "/blog/atom.xml":
			w.Header().Set("Content-Type", "application/atom+xml")
			io.WriteString(w, testFeed)
		default:
			http.NotFound(w, r)
		}
	})
	site := httptest.NewServer(mux)
	defer site.Close()

	w := httptest.NewRecorder()
	FilterTechEntries(w, httptest.NewRequest("GET", "/?url="+site.URL+"/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var entries []map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected 1 entry, got %d: %v", len(entries), entries)
	}
}

func TestFilterTechEntries_NoFeed(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, `<html><head><title>no feed here</title></head></html>`)
	}))
	defer site.Close()

	w := httptest.NewRecorder()
	FilterTechEntries(w, httptest.NewRequest("GET", "/?url="+site.URL+"/", nil))

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected status %d, got %d", http.StatusUnprocessableEntity, w.Code)
	}
}

func TestFilterTechEntries_UpstreamError(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer site.Close()

	w := httptest.NewRecorder()
	FilterTechEntries(w, httptest.NewRequest("GET", "/?kind=hatenablog&url="+site.URL+"/", nil))

	if w.Code != http.StatusBadGateway {
		t.Errorf("Expected status %d, got %d", http.StatusBadGateway, w.Code)
	}
}
