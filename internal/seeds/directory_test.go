package seeds

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"leadscout/internal/fetcher"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDirectoryScannerCompanies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html><body>
			<div class="listing"><a href="/company/acme-trading">Acme Trading LLC</a></div>
			<div class="listing"><a href="/company/gulf-pumps">Gulf Pumps</a></div>
			<div class="listing"><a href="/company/acme-trading">Acme Trading LLC</a></div>
			<div class="listing"><a href="/login">Login</a></div>
			<div class="listing"><a href="/company/xy">xy</a></div>
		</body></html>`)
	}))
	defer server.Close()

	scanner := NewDirectoryScanner(fetcher.NewHTTPFetcher(fetcher.Options{}), testLogger())
	targets, err := scanner.Companies(context.Background(), server.URL, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(targets) != 2 {
		t.Fatalf("expected 2 targets, got %v", targets)
	}
	if targets[0].Name != "Acme Trading LLC" || targets[1].Name != "Gulf Pumps" {
		t.Fatalf("expected company names, got %v", targets)
	}
	for _, target := range targets {
		if target.Source == "" {
			t.Fatalf("expected source label, got %v", target)
		}
	}
}

func TestDirectoryScannerLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html><body>
			<h2><a href="/company/one">Company One</a></h2>
			<h2><a href="/company/two">Company Two</a></h2>
			<h2><a href="/company/three">Company Three</a></h2>
		</body></html>`)
	}))
	defer server.Close()

	scanner := NewDirectoryScanner(fetcher.NewHTTPFetcher(fetcher.Options{}), testLogger())
	targets, err := scanner.Companies(context.Background(), server.URL, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(targets))
	}
}

func TestDirectoryScannerFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	scanner := NewDirectoryScanner(fetcher.NewHTTPFetcher(fetcher.Options{}), testLogger())
	if _, err := scanner.Companies(context.Background(), server.URL, 5); err == nil {
		t.Fatal("expected error when the directory is unreachable")
	}
}
