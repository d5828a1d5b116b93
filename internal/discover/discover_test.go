package discover

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse url %q: %v", raw, err)
	}
	return u
}

func linkStrings(links []*url.URL) []string {
	out := make([]string, len(links))
	for i, link := range links {
		out[i] = link.String()
	}
	return out
}

func TestLinksPriorityOrdering(t *testing.T) {
	html := `<html><body>
		<a href="/news">News</a>
		<a href="/about">About</a>
		<a href="/blog">Blog</a>
		<a href="/contact">Contact</a>
	</body></html>`
	base := mustParseURL(t, "https://acme.ae/")

	got := linkStrings(Links(parseHTML(t, html), base, 10))
	want := []string{
		"https://acme.ae/about",
		"https://acme.ae/contact",
		"https://acme.ae/news",
		"https://acme.ae/blog",
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestLinksExclusions(t *testing.T) {
	html := `<html><body>
		<a href="https://other.example/about">off-domain</a>
		<a href="/brochure.pdf">pdf</a>
		<a href="/photo.JPG">image</a>
		<a href="mailto:info@acme.ae">mail</a>
		<a href="tel:+97141234567">phone</a>
		<a href="javascript:void(0)">js</a>
		<a href="https://facebook.com/acme">social</a>
		<a href="/about#history">fragment</a>
		<a href="/ok">ok</a>
	</body></html>`
	base := mustParseURL(t, "https://acme.ae/")

	got := linkStrings(Links(parseHTML(t, html), base, 10))
	want := []string{"https://acme.ae/ok"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestLinksDedupeAndLimit(t *testing.T) {
	html := `<html><body>
		<a href="/about">About</a>
		<a href="https://acme.ae/about">About again</a>
		<a href="/services">Services</a>
		<a href="/products">Products</a>
		<a href="/contact">Contact</a>
	</body></html>`
	base := mustParseURL(t, "https://acme.ae/")

	got := Links(parseHTML(t, html), base, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 links, got %v", linkStrings(got))
	}
	if got[0].String() != "https://acme.ae/about" {
		t.Fatalf("expected dedupe to keep first occurrence, got %v", linkStrings(got))
	}
}

func TestLinksResolvesAgainstBase(t *testing.T) {
	html := `<html><body><a href="warehouse/about">About</a></body></html>`
	base := mustParseURL(t, "https://acme.ae/dir/")

	got := linkStrings(Links(parseHTML(t, html), base, 5))
	want := []string{"https://acme.ae/dir/warehouse/about"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestLinksNilInputs(t *testing.T) {
	base := mustParseURL(t, "https://acme.ae/")
	if got := Links(nil, base, 5); got != nil {
		t.Fatalf("expected nil for nil doc, got %v", got)
	}
	doc := parseHTML(t, `<html><body><a href="/x">x</a></body></html>`)
	if got := Links(doc, nil, 5); got != nil {
		t.Fatalf("expected nil for nil base, got %v", got)
	}
	if got := Links(doc, base, 0); got != nil {
		t.Fatalf("expected nil for zero limit, got %v", got)
	}
}
