package extract

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

func TestSEOScoreCappedAt100(t *testing.T) {
	// Every rubric line earns full weight: 15+15+10+10+10+10+10+10+10+10
	// totals 110 and is capped.
	data := SEOData{
		Title:             strings.Repeat("t", 45),
		TitleLength:       45,
		Description:       strings.Repeat("d", 140),
		DescriptionLength: 140,
		HTTPS:             true,
		MobileViewport:    true,
		H1:                []string{"Welcome"},
		ImagesWithAlt:     3,
		ImagesWithoutAlt:  1,
		SchemaTypes:       []string{"Organization"},
		OGTags:            map[string]string{"title": "Acme"},
		WordCount:         350,
		InternalLinks:     12,
	}
	if got := SEOScore(data); got != 100 {
		t.Fatalf("expected score 100, got %d", got)
	}
}

func TestSEOScoreWeights(t *testing.T) {
	tests := []struct {
		name string
		data SEOData
		want int
	}{
		{"empty page", SEOData{}, 0},
		{"title ideal length", SEOData{Title: strings.Repeat("t", 40), TitleLength: 40}, 15},
		{"title too short", SEOData{Title: "Acme", TitleLength: 4}, 5},
		{"title too long", SEOData{Title: strings.Repeat("t", 80), TitleLength: 80}, 5},
		{"description ideal length", SEOData{Description: strings.Repeat("d", 120), DescriptionLength: 120}, 15},
		{"description off length", SEOData{Description: "short", DescriptionLength: 5}, 5},
		{"https", SEOData{HTTPS: true}, 10},
		{"viewport", SEOData{MobileViewport: true}, 10},
		{"h1 present", SEOData{H1: []string{"x"}}, 10},
		{"alt majority", SEOData{ImagesWithAlt: 2, ImagesWithoutAlt: 1}, 10},
		{"alt tie scores nothing", SEOData{ImagesWithAlt: 1, ImagesWithoutAlt: 1}, 0},
		{"schema", SEOData{SchemaTypes: []string{"Organization"}}, 10},
		{"og tags", SEOData{OGTags: map[string]string{"image": "x"}}, 10},
		{"word count boundary", SEOData{WordCount: 300}, 10},
		{"word count below boundary", SEOData{WordCount: 299}, 0},
		{"internal links", SEOData{InternalLinks: 1}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SEOScore(tt.data); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestSEODeterministic(t *testing.T) {
	data := SEOData{Title: "Acme", TitleLength: 4, HTTPS: true, WordCount: 500}
	first := SEOScore(data)
	for i := 0; i < 5; i++ {
		if got := SEOScore(data); got != first {
			t.Fatalf("expected stable score %d, got %d", first, got)
		}
	}
}

func TestSEOInventory(t *testing.T) {
	html := `<html><head>
		<title> Acme Trading </title>
		<meta name="description" content="We trade things.">
		<meta name="keywords" content="trade, acme">
		<meta name="viewport" content="width=device-width">
		<meta property="og:title" content="Acme">
		<meta property="og:image" content="https://acme.ae/logo.png">
		<script type="application/ld+json">{"@type": "Organization"}</script>
		<script type="application/ld+json">not json</script>
	</head><body>
		<h1>Acme</h1><h2>What we do</h2>
		<img src="a.png" alt="warehouse"><img src="b.png">
		<a href="https://acme.ae/about">About</a>
		<a href="/contact">Contact</a>
		<a href="https://other.example/partner">Partner</a>
		<a href="#top">Top</a>
		<p>Some body copy.</p>
	</body></html>`

	doc := parseHTML(t, html)
	data := SEO(doc, mustParseURL(t, "https://acme.ae/"))

	if data.Title != "Acme Trading" {
		t.Errorf("expected title %q, got %q", "Acme Trading", data.Title)
	}
	if data.Description != "We trade things." {
		t.Errorf("expected description, got %q", data.Description)
	}
	if data.Keywords != "trade, acme" {
		t.Errorf("expected keywords, got %q", data.Keywords)
	}
	if !data.HTTPS {
		t.Error("expected https to be detected")
	}
	if !data.MobileViewport {
		t.Error("expected viewport to be detected")
	}
	if len(data.H1) != 1 || data.H1[0] != "Acme" {
		t.Errorf("expected h1 [Acme], got %v", data.H1)
	}
	if data.ImageCount != 2 || data.ImagesWithAlt != 1 || data.ImagesWithoutAlt != 1 {
		t.Errorf("expected image counts 2/1/1, got %d/%d/%d", data.ImageCount, data.ImagesWithAlt, data.ImagesWithoutAlt)
	}
	// Absolute same-host and relative links are internal, the anchor link is
	// ignored.
	if data.InternalLinks != 2 {
		t.Errorf("expected 2 internal links, got %d", data.InternalLinks)
	}
	if data.ExternalLinks != 1 {
		t.Errorf("expected 1 external link, got %d", data.ExternalLinks)
	}
	if len(data.OGTags) != 2 || data.OGTags["title"] != "Acme" {
		t.Errorf("expected 2 og tags with title Acme, got %v", data.OGTags)
	}
	if len(data.SchemaTypes) != 1 || data.SchemaTypes[0] != "Organization" {
		t.Errorf("expected schema types [Organization], got %v", data.SchemaTypes)
	}
	if data.SchemaParseFailures != 1 {
		t.Errorf("expected 1 schema parse failure, got %d", data.SchemaParseFailures)
	}
	if data.WordCount == 0 {
		t.Error("expected non-zero word count")
	}
}

func TestSEONilURL(t *testing.T) {
	doc := parseHTML(t, `<html><body><a href="https://acme.ae/x">x</a></body></html>`)
	data := SEO(doc, nil)
	if data.HTTPS {
		t.Error("expected https false without a page url")
	}
	if data.ExternalLinks != 1 {
		t.Errorf("expected absolute link counted external without a host, got internal=%d external=%d", data.InternalLinks, data.ExternalLinks)
	}
}
