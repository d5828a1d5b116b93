package seeds

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"leadscout/internal/fetcher"
	"leadscout/pkg/types"
)

// profileSelectors target the anchor shapes business directories typically
// use for company profile links.
var profileSelectors = []string{
	`a[href*="company"]`,
	`a[href*="business"]`,
	`a[href*="profile"]`,
	`a[href*="detail"]`,
	".company-name a",
	".business-name a",
	".listing a",
	"h2 a",
	"h3 a",
	".title a",
}

// skipSubstrings reject navigation links that are not company profiles.
var skipSubstrings = []string{"login", "register", "search", "contact-us", "about-us"}

const minTitleLength = 3

// DirectoryScanner extracts company profile links from business-directory
// pages to use as crawl seeds.
type DirectoryScanner struct {
	fetcher fetcher.Fetcher
	logger  *slog.Logger
}

// NewDirectoryScanner builds a scanner on top of a page fetcher.
func NewDirectoryScanner(f fetcher.Fetcher, logger *slog.Logger) *DirectoryScanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &DirectoryScanner{fetcher: f, logger: logger}
}

// Companies fetches one directory page and returns up to max company targets,
// labelled with the directory they came from.
func (d *DirectoryScanner) Companies(ctx context.Context, directoryURL string, max int) ([]types.CrawlTarget, error) {
	base, err := fetcher.ParseURL(directoryURL)
	if err != nil {
		return nil, err
	}

	page, err := d.fetcher.Fetch(ctx, types.CrawlRequest{URL: base})
	if err != nil {
		return nil, fmt.Errorf("fetch directory %s: %w", directoryURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		return nil, fmt.Errorf("parse directory %s: %w", directoryURL, err)
	}

	source := "Found via " + base.Hostname()
	seen := make(map[string]struct{})
	var targets []types.CrawlTarget

	for _, selector := range profileSelectors {
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			href, ok := s.Attr("href")
			if !ok || strings.TrimSpace(href) == "" {
				return true
			}
			parsed, err := url.Parse(strings.TrimSpace(href))
			if err != nil {
				return true
			}
			link := base.ResolveReference(parsed).String()

			if containsAny(strings.ToLower(link), skipSubstrings) {
				return true
			}
			if _, dup := seen[link]; dup {
				return true
			}

			title := strings.TrimSpace(s.Text())
			if title == "" {
				title = strings.TrimSpace(s.AttrOr("title", "Company"))
			}
			if len(title) <= minTitleLength {
				return true
			}

			seen[link] = struct{}{}
			targets = append(targets, types.CrawlTarget{URL: link, Name: title, Source: source})
			return len(targets) < max
		})
		if len(targets) >= max {
			break
		}
	}

	d.logger.Info("directory scanned", "url", directoryURL, "companies", len(targets))
	return targets, nil
}

func containsAny(text string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(text, pattern) {
			return true
		}
	}
	return false
}
