// Package discover filters and ranks the outgoing links of a fetched page.
package discover

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// priorityKeywords mark pages worth visiting early: they are where contact
// details and company profiles live.
var priorityKeywords = []string{
	"about", "service", "product", "contact", "solution", "portfolio", "client", "team",
}

// avoidExtensions are document/image/archive types that are never HTML pages.
var avoidExtensions = []string{
	".pdf", ".jpg", ".jpeg", ".png", ".gif", ".zip", ".doc", ".docx", ".xls", ".xlsx",
}

// avoidSubstrings reject non-navigable schemes and off-domain social hosts
// anywhere in the URL.
var avoidSubstrings = []string{
	"#", "javascript:", "mailto:", "tel:", "whatsapp:",
	"linkedin.com", "facebook.com", "twitter.com",
}

// Links returns the same-domain links of doc, priority-keyword matches first,
// then the rest, each class in stable document order, truncated to limit.
// Hrefs are resolved against base (the crawl seed), so relative links on deep
// pages resolve the same way the seed's links do.
func Links(doc *goquery.Document, base *url.URL, limit int) []*url.URL {
	if doc == nil || base == nil || limit <= 0 {
		return nil
	}

	seen := make(map[string]struct{})
	var priority, other []*url.URL

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		parsed, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		resolved := base.ResolveReference(parsed)
		if !valid(resolved, base) {
			return
		}
		key := resolved.String()
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}

		if hasPriorityKeyword(key) {
			priority = append(priority, resolved)
		} else {
			other = append(other, resolved)
		}
	})

	links := append(priority, other...)
	if len(links) > limit {
		links = links[:limit]
	}
	return links
}

func valid(target, base *url.URL) bool {
	if target.Host != "" && target.Host != base.Host {
		return false
	}

	lower := strings.ToLower(target.String())
	for _, ext := range avoidExtensions {
		if strings.HasSuffix(lower, ext) {
			return false
		}
	}
	for _, pattern := range avoidSubstrings {
		if strings.Contains(lower, pattern) {
			return false
		}
	}
	return true
}

func hasPriorityKeyword(link string) bool {
	lower := strings.ToLower(link)
	for _, keyword := range priorityKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
