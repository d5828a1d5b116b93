// Package seeds collects crawl targets from external sources: configured
// lists, keyword-search providers, and business-directory pages.
package seeds

import (
	"context"

	"leadscout/pkg/types"
)

// Searcher is an external keyword-search collaborator returning candidate
// company websites. Implementations wrap third-party search services and are
// treated as opaque sources of seed URLs.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]types.CrawlTarget, error)
}

// Dedupe removes targets whose URL was already seen, keeping input order.
func Dedupe(targets []types.CrawlTarget) []types.CrawlTarget {
	seen := make(map[string]struct{}, len(targets))
	out := targets[:0]
	for _, t := range targets {
		if _, ok := seen[t.URL]; ok {
			continue
		}
		seen[t.URL] = struct{}{}
		out = append(out, t)
	}
	return out
}
