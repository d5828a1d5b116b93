// Package crawler drives breadth-first, budget-bounded crawls of company
// websites and merges per-page extraction results into company records.
package crawler

import (
	"bytes"
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"leadscout/internal/company"
	"leadscout/internal/discover"
	"leadscout/internal/extract"
	"leadscout/internal/fetcher"
	"leadscout/internal/robots"
	"leadscout/pkg/types"
)

// Options bounds a single company crawl.
type Options struct {
	MaxPages       int
	LinksPerPage   int
	RequestTimeout time.Duration
	Render         bool
}

func (o Options) withDefaults() Options {
	if o.MaxPages <= 0 {
		o.MaxPages = 5
	}
	if o.LinksPerPage <= 0 {
		o.LinksPerPage = 5
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 10 * time.Second
	}
	return o
}

// Crawler performs one crawl at a time: a strictly FIFO breadth-first walk of
// a company site, one page in flight, budget counted in successful fetches.
type Crawler struct {
	fetcher fetcher.Fetcher
	robots  *robots.Agent
	limiter *Limiter
	opts    Options
	logger  *slog.Logger
}

// New assembles a crawler. robots and limiter may be nil.
func New(f fetcher.Fetcher, agent *robots.Agent, limiter *Limiter, opts Options, logger *slog.Logger) *Crawler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Crawler{
		fetcher: f,
		robots:  agent,
		limiter: limiter,
		opts:    opts.withDefaults(),
		logger:  logger,
	}
}

// Crawl walks the target's website and returns its accumulated record. The
// crawl never fails: fetch errors skip the page, and a crawl that fetches
// nothing yields a placeholder record with a page count of zero.
func (c *Crawler) Crawl(ctx context.Context, target types.CrawlTarget) types.CompanyRecord {
	acc := company.NewAccumulator(target)
	visited := NewVisitedSet()
	scraped := 0

	seed, err := fetcher.ParseURL(target.URL)
	if err != nil {
		c.logger.Warn("invalid seed url", "url", target.URL, "error", err)
		return acc.Finalize(visited.URLs(), scraped)
	}

	queue := []*url.URL{seed}

	for len(queue) > 0 && scraped < c.opts.MaxPages {
		if ctx.Err() != nil {
			break
		}

		current := queue[0]
		queue = queue[1:]
		key := current.String()

		// Mark at dequeue: a URL is attempted at most once, even when it
		// sits in the queue multiple times.
		if !visited.Mark(key) {
			continue
		}

		if c.robots != nil && !c.robots.Allowed(ctx, current) {
			c.logger.Debug("blocked by robots", "url", key)
			continue
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx, current.Hostname()); err != nil {
				break
			}
		}

		page, err := c.fetchPage(ctx, current)
		if err != nil {
			// Never retried; the URL stays visited and the page budget
			// is untouched.
			c.logger.Warn("fetch failed, skipping page", "url", key, "error", err)
			continue
		}

		scraped++
		first := scraped == 1
		rawText := string(page.Body)
		kind := extract.Classify(key, first)

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
		if err != nil {
			c.logger.Debug("html parse failed", "url", key, "error", err)
			acc.MergePage(company.PageInput{URL: key, Kind: kind, First: first, RawText: rawText})
			continue
		}
		extract.Sanitize(doc)

		acc.MergePage(company.PageInput{
			URL:     key,
			Kind:    kind,
			First:   first,
			RawText: rawText,
			Doc:     doc,
			Content: extract.Content(doc),
		})

		if first {
			acc.SetSEOScore(extract.SEOScore(extract.SEO(doc, current)))
		}

		if scraped < c.opts.MaxPages {
			for _, link := range discover.Links(doc, seed, c.opts.LinksPerPage) {
				if !visited.Seen(link.String()) {
					queue = append(queue, link)
				}
			}
		}
	}

	record := acc.Finalize(visited.URLs(), scraped)
	c.logger.Info("crawl finished",
		"url", target.URL,
		"pages_scraped", scraped,
		"pages_attempted", visited.Size(),
		"emails", len(record.Emails),
		"phones", len(record.Phones),
	)
	return record
}

func (c *Crawler) fetchPage(ctx context.Context, target *url.URL) (*types.Page, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, c.opts.RequestTimeout)
	defer cancel()
	return c.fetcher.Fetch(fetchCtx, types.CrawlRequest{URL: target, Render: c.opts.Render})
}
