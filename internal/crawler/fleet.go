package crawler

import (
	"context"
	"log/slog"
	"sync"

	"leadscout/internal/config"
	"leadscout/internal/fetcher"
	"leadscout/internal/robots"
	"leadscout/pkg/types"
)

// Fleet crawls many companies with a bounded pool of workers. Each worker
// processes one company to completion; pages within a company are never
// fetched in parallel, preserving the per-crawl politeness and FIFO
// guarantees.
type Fleet struct {
	crawler     *Crawler
	concurrency int
	logger      *slog.Logger
}

// NewFleet wraps a crawler with worker-pool dispatch across companies.
func NewFleet(c *Crawler, concurrency int, logger *slog.Logger) *Fleet {
	if concurrency <= 0 {
		concurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fleet{crawler: c, concurrency: concurrency, logger: logger}
}

// NewFleetFromConfig assembles fetcher, robots agent, limiter, crawler, and
// fleet from configuration.
func NewFleetFromConfig(cfg config.Config, logger *slog.Logger) *Fleet {
	if logger == nil {
		logger = slog.Default()
	}

	httpFetcher := fetcher.NewHTTPFetcher(fetcher.Options{
		UserAgent:    cfg.Crawl.UserAgent,
		Timeout:      cfg.Crawl.RequestTimeout.Duration,
		MaxBodyBytes: cfg.Crawl.MaxBodyBytes,
	})

	var renderer fetcher.Renderer
	if cfg.Rendering.Enabled {
		renderer = fetcher.NewChromedpRenderer(fetcher.RenderOptions{
			Timeout:            cfg.Rendering.Timeout.Duration,
			WaitForSelector:    cfg.Rendering.WaitForSelector,
			UserAgent:          cfg.Crawl.UserAgent,
			MaxBodyBytes:       cfg.Crawl.MaxBodyBytes,
			DisableHeadless:    cfg.Rendering.DisableHeadless,
			ConcurrentSessions: cfg.Rendering.ConcurrentSessions,
		}, logger)
	}
	composite := fetcher.NewComposite(httpFetcher, renderer, logger)

	robotsCfg := cfg.Robots
	if robotsCfg.UserAgent == "" {
		robotsCfg.UserAgent = cfg.Crawl.UserAgent
	}
	agent := robots.NewAgent(robotsCfg, httpFetcher.Client())

	limiter := NewLimiter(
		cfg.Crawl.DelayMin.Duration,
		cfg.Crawl.DelayMax.Duration,
		RateLimitSettings{
			Requests: cfg.Crawl.RateLimit.Requests,
			Window:   cfg.Crawl.RateLimit.Window.Duration,
		},
	)

	crawler := New(composite, agent, limiter, Options{
		MaxPages:       cfg.Crawl.MaxPages,
		LinksPerPage:   cfg.Crawl.LinksPerPage,
		RequestTimeout: cfg.Crawl.RequestTimeout.Duration,
		Render:         cfg.Rendering.Enabled,
	}, logger)

	return NewFleet(crawler, cfg.Fleet.Concurrency, logger)
}

// Run crawls every target and returns one record per target, in input order.
// On cancellation each remaining crawl finalizes immediately, so every target
// still gets a (possibly empty) record.
func (f *Fleet) Run(ctx context.Context, targets []types.CrawlTarget) []types.CompanyRecord {
	records := make([]types.CompanyRecord, len(targets))

	sem := make(chan struct{}, f.concurrency)
	var wg sync.WaitGroup

	for i, target := range targets {
		sem <- struct{}{}
		wg.Add(1)
		go func(idx int, t types.CrawlTarget) {
			defer wg.Done()
			defer func() { <-sem }()
			records[idx] = f.crawler.Crawl(ctx, t)
		}(i, target)
	}

	wg.Wait()
	return records
}
