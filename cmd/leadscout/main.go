package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"leadscout/internal/company"
	"leadscout/internal/config"
	"leadscout/internal/crawler"
	"leadscout/internal/fetcher"
	"leadscout/internal/report"
	"leadscout/internal/seeds"
	"leadscout/internal/storage"
	"leadscout/pkg/types"
)

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "Path to crawler configuration file")
	flag.Parse()

	if err := run(*cfgPath); err != nil {
		fmt.Fprintf(os.Stderr, "leadscout: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := crawler.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	targets := append([]types.CrawlTarget(nil), cfg.Targets...)
	targets = append(targets, directoryTargets(ctx, *cfg, logger)...)
	targets = seeds.Dedupe(targets)
	if len(targets) == 0 {
		return fmt.Errorf("no crawl targets configured")
	}

	fleet := crawler.NewFleetFromConfig(*cfg, logger)

	logger.Info("starting crawl batch", "companies", len(targets))
	records := fleet.Run(ctx, targets)
	company.Rank(records)

	if err := writeReports(cfg.Report, records); err != nil {
		return err
	}

	if cfg.DB.Driver != "" && cfg.DB.DSN != "" {
		if err := persist(ctx, cfg.DB, records, logger); err != nil {
			return err
		}
	}

	logger.Info("crawl batch complete", "companies", len(records))
	return nil
}

// directoryTargets scans configured business-directory pages for extra seeds.
// A directory that cannot be scanned is skipped, not fatal.
func directoryTargets(ctx context.Context, cfg config.Config, logger *slog.Logger) []types.CrawlTarget {
	if len(cfg.Directories.URLs) == 0 {
		return nil
	}

	httpFetcher := fetcher.NewHTTPFetcher(fetcher.Options{
		UserAgent:    cfg.Crawl.UserAgent,
		Timeout:      cfg.Crawl.RequestTimeout.Duration,
		MaxBodyBytes: cfg.Crawl.MaxBodyBytes,
	})
	scanner := seeds.NewDirectoryScanner(httpFetcher, logger)

	var targets []types.CrawlTarget
	for _, dir := range cfg.Directories.URLs {
		found, err := scanner.Companies(ctx, dir, cfg.Directories.MaxPerDirectory)
		if err != nil {
			logger.Warn("directory scan failed", "url", dir, "error", err)
			continue
		}
		targets = append(targets, found...)
	}
	return targets
}

func writeReports(cfg config.ReportConfig, records []types.CompanyRecord) error {
	if err := writeFile(filepath.Join(cfg.Directory, "results.csv"), records, report.WriteCSV); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(cfg.Directory, "summary.csv"), records, report.WriteSummaryCSV); err != nil {
		return err
	}
	if cfg.XLSX {
		if err := writeFile(filepath.Join(cfg.Directory, "results.xlsx"), records, report.WriteXLSX); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, records []types.CompanyRecord, write func(w io.Writer, records []types.CompanyRecord) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f, records); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func persist(ctx context.Context, cfg config.SQLConfig, records []types.CompanyRecord, logger *slog.Logger) error {
	store, err := storage.NewSQLStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	for _, record := range records {
		if err := store.SaveCompany(ctx, record); err != nil {
			logger.Warn("persist failed", "url", record.URL, "error", err)
		}
	}
	return nil
}
