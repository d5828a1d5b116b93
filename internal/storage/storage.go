// Package storage persists finalized company records into a relational
// database, as an optional sink next to the file reports.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"leadscout/internal/config"
	"leadscout/internal/extract"
	"leadscout/pkg/types"
)

// Store persists company records.
type Store interface {
	SaveCompany(ctx context.Context, record types.CompanyRecord) error
	Close() error
}

// SQLStore writes company records through database/sql. Records are keyed by
// seed URL; re-crawling a company overwrites its previous row.
type SQLStore struct {
	db          *sql.DB
	autoMigrate bool
}

// NewSQLStore opens the database described by cfg.
func NewSQLStore(cfg config.SQLConfig) (*SQLStore, error) {
	if cfg.Driver == "" || cfg.DSN == "" {
		return nil, errors.New("sql config missing driver or dsn")
	}
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open sql connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sql connection: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime.Duration > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime.Duration)
	}

	store := &SQLStore{db: db, autoMigrate: cfg.AutoMigrate}
	if cfg.AutoMigrate {
		if err := store.ensureSchema(context.Background()); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return store, nil
}

// SaveCompany upserts one record into the companies table.
func (s *SQLStore) SaveCompany(ctx context.Context, record types.CompanyRecord) error {
	if s == nil || s.db == nil {
		return nil
	}
	if err := s.upsertCompany(ctx, record); err != nil {
		if s.autoMigrate && isUndefinedTableErr(err) {
			if schemaErr := s.ensureSchema(ctx); schemaErr != nil {
				return fmt.Errorf("ensure schema: %w", schemaErr)
			}
			if retryErr := s.upsertCompany(ctx, record); retryErr != nil {
				return fmt.Errorf("insert company: %w", retryErr)
			}
			return nil
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

func (s *SQLStore) upsertCompany(ctx context.Context, r types.CompanyRecord) error {
	query := `
        INSERT INTO companies (
            url, source, company_name, about, services, products, clients,
            team_info, address, emails, phones, social_media, pages_scraped,
            visited_urls, seo_score, quality_score, crawled_at
        )
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
        ON CONFLICT (url) DO UPDATE SET
            source = EXCLUDED.source,
            company_name = EXCLUDED.company_name,
            about = EXCLUDED.about,
            services = EXCLUDED.services,
            products = EXCLUDED.products,
            clients = EXCLUDED.clients,
            team_info = EXCLUDED.team_info,
            address = EXCLUDED.address,
            emails = EXCLUDED.emails,
            phones = EXCLUDED.phones,
            social_media = EXCLUDED.social_media,
            pages_scraped = EXCLUDED.pages_scraped,
            visited_urls = EXCLUDED.visited_urls,
            seo_score = EXCLUDED.seo_score,
            quality_score = EXCLUDED.quality_score,
            crawled_at = EXCLUDED.crawled_at
    `
	_, err := s.db.ExecContext(ctx, query,
		r.URL,
		r.Source,
		r.CompanyName,
		r.About,
		r.Services,
		r.Products,
		r.Clients,
		r.TeamInfo,
		r.Address,
		pq.Array(r.Emails),
		pq.Array(r.Phones),
		socialColumn(r.SocialMedia),
		r.PagesScraped,
		pq.Array(r.VisitedURLs),
		r.SEOScore,
		r.QualityScore,
		time.Now().UTC(),
	)
	return err
}

// Close closes the underlying DB connection.
func (s *SQLStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLStore) ensureSchema(ctx context.Context) error {
	if s == nil || s.db == nil || !s.autoMigrate {
		return nil
	}
	schemaCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS companies (
		    url TEXT PRIMARY KEY,
		    source TEXT,
		    company_name TEXT,
		    about TEXT,
		    services TEXT,
		    products TEXT,
		    clients TEXT,
		    team_info TEXT,
		    address TEXT,
		    emails TEXT[],
		    phones TEXT[],
		    social_media TEXT,
		    pages_scraped INT,
		    visited_urls TEXT[],
		    seo_score INT,
		    quality_score DOUBLE PRECISION,
		    crawled_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_companies_quality ON companies (quality_score DESC)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(schemaCtx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

func socialColumn(social map[string]string) string {
	if len(social) == 0 {
		return ""
	}
	parts := make([]string, 0, len(social))
	for _, platform := range extract.SocialPlatforms {
		if link, ok := social[platform]; ok {
			parts = append(parts, platform+": "+link)
		}
	}
	return strings.Join(parts, ", ")
}

func isUndefinedTableErr(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "42P01"
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "relation") && strings.Contains(lower, "does not exist")
}
