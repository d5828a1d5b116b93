package types

import (
	"net/http"
	"net/url"
	"time"
)

// CrawlTarget identifies a company website to crawl. Immutable once created.
type CrawlTarget struct {
	URL    string `json:"url" yaml:"url"`
	Name   string `json:"name" yaml:"name"`
	Source string `json:"source" yaml:"source"`
}

// CrawlRequest models a single page fetch submitted to the fetcher.
type CrawlRequest struct {
	URL    *url.URL
	Render bool
}

// Page represents the fetched content of one URL.
type Page struct {
	URL             *url.URL
	FinalURL        *url.URL
	Body            []byte
	ContentType     string
	StatusCode      int
	Headers         http.Header
	FetchedAt       time.Time
	Rendered        bool
	ResponseLatency time.Duration
}

// NotFound is the placeholder assigned to any record field with no data.
const NotFound = "N/A"

// CompanyRecord is the accumulated result of crawling one company website.
type CompanyRecord struct {
	URL          string            `json:"url"`
	Source       string            `json:"source"`
	CompanyName  string            `json:"company_name"`
	About        string            `json:"about"`
	Services     string            `json:"services"`
	Products     string            `json:"products"`
	Clients      string            `json:"clients"`
	TeamInfo     string            `json:"team_info"`
	Address      string            `json:"address"`
	Emails       []string          `json:"emails"`
	Phones       []string          `json:"phones"`
	SocialMedia  map[string]string `json:"social_media"`
	PagesScraped int               `json:"pages_scraped"`
	VisitedURLs  []string          `json:"visited_urls"`
	SEOScore     int               `json:"seo_score"`
	QualityScore float64           `json:"quality_score"`
}

// HasEmails reports whether the crawl found at least one email address.
func (r CompanyRecord) HasEmails() bool { return len(r.Emails) > 0 }

// HasPhones reports whether the crawl found at least one phone number.
func (r CompanyRecord) HasPhones() bool { return len(r.Phones) > 0 }

// Empty reports whether the crawl fetched no pages at all. Such a record is
// still valid output: it ranks at the bottom rather than raising an error.
func (r CompanyRecord) Empty() bool { return r.PagesScraped == 0 }
