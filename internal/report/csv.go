// Package report serialises ranked company records for the report sink:
// a primary CSV with one row per company, a reduced summary CSV, and an
// optional XLSX workbook.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"leadscout/internal/extract"
	"leadscout/pkg/types"
)

// maxListedContacts caps how many emails/phones appear in the joined CSV
// columns. The full counts are exported separately.
const maxListedContacts = 5

// Columns is the primary CSV header. Column order is a compatibility
// contract with downstream report consumers.
var Columns = []string{
	"URL",
	"Source",
	"Pages Scraped",
	"Company Name",
	"About",
	"Services",
	"Products",
	"Emails",
	"Phones",
	"Address",
	"Clients",
	"Team Info",
	"Social Media",
	"Total Emails Found",
	"Total Phones Found",
	"SEO Score",
	"Quality Score",
}

// SummaryColumns is the reduced header of the secondary summary CSV.
var SummaryColumns = []string{
	"Company Name",
	"URL",
	"Total Emails Found",
	"Total Phones Found",
	"Pages Scraped",
	"Quality Score",
}

// WriteCSV writes the primary report, one row per company. The visited-URL
// list is deliberately excluded from this export.
func WriteCSV(w io.Writer, records []types.CompanyRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.URL,
			r.Source,
			strconv.Itoa(r.PagesScraped),
			r.CompanyName,
			r.About,
			r.Services,
			r.Products,
			joinContacts(r.Emails),
			joinContacts(r.Phones),
			r.Address,
			r.Clients,
			r.TeamInfo,
			socialString(r.SocialMedia),
			strconv.Itoa(len(r.Emails)),
			strconv.Itoa(len(r.Phones)),
			strconv.Itoa(r.SEOScore),
			formatQuality(r.QualityScore),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row for %s: %w", r.URL, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaryCSV writes the reduced per-company summary.
func WriteSummaryCSV(w io.Writer, records []types.CompanyRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SummaryColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.CompanyName,
			r.URL,
			strconv.Itoa(len(r.Emails)),
			strconv.Itoa(len(r.Phones)),
			strconv.Itoa(r.PagesScraped),
			formatQuality(r.QualityScore),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row for %s: %w", r.URL, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseCSV reads a primary report back into records. Scalar fields round-trip
// exactly; the email/phone columns only carry the first entries, so list
// contents are best-effort.
func ParseCSV(r io.Reader) ([]types.CompanyRecord, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv missing header")
	}
	header := rows[0]
	if len(header) != len(Columns) {
		return nil, fmt.Errorf("unexpected column count %d, want %d", len(header), len(Columns))
	}
	for i, name := range Columns {
		if header[i] != name {
			return nil, fmt.Errorf("unexpected column %q at position %d, want %q", header[i], i, name)
		}
	}

	records := make([]types.CompanyRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		pages, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("parse pages scraped %q: %w", row[2], err)
		}
		seoScore, err := strconv.Atoi(row[15])
		if err != nil {
			return nil, fmt.Errorf("parse seo score %q: %w", row[15], err)
		}
		quality, err := strconv.ParseFloat(row[16], 64)
		if err != nil {
			return nil, fmt.Errorf("parse quality score %q: %w", row[16], err)
		}
		records = append(records, types.CompanyRecord{
			URL:          row[0],
			Source:       row[1],
			PagesScraped: pages,
			CompanyName:  row[3],
			About:        row[4],
			Services:     row[5],
			Products:     row[6],
			Emails:       splitContacts(row[7]),
			Phones:       splitContacts(row[8]),
			Address:      row[9],
			Clients:      row[10],
			TeamInfo:     row[11],
			SocialMedia:  parseSocial(row[12]),
			SEOScore:     seoScore,
			QualityScore: quality,
		})
	}
	return records, nil
}

func joinContacts(values []string) string {
	if len(values) == 0 {
		return types.NotFound
	}
	if len(values) > maxListedContacts {
		values = values[:maxListedContacts]
	}
	return strings.Join(values, "; ")
}

func splitContacts(joined string) []string {
	if joined == "" || joined == types.NotFound {
		return nil
	}
	return strings.Split(joined, "; ")
}

func socialString(social map[string]string) string {
	if len(social) == 0 {
		return types.NotFound
	}
	var parts []string
	for _, platform := range extract.SocialPlatforms {
		if link, ok := social[platform]; ok {
			parts = append(parts, platform+": "+link)
		}
	}
	return strings.Join(parts, ", ")
}

func parseSocial(joined string) map[string]string {
	if joined == "" || joined == types.NotFound {
		return nil
	}
	social := make(map[string]string)
	for _, part := range strings.Split(joined, ", ") {
		if platform, link, ok := strings.Cut(part, ": "); ok {
			social[platform] = link
		}
	}
	return social
}

func formatQuality(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
