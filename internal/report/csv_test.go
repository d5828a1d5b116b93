package report

import (
	"bytes"
	"encoding/csv"
	"reflect"
	"strings"
	"testing"

	"leadscout/pkg/types"
)

func sampleRecords() []types.CompanyRecord {
	return []types.CompanyRecord{
		{
			URL:          "https://acme.ae",
			Source:       "Initial list",
			PagesScraped: 4,
			CompanyName:  "Acme Trading LLC",
			About:        "Industrial supplier, est. 1998",
			Services:     "Maintenance; Calibration",
			Products:     "Valves; Pumps",
			Emails:       []string{"info@acme.ae", "sales@acme.ae"},
			Phones:       []string{"+971 4 123 4567"},
			Address:      "Office 12, Sheikh Zayed Road, Dubai",
			Clients:      "ADNOC",
			TeamInfo:     "Managing Director",
			SocialMedia: map[string]string{
				"facebook": "https://facebook.com/acme",
				"linkedin": "https://linkedin.com/company/acme",
			},
			VisitedURLs:  []string{"https://acme.ae/", "https://acme.ae/about"},
			SEOScore:     65,
			QualityScore: 22.5,
		},
		{
			URL:          "https://empty.ae",
			Source:       "Initial list",
			CompanyName:  types.NotFound,
			About:        types.NotFound,
			Services:     types.NotFound,
			Products:     types.NotFound,
			Clients:      types.NotFound,
			TeamInfo:     types.NotFound,
			Address:      types.NotFound,
			PagesScraped: 0,
			QualityScore: 0,
		},
	}
}

func TestWriteParseRoundTrip(t *testing.T) {
	records := sampleRecords()

	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	parsed, err := ParseCSV(&buf)
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(parsed) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(parsed))
	}

	got, want := parsed[0], records[0]
	if got.URL != want.URL || got.Source != want.Source {
		t.Errorf("expected identity preserved, got %+v", got)
	}
	if got.PagesScraped != want.PagesScraped {
		t.Errorf("expected pages %d, got %d", want.PagesScraped, got.PagesScraped)
	}
	if got.CompanyName != want.CompanyName || got.About != want.About {
		t.Errorf("expected name/about preserved, got %q / %q", got.CompanyName, got.About)
	}
	if got.SEOScore != want.SEOScore {
		t.Errorf("expected seo score %d, got %d", want.SEOScore, got.SEOScore)
	}
	if got.QualityScore != want.QualityScore {
		t.Errorf("expected quality %v, got %v", want.QualityScore, got.QualityScore)
	}
	if !reflect.DeepEqual(got.Emails, want.Emails) {
		t.Errorf("expected emails %v, got %v", want.Emails, got.Emails)
	}
	if !reflect.DeepEqual(got.Phones, want.Phones) {
		t.Errorf("expected phones %v, got %v", want.Phones, got.Phones)
	}
	if !reflect.DeepEqual(got.SocialMedia, want.SocialMedia) {
		t.Errorf("expected social %v, got %v", want.SocialMedia, got.SocialMedia)
	}

	if parsed[1].CompanyName != types.NotFound {
		t.Errorf("expected placeholder preserved, got %q", parsed[1].CompanyName)
	}
	if parsed[1].Emails != nil {
		t.Errorf("expected no emails for empty record, got %v", parsed[1].Emails)
	}
}

func TestWriteCSVHeaderAndPlaceholders(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRecords()); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reread csv: %v", err)
	}
	if !reflect.DeepEqual(rows[0], Columns) {
		t.Fatalf("expected header %v, got %v", Columns, rows[0])
	}
	// The empty record exports placeholders, not empty cells.
	emptyRow := rows[2]
	if emptyRow[7] != types.NotFound || emptyRow[8] != types.NotFound || emptyRow[12] != types.NotFound {
		t.Fatalf("expected contact placeholders, got %v", emptyRow)
	}
	if emptyRow[13] != "0" || emptyRow[14] != "0" {
		t.Fatalf("expected zero contact counts, got %v", emptyRow)
	}
}

func TestWriteCSVContactCapKeepsTotals(t *testing.T) {
	emails := make([]string, 8)
	for i := range emails {
		emails[i] = strings.Repeat(string(rune('a'+i)), 3) + "@acme.ae"
	}
	records := []types.CompanyRecord{{URL: "https://acme.ae", Emails: emails}}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reread csv: %v", err)
	}

	listed := strings.Split(rows[1][7], "; ")
	if len(listed) != maxListedContacts {
		t.Fatalf("expected %d listed emails, got %d", maxListedContacts, len(listed))
	}
	if rows[1][13] != "8" {
		t.Fatalf("expected total count 8, got %q", rows[1][13])
	}
}

func TestWriteSummaryCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummaryCSV(&buf, sampleRecords()); err != nil {
		t.Fatalf("write summary: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reread summary: %v", err)
	}
	if !reflect.DeepEqual(rows[0], SummaryColumns) {
		t.Fatalf("expected header %v, got %v", SummaryColumns, rows[0])
	}
	want := []string{"Acme Trading LLC", "https://acme.ae", "2", "1", "4", "22.5"}
	if !reflect.DeepEqual(rows[1], want) {
		t.Fatalf("expected row %v, got %v", want, rows[1])
	}
}

func TestParseCSVRejectsWrongHeader(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("Nope,Header\nx,y\n")); err == nil {
		t.Fatal("expected header validation error")
	}
}

func TestSocialStringDeterministicOrder(t *testing.T) {
	social := map[string]string{
		"youtube":  "https://youtube.com/acme",
		"facebook": "https://facebook.com/acme",
		"twitter":  "https://twitter.com/acme",
	}
	want := "facebook: https://facebook.com/acme, twitter: https://twitter.com/acme, youtube: https://youtube.com/acme"
	for i := 0; i < 10; i++ {
		if got := socialString(social); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
}
