// Package company accumulates per-page extraction results into one
// CompanyRecord and scores it.
package company

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"leadscout/internal/extract"
	"leadscout/pkg/types"
)

const (
	maxNameLength    = 100
	maxAboutLength   = 500
	maxSectionLength = 200
	maxServices      = 15
	maxProducts      = 5
	maxClients       = 3
	maxTeamSections  = 2
	minAddressLength = 20
	maxAddressLength = 200
)

var aboutKeywords = []string{"about", "who we are", "company", "overview", "mission", "vision"}

var addressKeywords = []string{"address", "location", "office", "dubai", "uae", "united arab emirates"}

var (
	serviceClassPattern = regexp.MustCompile(`(?i)service|solution`)
	productClassPattern = regexp.MustCompile(`(?i)product`)
	clientClassPattern  = regexp.MustCompile(`(?i)client|portfolio`)
	teamClassPattern    = regexp.MustCompile(`(?i)team|people|staff`)
)

// PageInput carries everything the accumulator needs from one fetched page.
// It is consumed immediately and discarded after the merge.
type PageInput struct {
	URL     string
	Kind    extract.PageKind
	First   bool
	RawText string
	Doc     *goquery.Document
	Content extract.PageContent
}

// Accumulator builds up a CompanyRecord as the crawl visits pages. It is not
// safe for concurrent use; each crawl owns exactly one.
type Accumulator struct {
	target types.CrawlTarget

	name     string
	about    string
	products string
	clients  string
	team     string

	services  []string
	addresses []string

	emails    []string
	phones    []string
	emailSeen map[string]struct{}
	phoneSeen map[string]struct{}

	social map[string]string

	seoScore int
}

// NewAccumulator starts an empty record for one crawl target.
func NewAccumulator(target types.CrawlTarget) *Accumulator {
	return &Accumulator{
		target:    target,
		name:      target.Name,
		emailSeen: make(map[string]struct{}),
		phoneSeen: make(map[string]struct{}),
		social:    make(map[string]string),
	}
}

// MergePage folds one page into the record. Contact details are collected from
// every page; section text only from pages whose kind enables the rule.
func (a *Accumulator) MergePage(page PageInput) {
	a.addEmails(extract.Emails(page.RawText))
	a.addPhones(extract.Phones(page.RawText))
	a.mergeSocial(extract.SocialLinks(page.RawText))

	if page.Doc == nil {
		return
	}

	if page.First {
		a.mergeName(page.Doc)
	}

	// The first page is always scanned for about text, whatever its URL says.
	if page.Kind == extract.KindAbout || page.Kind == extract.KindHome || page.First {
		a.mergeAbout(page)
	}

	switch page.Kind {
	case extract.KindServices:
		a.mergeServices(page)
	case extract.KindProducts:
		a.mergeProducts(page.Doc)
	case extract.KindContact:
		a.mergeAddress(page.Doc)
	case extract.KindClients:
		a.mergeClients(page.Doc)
	case extract.KindTeam:
		a.mergeTeam(page.Doc)
	}
}

// SetSEOScore records the SEO score of the home page.
func (a *Accumulator) SetSEOScore(score int) {
	a.seoScore = score
}

func (a *Accumulator) addEmails(emails []string) {
	for _, email := range emails {
		if _, ok := a.emailSeen[email]; ok {
			continue
		}
		a.emailSeen[email] = struct{}{}
		a.emails = append(a.emails, email)
	}
}

func (a *Accumulator) addPhones(phones []string) {
	for _, phone := range phones {
		if _, ok := a.phoneSeen[phone]; ok {
			continue
		}
		a.phoneSeen[phone] = struct{}{}
		a.phones = append(a.phones, phone)
	}
}

func (a *Accumulator) mergeSocial(links map[string]string) {
	// First-found wins per platform, never overwritten on later pages.
	for _, platform := range extract.SocialPlatforms {
		link, ok := links[platform]
		if !ok {
			continue
		}
		if _, exists := a.social[platform]; !exists {
			a.social[platform] = link
		}
	}
}

func (a *Accumulator) mergeName(doc *goquery.Document) {
	for _, tag := range []string{"h1", "title"} {
		sel := doc.Find(tag).First()
		if sel.Length() == 0 {
			continue
		}
		a.name = truncate(extract.NormalizeSpace(sel.Text()), maxNameLength)
		return
	}
}

func (a *Accumulator) mergeAbout(page PageInput) {
	best := a.about
	page.Doc.Find("h1,h2,h3").Each(func(_ int, heading *goquery.Selection) {
		text := strings.ToLower(heading.Text())
		if !containsAny(text, aboutKeywords) {
			return
		}
		var parts []string
		heading.NextAll().EachWithBreak(func(_ int, sibling *goquery.Selection) bool {
			if !sibling.Is("p") && !sibling.Is("div") {
				return true
			}
			if chunk := extract.NormalizeSpace(sibling.Text()); chunk != "" {
				parts = append(parts, chunk)
			}
			return len(parts) < 3
		})
		candidate := truncate(strings.Join(parts, " "), maxAboutLength)
		if len(candidate) > len(best) {
			best = candidate
		}
	})

	if best == "" {
		best = a.readabilityAbout(page)
	}
	a.about = best
}

// readabilityAbout falls back to the readability excerpt when no
// keyword-matched heading yields about text.
func (a *Accumulator) readabilityAbout(page PageInput) string {
	pageURL, err := url.Parse(page.URL)
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(strings.NewReader(page.RawText), pageURL)
	if err != nil {
		return ""
	}
	return truncate(extract.NormalizeSpace(article.Excerpt), maxAboutLength)
}

func (a *Accumulator) mergeServices(page PageInput) {
	for _, text := range sectionTexts(page.Doc, serviceClassPattern, 3) {
		a.services = append(a.services, text)
	}
	a.services = append(a.services, page.Content.ListItems...)
}

func (a *Accumulator) mergeProducts(doc *goquery.Document) {
	products := sectionTexts(doc, productClassPattern, 3)
	if len(products) > 0 {
		a.products = joinCapped(products, maxProducts)
	}
}

func (a *Accumulator) mergeAddress(doc *goquery.Document) {
	// Only contact-classified pages contribute an address; the first
	// plausible candidate found across the crawl wins.
	doc.Find("p,div,span,li,address,td").Each(func(_ int, s *goquery.Selection) {
		text := extract.NormalizeSpace(s.Text())
		if len(text) <= minAddressLength || len(text) >= maxAddressLength {
			return
		}
		if containsAny(strings.ToLower(text), addressKeywords) {
			a.addresses = append(a.addresses, text)
		}
	})
}

func (a *Accumulator) mergeClients(doc *goquery.Document) {
	clients := sectionTexts(doc, clientClassPattern, 2)
	if len(clients) > 0 {
		a.clients = joinCapped(clients, maxClients)
	}
}

func (a *Accumulator) mergeTeam(doc *goquery.Document) {
	team := sectionTexts(doc, teamClassPattern, 2)
	if len(team) > 0 {
		a.team = joinCapped(team, maxTeamSections)
	}
}

// Finalize collapses the accumulated state into a CompanyRecord. Every field
// with no data gets the NotFound placeholder, so a crawl that fetched zero
// pages still yields a valid, low-quality record.
func (a *Accumulator) Finalize(visited []string, pagesScraped int) types.CompanyRecord {
	record := types.CompanyRecord{
		URL:          a.target.URL,
		Source:       a.target.Source,
		CompanyName:  orNotFound(a.name),
		About:        orNotFound(a.about),
		Services:     orNotFound(joinCapped(dedupe(a.services), maxServices)),
		Products:     orNotFound(a.products),
		Clients:      orNotFound(a.clients),
		TeamInfo:     orNotFound(a.team),
		Address:      orNotFound(first(a.addresses)),
		Emails:       a.emails,
		Phones:       a.phones,
		SocialMedia:  a.social,
		PagesScraped: pagesScraped,
		VisitedURLs:  visited,
		SEOScore:     a.seoScore,
	}
	record.QualityScore = QualityScore(record)
	return record
}

func sectionTexts(doc *goquery.Document, classPattern *regexp.Regexp, limit int) []string {
	var texts []string
	doc.Find("div,section").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class, ok := s.Attr("class")
		if !ok || !classPattern.MatchString(class) {
			return true
		}
		if text := extract.NormalizeSpace(s.Text()); text != "" {
			texts = append(texts, truncate(text, maxSectionLength))
		}
		return len(texts) < limit
	})
	return texts
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

func joinCapped(values []string, limit int) string {
	if len(values) > limit {
		values = values[:limit]
	}
	return strings.Join(values, "; ")
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func orNotFound(value string) string {
	if value == "" {
		return types.NotFound
	}
	return value
}
