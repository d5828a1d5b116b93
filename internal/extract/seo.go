package extract

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SEOData is the per-page SEO metadata inventory. SEOScore is a pure function
// of this struct.
type SEOData struct {
	Title             string
	TitleLength       int
	Description       string
	DescriptionLength int
	Keywords          string
	H1                []string
	H2                []string
	H3                []string
	ImageCount        int
	ImagesWithAlt     int
	ImagesWithoutAlt  int
	InternalLinks     int
	ExternalLinks     int
	HTTPS             bool
	MobileViewport    bool
	OGTags            map[string]string
	SchemaTypes       []string
	// SchemaParseFailures counts JSON-LD blocks that failed to parse. Parse
	// failures are never escalated; the datum is simply skipped.
	SchemaParseFailures int
	WordCount           int
}

var ogProperties = []string{"title", "description", "image", "type"}

// SEO inventories the search-optimization attributes of a page.
func SEO(doc *goquery.Document, pageURL *url.URL) SEOData {
	data := SEOData{OGTags: make(map[string]string)}

	if title := doc.Find("title").First(); title.Length() > 0 {
		data.Title = NormalizeSpace(title.Text())
		data.TitleLength = len(data.Title)
	}
	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		data.Description = desc
		data.DescriptionLength = len(desc)
	}
	if keywords, ok := doc.Find(`meta[name="keywords"]`).First().Attr("content"); ok {
		data.Keywords = keywords
	}

	data.H1 = headingTexts(doc, "h1", 5)
	data.H2 = headingTexts(doc, "h2", 10)
	data.H3 = headingTexts(doc, "h3", 10)

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		data.ImageCount++
		if alt, ok := s.Attr("alt"); ok && alt != "" {
			data.ImagesWithAlt++
		} else {
			data.ImagesWithoutAlt++
		}
	})

	host := ""
	if pageURL != nil {
		host = pageURL.Host
		data.HTTPS = pageURL.Scheme == "https"
	}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		switch {
		case strings.HasPrefix(href, "http"):
			if target, err := url.Parse(href); err == nil && target.Host == host {
				data.InternalLinks++
			} else {
				data.ExternalLinks++
			}
		case strings.HasPrefix(href, "#"), strings.HasPrefix(href, "javascript:"):
			// not navigation
		default:
			data.InternalLinks++
		}
	})

	data.MobileViewport = doc.Find(`meta[name="viewport"]`).Length() > 0

	for _, prop := range ogProperties {
		if tag := doc.Find(`meta[property="og:` + prop + `"]`).First(); tag.Length() > 0 {
			content, _ := tag.Attr("content")
			data.OGTags[prop] = content
		}
	}

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var block map[string]any
		if err := json.Unmarshal([]byte(s.Text()), &block); err != nil {
			data.SchemaParseFailures++
			return
		}
		if schemaType, ok := block["@type"].(string); ok {
			data.SchemaTypes = append(data.SchemaTypes, schemaType)
		}
	})

	data.WordCount = len(strings.Fields(doc.Text()))

	return data
}

func headingTexts(doc *goquery.Document, level string, limit int) []string {
	var texts []string
	count := 0
	doc.Find(level).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		texts = append(texts, NormalizeSpace(s.Text()))
		count++
		return count < limit
	})
	return texts
}

// SEOScore reduces SEO metadata to a 0-100 score using a fixed-weight rubric.
// The rubric is a compatibility contract: identical metadata always yields the
// identical score.
func SEOScore(data SEOData) int {
	score := 0

	if data.Title != "" {
		if data.TitleLength >= 30 && data.TitleLength <= 60 {
			score += 15
		} else {
			score += 5
		}
	}
	if data.Description != "" {
		if data.DescriptionLength >= 120 && data.DescriptionLength <= 160 {
			score += 15
		} else {
			score += 5
		}
	}

	if data.HTTPS {
		score += 10
	}
	if data.MobileViewport {
		score += 10
	}
	if len(data.H1) > 0 {
		score += 10
	}
	if data.ImagesWithAlt > data.ImagesWithoutAlt {
		score += 10
	}
	if len(data.SchemaTypes) > 0 {
		score += 10
	}
	if len(data.OGTags) > 0 {
		score += 10
	}

	if data.WordCount >= 300 {
		score += 10
	}
	if data.InternalLinks > 0 {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}
