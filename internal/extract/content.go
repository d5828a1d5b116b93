package extract

import (
	"github.com/PuerkitoBio/goquery"
)

const (
	maxHeadingsPerLevel = 5
	maxParagraphs       = 10
	minParagraphLength  = 50
	maxLists            = 3
	maxItemsPerList     = 5
)

// PageContent holds the structured text pulled from one page.
type PageContent struct {
	Headings   []string
	Paragraphs []string
	ListItems  []string
}

// Content extracts headings (h1-h3, capped per level), substantial paragraphs,
// and list items from a parsed document.
func Content(doc *goquery.Document) PageContent {
	var content PageContent

	for _, level := range []string{"h1", "h2", "h3"} {
		count := 0
		doc.Find(level).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if text := NormalizeSpace(s.Text()); text != "" {
				content.Headings = append(content.Headings, text)
			}
			count++
			return count < maxHeadingsPerLevel
		})
	}

	doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := NormalizeSpace(s.Text())
		if len(text) > minParagraphLength {
			content.Paragraphs = append(content.Paragraphs, text)
		}
		return len(content.Paragraphs) < maxParagraphs
	})

	lists := 0
	doc.Find("ul").EachWithBreak(func(_ int, ul *goquery.Selection) bool {
		items := 0
		ul.Find("li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
			if text := NormalizeSpace(li.Text()); text != "" {
				content.ListItems = append(content.ListItems, text)
			}
			items++
			return items < maxItemsPerList
		})
		lists++
		return lists < maxLists
	})

	return content
}

// Sanitize drops script, style, and noscript nodes so text extraction does not
// pick up code or CSS. Raw text scans (emails, phones, social links) run on
// the unsanitized body instead.
func Sanitize(doc *goquery.Document) {
	doc.Find("script,style,noscript").Remove()
}
