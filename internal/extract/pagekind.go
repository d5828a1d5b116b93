package extract

import "strings"

// PageKind classifies a page by URL keyword. It decides which merge rules the
// accumulator applies to the page's content.
type PageKind int

const (
	KindOther PageKind = iota
	KindHome
	KindAbout
	KindServices
	KindProducts
	KindContact
	KindClients
	KindTeam
)

var kindNames = map[PageKind]string{
	KindOther:    "other",
	KindHome:     "home",
	KindAbout:    "about",
	KindServices: "services",
	KindProducts: "products",
	KindContact:  "contact",
	KindClients:  "clients",
	KindTeam:     "team",
}

func (k PageKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "other"
}

// Classify maps a URL to a single PageKind, computed once per URL. When a URL
// matches several keyword groups the earlier group wins. The first page of a
// crawl defaults to KindHome so the home-page rules (company name, about text)
// still apply to keyword-less seed URLs.
func Classify(rawURL string, firstPage bool) PageKind {
	lower := strings.ToLower(rawURL)

	switch {
	case strings.Contains(lower, "about"):
		return KindAbout
	case strings.Contains(lower, "service"), strings.Contains(lower, "solution"):
		return KindServices
	case strings.Contains(lower, "product"):
		return KindProducts
	case strings.Contains(lower, "contact"):
		return KindContact
	case strings.Contains(lower, "client"), strings.Contains(lower, "portfolio"):
		return KindClients
	case strings.Contains(lower, "team"), strings.Contains(lower, "people"):
		return KindTeam
	case firstPage:
		return KindHome
	default:
		return KindOther
	}
}
