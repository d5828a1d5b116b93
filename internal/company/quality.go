package company

import (
	"sort"

	"leadscout/pkg/types"
)

// Field-presence weights of the quality rubric. The values are a
// compatibility contract with existing reports and must not drift.
const (
	weightEmails   = 4
	weightPhones   = 4
	weightServices = 3
	weightProducts = 2
	weightAbout    = 2
	weightClients  = 2
	weightAddress  = 2
	weightTeam     = 1

	weightPerPage = 0.5
)

// QualityScore blends field-presence indicators with a small per-page bonus
// to rank crawled companies.
func QualityScore(r types.CompanyRecord) float64 {
	score := 0.0
	if r.HasEmails() {
		score += weightEmails
	}
	if r.HasPhones() {
		score += weightPhones
	}
	if present(r.Services) {
		score += weightServices
	}
	if present(r.Products) {
		score += weightProducts
	}
	if present(r.About) {
		score += weightAbout
	}
	if present(r.Clients) {
		score += weightClients
	}
	if present(r.Address) {
		score += weightAddress
	}
	if present(r.TeamInfo) {
		score += weightTeam
	}
	score += weightPerPage * float64(r.PagesScraped)
	return score
}

// Rank orders records by quality score, best first. Ties keep their original
// relative order.
func Rank(records []types.CompanyRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].QualityScore > records[j].QualityScore
	})
}

func present(field string) bool {
	return field != "" && field != types.NotFound
}
