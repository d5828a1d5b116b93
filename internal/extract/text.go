package extract

import (
	"fmt"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// phonePatterns are applied in order and their matches unioned. The patterns
// overlap: a local-format match can be a substring of an international match
// for the same number. The union is kept as-is; cross-pattern matches are not
// merged. This mirrors the known behaviour of the scoring heuristic and must
// not be "fixed" silently.
var phonePatterns = []*regexp.Regexp{
	// UAE prefix
	regexp.MustCompile(`\+971[\s-]?\d{1,2}[\s-]?\d{3}[\s-]?\d{4}`),
	// generic local
	regexp.MustCompile(`\b\d{2}[\s-]?\d{3}[\s-]?\d{4}\b`),
	// international
	regexp.MustCompile(`\+\d{1,3}[\s-]?\d{1,4}[\s-]?\d{1,4}[\s-]?\d{1,4}`),
}

// SocialPlatforms lists the platforms scanned for profile links, in the order
// they are reported.
var SocialPlatforms = []string{"facebook", "twitter", "linkedin", "instagram", "youtube"}

var socialPatterns = buildSocialPatterns()

func buildSocialPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(SocialPlatforms))
	for _, platform := range SocialPlatforms {
		patterns[platform] = regexp.MustCompile(fmt.Sprintf(`(?i)https?://(?:www\.)?%s\.com/[\w\-/]+`, platform))
	}
	return patterns
}

// Emails returns all email addresses found in text, deduplicated, in
// first-seen order.
func Emails(text string) []string {
	return dedupe(emailPattern.FindAllString(text, -1))
}

// Phones returns the union of matches from every regional phone pattern,
// deduplicated, in first-seen order.
func Phones(text string) []string {
	var matches []string
	for _, pattern := range phonePatterns {
		matches = append(matches, pattern.FindAllString(text, -1)...)
	}
	return dedupe(matches)
}

// SocialLinks returns the first profile URL found in text for each platform.
func SocialLinks(text string) map[string]string {
	found := make(map[string]string)
	for _, platform := range SocialPlatforms {
		if match := socialPatterns[platform].FindString(text); match != "" {
			found[platform] = match
		}
	}
	return found
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// NormalizeSpace collapses runs of whitespace into single spaces and trims the
// ends.
func NormalizeSpace(text string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}
