package prd

import (
	"strings"
	"unicode"
)

// sectionCategories maps normalized section titles to their issue label
// category. Titles not listed here fall back to keyword matching.
var sectionCategories = map[string]string{
	"authentication":         "auth",
	"product inventory flow": "product",
	"checkout payments":      "checkout",
	"delivery system":        "delivery",
	"cms features":           "cms",
	"react query strategy":   "api",
	"webhooks automation":    "webhook",
}

var knownCategories = []string{
	"auth", "product", "checkout", "ui", "api",
	"database", "delivery", "cms", "webhook",
}

// Category derives the issue label category for a section title. Emojis
// and punctuation are stripped first, so "## 🛒 Checkout & Payments" and
// "## Checkout Payments" map the same way.
func Category(sectionTitle string) string {
	name := normalizeTitle(sectionTitle)

	if cat, ok := sectionCategories[name]; ok {
		return cat
	}
	for key, cat := range sectionCategories {
		if strings.Contains(name, key) {
			return cat
		}
	}
	for _, cat := range knownCategories {
		if strings.Contains(name, cat) {
			return cat
		}
	}

	if first, _, ok := strings.Cut(name, " "); ok && first != "" {
		return first
	}
	if name != "" {
		return name
	}
	return "general"
}

// normalizeTitle lowercases the title and drops everything that is not a
// letter, digit, space, or hyphen, collapsing runs of whitespace.
func normalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
