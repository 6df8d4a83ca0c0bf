package service

import (
	"strings"
	"unicode/utf8"

	"github.com/devnexus/marketplace-console/internal/core/domain"
)

const (
	minTitleLen       = 3
	minDescriptionLen = 10
)

// Completion scores a draft against the eight review checks. Every check
// weighs the same; the percentage is exactly 100 only when all pass.
func Completion(d domain.DraftProject) domain.Completion {
	checks := []domain.CompletionCheck{
		{Name: "title", Passed: runeLen(d.BasicInfo.Title) >= minTitleLen},
		{Name: "description", Passed: runeLen(d.BasicInfo.Description) >= minDescriptionLen},
		{Name: "category", Passed: strings.TrimSpace(d.BasicInfo.Category) != ""},
		{Name: "platform_type", Passed: strings.TrimSpace(d.Platform.Type) != ""},
		{Name: "platform_url", Passed: hasPlatformURL(d.Platform)},
		{Name: "tags", Passed: len(d.BasicInfo.Tags) > 0},
		{Name: "media", Passed: d.Media.HasAssets()},
		{Name: "sale_terms", Passed: saleTermsComplete(d.Marketplace)},
	}

	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}
	return domain.Completion{Percent: passed * 100 / len(checks), Checks: checks}
}

func runeLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

func hasPlatformURL(p domain.Platform) bool {
	switch p.Type {
	case domain.PlatformWeb:
		return strings.TrimSpace(p.URLs.Website) != ""
	case domain.PlatformMobile:
		return strings.TrimSpace(p.URLs.AppStore) != "" || strings.TrimSpace(p.URLs.PlayStore) != ""
	default:
		return false
	}
}

// saleTermsComplete passes when the project is not for sale, otherwise it
// needs a positive price and a contact email.
func saleTermsComplete(m domain.Marketplace) bool {
	if !m.IsForSale {
		return true
	}
	return m.Price > 0 && strings.TrimSpace(m.Contact.Email) != ""
}
