package domain

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// ContactLinks are the ready-to-open purchase request links for a listing.
type ContactLinks struct {
	Message  string `json:"message"`
	WhatsApp string `json:"whatsapp,omitempty"`
	Email    string `json:"email,omitempty"`
}

// BuildContactLinks prepares the buyer's first message to a seller. Links
// are only produced for the channels the seller published.
func BuildContactLinks(title string, c Contact) ContactLinks {
	msg := fmt.Sprintf("Hello, I'm interested in purchasing your project %q listed on DevNexus.", title)
	links := ContactLinks{Message: msg}

	if digits := phoneDigits(c.WhatsApp); digits != "" {
		links.WhatsApp = "https://wa.me/" + digits + "?text=" + url.QueryEscape(msg)
	}
	if email := strings.TrimSpace(c.Email); email != "" {
		q := url.Values{}
		q.Set("subject", "Purchase Request: "+title)
		q.Set("body", msg)
		// mailto wants %20, not '+'.
		links.Email = "mailto:" + email + "?" + strings.ReplaceAll(q.Encode(), "+", "%20")
	}
	return links
}

// wa.me takes the international number without '+', spaces or dashes.
func phoneDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
