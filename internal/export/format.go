// Package export renders search results as a terminal table or a
// spreadsheet registry.
package export

import (
	"strconv"
	"strings"

	"github.com/sells-group/geobiz/internal/model"
)

// WebsiteURL returns website as an absolute URL, assuming https when the
// scheme is missing. Empty stays empty.
func WebsiteURL(website string) string {
	website = strings.TrimSpace(website)
	if website == "" || strings.HasPrefix(website, "http") {
		return website
	}
	return "https://" + website
}

// FormatRating renders a rating, or "N/A" for the zero value.
func FormatRating(r float64) string {
	if r == 0 {
		return "N/A"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// FormatContact renders "Name (Role)", or "" when there is no contact.
func FormatContact(c *model.ContactPerson) string {
	if c == nil || c.Name == "" {
		return ""
	}
	if c.Role == "" {
		return c.Name
	}
	return c.Name + " (" + c.Role + ")"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
