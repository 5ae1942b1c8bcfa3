package filter

import (
	"slices"
	"strings"

	"github.com/matzehuels/certpaths/pkg/catalog"
)

// DefaultSuggestLimit caps search suggestions.
const DefaultSuggestLimit = 8

// Choices are the selectable filter values for one vendor. Each list starts
// with All followed by the distinct values in ascending order.
type Choices struct {
	Levels  []string `json:"levels"`
	Domains []string `json:"domains"`
}

// Options derives the level and domain choices from a vendor's certs.
// Levels use the display name; empty domains are skipped.
func Options(certs []catalog.Cert) Choices {
	levels := make([]string, 0, len(certs))
	domains := make([]string, 0, len(certs))
	for i := range certs {
		levels = append(levels, certs[i].DisplayLevel())
		if d := normDomain(certs[i].Domain); d != "" {
			domains = append(domains, d)
		}
	}
	return Choices{Levels: withAll(levels), Domains: withAll(domains)}
}

func withAll(values []string) []string {
	slices.Sort(values)
	values = slices.Compact(values)
	return append([]string{All}, values...)
}

// Suggest returns up to limit certs whose text matches query, in input
// order. A blank query yields no suggestions. limit <= 0 uses
// DefaultSuggestLimit.
func Suggest(certs []catalog.Cert, query string, limit int) []catalog.Cert {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	var out []catalog.Cert
	for i := range certs {
		if matchesText(&certs[i], query) {
			out = append(out, certs[i])
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// Count returns how many certs match query. A blank query counts all.
func Count(certs []catalog.Cert, query string) int {
	n := 0
	for i := range certs {
		if matchesText(&certs[i], query) {
			n++
		}
	}
	return n
}
