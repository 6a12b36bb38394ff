// Package filter derives filtered views of investment records. Records in,
// records out: no side effects, no mutation of the input, original order
// preserved.
package filter

import (
	"strings"

	"github.com/rsaniceto14/investctl/internal/model"
)

// Filters holds the active filter inputs. The zero value matches everything.
// Filters are view state only; they are never sent to the remote store.
type Filters struct {
	Type   string // exact category match, empty means any
	Search string // case-insensitive substring of the name, empty means any
}

// Apply returns the records matching f in their original order.
func Apply(records []model.Investment, f Filters) []model.Investment {
	filtered := make([]model.Investment, 0, len(records))
	for _, rec := range records {
		if match(rec, f) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

func match(rec model.Investment, f Filters) bool {
	if f.Type != "" && rec.Type != f.Type {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(rec.Name), strings.ToLower(f.Search)) {
		return false
	}
	return true
}
