package reportfilter

import (
	"sort"
	"strings"

	"github.com/campuscare-app/CampusCare/app/models"
)

const (
	SortNewest = "newest"
	SortOldest = "oldest"

	// StatusAll matches every report regardless of status.
	StatusAll = "all"
)

// Options are the user-chosen list controls. Zero values mean "no filtering,
// newest first".
type Options struct {
	Search string
	Status string
	Sort   string
}

// Apply filters and sorts a fetched report collection in memory. It is a pure
// function: the input slice is never mutated, and identical inputs always
// yield identical output. The O(n) re-scan per call is fine at campus scale.
func Apply(reports []models.Report, opts Options) []models.Report {
	term := strings.ToLower(strings.TrimSpace(opts.Search))

	out := make([]models.Report, 0, len(reports))
	for _, r := range reports {
		if term != "" && !matchesSearch(r, term) {
			continue
		}
		if opts.Status != "" && opts.Status != StatusAll && r.Status != opts.Status {
			continue
		}
		out = append(out, r)
	}

	oldestFirst := opts.Sort == SortOldest
	sort.SliceStable(out, func(i, j int) bool {
		if oldestFirst {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out
}

// matchesSearch checks the term against title, description and location;
// any one match is enough.
func matchesSearch(r models.Report, term string) bool {
	return strings.Contains(strings.ToLower(r.Title), term) ||
		strings.Contains(strings.ToLower(r.Description), term) ||
		strings.Contains(strings.ToLower(r.Location), term)
}

// Aggregation holds the dashboard counts for chart rendering.
type Aggregation struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"by_status"`
	ByCategory map[string]int `json:"by_category"`
}

// Aggregate reduces a report collection into counts per status and category
// in a single pass. Every enumerated value appears in the result, so charts
// render zero buckets instead of dropping them.
func Aggregate(reports []models.Report) Aggregation {
	agg := Aggregation{
		Total: len(reports),
		ByStatus: map[string]int{
			models.StatusSubmitted:  0,
			models.StatusInProgress: 0,
			models.StatusResolved:   0,
		},
		ByCategory: map[string]int{
			models.CategoryParking:        0,
			models.CategoryInfrastructure: 0,
			models.CategoryElectrical:     0,
			models.CategorySanitation:     0,
			models.CategoryOther:          0,
		},
	}

	for _, r := range reports {
		agg.ByStatus[r.Status]++
		agg.ByCategory[r.Category]++
	}

	return agg
}
