package reportfilter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscare-app/CampusCare/app/models"
)

func sampleReports() []models.Report {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return []models.Report{
		{
			ID: "r1", Title: "Broken light", Description: "Hallway light flickering",
			Location: "Building A, 2nd floor", Category: models.CategoryElectrical,
			Status: models.StatusSubmitted, CreatedAt: base,
		},
		{
			ID: "r2", Title: "Parking gate stuck", Description: "Gate will not open",
			Location: "North lot", Category: models.CategoryParking,
			Status: models.StatusInProgress, CreatedAt: base.Add(1 * time.Hour),
		},
		{
			ID: "r3", Title: "Overflowing bin", Description: "Bin near the LIGHTHOUSE statue",
			Location: "Main quad", Category: models.CategorySanitation,
			Status: models.StatusResolved, CreatedAt: base.Add(2 * time.Hour),
		},
	}
}

func ids(reports []models.Report) []string {
	out := make([]string, 0, len(reports))
	for _, r := range reports {
		out = append(out, r.ID)
	}
	return out
}

func TestApplySearchMatchesAnyField(t *testing.T) {
	reports := sampleReports()

	// title match, case-insensitive, status "all" short-circuits
	got := Apply(reports, Options{Search: "light", Status: StatusAll})
	assert.Equal(t, []string{"r3", "r1"}, ids(got)) // description of r3 matches too

	got = Apply(reports, Options{Search: "north lot"})
	assert.Equal(t, []string{"r2"}, ids(got))

	got = Apply(reports, Options{Search: "flickering"})
	assert.Equal(t, []string{"r1"}, ids(got))

	got = Apply(reports, Options{Search: "elevator"})
	assert.Empty(t, got)
}

func TestApplySearchScenario(t *testing.T) {
	reports := []models.Report{
		{ID: "a", Title: "Broken light", Status: models.StatusSubmitted},
		{ID: "b", Title: "Parking gate stuck", Status: models.StatusSubmitted},
	}

	got := Apply(reports, Options{Search: "light", Status: StatusAll})
	require.Len(t, got, 1)
	assert.Equal(t, "Broken light", got[0].Title)
}

func TestApplyStatusFilter(t *testing.T) {
	reports := sampleReports()

	got := Apply(reports, Options{Status: models.StatusInProgress})
	assert.Equal(t, []string{"r2"}, ids(got))

	got = Apply(reports, Options{Status: StatusAll})
	assert.Len(t, got, 3)

	got = Apply(reports, Options{})
	assert.Len(t, got, 3)
}

func TestApplySortOrder(t *testing.T) {
	reports := sampleReports()

	newest := Apply(reports, Options{})
	assert.Equal(t, []string{"r3", "r2", "r1"}, ids(newest))

	oldest := Apply(reports, Options{Sort: SortOldest})
	assert.Equal(t, []string{"r1", "r2", "r3"}, ids(oldest))
}

func TestApplyIsPureAndIdempotent(t *testing.T) {
	reports := sampleReports()
	opts := Options{Search: "light", Status: StatusAll, Sort: SortOldest}

	first := Apply(reports, opts)
	second := Apply(reports, opts)
	assert.Equal(t, first, second)

	// input order untouched
	assert.Equal(t, []string{"r1", "r2", "r3"}, ids(reports))
}

func TestAggregate(t *testing.T) {
	agg := Aggregate(sampleReports())

	assert.Equal(t, 3, agg.Total)
	assert.Equal(t, 1, agg.ByStatus[models.StatusSubmitted])
	assert.Equal(t, 1, agg.ByStatus[models.StatusInProgress])
	assert.Equal(t, 1, agg.ByStatus[models.StatusResolved])
	assert.Equal(t, 1, agg.ByCategory[models.CategoryElectrical])
	assert.Equal(t, 1, agg.ByCategory[models.CategoryParking])
	assert.Equal(t, 1, agg.ByCategory[models.CategorySanitation])

	// zero buckets stay present for chart rendering
	count, ok := agg.ByCategory[models.CategoryInfrastructure]
	assert.True(t, ok)
	assert.Zero(t, count)
}

func TestAggregateEmpty(t *testing.T) {
	agg := Aggregate(nil)
	assert.Zero(t, agg.Total)
	assert.Len(t, agg.ByStatus, 3)
	assert.Len(t, agg.ByCategory, 5)
}
