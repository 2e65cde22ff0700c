package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validReport() *Report {
	return &Report{
		Title:       "Broken light",
		Description: "Hallway light flickering",
		Category:    CategoryElectrical,
		Location:    "Building A, 2nd floor",
		Status:      StatusSubmitted,
		ReportedBy:  1,
	}
}

func TestReportValidate(t *testing.T) {
	require.NoError(t, validReport().Validate())

	tests := []struct {
		name   string
		mutate func(*Report)
	}{
		{"missing title", func(r *Report) { r.Title = "" }},
		{"missing description", func(r *Report) { r.Description = "" }},
		{"missing category", func(r *Report) { r.Category = "" }},
		{"missing location", func(r *Report) { r.Location = "" }},
		{"unknown category", func(r *Report) { r.Category = "plumbing" }},
		{"unknown status", func(r *Report) { r.Status = "withdrawn" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validReport()
			tt.mutate(r)
			assert.Error(t, r.Validate())
		})
	}
}

func TestReportBeforeCreateAssignsDefaults(t *testing.T) {
	r := &Report{}
	require.NoError(t, r.BeforeCreate(nil))
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, StatusSubmitted, r.Status)

	// explicit values survive
	r2 := &Report{ID: "fixed-id", Status: StatusInProgress}
	require.NoError(t, r2.BeforeCreate(nil))
	assert.Equal(t, "fixed-id", r2.ID)
	assert.Equal(t, StatusInProgress, r2.Status)
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(StatusSubmitted))
	assert.True(t, IsValidStatus(StatusInProgress))
	assert.True(t, IsValidStatus(StatusResolved))
	assert.False(t, IsValidStatus("withdrawn"))
	assert.False(t, IsValidStatus(""))
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{StatusSubmitted, StatusInProgress},
		{StatusSubmitted, StatusResolved},
		{StatusInProgress, StatusResolved},
		{StatusInProgress, StatusSubmitted},
		{StatusResolved, StatusInProgress},
	}
	for _, tr := range allowed {
		assert.True(t, CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	denied := [][2]string{
		{StatusSubmitted, StatusSubmitted},
		{StatusInProgress, StatusInProgress},
		{StatusResolved, StatusResolved},
		{StatusResolved, StatusSubmitted},
		{StatusSubmitted, "withdrawn"},
	}
	for _, tr := range denied {
		assert.False(t, CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}
}
