package schema

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compass/internal/problem"
)

func TestParseOutcomeCreate(t *testing.T) {
	in, err := ParseOutcomeCreate(strings.NewReader(`{"name":"Raise retention","metricTarget":0.4}`))

	require.NoError(t, err)
	assert.Equal(t, "Raise retention", in.Name)
	require.NotNil(t, in.MetricTarget)
	assert.Equal(t, 0.4, *in.MetricTarget)
}

func TestParseOutcomeCreate_MissingName(t *testing.T) {
	_, err := ParseOutcomeCreate(strings.NewReader(`{}`))

	p := problem.From(err)
	assert.Equal(t, 422, p.Status)
	require.Len(t, p.Issues, 1)
	assert.Equal(t, "name", p.Issues[0].Path)
	assert.Equal(t, "is required", p.Issues[0].Message)
}

func TestParse_UnknownFieldRejected(t *testing.T) {
	_, err := ParseOutcomeCreate(strings.NewReader(`{"name":"x","bogus":1}`))

	p := problem.From(err)
	assert.Equal(t, 422, p.Status)
	require.Len(t, p.Issues, 1)
	assert.Equal(t, "bogus", p.Issues[0].Path)
}

func TestParseAssumptionCreate_BadCategory(t *testing.T) {
	_, err := ParseAssumptionCreate(strings.NewReader(`{"statement":"x","category":"VIBES"}`))

	p := problem.From(err)
	require.Len(t, p.Issues, 1)
	assert.Equal(t, "category", p.Issues[0].Path)
	assert.Contains(t, p.Issues[0].Message, "DESIRABILITY")
}

func TestParseOutcomeOpportunityCreate_ConfidenceRange(t *testing.T) {
	_, err := ParseOutcomeOpportunityCreate(strings.NewReader(
		`{"outcomeId":"a","opportunityId":"b","confidence":1.5}`))

	p := problem.From(err)
	require.Len(t, p.Issues, 1)
	assert.Equal(t, "confidence", p.Issues[0].Path)
}

func TestParseOpportunitySolutionBatch_Bounds(t *testing.T) {
	_, err := ParseOpportunitySolutionBatch(strings.NewReader(`{"items":[]}`))
	p := problem.From(err)
	assert.Equal(t, 422, p.Status)

	in, err := ParseOpportunitySolutionBatch(strings.NewReader(
		`{"items":[{"opportunityId":"o","solutionId":"s"}]}`))
	require.NoError(t, err)
	assert.Len(t, in.Items, 1)
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2026-03-01T10:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC), got)

	_, err = ParseDate("March 1st")
	assert.Error(t, err)
}
