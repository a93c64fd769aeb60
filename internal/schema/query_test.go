package schema

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compass/internal/page"
	"compass/internal/problem"
)

func TestParseListQuery_Defaults(t *testing.T) {
	q, err := ParseListQuery(url.Values{})

	require.NoError(t, err)
	assert.Equal(t, page.DefaultTake, q.Take)
	assert.Equal(t, "", q.Cursor)
	assert.False(t, q.Filter.IncludeDeprecated)
}

func TestParseListQuery_Take(t *testing.T) {
	q, err := ParseListQuery(url.Values{"take": {"50"}})
	require.NoError(t, err)
	assert.Equal(t, 50, q.Take)

	for _, bad := range []string{"0", "101", "-3", "lots"} {
		_, err := ParseListQuery(url.Values{"take": {bad}})
		p := problem.From(err)
		assert.Equal(t, 422, p.Status, "take=%s", bad)
	}
}

func TestParseListQuery_DateRange(t *testing.T) {
	q, err := ParseListQuery(url.Values{"from": {"2026-01-01"}, "to": {"2026-02-01"}})
	require.NoError(t, err)
	require.NotNil(t, q.Filter.From)
	require.NotNil(t, q.Filter.To)
	assert.True(t, q.Filter.From.Before(*q.Filter.To))

	_, err = ParseListQuery(url.Values{"from": {"yesterday"}})
	assert.Error(t, err)
}

func TestListQuery_Status(t *testing.T) {
	q, _ := ParseListQuery(url.Values{})
	require.NoError(t, q.Status(url.Values{"status": {"deprecated"}}))
	assert.Equal(t, "deprecated", q.Filter.Status)

	assert.Error(t, q.Status(url.Values{"status": {"zombie"}}))
}

func TestListQuery_Enum(t *testing.T) {
	q, _ := ParseListQuery(url.Values{})
	require.NoError(t, q.Enum(url.Values{"validationState": {"SUPPORTS"}}, "validationState",
		"SUPPORTS", "WEAKENS", "FALSIFIES", "INCONCLUSIVE"))
	assert.Equal(t, "SUPPORTS", q.Filter.Where["validationState"])

	assert.Error(t, q.Enum(url.Values{"validationState": {"MAYBE"}}, "validationState",
		"SUPPORTS", "WEAKENS", "FALSIFIES", "INCONCLUSIVE"))
}
