package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compass/internal/model"
	"compass/internal/problem"
)

func strPtr(s string) *string { return &s }

func TestResolveTarget(t *testing.T) {
	cases := []struct {
		name    string
		tag     model.RelationshipType
		fields  TargetFields
		want    model.TargetRef
		wantErr bool
	}{
		{
			name:   "edge tag with matching edge id",
			tag:    model.RelOpportunitySolution,
			fields: TargetFields{OpportunitySolutionID: strPtr("e1")},
			want:   model.TargetRef{Type: model.RelOpportunitySolution, ID: "e1"},
		},
		{
			name:   "node tag with node id",
			tag:    model.RelNode,
			fields: TargetFields{SolutionID: strPtr("n1")},
			want:   model.TargetRef{Type: model.RelNode, Node: model.NodeSolution, ID: "n1"},
		},
		{
			name:    "tag and id disagree",
			tag:     model.RelOutcomeOpportunity,
			fields:  TargetFields{SolutionAssumptionID: strPtr("e1")},
			wantErr: true,
		},
		{
			name:    "edge tag with node id",
			tag:     model.RelOutcomeOpportunity,
			fields:  TargetFields{OutcomeID: strPtr("n1")},
			wantErr: true,
		},
		{
			name:    "no id at all",
			tag:     model.RelNode,
			fields:  TargetFields{},
			wantErr: true,
		},
		{
			name: "two ids",
			tag:  model.RelNode,
			fields: TargetFields{
				OutcomeID:  strPtr("n1"),
				SolutionID: strPtr("n2"),
			},
			wantErr: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, issue := ResolveTarget("targetType", tc.tag, tc.fields)
			if tc.wantErr {
				require.NotNil(t, issue)
				assert.Equal(t, "target", issue.Path)
				return
			}
			require.Nil(t, issue)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveTargetPatch(t *testing.T) {
	tag := model.RelSolutionAssumption

	ref, issue := ResolveTargetPatch("targetType", &tag, TargetFields{SolutionAssumptionID: strPtr("e1")})
	require.Nil(t, issue)
	require.NotNil(t, ref)
	assert.Equal(t, "e1", ref.ID)

	// No target in the patch leaves it untouched.
	ref, issue = ResolveTargetPatch("targetType", nil, TargetFields{})
	assert.Nil(t, issue)
	assert.Nil(t, ref)

	// Id without its tag is rejected.
	_, issue = ResolveTargetPatch("targetType", nil, TargetFields{OutcomeID: strPtr("n1")})
	require.NotNil(t, issue)
	assert.Equal(t, "targetType", issue.Path)

	// Tag without an id is rejected.
	_, issue = ResolveTargetPatch("targetType", &tag, TargetFields{})
	assert.NotNil(t, issue)

	// More than one id is rejected.
	_, issue = ResolveTargetPatch("targetType", &tag, TargetFields{
		OutcomeID: strPtr("a"), SolutionID: strPtr("b"),
	})
	require.NotNil(t, issue)
	assert.Equal(t, "target", issue.Path)
}

func TestFlatTarget_RoundTrip(t *testing.T) {
	ref := model.TargetRef{Type: model.RelNode, Node: model.NodeOpportunity, ID: "n1"}
	flat := FlatTarget(ref)

	got, issue := ResolveTarget("targetType", model.RelNode, flat)
	require.Nil(t, issue)
	assert.Equal(t, ref, got)
}

func TestParseInsightCreate_Normalization(t *testing.T) {
	in, err := ParseInsightCreate(strings.NewReader(`{
		"experimentId": "exp1",
		"relationshipType": "NODE",
		"opportunityId": "n1",
		"validationState": "SUPPORTS",
		"statement": "  Users Want Weekly Digests  ",
		"evidenceSummary": "12 of 15 interviewees asked for it"
	}`))
	require.NoError(t, err)

	assert.Equal(t, []string{}, in.SourceTypes, "absent sourceTypes becomes empty, not null")
	assert.Equal(t, []string{}, in.Tags)
	require.NotNil(t, in.DedupeHash)
	assert.Equal(t, DeriveDedupeHash("users want weekly digests"), *in.DedupeHash)
	assert.Equal(t, model.TargetRef{Type: model.RelNode, Node: model.NodeOpportunity, ID: "n1"}, in.Target)
}

func TestParseInsightCreate_MisalignedTarget(t *testing.T) {
	_, err := ParseInsightCreate(strings.NewReader(`{
		"experimentId": "exp1",
		"relationshipType": "OUTCOME_OPPORTUNITY",
		"solutionId": "n1",
		"validationState": "SUPPORTS",
		"statement": "s",
		"evidenceSummary": "e"
	}`))

	p := problem.From(err)
	require.Len(t, p.Issues, 1)
	assert.Equal(t, "target", p.Issues[0].Path)
}

func TestDeriveDedupeHash_Stable(t *testing.T) {
	a := DeriveDedupeHash("  Same Statement ")
	b := DeriveDedupeHash("same statement")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}
