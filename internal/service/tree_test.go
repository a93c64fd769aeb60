package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compass/internal/model"
	"compass/internal/schema"
)

func TestOutcomeTree_Empty(t *testing.T) {
	svc := newTestService()

	tree, err := svc.OutcomeTree(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, tree.Data)
	assert.Equal(t, model.TreeTotals{}, tree.Meta.Totals)
}

func TestOutcomeTree_FiltersDeprecatedSubtrees(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	out, _ := svc.CreateOutcome(ctx, schema.OutcomeCreate{Name: "Grow activation"})
	opp, _ := svc.CreateOpportunity(ctx, schema.OpportunityCreate{Description: "Users drop off during setup"})
	sol, _ := svc.CreateSolution(ctx, schema.SolutionCreate{Title: "Guided setup wizard"})
	asm, _ := svc.CreateAssumption(ctx, schema.AssumptionCreate{
		Statement: "Users will finish a 3-step wizard", Category: model.CategoryUsability,
	})

	_, err := svc.CreateOutcomeOpportunity(ctx, schema.OutcomeOpportunityCreate{
		OutcomeID: out.ID, OpportunityID: opp.ID, Confidence: f64Ptr(0.4),
	})
	require.NoError(t, err)
	_, err = svc.CreateOpportunitySolution(ctx, schema.OpportunitySolutionCreate{
		OpportunityID: opp.ID, SolutionID: sol.ID,
	})
	require.NoError(t, err)
	_, err = svc.CreateSolutionAssumption(ctx, schema.SolutionAssumptionCreate{
		SolutionID: sol.ID, AssumptionID: asm.ID,
	})
	require.NoError(t, err)

	// Deprecating the solution prunes it and everything below it.
	_, err = svc.DeprecateSolution(ctx, sol.ID, "")
	require.NoError(t, err)

	tree, err := svc.OutcomeTree(ctx, false)
	require.NoError(t, err)

	assert.Equal(t, model.TreeTotals{Outcomes: 1, Opportunities: 1, Solutions: 0, Assumptions: 0}, tree.Meta.Totals)
	require.Len(t, tree.Data, 1)
	require.Len(t, tree.Data[0].Opportunities, 1)

	branch := tree.Data[0].Opportunities[0]
	require.NotNil(t, branch.Confidence)
	assert.Equal(t, 0.4, *branch.Confidence)
	assert.Empty(t, branch.Solutions)

	// includeDeprecated restores the full chain.
	full, err := svc.OutcomeTree(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, model.TreeTotals{Outcomes: 1, Opportunities: 1, Solutions: 1, Assumptions: 1}, full.Meta.Totals)
	require.Len(t, full.Data[0].Opportunities[0].Solutions, 1)
	assert.Len(t, full.Data[0].Opportunities[0].Solutions[0].Assumptions, 1)
}

func TestOutcomeTree_DeprecatedOutcomePrunesEverything(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	out, _ := svc.CreateOutcome(ctx, schema.OutcomeCreate{Name: "o"})
	opp, _ := svc.CreateOpportunity(ctx, schema.OpportunityCreate{Description: "op"})
	_, err := svc.CreateOutcomeOpportunity(ctx, schema.OutcomeOpportunityCreate{
		OutcomeID: out.ID, OpportunityID: opp.ID,
	})
	require.NoError(t, err)
	_, err = svc.DeprecateOutcome(ctx, out.ID, "")
	require.NoError(t, err)

	tree, err := svc.OutcomeTree(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, tree.Data)
	assert.Equal(t, model.TreeTotals{}, tree.Meta.Totals)
}

func TestOutcomeTree_SharedOpportunityCountedPerBranch(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	o1, _ := svc.CreateOutcome(ctx, schema.OutcomeCreate{Name: "o1"})
	o2, _ := svc.CreateOutcome(ctx, schema.OutcomeCreate{Name: "o2"})
	opp, _ := svc.CreateOpportunity(ctx, schema.OpportunityCreate{Description: "shared"})

	for _, outID := range []string{o1.ID, o2.ID} {
		_, err := svc.CreateOutcomeOpportunity(ctx, schema.OutcomeOpportunityCreate{
			OutcomeID: outID, OpportunityID: opp.ID,
		})
		require.NoError(t, err)
	}

	tree, err := svc.OutcomeTree(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 2, tree.Meta.Totals.Outcomes)
	assert.Equal(t, 2, tree.Meta.Totals.Opportunities, "each edge contributes a branch")
}

func TestOutcomeTree_ChildOrderIsStable(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	out, _ := svc.CreateOutcome(ctx, schema.OutcomeCreate{Name: "o"})
	var oppIDs []string
	for _, desc := range []string{"first", "second", "third"} {
		opp, err := svc.CreateOpportunity(ctx, schema.OpportunityCreate{Description: desc})
		require.NoError(t, err)
		_, err = svc.CreateOutcomeOpportunity(ctx, schema.OutcomeOpportunityCreate{
			OutcomeID: out.ID, OpportunityID: opp.ID,
		})
		require.NoError(t, err)
		oppIDs = append(oppIDs, opp.ID)
	}

	tree, err := svc.OutcomeTree(ctx, false)
	require.NoError(t, err)
	require.Len(t, tree.Data, 1)
	require.Len(t, tree.Data[0].Opportunities, 3)
	for i, branch := range tree.Data[0].Opportunities {
		assert.Equal(t, oppIDs[i], branch.Opportunity.ID, "children follow edge creation order")
	}
}
