package service

import (
	"context"
	"sort"

	"compass/internal/model"
	"compass/internal/store"
)

// OutcomeTree folds the four node layers and three edge layers into the
// nested outcome projection. Deprecated nodes are filtered at every level
// unless includeDeprecated; pruning a node prunes its whole subtree.
// Children are ordered by edge creation time so the shape is stable
// across reads.
func (s *Service) OutcomeTree(ctx context.Context, includeDeprecated bool) (model.OutcomeTree, error) {
	outcomes, err := s.store.Outcomes().All(ctx)
	if err != nil {
		return model.OutcomeTree{}, err
	}
	opportunities, err := s.store.Opportunities().All(ctx)
	if err != nil {
		return model.OutcomeTree{}, err
	}
	solutions, err := s.store.Solutions().All(ctx)
	if err != nil {
		return model.OutcomeTree{}, err
	}
	assumptions, err := s.store.Assumptions().All(ctx)
	if err != nil {
		return model.OutcomeTree{}, err
	}
	ooEdges, err := s.store.OutcomeOpportunities().All(ctx)
	if err != nil {
		return model.OutcomeTree{}, err
	}
	osEdges, err := s.store.OpportunitySolutions().All(ctx)
	if err != nil {
		return model.OutcomeTree{}, err
	}
	saEdges, err := s.store.SolutionAssumptions().All(ctx)
	if err != nil {
		return model.OutcomeTree{}, err
	}

	include := func(status model.Status) bool {
		return includeDeprecated || status != model.StatusDeprecated
	}

	oppByID := make(map[string]model.Opportunity, len(opportunities))
	for _, o := range opportunities {
		oppByID[o.ID] = o
	}
	solByID := make(map[string]model.Solution, len(solutions))
	for _, sol := range solutions {
		solByID[sol.ID] = sol
	}
	asmByID := make(map[string]model.Assumption, len(assumptions))
	for _, a := range assumptions {
		asmByID[a.ID] = a
	}

	ooByOutcome := make(map[string][]model.OutcomeOpportunity)
	for _, e := range ooEdges {
		ooByOutcome[e.OutcomeID] = append(ooByOutcome[e.OutcomeID], e)
	}
	osByOpportunity := make(map[string][]model.OpportunitySolution)
	for _, e := range osEdges {
		osByOpportunity[e.OpportunityID] = append(osByOpportunity[e.OpportunityID], e)
	}
	saBySolution := make(map[string][]model.SolutionAssumption)
	for _, e := range saEdges {
		saBySolution[e.SolutionID] = append(saBySolution[e.SolutionID], e)
	}
	for _, edges := range ooByOutcome {
		sortEdgesAsc(edges)
	}
	for _, edges := range osByOpportunity {
		sortEdgesAsc(edges)
	}
	for _, edges := range saBySolution {
		sortEdgesAsc(edges)
	}

	tree := model.OutcomeTree{Data: []model.OutcomeTreeNode{}}
	totals := &tree.Meta.Totals

	// All returns newest first; the projection reads oldest first.
	ordered := make([]model.Outcome, len(outcomes))
	copy(ordered, outcomes)
	sort.Slice(ordered, func(i, j int) bool {
		if !ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
		}
		return ordered[i].ID < ordered[j].ID
	})

	for _, out := range ordered {
		if !include(out.Status) {
			continue
		}
		node := model.OutcomeTreeNode{
			ID:            out.ID,
			Name:          out.Name,
			Status:        out.Status,
			Opportunities: []model.OpportunityBranch{},
		}
		totals.Outcomes++
		for _, ooEdge := range ooByOutcome[out.ID] {
			opp, ok := oppByID[ooEdge.OpportunityID]
			if !ok || !include(opp.Status) {
				continue
			}
			branch := model.OpportunityBranch{
				EdgeID:     ooEdge.ID,
				Confidence: ooEdge.Confidence,
				Opportunity: model.OpportunitySummary{
					ID:          opp.ID,
					Description: opp.Description,
					Status:      opp.Status,
				},
				Solutions: []model.SolutionBranch{},
			}
			totals.Opportunities++
			for _, osEdge := range osByOpportunity[opp.ID] {
				sol, ok := solByID[osEdge.SolutionID]
				if !ok || !include(sol.Status) {
					continue
				}
				solBranch := model.SolutionBranch{
					EdgeID:     osEdge.ID,
					Confidence: osEdge.Confidence,
					Solution: model.SolutionSummary{
						ID:     sol.ID,
						Title:  sol.Title,
						Status: sol.Status,
					},
					Assumptions: []model.AssumptionBranch{},
				}
				totals.Solutions++
				for _, saEdge := range saBySolution[sol.ID] {
					asm, ok := asmByID[saEdge.AssumptionID]
					if !ok || !include(asm.Status) {
						continue
					}
					solBranch.Assumptions = append(solBranch.Assumptions, model.AssumptionBranch{
						EdgeID:     saEdge.ID,
						Confidence: saEdge.Confidence,
						Assumption: model.AssumptionSummary{
							ID:        asm.ID,
							Statement: asm.Statement,
							Status:    asm.Status,
						},
					})
					totals.Assumptions++
				}
				branch.Solutions = append(branch.Solutions, solBranch)
			}
			node.Opportunities = append(node.Opportunities, branch)
		}
		tree.Data = append(tree.Data, node)
	}
	return tree, nil
}

func sortEdgesAsc[T store.Record](edges []T) {
	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if !a.RecordCreatedAt().Equal(b.RecordCreatedAt()) {
			return a.RecordCreatedAt().Before(b.RecordCreatedAt())
		}
		return a.RecordID() < b.RecordID()
	})
}
