package service

import (
	"context"

	"compass/internal/model"
	"compass/internal/store"
)

// PurgeNode is the maintenance hard-delete: it removes the node, every
// edge incident to it, and every attachment pointing at the node or at a
// removed edge, in one atomic scope. The regular delete path only
// deprecates; this exists for operator cleanup.
func (s *Service) PurgeNode(ctx context.Context, kind model.NodeKind, id string) error {
	err := s.store.RunAtomic(ctx, func(tx store.Tx) error {
		var removedEdges []model.TargetRef

		switch kind {
		case model.NodeOutcome:
			if _, err := getRecord(ctx, tx.Outcomes(), id, "Outcome"); err != nil {
				return err
			}
			edges, err := tx.OutcomeOpportunities().All(ctx)
			if err != nil {
				return err
			}
			for _, e := range edges {
				if e.OutcomeID != id {
					continue
				}
				if err := tx.OutcomeOpportunities().Delete(ctx, e.ID); err != nil {
					return err
				}
				removedEdges = append(removedEdges, model.TargetRef{Type: model.RelOutcomeOpportunity, ID: e.ID})
			}
			if err := tx.Outcomes().Delete(ctx, id); err != nil {
				return err
			}
		case model.NodeOpportunity:
			if _, err := getRecord(ctx, tx.Opportunities(), id, "Opportunity"); err != nil {
				return err
			}
			ooEdges, err := tx.OutcomeOpportunities().All(ctx)
			if err != nil {
				return err
			}
			for _, e := range ooEdges {
				if e.OpportunityID != id {
					continue
				}
				if err := tx.OutcomeOpportunities().Delete(ctx, e.ID); err != nil {
					return err
				}
				removedEdges = append(removedEdges, model.TargetRef{Type: model.RelOutcomeOpportunity, ID: e.ID})
			}
			osEdges, err := tx.OpportunitySolutions().All(ctx)
			if err != nil {
				return err
			}
			for _, e := range osEdges {
				if e.OpportunityID != id {
					continue
				}
				if err := tx.OpportunitySolutions().Delete(ctx, e.ID); err != nil {
					return err
				}
				removedEdges = append(removedEdges, model.TargetRef{Type: model.RelOpportunitySolution, ID: e.ID})
			}
			if err := tx.Opportunities().Delete(ctx, id); err != nil {
				return err
			}
		case model.NodeSolution:
			if _, err := getRecord(ctx, tx.Solutions(), id, "Solution"); err != nil {
				return err
			}
			osEdges, err := tx.OpportunitySolutions().All(ctx)
			if err != nil {
				return err
			}
			for _, e := range osEdges {
				if e.SolutionID != id {
					continue
				}
				if err := tx.OpportunitySolutions().Delete(ctx, e.ID); err != nil {
					return err
				}
				removedEdges = append(removedEdges, model.TargetRef{Type: model.RelOpportunitySolution, ID: e.ID})
			}
			saEdges, err := tx.SolutionAssumptions().All(ctx)
			if err != nil {
				return err
			}
			for _, e := range saEdges {
				if e.SolutionID != id {
					continue
				}
				if err := tx.SolutionAssumptions().Delete(ctx, e.ID); err != nil {
					return err
				}
				removedEdges = append(removedEdges, model.TargetRef{Type: model.RelSolutionAssumption, ID: e.ID})
			}
			if err := tx.Solutions().Delete(ctx, id); err != nil {
				return err
			}
		case model.NodeAssumption:
			if _, err := getRecord(ctx, tx.Assumptions(), id, "Assumption"); err != nil {
				return err
			}
			saEdges, err := tx.SolutionAssumptions().All(ctx)
			if err != nil {
				return err
			}
			for _, e := range saEdges {
				if e.AssumptionID != id {
					continue
				}
				if err := tx.SolutionAssumptions().Delete(ctx, e.ID); err != nil {
					return err
				}
				removedEdges = append(removedEdges, model.TargetRef{Type: model.RelSolutionAssumption, ID: e.ID})
			}
			if err := tx.Assumptions().Delete(ctx, id); err != nil {
				return err
			}
		}

		refs := append(removedEdges, model.TargetRef{Type: model.RelNode, Node: kind, ID: id})
		for _, ref := range refs {
			if err := deleteAttachmentsFor(ctx, tx, ref); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("node purged", "kind", string(kind), "id", id)
	return nil
}
