package service

import (
	"context"
	"errors"

	"compass/internal/model"
	"compass/internal/problem"
	"compass/internal/schema"
	"compass/internal/store"
)

func (s *Service) CreateOutcomeOpportunity(ctx context.Context, in schema.OutcomeOpportunityCreate) (model.OutcomeOpportunity, error) {
	if _, err := getRecord(ctx, s.store.Outcomes(), in.OutcomeID, "Outcome"); err != nil {
		return model.OutcomeOpportunity{}, err
	}
	if _, err := getRecord(ctx, s.store.Opportunities(), in.OpportunityID, "Opportunity"); err != nil {
		return model.OutcomeOpportunity{}, err
	}
	now := s.now()
	rec := model.OutcomeOpportunity{
		ID:            s.newID(),
		OutcomeID:     in.OutcomeID,
		OpportunityID: in.OpportunityID,
		Confidence:    in.Confidence,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.OutcomeOpportunities().Create(ctx, rec); err != nil {
		var dup *store.DuplicateError
		if errors.As(err, &dup) {
			return model.OutcomeOpportunity{}, problem.Conflict("Edge already exists", problem.EdgePair{
				OutcomeID:     in.OutcomeID,
				OpportunityID: in.OpportunityID,
			})
		}
		return model.OutcomeOpportunity{}, err
	}
	s.log.Info("edge created", "kind", "outcome-opportunity", "id", rec.ID)
	return rec, nil
}

func (s *Service) CreateOpportunitySolution(ctx context.Context, in schema.OpportunitySolutionCreate) (model.OpportunitySolution, error) {
	if _, err := getRecord(ctx, s.store.Opportunities(), in.OpportunityID, "Opportunity"); err != nil {
		return model.OpportunitySolution{}, err
	}
	if _, err := getRecord(ctx, s.store.Solutions(), in.SolutionID, "Solution"); err != nil {
		return model.OpportunitySolution{}, err
	}
	now := s.now()
	rec := model.OpportunitySolution{
		ID:            s.newID(),
		OpportunityID: in.OpportunityID,
		SolutionID:    in.SolutionID,
		Confidence:    in.Confidence,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.OpportunitySolutions().Create(ctx, rec); err != nil {
		var dup *store.DuplicateError
		if errors.As(err, &dup) {
			return model.OpportunitySolution{}, problem.Conflict("Edge already exists", problem.EdgePair{
				OpportunityID: in.OpportunityID,
				SolutionID:    in.SolutionID,
			})
		}
		return model.OpportunitySolution{}, err
	}
	s.log.Info("edge created", "kind", "opportunity-solution", "id", rec.ID)
	return rec, nil
}

func (s *Service) CreateSolutionAssumption(ctx context.Context, in schema.SolutionAssumptionCreate) (model.SolutionAssumption, error) {
	if _, err := getRecord(ctx, s.store.Solutions(), in.SolutionID, "Solution"); err != nil {
		return model.SolutionAssumption{}, err
	}
	if _, err := getRecord(ctx, s.store.Assumptions(), in.AssumptionID, "Assumption"); err != nil {
		return model.SolutionAssumption{}, err
	}
	now := s.now()
	rec := model.SolutionAssumption{
		ID:           s.newID(),
		SolutionID:   in.SolutionID,
		AssumptionID: in.AssumptionID,
		Confidence:   in.Confidence,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.SolutionAssumptions().Create(ctx, rec); err != nil {
		var dup *store.DuplicateError
		if errors.As(err, &dup) {
			return model.SolutionAssumption{}, problem.Conflict("Edge already exists", problem.EdgePair{
				SolutionID:   in.SolutionID,
				AssumptionID: in.AssumptionID,
			})
		}
		return model.SolutionAssumption{}, err
	}
	s.log.Info("edge created", "kind", "solution-assumption", "id", rec.ID)
	return rec, nil
}

// BatchCreateOpportunitySolution inserts up to 100 edges all-or-nothing.
// Duplicates inside the payload and collisions with stored edges are both
// rejected up front with the complete list of conflicting pairs, so the
// caller can fix the whole batch in one pass.
func (s *Service) BatchCreateOpportunitySolution(ctx context.Context, in schema.OpportunitySolutionBatch) ([]model.OpportunitySolution, error) {
	seen := make(map[string]bool, len(in.Items))
	var dupes []problem.EdgePair
	for _, item := range in.Items {
		key := item.OpportunityID + ":" + item.SolutionID
		if seen[key] {
			dupes = append(dupes, problem.EdgePair{
				OpportunityID: item.OpportunityID,
				SolutionID:    item.SolutionID,
			})
		}
		seen[key] = true
	}
	if len(dupes) > 0 {
		return nil, problem.Conflict("Duplicate opportunity-solution pairs in request", dupes...)
	}

	for _, item := range in.Items {
		if _, err := getRecord(ctx, s.store.Opportunities(), item.OpportunityID, "Opportunity"); err != nil {
			return nil, err
		}
		if _, err := getRecord(ctx, s.store.Solutions(), item.SolutionID, "Solution"); err != nil {
			return nil, err
		}
	}

	existing, err := s.store.OpportunitySolutions().All(ctx)
	if err != nil {
		return nil, err
	}
	stored := make(map[string]bool, len(existing))
	for _, e := range existing {
		stored[e.PairKey()] = true
	}
	var conflicts []problem.EdgePair
	for _, item := range in.Items {
		if stored[item.OpportunityID+":"+item.SolutionID] {
			conflicts = append(conflicts, problem.EdgePair{
				OpportunityID: item.OpportunityID,
				SolutionID:    item.SolutionID,
			})
		}
	}
	if len(conflicts) > 0 {
		return nil, problem.Conflict("One or more edges already exist", conflicts...)
	}

	now := s.now()
	created := make([]model.OpportunitySolution, 0, len(in.Items))
	err = s.store.RunAtomic(ctx, func(tx store.Tx) error {
		for _, item := range in.Items {
			rec := model.OpportunitySolution{
				ID:            s.newID(),
				OpportunityID: item.OpportunityID,
				SolutionID:    item.SolutionID,
				Confidence:    item.Confidence,
				Notes:         item.Notes,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := tx.OpportunitySolutions().Create(ctx, rec); err != nil {
				var dup *store.DuplicateError
				if errors.As(err, &dup) {
					return problem.Conflict("One or more edges already exist", problem.EdgePair{
						OpportunityID: item.OpportunityID,
						SolutionID:    item.SolutionID,
					})
				}
				return err
			}
			created = append(created, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("edges created", "kind", "opportunity-solution", "count", len(created))
	return created, nil
}

// DeleteOutcomeOpportunity removes the edge and, atomically, every
// attachment pointed at it.
func (s *Service) DeleteOutcomeOpportunity(ctx context.Context, id string) error {
	return s.store.RunAtomic(ctx, func(tx store.Tx) error {
		if _, err := getRecord(ctx, tx.OutcomeOpportunities(), id, "Edge"); err != nil {
			return err
		}
		if err := tx.OutcomeOpportunities().Delete(ctx, id); err != nil {
			return err
		}
		return deleteAttachmentsFor(ctx, tx, model.TargetRef{Type: model.RelOutcomeOpportunity, ID: id})
	})
}

func (s *Service) DeleteOpportunitySolution(ctx context.Context, id string) error {
	return s.store.RunAtomic(ctx, func(tx store.Tx) error {
		if _, err := getRecord(ctx, tx.OpportunitySolutions(), id, "Edge"); err != nil {
			return err
		}
		if err := tx.OpportunitySolutions().Delete(ctx, id); err != nil {
			return err
		}
		return deleteAttachmentsFor(ctx, tx, model.TargetRef{Type: model.RelOpportunitySolution, ID: id})
	})
}

func (s *Service) DeleteSolutionAssumption(ctx context.Context, id string) error {
	return s.store.RunAtomic(ctx, func(tx store.Tx) error {
		if _, err := getRecord(ctx, tx.SolutionAssumptions(), id, "Edge"); err != nil {
			return err
		}
		if err := tx.SolutionAssumptions().Delete(ctx, id); err != nil {
			return err
		}
		return deleteAttachmentsFor(ctx, tx, model.TargetRef{Type: model.RelSolutionAssumption, ID: id})
	})
}

// deleteAttachmentsFor drops hypotheses and insights whose target is the
// given reference. Runs inside the caller's transaction scope.
func deleteAttachmentsFor(ctx context.Context, tx store.Tx, ref model.TargetRef) error {
	hyps, err := tx.Hypotheses().All(ctx)
	if err != nil {
		return err
	}
	for _, h := range hyps {
		if h.Target == ref {
			if err := tx.Hypotheses().Delete(ctx, h.ID); err != nil {
				return err
			}
		}
	}
	ins, err := tx.Insights().All(ctx)
	if err != nil {
		return err
	}
	for _, i := range ins {
		if i.Target == ref {
			if err := tx.Insights().Delete(ctx, i.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
