package service

import (
	"context"

	"compass/internal/model"
	"compass/internal/page"
	"compass/internal/schema"
)

func (s *Service) CreateOutcome(ctx context.Context, in schema.OutcomeCreate) (model.Outcome, error) {
	now := s.now()
	rec := model.Outcome{
		ID:             s.newID(),
		Name:           in.Name,
		Description:    in.Description,
		MetricName:     in.MetricName,
		MetricBaseline: in.MetricBaseline,
		MetricTarget:   in.MetricTarget,
		OwnerID:        in.OwnerID,
		Status:         model.StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.Outcomes().Create(ctx, rec); err != nil {
		return model.Outcome{}, err
	}
	s.log.Info("outcome created", "id", rec.ID)
	return rec, nil
}

func (s *Service) GetOutcome(ctx context.Context, id string) (model.Outcome, error) {
	return getRecord(ctx, s.store.Outcomes(), id, "Outcome")
}

func (s *Service) UpdateOutcome(ctx context.Context, id, token string, in schema.OutcomeUpdate) (model.Outcome, error) {
	rec, err := s.GetOutcome(ctx, id)
	if err != nil {
		return model.Outcome{}, err
	}
	if err := checkToken(token, rec.UpdatedAt); err != nil {
		return model.Outcome{}, err
	}
	if in.Name != nil {
		rec.Name = *in.Name
	}
	if in.Description != nil {
		rec.Description = in.Description
	}
	if in.MetricName != nil {
		rec.MetricName = in.MetricName
	}
	if in.MetricBaseline != nil {
		rec.MetricBaseline = in.MetricBaseline
	}
	if in.MetricTarget != nil {
		rec.MetricTarget = in.MetricTarget
	}
	if in.OwnerID != nil {
		rec.OwnerID = in.OwnerID
	}
	rec.UpdatedAt = s.now()
	if err := s.store.Outcomes().Update(ctx, rec); err != nil {
		return model.Outcome{}, err
	}
	return rec, nil
}

// DeprecateOutcome soft-deletes: the node stays in place with status
// deprecated so history and attachments survive.
func (s *Service) DeprecateOutcome(ctx context.Context, id, token string) (model.Outcome, error) {
	rec, err := s.GetOutcome(ctx, id)
	if err != nil {
		return model.Outcome{}, err
	}
	if err := checkToken(token, rec.UpdatedAt); err != nil {
		return model.Outcome{}, err
	}
	rec.Status = model.StatusDeprecated
	rec.UpdatedAt = s.now()
	if err := s.store.Outcomes().Update(ctx, rec); err != nil {
		return model.Outcome{}, err
	}
	s.log.Info("outcome deprecated", "id", rec.ID)
	return rec, nil
}

func (s *Service) ListOutcomes(ctx context.Context, q schema.ListQuery) (page.Result[model.Outcome], error) {
	return listRecords(ctx, s.store.Outcomes(), q)
}

func (s *Service) CreateOpportunity(ctx context.Context, in schema.OpportunityCreate) (model.Opportunity, error) {
	now := s.now()
	rec := model.Opportunity{
		ID:          s.newID(),
		Description: in.Description,
		Segment:     in.Segment,
		Severity:    in.Severity,
		Status:      model.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Status != nil {
		rec.Status = *in.Status
	}
	if err := s.store.Opportunities().Create(ctx, rec); err != nil {
		return model.Opportunity{}, err
	}
	s.log.Info("opportunity created", "id", rec.ID)
	return rec, nil
}

func (s *Service) GetOpportunity(ctx context.Context, id string) (model.Opportunity, error) {
	return getRecord(ctx, s.store.Opportunities(), id, "Opportunity")
}

func (s *Service) UpdateOpportunity(ctx context.Context, id, token string, in schema.OpportunityUpdate) (model.Opportunity, error) {
	rec, err := s.GetOpportunity(ctx, id)
	if err != nil {
		return model.Opportunity{}, err
	}
	if err := checkToken(token, rec.UpdatedAt); err != nil {
		return model.Opportunity{}, err
	}
	if in.Description != nil {
		rec.Description = *in.Description
	}
	if in.Segment != nil {
		rec.Segment = in.Segment
	}
	if in.Severity != nil {
		rec.Severity = in.Severity
	}
	if in.Status != nil {
		rec.Status = *in.Status
	}
	rec.UpdatedAt = s.now()
	if err := s.store.Opportunities().Update(ctx, rec); err != nil {
		return model.Opportunity{}, err
	}
	return rec, nil
}

func (s *Service) DeprecateOpportunity(ctx context.Context, id, token string) (model.Opportunity, error) {
	rec, err := s.GetOpportunity(ctx, id)
	if err != nil {
		return model.Opportunity{}, err
	}
	if err := checkToken(token, rec.UpdatedAt); err != nil {
		return model.Opportunity{}, err
	}
	rec.Status = model.StatusDeprecated
	rec.UpdatedAt = s.now()
	if err := s.store.Opportunities().Update(ctx, rec); err != nil {
		return model.Opportunity{}, err
	}
	s.log.Info("opportunity deprecated", "id", rec.ID)
	return rec, nil
}

func (s *Service) ListOpportunities(ctx context.Context, q schema.ListQuery) (page.Result[model.Opportunity], error) {
	return listRecords(ctx, s.store.Opportunities(), q)
}

func (s *Service) CreateSolution(ctx context.Context, in schema.SolutionCreate) (model.Solution, error) {
	now := s.now()
	rec := model.Solution{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		Status:      model.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Status != nil {
		rec.Status = *in.Status
	}
	if err := s.store.Solutions().Create(ctx, rec); err != nil {
		return model.Solution{}, err
	}
	s.log.Info("solution created", "id", rec.ID)
	return rec, nil
}

func (s *Service) GetSolution(ctx context.Context, id string) (model.Solution, error) {
	return getRecord(ctx, s.store.Solutions(), id, "Solution")
}

func (s *Service) UpdateSolution(ctx context.Context, id, token string, in schema.SolutionUpdate) (model.Solution, error) {
	rec, err := s.GetSolution(ctx, id)
	if err != nil {
		return model.Solution{}, err
	}
	if err := checkToken(token, rec.UpdatedAt); err != nil {
		return model.Solution{}, err
	}
	if in.Title != nil {
		rec.Title = *in.Title
	}
	if in.Description != nil {
		rec.Description = in.Description
	}
	if in.Status != nil {
		rec.Status = *in.Status
	}
	rec.UpdatedAt = s.now()
	if err := s.store.Solutions().Update(ctx, rec); err != nil {
		return model.Solution{}, err
	}
	return rec, nil
}

func (s *Service) DeprecateSolution(ctx context.Context, id, token string) (model.Solution, error) {
	rec, err := s.GetSolution(ctx, id)
	if err != nil {
		return model.Solution{}, err
	}
	if err := checkToken(token, rec.UpdatedAt); err != nil {
		return model.Solution{}, err
	}
	rec.Status = model.StatusDeprecated
	rec.UpdatedAt = s.now()
	if err := s.store.Solutions().Update(ctx, rec); err != nil {
		return model.Solution{}, err
	}
	s.log.Info("solution deprecated", "id", rec.ID)
	return rec, nil
}

func (s *Service) ListSolutions(ctx context.Context, q schema.ListQuery) (page.Result[model.Solution], error) {
	return listRecords(ctx, s.store.Solutions(), q)
}

func (s *Service) CreateAssumption(ctx context.Context, in schema.AssumptionCreate) (model.Assumption, error) {
	now := s.now()
	rec := model.Assumption{
		ID:        s.newID(),
		Statement: in.Statement,
		Category:  in.Category,
		RiskLevel: in.RiskLevel,
		Status:    model.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Status != nil {
		rec.Status = *in.Status
	}
	if err := s.store.Assumptions().Create(ctx, rec); err != nil {
		return model.Assumption{}, err
	}
	s.log.Info("assumption created", "id", rec.ID)
	return rec, nil
}

func (s *Service) GetAssumption(ctx context.Context, id string) (model.Assumption, error) {
	return getRecord(ctx, s.store.Assumptions(), id, "Assumption")
}

func (s *Service) UpdateAssumption(ctx context.Context, id, token string, in schema.AssumptionUpdate) (model.Assumption, error) {
	rec, err := s.GetAssumption(ctx, id)
	if err != nil {
		return model.Assumption{}, err
	}
	if err := checkToken(token, rec.UpdatedAt); err != nil {
		return model.Assumption{}, err
	}
	if in.Statement != nil {
		rec.Statement = *in.Statement
	}
	if in.Category != nil {
		rec.Category = *in.Category
	}
	if in.RiskLevel != nil {
		rec.RiskLevel = in.RiskLevel
	}
	if in.Status != nil {
		rec.Status = *in.Status
	}
	rec.UpdatedAt = s.now()
	if err := s.store.Assumptions().Update(ctx, rec); err != nil {
		return model.Assumption{}, err
	}
	return rec, nil
}

func (s *Service) DeprecateAssumption(ctx context.Context, id, token string) (model.Assumption, error) {
	rec, err := s.GetAssumption(ctx, id)
	if err != nil {
		return model.Assumption{}, err
	}
	if err := checkToken(token, rec.UpdatedAt); err != nil {
		return model.Assumption{}, err
	}
	rec.Status = model.StatusDeprecated
	rec.UpdatedAt = s.now()
	if err := s.store.Assumptions().Update(ctx, rec); err != nil {
		return model.Assumption{}, err
	}
	s.log.Info("assumption deprecated", "id", rec.ID)
	return rec, nil
}

func (s *Service) ListAssumptions(ctx context.Context, q schema.ListQuery) (page.Result[model.Assumption], error) {
	return listRecords(ctx, s.store.Assumptions(), q)
}
