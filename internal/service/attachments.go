package service

import (
	"context"

	"compass/internal/model"
	"compass/internal/page"
	"compass/internal/problem"
	"compass/internal/schema"
	"compass/internal/store"
)

// verifyTarget checks the referenced record is actually in the graph.
func verifyTarget(ctx context.Context, tx store.Tx, ref model.TargetRef) error {
	var err error
	switch ref.Type {
	case model.RelOutcomeOpportunity:
		_, err = tx.OutcomeOpportunities().Get(ctx, ref.ID)
	case model.RelOpportunitySolution:
		_, err = tx.OpportunitySolutions().Get(ctx, ref.ID)
	case model.RelSolutionAssumption:
		_, err = tx.SolutionAssumptions().Get(ctx, ref.ID)
	case model.RelNode:
		switch ref.Node {
		case model.NodeOutcome:
			_, err = tx.Outcomes().Get(ctx, ref.ID)
		case model.NodeOpportunity:
			_, err = tx.Opportunities().Get(ctx, ref.ID)
		case model.NodeSolution:
			_, err = tx.Solutions().Get(ctx, ref.ID)
		case model.NodeAssumption:
			_, err = tx.Assumptions().Get(ctx, ref.ID)
		}
	}
	if err != nil {
		return problem.NotFound("Target not found")
	}
	return nil
}

func (s *Service) CreateHypothesis(ctx context.Context, in schema.HypothesisCreate) (model.Hypothesis, error) {
	if err := verifyTarget(ctx, s.store, in.Target); err != nil {
		return model.Hypothesis{}, err
	}
	now := s.now()
	rec := model.Hypothesis{
		ID:          s.newID(),
		Statement:   in.Statement,
		Target:      in.Target,
		CreatedByID: in.CreatedByID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Hypotheses().Create(ctx, rec); err != nil {
		return model.Hypothesis{}, err
	}
	s.log.Info("hypothesis created", "id", rec.ID)
	return rec, nil
}

func (s *Service) GetHypothesis(ctx context.Context, id string) (model.Hypothesis, error) {
	return getRecord(ctx, s.store.Hypotheses(), id, "Hypothesis")
}

func (s *Service) UpdateHypothesis(ctx context.Context, id, token string, in schema.HypothesisUpdate) (model.Hypothesis, error) {
	rec, err := s.GetHypothesis(ctx, id)
	if err != nil {
		return model.Hypothesis{}, err
	}
	if err := checkToken(token, rec.UpdatedAt); err != nil {
		return model.Hypothesis{}, err
	}
	if in.Statement != nil {
		rec.Statement = *in.Statement
	}
	if in.Target != nil {
		if err := verifyTarget(ctx, s.store, *in.Target); err != nil {
			return model.Hypothesis{}, err
		}
		rec.Target = *in.Target
	}
	if in.CreatedByID != nil {
		rec.CreatedByID = in.CreatedByID
	}
	rec.UpdatedAt = s.now()
	if err := s.store.Hypotheses().Update(ctx, rec); err != nil {
		return model.Hypothesis{}, err
	}
	return rec, nil
}

// DeleteHypothesis removes the hypothesis along with its experiments and
// their insights, so no attachment is left referencing a missing parent.
func (s *Service) DeleteHypothesis(ctx context.Context, id string) error {
	return s.store.RunAtomic(ctx, func(tx store.Tx) error {
		if _, err := getRecord(ctx, tx.Hypotheses(), id, "Hypothesis"); err != nil {
			return err
		}
		exps, err := tx.Experiments().All(ctx)
		if err != nil {
			return err
		}
		for _, e := range exps {
			if e.HypothesisID != id {
				continue
			}
			if err := deleteInsightsOf(ctx, tx, e.ID); err != nil {
				return err
			}
			if err := tx.Experiments().Delete(ctx, e.ID); err != nil {
				return err
			}
		}
		return tx.Hypotheses().Delete(ctx, id)
	})
}

func (s *Service) ListHypotheses(ctx context.Context, q schema.ListQuery) (page.Result[model.Hypothesis], error) {
	return listRecords(ctx, s.store.Hypotheses(), q)
}

func (s *Service) CreateExperiment(ctx context.Context, in schema.ExperimentCreate) (model.Experiment, error) {
	if _, err := getRecord(ctx, s.store.Hypotheses(), in.HypothesisID, "Hypothesis"); err != nil {
		return model.Experiment{}, err
	}
	now := s.now()
	rec := model.Experiment{
		ID:            s.newID(),
		HypothesisID:  in.HypothesisID,
		Name:          in.Name,
		Method:        in.Method,
		Status:        model.ExperimentPlanned,
		StartAt:       in.StartAt.TimePtr(),
		EndAt:         in.EndAt.TimePtr(),
		ResultSummary: in.ResultSummary,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.Status != nil {
		rec.Status = *in.Status
	}
	if err := s.store.Experiments().Create(ctx, rec); err != nil {
		return model.Experiment{}, err
	}
	s.log.Info("experiment created", "id", rec.ID)
	return rec, nil
}

func (s *Service) GetExperiment(ctx context.Context, id string) (model.Experiment, error) {
	return getRecord(ctx, s.store.Experiments(), id, "Experiment")
}

func (s *Service) UpdateExperiment(ctx context.Context, id, token string, in schema.ExperimentUpdate) (model.Experiment, error) {
	rec, err := s.GetExperiment(ctx, id)
	if err != nil {
		return model.Experiment{}, err
	}
	if err := checkToken(token, rec.UpdatedAt); err != nil {
		return model.Experiment{}, err
	}
	if in.HypothesisID != nil {
		if _, err := getRecord(ctx, s.store.Hypotheses(), *in.HypothesisID, "Hypothesis"); err != nil {
			return model.Experiment{}, err
		}
		rec.HypothesisID = *in.HypothesisID
	}
	if in.Name != nil {
		rec.Name = *in.Name
	}
	if in.Method != nil {
		rec.Method = in.Method
	}
	if in.Status != nil {
		rec.Status = *in.Status
	}
	if in.StartAt != nil {
		rec.StartAt = in.StartAt.TimePtr()
	}
	if in.EndAt != nil {
		rec.EndAt = in.EndAt.TimePtr()
	}
	if in.ResultSummary != nil {
		rec.ResultSummary = in.ResultSummary
	}
	rec.UpdatedAt = s.now()
	if err := s.store.Experiments().Update(ctx, rec); err != nil {
		return model.Experiment{}, err
	}
	return rec, nil
}

// DeleteExperiment removes the experiment and the insights derived from it.
func (s *Service) DeleteExperiment(ctx context.Context, id string) error {
	return s.store.RunAtomic(ctx, func(tx store.Tx) error {
		if _, err := getRecord(ctx, tx.Experiments(), id, "Experiment"); err != nil {
			return err
		}
		if err := deleteInsightsOf(ctx, tx, id); err != nil {
			return err
		}
		return tx.Experiments().Delete(ctx, id)
	})
}

func deleteInsightsOf(ctx context.Context, tx store.Tx, experimentID string) error {
	ins, err := tx.Insights().All(ctx)
	if err != nil {
		return err
	}
	for _, i := range ins {
		if i.ExperimentID == experimentID {
			if err := tx.Insights().Delete(ctx, i.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Service) ListExperiments(ctx context.Context, q schema.ListQuery) (page.Result[model.Experiment], error) {
	return listRecords(ctx, s.store.Experiments(), q)
}

func (s *Service) CreateInsight(ctx context.Context, in schema.InsightCreate) (model.Insight, error) {
	if _, err := getRecord(ctx, s.store.Experiments(), in.ExperimentID, "Experiment"); err != nil {
		return model.Insight{}, err
	}
	if err := verifyTarget(ctx, s.store, in.Target); err != nil {
		return model.Insight{}, err
	}
	now := s.now()
	rec := model.Insight{
		ID:              s.newID(),
		ExperimentID:    in.ExperimentID,
		Target:          in.Target,
		ValidationState: in.ValidationState,
		ConfidenceLevel: in.ConfidenceLevel,
		Statement:       in.Statement,
		EvidenceSummary: in.EvidenceSummary,
		SourceTypes:     in.SourceTypes,
		Tags:            in.Tags,
		LifecycleStage:  in.LifecycleStage,
		PrivacyLevel:    in.PrivacyLevel,
		DiscoveredOn:    in.DiscoveredOn.TimePtr(),
		ValidUntil:      in.ValidUntil.TimePtr(),
		DedupeHash:      *in.DedupeHash,
		CreatedByID:     in.CreatedByID,
		ReviewedByID:    in.ReviewedByID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.Insights().Create(ctx, rec); err != nil {
		return model.Insight{}, err
	}
	s.log.Info("insight created", "id", rec.ID)
	return rec, nil
}

func (s *Service) GetInsight(ctx context.Context, id string) (model.Insight, error) {
	return getRecord(ctx, s.store.Insights(), id, "Insight")
}

func (s *Service) UpdateInsight(ctx context.Context, id, token string, in schema.InsightUpdate) (model.Insight, error) {
	rec, err := s.GetInsight(ctx, id)
	if err != nil {
		return model.Insight{}, err
	}
	if err := checkToken(token, rec.UpdatedAt); err != nil {
		return model.Insight{}, err
	}
	if in.ExperimentID != nil {
		if _, err := getRecord(ctx, s.store.Experiments(), *in.ExperimentID, "Experiment"); err != nil {
			return model.Insight{}, err
		}
		rec.ExperimentID = *in.ExperimentID
	}
	if in.Target != nil {
		if err := verifyTarget(ctx, s.store, *in.Target); err != nil {
			return model.Insight{}, err
		}
		rec.Target = *in.Target
	}
	if in.ValidationState != nil {
		rec.ValidationState = *in.ValidationState
	}
	if in.ConfidenceLevel != nil {
		rec.ConfidenceLevel = in.ConfidenceLevel
	}
	if in.Statement != nil {
		rec.Statement = *in.Statement
		// The hash tracks the statement unless the caller pins one.
		if in.DedupeHash == nil {
			rec.DedupeHash = schema.DeriveDedupeHash(*in.Statement)
		}
	}
	if in.EvidenceSummary != nil {
		rec.EvidenceSummary = *in.EvidenceSummary
	}
	if in.SourceTypes != nil {
		rec.SourceTypes = in.SourceTypes
	}
	if in.Tags != nil {
		rec.Tags = in.Tags
	}
	if in.LifecycleStage != nil {
		rec.LifecycleStage = in.LifecycleStage
	}
	if in.PrivacyLevel != nil {
		rec.PrivacyLevel = in.PrivacyLevel
	}
	if in.DiscoveredOn != nil {
		rec.DiscoveredOn = in.DiscoveredOn.TimePtr()
	}
	if in.ValidUntil != nil {
		rec.ValidUntil = in.ValidUntil.TimePtr()
	}
	if in.DedupeHash != nil {
		rec.DedupeHash = *in.DedupeHash
	}
	if in.CreatedByID != nil {
		rec.CreatedByID = in.CreatedByID
	}
	if in.ReviewedByID != nil {
		rec.ReviewedByID = in.ReviewedByID
	}
	rec.UpdatedAt = s.now()
	if err := s.store.Insights().Update(ctx, rec); err != nil {
		return model.Insight{}, err
	}
	return rec, nil
}

func (s *Service) DeleteInsight(ctx context.Context, id string) error {
	if _, err := s.GetInsight(ctx, id); err != nil {
		return err
	}
	return s.store.Insights().Delete(ctx, id)
}

func (s *Service) ListInsights(ctx context.Context, q schema.ListQuery) (page.Result[model.Insight], error) {
	return listRecords(ctx, s.store.Insights(), q)
}
