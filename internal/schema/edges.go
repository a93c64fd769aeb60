package schema

import "io"

type OutcomeOpportunityCreate struct {
	OutcomeID     string   `json:"outcomeId" validate:"required"`
	OpportunityID string   `json:"opportunityId" validate:"required"`
	Confidence    *float64 `json:"confidence" validate:"omitempty,gte=0,lte=1"`
	Notes         *string  `json:"notes"`
}

type OpportunitySolutionCreate struct {
	OpportunityID string   `json:"opportunityId" validate:"required"`
	SolutionID    string   `json:"solutionId" validate:"required"`
	Confidence    *float64 `json:"confidence" validate:"omitempty,gte=0,lte=1"`
	Notes         *string  `json:"notes"`
}

type SolutionAssumptionCreate struct {
	SolutionID   string   `json:"solutionId" validate:"required"`
	AssumptionID string   `json:"assumptionId" validate:"required"`
	Confidence   *float64 `json:"confidence" validate:"omitempty,gte=0,lte=1"`
	Notes        *string  `json:"notes"`
}

// OpportunitySolutionBatch bounds the batch body to 1-100 items; each item
// is validated like a single edge create.
type OpportunitySolutionBatch struct {
	Items []OpportunitySolutionCreate `json:"items" validate:"required,min=1,max=100,dive"`
}

func ParseOutcomeOpportunityCreate(r io.Reader) (OutcomeOpportunityCreate, error) {
	var p OutcomeOpportunityCreate
	return p, parse(r, &p)
}

func ParseOpportunitySolutionCreate(r io.Reader) (OpportunitySolutionCreate, error) {
	var p OpportunitySolutionCreate
	return p, parse(r, &p)
}

func ParseSolutionAssumptionCreate(r io.Reader) (SolutionAssumptionCreate, error) {
	var p SolutionAssumptionCreate
	return p, parse(r, &p)
}

func ParseOpportunitySolutionBatch(r io.Reader) (OpportunitySolutionBatch, error) {
	var p OpportunitySolutionBatch
	return p, parse(r, &p)
}
