package model

import "time"

// Edges link adjacent node kinds in the fixed chain
// Outcome -> Opportunity -> Solution -> Assumption. Each edge kind has a
// store-enforced unique constraint on its endpoint pair, and confidence,
// when present, is in [0,1].

type OutcomeOpportunity struct {
	ID            string    `json:"id"`
	OutcomeID     string    `json:"outcomeId"`
	OpportunityID string    `json:"opportunityId"`
	Confidence    *float64  `json:"confidence,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type OpportunitySolution struct {
	ID            string    `json:"id"`
	OpportunityID string    `json:"opportunityId"`
	SolutionID    string    `json:"solutionId"`
	Confidence    *float64  `json:"confidence,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type SolutionAssumption struct {
	ID           string    `json:"id"`
	SolutionID   string    `json:"solutionId"`
	AssumptionID string    `json:"assumptionId"`
	Confidence   *float64  `json:"confidence,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (e OutcomeOpportunity) RecordID() string           { return e.ID }
func (e OutcomeOpportunity) RecordCreatedAt() time.Time { return e.CreatedAt }
func (e OutcomeOpportunity) RecordUpdatedAt() time.Time { return e.UpdatedAt }
func (e OutcomeOpportunity) RecordStatus() string       { return "" }
func (e OutcomeOpportunity) SearchText() []string       { return nil }
func (e OutcomeOpportunity) FieldValue(name string) (string, bool) {
	switch name {
	case "outcomeId":
		return e.OutcomeID, true
	case "opportunityId":
		return e.OpportunityID, true
	}
	return "", false
}

// PairKey identifies the endpoint pair for duplicate detection.
func (e OutcomeOpportunity) PairKey() string { return e.OutcomeID + ":" + e.OpportunityID }

func (e OpportunitySolution) RecordID() string           { return e.ID }
func (e OpportunitySolution) RecordCreatedAt() time.Time { return e.CreatedAt }
func (e OpportunitySolution) RecordUpdatedAt() time.Time { return e.UpdatedAt }
func (e OpportunitySolution) RecordStatus() string       { return "" }
func (e OpportunitySolution) SearchText() []string       { return nil }
func (e OpportunitySolution) FieldValue(name string) (string, bool) {
	switch name {
	case "opportunityId":
		return e.OpportunityID, true
	case "solutionId":
		return e.SolutionID, true
	}
	return "", false
}

func (e OpportunitySolution) PairKey() string { return e.OpportunityID + ":" + e.SolutionID }

func (e SolutionAssumption) RecordID() string           { return e.ID }
func (e SolutionAssumption) RecordCreatedAt() time.Time { return e.CreatedAt }
func (e SolutionAssumption) RecordUpdatedAt() time.Time { return e.UpdatedAt }
func (e SolutionAssumption) RecordStatus() string       { return "" }
func (e SolutionAssumption) SearchText() []string       { return nil }
func (e SolutionAssumption) FieldValue(name string) (string, bool) {
	switch name {
	case "solutionId":
		return e.SolutionID, true
	case "assumptionId":
		return e.AssumptionID, true
	}
	return "", false
}

func (e SolutionAssumption) PairKey() string { return e.SolutionID + ":" + e.AssumptionID }
