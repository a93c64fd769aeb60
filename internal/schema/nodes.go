package schema

import (
	"io"

	"compass/internal/model"
)

type OutcomeCreate struct {
	Name           string   `json:"name" validate:"required"`
	Description    *string  `json:"description"`
	MetricName     *string  `json:"metricName"`
	MetricBaseline *float64 `json:"metricBaseline"`
	MetricTarget   *float64 `json:"metricTarget"`
	OwnerID        *string  `json:"ownerId"`
}

type OutcomeUpdate struct {
	Name           *string  `json:"name" validate:"omitempty,min=1"`
	Description    *string  `json:"description"`
	MetricName     *string  `json:"metricName"`
	MetricBaseline *float64 `json:"metricBaseline"`
	MetricTarget   *float64 `json:"metricTarget"`
	OwnerID        *string  `json:"ownerId"`
}

type OpportunityCreate struct {
	Description string        `json:"description" validate:"required"`
	Segment     *string       `json:"segment"`
	Severity    *string       `json:"severity"`
	Status      *model.Status `json:"status" validate:"omitempty,oneof=active deprecated"`
}

type OpportunityUpdate struct {
	Description *string       `json:"description" validate:"omitempty,min=1"`
	Segment     *string       `json:"segment"`
	Severity    *string       `json:"severity"`
	Status      *model.Status `json:"status" validate:"omitempty,oneof=active deprecated"`
}

type SolutionCreate struct {
	Title       string        `json:"title" validate:"required"`
	Description *string       `json:"description"`
	Status      *model.Status `json:"status" validate:"omitempty,oneof=active deprecated"`
}

type SolutionUpdate struct {
	Title       *string       `json:"title" validate:"omitempty,min=1"`
	Description *string       `json:"description"`
	Status      *model.Status `json:"status" validate:"omitempty,oneof=active deprecated"`
}

type AssumptionCreate struct {
	Statement string                   `json:"statement" validate:"required"`
	Category  model.AssumptionCategory `json:"category" validate:"required,oneof=DESIRABILITY VIABILITY FEASIBILITY USABILITY"`
	RiskLevel *model.Level             `json:"riskLevel" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Status    *model.Status            `json:"status" validate:"omitempty,oneof=active deprecated"`
}

type AssumptionUpdate struct {
	Statement *string                   `json:"statement" validate:"omitempty,min=1"`
	Category  *model.AssumptionCategory `json:"category" validate:"omitempty,oneof=DESIRABILITY VIABILITY FEASIBILITY USABILITY"`
	RiskLevel *model.Level              `json:"riskLevel" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Status    *model.Status             `json:"status" validate:"omitempty,oneof=active deprecated"`
}

func ParseOutcomeCreate(r io.Reader) (OutcomeCreate, error) {
	var p OutcomeCreate
	return p, parse(r, &p)
}

func ParseOutcomeUpdate(r io.Reader) (OutcomeUpdate, error) {
	var p OutcomeUpdate
	return p, parse(r, &p)
}

func ParseOpportunityCreate(r io.Reader) (OpportunityCreate, error) {
	var p OpportunityCreate
	return p, parse(r, &p)
}

func ParseOpportunityUpdate(r io.Reader) (OpportunityUpdate, error) {
	var p OpportunityUpdate
	return p, parse(r, &p)
}

func ParseSolutionCreate(r io.Reader) (SolutionCreate, error) {
	var p SolutionCreate
	return p, parse(r, &p)
}

func ParseSolutionUpdate(r io.Reader) (SolutionUpdate, error) {
	var p SolutionUpdate
	return p, parse(r, &p)
}

func ParseAssumptionCreate(r io.Reader) (AssumptionCreate, error) {
	var p AssumptionCreate
	return p, parse(r, &p)
}

func ParseAssumptionUpdate(r io.Reader) (AssumptionUpdate, error) {
	var p AssumptionUpdate
	return p, parse(r, &p)
}

// parse is the shared decode-then-validate path for payloads without
// cross-field checks.
func parse(r io.Reader, v any) error {
	if p := decode(r, v); p != nil {
		return p
	}
	if p := check(v); p != nil {
		return p
	}
	return nil
}
