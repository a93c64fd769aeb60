// Package problem carries the failure taxonomy of the core as error values
// with enough structure for callers to render precise remediation: a kind,
// an HTTP-shaped status, itemized field issues, and conflicting edge pairs.
package problem

import (
	"errors"
	"fmt"
	"net/http"
)

// Issue is a single field-path validation failure.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// EdgePair names the endpoints of a conflicting edge. Only the two fields
// relevant to the edge kind are set.
type EdgePair struct {
	OutcomeID     string `json:"outcomeId,omitempty"`
	OpportunityID string `json:"opportunityId,omitempty"`
	SolutionID    string `json:"solutionId,omitempty"`
	AssumptionID  string `json:"assumptionId,omitempty"`
}

type Problem struct {
	Status    int        `json:"status"`
	Title     string     `json:"title"`
	Detail    string     `json:"detail,omitempty"`
	Issues    []Issue    `json:"issues,omitempty"`
	Conflicts []EdgePair `json:"conflicts,omitempty"`
}

func (p *Problem) Error() string {
	if p.Detail == "" {
		return p.Title
	}
	return fmt.Sprintf("%s: %s", p.Title, p.Detail)
}

func Validation(detail string, issues ...Issue) *Problem {
	return &Problem{
		Status: http.StatusUnprocessableEntity,
		Title:  "Unprocessable Entity",
		Detail: detail,
		Issues: issues,
	}
}

func NotFound(detail string) *Problem {
	return &Problem{Status: http.StatusNotFound, Title: "Not Found", Detail: detail}
}

func PreconditionFailed() *Problem {
	return &Problem{
		Status: http.StatusPreconditionFailed,
		Title:  "Precondition Failed",
		Detail: "Resource has been modified",
	}
}

func Conflict(detail string, pairs ...EdgePair) *Problem {
	return &Problem{
		Status:    http.StatusConflict,
		Title:     "Conflict",
		Detail:    detail,
		Conflicts: pairs,
	}
}

func Internal(err error) *Problem {
	p := &Problem{Status: http.StatusInternalServerError, Title: "Unexpected Error"}
	if err != nil {
		p.Detail = err.Error()
	}
	return p
}

// From normalizes any error to a Problem. Errors that are not already a
// Problem are never swallowed; they surface as internal failures.
func From(err error) *Problem {
	var p *Problem
	if errors.As(err, &p) {
		return p
	}
	return Internal(err)
}
