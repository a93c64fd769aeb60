package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strings"

	"compass/internal/model"
	"compass/internal/problem"
)

// TargetFields is the flat wire form of a polymorphic target reference:
// seven nullable id fields of which exactly one may be set.
type TargetFields struct {
	AssumptionID          *string `json:"assumptionId"`
	OutcomeOpportunityID  *string `json:"outcomeOpportunityId"`
	OpportunitySolutionID *string `json:"opportunitySolutionId"`
	SolutionAssumptionID  *string `json:"solutionAssumptionId"`
	OutcomeID             *string `json:"outcomeId"`
	OpportunityID         *string `json:"opportunityId"`
	SolutionID            *string `json:"solutionId"`
}

type providedTarget struct {
	field string
	id    string
}

func (t TargetFields) provided() []providedTarget {
	var out []providedTarget
	add := func(field string, v *string) {
		if v != nil && *v != "" {
			out = append(out, providedTarget{field: field, id: *v})
		}
	}
	add("assumptionId", t.AssumptionID)
	add("outcomeOpportunityId", t.OutcomeOpportunityID)
	add("opportunitySolutionId", t.OpportunitySolutionID)
	add("solutionAssumptionId", t.SolutionAssumptionID)
	add("outcomeId", t.OutcomeID)
	add("opportunityId", t.OpportunityID)
	add("solutionId", t.SolutionID)
	return out
}

// FlatTarget spreads a resolved target back into the wire form, for
// responses. Unset fields stay null.
func FlatTarget(ref model.TargetRef) TargetFields {
	var t TargetFields
	id := ref.ID
	switch ref.Field() {
	case "assumptionId":
		t.AssumptionID = &id
	case "outcomeOpportunityId":
		t.OutcomeOpportunityID = &id
	case "opportunitySolutionId":
		t.OpportunitySolutionID = &id
	case "solutionAssumptionId":
		t.SolutionAssumptionID = &id
	case "outcomeId":
		t.OutcomeID = &id
	case "opportunityId":
		t.OpportunityID = &id
	case "solutionId":
		t.SolutionID = &id
	}
	return t
}

func refForField(field, id string) model.TargetRef {
	switch field {
	case "outcomeOpportunityId":
		return model.TargetRef{Type: model.RelOutcomeOpportunity, ID: id}
	case "opportunitySolutionId":
		return model.TargetRef{Type: model.RelOpportunitySolution, ID: id}
	case "solutionAssumptionId":
		return model.TargetRef{Type: model.RelSolutionAssumption, ID: id}
	case "outcomeId":
		return model.TargetRef{Type: model.RelNode, Node: model.NodeOutcome, ID: id}
	case "opportunityId":
		return model.TargetRef{Type: model.RelNode, Node: model.NodeOpportunity, ID: id}
	case "solutionId":
		return model.TargetRef{Type: model.RelNode, Node: model.NodeSolution, ID: id}
	case "assumptionId":
		return model.TargetRef{Type: model.RelNode, Node: model.NodeAssumption, ID: id}
	}
	return model.TargetRef{}
}

// ResolveTarget enforces the target-alignment invariant at create time:
// exactly one of the seven id fields is set, and it must be the field the
// declared type tag names. Violations are reported as a single
// "target"-path issue.
func ResolveTarget(tagPath string, tag model.RelationshipType, fields TargetFields) (model.TargetRef, *problem.Issue) {
	provided := fields.provided()
	if len(provided) != 1 {
		return model.TargetRef{}, &problem.Issue{
			Path:    "target",
			Message: "Exactly one target reference must be provided",
		}
	}
	ref := refForField(provided[0].field, provided[0].id)
	if ref.Type != tag {
		return model.TargetRef{}, &problem.Issue{
			Path:    "target",
			Message: tagPath + " does not match provided target id",
		}
	}
	return ref, nil
}

// ResolveTargetPatch enforces the invariant for partial updates: at most
// one id may be supplied, and the id and the type tag must travel
// together. A nil result with no issue means the target is untouched.
func ResolveTargetPatch(tagPath string, tag *model.RelationshipType, fields TargetFields) (*model.TargetRef, *problem.Issue) {
	provided := fields.provided()
	if len(provided) > 1 {
		return nil, &problem.Issue{
			Path:    "target",
			Message: "Only one target reference can be updated at a time",
		}
	}
	if len(provided) == 1 && tag == nil {
		return nil, &problem.Issue{
			Path:    tagPath,
			Message: tagPath + " must be provided when updating a target reference",
		}
	}
	if len(provided) == 0 {
		if tag != nil {
			return nil, &problem.Issue{
				Path:    tagPath,
				Message: tagPath + " requires a matching target reference",
			}
		}
		return nil, nil
	}
	ref := refForField(provided[0].field, provided[0].id)
	if ref.Type != *tag {
		return nil, &problem.Issue{
			Path:    "target",
			Message: tagPath + " does not match provided target id",
		}
	}
	return &ref, nil
}

type HypothesisCreate struct {
	Statement  string                 `json:"statement" validate:"required"`
	TargetType model.RelationshipType `json:"targetType" validate:"required,oneof=OUTCOME_OPPORTUNITY OPPORTUNITY_SOLUTION SOLUTION_ASSUMPTION NODE"`
	TargetFields
	CreatedByID *string `json:"createdById"`

	// Target is the resolved tagged union; populated by ParseHypothesisCreate.
	Target model.TargetRef `json:"-"`
}

type HypothesisUpdate struct {
	Statement  *string                 `json:"statement" validate:"omitempty,min=1"`
	TargetType *model.RelationshipType `json:"targetType" validate:"omitempty,oneof=OUTCOME_OPPORTUNITY OPPORTUNITY_SOLUTION SOLUTION_ASSUMPTION NODE"`
	TargetFields
	CreatedByID *string `json:"createdById"`

	// Target is non-nil when the patch replaces the target reference.
	Target *model.TargetRef `json:"-"`
}

func ParseHypothesisCreate(r io.Reader) (HypothesisCreate, error) {
	var p HypothesisCreate
	if err := parse(r, &p); err != nil {
		return p, err
	}
	ref, issue := ResolveTarget("targetType", p.TargetType, p.TargetFields)
	if issue != nil {
		return p, problem.Validation("Validation failed", *issue)
	}
	p.Target = ref
	return p, nil
}

func ParseHypothesisUpdate(r io.Reader) (HypothesisUpdate, error) {
	var p HypothesisUpdate
	if err := parse(r, &p); err != nil {
		return p, err
	}
	ref, issue := ResolveTargetPatch("targetType", p.TargetType, p.TargetFields)
	if issue != nil {
		return p, problem.Validation("Validation failed", *issue)
	}
	p.Target = ref
	return p, nil
}

type ExperimentCreate struct {
	HypothesisID  string                  `json:"hypothesisId" validate:"required"`
	Name          string                  `json:"name" validate:"required"`
	Method        *string                 `json:"method"`
	Status        *model.ExperimentStatus `json:"status" validate:"omitempty,oneof=PLANNED RUNNING COMPLETE ARCHIVED"`
	StartAt       *Date                   `json:"startAt"`
	EndAt         *Date                   `json:"endAt"`
	ResultSummary *string                 `json:"resultSummary"`
}

type ExperimentUpdate struct {
	HypothesisID  *string                 `json:"hypothesisId" validate:"omitempty,min=1"`
	Name          *string                 `json:"name" validate:"omitempty,min=1"`
	Method        *string                 `json:"method"`
	Status        *model.ExperimentStatus `json:"status" validate:"omitempty,oneof=PLANNED RUNNING COMPLETE ARCHIVED"`
	StartAt       *Date                   `json:"startAt"`
	EndAt         *Date                   `json:"endAt"`
	ResultSummary *string                 `json:"resultSummary"`
}

func ParseExperimentCreate(r io.Reader) (ExperimentCreate, error) {
	var p ExperimentCreate
	return p, parse(r, &p)
}

func ParseExperimentUpdate(r io.Reader) (ExperimentUpdate, error) {
	var p ExperimentUpdate
	return p, parse(r, &p)
}

type InsightCreate struct {
	ExperimentID     string                 `json:"experimentId" validate:"required"`
	RelationshipType model.RelationshipType `json:"relationshipType" validate:"required,oneof=OUTCOME_OPPORTUNITY OPPORTUNITY_SOLUTION SOLUTION_ASSUMPTION NODE"`
	TargetFields
	ValidationState model.ValidationState `json:"validationState" validate:"required,oneof=SUPPORTS WEAKENS FALSIFIES INCONCLUSIVE"`
	ConfidenceLevel *model.Level          `json:"confidenceLevel" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Statement       string                `json:"statement" validate:"required,max=600"`
	EvidenceSummary string                `json:"evidenceSummary" validate:"required,max=2000"`
	SourceTypes     []string              `json:"sourceTypes"`
	Tags            []string              `json:"tags"`
	LifecycleStage  *model.LifecycleStage `json:"lifecycleStage" validate:"omitempty,oneof=DISCOVERED TRIANGULATED VALIDATED INSTITUTIONALIZED OBSOLETE"`
	PrivacyLevel    *model.PrivacyLevel   `json:"privacyLevel" validate:"omitempty,oneof=PUBLIC INTERNAL RESTRICTED"`
	DiscoveredOn    *Date                 `json:"discoveredOn"`
	ValidUntil      *Date                 `json:"validUntil"`
	DedupeHash      *string               `json:"dedupeHash"`
	CreatedByID     *string               `json:"createdById"`
	ReviewedByID    *string               `json:"reviewedById"`

	Target model.TargetRef `json:"-"`
}

type InsightUpdate struct {
	ExperimentID     *string                 `json:"experimentId" validate:"omitempty,min=1"`
	RelationshipType *model.RelationshipType `json:"relationshipType" validate:"omitempty,oneof=OUTCOME_OPPORTUNITY OPPORTUNITY_SOLUTION SOLUTION_ASSUMPTION NODE"`
	TargetFields
	ValidationState *model.ValidationState `json:"validationState" validate:"omitempty,oneof=SUPPORTS WEAKENS FALSIFIES INCONCLUSIVE"`
	ConfidenceLevel *model.Level           `json:"confidenceLevel" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Statement       *string                `json:"statement" validate:"omitempty,min=1,max=600"`
	EvidenceSummary *string                `json:"evidenceSummary" validate:"omitempty,min=1,max=2000"`
	SourceTypes     []string               `json:"sourceTypes"`
	Tags            []string               `json:"tags"`
	LifecycleStage  *model.LifecycleStage  `json:"lifecycleStage" validate:"omitempty,oneof=DISCOVERED TRIANGULATED VALIDATED INSTITUTIONALIZED OBSOLETE"`
	PrivacyLevel    *model.PrivacyLevel    `json:"privacyLevel" validate:"omitempty,oneof=PUBLIC INTERNAL RESTRICTED"`
	DiscoveredOn    *Date                  `json:"discoveredOn"`
	ValidUntil      *Date                  `json:"validUntil"`
	DedupeHash      *string                `json:"dedupeHash"`
	CreatedByID     *string                `json:"createdById"`
	ReviewedByID    *string                `json:"reviewedById"`

	Target *model.TargetRef `json:"-"`
}

func ParseInsightCreate(r io.Reader) (InsightCreate, error) {
	var p InsightCreate
	if err := parse(r, &p); err != nil {
		return p, err
	}
	ref, issue := ResolveTarget("relationshipType", p.RelationshipType, p.TargetFields)
	if issue != nil {
		return p, problem.Validation("Validation failed", *issue)
	}
	p.Target = ref
	// Absent collections become empty ordered sequences, never null.
	if p.SourceTypes == nil {
		p.SourceTypes = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.DedupeHash == nil || *p.DedupeHash == "" {
		hash := DeriveDedupeHash(p.Statement)
		p.DedupeHash = &hash
	}
	return p, nil
}

func ParseInsightUpdate(r io.Reader) (InsightUpdate, error) {
	var p InsightUpdate
	if err := parse(r, &p); err != nil {
		return p, err
	}
	ref, issue := ResolveTargetPatch("relationshipType", p.RelationshipType, p.TargetFields)
	if issue != nil {
		return p, problem.Validation("Validation failed", *issue)
	}
	p.Target = ref
	return p, nil
}

// DeriveDedupeHash digests the lower-cased, trimmed statement so that
// structurally identical insights share a hash. Equality of the hash is a
// detection signal, not a uniqueness constraint.
func DeriveDedupeHash(statement string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(statement))))
	return hex.EncodeToString(sum[:])
}
