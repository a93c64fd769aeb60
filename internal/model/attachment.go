package model

import "time"

// RelationshipType discriminates where in the graph an attachment points:
// one of the three edge kinds, or a node directly.
type RelationshipType string

const (
	RelOutcomeOpportunity  RelationshipType = "OUTCOME_OPPORTUNITY"
	RelOpportunitySolution RelationshipType = "OPPORTUNITY_SOLUTION"
	RelSolutionAssumption  RelationshipType = "SOLUTION_ASSUMPTION"
	RelNode                RelationshipType = "NODE"
)

// NodeKind names a node table for NODE-typed targets.
type NodeKind string

const (
	NodeOutcome     NodeKind = "outcome"
	NodeOpportunity NodeKind = "opportunity"
	NodeSolution    NodeKind = "solution"
	NodeAssumption  NodeKind = "assumption"
)

// TargetRef is the tagged union behind the flat wire format: a type tag
// plus exactly one referenced id. Node is set only when Type is RelNode.
// The seven nullable id fields of the wire format are translated to and
// from this at the schema/server boundary.
type TargetRef struct {
	Type RelationshipType `json:"type"`
	Node NodeKind         `json:"node,omitempty"`
	ID   string           `json:"id"`
}

func (t TargetRef) IsZero() bool { return t.Type == "" }

// Field returns the wire field name that carries the target id.
func (t TargetRef) Field() string {
	switch t.Type {
	case RelOutcomeOpportunity:
		return "outcomeOpportunityId"
	case RelOpportunitySolution:
		return "opportunitySolutionId"
	case RelSolutionAssumption:
		return "solutionAssumptionId"
	case RelNode:
		switch t.Node {
		case NodeOutcome:
			return "outcomeId"
		case NodeOpportunity:
			return "opportunityId"
		case NodeSolution:
			return "solutionId"
		case NodeAssumption:
			return "assumptionId"
		}
	}
	return ""
}

type Hypothesis struct {
	ID          string    `json:"id"`
	Statement   string    `json:"statement"`
	Target      TargetRef `json:"target"`
	CreatedByID *string   `json:"createdById,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ExperimentStatus tracks an experiment through its run.
type ExperimentStatus string

const (
	ExperimentPlanned  ExperimentStatus = "PLANNED"
	ExperimentRunning  ExperimentStatus = "RUNNING"
	ExperimentComplete ExperimentStatus = "COMPLETE"
	ExperimentArchived ExperimentStatus = "ARCHIVED"
)

type Experiment struct {
	ID            string           `json:"id"`
	HypothesisID  string           `json:"hypothesisId"`
	Name          string           `json:"name"`
	Method        *string          `json:"method,omitempty"`
	Status        ExperimentStatus `json:"status"`
	StartAt       *time.Time       `json:"startAt,omitempty"`
	EndAt         *time.Time       `json:"endAt,omitempty"`
	ResultSummary *string          `json:"resultSummary,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// ValidationState records what an insight does to the targeted belief.
type ValidationState string

const (
	ValidationSupports     ValidationState = "SUPPORTS"
	ValidationWeakens      ValidationState = "WEAKENS"
	ValidationFalsifies    ValidationState = "FALSIFIES"
	ValidationInconclusive ValidationState = "INCONCLUSIVE"
)

type LifecycleStage string

const (
	StageDiscovered        LifecycleStage = "DISCOVERED"
	StageTriangulated      LifecycleStage = "TRIANGULATED"
	StageValidated         LifecycleStage = "VALIDATED"
	StageInstitutionalized LifecycleStage = "INSTITUTIONALIZED"
	StageObsolete          LifecycleStage = "OBSOLETE"
)

type PrivacyLevel string

const (
	PrivacyPublic     PrivacyLevel = "PUBLIC"
	PrivacyInternal   PrivacyLevel = "INTERNAL"
	PrivacyRestricted PrivacyLevel = "RESTRICTED"
)

type Insight struct {
	ID              string          `json:"id"`
	ExperimentID    string          `json:"experimentId"`
	Target          TargetRef       `json:"target"`
	ValidationState ValidationState `json:"validationState"`
	ConfidenceLevel *Level          `json:"confidenceLevel,omitempty"`
	Statement       string          `json:"statement"`
	EvidenceSummary string          `json:"evidenceSummary"`
	SourceTypes     []string        `json:"sourceTypes"`
	Tags            []string        `json:"tags"`
	LifecycleStage  *LifecycleStage `json:"lifecycleStage,omitempty"`
	PrivacyLevel    *PrivacyLevel   `json:"privacyLevel,omitempty"`
	DiscoveredOn    *time.Time      `json:"discoveredOn,omitempty"`
	ValidUntil      *time.Time      `json:"validUntil,omitempty"`
	DedupeHash      string          `json:"dedupeHash,omitempty"`
	CreatedByID     *string         `json:"createdById,omitempty"`
	ReviewedByID    *string         `json:"reviewedById,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (h Hypothesis) RecordID() string           { return h.ID }
func (h Hypothesis) RecordCreatedAt() time.Time { return h.CreatedAt }
func (h Hypothesis) RecordUpdatedAt() time.Time { return h.UpdatedAt }
func (h Hypothesis) RecordStatus() string       { return "" }
func (h Hypothesis) SearchText() []string       { return []string{h.Statement} }
func (h Hypothesis) FieldValue(name string) (string, bool) {
	if name == "targetType" {
		return string(h.Target.Type), true
	}
	if h.Target.Field() == name {
		return h.Target.ID, true
	}
	return "", false
}

func (e Experiment) RecordID() string           { return e.ID }
func (e Experiment) RecordCreatedAt() time.Time { return e.CreatedAt }
func (e Experiment) RecordUpdatedAt() time.Time { return e.UpdatedAt }
func (e Experiment) RecordStatus() string       { return "" }
func (e Experiment) SearchText() []string {
	return []string{e.Name, deref(e.Method), deref(e.ResultSummary)}
}
func (e Experiment) FieldValue(name string) (string, bool) {
	switch name {
	case "hypothesisId":
		return e.HypothesisID, true
	case "status":
		return string(e.Status), true
	}
	return "", false
}

func (i Insight) RecordID() string           { return i.ID }
func (i Insight) RecordCreatedAt() time.Time { return i.CreatedAt }
func (i Insight) RecordUpdatedAt() time.Time { return i.UpdatedAt }
func (i Insight) RecordStatus() string       { return "" }
func (i Insight) SearchText() []string {
	return []string{i.Statement, i.EvidenceSummary}
}
func (i Insight) FieldValue(name string) (string, bool) {
	switch name {
	case "relationshipType":
		return string(i.Target.Type), true
	case "experimentId":
		return i.ExperimentID, true
	case "validationState":
		return string(i.ValidationState), true
	case "confidenceLevel":
		if i.ConfidenceLevel == nil {
			return "", true
		}
		return string(*i.ConfidenceLevel), true
	case "lifecycleStage":
		if i.LifecycleStage == nil {
			return "", true
		}
		return string(*i.LifecycleStage), true
	case "privacyLevel":
		if i.PrivacyLevel == nil {
			return "", true
		}
		return string(*i.PrivacyLevel), true
	}
	if i.Target.Field() == name {
		return i.Target.ID, true
	}
	return "", false
}
