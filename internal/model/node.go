package model

import "time"

// Status is the lifecycle state shared by all node kinds. Nodes are never
// hard-deleted through the primary path; deletion deprecates them in place.
type Status string

const (
	StatusActive     Status = "active"
	StatusDeprecated Status = "deprecated"
)

type Outcome struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description,omitempty"`
	MetricName     *string   `json:"metricName,omitempty"`
	MetricBaseline *float64  `json:"metricBaseline,omitempty"`
	MetricTarget   *float64  `json:"metricTarget,omitempty"`
	OwnerID        *string   `json:"ownerId,omitempty"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type Opportunity struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Segment     *string   `json:"segment,omitempty"`
	Severity    *string   `json:"severity,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Solution struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AssumptionCategory classifies the risk an assumption probes.
type AssumptionCategory string

const (
	CategoryDesirability AssumptionCategory = "DESIRABILITY"
	CategoryViability    AssumptionCategory = "VIABILITY"
	CategoryFeasibility  AssumptionCategory = "FEASIBILITY"
	CategoryUsability    AssumptionCategory = "USABILITY"
)

// Level is the three-step scale used for risk and confidence ratings.
type Level string

const (
	LevelLow    Level = "LOW"
	LevelMedium Level = "MEDIUM"
	LevelHigh   Level = "HIGH"
)

type Assumption struct {
	ID        string             `json:"id"`
	Statement string             `json:"statement"`
	Category  AssumptionCategory `json:"category"`
	RiskLevel *Level             `json:"riskLevel,omitempty"`
	Status    Status             `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

func (o Outcome) RecordID() string             { return o.ID }
func (o Outcome) RecordCreatedAt() time.Time   { return o.CreatedAt }
func (o Outcome) RecordUpdatedAt() time.Time   { return o.UpdatedAt }
func (o Outcome) RecordStatus() string         { return string(o.Status) }
func (o Outcome) SearchText() []string {
	return []string{o.Name, deref(o.Description), deref(o.MetricName)}
}
func (o Outcome) FieldValue(string) (string, bool) { return "", false }

func (o Opportunity) RecordID() string           { return o.ID }
func (o Opportunity) RecordCreatedAt() time.Time { return o.CreatedAt }
func (o Opportunity) RecordUpdatedAt() time.Time { return o.UpdatedAt }
func (o Opportunity) RecordStatus() string       { return string(o.Status) }
func (o Opportunity) SearchText() []string {
	return []string{o.Description, deref(o.Segment), string(o.Status)}
}
func (o Opportunity) FieldValue(string) (string, bool) { return "", false }

func (s Solution) RecordID() string           { return s.ID }
func (s Solution) RecordCreatedAt() time.Time { return s.CreatedAt }
func (s Solution) RecordUpdatedAt() time.Time { return s.UpdatedAt }
func (s Solution) RecordStatus() string       { return string(s.Status) }
func (s Solution) SearchText() []string {
	return []string{s.Title, deref(s.Description), string(s.Status)}
}
func (s Solution) FieldValue(string) (string, bool) { return "", false }

func (a Assumption) RecordID() string           { return a.ID }
func (a Assumption) RecordCreatedAt() time.Time { return a.CreatedAt }
func (a Assumption) RecordUpdatedAt() time.Time { return a.UpdatedAt }
func (a Assumption) RecordStatus() string       { return string(a.Status) }
func (a Assumption) SearchText() []string {
	return []string{a.Statement, string(a.Status)}
}
func (a Assumption) FieldValue(string) (string, bool) { return "", false }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
