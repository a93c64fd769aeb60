package model

// Read-only projection of the full outcome -> opportunity -> solution ->
// assumption chain. Recomputed on demand; never mutated in place.

type OutcomeTree struct {
	Data []OutcomeTreeNode `json:"data"`
	Meta TreeMeta          `json:"meta"`
}

type TreeMeta struct {
	Totals TreeTotals `json:"totals"`
}

type TreeTotals struct {
	Outcomes      int `json:"outcomes"`
	Opportunities int `json:"opportunities"`
	Solutions     int `json:"solutions"`
	Assumptions   int `json:"assumptions"`
}

type OutcomeTreeNode struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Status        Status              `json:"status"`
	Opportunities []OpportunityBranch `json:"opportunities"`
}

type OpportunityBranch struct {
	EdgeID      string             `json:"edgeId"`
	Confidence  *float64           `json:"confidence"`
	Opportunity OpportunitySummary `json:"opportunity"`
	Solutions   []SolutionBranch   `json:"solutions"`
}

type OpportunitySummary struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Status      Status `json:"status"`
}

type SolutionBranch struct {
	EdgeID      string             `json:"edgeId"`
	Confidence  *float64           `json:"confidence"`
	Solution    SolutionSummary    `json:"solution"`
	Assumptions []AssumptionBranch `json:"assumptions"`
}

type SolutionSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status Status `json:"status"`
}

type AssumptionBranch struct {
	EdgeID     string            `json:"edgeId"`
	Confidence *float64          `json:"confidence"`
	Assumption AssumptionSummary `json:"assumption"`
}

type AssumptionSummary struct {
	ID        string `json:"id"`
	Statement string `json:"statement"`
	Status    Status `json:"status"`
}
