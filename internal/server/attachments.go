package server

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"compass/internal/model"
	"compass/internal/page"
	"compass/internal/schema"
)

// Responses carry the flat target wire format (type tag + seven nullable
// id fields), not the internal tagged union.

type hypothesisResponse struct {
	ID         string                 `json:"id"`
	Statement  string                 `json:"statement"`
	TargetType model.RelationshipType `json:"targetType"`
	schema.TargetFields
	CreatedByID *string   `json:"createdById,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func renderHypothesis(h model.Hypothesis) hypothesisResponse {
	return hypothesisResponse{
		ID:           h.ID,
		Statement:    h.Statement,
		TargetType:   h.Target.Type,
		TargetFields: schema.FlatTarget(h.Target),
		CreatedByID:  h.CreatedByID,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
	}
}

type insightResponse struct {
	ID               string                 `json:"id"`
	ExperimentID     string                 `json:"experimentId"`
	RelationshipType model.RelationshipType `json:"relationshipType"`
	schema.TargetFields
	ValidationState model.ValidationState `json:"validationState"`
	ConfidenceLevel *model.Level          `json:"confidenceLevel,omitempty"`
	Statement       string                `json:"statement"`
	EvidenceSummary string                `json:"evidenceSummary"`
	SourceTypes     []string              `json:"sourceTypes"`
	Tags            []string              `json:"tags"`
	LifecycleStage  *model.LifecycleStage `json:"lifecycleStage,omitempty"`
	PrivacyLevel    *model.PrivacyLevel   `json:"privacyLevel,omitempty"`
	DiscoveredOn    *time.Time            `json:"discoveredOn,omitempty"`
	ValidUntil      *time.Time            `json:"validUntil,omitempty"`
	DedupeHash      string                `json:"dedupeHash,omitempty"`
	CreatedByID     *string               `json:"createdById,omitempty"`
	ReviewedByID    *string               `json:"reviewedById,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

func renderInsight(i model.Insight) insightResponse {
	return insightResponse{
		ID:               i.ID,
		ExperimentID:     i.ExperimentID,
		RelationshipType: i.Target.Type,
		TargetFields:     schema.FlatTarget(i.Target),
		ValidationState:  i.ValidationState,
		ConfidenceLevel:  i.ConfidenceLevel,
		Statement:        i.Statement,
		EvidenceSummary:  i.EvidenceSummary,
		SourceTypes:      i.SourceTypes,
		Tags:             i.Tags,
		LifecycleStage:   i.LifecycleStage,
		PrivacyLevel:     i.PrivacyLevel,
		DiscoveredOn:     i.DiscoveredOn,
		ValidUntil:       i.ValidUntil,
		DedupeHash:       i.DedupeHash,
		CreatedByID:      i.CreatedByID,
		ReviewedByID:     i.ReviewedByID,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}

func renderPage[T any, R any](res page.Result[T], render func(T) R) page.Result[R] {
	out := page.Result[R]{Data: make([]R, 0, len(res.Data)), Meta: res.Meta}
	for _, item := range res.Data {
		out.Data = append(out.Data, render(item))
	}
	return out
}

func (s *Server) CreateHypothesis(c *gin.Context) {
	in, err := schema.ParseHypothesisCreate(c.Request.Body)
	if err != nil {
		s.fail(c, err)
		return
	}
	rec, err := s.svc.CreateHypothesis(c.Request.Context(), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusCreated, renderHypothesis(rec), rec.UpdatedAt)
}

func (s *Server) GetHypothesis(c *gin.Context) {
	rec, err := s.svc.GetHypothesis(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusOK, renderHypothesis(rec), rec.UpdatedAt)
}

func (s *Server) UpdateHypothesis(c *gin.Context) {
	in, err := schema.ParseHypothesisUpdate(c.Request.Body)
	if err != nil {
		s.fail(c, err)
		return
	}
	rec, err := s.svc.UpdateHypothesis(c.Request.Context(), c.Param("id"), ifMatch(c), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusOK, renderHypothesis(rec), rec.UpdatedAt)
}

func (s *Server) DeleteHypothesis(c *gin.Context) {
	if err := s.svc.DeleteHypothesis(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) ListHypotheses(c *gin.Context) {
	values := c.Request.URL.Query()
	q, err := schema.ParseListQuery(values)
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := q.Enum(values, "targetType",
		"OUTCOME_OPPORTUNITY", "OPPORTUNITY_SOLUTION", "SOLUTION_ASSUMPTION", "NODE"); err != nil {
		s.fail(c, err)
		return
	}
	for _, name := range []string{
		"assumptionId", "outcomeOpportunityId", "opportunitySolutionId",
		"solutionAssumptionId", "outcomeId", "opportunityId", "solutionId",
	} {
		q.Where(values, name)
	}
	res, err := s.svc.ListHypotheses(c.Request.Context(), q)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, renderPage(res, renderHypothesis))
}

func (s *Server) CreateExperiment(c *gin.Context) {
	in, err := schema.ParseExperimentCreate(c.Request.Body)
	if err != nil {
		s.fail(c, err)
		return
	}
	rec, err := s.svc.CreateExperiment(c.Request.Context(), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusCreated, rec, rec.UpdatedAt)
}

func (s *Server) GetExperiment(c *gin.Context) {
	rec, err := s.svc.GetExperiment(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusOK, rec, rec.UpdatedAt)
}

func (s *Server) UpdateExperiment(c *gin.Context) {
	in, err := schema.ParseExperimentUpdate(c.Request.Body)
	if err != nil {
		s.fail(c, err)
		return
	}
	rec, err := s.svc.UpdateExperiment(c.Request.Context(), c.Param("id"), ifMatch(c), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusOK, rec, rec.UpdatedAt)
}

func (s *Server) DeleteExperiment(c *gin.Context) {
	if err := s.svc.DeleteExperiment(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) ListExperiments(c *gin.Context) {
	values := c.Request.URL.Query()
	q, err := schema.ParseListQuery(values)
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := q.Enum(values, "status", "PLANNED", "RUNNING", "COMPLETE", "ARCHIVED"); err != nil {
		s.fail(c, err)
		return
	}
	q.Where(values, "hypothesisId")
	res, err := s.svc.ListExperiments(c.Request.Context(), q)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) CreateInsight(c *gin.Context) {
	in, err := schema.ParseInsightCreate(c.Request.Body)
	if err != nil {
		s.fail(c, err)
		return
	}
	rec, err := s.svc.CreateInsight(c.Request.Context(), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusCreated, renderInsight(rec), rec.UpdatedAt)
}

func (s *Server) GetInsight(c *gin.Context) {
	rec, err := s.svc.GetInsight(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusOK, renderInsight(rec), rec.UpdatedAt)
}

func (s *Server) UpdateInsight(c *gin.Context) {
	in, err := schema.ParseInsightUpdate(c.Request.Body)
	if err != nil {
		s.fail(c, err)
		return
	}
	rec, err := s.svc.UpdateInsight(c.Request.Context(), c.Param("id"), ifMatch(c), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusOK, renderInsight(rec), rec.UpdatedAt)
}

func (s *Server) DeleteInsight(c *gin.Context) {
	if err := s.svc.DeleteInsight(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) ListInsights(c *gin.Context) {
	values := c.Request.URL.Query()
	q, err := schema.ParseListQuery(values)
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := q.Enum(values, "relationshipType",
		"OUTCOME_OPPORTUNITY", "OPPORTUNITY_SOLUTION", "SOLUTION_ASSUMPTION", "NODE"); err != nil {
		s.fail(c, err)
		return
	}
	if err := q.Enum(values, "validationState",
		"SUPPORTS", "WEAKENS", "FALSIFIES", "INCONCLUSIVE"); err != nil {
		s.fail(c, err)
		return
	}
	// status is an accepted alias for validationState on this listing.
	if raw := values.Get("status"); raw != "" {
		if err := q.Enum(url.Values{"validationState": {raw}}, "validationState",
			"SUPPORTS", "WEAKENS", "FALSIFIES", "INCONCLUSIVE"); err != nil {
			s.fail(c, err)
			return
		}
	}
	if err := q.Enum(values, "confidenceLevel", "LOW", "MEDIUM", "HIGH"); err != nil {
		s.fail(c, err)
		return
	}
	if err := q.Enum(values, "lifecycleStage",
		"DISCOVERED", "TRIANGULATED", "VALIDATED", "INSTITUTIONALIZED", "OBSOLETE"); err != nil {
		s.fail(c, err)
		return
	}
	if err := q.Enum(values, "privacyLevel", "PUBLIC", "INTERNAL", "RESTRICTED"); err != nil {
		s.fail(c, err)
		return
	}
	q.Where(values, "experimentId")
	res, err := s.svc.ListInsights(c.Request.Context(), q)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, renderPage(res, renderInsight))
}
