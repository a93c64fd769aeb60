package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"compass/internal/schema"
)

func (s *Server) CreateOutcomeOpportunity(c *gin.Context) {
	in, err := schema.ParseOutcomeOpportunityCreate(c.Request.Body)
	if err != nil {
		s.fail(c, err)
		return
	}
	rec, err := s.svc.CreateOutcomeOpportunity(c.Request.Context(), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusCreated, rec, rec.UpdatedAt)
}

func (s *Server) DeleteOutcomeOpportunity(c *gin.Context) {
	if err := s.svc.DeleteOutcomeOpportunity(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) CreateOpportunitySolution(c *gin.Context) {
	in, err := schema.ParseOpportunitySolutionCreate(c.Request.Body)
	if err != nil {
		s.fail(c, err)
		return
	}
	rec, err := s.svc.CreateOpportunitySolution(c.Request.Context(), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusCreated, rec, rec.UpdatedAt)
}

func (s *Server) BatchCreateOpportunitySolution(c *gin.Context) {
	in, err := schema.ParseOpportunitySolutionBatch(c.Request.Body)
	if err != nil {
		s.fail(c, err)
		return
	}
	created, err := s.svc.BatchCreateOpportunitySolution(c.Request.Context(), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": created, "meta": gin.H{"count": len(created)}})
}

func (s *Server) DeleteOpportunitySolution(c *gin.Context) {
	if err := s.svc.DeleteOpportunitySolution(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) CreateSolutionAssumption(c *gin.Context) {
	in, err := schema.ParseSolutionAssumptionCreate(c.Request.Body)
	if err != nil {
		s.fail(c, err)
		return
	}
	rec, err := s.svc.CreateSolutionAssumption(c.Request.Context(), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusCreated, rec, rec.UpdatedAt)
}

func (s *Server) DeleteSolutionAssumption(c *gin.Context) {
	if err := s.svc.DeleteSolutionAssumption(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
