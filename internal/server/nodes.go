package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"compass/internal/schema"
)

func (s *Server) CreateOutcome(c *gin.Context) {
	in, err := schema.ParseOutcomeCreate(c.Request.Body)
	if err != nil {
		s.fail(c, err)
		return
	}
	rec, err := s.svc.CreateOutcome(c.Request.Context(), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusCreated, rec, rec.UpdatedAt)
}

func (s *Server) GetOutcome(c *gin.Context) {
	rec, err := s.svc.GetOutcome(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusOK, rec, rec.UpdatedAt)
}

func (s *Server) UpdateOutcome(c *gin.Context) {
	in, err := schema.ParseOutcomeUpdate(c.Request.Body)
	if err != nil {
		s.fail(c, err)
		return
	}
	rec, err := s.svc.UpdateOutcome(c.Request.Context(), c.Param("id"), ifMatch(c), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusOK, rec, rec.UpdatedAt)
}

func (s *Server) DeleteOutcome(c *gin.Context) {
	rec, err := s.svc.DeprecateOutcome(c.Request.Context(), c.Param("id"), ifMatch(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusOK, rec, rec.UpdatedAt)
}

func (s *Server) ListOutcomes(c *gin.Context) {
	q, err := schema.ParseListQuery(c.Request.URL.Query())
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := q.Status(c.Request.URL.Query()); err != nil {
		s.fail(c, err)
		return
	}
	res, err := s.svc.ListOutcomes(c.Request.Context(), q)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) CreateOpportunity(c *gin.Context) {
	in, err := schema.ParseOpportunityCreate(c.Request.Body)
	if err != nil {
		s.fail(c, err)
		return
	}
	rec, err := s.svc.CreateOpportunity(c.Request.Context(), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusCreated, rec, rec.UpdatedAt)
}

func (s *Server) GetOpportunity(c *gin.Context) {
	rec, err := s.svc.GetOpportunity(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusOK, rec, rec.UpdatedAt)
}

func (s *Server) UpdateOpportunity(c *gin.Context) {
	in, err := schema.ParseOpportunityUpdate(c.Request.Body)
	if err != nil {
		s.fail(c, err)
		return
	}
	rec, err := s.svc.UpdateOpportunity(c.Request.Context(), c.Param("id"), ifMatch(c), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusOK, rec, rec.UpdatedAt)
}

func (s *Server) DeleteOpportunity(c *gin.Context) {
	rec, err := s.svc.DeprecateOpportunity(c.Request.Context(), c.Param("id"), ifMatch(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusOK, rec, rec.UpdatedAt)
}

func (s *Server) ListOpportunities(c *gin.Context) {
	q, err := schema.ParseListQuery(c.Request.URL.Query())
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := q.Status(c.Request.URL.Query()); err != nil {
		s.fail(c, err)
		return
	}
	res, err := s.svc.ListOpportunities(c.Request.Context(), q)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) CreateSolution(c *gin.Context) {
	in, err := schema.ParseSolutionCreate(c.Request.Body)
	if err != nil {
		s.fail(c, err)
		return
	}
	rec, err := s.svc.CreateSolution(c.Request.Context(), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusCreated, rec, rec.UpdatedAt)
}

func (s *Server) GetSolution(c *gin.Context) {
	rec, err := s.svc.GetSolution(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusOK, rec, rec.UpdatedAt)
}

func (s *Server) UpdateSolution(c *gin.Context) {
	in, err := schema.ParseSolutionUpdate(c.Request.Body)
	if err != nil {
		s.fail(c, err)
		return
	}
	rec, err := s.svc.UpdateSolution(c.Request.Context(), c.Param("id"), ifMatch(c), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusOK, rec, rec.UpdatedAt)
}

func (s *Server) DeleteSolution(c *gin.Context) {
	rec, err := s.svc.DeprecateSolution(c.Request.Context(), c.Param("id"), ifMatch(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusOK, rec, rec.UpdatedAt)
}

func (s *Server) ListSolutions(c *gin.Context) {
	q, err := schema.ParseListQuery(c.Request.URL.Query())
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := q.Status(c.Request.URL.Query()); err != nil {
		s.fail(c, err)
		return
	}
	res, err := s.svc.ListSolutions(c.Request.Context(), q)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) CreateAssumption(c *gin.Context) {
	in, err := schema.ParseAssumptionCreate(c.Request.Body)
	if err != nil {
		s.fail(c, err)
		return
	}
	rec, err := s.svc.CreateAssumption(c.Request.Context(), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusCreated, rec, rec.UpdatedAt)
}

func (s *Server) GetAssumption(c *gin.Context) {
	rec, err := s.svc.GetAssumption(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusOK, rec, rec.UpdatedAt)
}

func (s *Server) UpdateAssumption(c *gin.Context) {
	in, err := schema.ParseAssumptionUpdate(c.Request.Body)
	if err != nil {
		s.fail(c, err)
		return
	}
	rec, err := s.svc.UpdateAssumption(c.Request.Context(), c.Param("id"), ifMatch(c), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusOK, rec, rec.UpdatedAt)
}

func (s *Server) DeleteAssumption(c *gin.Context) {
	rec, err := s.svc.DeprecateAssumption(c.Request.Context(), c.Param("id"), ifMatch(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	reply(c, http.StatusOK, rec, rec.UpdatedAt)
}

func (s *Server) ListAssumptions(c *gin.Context) {
	q, err := schema.ParseListQuery(c.Request.URL.Query())
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := q.Status(c.Request.URL.Query()); err != nil {
		s.fail(c, err)
		return
	}
	res, err := s.svc.ListAssumptions(c.Request.Context(), q)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
