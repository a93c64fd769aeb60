// Package server is the thin HTTP boundary over the graph service: route
// wiring, If-Match/ETag translation, list query parsing, and the mapping
// from failure kinds to status codes. No domain rules live here.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"compass/internal/etag"
	"compass/internal/problem"
	"compass/internal/service"
)

type Server struct {
	svc *service.Service
	log *slog.Logger
}

func New(svc *service.Service, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{svc: svc, log: log}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLog(), observeRequests())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metricsHandler())

	v1 := r.Group("/api/v1")

	v1.GET("/outcomes", s.ListOutcomes)
	v1.POST("/outcomes", s.CreateOutcome)
	v1.GET("/outcomes/:id", s.GetOutcome)
	v1.PATCH("/outcomes/:id", s.UpdateOutcome)
	v1.DELETE("/outcomes/:id", s.DeleteOutcome)

	v1.GET("/opportunities", s.ListOpportunities)
	v1.POST("/opportunities", s.CreateOpportunity)
	v1.GET("/opportunities/:id", s.GetOpportunity)
	v1.PATCH("/opportunities/:id", s.UpdateOpportunity)
	v1.DELETE("/opportunities/:id", s.DeleteOpportunity)

	v1.GET("/solutions", s.ListSolutions)
	v1.POST("/solutions", s.CreateSolution)
	v1.GET("/solutions/:id", s.GetSolution)
	v1.PATCH("/solutions/:id", s.UpdateSolution)
	v1.DELETE("/solutions/:id", s.DeleteSolution)

	v1.GET("/assumptions", s.ListAssumptions)
	v1.POST("/assumptions", s.CreateAssumption)
	v1.GET("/assumptions/:id", s.GetAssumption)
	v1.PATCH("/assumptions/:id", s.UpdateAssumption)
	v1.DELETE("/assumptions/:id", s.DeleteAssumption)

	v1.POST("/edges/outcome-opportunity", s.CreateOutcomeOpportunity)
	v1.DELETE("/edges/outcome-opportunity/:id", s.DeleteOutcomeOpportunity)
	v1.POST("/edges/opportunity-solution", s.CreateOpportunitySolution)
	v1.POST("/edges/opportunity-solution/batch", s.BatchCreateOpportunitySolution)
	v1.DELETE("/edges/opportunity-solution/:id", s.DeleteOpportunitySolution)
	v1.POST("/edges/solution-assumption", s.CreateSolutionAssumption)
	v1.DELETE("/edges/solution-assumption/:id", s.DeleteSolutionAssumption)

	v1.GET("/hypotheses", s.ListHypotheses)
	v1.POST("/hypotheses", s.CreateHypothesis)
	v1.GET("/hypotheses/:id", s.GetHypothesis)
	v1.PATCH("/hypotheses/:id", s.UpdateHypothesis)
	v1.DELETE("/hypotheses/:id", s.DeleteHypothesis)

	v1.GET("/experiments", s.ListExperiments)
	v1.POST("/experiments", s.CreateExperiment)
	v1.GET("/experiments/:id", s.GetExperiment)
	v1.PATCH("/experiments/:id", s.UpdateExperiment)
	v1.DELETE("/experiments/:id", s.DeleteExperiment)

	v1.GET("/insights", s.ListInsights)
	v1.POST("/insights", s.CreateInsight)
	v1.GET("/insights/:id", s.GetInsight)
	v1.PATCH("/insights/:id", s.UpdateInsight)
	v1.DELETE("/insights/:id", s.DeleteInsight)

	v1.GET("/trees/ost", s.OutcomeTree)

	return r
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// fail renders any error through the problem taxonomy.
func (s *Server) fail(c *gin.Context, err error) {
	p := problem.From(err)
	if p.Status >= http.StatusInternalServerError {
		s.log.Error("request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(p.Status, gin.H{"error": p})
}

func ifMatch(c *gin.Context) string {
	return c.GetHeader("If-Match")
}

// reply sets the concurrency token for the record and writes the body.
func reply(c *gin.Context, status int, body any, updatedAt time.Time) {
	if tok := etag.ToWeak(updatedAt); tok != "" {
		c.Header("ETag", tok)
	}
	c.JSON(status, body)
}
