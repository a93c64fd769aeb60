package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) OutcomeTree(c *gin.Context) {
	includeDeprecated := c.Query("includeDeprecated") == "true"
	tree, err := s.svc.OutcomeTree(c.Request.Context(), includeDeprecated)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tree)
}
