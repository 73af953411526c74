package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// listRuns handles GET /api/v1/runs
func (s *Server) listRuns(c *gin.Context) {
	if s.store == nil {
		s.errorResponseStatus(c, http.StatusServiceUnavailable, "Audit log not configured")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 500 {
		limit = 20
	}

	runs, err := s.store.Recent(c.Request.Context(), limit)
	if err != nil {
		s.errorResponseStatus(c, http.StatusInternalServerError, "Failed to list runs: "+err.Error())
		return
	}

	s.successResponse(c, gin.H{"runs": runs})
}
