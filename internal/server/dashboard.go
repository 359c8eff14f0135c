package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (s *Server) DashboardStats(c *gin.Context) {
	if s.dashboardSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	days, _ := strconv.Atoi(c.Query("days"))
	resp, err := s.dashboardSvc.Stats(c.Request.Context(), days)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DashboardActivity(c *gin.Context) {
	if s.dashboardSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	resp, err := s.dashboardSvc.RecentActivity(c.Request.Context(), 15)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": resp.Activity})
}
