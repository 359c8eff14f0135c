package server

import (
	"net/http"
	"strconv"
	"strings"

	auditdomain "github.com/anish-1308/ibilling/internal/audit/domain"
	"github.com/gin-gonic/gin"
)

// ListAuditLogs
// @Summary List audit trail entries
// @Tags audit
// @Produce json
// @Param action query string false "Filter by action"
// @Param target_type query string false "Filter by target type"
// @Param target_id query string false "Filter by target id"
// @Success 200 {object} map[string]any
// @Router /api/audit [get]
func (s *Server) ListAuditLogs(c *gin.Context) {
	if s.auditSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	filter := auditdomain.ListFilter{
		Action:     strings.TrimSpace(c.Query("action")),
		TargetType: strings.TrimSpace(c.Query("target_type")),
		TargetID:   strings.TrimSpace(c.Query("target_id")),
		ActorType:  strings.TrimSpace(c.Query("actor_type")),
		Limit:      limit,
	}

	logs, err := s.auditSvc.List(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": logs})
}
