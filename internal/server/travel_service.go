package server

import (
	"net/http"
	"strings"

	traveldomain "github.com/anish-1308/ibilling/internal/travelservice/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateTravelService(c *gin.Context) {
	var req traveldomain.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.travelSvc.Create(c.Request.Context(), req, actorFrom(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "travel_service.create", "travel_service", resp.ID.String(), map[string]any{
		"name": resp.Name,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTravelServices(c *gin.Context) {
	resp, err := s.travelSvc.List(c.Request.Context(), strings.TrimSpace(c.Query("category")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetTravelServiceByID(c *gin.Context) {
	resp, err := s.travelSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateTravelService(c *gin.Context) {
	var req traveldomain.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.travelSvc.Update(c.Request.Context(), id, req, actorFrom(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "travel_service.update", "travel_service", id, map[string]any{
		"name": resp.Name,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteTravelService(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.travelSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "travel_service.delete", "travel_service", id, nil)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
