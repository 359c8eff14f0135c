package server

import (
	"net/http"
	"strings"

	tourdomain "github.com/anish-1308/ibilling/internal/tour/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateTour(c *gin.Context) {
	var req tourdomain.CreateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.tourSvc.Create(c.Request.Context(), req, actorFrom(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "tour.create", "tour", resp.ID.String(), map[string]any{
		"title": resp.Title,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTours(c *gin.Context) {
	resp, err := s.tourSvc.List(
		c.Request.Context(),
		strings.TrimSpace(c.Query("emirate")),
		strings.TrimSpace(c.Query("category")),
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetTourByID(c *gin.Context) {
	resp, err := s.tourSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateTour(c *gin.Context) {
	var req tourdomain.UpdateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.tourSvc.Update(c.Request.Context(), id, req, actorFrom(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "tour.update", "tour", id, map[string]any{
		"title": resp.Title,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteTour(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.tourSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "tour.delete", "tour", id, nil)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
