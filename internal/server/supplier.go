package server

import (
	"net/http"
	"strings"

	supplierdomain "github.com/anish-1308/ibilling/internal/supplier/domain"
	"github.com/anish-1308/ibilling/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateSupplier(c *gin.Context) {
	var req supplierdomain.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.supplierSvc.Create(c.Request.Context(), req, actorFrom(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "supplier.create", "supplier", resp.ID.String(), map[string]any{
		"name": resp.Name,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListSuppliers(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Name string `form:"name"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.supplierSvc.List(c.Request.Context(), supplierdomain.ListSupplierRequest{
		Pagination: query.Pagination,
		Name:       strings.TrimSpace(query.Name),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetSupplierByID(c *gin.Context) {
	resp, err := s.supplierSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateSupplier(c *gin.Context) {
	var req supplierdomain.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.supplierSvc.Update(c.Request.Context(), id, req, actorFrom(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "supplier.update", "supplier", id, map[string]any{
		"name": resp.Name,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteSupplier(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.supplierSvc.SoftDelete(c.Request.Context(), id, actorFrom(c)); err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "supplier.delete", "supplier", id, nil)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
