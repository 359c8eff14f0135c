package server

import (
	"net/http"
	"strings"

	inventorydomain "github.com/anish-1308/ibilling/internal/inventory/domain"
	"github.com/anish-1308/ibilling/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateInventoryItem(c *gin.Context) {
	var req inventorydomain.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.inventorySvc.Create(c.Request.Context(), req, actorFrom(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "inventory.create", "inventory_item", resp.ID.String(), map[string]any{
		"name":      resp.Name,
		"item_type": string(resp.ItemType),
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListInventoryItems(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Name     string `form:"name"`
		ItemType string `form:"item_type"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.inventorySvc.List(c.Request.Context(), inventorydomain.ListItemRequest{
		Pagination: query.Pagination,
		Name:       strings.TrimSpace(query.Name),
		ItemType:   strings.TrimSpace(query.ItemType),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInventoryItemByID(c *gin.Context) {
	resp, err := s.inventorySvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateInventoryItem(c *gin.Context) {
	var req inventorydomain.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.inventorySvc.Update(c.Request.Context(), id, req, actorFrom(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "inventory.update", "inventory_item", id, map[string]any{
		"name": resp.Name,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteInventoryItem(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.inventorySvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "inventory.delete", "inventory_item", id, nil)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
