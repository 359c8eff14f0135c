package server

import (
	"net/http"
	"strings"

	customerdomain "github.com/anish-1308/ibilling/internal/customer/domain"
	"github.com/anish-1308/ibilling/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

// @Summary      Create Customer
// @Description  Create a new customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body customerdomain.CreateCustomerRequest true "Create Customer Request"
// @Success      200  {object}  customerdomain.Customer
// @Router       /customers [post]
func (s *Server) CreateCustomer(c *gin.Context) {
	var req customerdomain.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.Create(c.Request.Context(), req, actorFrom(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "customer.create", "customer", resp.ID.String(), map[string]any{
		"name":  resp.Name,
		"email": resp.Email,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Customers
// @Description  List customers with optional filters
// @Tags         customers
// @Produce      json
// @Param        name        query     string  false  "Name"
// @Param        email       query     string  false  "Email"
// @Param        type        query     string  false  "Customer Type"
// @Param        page_token  query     string  false  "Page Token"
// @Param        page_size   query     int     false  "Page Size"
// @Success      200  {object}  customerdomain.ListCustomerResponse
// @Router       /customers [get]
func (s *Server) ListCustomers(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Name  string `form:"name"`
		Email string `form:"email"`
		Type  string `form:"type"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.List(c.Request.Context(), customerdomain.ListCustomerRequest{
		Pagination: query.Pagination,
		Name:       strings.TrimSpace(query.Name),
		Email:      strings.TrimSpace(query.Email),
		Type:       strings.TrimSpace(query.Type),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Customer
// @Description  Get customer by ID
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  customerdomain.Customer
// @Router       /customers/{id} [get]
func (s *Server) GetCustomerByID(c *gin.Context) {
	resp, err := s.customerSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Customer
// @Description  Apply a partial customer edit
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id       path  string                                true  "Customer ID"
// @Param        request  body  customerdomain.UpdateCustomerRequest  true  "Update Request"
// @Success      200  {object}  customerdomain.Customer
// @Router       /customers/{id} [patch]
func (s *Server) UpdateCustomer(c *gin.Context) {
	var req customerdomain.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.customerSvc.Update(c.Request.Context(), id, req, actorFrom(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "customer.update", "customer", id, map[string]any{
		"name": resp.Name,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Customer
// @Description  Soft delete a customer
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  map[string]string
// @Router       /customers/{id} [delete]
func (s *Server) DeleteCustomer(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.customerSvc.SoftDelete(c.Request.Context(), id, actorFrom(c)); err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "customer.delete", "customer", id, nil)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
