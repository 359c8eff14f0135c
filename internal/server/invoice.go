package server

import (
	"net/http"
	"strings"

	invoicedomain "github.com/anish-1308/ibilling/internal/invoice/domain"
	"github.com/anish-1308/ibilling/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

// @Summary      Create Invoice
// @Description  Materialize a draft into a new invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body invoicedomain.Draft true "Invoice Draft"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices [post]
func (s *Server) CreateInvoice(c *gin.Context) {
	var draft invoicedomain.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.CreateFromDraft(c.Request.Context(), draft, actorFrom(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "invoice.create", "invoice", resp.ID.String(), map[string]any{
		"invoice_no": resp.InvoiceNo,
		"type":       string(resp.Type),
		"total":      resp.Total.String(),
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Preview Invoice
// @Description  Calculate a draft without saving it
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body invoicedomain.Draft true "Invoice Draft"
// @Success      200  {object}  invoicedomain.Preview
// @Router       /invoices/preview [post]
func (s *Server) PreviewInvoice(c *gin.Context) {
	var draft invoicedomain.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Preview(c.Request.Context(), draft)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Invoices
// @Description  List invoices with optional filters
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        status       query     string  false  "Status"
// @Param        type         query     string  false  "Invoice Type"
// @Param        customer_id  query     string  false  "Customer ID"
// @Param        invoice_no   query     string  false  "Invoice Number"
// @Param        page_token   query     string  false  "Page Token"
// @Param        page_size    query     int     false  "Page Size"
// @Success      200  {object}  invoicedomain.ListInvoiceResponse
// @Router       /invoices [get]
func (s *Server) ListInvoices(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status     string `form:"status"`
		Type       string `form:"type"`
		CustomerID string `form:"customer_id"`
		InvoiceNo  string `form:"invoice_no"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		Pagination: query.Pagination,
		Status:     strings.TrimSpace(query.Status),
		Type:       strings.TrimSpace(query.Type),
		CustomerID: strings.TrimSpace(query.CustomerID),
		InvoiceNo:  strings.TrimSpace(query.InvoiceNo),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Invoice
// @Description  Get invoice by ID with line items
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices/{id} [get]
func (s *Server) GetInvoice(c *gin.Context) {
	resp, err := s.invoiceSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Invoice
// @Description  Apply a partial edit; replacing items recomputes totals
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id       path  string                              true  "Invoice ID"
// @Param        request  body  invoicedomain.UpdateInvoiceRequest  true  "Update Request"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices/{id} [patch]
func (s *Server) UpdateInvoice(c *gin.Context) {
	var req invoicedomain.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.invoiceSvc.Update(c.Request.Context(), id, req, actorFrom(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "invoice.update", "invoice", id, map[string]any{
		"invoice_no": resp.InvoiceNo,
		"total":      resp.Total.String(),
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Invoice
// @Description  Soft delete an invoice
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  map[string]string
// @Router       /invoices/{id} [delete]
func (s *Server) DeleteInvoice(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.invoiceSvc.SoftDelete(c.Request.Context(), id, actorFrom(c)); err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "invoice.delete", "invoice", id, nil)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      Record Payment
// @Description  Record a payment against an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id       path  string                              true  "Invoice ID"
// @Param        request  body  invoicedomain.RecordPaymentRequest  true  "Payment"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices/{id}/payments [post]
func (s *Server) RecordInvoicePayment(c *gin.Context) {
	var req invoicedomain.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.invoiceSvc.RecordPayment(c.Request.Context(), id, req, actorFrom(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "invoice.payment", "invoice", id, map[string]any{
		"invoice_no": resp.InvoiceNo,
		"amount":     req.Amount.String(),
		"method":     req.Method,
		"status":     string(resp.Status),
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Send Invoice
// @Description  Mark a draft invoice as sent
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices/{id}/send [post]
func (s *Server) SendInvoice(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.invoiceSvc.MarkSent(c.Request.Context(), id, actorFrom(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "invoice.send", "invoice", id, map[string]any{
		"invoice_no": resp.InvoiceNo,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
