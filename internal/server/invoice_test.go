package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	billingdomain "github.com/anish-1308/ibilling/internal/billing/domain"
	invoicedomain "github.com/anish-1308/ibilling/internal/invoice/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type stubInvoiceService struct {
	invoicedomain.Service

	preview    invoicedomain.Preview
	previewErr error
	getErr     error
}

func (s *stubInvoiceService) Preview(context.Context, invoicedomain.Draft) (invoicedomain.Preview, error) {
	return s.preview, s.previewErr
}

func (s *stubInvoiceService) Get(context.Context, string) (invoicedomain.Invoice, error) {
	return invoicedomain.Invoice{}, s.getErr
}

func newTestServer(stub *stubInvoiceService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	server := &Server{
		log:        zap.NewNop(),
		invoiceSvc: stub,
	}
	engine.POST("/api/invoices/preview", server.PreviewInvoice)
	engine.GET("/api/invoices/:id", server.GetInvoice)
	return engine
}

func TestPreviewInvoiceOK(t *testing.T) {
	stub := &stubInvoiceService{
		preview: invoicedomain.Preview{Type: billingdomain.InvoiceTypeActivities},
	}
	engine := newTestServer(stub)

	body := `{"customer_id":"1","type":"activities","items":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/invoices/preview", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d body: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data invoicedomain.Preview `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Type != billingdomain.InvoiceTypeActivities {
		t.Fatalf("type: %q", resp.Data.Type)
	}
}

func TestPreviewInvoiceBadBody(t *testing.T) {
	engine := newTestServer(&stubInvoiceService{})

	req := httptest.NewRequest(http.MethodPost, "/api/invoices/preview", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", rec.Code)
	}
}

func TestPreviewInvoiceMixedKindsMapsTo400(t *testing.T) {
	stub := &stubInvoiceService{previewErr: billingdomain.ErrItemKindMismatch}
	engine := newTestServer(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/invoices/preview", strings.NewReader(`{"type":"activities"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "item_kind_mismatch") {
		t.Fatalf("body: %s", rec.Body.String())
	}
}

func TestGetInvoiceNotFoundMapsTo404(t *testing.T) {
	stub := &stubInvoiceService{getErr: invoicedomain.ErrInvoiceNotFound}
	engine := newTestServer(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/123", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: %d", rec.Code)
	}
}

func TestGetInvoiceUnexpectedErrorIsOpaque500(t *testing.T) {
	stub := &stubInvoiceService{getErr: context.DeadlineExceeded}
	engine := newTestServer(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/123", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "internal_error") {
		t.Fatalf("body: %s", rec.Body.String())
	}
}
