package server

import (
	"net/http"
	"strings"

	auditdomain "github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/audit/domain"
	invoicedomain "github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/invoice/domain"
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

type createInvoiceRequest struct {
	CustomerID    string         `json:"customer_id"`
	InvoiceNumber string         `json:"invoice_number"`
	TotalAmount   int64          `json:"total_amount"`
	Currency      string         `json:"currency"`
	DueAt         *string        `json:"due_at,omitempty"`
	Draft         bool           `json:"draft"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// @Summary      List Invoices
// @Description  List invoices with optional status filtering
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        status       query     string  false  "Status"
// @Param        customer_id  query     string  false  "Customer ID"
// @Param        payable      query     bool    false  "Payable invoices only"
// @Param        page_token   query     string  false  "Page Token"
// @Param        page_size    query     int     false  "Page Size"
// @Success      200  {object}  invoicedomain.ListInvoiceResponse
// @Router       /invoices [get]
func (s *Server) ListInvoices(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status     string `form:"status"`
		CustomerID string `form:"customer_id"`
		Payable    bool   `form:"payable"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req := invoicedomain.ListInvoiceRequest{
		Pagination:  query.Pagination,
		PayableOnly: query.Payable,
	}
	if status := strings.TrimSpace(query.Status); status != "" {
		parsed := invoicedomain.InvoiceStatus(strings.ToUpper(status))
		req.Status = &parsed
	}
	if customerID := strings.TrimSpace(query.CustomerID); customerID != "" {
		req.CustomerID = &customerID
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Invoice
// @Description  Get invoice by ID
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices/{id} [get]
func (s *Server) GetInvoiceByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Create Invoice
// @Description  Create a new invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request body createInvoiceRequest true "Create Invoice Request"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices [post]
func (s *Server) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), invoicedomain.CreateInvoiceRequest{
		CustomerID:    strings.TrimSpace(req.CustomerID),
		InvoiceNumber: strings.TrimSpace(req.InvoiceNumber),
		TotalAmount:   req.TotalAmount,
		Currency:      strings.TrimSpace(req.Currency),
		DueAt:         req.DueAt,
		Draft:         req.Draft,
		Metadata:      req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := resp.ID.String()
		_ = s.auditSvc.AuditLog(c.Request.Context(), auditdomain.ActorTypeUser, "", "invoice.create", "invoice", &targetID, map[string]any{
			"invoice_id":   targetID,
			"total_amount": resp.TotalAmount,
			"currency":     resp.Currency,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
