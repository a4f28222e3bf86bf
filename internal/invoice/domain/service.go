package domain

import (
	"context"
	"errors"

	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/pkg/db/pagination"
)

type ListInvoiceRequest struct {
	pagination.Pagination

	Status     *InvoiceStatus
	CustomerID *string
	// PayableOnly keeps only invoices eligible for further payment.
	PayableOnly bool
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []Invoice `json:"invoices"`
}

type CreateInvoiceRequest struct {
	CustomerID    string
	InvoiceNumber string
	TotalAmount   int64
	Currency      string
	DueAt         *string
	// Draft invoices are not yet billable and never receive payments.
	Draft    bool
	Metadata map[string]any
}

type Service interface {
	List(context.Context, ListInvoiceRequest) (ListInvoiceResponse, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	Create(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error)
}

var (
	ErrInvalidInvoiceID = errors.New("invalid_invoice_id")
	ErrInvalidCustomer  = errors.New("invalid_customer")
	ErrInvalidAmount    = errors.New("invalid_amount")
	ErrInvalidCurrency  = errors.New("invalid_currency")
	ErrInvalidDueDate   = errors.New("invalid_due_date")
	ErrInvoiceNotFound  = errors.New("invoice_not_found")
)
