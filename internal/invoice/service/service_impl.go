package service

import (
	"context"
	"strings"
	"time"

	invoicedomain "github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/invoice/domain"
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  invoicedomain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  invoicedomain.Repository
}

func NewService(p Params) invoicedomain.Service {
	return &Service{
		log:   p.Log.Named("invoice.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

// List reads through the repository so the local database and the remote
// record store serve the same invoice view. Filters and pagination apply to
// the fetched list.
func (s *Service) List(ctx context.Context, req invoicedomain.ListInvoiceRequest) (invoicedomain.ListInvoiceResponse, error) {
	page := req.Pagination.Normalize()

	var customerID snowflake.ID
	if req.CustomerID != nil {
		parsed, err := snowflake.ParseString(strings.TrimSpace(*req.CustomerID))
		if err != nil {
			return invoicedomain.ListInvoiceResponse{}, invoicedomain.ErrInvalidCustomer
		}
		customerID = parsed
	}

	invoices, err := s.repo.List(ctx)
	if err != nil {
		return invoicedomain.ListInvoiceResponse{}, err
	}

	filtered := make([]invoicedomain.Invoice, 0, len(invoices))
	for _, invoice := range invoices {
		if req.Status != nil && invoice.Status != *req.Status {
			continue
		}
		if req.PayableOnly && !invoice.IsPayable() {
			continue
		}
		if req.CustomerID != nil && invoice.CustomerID != customerID {
			continue
		}
		filtered = append(filtered, invoice)
	}

	total := int64(len(filtered))
	offset := page.Offset()
	if offset > len(filtered) {
		offset = len(filtered)
	}
	end := offset + page.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return invoicedomain.ListInvoiceResponse{
		PageInfo: pagination.PageInfo{
			NextPageToken: pagination.NextToken(offset, page.PageSize, total),
			TotalSize:     total,
		},
		Invoices: filtered[offset:end],
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (invoicedomain.Invoice, error) {
	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidInvoiceID
	}
	invoice, err := s.repo.FindByID(ctx, invoiceID)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	return *invoice, nil
}

func (s *Service) Create(ctx context.Context, req invoicedomain.CreateInvoiceRequest) (*invoicedomain.Invoice, error) {
	customerID, err := snowflake.ParseString(strings.TrimSpace(req.CustomerID))
	if err != nil {
		return nil, invoicedomain.ErrInvalidCustomer
	}
	if req.TotalAmount < 0 {
		return nil, invoicedomain.ErrInvalidAmount
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		return nil, invoicedomain.ErrInvalidCurrency
	}

	var dueAt *time.Time
	if req.DueAt != nil && strings.TrimSpace(*req.DueAt) != "" {
		parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(*req.DueAt))
		if err != nil {
			return nil, invoicedomain.ErrInvalidDueDate
		}
		utc := parsed.UTC()
		dueAt = &utc
	}

	status := invoicedomain.InvoiceStatusUnpaid
	if req.Draft {
		status = invoicedomain.InvoiceStatusDraft
	}

	now := time.Now().UTC()
	invoice := &invoicedomain.Invoice{
		ID:            s.genID.Generate(),
		CustomerID:    customerID,
		InvoiceNumber: strings.TrimSpace(req.InvoiceNumber),
		Status:        status,
		TotalAmount:   req.TotalAmount,
		Currency:      currency,
		IssuedAt:      &now,
		DueAt:         dueAt,
		Metadata:      datatypes.JSONMap{},
	}
	if req.Metadata != nil {
		invoice.Metadata = datatypes.JSONMap(req.Metadata)
	}

	if err := s.repo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("status", string(invoice.Status)),
		zap.Int64("total_amount", invoice.TotalAmount),
	)
	return invoice, nil
}
