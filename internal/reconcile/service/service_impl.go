package service

import (
	"context"
	"errors"
	"time"

	auditdomain "github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/audit/domain"
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/clock"
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/events"
	invoicedomain "github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/invoice/domain"
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/observability/metrics"
	reconciledomain "github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/reconcile/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config fixes the failure contract of a batch run.
type Config struct {
	// ContinueOnError keeps applying the remaining invoices after one
	// persistence call fails. When false the batch aborts on first failure;
	// already-applied updates are never rolled back either way.
	ContinueOnError bool
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Repo     invoicedomain.Repository
	Clock    clock.Clock
	Config   Config
	AuditSvc auditdomain.Service   `optional:"true"`
	Outbox   *events.Outbox        `optional:"true"`
	Metrics  *metrics.BatchMetrics `optional:"true"`
}

type Service struct {
	log      *zap.Logger
	repo     invoicedomain.Repository
	clock    clock.Clock
	cfg      Config
	auditSvc auditdomain.Service
	outbox   *events.Outbox
	metrics  *metrics.BatchMetrics
}

func NewService(p Params) reconciledomain.Service {
	return &Service{
		log:      p.Log.Named("reconcile.service"),
		repo:     p.Repo,
		clock:    p.Clock,
		cfg:      p.Config,
		auditSvc: p.AuditSvc,
		outbox:   p.Outbox,
		metrics:  p.Metrics,
	}
}

// ApplyBatch runs one batch payment over the current invoice list. Updates
// are issued one at a time, each a full-record replace, so a later writer
// wins without coordination; the caller re-fetches after a failed run.
func (s *Service) ApplyBatch(ctx context.Context, req reconciledomain.PaymentBatchRequest) (reconciledomain.BatchReport, error) {
	var report reconciledomain.BatchReport

	invoices, err := s.repo.List(ctx)
	if err != nil {
		if errors.Is(err, invoicedomain.ErrUnauthorized) {
			s.observe("unauthorized", report)
			return report, err
		}
		return report, err
	}

	payable := reconciledomain.SelectPayable(invoices)
	if err := req.Validate(payable); err != nil {
		s.observe("validation_failed", report)
		return report, err
	}

	now := s.clock.Now()
	for _, invoice := range payable {
		amount := invoice.ClampPayment(req.Amounts[invoice.ID])
		if amount <= 0 {
			report.Skipped = append(report.Skipped, invoice.ID)
			continue
		}

		if err := ctx.Err(); err != nil {
			report.Aborted = true
			s.finish(ctx, "aborted", req, report)
			return report, err
		}

		updated := applyPayment(invoice, amount, req, now)
		stored, err := s.repo.Update(ctx, updated)
		if err != nil {
			if errors.Is(err, invoicedomain.ErrUnauthorized) {
				report.Aborted = true
				s.finish(ctx, "unauthorized", req, report)
				return report, err
			}

			report.Failed = append(report.Failed, reconciledomain.FailedUpdate{
				InvoiceID: invoice.ID,
				Error:     err.Error(),
			})
			s.log.Warn("invoice update failed",
				zap.String("invoice_id", invoice.ID.String()),
				zap.Error(err),
			)
			if !s.cfg.ContinueOnError {
				report.Aborted = true
				break
			}
			continue
		}

		report.Applied = append(report.Applied, reconciledomain.AppliedPayment{
			Invoice: *stored,
			Amount:  amount,
		})
		report.TotalApplied += amount
		s.publishPaymentRecorded(ctx, *stored, amount, req)
	}

	outcome := "success"
	switch {
	case report.Aborted:
		outcome = "aborted"
	case len(report.Failed) > 0:
		outcome = "partial_failure"
	}
	s.finish(ctx, outcome, req, report)
	return report, nil
}

// applyPayment produces the updated record: paid amount, status, and the
// shared payment metadata change; every other field rides along unchanged.
func applyPayment(invoice invoicedomain.Invoice, amount int64, req reconciledomain.PaymentBatchRequest, now time.Time) invoicedomain.Invoice {
	balance := invoice.BalanceDue()

	invoice.PaidAmount += amount
	if amount >= balance {
		invoice.Status = invoicedomain.InvoiceStatusPaid
	} else {
		invoice.Status = invoicedomain.InvoiceStatusPartiallyPaid
	}

	paymentDate := req.PaymentDate.UTC()
	if paymentDate.IsZero() {
		paymentDate = now
	}
	invoice.PaymentDate = &paymentDate
	invoice.PaymentMode = req.PaymentMode
	invoice.TransactionID = req.TransactionID
	return invoice
}

func (s *Service) publishPaymentRecorded(ctx context.Context, invoice invoicedomain.Invoice, amount int64, req reconciledomain.PaymentBatchRequest) {
	if s.outbox == nil {
		return
	}
	payload := events.PaymentRecordedPayload{
		InvoiceID:     invoice.ID.String(),
		Amount:        amount,
		PaidAmount:    invoice.PaidAmount,
		Status:        string(invoice.Status),
		PaymentMode:   req.PaymentMode,
		TransactionID: req.TransactionID,
	}
	event := events.Event{
		Type:    events.EventPaymentRecorded,
		Payload: payload.ToMap(),
	}
	// Distinct payments without a transaction id are not duplicates; only a
	// caller-supplied id makes the event replay-safe to suppress.
	if req.TransactionID != "" {
		event.DedupeKey = payload.InvoiceID + ":" + req.TransactionID
	}
	if err := s.outbox.Publish(ctx, event); err != nil {
		s.log.Warn("outbox publish failed",
			zap.String("invoice_id", payload.InvoiceID),
			zap.Error(err),
		)
	}
}

func (s *Service) finish(ctx context.Context, outcome string, req reconciledomain.PaymentBatchRequest, report reconciledomain.BatchReport) {
	s.observe(outcome, report)

	if s.auditSvc == nil {
		return
	}
	metadata := map[string]any{
		"outcome":       outcome,
		"payment_mode":  req.PaymentMode,
		"payment_date":  req.PaymentDate.UTC().Format(time.RFC3339),
		"applied":       len(report.Applied),
		"skipped":       len(report.Skipped),
		"failed":        len(report.Failed),
		"total_applied": report.TotalApplied,
	}
	if req.TransactionID != "" {
		metadata["transaction_id"] = req.TransactionID
	}
	if err := s.auditSvc.AuditLog(ctx, auditdomain.ActorTypeUser, "", "invoice.batch_payment", "invoice_batch", nil, metadata); err != nil {
		s.log.Warn("batch audit failed", zap.Error(err))
	}
}

func (s *Service) observe(outcome string, report reconciledomain.BatchReport) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveBatch(outcome, len(report.Applied), len(report.Skipped), len(report.Failed), report.TotalApplied)
}
