// Package domain defines the batch payment reconciliation contract.
package domain

import (
	"strings"
	"time"

	invoicedomain "github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/invoice/domain"
	"github.com/bwmarrin/snowflake"
)

// PaymentBatchRequest applies one payment to many invoices in a single user
// action. It is built fresh per submission and never persisted.
type PaymentBatchRequest struct {
	PaymentDate   time.Time
	PaymentMode   string
	TransactionID string
	// SendEmail is forwarded to the notification collaborator; it does not
	// influence reconciliation.
	SendEmail bool
	// Amounts maps invoice id to the proposed payment in minor units.
	// Invoices absent from the map, or mapped to a non-positive amount, are
	// skipped.
	Amounts map[snowflake.ID]int64
}

// Validate checks the batch before any persistence call is made.
func (r PaymentBatchRequest) Validate(payable []invoicedomain.Invoice) error {
	if strings.TrimSpace(r.PaymentMode) == "" {
		return ErrMissingPaymentMode
	}
	if r.PaymentDate.IsZero() {
		return ErrMissingPaymentDate
	}
	for _, invoice := range payable {
		if invoice.ClampPayment(r.Amounts[invoice.ID]) > 0 {
			return nil
		}
	}
	return ErrNoPaymentEntered
}

// SelectPayable filters invoices to those eligible for payment, preserving
// input order.
func SelectPayable(invoices []invoicedomain.Invoice) []invoicedomain.Invoice {
	payable := make([]invoicedomain.Invoice, 0, len(invoices))
	for _, invoice := range invoices {
		if invoice.IsPayable() {
			payable = append(payable, invoice)
		}
	}
	return payable
}

// AppliedPayment records one successfully persisted invoice update.
type AppliedPayment struct {
	Invoice invoicedomain.Invoice `json:"invoice"`
	Amount  int64                 `json:"amount"`
}

// FailedUpdate records one invoice whose persistence call failed.
type FailedUpdate struct {
	InvoiceID snowflake.ID `json:"invoice_id"`
	Error     string       `json:"error"`
}

// BatchReport summarizes one ApplyBatch run per invoice.
type BatchReport struct {
	Applied []AppliedPayment `json:"applied"`
	Skipped []snowflake.ID   `json:"skipped"`
	Failed  []FailedUpdate   `json:"failed"`
	// Aborted is set when a persistence failure stopped the batch before
	// every payable invoice was attempted.
	Aborted      bool  `json:"aborted"`
	TotalApplied int64 `json:"total_applied"`
}
