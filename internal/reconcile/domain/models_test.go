package domain

import (
	"errors"
	"testing"
	"time"

	invoicedomain "github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/invoice/domain"
	"github.com/bwmarrin/snowflake"
)

func invoiceWithStatus(id int64, status invoicedomain.InvoiceStatus) invoicedomain.Invoice {
	return invoicedomain.Invoice{
		ID:          snowflake.ID(id),
		TotalAmount: 10000,
		Status:      status,
		Currency:    "USD",
	}
}

func TestSelectPayablePreservesOrder(t *testing.T) {
	invoices := []invoicedomain.Invoice{
		invoiceWithStatus(1, invoicedomain.InvoiceStatusDraft),
		invoiceWithStatus(2, invoicedomain.InvoiceStatusOverdue),
		invoiceWithStatus(3, invoicedomain.InvoiceStatusPaid),
		invoiceWithStatus(4, invoicedomain.InvoiceStatusUnpaid),
		invoiceWithStatus(5, invoicedomain.InvoiceStatusPartiallyPaid),
	}

	payable := SelectPayable(invoices)
	if len(payable) != 3 {
		t.Fatalf("expected 3 payable invoices, got %d", len(payable))
	}
	want := []snowflake.ID{2, 4, 5}
	for i, invoice := range payable {
		if invoice.ID != want[i] {
			t.Fatalf("expected id %d at position %d, got %d", want[i], i, invoice.ID)
		}
	}
}

func TestValidateRejectsBlankPaymentMode(t *testing.T) {
	req := PaymentBatchRequest{
		PaymentDate: time.Now(),
		PaymentMode: "  ",
		Amounts:     map[snowflake.ID]int64{1: 100},
	}
	err := req.Validate([]invoicedomain.Invoice{invoiceWithStatus(1, invoicedomain.InvoiceStatusUnpaid)})
	if !errors.Is(err, ErrMissingPaymentMode) {
		t.Fatalf("expected ErrMissingPaymentMode, got %v", err)
	}
}

func TestValidateRejectsZeroPaymentDate(t *testing.T) {
	req := PaymentBatchRequest{
		PaymentMode: "Cash",
		Amounts:     map[snowflake.ID]int64{1: 100},
	}
	err := req.Validate([]invoicedomain.Invoice{invoiceWithStatus(1, invoicedomain.InvoiceStatusUnpaid)})
	if !errors.Is(err, ErrMissingPaymentDate) {
		t.Fatalf("expected ErrMissingPaymentDate, got %v", err)
	}
}

func TestValidateRejectsBatchWithNoEffectivePayment(t *testing.T) {
	req := PaymentBatchRequest{
		PaymentDate: time.Now(),
		PaymentMode: "Cash",
		Amounts:     map[snowflake.ID]int64{1: 0, 2: -500},
	}
	payable := []invoicedomain.Invoice{
		invoiceWithStatus(1, invoicedomain.InvoiceStatusUnpaid),
		invoiceWithStatus(2, invoicedomain.InvoiceStatusOverdue),
	}
	if err := req.Validate(payable); !errors.Is(err, ErrNoPaymentEntered) {
		t.Fatalf("expected ErrNoPaymentEntered, got %v", err)
	}
}

func TestValidateAcceptsSinglePositiveAmount(t *testing.T) {
	req := PaymentBatchRequest{
		PaymentDate: time.Now(),
		PaymentMode: "Cash",
		Amounts:     map[snowflake.ID]int64{1: 0, 2: 100},
	}
	payable := []invoicedomain.Invoice{
		invoiceWithStatus(1, invoicedomain.InvoiceStatusUnpaid),
		invoiceWithStatus(2, invoicedomain.InvoiceStatusUnpaid),
	}
	if err := req.Validate(payable); err != nil {
		t.Fatalf("expected valid batch, got %v", err)
	}
}
