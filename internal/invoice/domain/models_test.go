package domain

import "testing"

func TestBalanceDueNeverNegative(t *testing.T) {
	cases := []struct {
		name  string
		total int64
		paid  int64
		want  int64
	}{
		{"unpaid", 10000, 0, 10000},
		{"partial", 10000, 4000, 6000},
		{"settled", 10000, 10000, 0},
		{"overpaid record", 10000, 12000, 0},
	}
	for _, tc := range cases {
		invoice := Invoice{TotalAmount: tc.total, PaidAmount: tc.paid}
		if got := invoice.BalanceDue(); got != tc.want {
			t.Fatalf("%s: expected balance %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestIsPayable(t *testing.T) {
	cases := []struct {
		status InvoiceStatus
		want   bool
	}{
		{InvoiceStatusDraft, false},
		{InvoiceStatusUnpaid, true},
		{InvoiceStatusPartiallyPaid, true},
		{InvoiceStatusOverdue, true},
		{InvoiceStatusPaid, false},
	}
	for _, tc := range cases {
		invoice := Invoice{Status: tc.status}
		if got := invoice.IsPayable(); got != tc.want {
			t.Fatalf("%s: expected payable=%v, got %v", tc.status, tc.want, got)
		}
	}
}

func TestClampPayment(t *testing.T) {
	invoice := Invoice{TotalAmount: 10000, PaidAmount: 6000}

	cases := []struct {
		name     string
		proposed int64
		want     int64
	}{
		{"negative", -500, 0},
		{"zero", 0, 0},
		{"within balance", 2500, 2500},
		{"exact balance", 4000, 4000},
		{"over balance", 99999, 4000},
	}
	for _, tc := range cases {
		if got := invoice.ClampPayment(tc.proposed); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestClampPaymentIdempotent(t *testing.T) {
	invoice := Invoice{TotalAmount: 10000, PaidAmount: 2500}
	for _, proposed := range []int64{-10, 0, 1, 7500, 80000} {
		once := invoice.ClampPayment(proposed)
		twice := invoice.ClampPayment(once)
		if once != twice {
			t.Fatalf("clamp(%d) not idempotent: %d then %d", proposed, once, twice)
		}
	}
}
