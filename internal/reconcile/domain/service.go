package domain

import (
	"context"
	"errors"
)

type Service interface {
	// ApplyBatch validates the request against the current invoice list and
	// persists one full-record update per paid invoice. Validation failures
	// return before any persistence call. Per-invoice persistence failures
	// are collected in the report; whether the batch continues past a
	// failure is a configuration contract, not an accident of control flow.
	ApplyBatch(ctx context.Context, req PaymentBatchRequest) (BatchReport, error)
}

var (
	ErrNoPaymentEntered   = errors.New("no_payment_entered")
	ErrMissingPaymentMode = errors.New("missing_payment_mode")
	ErrMissingPaymentDate = errors.New("missing_payment_date")
)
