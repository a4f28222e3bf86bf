package events

// Billing event types emitted by this service.
const (
	EventInvoiceCreated         = "invoice.created"
	EventPaymentRecorded        = "invoice.payment_recorded"
	EventInvoicePaid            = "invoice.paid"
	EventBatchPaymentsCompleted = "invoice.batch_payments_completed"
)

// PaymentRecordedPayload captures the minimal data a downstream consumer
// needs to react to a recorded payment.
type PaymentRecordedPayload struct {
	InvoiceID     string `json:"invoice_id"`
	Amount        int64  `json:"amount"`
	PaidAmount    int64  `json:"paid_amount"`
	Status        string `json:"status"`
	PaymentMode   string `json:"payment_mode"`
	TransactionID string `json:"transaction_id,omitempty"`
}

// ToMap converts a payload into an outbox-friendly map.
func (p PaymentRecordedPayload) ToMap() map[string]any {
	payload := map[string]any{
		"invoice_id":   p.InvoiceID,
		"amount":       p.Amount,
		"paid_amount":  p.PaidAmount,
		"status":       p.Status,
		"payment_mode": p.PaymentMode,
	}
	if p.TransactionID != "" {
		payload["transaction_id"] = p.TransactionID
	}
	return payload
}
