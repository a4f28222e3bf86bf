// Package domain contains persistence models for invoicing.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "DRAFT"
	InvoiceStatusUnpaid        InvoiceStatus = "UNPAID"
	InvoiceStatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoiceStatusOverdue       InvoiceStatus = "OVERDUE"
	InvoiceStatusPaid          InvoiceStatus = "PAID"
)

// Invoice represents a billed invoice. Amounts are minor currency units.
type Invoice struct {
	ID            snowflake.ID      `gorm:"primaryKey" json:"id"`
	CustomerID    snowflake.ID      `gorm:"not null;index" json:"customer_id"`
	InvoiceNumber string            `gorm:"type:text;not null" json:"invoice_number"`
	Status        InvoiceStatus     `gorm:"type:text;not null;default:'DRAFT'" json:"status"`
	TotalAmount   int64             `gorm:"not null;default:0" json:"total_amount"`
	PaidAmount    int64             `gorm:"not null;default:0" json:"paid_amount"`
	Currency      string            `gorm:"type:text;not null" json:"currency"`
	PaymentDate   *time.Time        `gorm:"" json:"payment_date,omitempty"`
	PaymentMode   string            `gorm:"type:text" json:"payment_mode,omitempty"`
	TransactionID string            `gorm:"type:text" json:"transaction_id,omitempty"`
	IssuedAt      *time.Time        `gorm:"" json:"issued_at,omitempty"`
	DueAt         *time.Time        `gorm:"" json:"due_at,omitempty"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata"`
	CreatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// BalanceDue returns the remaining unpaid amount, never negative.
func (i Invoice) BalanceDue() int64 {
	balance := i.TotalAmount - i.PaidAmount
	if balance < 0 {
		return 0
	}
	return balance
}

// IsPayable reports whether the invoice may receive further payment.
func (i Invoice) IsPayable() bool {
	switch i.Status {
	case InvoiceStatusUnpaid, InvoiceStatusPartiallyPaid, InvoiceStatusOverdue:
		return true
	default:
		return false
	}
}

// ClampPayment bounds a proposed payment to [0, balance due].
func (i Invoice) ClampPayment(proposed int64) int64 {
	if proposed <= 0 {
		return 0
	}
	if balance := i.BalanceDue(); proposed > balance {
		return balance
	}
	return proposed
}
