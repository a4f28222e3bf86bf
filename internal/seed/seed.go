// Package seed bootstraps demo data for local development.
package seed

import (
	"context"
	"errors"
	"time"

	invoicedomain "github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/invoice/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EnsureDemoInvoices inserts a handful of payable invoices when the invoices
// table is empty. Production deployments never call this.
func EnsureDemoInvoices(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&invoicedomain.Invoice{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		overdue := now.AddDate(0, 0, -14)
		upcoming := now.AddDate(0, 0, 14)
		customerID := node.Generate()

		invoices := []invoicedomain.Invoice{
			{
				ID:            node.Generate(),
				CustomerID:    customerID,
				InvoiceNumber: "INV-0001",
				Status:        invoicedomain.InvoiceStatusUnpaid,
				TotalAmount:   10000,
				Currency:      "USD",
				IssuedAt:      &now,
				DueAt:         &upcoming,
			},
			{
				ID:            node.Generate(),
				CustomerID:    customerID,
				InvoiceNumber: "INV-0002",
				Status:        invoicedomain.InvoiceStatusPartiallyPaid,
				TotalAmount:   10000,
				PaidAmount:    6000,
				Currency:      "USD",
				IssuedAt:      &now,
				DueAt:         &upcoming,
			},
			{
				ID:            node.Generate(),
				CustomerID:    customerID,
				InvoiceNumber: "INV-0003",
				Status:        invoicedomain.InvoiceStatusOverdue,
				TotalAmount:   5000,
				Currency:      "USD",
				IssuedAt:      &overdue,
				DueAt:         &overdue,
			},
			{
				ID:            node.Generate(),
				CustomerID:    customerID,
				InvoiceNumber: "INV-0004",
				Status:        invoicedomain.InvoiceStatusDraft,
				TotalAmount:   2500,
				Currency:      "USD",
			},
		}
		for i := range invoices {
			invoices[i].Metadata = datatypes.JSONMap{"seeded": true}
			invoices[i].CreatedAt = now
			invoices[i].UpdatedAt = now
		}
		return tx.Create(&invoices).Error
	})
}
