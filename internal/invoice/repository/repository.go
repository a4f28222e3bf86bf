// Package repository persists invoices in the service's own database.
package repository

import (
	"context"
	"errors"
	"time"

	invoicedomain "github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/invoice/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) invoicedomain.Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context) ([]invoicedomain.Invoice, error) {
	var invoices []invoicedomain.Invoice
	if err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *Repository) FindByID(ctx context.Context, id snowflake.ID) (*invoicedomain.Invoice, error) {
	var invoice invoicedomain.Invoice
	err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, invoicedomain.ErrInvoiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *Repository) Create(ctx context.Context, invoice *invoicedomain.Invoice) error {
	now := time.Now().UTC()
	invoice.CreatedAt = now
	invoice.UpdatedAt = now
	return r.db.WithContext(ctx).Create(invoice).Error
}

// Update replaces the stored record in its entirety. The store owns the
// updated_at column.
func (r *Repository) Update(ctx context.Context, invoice invoicedomain.Invoice) (*invoicedomain.Invoice, error) {
	invoice.UpdatedAt = time.Now().UTC()

	result := r.db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Where("id = ?", invoice.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(invoice)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, invoicedomain.ErrInvoiceNotFound
	}
	return &invoice, nil
}
