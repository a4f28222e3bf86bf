package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// Repository is the record store boundary. Update is a full-record replace:
// implementations must persist every field of the given invoice, not a patch.
type Repository interface {
	List(ctx context.Context) ([]Invoice, error)
	FindByID(ctx context.Context, id snowflake.ID) (*Invoice, error)
	Create(ctx context.Context, invoice *Invoice) error
	Update(ctx context.Context, invoice Invoice) (*Invoice, error)
}

var (
	// ErrUnauthorized means the bearer credential was rejected. It is never
	// retried; callers clear the stored credential and force re-login.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrStoreUnavailable wraps transport-level record store failures.
	ErrStoreUnavailable = errors.New("record_store_unavailable")
)
