package domain

import (
	"context"
	"errors"
)

type Service interface {
	// AuditLog records an action. Failures are logged by implementations and
	// never block the business operation that triggered them.
	AuditLog(ctx context.Context, actor ActorType, actorID string, action string, targetType string, targetID *string, metadata map[string]any) error
	List(ctx context.Context, filter ListFilter) ([]*AuditLog, error)
}

var (
	ErrInvalidAction     = errors.New("invalid_action")
	ErrInvalidTargetType = errors.New("invalid_target_type")
)
