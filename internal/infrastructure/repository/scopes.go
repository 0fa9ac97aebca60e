package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

const (
	// OwnerIDKey is the context key for the authenticated owner
	OwnerIDKey ctxKey = "owner_id"
	// SkipOwnerScopeKey is the context key used by background jobs that work across owners
	SkipOwnerScopeKey ctxKey = "skip_owner_scope"
)

// OwnerScope returns a GORM scope that filters by owner_id.
// Without an owner in the context no rows match.
func OwnerScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if skip, ok := ctx.Value(SkipOwnerScopeKey).(bool); ok && skip {
			return db
		}

		ownerID, ok := ctx.Value(OwnerIDKey).(uuid.UUID)
		if !ok {
			return db.Where("1 = 0")
		}
		return db.Where("owner_id = ?", ownerID)
	}
}

// WithSkipOwnerScope marks the context as crossing owners (worker tasks)
func WithSkipOwnerScope(ctx context.Context, skip bool) context.Context {
	return context.WithValue(ctx, SkipOwnerScopeKey, skip)
}

// WithOwner adds the owner ID to the context
func WithOwner(ctx context.Context, ownerID uuid.UUID) context.Context {
	return context.WithValue(ctx, OwnerIDKey, ownerID)
}

// GetOwnerID extracts the owner ID from the context
func GetOwnerID(ctx context.Context) (uuid.UUID, bool) {
	ownerID, ok := ctx.Value(OwnerIDKey).(uuid.UUID)
	return ownerID, ok
}
