// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra. This ensures the core has no dependency on infrastructure.
package ports

import (
	"context"
	"time"

	"diarybook/src/core/domain"
)

// Repository is the base interface for all repositories.
// Concrete repositories should embed this and add entity-specific methods.
type Repository interface {
	// Health checks if the underlying storage is reachable.
	Health(ctx context.Context) error
}

// DiaryRepository persists diary entries. Every method is scoped by owner id;
// implementations must never return or touch a row owned by someone else.
type DiaryRepository interface {
	Repository

	// Create inserts the entry and returns the stored row as read back from storage.
	Create(ctx context.Context, entry *domain.DiaryEntry) (*domain.DiaryEntry, error)

	// FindOwned returns domain.ErrNotFound when the row is missing or owned by another user.
	FindOwned(ctx context.Context, id, ownerID int64) (*domain.DiaryEntry, error)

	// Update overwrites title, content and entry date and refreshes updated_at to
	// max(now, updated_at). Returns the post-update row.
	Update(ctx context.Context, entry *domain.DiaryEntry, now time.Time) (*domain.DiaryEntry, error)

	// Delete hard-deletes the row. Returns domain.ErrNotFound when nothing was removed.
	Delete(ctx context.Context, id, ownerID int64) error

	// Count and List evaluate the same filter predicate.
	Count(ctx context.Context, ownerID int64, filter domain.EntryFilter) (int64, error)
	List(ctx context.Context, ownerID int64, filter domain.EntryFilter, limit, offset int) ([]domain.DiaryEntry, error)
}
