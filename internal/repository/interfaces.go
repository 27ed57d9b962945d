package repository

import (
	"context"
	"time"

	"github.com/segyhp/loan-intake/internal/domain"
)

// ApplicationRepository defines the interface for loan application data operations
type ApplicationRepository interface {
	// Create persists a new application in one transaction, assigning its
	// id and year-scoped application number. The record either commits
	// fully or not at all.
	Create(ctx context.Context, app *domain.LoanApplication) error

	// List retrieves applications newest-first, optionally filtered by
	// exact status, capped at limit rows
	List(ctx context.Context, status string, limit int) ([]*domain.ApplicationSummary, error)

	// UpdateStatus sets status, manager comment and processing timestamps
	// for the given id. Returns false when no row matched.
	UpdateStatus(ctx context.Context, id int64, status string, comment *string) (bool, error)

	// ListStalePending retrieves pending applications created before the
	// given cutoff
	ListStalePending(ctx context.Context, cutoff time.Time) ([]*domain.ApplicationSummary, error)

	// CountByStatus returns the number of applications per status
	CountByStatus(ctx context.Context) (map[string]int, error)
}
