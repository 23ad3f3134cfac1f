// Package store persists lead submissions behind a backend-neutral interface.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/inspectana/leadgen/internal/model"
)

// ErrDuplicateEmail indicates the submission email already exists in the
// target table (unique constraint violation).
var ErrDuplicateEmail = eris.New("store: duplicate email")

// ListFilter specifies pagination for listing operations. Results are always
// ordered newest first.
type ListFilter struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// Store defines the persistence interface for lead submissions.
type Store interface {
	// Submissions
	CreateInspectionRequest(ctx context.Context, req model.InspectionRequest) (*model.InspectionRequest, error)
	CreateInterestLead(ctx context.Context, lead model.InterestLead) (*model.InterestLead, error)

	// Admin read path
	ListInspectionRequests(ctx context.Context, filter ListFilter) ([]model.InspectionRequest, error)
	ListInterestLeads(ctx context.Context, filter ListFilter) ([]model.InterestLead, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
