// Package store holds processed leads across requests. It replaces an
// index-addressed in-memory list with a repository keyed by stable
// lead IDs, so concurrent append/delete cannot shift positions out
// from under a caller.
package store

import (
	"context"

	"github.com/caprae-capital/leadgen-cli/internal/model"
)

// LeadFilter specifies criteria for listing leads. Zero values match
// everything. Industry and Source are case-insensitive substring
// matches.
type LeadFilter struct {
	MinScore int    `json:"min_score,omitempty"`
	Industry string `json:"industry,omitempty"`
	Source   string `json:"source,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for the lead holding
// collection. Implementations serialize concurrent mutation so the
// uniqueness-of-email and insertion-order invariants hold.
type Store interface {
	// InsertLeads appends processed leads, assigning an ID to any
	// lead without one. Returns the number inserted.
	InsertLeads(ctx context.Context, leads []model.Lead) (int, error)
	// ListLeads returns leads matching the filter in insertion order.
	ListLeads(ctx context.Context, filter LeadFilter) ([]model.Lead, error)
	GetLead(ctx context.Context, id string) (*model.Lead, error)
	// DeleteLeads removes leads by stable ID and reports how many
	// were actually deleted.
	DeleteLeads(ctx context.Context, ids []string) (int, error)
	DeleteAllLeads(ctx context.Context) error
	// ListEmails returns the set of normalized emails currently held,
	// for cross-batch deduplication.
	ListEmails(ctx context.Context) (map[string]bool, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
