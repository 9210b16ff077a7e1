// Package store persists job and application records. One flat table, keyed
// by the record id; adapters exist for DynamoDB (the production deployment),
// Postgres, and an in-memory map for tests and demo mode.
package store

import (
	"context"
	"errors"

	"github.com/cloudhire/cloudhire-backend/internal/models"
)

// ErrNotFound is returned by Get when no record has the requested id.
var ErrNotFound = errors.New("record not found")

// RecordStore is the port the handlers talk to. Semantics all adapters share:
//
//   - Put overwrites unconditionally (upsert).
//   - Update applies a partial field delta; a missing record is created from
//     the delta, matching DynamoDB UpdateItem behavior.
//   - Delete is idempotent; deleting an absent id is not an error.
//   - Scan returns every record in the table, unfiltered. Filtering to valid
//     jobs is the caller's concern.
type RecordStore interface {
	Get(ctx context.Context, id string) (models.Record, error)
	Put(ctx context.Context, rec models.Record) error
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	Scan(ctx context.Context) ([]models.Record, error)
}
