// Package store defines the persistence layer for site-build jobs.
package store

import (
	"context"
	"errors"

	"github.com/siteforge/siteforge/internal/model"
)

// ErrNotFound is returned when no job exists for the given id.
var ErrNotFound = errors.New("job not found")

// JobUpdate is a partial mutation merged into an existing job record.
// Zero-valued fields are left untouched; UpdatedAt is always refreshed.
type JobUpdate struct {
	Status         model.JobStatus
	Progress       *int
	SiteURLs       []string
	PDFURL         string
	CloudResources map[string]any
	Error          string
}

// JobStore persists job records. Implementations must support
// concurrent reads while a single writer updates a given job id;
// readers always observe a consistent row.
type JobStore interface {
	Create(ctx context.Context, fields model.JobFields) (*model.Job, error)
	Update(ctx context.Context, id string, upd JobUpdate) error
	Get(ctx context.Context, id string) (*model.Job, error)
}
