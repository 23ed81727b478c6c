// Package store persists résumé records, tracked applications and search
// sessions. Postgres and Redis back the durable implementations; the memory
// implementations serve single-process runs and tests.
package store

import (
	"context"
	"errors"

	"github.com/jonathan/jobhunt/internal/types"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// Resumes stores résumé records.
type Resumes interface {
	PutResume(ctx context.Context, r *types.ResumeRecord) error
	GetResume(ctx context.Context, id string) (*types.ResumeRecord, error)
	// ListResumes returns up to limit records, newest first. A limit of zero
	// or less returns all of them.
	ListResumes(ctx context.Context, limit int) ([]*types.ResumeRecord, error)
	DeleteResume(ctx context.Context, id string) error
}

// Applications stores tracked applications.
type Applications interface {
	PutApplication(ctx context.Context, a *types.Application) error
	GetApplication(ctx context.Context, id string) (*types.Application, error)
	FindApplicationByExternalID(ctx context.Context, externalID string) (*types.Application, error)
	// ListApplications returns applications newest first, restricted to
	// status when it is non-empty.
	ListApplications(ctx context.Context, status string) ([]*types.Application, error)
	DeleteApplication(ctx context.Context, id string) error
}

// Store is the record store used by the service.
type Store interface {
	Resumes
	Applications
	Close()
}
