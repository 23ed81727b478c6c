// Package tracker manages saved job listings through the application
// lifecycle.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/jobhunt/internal/logging"
	"github.com/jonathan/jobhunt/internal/store"
	"github.com/jonathan/jobhunt/internal/types"
)

// Status is the state of a tracked application. Any status may follow any
// other.
type Status string

const (
	StatusSaved        Status = "saved"
	StatusApplied      Status = "applied"
	StatusInterviewing Status = "interviewing"
	StatusOffered      Status = "offered"
	StatusRejected     Status = "rejected"
	StatusWithdrawn    Status = "withdrawn"
)

// ErrAlreadySaved is returned when a listing is saved twice.
var ErrAlreadySaved = errors.New("job already saved")

// InvalidStatusError reports an unknown status value.
type InvalidStatusError struct {
	Value string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid status %q: must be one of %s", e.Value, strings.Join(types.ApplicationStatuses, ", "))
}

// ParseStatus parses a status case-insensitively.
func ParseStatus(s string) (Status, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, known := range types.ApplicationStatuses {
		if v == known {
			return Status(v), nil
		}
	}
	return "", &InvalidStatusError{Value: s}
}

// Tracker records and updates applications.
type Tracker struct {
	store  store.Applications
	now    func() time.Time
	logger logrus.FieldLogger
}

// New creates a Tracker over applications.
func New(applications store.Applications, logger logrus.FieldLogger) *Tracker {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Tracker{
		store:  applications,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger.WithField("component", "tracker"),
	}
}

// Save starts tracking listing with status saved. A listing whose
// externalId is already tracked is rejected with ErrAlreadySaved.
func (t *Tracker) Save(ctx context.Context, listing types.JobListing, resumeID, notes string) (*types.Application, error) {
	existing, err := t.store.FindApplicationByExternalID(ctx, listing.ExternalID)
	switch {
	case err == nil:
		return existing, fmt.Errorf("listing %s: %w", listing.ExternalID, ErrAlreadySaved)
	case !errors.Is(err, store.ErrNotFound):
		return nil, err
	}

	now := t.now()
	app := &types.Application{
		ID:        uuid.NewString(),
		ResumeID:  resumeID,
		Listing:   listing,
		Status:    string(StatusSaved),
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.store.PutApplication(ctx, app); err != nil {
		return nil, err
	}

	t.logger.WithFields(logrus.Fields{"application_id": app.ID, "external_id": listing.ExternalID}).Info("application saved")
	return app, nil
}

// UpdateStatus moves an application to status. Notes replace the stored notes
// when non-nil. The first move to applied records appliedAt.
func (t *Tracker) UpdateStatus(ctx context.Context, id string, status Status, notes *string) (*types.Application, error) {
	app, err := t.store.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}

	now := t.now()
	previous := app.Status
	app.Status = string(status)
	if notes != nil {
		app.Notes = *notes
	}
	if status == StatusApplied && app.AppliedAt == nil {
		app.AppliedAt = &now
	}
	app.UpdatedAt = now

	if err := t.store.PutApplication(ctx, app); err != nil {
		return nil, err
	}

	t.logger.WithFields(logrus.Fields{"application_id": id, "from": previous, "to": status}).Info("application status updated")
	return app, nil
}

// List returns tracked applications newest first. An empty status lists all.
func (t *Tracker) List(ctx context.Context, status Status) ([]*types.Application, error) {
	return t.store.ListApplications(ctx, string(status))
}

// Remove stops tracking an application. Unknown ids yield store.ErrNotFound.
func (t *Tracker) Remove(ctx context.Context, id string) error {
	if err := t.store.DeleteApplication(ctx, id); err != nil {
		return err
	}
	t.logger.WithField("application_id", id).Info("application removed")
	return nil
}
