package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"feedesk/internal/metrics"
	"feedesk/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

var (
	ErrNotRecorded   = errors.New("audit entry not recorded")
	ErrInvalidAction = errors.New("invalid audit action")
)

// Appender persists new audit entries.
type Appender interface {
	Append(ctx context.Context, entry *models.AuditLog) error
}

// Auditor is what mutation handlers call after a successful commit.
type Auditor interface {
	Audit(ctx context.Context, ev Event) (*models.AuditLog, error)
}

type Recorder struct {
	store Appender
	log   logrus.FieldLogger
	now   func() time.Time
}

func NewRecorder(store Appender, log logrus.FieldLogger) *Recorder {
	return &Recorder{store: store, log: log, now: time.Now}
}

// Audit appends one entry for ev. It never retries and never touches earlier
// entries. Failures are logged and counted before being returned.
func (r *Recorder) Audit(ctx context.Context, ev Event) (*models.AuditLog, error) {
	entry, err := NewEntry(ev, r.now())
	if err != nil {
		return nil, err
	}

	if err := r.store.Append(ctx, entry); err != nil {
		metrics.IncAuditWriteFailures(ev.Module)
		r.log.WithFields(logrus.Fields{
			"module":    ev.Module,
			"record_id": ev.RecordID,
			"action":    ev.Action,
		}).WithError(err).Error("audit entry not recorded")
		return nil, fmt.Errorf("%w: %v", ErrNotRecorded, err)
	}

	metrics.IncAuditEntries(ev.Module, string(ev.Action))
	return entry, nil
}

// NewEntry builds the row for ev. CREATE entries never carry old values and
// DELETE entries never carry new values.
func NewEntry(ev Event, at time.Time) (*models.AuditLog, error) {
	if !ev.Action.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, ev.Action)
	}

	oldValues, newValues := copyValues(ev.Old), copyValues(ev.New)
	switch ev.Action {
	case models.ActionCreate:
		oldValues = nil
	case models.ActionDelete:
		newValues = nil
	}

	entry := &models.AuditLog{
		Module:    ev.Module,
		RecordID:  ev.RecordID,
		Action:    ev.Action,
		OldValues: datatypes.NewJSONType(oldValues),
		NewValues: datatypes.NewJSONType(newValues),
		IPAddress: orUnknown(ev.Network.IP),
		UserAgent: orUnknown(ev.Network.UserAgent),
		CreatedAt: at,
	}
	if ev.Actor != nil && ev.Actor.ID != "" {
		id := ev.Actor.ID
		entry.UserID = &id
		if ev.Actor.Role != "" {
			role := ev.Actor.Role
			entry.Role = &role
		}
	}
	return entry, nil
}

func orUnknown(s string) string {
	if s == "" {
		return models.UnknownNetwork
	}
	return s
}

// FailurePolicy decides what the caller of a mutation sees when the audit
// append fails after the mutation committed.
type FailurePolicy string

const (
	// PolicyIgnore reports plain success.
	PolicyIgnore FailurePolicy = "ignore"
	// PolicyWarn reports success with a warning attached.
	PolicyWarn FailurePolicy = "warn"
)

func (p FailurePolicy) Valid() bool {
	return p == PolicyIgnore || p == PolicyWarn
}

const WarningNotRecorded = "change saved but audit entry could not be recorded"

// Warnings converts the outcome of Audit into response warnings.
func (p FailurePolicy) Warnings(err error) []string {
	if err == nil || p != PolicyWarn {
		return nil
	}
	return []string{WarningNotRecorded}
}
