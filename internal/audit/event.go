package audit

import (
	"net/http"
	"strings"

	"feedesk/internal/auth"
	"feedesk/internal/models"
)

// Network is the request metadata captured with each entry.
type Network struct {
	IP        string
	UserAgent string
}

// NetworkFromRequest reads the client address from proxy headers. Missing
// values become models.UnknownNetwork.
func NetworkFromRequest(r *http.Request) Network {
	n := Network{IP: models.UnknownNetwork, UserAgent: models.UnknownNetwork}
	if r == nil {
		return n
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		n.IP = strings.TrimSpace(strings.Split(xff, ",")[0])
	} else if xri := r.Header.Get("X-Real-IP"); xri != "" {
		n.IP = strings.TrimSpace(xri)
	}
	if ua := r.Header.Get("User-Agent"); ua != "" {
		n.UserAgent = ua
	}
	return n
}

// Event describes one committed mutation.
type Event struct {
	Actor    *auth.Actor // nil for system or unresolved actors
	Module   string
	RecordID string
	Action   models.AuditAction
	Old      models.Values
	New      models.Values
	Network  Network
}

// CreateEvent records the allow-listed fields of a new record.
func CreateEvent(module, recordID string, after models.Values, allowed FieldSet) Event {
	_, newValues := ComputeDelta(nil, after, allowed)
	return Event{Module: module, RecordID: recordID, Action: models.ActionCreate, New: newValues}
}

// UpdateEvent records the allow-listed fields before and after an update.
func UpdateEvent(module, recordID string, before, after models.Values, allowed FieldSet, mode DiffMode) Event {
	oldValues, newValues := Delta(before, after, allowed, mode)
	return Event{Module: module, RecordID: recordID, Action: models.ActionUpdate, Old: oldValues, New: newValues}
}

// DeleteEvent keeps the whole pre-deletion snapshot.
func DeleteEvent(module, recordID string, before models.Values) Event {
	return Event{Module: module, RecordID: recordID, Action: models.ActionDelete, Old: copyValues(before)}
}

func copyValues(vs models.Values) models.Values {
	if vs == nil {
		return nil
	}
	out := make(models.Values, len(vs))
	for k, v := range vs {
		out[k] = v
	}
	return out
}
