package audit

import (
	"sort"
	"strings"

	"feedesk/internal/models"
)

// Placeholder is shown for a field missing from one side of an entry.
const Placeholder = "--"

// Filter keeps entries whose module, action, role or actor id contains q,
// ignoring case. The input slice is not modified; an empty q keeps everything.
func Filter(entries []models.AuditLog, q string) []models.AuditLog {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return entries
	}
	out := make([]models.AuditLog, 0, len(entries))
	for _, e := range entries {
		if matches(e, q) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e models.AuditLog, q string) bool {
	if strings.Contains(strings.ToLower(e.Module), q) ||
		strings.Contains(strings.ToLower(string(e.Action)), q) {
		return true
	}
	if e.Role != nil && strings.Contains(strings.ToLower(string(*e.Role)), q) {
		return true
	}
	return e.UserID != nil && strings.Contains(strings.ToLower(*e.UserID), q)
}

// FieldRow is one line of an expanded entry.
type FieldRow struct {
	Field   string `json:"field"`
	Old     string `json:"old"`
	New     string `json:"new"`
	Changed bool   `json:"changed"`
}

// Expand lists every field found in either map, in lexical order. Changed is
// recomputed from the stored values.
func Expand(e models.AuditLog) []FieldRow {
	oldValues, newValues := e.Old(), e.New()

	seen := map[string]struct{}{}
	for k := range oldValues {
		seen[k] = struct{}{}
	}
	for k := range newValues {
		seen[k] = struct{}{}
	}
	fields := make([]string, 0, len(seen))
	for k := range seen {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	rows := make([]FieldRow, 0, len(fields))
	for _, f := range fields {
		ov, inOld := oldValues[f]
		nv, inNew := newValues[f]
		row := FieldRow{Field: f, Old: Placeholder, New: Placeholder}
		if inOld {
			row.Old = ov.String()
		}
		if inNew {
			row.New = nv.String()
		}
		row.Changed = inOld != inNew || !ov.Equal(nv)
		rows = append(rows, row)
	}
	return rows
}

// ActorName and ActorEmail fall back to "System" when no user is attached.
func ActorName(e models.AuditLog) string {
	if e.User == nil || e.User.Name == "" {
		return "System"
	}
	return e.User.Name
}

func ActorEmail(e models.AuditLog) string {
	if e.User == nil || e.User.Email == "" {
		return "System"
	}
	return e.User.Email
}

func RoleLabel(e models.AuditLog) string {
	if e.Role == nil || *e.Role == "" {
		return "N/A"
	}
	return string(*e.Role)
}
