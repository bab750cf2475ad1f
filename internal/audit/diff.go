package audit

import "feedesk/internal/models"

// DiffMode selects which allow-listed fields end up in the stored maps.
type DiffMode string

const (
	// DiffAllowlist keeps every allow-listed field present in the snapshot.
	DiffAllowlist DiffMode = "allowlist"
	// DiffChanged keeps only allow-listed fields whose value changed.
	DiffChanged DiffMode = "changed"
)

func (m DiffMode) Valid() bool {
	return m == DiffAllowlist || m == DiffChanged
}

// ComputeDelta projects both snapshots onto the allow-list. A field appears in
// oldValues only when it is present in before, and in newValues only when it is
// present in after. Fields outside allowed are dropped.
func ComputeDelta(before, after models.Values, allowed FieldSet) (oldValues, newValues models.Values) {
	oldValues = models.Values{}
	newValues = models.Values{}
	for field := range allowed {
		if v, ok := before[field]; ok {
			oldValues[field] = v
		}
		if v, ok := after[field]; ok {
			newValues[field] = v
		}
	}
	return oldValues, newValues
}

// ChangedFields returns the allow-listed fields whose values differ between
// the snapshots. A field present on one side only counts as changed.
func ChangedFields(before, after models.Values, allowed FieldSet) FieldSet {
	changed := FieldSet{}
	for field := range allowed {
		ov, inOld := before[field]
		nv, inNew := after[field]
		if !inOld && !inNew {
			continue
		}
		if inOld != inNew || !ov.Equal(nv) {
			changed[field] = struct{}{}
		}
	}
	return changed
}

// Delta applies mode on top of ComputeDelta.
func Delta(before, after models.Values, allowed FieldSet, mode DiffMode) (models.Values, models.Values) {
	oldValues, newValues := ComputeDelta(before, after, allowed)
	if mode != DiffChanged {
		return oldValues, newValues
	}
	changed := ChangedFields(oldValues, newValues, allowed)
	for field := range oldValues {
		if !changed.Has(field) {
			delete(oldValues, field)
		}
	}
	for field := range newValues {
		if !changed.Has(field) {
			delete(newValues, field)
		}
	}
	return oldValues, newValues
}
