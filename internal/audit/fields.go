package audit

// FieldSet is the allow-list of audit-relevant fields for one module.
type FieldSet map[string]struct{}

func NewFieldSet(fields ...string) FieldSet {
	fs := make(FieldSet, len(fields))
	for _, f := range fields {
		fs[f] = struct{}{}
	}
	return fs
}

func (fs FieldSet) Has(field string) bool {
	_, ok := fs[field]
	return ok
}

// Module names as they appear in audit entries.
const (
	ModulePayment = "Payment"
	ModuleStudent = "Student"
	ModuleUser    = "User"
)

var (
	PaymentFields = NewFieldSet(
		"studentId", "feeType", "subFeeType", "paymentMethod",
		"amount", "bankDetails", "referenceNo", "status",
	)
	StudentFields = NewFieldSet(
		"name", "email", "phone", "course", "branch", "totalFee",
	)
	UserFields = NewFieldSet(
		"employeeId", "name", "email", "phone", "branch", "role", "loginType", "isLocked",
	)
)
