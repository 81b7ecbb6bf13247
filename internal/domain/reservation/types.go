package reservation

// PaymentStatus tracks the gateway side of a reservation. A cancelled
// reservation's slots no longer count toward availability.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentFulfilled PaymentStatus = "fulfilled"
	PaymentCancelled PaymentStatus = "cancelled"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentFulfilled, PaymentCancelled:
		return true
	default:
		return false
	}
}

// AttendanceStatus is post-hoc tracking of whether the party showed up.
type AttendanceStatus string

const (
	AttendancePending   AttendanceStatus = "pending"
	AttendanceMissed    AttendanceStatus = "missed"
	AttendanceCompleted AttendanceStatus = "completed"
	AttendanceCancelled AttendanceStatus = "cancelled"
)

func (s AttendanceStatus) String() string {
	return string(s)
}

func (s AttendanceStatus) IsValid() bool {
	switch s {
	case AttendancePending, AttendanceMissed, AttendanceCompleted, AttendanceCancelled:
		return true
	default:
		return false
	}
}

// PaymentMethod is one of the two gateway methods supported in this domain.
type PaymentMethod string

const (
	MethodMaya  PaymentMethod = "MAYA"
	MethodGCash PaymentMethod = "GCASH"
)

func (m PaymentMethod) IsValid() bool {
	return m == MethodMaya || m == MethodGCash
}
