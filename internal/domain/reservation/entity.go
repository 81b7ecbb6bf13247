package reservation

import (
	"errors"
	"time"

	"bistro-reserve/internal/domain/schedule"

	"github.com/google/uuid"
)

var (
	ErrEmptyTables           = errors.New("at least one table must be selected")
	ErrEmptyCustomer         = errors.New("customer reference is required")
	ErrEmptyPaymentReference = errors.New("payment reference is required")
	ErrInvalidPaymentMethod  = errors.New("unsupported payment method")
	ErrAlreadyCancelled      = errors.New("reservation is already cancelled")
)

// Reservation is the aggregate root: one customer's booking of a contiguous
// block of timeslots across one or more tables, tied to a payment reference
// assigned before the row is ever persisted.
type Reservation struct {
	id               uuid.UUID
	customerID       string
	contact          Contact
	slots            []Slot
	fee              Money
	paymentReference string
	paymentMethod    PaymentMethod
	paymentStatus    PaymentStatus
	attendanceStatus AttendanceStatus
	createdAt        time.Time
	updatedAt        time.Time
}

// NewReservation assembles the aggregate from an already-validated timeslot
// selection. Timeslot contiguity and schedule membership are the
// DailySchedule's responsibility; this factory owns the remaining invariants.
func NewReservation(
	customerID string,
	contact Contact,
	timeslots []schedule.Timeslot,
	tableIDs []string,
	fee Money,
	paymentReference string,
	method PaymentMethod,
) (*Reservation, error) {
	if customerID == "" {
		return nil, ErrEmptyCustomer
	}
	if len(timeslots) == 0 {
		return nil, schedule.ErrEmptyTimeslots
	}
	if len(tableIDs) == 0 {
		return nil, ErrEmptyTables
	}
	if paymentReference == "" {
		return nil, ErrEmptyPaymentReference
	}
	if !method.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}

	return &Reservation{
		id:               uuid.New(),
		customerID:       customerID,
		contact:          contact,
		slots:            BuildSlots(timeslots, tableIDs),
		fee:              fee,
		paymentReference: paymentReference,
		paymentMethod:    method,
		paymentStatus:    PaymentPending,
		attendanceStatus: AttendancePending,
	}, nil
}

func ReconstructReservation(
	id uuid.UUID,
	customerID string,
	contact Contact,
	slots []Slot,
	fee Money,
	paymentReference string,
	method PaymentMethod,
	paymentStatus PaymentStatus,
	attendanceStatus AttendanceStatus,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:               id,
		customerID:       customerID,
		contact:          contact,
		slots:            slots,
		fee:              fee,
		paymentReference: paymentReference,
		paymentMethod:    method,
		paymentStatus:    paymentStatus,
		attendanceStatus: attendanceStatus,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// MarkFulfilled applies the payment-fulfilled signal. Replaying the signal is
// a no-op, reported via the changed flag so callers stay idempotent.
func (r *Reservation) MarkFulfilled() (changed bool, err error) {
	switch r.paymentStatus {
	case PaymentFulfilled:
		return false, nil
	case PaymentCancelled:
		return false, ErrAlreadyCancelled
	default:
		r.paymentStatus = PaymentFulfilled
		return true, nil
	}
}

// Cancel transitions the reservation to cancelled under the given policy,
// which implicitly frees its slots for new bookings. Cancelling twice is a
// no-op.
func (r *Reservation) Cancel(policy CancellationPolicy) (changed bool, err error) {
	if r.paymentStatus == PaymentCancelled {
		return false, nil
	}
	if err := policy.Check(r); err != nil {
		return false, err
	}
	r.paymentStatus = PaymentCancelled
	r.attendanceStatus = AttendanceCancelled
	return true, nil
}

func (r *Reservation) IsCancelled() bool {
	return r.paymentStatus == PaymentCancelled
}

func (r *Reservation) ID() uuid.UUID                      { return r.id }
func (r *Reservation) CustomerID() string                 { return r.customerID }
func (r *Reservation) Contact() Contact                   { return r.contact }
func (r *Reservation) Slots() []Slot                      { return r.slots }
func (r *Reservation) Fee() Money                         { return r.fee }
func (r *Reservation) PaymentReference() string           { return r.paymentReference }
func (r *Reservation) PaymentMethod() PaymentMethod       { return r.paymentMethod }
func (r *Reservation) PaymentStatus() PaymentStatus       { return r.paymentStatus }
func (r *Reservation) AttendanceStatus() AttendanceStatus { return r.attendanceStatus }
func (r *Reservation) CreatedAt() time.Time               { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time               { return r.updatedAt }
