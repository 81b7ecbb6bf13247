package reservation

import "errors"

var ErrCancellationNotAllowed = errors.New("reservation can no longer be cancelled")

// CancellationPolicy decides whether a reservation may still be cancelled.
// AllowFulfilled comes from deployment configuration.
type CancellationPolicy struct {
	AllowFulfilled bool
}

func (p CancellationPolicy) Check(r *Reservation) error {
	if r.attendanceStatus == AttendanceCompleted {
		return ErrCancellationNotAllowed
	}
	if r.paymentStatus == PaymentFulfilled && !p.AllowFulfilled {
		return ErrCancellationNotAllowed
	}
	return nil
}
