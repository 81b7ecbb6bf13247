package commands

import (
	"context"
	"time"

	"bistro-reserve/internal/domain/reservation"
	"bistro-reserve/internal/domain/schedule"
	"bistro-reserve/internal/infra"
	"bistro-reserve/internal/pkg/clock"
	"bistro-reserve/internal/pkg/errs"
	"bistro-reserve/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrValidation              = errs.New("reservation validation failed")
	ErrTableNotFound           = errs.New("table not found")
	ErrFeeBelowMinimum         = errs.New("fee below gateway minimum")
	ErrSlotConflict            = errs.New("slot already reserved")
	ErrPaymentGateway          = errs.New("payment gateway failure")
	ErrReservationNotFound     = errs.New("reservation not found")
	ErrUnknownPaymentReference = errs.New("unknown payment reference")
	ErrReservationCancelled    = errs.New("reservation is cancelled")
	ErrCancellationNotAllowed  = errs.New("cancellation not allowed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type BookingInput struct {
	CustomerID    string
	ContactName   string
	ContactInfo   string
	StartInstants []time.Time
	TableIDs      []string
	FeeCentavos   int64
	Method        reservation.PaymentMethod
}

type BookingResult struct {
	ReservationID    uuid.UUID
	PaymentReference string
	PaymentURL       string
	ReturnURL        string
}

type FulfillResult struct {
	ReservationID uuid.UUID
	Replayed      bool
}

type ReservationCommands interface {
	// Book validates the selection, obtains a payment reference, then commits
	// the reservation and its slot rows atomically.
	Book(ctx context.Context, input BookingInput) (*BookingResult, error)
	// Cancel transitions the reservation to cancelled and frees its slots.
	// Cancelling an already-cancelled reservation is a no-op. Scoped to the
	// owning customer; someone else's reservation reads as not found.
	Cancel(ctx context.Context, customerID string, id uuid.UUID) error
	// FulfillPayment applies the gateway's payment-fulfilled signal for a
	// reference. Replaying the signal must not double-apply side effects.
	FulfillPayment(ctx context.Context, reference string) (*FulfillResult, error)
}

type reservationCommandsImpl struct {
	uow        shared.UnitOfWork
	slotReads  SlotReads
	tableReads TableReads
	gateway    PaymentGateway
	sched      *schedule.DailySchedule
	policy     reservation.CancellationPolicy
	returnURL  string
	clock      clock.Clock
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	slotReads SlotReads,
	tableReads TableReads,
	gateway PaymentGateway,
	sched *schedule.DailySchedule,
	policy reservation.CancellationPolicy,
	returnURL string,
	clock clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:        uow,
		slotReads:  slotReads,
		tableReads: tableReads,
		gateway:    gateway,
		sched:      sched,
		policy:     policy,
		returnURL:  returnURL,
		clock:      clock,
	}
}

func (r *reservationCommandsImpl) Book(ctx context.Context, input BookingInput) (*BookingResult, error) {
	timeslots, contact, fee, err := r.validateBooking(ctx, input)
	if err != nil {
		return nil, err
	}

	// Advisory re-check of the client's availability read. The uniqueness
	// constraint at commit time closes the remaining race window.
	for _, ts := range timeslots {
		for _, tableID := range input.TableIDs {
			reserved, err := r.slotReads.IsSlotReserved(ctx, ts.Start(), tableID)
			if err != nil {
				return nil, errs.Mark(err, ErrDatabaseOperationFailed)
			}
			if reserved {
				return nil, ErrSlotConflict
			}
		}
	}

	// Payment reference before the local transaction opens: no reservation
	// row ever exists without a valid reference, and gateway latency stays
	// out of the transaction.
	reference, err := r.gateway.CreateIntent(ctx, fee.Centavos())
	if err != nil {
		return nil, errs.Mark(err, ErrPaymentGateway)
	}
	paymentURL, err := r.gateway.AttachMethod(ctx, reference, input.Method)
	if err != nil {
		return nil, errs.Mark(err, ErrPaymentGateway)
	}

	res, err := reservation.NewReservation(
		input.CustomerID, contact, timeslots, input.TableIDs, fee, reference, input.Method,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Reservations().Create(ctx, res)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			// Another booking won the race after validation. The whole
			// multi-row insert was rolled back; the caller re-fetches
			// availability and retries.
			return nil, errs.Mark(err, ErrSlotConflict)
		}
		if infra.IsKind(err, infra.KindForeignKeyViolated) {
			return nil, errs.Mark(err, ErrTableNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &BookingResult{
		ReservationID:    res.ID(),
		PaymentReference: reference,
		PaymentURL:       paymentURL,
		ReturnURL:        r.returnURL,
	}, nil
}

func (r *reservationCommandsImpl) validateBooking(ctx context.Context, input BookingInput) ([]schedule.Timeslot, reservation.Contact, reservation.Money, error) {
	var zero reservation.Contact
	var zeroFee reservation.Money

	timeslots, err := r.sched.ValidateSelection(input.StartInstants, r.clock.Now())
	if err != nil {
		return nil, zero, zeroFee, errs.Mark(err, ErrValidation)
	}
	if len(input.TableIDs) == 0 {
		return nil, zero, zeroFee, errs.Mark(reservation.ErrEmptyTables, ErrValidation)
	}
	if !input.Method.IsValid() {
		return nil, zero, zeroFee, errs.Mark(reservation.ErrInvalidPaymentMethod, ErrValidation)
	}

	contact, err := reservation.NewContact(input.ContactName, input.ContactInfo)
	if err != nil {
		return nil, zero, zeroFee, errs.Mark(err, ErrValidation)
	}

	fee, err := reservation.NewMoney(input.FeeCentavos)
	if err != nil {
		return nil, zero, zeroFee, errs.Mark(err, ErrValidation)
	}
	if fee.Centavos() < r.gateway.MinAmountCentavos() {
		return nil, zero, zeroFee, ErrFeeBelowMinimum
	}

	if err := r.validateTablesExist(ctx, input.TableIDs); err != nil {
		return nil, zero, zeroFee, err
	}

	return timeslots, contact, fee, nil
}

func (r *reservationCommandsImpl) validateTablesExist(ctx context.Context, tableIDs []string) error {
	tables, err := r.tableReads.ListAll(ctx)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	known := make(map[string]bool, len(tables))
	for _, t := range tables {
		known[t.ID] = true
	}
	seen := make(map[string]bool, len(tableIDs))
	for _, id := range tableIDs {
		if !known[id] {
			return ErrTableNotFound
		}
		if seen[id] {
			return errs.Mark(errs.New("duplicate table selection"), ErrValidation)
		}
		seen[id] = true
	}
	return nil
}

func (r *reservationCommandsImpl) Cancel(ctx context.Context, customerID string, id uuid.UUID) error {
	return r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().FindByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrReservationNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if customerID != "" && res.CustomerID() != customerID {
			return ErrReservationNotFound
		}

		changed, err := res.Cancel(r.policy)
		if err != nil {
			return errs.Mark(err, ErrCancellationNotAllowed)
		}
		if !changed {
			return nil
		}

		if err := tx.Reservations().UpdateStatus(ctx, res); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (r *reservationCommandsImpl) FulfillPayment(ctx context.Context, reference string) (*FulfillResult, error) {
	var result *FulfillResult

	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().FindByPaymentReference(ctx, reference)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				// Webhook delivery may race reservation creation upstream;
				// an unknown reference is a result, not a hard failure.
				return errs.Mark(err, ErrUnknownPaymentReference)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		changed, err := res.MarkFulfilled()
		if err != nil {
			return errs.Mark(err, ErrReservationCancelled)
		}
		result = &FulfillResult{ReservationID: res.ID(), Replayed: !changed}
		if !changed {
			return nil
		}

		if err := tx.Reservations().UpdateStatus(ctx, res); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
