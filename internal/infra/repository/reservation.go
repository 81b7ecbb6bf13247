package repository

import (
	"context"
	"errors"
	"time"

	"bistro-reserve/internal/domain/reservation"
	"bistro-reserve/internal/infra"
	"bistro-reserve/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO reservations
			(id, customer_id, contact_name, contact_info, fee_centavos,
			 payment_reference, payment_method, payment_status, attendance_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		res.ID(), res.CustomerID(), res.Contact().Name(), res.Contact().Info(),
		res.Fee().Centavos(), res.PaymentReference(), string(res.PaymentMethod()),
		res.PaymentStatus().String(), res.AttendanceStatus().String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}

	// One row per (timeslot x table) pair. The partial unique index on
	// (starts_at, table_id) WHERE active rejects the insert when another
	// booking won the race; the caller rolls back the whole transaction.
	for _, slot := range res.Slots() {
		_, err := r.db.Exec(ctx, `
			INSERT INTO reservation_slots (id, reservation_id, table_id, starts_at, ends_at, active)
			VALUES ($1, $2, $3, $4, $5, true)`,
			uuid.New(), res.ID(), slot.TableID, slot.StartsAt, slot.EndsAt,
		)
		if err != nil {
			return infra.WrapRepoErr("failed to create reservation slot", err)
		}
	}

	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, customer_id, contact_name, contact_info, fee_centavos,
		       payment_reference, payment_method, payment_status, attendance_status,
		       created_at, updated_at
		FROM reservations
		WHERE id = $1`, id)
	return r.scanReservation(ctx, row)
}

func (r *ReservationRepository) FindByPaymentReference(ctx context.Context, ref string) (*reservation.Reservation, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, customer_id, contact_name, contact_info, fee_centavos,
		       payment_reference, payment_method, payment_status, attendance_status,
		       created_at, updated_at
		FROM reservations
		WHERE payment_reference = $1`, ref)
	return r.scanReservation(ctx, row)
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, res *reservation.Reservation) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE reservations
		SET payment_status = $2, attendance_status = $3, updated_at = now()
		WHERE id = $1`,
		res.ID(), res.PaymentStatus().String(), res.AttendanceStatus().String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", pgx.ErrNoRows, infra.KindNotFound)
	}

	// Cancelled slots stay on record but stop counting toward availability.
	_, err = r.db.Exec(ctx, `
		UPDATE reservation_slots
		SET active = $2
		WHERE reservation_id = $1`,
		res.ID(), !res.IsCancelled(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation slots", err)
	}

	return nil
}

func (r *ReservationRepository) scanReservation(ctx context.Context, row pgx.Row) (*reservation.Reservation, error) {
	var (
		id                        uuid.UUID
		customerID                string
		contactName, contactInfo  string
		feeCentavos               int64
		paymentReference, method  string
		paymentStatus, attendance string
		createdAt, updatedAt      time.Time
	)
	err := row.Scan(&id, &customerID, &contactName, &contactInfo, &feeCentavos,
		&paymentReference, &method, &paymentStatus, &attendance, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan reservation", err)
	}

	slots, err := r.findSlots(ctx, id)
	if err != nil {
		return nil, err
	}

	contact, err := reservation.NewContact(contactName, contactInfo)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid contact on stored reservation", err)
	}
	fee, err := reservation.NewMoney(feeCentavos)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid fee on stored reservation", err)
	}

	return reservation.ReconstructReservation(
		id, customerID, contact, slots, fee,
		paymentReference,
		reservation.PaymentMethod(method),
		reservation.PaymentStatus(paymentStatus),
		reservation.AttendanceStatus(attendance),
		createdAt, updatedAt,
	), nil
}

func (r *ReservationRepository) findSlots(ctx context.Context, reservationID uuid.UUID) ([]reservation.Slot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT table_id, starts_at, ends_at
		FROM reservation_slots
		WHERE reservation_id = $1
		ORDER BY starts_at, table_id`, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load reservation slots", err)
	}
	defer rows.Close()

	var slots []reservation.Slot
	for rows.Next() {
		var s reservation.Slot
		if err := rows.Scan(&s.TableID, &s.StartsAt, &s.EndsAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation slot", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation slots", err)
	}

	return slots, nil
}
