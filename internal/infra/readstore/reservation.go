package readstore

import (
	"context"
	"errors"

	"bistro-reserve/internal/infra"
	"bistro-reserve/internal/infra/db"
	"bistro-reserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	view := &queries.ReservationView{}
	err := r.db.QueryRow(ctx, `
		SELECT id, customer_id, contact_name, contact_info, fee_centavos,
		       payment_reference, payment_method, payment_status, attendance_status,
		       created_at, updated_at
		FROM reservations
		WHERE id = $1`, id).Scan(
		&view.ID, &view.CustomerID, &view.ContactName, &view.ContactInfo, &view.FeeCentavos,
		&view.PaymentReference, &view.PaymentMethod, &view.PaymentStatus, &view.AttendanceStatus,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT table_id, starts_at, ends_at
		FROM reservation_slots
		WHERE reservation_id = $1
		ORDER BY starts_at, table_id`, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load reservation slots", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s queries.SlotView
		if err := rows.Scan(&s.TableID, &s.StartsAt, &s.EndsAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation slot", err)
		}
		view.Slots = append(view.Slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation slots", err)
	}

	return view, nil
}

func (r *ReservationReadStore) FindByCustomerID(ctx context.Context, customerID string) ([]*queries.ReservationListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.fee_centavos, r.payment_status, r.attendance_status,
		       min(s.starts_at), max(s.ends_at), r.created_at
		FROM reservations r
		JOIN reservation_slots s ON s.reservation_id = r.id
		WHERE r.customer_id = $1
		GROUP BY r.id
		ORDER BY min(s.starts_at) DESC, r.created_at DESC`, customerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations by customer", err)
	}
	defer rows.Close()

	var items []*queries.ReservationListItem
	for rows.Next() {
		item := &queries.ReservationListItem{}
		err := rows.Scan(&item.ID, &item.FeeCentavos, &item.PaymentStatus,
			&item.AttendanceStatus, &item.StartsAt, &item.EndsAt, &item.CreatedAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation list item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservations", err)
	}

	return items, nil
}
