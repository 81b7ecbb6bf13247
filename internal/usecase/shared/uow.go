package shared

import (
	"context"

	"bistro-reserve/internal/domain/reservation"

	"github.com/google/uuid"
)

// UnitOfWork runs write operations inside one store transaction. The store's
// own atomicity and uniqueness enforcement is the single source of truth for
// conflicting bookings; application-level availability checks are advisory.
type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures (constraint violations are surfaced, not retried)
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Reservations() ReservationRepository
}

type ReservationRepository interface {
	// Create inserts the reservation row plus one slot row per
	// (timeslot x table) pair as one unit. A uniqueness violation on
	// (starts_at, table_id) aborts the whole insert.
	Create(ctx context.Context, res *reservation.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	FindByPaymentReference(ctx context.Context, ref string) (*reservation.Reservation, error)
	// UpdateStatus persists the aggregate's payment/attendance statuses and
	// keeps its slots' active flag in sync (cancelled frees the slots).
	UpdateStatus(ctx context.Context, res *reservation.Reservation) error
}
