package queries

import (
	"context"

	"bistro-reserve/internal/infra"
	"bistro-reserve/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrReservationNotFound = errs.New("reservation not found")

type ReservationQueries interface {
	// GetByID is scoped to the requesting customer: another customer's
	// reservation reads as not found rather than forbidden.
	GetByID(ctx context.Context, customerID string, id uuid.UUID) (*ReservationView, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*ReservationListItem, error)
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByCustomerID(ctx context.Context, customerID string) ([]*ReservationListItem, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, customerID string, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrReservationNotFound)
		}
		return nil, err
	}
	if customerID != "" && view.CustomerID != customerID {
		return nil, ErrReservationNotFound
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListByCustomer(ctx context.Context, customerID string) ([]*ReservationListItem, error) {
	return q.store.FindByCustomerID(ctx, customerID)
}
