package queries

import (
	"context"
	"time"

	"bistro-reserve/internal/domain/table"
	"bistro-reserve/internal/pkg/errs"
)

var ErrEmptyInstants = errs.New("at least one instant is required")

// Availability reads are advisory UX data: they may be stale by the time a
// booking commits and are never transactionally linked to the commit.
type AvailabilityQueries interface {
	// AvailableTableIDs returns the tables free across ALL given instants:
	// the registry minus the union of reservations per instant.
	AvailableTableIDs(ctx context.Context, instants []time.Time) ([]string, error)
	// SlotAvailability answers the fullness question for one timeslot.
	SlotAvailability(ctx context.Context, at time.Time) (*SlotAvailability, error)
	// ListTables exposes the registry in insertion order for display.
	ListTables(ctx context.Context) ([]TableView, error)
}

type SlotReadStore interface {
	ReservedTableIDs(ctx context.Context, at time.Time) ([]string, error)
	ReservedTableIDsForAny(ctx context.Context, at []time.Time) ([]string, error)
}

type TableReadStore interface {
	ListAll(ctx context.Context) ([]table.Table, error)
}

type availabilityQueriesImpl struct {
	slots  SlotReadStore
	tables TableReadStore
}

func NewAvailabilityQueries(slots SlotReadStore, tables TableReadStore) AvailabilityQueries {
	return &availabilityQueriesImpl{slots: slots, tables: tables}
}

func (q *availabilityQueriesImpl) AvailableTableIDs(ctx context.Context, instants []time.Time) ([]string, error) {
	if len(instants) == 0 {
		return nil, ErrEmptyInstants
	}

	tables, err := q.tables.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	reserved, err := q.slots.ReservedTableIDsForAny(ctx, instants)
	if err != nil {
		return nil, err
	}

	// Registry order minus the union of reserved ids. A table held for any
	// one requested hour is unusable for the whole multi-hour booking.
	available := table.Filter(tables, reserved)
	return table.IDs(available), nil
}

func (q *availabilityQueriesImpl) SlotAvailability(ctx context.Context, at time.Time) (*SlotAvailability, error) {
	tables, err := q.tables.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	reserved, err := q.slots.ReservedTableIDs(ctx, at)
	if err != nil {
		return nil, err
	}

	return &SlotAvailability{
		StartsAt:         at,
		ReservedTableIDs: reserved,
		TotalTables:      len(tables),
		Full:             len(tables) > 0 && len(reserved) >= len(tables),
	}, nil
}

func (q *availabilityQueriesImpl) ListTables(ctx context.Context) ([]TableView, error) {
	tables, err := q.tables.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]TableView, len(tables))
	for i, t := range tables {
		views[i] = TableView{ID: t.ID}
	}
	return views, nil
}
