package readstore

import (
	"context"
	"time"

	"bistro-reserve/internal/infra"
	"bistro-reserve/internal/infra/db"

	"github.com/jackc/pgx/v5"
)

// SlotReadStore answers occupancy questions over reservation_slots.
// Cancelled reservations' slots carry active=false and never count.
type SlotReadStore struct {
	db db.DBTX
}

func NewSlotReadStore(dbtx db.DBTX) *SlotReadStore {
	return &SlotReadStore{db: dbtx}
}

func (s *SlotReadStore) ReservedTableIDs(ctx context.Context, at time.Time) ([]string, error) {
	rows, err := s.db.Query(ctx, `
		SELECT table_id
		FROM reservation_slots
		WHERE starts_at = $1 AND active
		ORDER BY table_id`, at)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query reserved tables", err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

// ReservedTableIDsForAny returns tables holding a non-cancelled slot at ANY
// of the given instants. A table taken for one hour of a multi-hour request
// is unusable for the whole request, so availability subtracts this union.
func (s *SlotReadStore) ReservedTableIDsForAny(ctx context.Context, at []time.Time) ([]string, error) {
	rows, err := s.db.Query(ctx, `
		SELECT DISTINCT table_id
		FROM reservation_slots
		WHERE starts_at = ANY($1) AND active
		ORDER BY table_id`, at)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query reserved tables for instants", err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

func (s *SlotReadStore) IsSlotReserved(ctx context.Context, at time.Time, tableID string) (bool, error) {
	var reserved bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reservation_slots
			WHERE starts_at = $1 AND table_id = $2 AND active
		)`, at, tableID).Scan(&reserved)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check slot occupancy", err)
	}
	return reserved, nil
}

func scanIDs(rows pgx.Rows) ([]string, error) {
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan table id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read table ids", err)
	}
	return ids, nil
}
