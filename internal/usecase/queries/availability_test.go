//go:build unit

package queries_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"bistro-reserve/internal/domain/table"
	"bistro-reserve/internal/usecase/queries"
	"bistro-reserve/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSlotReads struct {
	// reserved table ids keyed by unix timestamp of the slot start
	reserved map[int64][]string
}

func (s *stubSlotReads) ReservedTableIDs(_ context.Context, at time.Time) ([]string, error) {
	return s.reserved[at.Unix()], nil
}

func (s *stubSlotReads) ReservedTableIDsForAny(_ context.Context, at []time.Time) ([]string, error) {
	seen := make(map[string]bool)
	var union []string
	for _, t := range at {
		for _, id := range s.reserved[t.Unix()] {
			if !seen[id] {
				seen[id] = true
				union = append(union, id)
			}
		}
	}
	return union, nil
}

type stubTableReads struct {
	tables []table.Table
}

func (s *stubTableReads) ListAll(_ context.Context) ([]table.Table, error) {
	return s.tables, nil
}

func fiveTables() []table.Table {
	tables := make([]table.Table, 5)
	for i := range tables {
		tables[i] = table.Table{ID: fmt.Sprintf("%d", i+1), Seq: int32(i + 1)}
	}
	return tables
}

func TestAvailableTableIDs(t *testing.T) {
	ctx := context.Background()
	day := builder.TestSchedule().SlotsOn(builder.BookingDate)
	slot0 := day[0].Start()
	slot1 := day[1].Start()

	t.Run("empty instants rejected", func(t *testing.T) {
		q := queries.NewAvailabilityQueries(&stubSlotReads{}, &stubTableReads{tables: fiveTables()})
		_, err := q.AvailableTableIDs(ctx, nil)
		assert.ErrorIs(t, err, queries.ErrEmptyInstants)
	})

	t.Run("all tables free", func(t *testing.T) {
		q := queries.NewAvailabilityQueries(
			&stubSlotReads{reserved: map[int64][]string{}},
			&stubTableReads{tables: fiveTables()},
		)
		ids, err := q.AvailableTableIDs(ctx, []time.Time{slot0})
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids)
	})

	t.Run("reserved tables excluded in registry order", func(t *testing.T) {
		q := queries.NewAvailabilityQueries(
			&stubSlotReads{reserved: map[int64][]string{
				slot0.Unix(): {"2", "4"},
			}},
			&stubTableReads{tables: fiveTables()},
		)
		ids, err := q.AvailableTableIDs(ctx, []time.Time{slot0})
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "3", "5"}, ids)
	})

	t.Run("multi instant request subtracts the union", func(t *testing.T) {
		q := queries.NewAvailabilityQueries(
			&stubSlotReads{reserved: map[int64][]string{
				slot0.Unix(): {"1"},
				slot1.Unix(): {"2"},
			}},
			&stubTableReads{tables: fiveTables()},
		)
		ids, err := q.AvailableTableIDs(ctx, []time.Time{slot0, slot1})
		require.NoError(t, err)
		assert.Equal(t, []string{"3", "4", "5"}, ids)
	})

	t.Run("no tables free", func(t *testing.T) {
		q := queries.NewAvailabilityQueries(
			&stubSlotReads{reserved: map[int64][]string{
				slot0.Unix(): {"1", "2", "3", "4", "5"},
			}},
			&stubTableReads{tables: fiveTables()},
		)
		ids, err := q.AvailableTableIDs(ctx, []time.Time{slot0})
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}

func TestSlotAvailability(t *testing.T) {
	ctx := context.Background()
	day := builder.TestSchedule().SlotsOn(builder.BookingDate)
	slot0 := day[0].Start()

	t.Run("not full while any table is free", func(t *testing.T) {
		q := queries.NewAvailabilityQueries(
			&stubSlotReads{reserved: map[int64][]string{
				slot0.Unix(): {"1", "2", "3", "4"},
			}},
			&stubTableReads{tables: fiveTables()},
		)
		sa, err := q.SlotAvailability(ctx, slot0)
		require.NoError(t, err)
		assert.False(t, sa.Full)
		assert.Equal(t, 5, sa.TotalTables)
		assert.Len(t, sa.ReservedTableIDs, 4)
	})

	t.Run("full when every table is reserved", func(t *testing.T) {
		q := queries.NewAvailabilityQueries(
			&stubSlotReads{reserved: map[int64][]string{
				slot0.Unix(): {"1", "2", "3", "4", "5"},
			}},
			&stubTableReads{tables: fiveTables()},
		)
		sa, err := q.SlotAvailability(ctx, slot0)
		require.NoError(t, err)
		assert.True(t, sa.Full)
	})

	t.Run("empty registry is never full", func(t *testing.T) {
		q := queries.NewAvailabilityQueries(
			&stubSlotReads{reserved: map[int64][]string{}},
			&stubTableReads{},
		)
		sa, err := q.SlotAvailability(ctx, slot0)
		require.NoError(t, err)
		assert.False(t, sa.Full)
		assert.Zero(t, sa.TotalTables)
	})
}

func TestListTables(t *testing.T) {
	q := queries.NewAvailabilityQueries(&stubSlotReads{}, &stubTableReads{tables: fiveTables()})
	views, err := q.ListTables(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 5)
	assert.Equal(t, "1", views[0].ID)
	assert.Equal(t, "5", views[4].ID)
}
