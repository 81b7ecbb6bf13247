//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"bistro-reserve/internal/domain/reservation"
	"bistro-reserve/internal/infra"
	"bistro-reserve/internal/infra/readstore"
	"bistro-reserve/internal/infra/repository"
	"bistro-reserve/internal/infra/uow"
	"bistro-reserve/internal/usecase/shared"
	"bistro-reserve/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildReservation(t *testing.T, mutate func(*builder.ReservationBuilder)) *reservation.Reservation {
	t.Helper()
	b := builder.NewReservationBuilder()
	if mutate != nil {
		mutate(b)
	}
	res, err := b.BuildDomain()
	require.NoError(t, err)
	return res
}

func TestReservationRepository(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	repo := repository.NewReservationRepository(pool)

	t.Run("create and find round trip", func(t *testing.T) {
		res := buildReservation(t, func(b *builder.ReservationBuilder) {
			b.Reference = "pi_roundtrip"
			b.SlotIndexes = []int{0, 1}
			b.TableIDs = []string{"1", "2"}
		})
		require.NoError(t, repo.Create(ctx, res))

		found, err := repo.FindByID(ctx, res.ID())
		require.NoError(t, err)
		assert.Equal(t, res.CustomerID(), found.CustomerID())
		assert.Equal(t, res.Contact().Name(), found.Contact().Name())
		assert.Equal(t, res.Fee().Centavos(), found.Fee().Centavos())
		assert.Equal(t, reservation.PaymentPending, found.PaymentStatus())
		assert.Len(t, found.Slots(), 4)

		byRef, err := repo.FindByPaymentReference(ctx, "pi_roundtrip")
		require.NoError(t, err)
		assert.Equal(t, res.ID(), byRef.ID())
	})

	t.Run("unknown id reads as not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("occupancy index rejects a second active slot", func(t *testing.T) {
		first := buildReservation(t, func(b *builder.ReservationBuilder) {
			b.Reference = "pi_conflict_1"
			b.SlotIndexes = []int{2}
		})
		require.NoError(t, repo.Create(ctx, first))

		second := buildReservation(t, func(b *builder.ReservationBuilder) {
			b.Reference = "pi_conflict_2"
			b.SlotIndexes = []int{2}
		})
		err := repo.Create(ctx, second)
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})

	t.Run("unknown table violates the foreign key", func(t *testing.T) {
		res := buildReservation(t, func(b *builder.ReservationBuilder) {
			b.Reference = "pi_fk"
			b.SlotIndexes = []int{3}
			b.TableIDs = []string{"99"}
		})
		err := repo.Create(ctx, res)
		assert.True(t, infra.IsKind(err, infra.KindForeignKeyViolated))
	})

	t.Run("cancellation frees the slot for rebooking", func(t *testing.T) {
		res := buildReservation(t, func(b *builder.ReservationBuilder) {
			b.Reference = "pi_cancel_1"
			b.SlotIndexes = []int{4}
		})
		require.NoError(t, repo.Create(ctx, res))

		_, err := res.Cancel(reservation.CancellationPolicy{})
		require.NoError(t, err)
		require.NoError(t, repo.UpdateStatus(ctx, res))

		rebooked := buildReservation(t, func(b *builder.ReservationBuilder) {
			b.Reference = "pi_cancel_2"
			b.SlotIndexes = []int{4}
		})
		assert.NoError(t, repo.Create(ctx, rebooked))

		// The cancelled reservation stays on record
		stored, err := repo.FindByID(ctx, res.ID())
		require.NoError(t, err)
		assert.True(t, stored.IsCancelled())
	})
}

func TestSlotReadStore(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	repo := repository.NewReservationRepository(pool)
	slots := readstore.NewSlotReadStore(pool)

	day := builder.TestSchedule().SlotsOn(builder.BookingDate)
	slot0 := day[0].Start()
	slot1 := day[1].Start()

	res := buildReservation(t, func(b *builder.ReservationBuilder) {
		b.Reference = "pi_reads"
		b.SlotIndexes = []int{0}
		b.TableIDs = []string{"2", "4"}
	})
	require.NoError(t, repo.Create(ctx, res))

	t.Run("reserved table ids for one instant", func(t *testing.T) {
		ids, err := slots.ReservedTableIDs(ctx, slot0)
		require.NoError(t, err)
		assert.Equal(t, []string{"2", "4"}, ids)

		empty, err := slots.ReservedTableIDs(ctx, slot1)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("union across instants", func(t *testing.T) {
		ids, err := slots.ReservedTableIDsForAny(ctx, []time.Time{slot0, slot1})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"2", "4"}, ids)
	})

	t.Run("single slot occupancy flag", func(t *testing.T) {
		reserved, err := slots.IsSlotReserved(ctx, slot0, "2")
		require.NoError(t, err)
		assert.True(t, reserved)

		free, err := slots.IsSlotReserved(ctx, slot0, "3")
		require.NoError(t, err)
		assert.False(t, free)
	})

	t.Run("cancelled slots drop out of occupancy reads", func(t *testing.T) {
		_, err := res.Cancel(reservation.CancellationPolicy{})
		require.NoError(t, err)
		require.NoError(t, repo.UpdateStatus(ctx, res))

		ids, err := slots.ReservedTableIDs(ctx, slot0)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}

func TestTableReadStore(t *testing.T) {
	pool := newTestPool(t)
	tables, err := readstore.NewTableReadStore(pool).ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 5)
	assert.Equal(t, "1", tables[0].ID)
	assert.Equal(t, "5", tables[4].ID)
}

func TestReservationReadStore(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	repo := repository.NewReservationRepository(pool)
	store := readstore.NewReservationReadStore(pool)

	res := buildReservation(t, func(b *builder.ReservationBuilder) {
		b.Reference = "pi_view"
		b.SlotIndexes = []int{0, 1}
	})
	require.NoError(t, repo.Create(ctx, res))

	t.Run("view by id", func(t *testing.T) {
		view, err := store.FindByID(ctx, res.ID())
		require.NoError(t, err)
		assert.Equal(t, res.CustomerID(), view.CustomerID)
		assert.Equal(t, "pi_view", view.PaymentReference)
		assert.Len(t, view.Slots, 2)
	})

	t.Run("customer list spans the whole booking window", func(t *testing.T) {
		items, err := store.FindByCustomerID(ctx, res.CustomerID())
		require.NoError(t, err)
		require.Len(t, items, 1)

		slots := res.Slots()
		assert.True(t, items[0].StartsAt.Equal(slots[0].StartsAt))
		assert.True(t, items[0].EndsAt.Equal(slots[len(slots)-1].EndsAt))
	})

	t.Run("unknown customer lists nothing", func(t *testing.T) {
		items, err := store.FindByCustomerID(ctx, "cust-nobody")
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestPostgresUoW(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	unit := uow.NewPostgresUoW(pool)
	repo := repository.NewReservationRepository(pool)

	t.Run("commits on success", func(t *testing.T) {
		res := buildReservation(t, func(b *builder.ReservationBuilder) {
			b.Reference = "pi_uow_ok"
		})
		err := unit.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Reservations().Create(ctx, res)
		})
		require.NoError(t, err)

		_, err = repo.FindByID(ctx, res.ID())
		assert.NoError(t, err)
	})

	t.Run("conflict rolls back the whole reservation", func(t *testing.T) {
		held := buildReservation(t, func(b *builder.ReservationBuilder) {
			b.Reference = "pi_uow_held"
			b.SlotIndexes = []int{5}
		})
		require.NoError(t, repo.Create(ctx, held))

		// Wants slots 5 and 6; 5 is taken, so nothing of this booking may land.
		loser := buildReservation(t, func(b *builder.ReservationBuilder) {
			b.Reference = "pi_uow_loser"
			b.SlotIndexes = []int{5, 6}
		})
		err := unit.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Reservations().Create(ctx, loser)
		})
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))

		_, err = repo.FindByID(ctx, loser.ID())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}
