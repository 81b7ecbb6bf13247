//go:build integration

package integration

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"bistro-reserve/internal/domain/reservation"
	"bistro-reserve/internal/infra/readstore"
	"bistro-reserve/internal/infra/uow"
	"bistro-reserve/internal/pkg/clock"
	"bistro-reserve/internal/usecase/commands"
	"bistro-reserve/tests/common/builder"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingGateway hands out a fresh reference per intent without leaving the
// process, so the test exercises only the store's conflict arbitration.
type countingGateway struct {
	intents atomic.Int64
}

func (g *countingGateway) MinAmountCentavos() int64 {
	return 2000
}

func (g *countingGateway) CreateIntent(_ context.Context, _ int64) (string, error) {
	return fmt.Sprintf("pi_parallel_%d", g.intents.Add(1)), nil
}

func (g *countingGateway) AttachMethod(_ context.Context, reference string, _ reservation.PaymentMethod) (string, error) {
	return "https://gateway.test/checkout/" + reference, nil
}

func newBookingCommands(pool *pgxpool.Pool) commands.ReservationCommands {
	return commands.NewReservationCommands(
		uow.NewPostgresUoW(pool),
		readstore.NewSlotReadStore(pool),
		readstore.NewTableReadStore(pool),
		&countingGateway{},
		builder.TestSchedule(),
		reservation.CancellationPolicy{},
		"https://example.com/return",
		clock.NewMockClock(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)),
	)
}

// Parallel attempts on one (timeslot, table) pair: exactly one booking may
// land, every loser gets the retryable conflict error, and the store holds a
// single active slot row afterwards.
func TestConcurrentBooking(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	cmds := newBookingCommands(pool)

	const attempts = 8
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = cmds.Book(ctx, builder.NewReservationBuilder().BuildBookingInput())
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		assert.ErrorIs(t, err, commands.ErrSlotConflict)
	}
	assert.Equal(t, 1, winners)

	var active int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM reservation_slots WHERE active`).Scan(&active))
	assert.Equal(t, 1, active)
}
