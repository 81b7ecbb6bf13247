//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"bistro-reserve/internal/domain/reservation"
	"bistro-reserve/internal/domain/schedule"
	"bistro-reserve/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.ReservationBuilder)
	errIs  error
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewReservationBuilder()
			if tc.mutate != nil {
				tc.mutate(b)
			}
			actual, err := b.BuildDomain()
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, actual)
		})
	}
}

func TestNewReservation(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "cust-42", actual.CustomerID())
		assert.Equal(t, reservation.PaymentPending, actual.PaymentStatus())
		assert.Equal(t, reservation.AttendancePending, actual.AttendanceStatus())
		assert.False(t, actual.IsCancelled())
		require.Len(t, actual.Slots(), 1)
		assert.Equal(t, "1", actual.Slots()[0].TableID)
	})

	t.Run("slot rows are the timeslot x table cross product", func(t *testing.T) {
		b := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
			b.SlotIndexes = []int{1, 2}
			b.TableIDs = []string{"2", "3"}
		})
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		require.Len(t, actual.Slots(), 4)

		timeslots := b.Timeslots()
		expected := reservation.BuildSlots(timeslots, []string{"2", "3"})
		assert.Empty(t, cmp.Diff(expected, actual.Slots()))
	})

	t.Run("field validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty customer",
				mutate: func(b *builder.ReservationBuilder) { b.CustomerID = "" },
				errIs:  reservation.ErrEmptyCustomer,
			},
			{
				name:   "empty tables",
				mutate: func(b *builder.ReservationBuilder) { b.TableIDs = nil },
				errIs:  reservation.ErrEmptyTables,
			},
			{
				name:   "empty payment reference",
				mutate: func(b *builder.ReservationBuilder) { b.Reference = "" },
				errIs:  reservation.ErrEmptyPaymentReference,
			},
			{
				name:   "unsupported payment method",
				mutate: func(b *builder.ReservationBuilder) { b.Method = "PAYPAL" },
				errIs:  reservation.ErrInvalidPaymentMethod,
			},
			{
				name:   "gcash accepted",
				mutate: func(b *builder.ReservationBuilder) { b.Method = reservation.MethodGCash },
			},
		})
	})

	t.Run("empty timeslot selection", func(t *testing.T) {
		contact, err := reservation.NewContact("Maria Santos", "+63-917-555-0101")
		require.NoError(t, err)
		fee, err := reservation.NewMoney(5000)
		require.NoError(t, err)

		_, err = reservation.NewReservation(
			"cust-42", contact, nil, []string{"1"}, fee, "pi_ref", reservation.MethodMaya,
		)
		assert.ErrorIs(t, err, schedule.ErrEmptyTimeslots)
	})
}

func TestValueObjects(t *testing.T) {
	t.Run("money rejects negative amounts", func(t *testing.T) {
		_, err := reservation.NewMoney(-1)
		assert.Error(t, err)

		m, err := reservation.NewMoney(0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), m.Centavos())
	})

	t.Run("contact trims and requires both fields", func(t *testing.T) {
		c, err := reservation.NewContact("  Maria  ", " info ")
		require.NoError(t, err)
		assert.Equal(t, "Maria", c.Name())
		assert.Equal(t, "info", c.Info())

		_, err = reservation.NewContact("   ", "info")
		assert.Error(t, err)
		_, err = reservation.NewContact("Maria", "")
		assert.Error(t, err)
	})
}

func TestMarkFulfilled(t *testing.T) {
	t.Run("pending to fulfilled", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		changed, err := res.MarkFulfilled()
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, reservation.PaymentFulfilled, res.PaymentStatus())
	})

	t.Run("replay is a no-op", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		_, err = res.MarkFulfilled()
		require.NoError(t, err)

		changed, err := res.MarkFulfilled()
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, reservation.PaymentFulfilled, res.PaymentStatus())
	})

	t.Run("cancelled reservation rejects fulfillment", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		_, err = res.Cancel(reservation.CancellationPolicy{})
		require.NoError(t, err)

		_, err = res.MarkFulfilled()
		assert.ErrorIs(t, err, reservation.ErrAlreadyCancelled)
	})
}

func TestCancel(t *testing.T) {
	policy := reservation.CancellationPolicy{}

	t.Run("pending reservation cancels", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		changed, err := res.Cancel(policy)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.True(t, res.IsCancelled())
		assert.Equal(t, reservation.PaymentCancelled, res.PaymentStatus())
		assert.Equal(t, reservation.AttendanceCancelled, res.AttendanceStatus())
	})

	t.Run("cancelling twice is a no-op", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		_, err = res.Cancel(policy)
		require.NoError(t, err)

		changed, err := res.Cancel(policy)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.True(t, res.IsCancelled())
	})

	t.Run("fulfilled reservation blocked by default policy", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)
		_, err = res.MarkFulfilled()
		require.NoError(t, err)

		_, err = res.Cancel(policy)
		assert.ErrorIs(t, err, reservation.ErrCancellationNotAllowed)
		assert.False(t, res.IsCancelled())
	})

	t.Run("fulfilled reservation cancels when policy allows", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)
		_, err = res.MarkFulfilled()
		require.NoError(t, err)

		changed, err := res.Cancel(reservation.CancellationPolicy{AllowFulfilled: true})
		require.NoError(t, err)
		assert.True(t, changed)
		assert.True(t, res.IsCancelled())
	})

	t.Run("completed attendance is never cancellable", func(t *testing.T) {
		res := completedReservation(t)

		_, err := res.Cancel(reservation.CancellationPolicy{AllowFulfilled: true})
		assert.ErrorIs(t, err, reservation.ErrCancellationNotAllowed)
	})
}

func completedReservation(t *testing.T) *reservation.Reservation {
	t.Helper()
	b := builder.NewReservationBuilder()
	contact, err := reservation.NewContact(b.ContactName, b.ContactInfo)
	require.NoError(t, err)
	fee, err := reservation.NewMoney(b.FeeCentavos)
	require.NoError(t, err)

	now := time.Now()
	return reservation.ReconstructReservation(
		uuid.New(), b.CustomerID, contact,
		reservation.BuildSlots(b.Timeslots(), b.TableIDs), fee,
		b.Reference, b.Method,
		reservation.PaymentFulfilled, reservation.AttendanceCompleted,
		now, now,
	)
}
