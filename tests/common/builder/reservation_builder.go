//go:build unit || integration

package builder

import (
	"fmt"
	"time"

	"bistro-reserve/internal/domain/reservation"
	"bistro-reserve/internal/domain/schedule"
	"bistro-reserve/internal/usecase/commands"
)

// Fixed booking date far enough ahead that "date in past" never trips.
var BookingDate = time.Date(2027, time.March, 10, 0, 0, 0, 0, Manila())

func Manila() *time.Location {
	loc, err := time.LoadLocation("Asia/Manila")
	if err != nil {
		panic(err)
	}
	return loc
}

func TestSchedule() *schedule.DailySchedule {
	s, err := schedule.New(
		"Asia/Manila",
		[]string{"10:00", "11:15", "13:30", "14:45", "16:00", "17:15", "18:30", "20:45"},
		time.Hour,
		nil,
	)
	if err != nil {
		panic(err)
	}
	return s
}

type ReservationBuilder struct {
	CustomerID  string
	ContactName string
	ContactInfo string
	Date        time.Time
	SlotIndexes []int
	TableIDs    []string
	FeeCentavos int64
	Reference   string
	Method      reservation.PaymentMethod
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		CustomerID:  "cust-42",
		ContactName: "Maria Santos",
		ContactInfo: "+63-917-555-0101",
		Date:        BookingDate,
		SlotIndexes: []int{0},
		TableIDs:    []string{"1"},
		FeeCentavos: 5000,
		Reference:   "pi_test_reference",
		Method:      reservation.MethodMaya,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

// Timeslots resolves the builder's slot indexes against the day's schedule.
func (b *ReservationBuilder) Timeslots() []schedule.Timeslot {
	day := TestSchedule().SlotsOn(b.Date)
	slots := make([]schedule.Timeslot, len(b.SlotIndexes))
	for i, idx := range b.SlotIndexes {
		if idx < 0 || idx >= len(day) {
			panic(fmt.Sprintf("slot index %d out of schedule range", idx))
		}
		slots[i] = day[idx]
	}
	return slots
}

func (b *ReservationBuilder) StartInstants() []time.Time {
	timeslots := b.Timeslots()
	instants := make([]time.Time, len(timeslots))
	for i, ts := range timeslots {
		instants[i] = ts.Start()
	}
	return instants
}

func (b *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	contact, err := reservation.NewContact(b.ContactName, b.ContactInfo)
	if err != nil {
		return nil, err
	}
	fee, err := reservation.NewMoney(b.FeeCentavos)
	if err != nil {
		return nil, err
	}
	return reservation.NewReservation(
		b.CustomerID, contact, b.Timeslots(), b.TableIDs, fee, b.Reference, b.Method,
	)
}

func (b *ReservationBuilder) BuildBookingInput() commands.BookingInput {
	return commands.BookingInput{
		CustomerID:    b.CustomerID,
		ContactName:   b.ContactName,
		ContactInfo:   b.ContactInfo,
		StartInstants: b.StartInstants(),
		TableIDs:      b.TableIDs,
		FeeCentavos:   b.FeeCentavos,
		Method:        b.Method,
	}
}
