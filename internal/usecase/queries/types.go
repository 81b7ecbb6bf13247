package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID               uuid.UUID  `json:"id"`
	CustomerID       string     `json:"customer_id"`
	ContactName      string     `json:"contact_name"`
	ContactInfo      string     `json:"contact_info"`
	FeeCentavos      int64      `json:"fee_centavos"`
	PaymentReference string     `json:"payment_reference"`
	PaymentMethod    string     `json:"payment_method"`
	PaymentStatus    string     `json:"payment_status"`
	AttendanceStatus string     `json:"attendance_status"`
	Slots            []SlotView `json:"slots"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type SlotView struct {
	TableID  string    `json:"table_id"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

type ReservationListItem struct {
	ID               uuid.UUID `json:"id"`
	FeeCentavos      int64     `json:"fee_centavos"`
	PaymentStatus    string    `json:"payment_status"`
	AttendanceStatus string    `json:"attendance_status"`
	StartsAt         time.Time `json:"starts_at"`
	EndsAt           time.Time `json:"ends_at"`
	CreatedAt        time.Time `json:"created_at"`
}

type TableView struct {
	ID string `json:"id"`
}

// SlotAvailability is the fullness answer for a single timeslot: the caller
// renders the timeslot control as selectable or disabled once Full.
type SlotAvailability struct {
	StartsAt         time.Time `json:"starts_at"`
	ReservedTableIDs []string  `json:"reserved_table_ids"`
	TotalTables      int       `json:"total_tables"`
	Full             bool      `json:"full"`
}
