package response

import (
	"time"

	"bistro-reserve/internal/usecase/commands"
	"bistro-reserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CreateReservationResponse struct {
	ID               uuid.UUID `json:"id"`
	PaymentReference string    `json:"payment_reference"`
	PaymentURL       string    `json:"payment_url"`
	ReturnURL        string    `json:"return_url"`
}

func FromBookingResult(result *commands.BookingResult) *CreateReservationResponse {
	return &CreateReservationResponse{
		ID:               result.ReservationID,
		PaymentReference: result.PaymentReference,
		PaymentURL:       result.PaymentURL,
		ReturnURL:        result.ReturnURL,
	}
}

type ReservationResponse struct {
	ID               uuid.UUID      `json:"id"`
	CustomerID       string         `json:"customer_id"`
	ContactName      string         `json:"contact_name"`
	ContactInfo      string         `json:"contact_info"`
	FeeCentavos      int64          `json:"fee_centavos"`
	PaymentReference string         `json:"payment_reference"`
	PaymentMethod    string         `json:"payment_method"`
	PaymentStatus    string         `json:"payment_status"`
	AttendanceStatus string         `json:"attendance_status"`
	Slots            []SlotResponse `json:"slots"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

type SlotResponse struct {
	TableID  string    `json:"table_id"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

type ReservationListResponse struct {
	ID               uuid.UUID `json:"id"`
	FeeCentavos      int64     `json:"fee_centavos"`
	PaymentStatus    string    `json:"payment_status"`
	AttendanceStatus string    `json:"attendance_status"`
	StartsAt         time.Time `json:"starts_at"`
	EndsAt           time.Time `json:"ends_at"`
	CreatedAt        time.Time `json:"created_at"`
}

func FromReservationView(view *queries.ReservationView) (*ReservationResponse, error) {
	var resp ReservationResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromReservationListItems(items []*queries.ReservationListItem) ([]*ReservationListResponse, error) {
	resp := make([]*ReservationListResponse, 0, len(items))
	if err := copier.Copy(&resp, items); err != nil {
		return nil, err
	}
	return resp, nil
}
