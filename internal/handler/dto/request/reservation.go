package request

import (
	"time"

	"bistro-reserve/internal/domain/reservation"
	"bistro-reserve/internal/usecase/commands"
)

type CreateReservationRequest struct {
	ContactName   string      `json:"contact_name" binding:"required"`
	ContactInfo   string      `json:"contact_info" binding:"required"`
	Timeslots     []time.Time `json:"timeslots" binding:"required,min=1"`
	TableIDs      []string    `json:"table_ids" binding:"required,min=1"`
	FeeCentavos   int64       `json:"fee_centavos" binding:"required"`
	PaymentMethod string      `json:"payment_method" binding:"required"`
}

func (r CreateReservationRequest) ToInput(customerID string) commands.BookingInput {
	return commands.BookingInput{
		CustomerID:    customerID,
		ContactName:   r.ContactName,
		ContactInfo:   r.ContactInfo,
		StartInstants: r.Timeslots,
		TableIDs:      r.TableIDs,
		FeeCentavos:   r.FeeCentavos,
		Method:        reservation.PaymentMethod(r.PaymentMethod),
	}
}
