package response

import (
	"time"

	"bistro-reserve/internal/usecase/queries"
)

type AvailabilityResponse struct {
	AvailableTableIDs []string `json:"available_table_ids"`
}

type SlotAvailabilityResponse struct {
	StartsAt         time.Time `json:"starts_at"`
	ReservedTableIDs []string  `json:"reserved_table_ids"`
	TotalTables      int       `json:"total_tables"`
	Full             bool      `json:"full"`
}

func FromSlotAvailability(sa *queries.SlotAvailability) *SlotAvailabilityResponse {
	return &SlotAvailabilityResponse{
		StartsAt:         sa.StartsAt,
		ReservedTableIDs: sa.ReservedTableIDs,
		TotalTables:      sa.TotalTables,
		Full:             sa.Full,
	}
}

type TableResponse struct {
	ID string `json:"id"`
}

func FromTableViews(views []queries.TableView) []TableResponse {
	resp := make([]TableResponse, len(views))
	for i, v := range views {
		resp[i] = TableResponse{ID: v.ID}
	}
	return resp
}
