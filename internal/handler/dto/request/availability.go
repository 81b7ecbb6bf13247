package request

import (
	"time"
)

// Availability instants arrive as repeated RFC3339 query values:
// /api/availability?at=2026-09-01T10:00:00+08:00&at=2026-09-01T11:15:00+08:00
type AvailabilityQuery struct {
	At []string `form:"at" binding:"required,min=1"`
}

func (q AvailabilityQuery) Instants() ([]time.Time, error) {
	instants := make([]time.Time, len(q.At))
	for i, raw := range q.At {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, err
		}
		instants[i] = t
	}
	return instants, nil
}

type SlotQuery struct {
	At string `form:"at" binding:"required"`
}

func (q SlotQuery) Instant() (time.Time, error) {
	return time.Parse(time.RFC3339, q.At)
}
