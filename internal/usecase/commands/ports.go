package commands

import (
	"context"
	"time"

	"bistro-reserve/internal/domain/reservation"
	"bistro-reserve/internal/domain/table"
)

// PaymentGateway is the payment coordination boundary. The reference is
// obtained BEFORE the booking transaction opens so gateway latency never
// extends transaction duration.
type PaymentGateway interface {
	MinAmountCentavos() int64
	CreateIntent(ctx context.Context, amountCentavos int64) (reference string, err error)
	AttachMethod(ctx context.Context, reference string, method reservation.PaymentMethod) (redirectURL string, err error)
}

// SlotReads is the advisory occupancy check run before committing. It may be
// stale by commit time; the store's uniqueness constraint has the final say.
type SlotReads interface {
	IsSlotReserved(ctx context.Context, at time.Time, tableID string) (bool, error)
}

type TableReads interface {
	ListAll(ctx context.Context) ([]table.Table, error)
}
