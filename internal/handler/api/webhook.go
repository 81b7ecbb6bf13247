package api

import (
	"errors"
	"net/http"

	reqdto "bistro-reserve/internal/handler/dto/request"
	"bistro-reserve/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const eventPaymentPaid = "payment.paid"

type WebhookHandler struct {
	reservationCommands commands.ReservationCommands
}

func NewWebhookHandler(reservationCommands commands.ReservationCommands) *WebhookHandler {
	return &WebhookHandler{
		reservationCommands: reservationCommands,
	}
}

// @Summary Payment webhook
// @Description Gateway callback marking a reservation's payment fulfilled
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.PaymentWebhookRequest true "Gateway event"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /payments/webhook [post]
func (h *WebhookHandler) HandlePaymentEvent(c *gin.Context) {
	var req reqdto.PaymentWebhookRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	// Other event types acknowledge with 200 so the gateway stops retrying.
	if req.EventType() != eventPaymentPaid {
		c.JSON(http.StatusOK, gin.H{"result": "ignored"})
		return
	}

	if req.Reference() == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Payment intent reference is required",
		})
		return
	}

	result, err := h.reservationCommands.FulfillPayment(c.Request.Context(), req.Reference())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrUnknownPaymentReference):
			// 404 makes the gateway retry later; delivery may have raced
			// reservation creation.
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Unknown payment reference",
			})
		case errors.Is(err, commands.ErrReservationCancelled):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Reservation is cancelled",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reservation_id": result.ReservationID,
		"replayed":       result.Replayed,
	})
}
