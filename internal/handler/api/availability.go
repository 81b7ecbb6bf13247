package api

import (
	"errors"
	"net/http"

	reqdto "bistro-reserve/internal/handler/dto/request"
	resdto "bistro-reserve/internal/handler/dto/response"
	"bistro-reserve/internal/handler/httperr"
	"bistro-reserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	availabilityQueries queries.AvailabilityQueries
}

func NewAvailabilityHandler(availabilityQueries queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityQueries: availabilityQueries,
	}
}

// @Summary Available tables
// @Description List table IDs free across all requested timeslot instants
// @Tags availability
// @Produce json
// @Param at query []string true "Timeslot start instants (RFC3339, repeatable)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Router /availability [get]
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	var q reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "At least one 'at' instant is required", nil)
		return
	}

	instants, err := q.Instants()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Instants must be RFC3339 timestamps", nil)
		return
	}

	ids, err := h.availabilityQueries.AvailableTableIDs(c.Request.Context(), instants)
	if err != nil {
		if errors.Is(err, queries.ErrEmptyInstants) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "At least one 'at' instant is required", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.AvailabilityResponse{AvailableTableIDs: ids})
}

// @Summary Slot occupancy
// @Description Reserved table IDs and fullness for a single timeslot
// @Tags availability
// @Produce json
// @Param at query string true "Timeslot start instant (RFC3339)"
// @Success 200 {object} resdto.SlotAvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Router /availability/slot [get]
func (h *AvailabilityHandler) GetSlotAvailability(c *gin.Context) {
	var q reqdto.SlotQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Query parameter 'at' is required", nil)
		return
	}

	at, err := q.Instant()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Instants must be RFC3339 timestamps", nil)
		return
	}

	sa, err := h.availabilityQueries.SlotAvailability(c.Request.Context(), at)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSlotAvailability(sa))
}

// @Summary List tables
// @Description All bookable tables in display order
// @Tags availability
// @Produce json
// @Success 200 {array} resdto.TableResponse
// @Router /tables [get]
func (h *AvailabilityHandler) ListTables(c *gin.Context) {
	views, err := h.availabilityQueries.ListTables(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromTableViews(views))
}
