package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cafehub/gateway/internal/core/domain"
	"github.com/cafehub/gateway/internal/core/ports"
)

// ReservationHandler handles reservation writes. Reads are served inside the
// profile composite.
type ReservationHandler struct {
	aggregator ports.Aggregator
}

func NewReservationHandler(aggregator ports.Aggregator) *ReservationHandler {
	return &ReservationHandler{aggregator: aggregator}
}

// Make handles POST /v1/reservations. The requester is always the verified
// identity.
//
// @Summary      Make a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        body  body      makeReservationRequest  true  "Reservation"
// @Success      201   {object}  statusResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/reservations [post]
func (h *ReservationHandler) Make(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req makeReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err = h.aggregator.MakeReservation(c.Request().Context(), identity, ports.MakeReservationInput{
		CafeID:   req.CafeID,
		CafeName: req.CafeName,
		Notes:    req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, statusResponse{Status: "requested"})
}

// UpdateStatus handles POST /v1/reservations/status. Only the owner of the
// reservation's cafe may accept or reject it.
//
// @Summary      Accept or reject a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        body  body      reservationStatusRequest  true  "New status"
// @Success      200   {object}  statusResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/reservations/status [post]
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req reservationStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err = h.aggregator.UpdateReservationStatus(c.Request().Context(), identity, req.ReservationID, domain.ReservationStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "updated"})
}
