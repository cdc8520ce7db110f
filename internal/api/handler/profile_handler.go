package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cafehub/gateway/internal/core/ports"
)

// ProfileHandler serves the profile composite and profile updates.
type ProfileHandler struct {
	aggregator ports.Aggregator
}

func NewProfileHandler(aggregator ports.Aggregator) *ProfileHandler {
	return &ProfileHandler{aggregator: aggregator}
}

// Bundle handles GET /v1/profile/:username. The profile record is required;
// reviews, reservations, and owner requests are independent best-effort
// sections with their own degraded flags.
//
// @Summary      Profile bundle
// @Tags         profile
// @Produce      json
// @Param        username  path      string  true  "Profile username"
// @Success      200       {object}  profileBundleResponse
// @Failure      401       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /v1/profile/{username} [get]
func (h *ProfileHandler) Bundle(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	username := c.Param("username")
	if username == "" {
		username = identity.Username
	}

	result, err := h.aggregator.ProfileBundle(c.Request().Context(), identity, username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileBundleResponse{
		User:                  result.User,
		Reviews:               result.Reviews,
		ReviewsDegraded:       result.ReviewsDegraded,
		Reservations:          result.Reservations,
		ReservationsDegraded:  result.ReservationsDegraded,
		OwnerRequests:         result.OwnerRequests,
		OwnerRequestsDegraded: result.OwnerRequestsDegraded,
		IsSelf:                result.IsSelf,
	})
}

// Update handles PUT /v1/profile. Callers can only update their own profile;
// the target username is the verified identity's.
//
// @Summary      Update own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err = h.aggregator.UpdateProfile(c.Request().Context(), identity, ports.UpdateProfileInput{
		Desc:       req.Desc,
		ProfilePic: req.ProfilePic,
		Password:   req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "updated"})
}
