package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cafehub/gateway/internal/core/ports"
)

// ReviewHandler handles review writes. Reads are served inside the cafe and
// profile composites.
type ReviewHandler struct {
	aggregator ports.Aggregator
}

func NewReviewHandler(aggregator ports.Aggregator) *ReviewHandler {
	return &ReviewHandler{aggregator: aggregator}
}

// Submit handles POST /v1/reviews. The author is always the verified
// identity; any actor field in the payload is ignored.
//
// @Summary      Submit a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        body  body      submitReviewRequest  true  "Review"
// @Success      201   {object}  statusResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/reviews [post]
func (h *ReviewHandler) Submit(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req submitReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err = h.aggregator.SubmitReview(c.Request().Context(), identity, ports.SubmitReviewInput{
		CafeName: req.CafeName,
		CafeID:   req.CafeID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, statusResponse{Status: "submitted"})
}

// Edit handles PUT /v1/reviews/:id. Rejected with 403 when the caller is not
// the review's author; the check precedes the write call.
//
// @Summary      Edit a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Review id"
// @Param        body  body      editReviewRequest  true  "New rating and comment"
// @Success      200   {object}  statusResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/reviews/{id} [put]
func (h *ReviewHandler) Edit(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req editReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.aggregator.EditReview(c.Request().Context(), identity, c.Param("id"), req.Rating, req.Comment); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "updated"})
}

// Delete handles DELETE /v1/reviews/:id with the same author gate as Edit.
//
// @Summary      Delete a review
// @Tags         reviews
// @Produce      json
// @Param        id  path      string  true  "Review id"
// @Success      200  {object}  statusResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}
	if err := h.aggregator.DeleteReview(c.Request().Context(), identity, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "deleted"})
}
