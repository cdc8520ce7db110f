package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cafehub/gateway/internal/api/middleware"
	"github.com/cafehub/gateway/internal/core/ports"
)

// CafeHandler serves the cafe detail composite and cafe creation.
type CafeHandler struct {
	aggregator ports.Aggregator
}

func NewCafeHandler(aggregator ports.Aggregator) *CafeHandler {
	return &CafeHandler{aggregator: aggregator}
}

// Detail handles GET /v1/cafes/:id. The cafe lookup is required; the review
// lookup is best-effort. Anonymous callers see is_owner=false.
//
// @Summary      Cafe detail
// @Tags         cafes
// @Produce      json
// @Param        id  path      string  true  "Cafe id"
// @Success      200  {object}  cafeDetailResponse
// @Failure      404  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /v1/cafes/{id} [get]
func (h *CafeHandler) Detail(c echo.Context) error {
	identity := middleware.IdentityFrom(c)
	result, err := h.aggregator.CafeDetail(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cafeDetailResponse{
		Cafe:            result.Cafe,
		Reviews:         result.Reviews,
		ReviewsDegraded: result.ReviewsDegraded,
		IsOwner:         result.IsOwner,
	})
}

// Create handles POST /v1/cafes. The owner is the verified identity.
//
// @Summary      Create a cafe listing
// @Tags         cafes
// @Accept       json
// @Produce      json
// @Param        body  body      createCafeRequest  true  "Cafe details"
// @Success      201   {object}  createCafeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/cafes [post]
func (h *CafeHandler) Create(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req createCafeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	id, err := h.aggregator.CreateCafe(c.Request().Context(), identity, ports.CreateCafeInput{
		Name:       req.Name,
		Bio:        req.Bio,
		DTI:        req.DTI,
		Image:      req.Image,
		PriceRange: req.PriceRange,
		Address:    req.Address,
		Items:      req.Items,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createCafeResponse{ID: id})
}
