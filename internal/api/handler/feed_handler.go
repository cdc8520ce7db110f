package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cafehub/gateway/internal/core/ports"
)

// FeedHandler serves the home feed composite.
type FeedHandler struct {
	aggregator ports.Aggregator
}

func NewFeedHandler(aggregator ports.Aggregator) *FeedHandler {
	return &FeedHandler{aggregator: aggregator}
}

// Home handles GET /v1/feed. A cafe backend outage degrades the feed to an
// empty list with degraded=true; the response status stays 200.
//
// @Summary      Home feed
// @Tags         feed
// @Produce      json
// @Param        search  query     string  false  "Cafe name filter"
// @Success      200     {object}  homeFeedResponse
// @Router       /v1/feed [get]
func (h *FeedHandler) Home(c echo.Context) error {
	result, err := h.aggregator.HomeFeed(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, homeFeedResponse{Cafes: result.Cafes, Degraded: result.Degraded})
}
