package rpc

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/cafehub/gateway/internal/core/domain"
	"github.com/cafehub/gateway/internal/core/ports"
)

// ReservationClient talks to the reservation backend.
type ReservationClient struct {
	caller
}

func NewReservationClient(baseURL string, client *http.Client, timeout time.Duration, logger zerolog.Logger) *ReservationClient {
	return &ReservationClient{caller: newCaller("reservation", baseURL, client, timeout, logger)}
}

type wireReservation struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	CafeID   string `json:"cafe_id"`
	CafeName string `json:"cafe_name"`
	Status   string `json:"status"`
	Date     string `json:"date"`
	Notes    string `json:"notes"`
}

func (w wireReservation) toDomain() domain.Reservation {
	return domain.Reservation{
		ID:        w.ID,
		Requester: w.Username,
		CafeID:    w.CafeID,
		CafeName:  w.CafeName,
		Status:    domain.ReservationStatus(w.Status),
		Date:      w.Date,
		Notes:     w.Notes,
	}
}

type reservationsResponse struct {
	Reservations []wireReservation `json:"reservations"`
}

func (c *ReservationClient) MakeReservation(ctx context.Context, input ports.MakeReservationInput) error {
	req := map[string]string{
		"username":  input.Requester,
		"cafe_id":   input.CafeID,
		"cafe_name": input.CafeName,
		"notes":     input.Notes,
	}
	return c.call(ctx, "MakeReservation", http.MethodPost, "/api/reservations", nil, req, nil)
}

func (c *ReservationClient) GetUserReservations(ctx context.Context, username string) ([]domain.Reservation, error) {
	var resp reservationsResponse
	if err := c.call(ctx, "GetUserReservations", http.MethodGet, "/api/reservations/user/"+url.PathEscape(username), nil, nil, &resp); err != nil {
		return nil, err
	}
	return c.toDomainList(resp.Reservations), nil
}

func (c *ReservationClient) GetOwnerReservations(ctx context.Context, cafeNames []string) ([]domain.Reservation, error) {
	if len(cafeNames) == 0 {
		return []domain.Reservation{}, nil
	}
	query := url.Values{}
	for _, name := range cafeNames {
		query.Add("cafes", name)
	}
	var resp reservationsResponse
	if err := c.call(ctx, "GetOwnerReservations", http.MethodGet, "/api/reservations/owner", query, nil, &resp); err != nil {
		return nil, err
	}
	return c.toDomainList(resp.Reservations), nil
}

func (c *ReservationClient) UpdateReservationStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	req := map[string]string{
		"reservation_id": id,
		"status":         string(status),
	}
	return c.call(ctx, "UpdateStatus", http.MethodPost, "/api/reservations/status", nil, req, nil)
}

func (c *ReservationClient) toDomainList(wire []wireReservation) []domain.Reservation {
	reservations := make([]domain.Reservation, 0, len(wire))
	for _, w := range wire {
		reservations = append(reservations, w.toDomain())
	}
	return reservations
}
