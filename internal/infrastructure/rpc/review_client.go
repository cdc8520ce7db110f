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

// ReviewClient talks to the review backend.
type ReviewClient struct {
	caller
}

func NewReviewClient(baseURL string, client *http.Client, timeout time.Duration, logger zerolog.Logger) *ReviewClient {
	return &ReviewClient{caller: newCaller("review", baseURL, client, timeout, logger)}
}

type wireReview struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Cafe     string `json:"cafe"`
	CafeID   string `json:"cafe_id"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Date     string `json:"date"`
	IsEdited bool   `json:"isEdited"`
}

func (w wireReview) toDomain() domain.Review {
	return domain.Review{
		ID:       w.ID,
		Author:   w.Username,
		CafeName: w.Cafe,
		CafeID:   w.CafeID,
		Rating:   w.Rating,
		Comment:  w.Comment,
		Date:     w.Date,
		IsEdited: w.IsEdited,
	}
}

type reviewsResponse struct {
	Reviews []wireReview `json:"reviews"`
}

func (c *ReviewClient) GetReviews(ctx context.Context, filter ports.ReviewFilter) ([]domain.Review, error) {
	query := url.Values{}
	if filter.CafeName != "" {
		query.Set("cafe_name", filter.CafeName)
	}
	if filter.Username != "" {
		query.Set("username", filter.Username)
	}
	if filter.ReviewID != "" {
		query.Set("review_id", filter.ReviewID)
	}
	var resp reviewsResponse
	if err := c.call(ctx, "GetReviews", http.MethodGet, "/api/reviews", query, nil, &resp); err != nil {
		return nil, err
	}
	reviews := make([]domain.Review, 0, len(resp.Reviews))
	for _, w := range resp.Reviews {
		reviews = append(reviews, w.toDomain())
	}
	return reviews, nil
}

func (c *ReviewClient) AddReview(ctx context.Context, input ports.AddReviewInput) error {
	req := map[string]any{
		"username": input.Author,
		"cafe":     input.CafeName,
		"cafe_id":  input.CafeID,
		"rating":   input.Rating,
		"comment":  input.Comment,
		"date":     input.Date,
	}
	return c.call(ctx, "AddReview", http.MethodPost, "/api/reviews", nil, req, nil)
}

func (c *ReviewClient) EditReview(ctx context.Context, id string, rating int, comment string) error {
	req := map[string]any{"rating": rating, "comment": comment}
	return c.call(ctx, "EditReview", http.MethodPut, "/api/reviews/"+url.PathEscape(id), nil, req, nil)
}

func (c *ReviewClient) DeleteReview(ctx context.Context, id string) error {
	return c.call(ctx, "DeleteReview", http.MethodDelete, "/api/reviews/"+url.PathEscape(id), nil, nil, nil)
}
