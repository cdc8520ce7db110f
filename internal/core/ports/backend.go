package ports

import (
	"context"

	"github.com/cafehub/gateway/internal/core/domain"
)

// LoginResult is returned by the core backend on a successful login.
type LoginResult struct {
	User  domain.User
	Token string
}

// RegisterInput carries a new account request to the core backend.
type RegisterInput struct {
	Username string
	Password string
	Email    string
}

// UpdateProfileInput carries a partial profile update. Empty fields are left
// untouched by the backend.
type UpdateProfileInput struct {
	Username   string
	Desc       string
	ProfilePic string
	Password   string
}

// CreateCafeInput carries a new cafe listing. Owner is always stamped by the
// aggregator from the verified identity.
type CreateCafeInput struct {
	Name       string
	Bio        string
	DTI        string
	Image      string
	PriceRange string
	Address    string
	Items      []string
	Owner      string
}

// CoreClient is the RPC client for the identity/cafe backend.
type CoreClient interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Register(ctx context.Context, input RegisterInput) error
	GetUserProfile(ctx context.Context, username string) (*domain.User, error)
	UpdateUserProfile(ctx context.Context, input UpdateProfileInput) error
	GetCafes(ctx context.Context, search string) ([]domain.Cafe, error)
	GetCafeByID(ctx context.Context, id string) (*domain.Cafe, error)
	CreateCafe(ctx context.Context, input CreateCafeInput) (string, error)
}

// ReviewFilter selects reviews by exactly one of its fields.
type ReviewFilter struct {
	CafeName string
	Username string
	ReviewID string
}

// AddReviewInput carries a new review. Author is always stamped by the
// aggregator from the verified identity.
type AddReviewInput struct {
	Author   string
	CafeName string
	CafeID   string
	Rating   int
	Comment  string
	Date     string
}

// ReviewClient is the RPC client for the review backend.
type ReviewClient interface {
	GetReviews(ctx context.Context, filter ReviewFilter) ([]domain.Review, error)
	AddReview(ctx context.Context, input AddReviewInput) error
	EditReview(ctx context.Context, id string, rating int, comment string) error
	DeleteReview(ctx context.Context, id string) error
}

// MakeReservationInput carries a new reservation request. Requester is always
// stamped by the aggregator from the verified identity.
type MakeReservationInput struct {
	Requester string
	CafeID    string
	CafeName  string
	Notes     string
}

// ReservationClient is the RPC client for the reservation backend.
type ReservationClient interface {
	MakeReservation(ctx context.Context, input MakeReservationInput) error
	GetUserReservations(ctx context.Context, username string) ([]domain.Reservation, error)
	GetOwnerReservations(ctx context.Context, cafeNames []string) ([]domain.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id string, status domain.ReservationStatus) error
}
