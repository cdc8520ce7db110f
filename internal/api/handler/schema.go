package handler

import (
	"github.com/cafehub/gateway/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
	Verify   string `json:"verify"   validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
}

type updateProfileRequest struct {
	Desc       string `json:"desc"`
	ProfilePic string `json:"profile_pic"`
	Password   string `json:"password" validate:"omitempty,min=8"`
}

type createCafeRequest struct {
	Name       string   `json:"name"        validate:"required"`
	Bio        string   `json:"bio"`
	DTI        string   `json:"dti"`
	Image      string   `json:"image"`
	PriceRange string   `json:"price_range"`
	Address    string   `json:"address"     validate:"required"`
	Items      []string `json:"items"`
}

// submitReviewRequest deliberately has no author field: the acting identity
// is stamped server-side and any client-supplied actor would be ignored.
type submitReviewRequest struct {
	CafeName string `json:"cafe_name" validate:"required"`
	CafeID   string `json:"cafe_id"`
	Rating   int    `json:"rating"    validate:"required,min=1,max=5"`
	Comment  string `json:"comment"   validate:"required"`
}

type editReviewRequest struct {
	Rating  int    `json:"rating"  validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

type makeReservationRequest struct {
	CafeID   string `json:"cafe_id"   validate:"required"`
	CafeName string `json:"cafe_name" validate:"required"`
	Notes    string `json:"notes"`
}

type reservationStatusRequest struct {
	ReservationID string `json:"reservation_id" validate:"required"`
	Status        string `json:"status"         validate:"required,oneof=pending accepted rejected"`
}

// --- Response types ---
// Response-only types owned by the transport layer, intentionally separate
// from ports/domain types so the JSON contract is not coupled to internal
// service changes.

type homeFeedResponse struct {
	Cafes    []domain.Cafe `json:"cafes"`
	Degraded bool          `json:"degraded"`
}

type cafeDetailResponse struct {
	Cafe            domain.Cafe     `json:"cafe"`
	Reviews         []domain.Review `json:"reviews"`
	ReviewsDegraded bool            `json:"reviews_degraded"`
	IsOwner         bool            `json:"is_owner"`
}

type profileBundleResponse struct {
	User                  domain.User             `json:"user"`
	Reviews               []domain.EnrichedReview `json:"reviews"`
	ReviewsDegraded       bool                    `json:"reviews_degraded"`
	Reservations          []domain.Reservation    `json:"reservations"`
	ReservationsDegraded  bool                    `json:"reservations_degraded"`
	OwnerRequests         []domain.Reservation    `json:"owner_requests"`
	OwnerRequestsDegraded bool                    `json:"owner_requests_degraded"`
	IsSelf                bool                    `json:"is_self"`
}

type loginResponse struct {
	Identity domain.Identity `json:"identity"`
	Redirect string          `json:"redirect"`
}

type createCafeResponse struct {
	ID string `json:"id"`
}

type statusResponse struct {
	Status string `json:"status"`
}
