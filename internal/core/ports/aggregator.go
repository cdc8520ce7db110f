package ports

import (
	"context"

	"github.com/cafehub/gateway/internal/core/domain"
)

// HomeFeedResult is the composite view for the landing feed. Degraded is true
// when the cafe backend could not be reached and the list is an empty
// fallback rather than the real catalogue.
type HomeFeedResult struct {
	Cafes    []domain.Cafe
	Degraded bool
}

// CafeDetailResult is the composite view for a single cafe page. The cafe
// itself is required; reviews are best-effort.
type CafeDetailResult struct {
	Cafe            domain.Cafe
	Reviews         []domain.Review
	ReviewsDegraded bool
	IsOwner         bool
}

// ProfileBundleResult is the composite view for a user profile: the profile
// record, the user's reviews enriched with cafe references, the user's own
// reservations, and, when the viewer owns the profile and at least one cafe,
// the incoming reservations for those cafes. Each best-effort section carries
// its own degraded flag.
type ProfileBundleResult struct {
	User                  domain.User
	Reviews               []domain.EnrichedReview
	ReviewsDegraded       bool
	Reservations          []domain.Reservation
	ReservationsDegraded  bool
	OwnerRequests         []domain.Reservation
	OwnerRequestsDegraded bool
	IsSelf                bool
}

// AuthenticateResult carries the verified identity and the signed credential
// minted for it.
type AuthenticateResult struct {
	Identity domain.Identity
	Token    string
}

// SubmitReviewInput is the client-facing review payload. The author field is
// deliberately absent: the aggregator stamps it from the verified identity.
type SubmitReviewInput struct {
	CafeName string
	CafeID   string
	Rating   int
	Comment  string
}

// Aggregator orchestrates backend calls into composite views and authorized
// writes. Every method receives the verified caller identity explicitly;
// nothing is read from process-global state.
type Aggregator interface {
	HomeFeed(ctx context.Context, search string) (*HomeFeedResult, error)
	CafeDetail(ctx context.Context, identity domain.Identity, cafeID string) (*CafeDetailResult, error)
	ProfileBundle(ctx context.Context, viewer domain.Identity, username string) (*ProfileBundleResult, error)

	Authenticate(ctx context.Context, username, password string) (*AuthenticateResult, error)
	RegisterUser(ctx context.Context, input RegisterInput) error
	UpdateProfile(ctx context.Context, identity domain.Identity, input UpdateProfileInput) error

	CreateCafe(ctx context.Context, identity domain.Identity, input CreateCafeInput) (string, error)

	SubmitReview(ctx context.Context, identity domain.Identity, input SubmitReviewInput) error
	EditReview(ctx context.Context, identity domain.Identity, id string, rating int, comment string) error
	DeleteReview(ctx context.Context, identity domain.Identity, id string) error

	MakeReservation(ctx context.Context, identity domain.Identity, input MakeReservationInput) error
	UpdateReservationStatus(ctx context.Context, identity domain.Identity, id string, status domain.ReservationStatus) error
}
