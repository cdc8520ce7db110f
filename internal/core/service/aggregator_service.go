package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cafehub/gateway/internal/api/metrics"
	"github.com/cafehub/gateway/internal/core/domain"
	"github.com/cafehub/gateway/internal/core/ports"
)

// AggregatorService implements each composite operation as a small graph of
// backend calls with explicit dependency order and explicit fallbacks.
// Required calls abort the composite on failure; best-effort calls degrade
// their section to an empty value and set the section's degraded flag.
//
// The service holds no mutable state: clients are shared read-only across
// requests, and everything else lives on the stack of one call.
type AggregatorService struct {
	core        ports.CoreClient
	reviews     ports.ReviewClient
	reservation ports.ReservationClient
	credentials ports.CredentialService
	logger      zerolog.Logger
}

func NewAggregatorService(
	core ports.CoreClient,
	reviews ports.ReviewClient,
	reservation ports.ReservationClient,
	credentials ports.CredentialService,
	logger zerolog.Logger,
) *AggregatorService {
	return &AggregatorService{
		core:        core,
		reviews:     reviews,
		reservation: reservation,
		credentials: credentials,
		logger:      logger,
	}
}

// HomeFeed returns the cafe catalogue, optionally filtered by search. The
// single backend call is best-effort: an outage yields an empty list with the
// degraded flag set instead of an error page.
func (s *AggregatorService) HomeFeed(ctx context.Context, search string) (*ports.HomeFeedResult, error) {
	cafes, err := s.core.GetCafes(ctx, search)
	if err != nil {
		s.degraded("home_feed", "cafes", err)
		return &ports.HomeFeedResult{Cafes: []domain.Cafe{}, Degraded: true}, nil
	}
	return &ports.HomeFeedResult{Cafes: cafes}, nil
}

// CafeDetail fetches one cafe (required) and its reviews (best-effort). The
// review lookup is keyed by the cafe name, so it runs after the required call
// resolves it.
func (s *AggregatorService) CafeDetail(ctx context.Context, identity domain.Identity, cafeID string) (*ports.CafeDetailResult, error) {
	cafe, err := s.core.GetCafeByID(ctx, cafeID)
	if err != nil {
		return nil, domain.RequiredCallError(err)
	}

	result := &ports.CafeDetailResult{
		Cafe:    *cafe,
		Reviews: []domain.Review{},
		IsOwner: cafe.IsOwnedBy(identity),
	}

	reviews, err := s.reviews.GetReviews(ctx, ports.ReviewFilter{CafeName: cafe.Name})
	if err != nil {
		s.degraded("cafe_detail", "reviews", err)
		result.ReviewsDegraded = true
		return result, nil
	}
	result.Reviews = reviews
	return result, nil
}

// ProfileBundle assembles the profile composite:
//
//	1. GetUserProfile        required
//	2. GetReviews(username)  best-effort
//	3. GetCafes("")          best-effort, only when step 2 returned reviews;
//	                         builds the name→{id,image} enrichment table
//	4. GetUserReservations   best-effort
//	5. GetOwnerReservations  best-effort, only when the viewer is the profile
//	                         owner and the profile owns at least one cafe
//
// Steps 2 and 4 and 5 are independent and run concurrently; step 3 depends on
// step 2. Any best-effort failure degrades its own section only.
func (s *AggregatorService) ProfileBundle(ctx context.Context, viewer domain.Identity, username string) (*ports.ProfileBundleResult, error) {
	user, err := s.core.GetUserProfile(ctx, username)
	if err != nil {
		return nil, domain.RequiredCallError(err)
	}

	result := &ports.ProfileBundleResult{
		User:          *user,
		Reviews:       []domain.EnrichedReview{},
		Reservations:  []domain.Reservation{},
		OwnerRequests: []domain.Reservation{},
		IsSelf:        !viewer.IsAnonymous() && viewer.Username == username,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		reviews, err := s.reviews.GetReviews(gctx, ports.ReviewFilter{Username: username})
		if err != nil {
			s.degraded("profile_bundle", "reviews", err)
			result.ReviewsDegraded = true
			return nil
		}
		if len(reviews) == 0 {
			return nil
		}
		cafes, err := s.core.GetCafes(gctx, "")
		if err != nil {
			// The reviews themselves are fine; only the cafe references fall
			// back to placeholders.
			s.degraded("profile_bundle", "review_cafes", err)
			result.ReviewsDegraded = true
			cafes = nil
		}
		result.Reviews = enrichReviews(reviews, cafes)
		return nil
	})

	g.Go(func() error {
		reservations, err := s.reservation.GetUserReservations(gctx, username)
		if err != nil {
			s.degraded("profile_bundle", "reservations", err)
			result.ReservationsDegraded = true
			return nil
		}
		result.Reservations = reservations
		return nil
	})

	if result.IsSelf && len(user.Cafes) > 0 {
		g.Go(func() error {
			requests, err := s.reservation.GetOwnerReservations(gctx, user.Cafes)
			if err != nil {
				s.degraded("profile_bundle", "owner_requests", err)
				result.OwnerRequestsDegraded = true
				return nil
			}
			result.OwnerRequests = requests
			return nil
		})
	}

	// Goroutines only ever return nil; the group is a fan-in barrier that
	// also propagates ctx cancellation to every in-flight call.
	_ = g.Wait()
	return result, nil
}

// enrichReviews joins each review's cafe name against the catalogue snapshot,
// attaching the cafe id and image. Unmatched names fall back to a placeholder
// image with the unmatched flag set; duplicate names resolve to the first
// match and are flagged ambiguous.
func enrichReviews(reviews []domain.Review, cafes []domain.Cafe) []domain.EnrichedReview {
	type cafeEntry struct {
		ref       domain.CafeRef
		ambiguous bool
	}
	table := make(map[string]*cafeEntry, len(cafes))
	for _, cafe := range cafes {
		if existing, ok := table[cafe.Name]; ok {
			existing.ambiguous = true
			continue
		}
		table[cafe.Name] = &cafeEntry{ref: domain.CafeRef{Name: cafe.Name, ID: cafe.ID, Image: cafe.Image}}
	}

	enriched := make([]domain.EnrichedReview, 0, len(reviews))
	for _, review := range reviews {
		ref := domain.CafeRef{Name: review.CafeName, Image: domain.PlaceholderImage, Unmatched: true}
		if entry, ok := table[review.CafeName]; ok {
			ref = entry.ref
			ref.Ambiguous = entry.ambiguous
		}
		enriched = append(enriched, domain.EnrichedReview{Review: review, Cafe: ref})
	}
	return enriched
}

// Authenticate performs the login call and, on success, mints the gateway's
// own signed credential from the returned user. Failures collapse into
// ErrUnauthenticated without revealing whether the username or password was
// wrong.
func (s *AggregatorService) Authenticate(ctx context.Context, username, password string) (*ports.AuthenticateResult, error) {
	login, err := s.core.Login(ctx, username, password)
	if err != nil {
		if be, ok := domain.AsBackendError(err); ok {
			switch be.Kind {
			case domain.BackendUnreachable, domain.BackendTimeout, domain.BackendInternal:
				metrics.LoginsTotal.WithLabelValues("backend_error").Inc()
				return nil, domain.RequiredCallError(err)
			}
		}
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrUnauthenticated
	}

	token, err := s.credentials.Issue(login.User)
	if err != nil {
		s.logger.Error().Err(err).Msg("credential issue failed")
		return nil, domain.ErrInternal
	}

	identity, ok := s.credentials.Verify(ctx, token)
	if !ok {
		return nil, domain.ErrInternal
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return &ports.AuthenticateResult{Identity: identity, Token: token}, nil
}

// RegisterUser creates a new account. A backend-reported invalid argument
// (duplicate username and friends) surfaces as a validation error so the form
// can re-render with a message.
func (s *AggregatorService) RegisterUser(ctx context.Context, input ports.RegisterInput) error {
	if err := s.core.Register(ctx, input); err != nil {
		if be, ok := domain.AsBackendError(err); ok && be.Kind == domain.BackendInvalidArgument {
			return domain.ErrValidation
		}
		return domain.RequiredCallError(err)
	}
	return nil
}

// UpdateProfile applies a profile update for the caller. The target username
// is the verified identity's, never the payload's.
func (s *AggregatorService) UpdateProfile(ctx context.Context, identity domain.Identity, input ports.UpdateProfileInput) error {
	input.Username = identity.Username
	if err := s.core.UpdateUserProfile(ctx, input); err != nil {
		return domain.RequiredCallError(err)
	}
	return nil
}

// CreateCafe creates a listing owned by the caller. Returns the new cafe id.
func (s *AggregatorService) CreateCafe(ctx context.Context, identity domain.Identity, input ports.CreateCafeInput) (string, error) {
	input.Owner = identity.Username
	id, err := s.core.CreateCafe(ctx, input)
	if err != nil {
		return "", domain.RequiredCallError(err)
	}
	return id, nil
}

// SubmitReview posts a review authored by the caller. The author field is
// stamped from the verified identity regardless of the payload.
func (s *AggregatorService) SubmitReview(ctx context.Context, identity domain.Identity, input ports.SubmitReviewInput) error {
	add := ports.AddReviewInput{
		Author:   identity.Username,
		CafeName: input.CafeName,
		CafeID:   input.CafeID,
		Rating:   input.Rating,
		Comment:  input.Comment,
		Date:     time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.reviews.AddReview(ctx, add); err != nil {
		return domain.RequiredCallError(err)
	}
	return nil
}

// EditReview updates a review after verifying the caller authored it. The
// ownership check happens before the write call is issued.
func (s *AggregatorService) EditReview(ctx context.Context, identity domain.Identity, id string, rating int, comment string) error {
	if err := s.requireReviewAuthor(ctx, identity, id); err != nil {
		return err
	}
	if err := s.reviews.EditReview(ctx, id, rating, comment); err != nil {
		return domain.RequiredCallError(err)
	}
	return nil
}

// DeleteReview removes a review after verifying the caller authored it.
func (s *AggregatorService) DeleteReview(ctx context.Context, identity domain.Identity, id string) error {
	if err := s.requireReviewAuthor(ctx, identity, id); err != nil {
		return err
	}
	if err := s.reviews.DeleteReview(ctx, id); err != nil {
		return domain.RequiredCallError(err)
	}
	return nil
}

func (s *AggregatorService) requireReviewAuthor(ctx context.Context, identity domain.Identity, id string) error {
	found, err := s.reviews.GetReviews(ctx, ports.ReviewFilter{ReviewID: id})
	if err != nil {
		return domain.RequiredCallError(err)
	}
	if len(found) == 0 {
		return domain.ErrNotFound
	}
	if found[0].Author != identity.Username {
		return domain.ErrUnauthorized
	}
	return nil
}

// MakeReservation files a reservation requested by the caller.
func (s *AggregatorService) MakeReservation(ctx context.Context, identity domain.Identity, input ports.MakeReservationInput) error {
	input.Requester = identity.Username
	if err := s.reservation.MakeReservation(ctx, input); err != nil {
		return domain.RequiredCallError(err)
	}
	return nil
}

// UpdateReservationStatus lets a cafe owner accept or reject an incoming
// reservation. The reservation must belong to one of the caller's cafes;
// the check runs against the reservation backend before the write.
func (s *AggregatorService) UpdateReservationStatus(ctx context.Context, identity domain.Identity, id string, status domain.ReservationStatus) error {
	if !domain.ValidReservationStatus(status) {
		return domain.ErrValidation
	}
	if len(identity.OwnedCafes) == 0 {
		return domain.ErrUnauthorized
	}

	owned, err := s.reservation.GetOwnerReservations(ctx, identity.OwnedCafes)
	if err != nil {
		return domain.RequiredCallError(err)
	}
	permitted := false
	for _, r := range owned {
		if r.ID == id {
			permitted = true
			break
		}
	}
	if !permitted {
		return domain.ErrUnauthorized
	}

	if err := s.reservation.UpdateReservationStatus(ctx, id, status); err != nil {
		return domain.RequiredCallError(err)
	}
	return nil
}

func (s *AggregatorService) degraded(operation, section string, err error) {
	metrics.DegradedSectionsTotal.WithLabelValues(operation, section).Inc()
	s.logger.Warn().Err(err).
		Str("operation", operation).
		Str("section", section).
		Msg("section degraded")
}
