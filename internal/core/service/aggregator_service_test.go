package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cafehub/gateway/internal/core/domain"
	"github.com/cafehub/gateway/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub backend clients
// ---------------------------------------------------------------------------

func backendDown(service, op string) error {
	return domain.NewBackendError(service, op, domain.BackendUnreachable, nil)
}

type stubCoreClient struct {
	cafes       []domain.Cafe
	cafesErr    error
	cafeByID    map[string]domain.Cafe
	cafeByIDErr error
	users       map[string]domain.User
	usersErr    error
	loginResult *ports.LoginResult
	loginErr    error

	createdCafe *ports.CreateCafeInput
	updated     *ports.UpdateProfileInput
}

func (c *stubCoreClient) Login(_ context.Context, username, password string) (*ports.LoginResult, error) {
	if c.loginErr != nil {
		return nil, c.loginErr
	}
	return c.loginResult, nil
}

func (c *stubCoreClient) Register(_ context.Context, _ ports.RegisterInput) error { return nil }

func (c *stubCoreClient) GetUserProfile(_ context.Context, username string) (*domain.User, error) {
	if c.usersErr != nil {
		return nil, c.usersErr
	}
	user, ok := c.users[username]
	if !ok {
		return nil, domain.NewBackendError("core", "GetUserProfile", domain.BackendNotFound, nil)
	}
	return &user, nil
}

func (c *stubCoreClient) UpdateUserProfile(_ context.Context, input ports.UpdateProfileInput) error {
	c.updated = &input
	return nil
}

func (c *stubCoreClient) GetCafes(_ context.Context, _ string) ([]domain.Cafe, error) {
	if c.cafesErr != nil {
		return nil, c.cafesErr
	}
	return c.cafes, nil
}

func (c *stubCoreClient) GetCafeByID(_ context.Context, id string) (*domain.Cafe, error) {
	if c.cafeByIDErr != nil {
		return nil, c.cafeByIDErr
	}
	cafe, ok := c.cafeByID[id]
	if !ok {
		return nil, domain.NewBackendError("core", "GetCafeById", domain.BackendNotFound, nil)
	}
	return &cafe, nil
}

func (c *stubCoreClient) CreateCafe(_ context.Context, input ports.CreateCafeInput) (string, error) {
	c.createdCafe = &input
	return "cafe-99", nil
}

type stubReviewClient struct {
	reviews    []domain.Review
	reviewsErr error

	added       *ports.AddReviewInput
	editedID    string
	deletedID   string
	writeCalled bool
}

func (c *stubReviewClient) GetReviews(_ context.Context, _ ports.ReviewFilter) ([]domain.Review, error) {
	if c.reviewsErr != nil {
		return nil, c.reviewsErr
	}
	return c.reviews, nil
}

func (c *stubReviewClient) AddReview(_ context.Context, input ports.AddReviewInput) error {
	c.writeCalled = true
	c.added = &input
	return nil
}

func (c *stubReviewClient) EditReview(_ context.Context, id string, _ int, _ string) error {
	c.writeCalled = true
	c.editedID = id
	return nil
}

func (c *stubReviewClient) DeleteReview(_ context.Context, id string) error {
	c.writeCalled = true
	c.deletedID = id
	return nil
}

type stubReservationClient struct {
	userReservations  []domain.Reservation
	userErr           error
	ownerReservations []domain.Reservation
	ownerErr          error

	made            *ports.MakeReservationInput
	statusID        string
	statusValue     domain.ReservationStatus
	statusCalled    bool
	ownerCalledWith []string
}

func (c *stubReservationClient) MakeReservation(_ context.Context, input ports.MakeReservationInput) error {
	c.made = &input
	return nil
}

func (c *stubReservationClient) GetUserReservations(_ context.Context, _ string) ([]domain.Reservation, error) {
	if c.userErr != nil {
		return nil, c.userErr
	}
	return c.userReservations, nil
}

func (c *stubReservationClient) GetOwnerReservations(_ context.Context, cafeNames []string) ([]domain.Reservation, error) {
	c.ownerCalledWith = cafeNames
	if c.ownerErr != nil {
		return nil, c.ownerErr
	}
	return c.ownerReservations, nil
}

func (c *stubReservationClient) UpdateReservationStatus(_ context.Context, id string, status domain.ReservationStatus) error {
	c.statusCalled = true
	c.statusID = id
	c.statusValue = status
	return nil
}

type stubCredentials struct {
	issued   string
	issueErr error
	identity domain.Identity
	valid    bool
}

func (s *stubCredentials) Issue(user domain.User) (string, error) {
	if s.issueErr != nil {
		return "", s.issueErr
	}
	return s.issued, nil
}

func (s *stubCredentials) Verify(_ context.Context, _ string) (domain.Identity, bool) {
	return s.identity, s.valid
}

func (s *stubCredentials) Revoke(_ context.Context, _ string) error { return nil }

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type fixture struct {
	core        *stubCoreClient
	reviews     *stubReviewClient
	reservation *stubReservationClient
	credentials *stubCredentials
	svc         *AggregatorService
}

func newFixture() *fixture {
	f := &fixture{
		core:        &stubCoreClient{cafeByID: map[string]domain.Cafe{}, users: map[string]domain.User{}},
		reviews:     &stubReviewClient{},
		reservation: &stubReservationClient{},
		credentials: &stubCredentials{},
	}
	f.svc = NewAggregatorService(f.core, f.reviews, f.reservation, f.credentials, discardLogger)
	return f
}

func aliceIdentity() domain.Identity {
	return domain.Identity{
		Username:   "alice",
		Email:      "alice@example.com",
		OwnedCafes: []string{"CafeA"},
		ExpiresAt:  time.Now().Add(time.Hour),
	}
}

// ---------------------------------------------------------------------------
// HomeFeed
// ---------------------------------------------------------------------------

func TestHomeFeed_Success(t *testing.T) {
	f := newFixture()
	f.core.cafes = []domain.Cafe{{ID: "1", Name: "CafeA"}}

	result, err := f.svc.HomeFeed(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Degraded {
		t.Fatalf("feed should not be degraded")
	}
	if len(result.Cafes) != 1 || result.Cafes[0].Name != "CafeA" {
		t.Fatalf("unexpected cafes: %+v", result.Cafes)
	}
}

func TestHomeFeed_BackendDown_DegradesToEmptyList(t *testing.T) {
	f := newFixture()
	f.core.cafesErr = backendDown("core", "GetCafes")

	result, err := f.svc.HomeFeed(context.Background(), "")
	if err != nil {
		t.Fatalf("feed must not error on backend outage: %v", err)
	}
	if !result.Degraded {
		t.Fatalf("degraded flag not set")
	}
	if result.Cafes == nil || len(result.Cafes) != 0 {
		t.Fatalf("expected empty (non-nil) cafe list, got %+v", result.Cafes)
	}
}

// ---------------------------------------------------------------------------
// CafeDetail
// ---------------------------------------------------------------------------

func TestCafeDetail_CafeMissing_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CafeDetail(context.Background(), domain.Identity{}, "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCafeDetail_CafeBackendDown_Unavailable(t *testing.T) {
	f := newFixture()
	f.core.cafeByIDErr = backendDown("core", "GetCafeById")

	_, err := f.svc.CafeDetail(context.Background(), domain.Identity{}, "1")
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestCafeDetail_ReviewsDown_CafeStillReturned(t *testing.T) {
	f := newFixture()
	f.core.cafeByID["1"] = domain.Cafe{ID: "1", Name: "CafeA", Owner: "bob"}
	f.reviews.reviewsErr = backendDown("review", "GetReviews")

	result, err := f.svc.CafeDetail(context.Background(), domain.Identity{}, "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.ReviewsDegraded {
		t.Fatalf("reviews section should be degraded")
	}
	if len(result.Reviews) != 0 {
		t.Fatalf("expected empty review list")
	}
	if result.Cafe.Name != "CafeA" {
		t.Fatalf("cafe missing from result")
	}
}

func TestCafeDetail_OwnershipIsLocal(t *testing.T) {
	f := newFixture()
	f.core.cafeByID["1"] = domain.Cafe{ID: "1", Name: "CafeA", Owner: "someone-else"}
	f.core.cafeByID["2"] = domain.Cafe{ID: "2", Name: "CafeB", Owner: "alice"}
	f.core.cafeByID["3"] = domain.Cafe{ID: "3", Name: "CafeC", Owner: "someone-else"}

	// Owned via the identity's owned-cafe list.
	result, err := f.svc.CafeDetail(context.Background(), aliceIdentity(), "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsOwner {
		t.Fatalf("CafeA is in alice's owned list; expected is_owner")
	}

	// Owned via the cafe's owner field.
	result, err = f.svc.CafeDetail(context.Background(), aliceIdentity(), "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsOwner {
		t.Fatalf("CafeB's owner is alice; expected is_owner")
	}

	// Neither.
	result, err = f.svc.CafeDetail(context.Background(), aliceIdentity(), "3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsOwner {
		t.Fatalf("alice does not own CafeC")
	}

	// Anonymous caller.
	result, err = f.svc.CafeDetail(context.Background(), domain.Identity{}, "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsOwner {
		t.Fatalf("anonymous caller can never be owner")
	}
}

// ---------------------------------------------------------------------------
// ProfileBundle
// ---------------------------------------------------------------------------

func TestProfileBundle_UserMissing_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.ProfileBundle(context.Background(), aliceIdentity(), "ghost")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProfileBundle_ReviewBackendDown_RestOfBundleSurvives(t *testing.T) {
	f := newFixture()
	f.core.users["alice"] = domain.User{Username: "alice", Cafes: []string{"CafeA"}}
	f.reviews.reviewsErr = backendDown("review", "GetReviews")
	f.reservation.userReservations = []domain.Reservation{{ID: "r1", Requester: "alice"}}
	f.reservation.ownerReservations = []domain.Reservation{{ID: "r2", CafeName: "CafeA"}}

	result, err := f.svc.ProfileBundle(context.Background(), aliceIdentity(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.ReviewsDegraded {
		t.Fatalf("reviews section should be degraded")
	}
	if len(result.Reviews) != 0 {
		t.Fatalf("expected empty reviews")
	}
	if len(result.Reservations) != 1 || result.Reservations[0].ID != "r1" {
		t.Fatalf("user reservations should survive review outage: %+v", result.Reservations)
	}
	if len(result.OwnerRequests) != 1 || result.OwnerRequests[0].ID != "r2" {
		t.Fatalf("owner requests should survive review outage: %+v", result.OwnerRequests)
	}
}

func TestProfileBundle_ReviewEnrichment(t *testing.T) {
	f := newFixture()
	f.core.users["alice"] = domain.User{Username: "alice"}
	f.core.cafes = []domain.Cafe{
		{ID: "c1", Name: "CafeA", Image: "/Photos/a.jpg"},
		{ID: "c2", Name: "Twin", Image: "/Photos/t1.jpg"},
		{ID: "c3", Name: "Twin", Image: "/Photos/t2.jpg"},
	}
	f.reviews.reviews = []domain.Review{
		{ID: "1", Author: "alice", CafeName: "CafeA"},
		{ID: "2", Author: "alice", CafeName: "Gone"},
		{ID: "3", Author: "alice", CafeName: "Twin"},
	}

	result, err := f.svc.ProfileBundle(context.Background(), aliceIdentity(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Reviews) != 3 {
		t.Fatalf("expected 3 enriched reviews, got %d", len(result.Reviews))
	}

	matched := result.Reviews[0].Cafe
	if matched.ID != "c1" || matched.Image != "/Photos/a.jpg" || matched.Unmatched {
		t.Fatalf("matched enrichment wrong: %+v", matched)
	}

	missing := result.Reviews[1].Cafe
	if !missing.Unmatched || missing.ID != "" || missing.Image != domain.PlaceholderImage {
		t.Fatalf("unmatched enrichment wrong: %+v", missing)
	}

	twin := result.Reviews[2].Cafe
	if !twin.Ambiguous {
		t.Fatalf("duplicate cafe name must be flagged ambiguous: %+v", twin)
	}
	if twin.ID != "c2" {
		t.Fatalf("ambiguous join should keep the first match, got %+v", twin)
	}
}

func TestProfileBundle_EnrichmentCatalogueDown_PlaceholdersUsed(t *testing.T) {
	f := newFixture()
	f.core.users["alice"] = domain.User{Username: "alice"}
	f.core.cafesErr = backendDown("core", "GetCafes")
	f.reviews.reviews = []domain.Review{{ID: "1", Author: "alice", CafeName: "CafeA"}}

	result, err := f.svc.ProfileBundle(context.Background(), aliceIdentity(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.ReviewsDegraded {
		t.Fatalf("catalogue outage should mark the reviews section degraded")
	}
	if len(result.Reviews) != 1 || !result.Reviews[0].Cafe.Unmatched {
		t.Fatalf("reviews should still be present with placeholder refs: %+v", result.Reviews)
	}
}

func TestProfileBundle_OwnerRequestsOnlyForSelf(t *testing.T) {
	f := newFixture()
	f.core.users["bob"] = domain.User{Username: "bob", Cafes: []string{"CafeB"}}
	f.reservation.ownerReservations = []domain.Reservation{{ID: "r9"}}

	// Alice views bob's profile: no owner-request call.
	result, err := f.svc.ProfileBundle(context.Background(), aliceIdentity(), "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsSelf {
		t.Fatalf("viewer is not the profile owner")
	}
	if f.reservation.ownerCalledWith != nil {
		t.Fatalf("GetOwnerReservations must not be called for someone else's profile")
	}
	if len(result.OwnerRequests) != 0 {
		t.Fatalf("owner requests should be empty")
	}
}

func TestProfileBundle_NoOwnedCafes_SkipsOwnerCall(t *testing.T) {
	f := newFixture()
	f.core.users["alice"] = domain.User{Username: "alice"}

	result, err := f.svc.ProfileBundle(context.Background(), aliceIdentity(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsSelf {
		t.Fatalf("expected is_self")
	}
	if f.reservation.ownerCalledWith != nil {
		t.Fatalf("GetOwnerReservations must not be called when the profile owns no cafes")
	}
}

// ---------------------------------------------------------------------------
// Authenticate
// ---------------------------------------------------------------------------

func TestAuthenticate_Success(t *testing.T) {
	f := newFixture()
	f.core.loginResult = &ports.LoginResult{
		User:  domain.User{Username: "alice", Cafes: []string{"CafeA"}},
		Token: "backend-token",
	}
	f.credentials.issued = "gateway-token"
	f.credentials.identity = aliceIdentity()
	f.credentials.valid = true

	result, err := f.svc.Authenticate(context.Background(), "alice", "correct-pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Token != "gateway-token" {
		t.Fatalf("expected gateway-minted credential, got %q", result.Token)
	}
	if result.Identity.Username != "alice" || !result.Identity.Owns("CafeA") {
		t.Fatalf("identity not carried: %+v", result.Identity)
	}
}

func TestAuthenticate_WrongPassword_Unauthenticated(t *testing.T) {
	f := newFixture()
	f.core.loginErr = domain.NewBackendError("core", "Login", domain.BackendInvalidArgument, nil)

	_, err := f.svc.Authenticate(context.Background(), "alice", "wrong")
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthenticate_BackendDown_Unavailable(t *testing.T) {
	f := newFixture()
	f.core.loginErr = backendDown("core", "Login")

	_, err := f.svc.Authenticate(context.Background(), "alice", "correct-pw")
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Fatalf("an outage must not masquerade as bad credentials, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Writes stamp the acting identity
// ---------------------------------------------------------------------------

func TestSubmitReview_StampsAuthor(t *testing.T) {
	f := newFixture()

	err := f.svc.SubmitReview(context.Background(), aliceIdentity(), ports.SubmitReviewInput{
		CafeName: "CafeA",
		Rating:   5,
		Comment:  "great",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.reviews.added == nil || f.reviews.added.Author != "alice" {
		t.Fatalf("author not stamped from identity: %+v", f.reviews.added)
	}
}

func TestMakeReservation_StampsRequester(t *testing.T) {
	f := newFixture()

	err := f.svc.MakeReservation(context.Background(), aliceIdentity(), ports.MakeReservationInput{
		Requester: "mallory", // client-supplied actor must be ignored
		CafeID:    "c1",
		CafeName:  "CafeA",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.reservation.made.Requester != "alice" {
		t.Fatalf("requester not overwritten with identity: %+v", f.reservation.made)
	}
}

func TestCreateCafe_StampsOwner(t *testing.T) {
	f := newFixture()

	id, err := f.svc.CreateCafe(context.Background(), aliceIdentity(), ports.CreateCafeInput{
		Name:    "New Cafe",
		Address: "Street 1",
		Owner:   "mallory",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "cafe-99" {
		t.Fatalf("cafe id not returned")
	}
	if f.core.createdCafe.Owner != "alice" {
		t.Fatalf("owner not overwritten with identity: %+v", f.core.createdCafe)
	}
}

func TestUpdateProfile_TargetsSelf(t *testing.T) {
	f := newFixture()

	err := f.svc.UpdateProfile(context.Background(), aliceIdentity(), ports.UpdateProfileInput{
		Username: "mallory",
		Desc:     "new bio",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.core.updated.Username != "alice" {
		t.Fatalf("profile update must target the identity: %+v", f.core.updated)
	}
}

// ---------------------------------------------------------------------------
// Review edit/delete authorization
// ---------------------------------------------------------------------------

func TestEditReview_NotAuthor_RejectedBeforeWrite(t *testing.T) {
	f := newFixture()
	f.reviews.reviews = []domain.Review{{ID: "42", Author: "bob"}}

	err := f.svc.EditReview(context.Background(), aliceIdentity(), "42", 1, "nope")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if f.reviews.editedID != "" {
		t.Fatalf("edit write must not be issued for a foreign review")
	}
}

func TestEditReview_Author_Succeeds(t *testing.T) {
	f := newFixture()
	f.reviews.reviews = []domain.Review{{ID: "42", Author: "alice"}}

	if err := f.svc.EditReview(context.Background(), aliceIdentity(), "42", 4, "better"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.reviews.editedID != "42" {
		t.Fatalf("edit write not issued")
	}
}

func TestDeleteReview_Missing_NotFound(t *testing.T) {
	f := newFixture()

	err := f.svc.DeleteReview(context.Background(), aliceIdentity(), "404")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if f.reviews.deletedID != "" {
		t.Fatalf("delete write must not be issued")
	}
}

// ---------------------------------------------------------------------------
// Reservation status authorization
// ---------------------------------------------------------------------------

func TestUpdateReservationStatus_NonOwner_Unauthorized(t *testing.T) {
	f := newFixture()
	f.reservation.ownerReservations = []domain.Reservation{{ID: "other", CafeName: "CafeA"}}

	err := f.svc.UpdateReservationStatus(context.Background(), aliceIdentity(), "r1", domain.ReservationAccepted)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if f.reservation.statusCalled {
		t.Fatalf("status write must not be issued")
	}
}

func TestUpdateReservationStatus_Owner_Succeeds(t *testing.T) {
	f := newFixture()
	f.reservation.ownerReservations = []domain.Reservation{{ID: "r1", CafeName: "CafeA"}}

	err := f.svc.UpdateReservationStatus(context.Background(), aliceIdentity(), "r1", domain.ReservationAccepted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.reservation.statusCalled || f.reservation.statusID != "r1" || f.reservation.statusValue != domain.ReservationAccepted {
		t.Fatalf("status write wrong: %+v", f.reservation)
	}
}

func TestUpdateReservationStatus_InvalidStatus_Validation(t *testing.T) {
	f := newFixture()

	err := f.svc.UpdateReservationStatus(context.Background(), aliceIdentity(), "r1", "maybe")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUpdateReservationStatus_NoCafes_Unauthorized(t *testing.T) {
	f := newFixture()
	identity := aliceIdentity()
	identity.OwnedCafes = nil

	err := f.svc.UpdateReservationStatus(context.Background(), identity, "r1", domain.ReservationRejected)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if f.reservation.ownerCalledWith != nil {
		t.Fatalf("no backend call expected for a caller without cafes")
	}
}
