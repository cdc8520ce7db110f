package ports

import (
	"context"
	"time"

	"github.com/cafehub/gateway/internal/core/domain"
)

// CredentialService mints, verifies, and revokes the signed stateless
// credential that carries the caller identity.
type CredentialService interface {
	// Issue signs a credential for the given user with a fixed validity window.
	Issue(user domain.User) (string, error)
	// Verify checks signature, expiry, and the denylist. It never fails hard:
	// any invalid credential verifies as anonymous (zero Identity, false), and
	// the transport layer is expected to clear the stored credential.
	Verify(ctx context.Context, token string) (domain.Identity, bool)
	// Revoke denylists the credential until its natural expiry.
	Revoke(ctx context.Context, token string) error
}

// Denylist records revoked credentials. Entries expire on their own once the
// underlying credential would have expired anyway.
type Denylist interface {
	Add(ctx context.Context, digest string, ttl time.Duration) error
	Contains(ctx context.Context, digest string) (bool, error)
}
