package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/cafehub/gateway/internal/core/domain"
	"github.com/cafehub/gateway/internal/core/ports"
)

const defaultCredentialTTL = time.Hour

// CredentialService implements stateless credential issue/verify plus
// denylist-backed revocation. Verification is entirely local (signature and
// expiry); no backend is consulted, so a stolen credential stays valid until
// expiry unless it has been revoked through the denylist.
type CredentialService struct {
	secret   []byte
	ttl      time.Duration
	denylist ports.Denylist
	logger   zerolog.Logger
	now      func() time.Time
}

func NewCredentialService(secret string, ttl time.Duration, denylist ports.Denylist, logger zerolog.Logger) *CredentialService {
	if ttl <= 0 {
		ttl = defaultCredentialTTL
	}
	return &CredentialService{
		secret:   []byte(secret),
		ttl:      ttl,
		denylist: denylist,
		logger:   logger,
		now:      time.Now,
	}
}

// Issue signs a credential encoding the user's identity and cafe ownership.
func (s *CredentialService) Issue(user domain.User) (string, error) {
	now := s.now().UTC()
	claims := jwt.MapClaims{
		"username": user.Username,
		"email":    user.Email,
		"cafes":    user.Cafes,
		"iat":      now.Unix(),
		"exp":      now.Add(s.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify reconstructs the Identity encoded in token. Any failure (bad
// signature, expiry, denylisted) degrades to anonymous rather than erroring.
func (s *CredentialService) Verify(ctx context.Context, token string) (domain.Identity, bool) {
	if token == "" {
		return domain.Identity{}, false
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !tkn.Valid {
		return domain.Identity{}, false
	}

	if revoked, err := s.denylist.Contains(ctx, tokenDigest(token)); err != nil {
		// Denylist outage: fail open. The credential is still signed and
		// unexpired; revocation is a best-effort collaborator.
		s.logger.Warn().Err(err).Msg("denylist check failed")
	} else if revoked {
		return domain.Identity{}, false
	}

	return identityFromClaims(claims), true
}

// Revoke denylists the credential digest until the credential would expire on
// its own. Already-invalid tokens are a no-op.
func (s *CredentialService) Revoke(ctx context.Context, token string) error {
	identity, ok := s.Verify(ctx, token)
	if !ok {
		return nil
	}
	ttl := identity.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.denylist.Add(ctx, tokenDigest(token), ttl)
}

func identityFromClaims(claims jwt.MapClaims) domain.Identity {
	identity := domain.Identity{}
	if v, ok := claims["username"].(string); ok {
		identity.Username = v
	}
	if v, ok := claims["email"].(string); ok {
		identity.Email = v
	}
	if cafes, ok := claims["cafes"].([]interface{}); ok {
		for _, c := range cafes {
			if name, ok := c.(string); ok {
				identity.OwnedCafes = append(identity.OwnedCafes, name)
			}
		}
	}
	if v, ok := claims["iat"].(float64); ok {
		identity.IssuedAt = time.Unix(int64(v), 0).UTC()
	}
	if v, ok := claims["exp"].(float64); ok {
		identity.ExpiresAt = time.Unix(int64(v), 0).UTC()
	}
	return identity
}

func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// NoopDenylist is used when no Redis address is configured: revocation
// degrades to cookie clearing plus the short credential TTL.
type NoopDenylist struct{}

func (NoopDenylist) Add(context.Context, string, time.Duration) error { return nil }
func (NoopDenylist) Contains(context.Context, string) (bool, error) { return false, nil }
