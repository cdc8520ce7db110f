package domain

import "time"

// Identity is the authenticated caller's derived profile, reconstructed from
// a signed credential on every request. It is never read from storage and
// never stored outside the request scope.
type Identity struct {
	Username   string    `json:"username"`
	Email      string    `json:"email,omitempty"`
	OwnedCafes []string  `json:"owned_cafes,omitempty"`
	IssuedAt   time.Time `json:"issued_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// IsAnonymous reports whether no credential was presented or it failed
// verification.
func (i Identity) IsAnonymous() bool { return i.Username == "" }

// Owns reports whether the identity owns the cafe with the given name.
func (i Identity) Owns(cafeName string) bool {
	for _, name := range i.OwnedCafes {
		if name == cafeName {
			return true
		}
	}
	return false
}

// User is a profile record owned by the core backend.
type User struct {
	Username   string   `json:"username"`
	Email      string   `json:"email,omitempty"`
	Desc       string   `json:"desc,omitempty"`
	ProfilePic string   `json:"profile_pic,omitempty"`
	Cafes      []string `json:"cafes"`
}
